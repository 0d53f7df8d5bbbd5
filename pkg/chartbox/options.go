package chartbox

import (
	"io"
	"runtime"
)

// LoadOptions controls TileSource loading behavior, parallelism, and
// error handling for LoadTilesParallel.
type LoadOptions struct {
	// Parallel enables concurrent tile loading across multiple workers.
	Parallel bool

	// Workers is the number of loader goroutines. If 0, defaults to
	// runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// SkipErrors continues loading the remaining sources when one fails,
	// collecting the error rather than aborting. When false, the first
	// failure stops loading and is returned immediately.
	SkipErrors bool

	// Progress, if set, is called after each source is processed
	// (successfully or not): (loaded, total).
	Progress func(loaded, total int)

	// ErrorLog, if set, receives a line per load failure.
	ErrorLog io.Writer
}

// DefaultLoadOptions returns load options with sensible defaults: full
// parallelism, one worker per CPU, and tolerance for individual failures.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}
