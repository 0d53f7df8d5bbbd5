package chartbox

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/teyrana/chartbox/internal/geo"
)

// TileSource describes everything needed to build one ChartBox tile from
// a FeatureSource: the source itself, the grid precision and roles to
// allocate, and the projector its FrameMapping should use.
type TileSource struct {
	Source    FeatureSource
	Precision float64
	Roles     []Role
	Projector geo.Projector
}

// LoadTile builds a single ChartBox from a TileSource: it reads the
// source's bounds to position a FrameMapping, allocates the requested
// role layers, and ingests every feature the source yields.
func LoadTile(ctx context.Context, ts TileSource) (*ChartBox, error) {
	bounds, err := ts.Source.Bounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source bounds: %w", err)
	}

	mapping := NewFrameMapping(ts.Projector)
	if err := mapping.MoveToCorners(bounds); err != nil {
		return nil, fmt.Errorf("position tile: %w", err)
	}

	box, err := NewChartBox(mapping, ts.Precision, ts.Roles...)
	if err != nil {
		return nil, err
	}

	if err := box.IngestSource(ctx, ts.Source); err != nil {
		return nil, fmt.Errorf("ingest features: %w", err)
	}
	return box, nil
}

// LoadTilesParallel loads every TileSource into a ChartBox, using a
// worker pool when opts.Parallel is set. Results are returned in the same
// order as sources; a source that fails under SkipErrors leaves a nil
// hole in the results slice at its index and contributes one entry to the
// returned error slice.
func LoadTilesParallel(ctx context.Context, sources []TileSource, opts LoadOptions) ([]*ChartBox, []error) {
	if len(sources) == 0 {
		return nil, nil
	}
	if !opts.Parallel {
		return loadTilesSerial(ctx, sources, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(sources) {
		workers = len(sources)
	}

	type loadResult struct {
		index int
		tile  *ChartBox
		err   error
	}

	jobs := make(chan int, len(sources))
	results := make(chan loadResult, len(sources))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				tile, err := LoadTile(ctx, sources[index])
				results <- loadResult{index: index, tile: tile, err: err}
			}
		}()
	}

	for i := range sources {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	tiles := make([]*ChartBox, len(sources))
	var errs []error
	loaded := 0
	for result := range results {
		loaded++
		if opts.Progress != nil {
			opts.Progress(loaded, len(sources))
		}
		if result.err != nil {
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "tile %d: %v\n", result.index, result.err)
			}
			if !opts.SkipErrors {
				return nil, []error{result.err}
			}
			errs = append(errs, result.err)
			continue
		}
		tiles[result.index] = result.tile
	}
	return tiles, errs
}

func loadTilesSerial(ctx context.Context, sources []TileSource, opts LoadOptions) ([]*ChartBox, []error) {
	tiles := make([]*ChartBox, len(sources))
	var errs []error

	for i, src := range sources {
		tile, err := LoadTile(ctx, src)
		if opts.Progress != nil {
			opts.Progress(i+1, len(sources))
		}
		if err != nil {
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "tile %d: %v\n", i, err)
			}
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		tiles[i] = tile
	}
	return tiles, errs
}
