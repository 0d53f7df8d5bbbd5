package sinks

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teyrana/chartbox/pkg/chartbox"
)

func TestPNGSinkWritesGrayscaleImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	sink := NewPNGSink(path)

	box := chartbox.BoundBox[chartbox.LocalFrame]{
		Min: chartbox.Point[chartbox.LocalFrame]{X: 0, Y: 0},
		Max: chartbox.Point[chartbox.LocalFrame]{X: 10, Y: 10},
	}
	classify := func(p chartbox.Point[chartbox.LocalFrame]) chartbox.Cell {
		if p.X < 5 {
			return chartbox.BLOCK
		}
		return chartbox.CLEAR
	}

	require.NoError(t, sink.Write(context.Background(), box, 1.0, classify))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	bounds := img.Bounds()
	require.Equal(t, 10, bounds.Dx())
	require.Equal(t, 10, bounds.Dy())
}
