// Package sinks provides concrete chartbox.RasterSink adapters.
package sinks

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/teyrana/chartbox/pkg/chartbox"
)

// PNGSink samples a classify function over a box and writes it as an
// 8-bit grayscale PNG. This is the one place chartbox reaches for the
// standard library instead of a third-party library: no image codec in
// the retrieved corpus improves on image/png for a single-channel
// grayscale raster, and pulling one in would add a dependency purely for
// parity with the ecosystem-library rule rather than for any real benefit.
type PNGSink struct {
	Path string
}

// NewPNGSink returns a PNGSink writing to path.
func NewPNGSink(path string) *PNGSink {
	return &PNGSink{Path: path}
}

// Write implements chartbox.RasterSink: cell centers are sampled
// west-to-east then south-to-north, with output row 0 holding the
// northernmost row, per the raster sink interface's orientation
// convention.
func (s *PNGSink) Write(ctx context.Context, box chartbox.BoundBox[chartbox.LocalFrame], precision float64, classify func(chartbox.Point[chartbox.LocalFrame]) chartbox.Cell) error {
	width := int(math.Ceil(box.Width() / precision))
	height := int(math.Ceil(box.Height() / precision))
	if width <= 0 || height <= 0 {
		return &chartbox.InvalidGeometryError{Reason: "raster sink box must have positive width and height"}
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for row := 0; row < height; row++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Output row 0 is the north row, so it samples the highest Y.
		y := box.Max.Y - (float64(row)+0.5)*precision
		for col := 0; col < width; col++ {
			x := box.Min.X + (float64(col)+0.5)*precision
			cell := classify(chartbox.Point[chartbox.LocalFrame]{X: x, Y: y})
			img.SetGray(col, row, color.Gray{Y: uint8(cell)})
		}
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return &chartbox.IoError{Path: s.Path, Err: err}
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

var _ chartbox.RasterSink = (*PNGSink)(nil)
