// Command chartbox builds a ChartBox from boundary and contour feature
// files, and optionally rasterizes it to PNG images.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teyrana/chartbox/internal/geo"
	"github.com/teyrana/chartbox/pkg/chartbox"
	"github.com/teyrana/chartbox/pkg/sinks"
	"github.com/teyrana/chartbox/pkg/sources"
)

// Exit codes, per the CLI surface: 0 success, 2 input not found, 3
// bounding-box load failure, 4 raster sink failure.
const (
	exitSuccess       = 0
	exitInputNotFound = 2
	exitBoundsFailure = 3
	exitSinkFailure   = 4
)

type options struct {
	contourPath  string
	boundaryOut  string
	contourOut   string
	compositeOut string
	precision    float64
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts := &options{precision: 8.0}
	exitCode := exitSuccess

	root := &cobra.Command{
		Use:           "chartbox <boundary-file>",
		Short:         "Build and rasterize a navigational chart from boundary/contour polygons.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			code, err := buildChart(cmd.Context(), positional[0], opts)
			exitCode = code
			return err
		},
	}

	root.Flags().StringVar(&opts.contourPath, "contour", "", "path to a contour feature file (GeoJSON)")
	root.Flags().StringVar(&opts.boundaryOut, "boundary-out", "", "write the boundary layer as a PNG to this path")
	root.Flags().StringVar(&opts.contourOut, "contour-out", "", "write the contour layer as a PNG to this path")
	root.Flags().StringVar(&opts.compositeOut, "composite-out", "", "write the composited classification as a PNG to this path")
	root.Flags().Float64Var(&opts.precision, "precision", 8.0, "meters per cell")

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chartbox:", err)
		if exitCode == exitSuccess {
			exitCode = exitInputNotFound
		}
		return exitCode
	}
	return exitCode
}

func buildChart(ctx context.Context, boundaryPath string, opts *options) (int, error) {
	if _, err := os.Stat(boundaryPath); err != nil {
		return exitInputNotFound, fmt.Errorf("boundary file: %w", err)
	}
	if opts.contourPath != "" {
		if _, err := os.Stat(opts.contourPath); err != nil {
			return exitInputNotFound, fmt.Errorf("contour file: %w", err)
		}
	}

	boundarySource := sources.NewGeoJSONSource(boundaryPath)
	bounds, err := boundarySource.Bounds(ctx)
	if err != nil {
		return exitBoundsFailure, fmt.Errorf("read boundary bounds: %w", err)
	}

	mapping := chartbox.NewFrameMapping(geo.NewTransverseMercator())
	if err := mapping.MoveToCorners(bounds); err != nil {
		return exitBoundsFailure, fmt.Errorf("position chart: %w", err)
	}

	roles := []chartbox.Role{chartbox.RoleBoundary}
	if opts.contourPath != "" {
		roles = append(roles, chartbox.RoleContour)
	}

	box, err := chartbox.NewChartBox(mapping, opts.precision, roles...)
	if err != nil {
		return exitBoundsFailure, fmt.Errorf("allocate chart: %w", err)
	}

	if err := box.IngestSource(ctx, boundarySource); err != nil {
		return exitBoundsFailure, fmt.Errorf("ingest boundary: %w", err)
	}
	if opts.contourPath != "" {
		contourSource := sources.NewGeoJSONSource(opts.contourPath)
		if err := box.IngestSource(ctx, contourSource); err != nil {
			return exitBoundsFailure, fmt.Errorf("ingest contour: %w", err)
		}
	}

	local := mapping.LocalBounds()

	if opts.boundaryOut != "" {
		sink := sinks.NewPNGSink(opts.boundaryOut)
		if err := sink.Write(ctx, local, opts.precision, box.Layer(chartbox.RoleBoundary).Get); err != nil {
			return exitSinkFailure, fmt.Errorf("write boundary raster: %w", err)
		}
	}
	if opts.contourOut != "" && opts.contourPath != "" {
		sink := sinks.NewPNGSink(opts.contourOut)
		if err := sink.Write(ctx, local, opts.precision, box.Layer(chartbox.RoleContour).Get); err != nil {
			return exitSinkFailure, fmt.Errorf("write contour raster: %w", err)
		}
	}
	if opts.compositeOut != "" {
		sink := sinks.NewPNGSink(opts.compositeOut)
		if err := sink.Write(ctx, local, opts.precision, box.Classify); err != nil {
			return exitSinkFailure, fmt.Errorf("write composite raster: %w", err)
		}
	}

	return exitSuccess, nil
}
