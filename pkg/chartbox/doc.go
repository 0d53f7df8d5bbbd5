// Package chartbox provides a multi-layer navigational chart engine for
// marine/autonomous-vehicle route planning.
//
// A chart is built from geospatial polygons in geographic (lat/lon)
// coordinates. chartbox projects those polygons into a local metric frame,
// rasterizes them into layered occupancy grids, composites the layers into
// a classification at any query point via ChartBox.Classify, and supports
// shortest-path search over the composite via AStarPlanner.
//
// The core pieces, leaves first, are FrameMapping (coordinate frames),
// BoundBox/Polygon/Path (geometry primitives), Sector (the atomic unit of
// persistence), RollingGridLayer (a torus-backed sliding window over an
// arbitrarily large logical extent, optionally cached to disk),
// StaticGridLayer (a fixed-size grid for layers that fit in memory
// entirely), ChartBox (compositing multiple layers), and AStarPlanner
// (shortest-path search over a layer).
//
// Example:
//
//	mapping := chartbox.NewFrameMapping(geo.NewTransverseMercator())
//	if err := mapping.MoveToCorners(chartbox.Bounds{
//	    MinLon: -70.3, MaxLon: -70.2, MinLat: 41.2, MaxLat: 41.3,
//	}); err != nil {
//	    log.Fatal(err)
//	}
//	box, err := chartbox.NewChartBox(mapping, 8.0, chartbox.RoleBoundary, chartbox.RoleContour)
package chartbox
