package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teyrana/chartbox/pkg/chartbox"
)

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"role": "boundary", "block": false},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[-70.30,41.20],[-70.29,41.20],[-70.29,41.21],[-70.30,41.21],[-70.30,41.20]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"role": "contour", "block": true},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[-70.298,41.202],[-70.295,41.202],[-70.295,41.205],[-70.298,41.205],[-70.298,41.202]]]
      }
    }
  ]
}`

func writeTestGeoJSON(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.geojson")
	if err := os.WriteFile(path, []byte(testGeoJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGeoJSONSourceBounds(t *testing.T) {
	src := NewGeoJSONSource(writeTestGeoJSON(t))
	bounds, err := src.Bounds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -70.30, bounds.MinLon)
	assert.Equal(t, -70.29, bounds.MaxLon)
}

func TestGeoJSONSourceFeatures(t *testing.T) {
	src := NewGeoJSONSource(writeTestGeoJSON(t))

	var features []chartbox.Feature
	err := src.Features(context.Background(), func(f chartbox.Feature) error {
		features = append(features, f)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, features, 2)

	assert.Equal(t, chartbox.RoleBoundary, features[0].Role)
	assert.Equal(t, chartbox.RoleContour, features[1].Role)
	assert.Equal(t, chartbox.BLOCK, features[1].InsideClass)
}
