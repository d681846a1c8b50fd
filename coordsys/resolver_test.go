package coordsys_test

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-elevationprofile/coordsys"
)

func TestMercatorResolver(t *testing.T) {
	resolver := coordsys.MercatorResolver{Extent: 2 * 20037508.342789244, TileSize: 256}
	assert.True(t, math.Abs(resolver.ResolutionForZoom(0)-156543.03392804097) < 1e-6)
	for zoom := range 20 {
		resolution := resolver.ResolutionForZoom(float64(zoom))
		assert.True(t, math.Abs(resolver.ZoomForResolution(resolution)-float64(zoom)) < 1e-9)
	}
}

func TestTableResolver(t *testing.T) {
	resolver := coordsys.TableResolver{Resolutions: []float64{100, 50, 20, 10}}
	for _, tc := range []struct {
		zoom       float64
		resolution float64
	}{
		{zoom: -1, resolution: 100},
		{zoom: 0, resolution: 100},
		{zoom: 1.4, resolution: 50},
		{zoom: 1.6, resolution: 20},
		{zoom: 3, resolution: 10},
		{zoom: 10, resolution: 10},
	} {
		assert.Equal(t, tc.resolution, resolver.ResolutionForZoom(tc.zoom))
	}
	for _, tc := range []struct {
		resolution float64
		zoom       float64
	}{
		{resolution: 1000, zoom: 0},
		{resolution: 60, zoom: 1},
		{resolution: 30, zoom: 2},
		{resolution: 14, zoom: 3},
		{resolution: 1, zoom: 3},
	} {
		assert.Equal(t, tc.zoom, resolver.ZoomForResolution(tc.resolution))
	}
	assert.True(t, math.IsNaN(coordsys.TableResolver{}.ResolutionForZoom(0)))
}

func TestLV95Resolutions(t *testing.T) {
	assert.Equal(t, 4000.0, coordsys.LV95.ResolutionForZoom(0))
	assert.Equal(t, 0.1, coordsys.LV95.ResolutionForZoom(28))
	assert.Equal(t, 17.0, coordsys.LV95.ZoomForResolution(100))
}
