package coordsys_test

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-elevationprofile/coordsys"
)

func TestProjReprojector(t *testing.T) {
	reprojector, err := coordsys.NewProjReprojector()
	assert.NoError(t, err)
	defer reprojector.Close()

	for _, tc := range []struct {
		name     string
		source   *coordsys.CoordinateSystem
		target   *coordsys.CoordinateSystem
		coords   [][]float64
		expected [][]float64
		delta    float64
	}{
		{
			name:     "lv95_to_wgs84",
			source:   coordsys.LV95,
			target:   coordsys.WGS84,
			coords:   [][]float64{{2600000, 1200000}},
			expected: [][]float64{{7.438632, 46.951083}},
			delta:    1e-4,
		},
		{
			name:     "wgs84_to_lv95",
			source:   coordsys.WGS84,
			target:   coordsys.LV95,
			coords:   [][]float64{{7.438632, 46.951083}},
			expected: [][]float64{{2600000, 1200000}},
			delta:    5,
		},
		{
			name:     "lv03_to_lv95",
			source:   coordsys.LV03,
			target:   coordsys.LV95,
			coords:   [][]float64{{600000, 200000}, {700000, 250000}},
			expected: [][]float64{{2600000, 1200000}, {2700000, 1250000}},
			delta:    5,
		},
		{
			name:     "identity",
			source:   coordsys.LV95,
			target:   coordsys.LV95,
			coords:   [][]float64{{2600000, 1200000}},
			expected: [][]float64{{2600000, 1200000}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			coords := cloneTestCoords(tc.coords)
			actual, err := reprojector.Reproject(tc.source, tc.target, coords)
			assert.NoError(t, err)
			assertCoordsInDelta(t, tc.expected, actual, tc.delta)
			assert.Equal(t, tc.coords, coords)
		})
	}
}

func TestProjReprojector_BoundsAs(t *testing.T) {
	reprojector, err := coordsys.NewProjReprojector(coordsys.WithProjCacheSize(1))
	assert.NoError(t, err)
	defer reprojector.Close()

	bounds, err := coordsys.LV95.BoundsAs(coordsys.WGS84, reprojector)
	assert.NoError(t, err)
	assert.True(t, 4 < bounds.LowerX() && bounds.LowerX() < 7)
	assert.True(t, 44 < bounds.LowerY() && bounds.LowerY() < 47)
	assert.True(t, 10 < bounds.UpperX() && bounds.UpperX() < 12)
	assert.True(t, 47 < bounds.UpperY() && bounds.UpperY() < 49)
	assert.True(t, bounds.HasCustomCenter())

	// Round trip through a second transformation to exercise eviction.
	wgs84Bound := bounds.Bound()
	roundTrip, err := reprojector.Reproject(coordsys.WGS84, coordsys.LV95, [][]float64{
		{wgs84Bound.Min[0], wgs84Bound.Min[1]},
	})
	assert.NoError(t, err)
	assert.True(t, math.Abs(roundTrip[0][0]-2420000) < 5)
	assert.True(t, math.Abs(roundTrip[0][1]-1030000) < 5)
}

func cloneTestCoords(coords [][]float64) [][]float64 {
	cloned := make([][]float64, len(coords))
	for i, coord := range coords {
		cloned[i] = append([]float64(nil), coord...)
	}
	return cloned
}
