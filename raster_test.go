package elevationprofile_test

import (
	"context"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-elevationprofile"
)

type testRaster struct {
	scaleX  int
	scaleY  int
	samples [][]float64
}

func (t *testRaster) Samples(ctx context.Context, coords []elevationprofile.Coord) ([]float64, error) {
	samples := make([]float64, len(coords))
	for i, coord := range coords {
		samples[i] = t.samples[coord.Y/t.scaleY][coord.X/t.scaleX]
	}
	return samples, nil
}

func (t *testRaster) Scale() (int, int) {
	return t.scaleX, t.scaleY
}

func TestInterpolateBilinear(t *testing.T) {
	simpleRaster := &testRaster{
		scaleX: 10,
		scaleY: 10,
		samples: [][]float64{
			{0, 1, 2},
			{2, 3, 4},
			{4, 5, 6},
		},
	}
	offsetGridRaster := &elevationprofile.GridRaster{
		OriginX: -10,
		OriginY: 100,
		ScaleX:  10,
		ScaleY:  10,
		Values: [][]float64{
			{0, 1, 2},
			{2, 3, 4},
			{4, 5, 6},
		},
	}
	for _, tc := range []struct {
		name     string
		raster   elevationprofile.Raster
		coords   [][]float64
		expected []float64
	}{
		{
			name:   "simple",
			raster: simpleRaster,
			coords: [][]float64{
				{0, 0},
				{10, 0},
				{0, 10},
				{10, 10},
				{5, 5},
				{5, 0},
				{0, 5},
				{10, 5},
				{5, 10},
			},
			expected: []float64{
				0,
				1,
				2,
				3,
				1.5,
				0.5,
				1,
				2,
				2.5,
			},
		},
		{
			name:   "grid_offset",
			raster: offsetGridRaster,
			coords: [][]float64{
				{-10, 100},
				{-5, 105},
				{10, 120},
			},
			expected: []float64{
				0,
				1.5,
				6,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := elevationprofile.InterpolateBilinear(t.Context(), tc.raster, tc.coords)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestInterpolateBilinearOutside(t *testing.T) {
	gridRaster := &elevationprofile.GridRaster{
		ScaleX: 10,
		ScaleY: 10,
		Values: [][]float64{
			{0, 1},
			{2, 3},
		},
	}
	actual, err := elevationprofile.InterpolateBilinear(t.Context(), gridRaster, [][]float64{{15, 5}, {-5, 5}})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(actual))
	assert.True(t, math.IsNaN(actual[0]))
	assert.True(t, math.IsNaN(actual[1]))
}
