package elevationprofile

import (
	"context"
	"math"
)

// A Coord is a raster coordinate, in native units aligned to the raster's
// scale.
type Coord struct {
	X int
	Y int
}

// A Raster returns elevation samples on a regular grid. Missing samples are
// NaN.
type Raster interface {
	Samples(ctx context.Context, coords []Coord) ([]float64, error)
	Scale() (int, int)
}

// A GridRaster is an in-memory Raster. Values[r][c] is the sample at
// (OriginX + c*ScaleX, OriginY + r*ScaleY). OriginX and OriginY must be
// multiples of ScaleX and ScaleY.
type GridRaster struct {
	OriginX int
	OriginY int
	ScaleX  int
	ScaleY  int
	Values  [][]float64
}

func (g *GridRaster) Samples(ctx context.Context, coords []Coord) ([]float64, error) {
	samples := make([]float64, len(coords))
	for i, coord := range coords {
		c := floorDiv(coord.X-g.OriginX, g.ScaleX)
		r := floorDiv(coord.Y-g.OriginY, g.ScaleY)
		if r < 0 || len(g.Values) <= r || c < 0 || len(g.Values[r]) <= c {
			samples[i] = math.NaN()
			continue
		}
		samples[i] = g.Values[r][c]
	}
	return samples, nil
}

func (g *GridRaster) Scale() (int, int) {
	return g.ScaleX, g.ScaleY
}

// InterpolateBilinear returns the elevations at coords, bilinearly
// interpolated from the four surrounding samples of raster.
func InterpolateBilinear(ctx context.Context, raster Raster, coords [][]float64) ([]float64, error) {
	scaleX, scaleY := raster.Scale()
	rasterCoords := make([]Coord, 4*len(coords))
	for i, coord := range coords {
		x0 := scaleX * floorDiv(int(math.Floor(coord[0])), scaleX)
		y0 := scaleY * floorDiv(int(math.Floor(coord[1])), scaleY)
		x1 := x0 + scaleX
		y1 := y0 + scaleY
		rasterCoords[4*i+0] = Coord{X: x0, Y: y0}
		rasterCoords[4*i+1] = Coord{X: x1, Y: y0}
		rasterCoords[4*i+2] = Coord{X: x0, Y: y1}
		rasterCoords[4*i+3] = Coord{X: x1, Y: y1}
	}
	samples, err := raster.Samples(ctx, rasterCoords)
	if err != nil {
		return nil, err
	}
	result := make([]float64, len(coords))
	for i, coord := range coords {
		dx := (coord[0] - float64(rasterCoords[4*i].X)) / float64(scaleX)
		dy := (coord[1] - float64(rasterCoords[4*i].Y)) / float64(scaleY)
		result[i] = lerp(
			lerp(samples[4*i+0], samples[4*i+1], dx),
			lerp(samples[4*i+2], samples[4*i+3], dx),
			dy,
		)
	}
	return result, nil
}

// lerp interpolates linearly between a and b. A NaN is only propagated if it
// has a non-zero weight.
func lerp(a, b, t float64) float64 {
	switch {
	case t == 0:
		return a
	case t == 1:
		return b
	default:
		return a*(1-t) + b*t
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
