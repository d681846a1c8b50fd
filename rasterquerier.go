package elevationprofile

import (
	"context"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/twpayne/go-elevationprofile/coordsys"
)

// A RasterQuerier is a Querier that samples a local Raster instead of calling
// a remote backend. Lines are densified so that consecutive points are at most
// the sample spacing apart.
type RasterQuerier struct {
	raster        Raster
	sampleSpacing float64
}

// A RasterQuerierOption sets an option on a RasterQuerier.
type RasterQuerierOption func(*RasterQuerier)

// NewRasterQuerier returns a new RasterQuerier. The default sample spacing is
// the raster's horizontal scale.
func NewRasterQuerier(raster Raster, options ...RasterQuerierOption) *RasterQuerier {
	scaleX, _ := raster.Scale()
	q := &RasterQuerier{
		raster:        raster,
		sampleSpacing: float64(scaleX),
	}
	for _, option := range options {
		option(q)
	}
	return q
}

// WithSampleSpacing sets the maximum distance between sampled points. Zero
// disables densification.
func WithSampleSpacing(sampleSpacing float64) RasterQuerierOption {
	return func(q *RasterQuerier) {
		q.sampleSpacing = sampleSpacing
	}
}

// Query implements Querier. Sample points are rounded to cs's precision.
func (q *RasterQuerier) Query(ctx context.Context, cs *coordsys.CoordinateSystem, coords [][]float64) ([]BackendPoint, error) {
	sampleCoords := cs.RoundCoordinates(q.densify(coords))
	elevations, err := InterpolateBilinear(ctx, q.raster, sampleCoords)
	if err != nil {
		return nil, err
	}
	backendPoints := make([]BackendPoint, len(sampleCoords))
	var dist float64
	for i, coord := range sampleCoords {
		if i > 0 {
			dist += planar.Distance(toPoint(sampleCoords[i-1]), toPoint(coord))
		}
		backendPoints[i] = BackendPoint{
			Dist:     dist,
			Easting:  coord[0],
			Northing: coord[1],
		}
		if elevation := elevations[i]; !math.IsNaN(elevation) {
			backendPoints[i].Alts = &Alts{
				COMB: &elevation,
			}
		}
	}
	return backendPoints, nil
}

func (q *RasterQuerier) densify(coords [][]float64) [][]float64 {
	if q.sampleSpacing <= 0 || len(coords) < 2 {
		return coords
	}
	densified := [][]float64{coords[0]}
	for i := 1; i < len(coords); i++ {
		start, end := coords[i-1], coords[i]
		steps := int(math.Ceil(planar.Distance(toPoint(start), toPoint(end)) / q.sampleSpacing))
		for step := 1; step < steps; step++ {
			t := float64(step) / float64(steps)
			densified = append(densified, []float64{
				start[0] + t*(end[0]-start[0]),
				start[1] + t*(end[1]-start[1]),
			})
		}
		densified = append(densified, end)
	}
	return densified
}

func toPoint(coord []float64) orb.Point {
	return orb.Point{coord[0], coord[1]}
}
