package elevationprofile

import (
	"context"

	"github.com/twpayne/go-elevationprofile/coordsys"
)

// Alts are the elevations of a backend point, one per elevation model.
type Alts struct {
	COMB  *float64 `json:"COMB,omitempty"`
	DTM2  *float64 `json:"DTM2,omitempty"`
	DTM25 *float64 `json:"DTM25,omitempty"`
}

// A BackendPoint is a point returned by an elevation backend. Dist is the
// distance from the first point of the request.
type BackendPoint struct {
	Dist     float64 `json:"dist"`
	Easting  float64 `json:"easting"`
	Northing float64 `json:"northing"`
	Alts     *Alts   `json:"alts,omitempty"`
}

// Elevation returns p's canonical elevation, if any.
func (p BackendPoint) Elevation() (float64, bool) {
	if p.Alts == nil || p.Alts.COMB == nil {
		return 0, false
	}
	return *p.Alts.COMB, true
}

// A Querier queries an elevation backend for the profile of a single line in
// coordinate system cs.
type Querier interface {
	Query(ctx context.Context, cs *coordsys.CoordinateSystem, coords [][]float64) ([]BackendPoint, error)
}
