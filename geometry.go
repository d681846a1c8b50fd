package elevationprofile

import (
	"fmt"

	"github.com/paulmach/orb"
)

// PartsFromGeometry returns the parts of g suitable for ComputeProfile. A
// MultiLineString has one part per line and a Polygon has one part per ring.
// Geometries containing more than one line or polygon per part are rejected
// with ErrMultiFeatureUnsupported.
func PartsFromGeometry(g orb.Geometry) ([][][]float64, error) {
	var parts [][][]float64
	switch g := g.(type) {
	case nil:
		return nil, ErrInputMissing
	case orb.Point:
		return nil, fmt.Errorf("%s: %w", g.GeoJSONType(), ErrInputMissing)
	case orb.LineString:
		parts = [][][]float64{pointsToCoords(g)}
	case orb.MultiPoint:
		parts = [][][]float64{pointsToCoords(g)}
	case orb.Ring:
		parts = [][][]float64{pointsToCoords(g)}
	case orb.MultiLineString:
		for _, lineString := range g {
			parts = append(parts, pointsToCoords(lineString))
		}
	case orb.Polygon:
		for _, ring := range g {
			parts = append(parts, pointsToCoords(ring))
		}
	case orb.MultiPolygon, orb.Collection:
		return nil, fmt.Errorf("%s: %w", g.GeoJSONType(), ErrMultiFeatureUnsupported)
	default:
		return nil, fmt.Errorf("%T: unsupported geometry", g)
	}
	if countCoords(parts) == 0 {
		return nil, ErrInputMissing
	}
	return parts, nil
}

func pointsToCoords[S ~[]orb.Point](points S) [][]float64 {
	coords := make([][]float64, len(points))
	for i, point := range points {
		coords[i] = []float64{point[0], point[1]}
	}
	return coords
}
