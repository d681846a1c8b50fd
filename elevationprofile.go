// Package elevationprofile computes elevation profiles along polylines by
// querying an elevation backend that only accepts coordinates inside its
// reference coordinate system's bounds.
package elevationprofile

// A Point is a point of an elevation profile. Dist is the distance along the
// profile from the start of its segment.
type Point struct {
	Coordinate       []float64
	Dist             float64
	HasDist          bool
	Elevation        float64
	HasElevationData bool
}

// A Segment is the profile of one part of a multi-part input.
type Segment struct {
	Points           []Point
	HasElevationData bool
	HasDistanceData  bool
}

// A Profile is an elevation profile.
type Profile struct {
	Segments []Segment
	Metadata Metadata
}

func newSegment(points []Point) Segment {
	segment := Segment{
		Points:          points,
		HasDistanceData: len(points) > 0,
	}
	for _, point := range points {
		if point.HasElevationData {
			segment.HasElevationData = true
		}
		if !point.HasDist {
			segment.HasDistanceData = false
		}
	}
	return segment
}

func newProfile(segments []Segment) *Profile {
	return &Profile{
		Segments: segments,
		Metadata: NewMetadata(segments),
	}
}

// Points returns all points of p in segment order.
func (p *Profile) Points() []Point {
	var n int
	for _, segment := range p.Segments {
		n += len(segment.Points)
	}
	points := make([]Point, 0, n)
	for _, segment := range p.Segments {
		points = append(points, segment.Points...)
	}
	return points
}

// HasElevationData returns whether any point of p has elevation data.
func (p *Profile) HasElevationData() bool {
	return p.Metadata.HasElevationData
}
