package coordsys

import "math"

// parameterEpsilon is the tolerance, in units of the segment parameter, below
// which a crossing is snapped onto the segment's end point.
const parameterEpsilon = 1e-9

// A Chunk is a contiguous part of a polyline, tagged with whether all of its
// coordinates lie inside some Bounds.
type Chunk struct {
	Coordinates    [][]float64
	IsWithinBounds bool
}

// SplitIfOutOfBounds splits coords into chunks at every point where the
// polyline crosses or touches the boundary of b. Each crossing point is the
// last coordinate of one chunk and the first coordinate of the next. If every
// coordinate is already inside b then a single chunk holding coords itself is
// returned.
//
// SplitIfOutOfBounds returns nil if coords has fewer than two points or if any
// point does not have exactly two finite components.
func (b *Bounds) SplitIfOutOfBounds(coords [][]float64) []Chunk {
	if len(coords) < 2 {
		return nil
	}
	allInBounds := true
	for _, coord := range coords {
		if len(coord) != 2 || !isFinite(coord[0]) || !isFinite(coord[1]) {
			return nil
		}
		if !b.IsInBounds(coord[0], coord[1]) {
			allInBounds = false
		}
	}
	if allInBounds {
		return []Chunk{
			{
				Coordinates:    coords,
				IsWithinBounds: true,
			},
		}
	}

	s := &splitter{
		bounds:  b,
		current: [][]float64{coords[0]},
	}
	for i := 1; i < len(coords); i++ {
		s.addSegment(coords[i-1], coords[i])
	}
	return s.finish()
}

// A splitter accumulates pieces of a polyline into chunks. A piece is a
// straight run that is either entirely inside or entirely outside the bounds,
// apart from its end points.
//
// Repeats of the current last coordinate are held in repeats until the next
// piece is known. Repeats of a junction always go to the inside side of the
// junction, or form their own inside chunk if both sides are outside, so that
// the result does not depend on the direction of traversal.
type splitter struct {
	bounds   *Bounds
	chunks   []Chunk
	current  [][]float64
	repeats  [][]float64
	labelled bool
	inside   bool
}

func (s *splitter) addSegment(start, end []float64) {
	if start[0] == end[0] && start[1] == end[1] {
		s.repeats = append(s.repeats, end)
		return
	}

	t0, t1, ok := s.bounds.clipSegment(start, end)
	if !ok {
		s.addPiece(end, false)
		return
	}
	if t0 < parameterEpsilon && s.bounds.IsInBounds(start[0], start[1]) {
		t0 = 0
	}
	if t1 > 1-parameterEpsilon && s.bounds.IsInBounds(end[0], end[1]) {
		t1 = 1
	}

	// The segment only touches the boundary.
	if t1-t0 < parameterEpsilon {
		if 0 < t0 && t0 < 1 {
			s.addPiece(s.bounds.pointAt(start, end, t0), false)
		}
		s.addPiece(end, false)
		return
	}

	if t0 > 0 {
		s.addPiece(s.bounds.pointAt(start, end, t0), false)
	}
	if t1 < 1 {
		s.addPiece(s.bounds.pointAt(start, end, t1), true)
		s.addPiece(end, false)
	} else {
		s.addPiece(end, true)
	}
}

// addPiece extends the current chunk to end. A new chunk is started at the
// current last coordinate when the piece changes side, or when two outside
// pieces meet on the boundary.
func (s *splitter) addPiece(end []float64, inside bool) {
	junction := s.current[len(s.current)-1]
	switch {
	case !s.labelled:
		s.appendRepeats()
	case inside != s.inside || !inside && s.bounds.IsInBounds(junction[0], junction[1]):
		switch {
		case len(s.repeats) == 0:
			s.flush()
			s.current = [][]float64{junction}
		case s.inside:
			s.appendRepeats()
			s.flush()
			s.current = [][]float64{s.current[len(s.current)-1]}
		case inside:
			s.flush()
			s.current = [][]float64{junction}
			s.appendRepeats()
		default:
			s.flush()
			s.current = [][]float64{junction}
			s.appendRepeats()
			s.flush()
			s.current = [][]float64{s.current[len(s.current)-1]}
		}
	default:
		s.appendRepeats()
	}
	s.current = append(s.current, end)
	s.labelled = true
	s.inside = inside
}

func (s *splitter) appendRepeats() {
	s.current = append(s.current, s.repeats...)
	s.repeats = nil
}

func (s *splitter) flush() {
	s.chunks = append(s.chunks, Chunk{
		Coordinates:    s.current,
		IsWithinBounds: s.bounds.allInBounds(s.current),
	})
}

func (s *splitter) finish() []Chunk {
	s.appendRepeats()
	s.flush()
	return s.chunks
}

// clipSegment returns the parameter interval [t0, t1] of the segment from
// start to end that lies inside b, using the Liang-Barsky algorithm. ok is
// false if no part of the segment is inside b.
func (b *Bounds) clipSegment(start, end []float64) (t0, t1 float64, ok bool) {
	dx := end[0] - start[0]
	dy := end[1] - start[1]
	t0, t1 = 0, 1
	for _, pq := range [4][2]float64{
		{-dx, start[0] - b.LowerX()},
		{dx, b.UpperX() - start[0]},
		{-dy, start[1] - b.LowerY()},
		{dy, b.UpperY() - start[1]},
	} {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return t0, t1, true
}

// pointAt returns the point at parameter t on the segment from start to end.
// t is always a boundary crossing so the result is clamped onto b to absorb
// rounding errors.
func (b *Bounds) pointAt(start, end []float64, t float64) []float64 {
	return b.clamp(
		start[0]+t*(end[0]-start[0]),
		start[1]+t*(end[1]-start[1]),
	)
}

func (b *Bounds) allInBounds(coords [][]float64) bool {
	for _, coord := range coords {
		if !b.IsInBounds(coord[0], coord[1]) {
			return false
		}
	}
	return true
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
