package elevationprofile

import (
	"fmt"
	"slices"

	"github.com/twpayne/go-elevationprofile/coordsys"
)

// DefaultMaxChunkPoints is the default maximum number of points sent to the
// backend in a single request. It is kept well below the backend's own limit.
const DefaultMaxChunkPoints = 3000

// A PlannedChunk is a chunk of a part in the reference coordinate system,
// subdivided into sub-chunks of at most the maximum number of points. Each
// sub-chunk of an in-bounds chunk becomes one backend request.
type PlannedChunk struct {
	IsWithinBounds bool
	SubChunks      []coordsys.Chunk
}

// Plan plans every part of parts. It fails on the first part that cannot be
// planned.
func (s *Service) Plan(parts [][][]float64, cs *coordsys.CoordinateSystem) ([][]PlannedChunk, error) {
	plans := make([][]PlannedChunk, 0, len(parts))
	for i, part := range parts {
		plannedChunks, err := s.PlanPart(part, cs)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		plans = append(plans, plannedChunks)
	}
	return plans, nil
}

// PlanPart converts part, in coordinate system cs, into chunks in the
// reference coordinate system, split at the reference coordinate system's
// bounds.
func (s *Service) PlanPart(part [][]float64, cs *coordsys.CoordinateSystem) ([]PlannedChunk, error) {
	if len(part) < 2 {
		return nil, fmt.Errorf("%d points: %w", len(part), ErrNoDataInBounds)
	}
	coords := make([][]float64, len(part))
	for i, coord := range part {
		if len(coord) < 2 {
			return nil, fmt.Errorf("point %d: %w", i, ErrNoDataInBounds)
		}
		coords[i] = coord[:2:2]
	}

	if !cs.Equal(s.reference) {
		reprojected, err := s.reprojector.Reproject(cs, s.reference, coords)
		if err != nil {
			return nil, fmt.Errorf("%s to %s: %w", cs, s.reference, err)
		}
		coords = reprojected
	}

	var chunks []coordsys.Chunk
	if bounds := s.reference.Bounds(); bounds != nil {
		chunks = bounds.SplitIfOutOfBounds(coords)
	} else {
		chunks = []coordsys.Chunk{
			{
				Coordinates:    coords,
				IsWithinBounds: true,
			},
		}
	}
	if chunks == nil {
		return nil, ErrNoDataInBounds
	}

	plannedChunks := make([]PlannedChunk, 0, len(chunks))
	for _, chunk := range chunks {
		plannedChunks = append(plannedChunks, PlannedChunk{
			IsWithinBounds: chunk.IsWithinBounds,
			SubChunks:      SubdivideChunk(chunk, s.maxChunkPoints),
		})
	}
	return plannedChunks, nil
}

// SubdivideChunk splits chunk into consecutive sub-chunks of at most maxPoints
// coordinates. Sub-chunks do not share coordinates.
func SubdivideChunk(chunk coordsys.Chunk, maxPoints int) []coordsys.Chunk {
	if len(chunk.Coordinates) <= maxPoints {
		return []coordsys.Chunk{chunk}
	}
	subChunks := make([]coordsys.Chunk, 0, (len(chunk.Coordinates)+maxPoints-1)/maxPoints)
	for coords := range slices.Chunk(chunk.Coordinates, maxPoints) {
		subChunks = append(subChunks, coordsys.Chunk{
			Coordinates:    coords,
			IsWithinBounds: chunk.IsWithinBounds,
		})
	}
	return subChunks
}
