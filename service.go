package elevationprofile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/sourcegraph/conc/iter"

	"github.com/twpayne/go-elevationprofile/coordsys"
)

// A Service computes elevation profiles.
type Service struct {
	querier        Querier
	reference      *coordsys.CoordinateSystem
	reprojector    coordsys.Reprojector
	maxChunkPoints int
	logger         *slog.Logger
}

// A ServiceOption sets an option on a Service.
type ServiceOption func(*Service)

// NewService returns a new Service that queries querier. The default
// reference coordinate system is coordsys.LV95.
func NewService(querier Querier, options ...ServiceOption) (*Service, error) {
	s := &Service{
		querier:        querier,
		reference:      coordsys.LV95,
		maxChunkPoints: DefaultMaxChunkPoints,
		logger:         slog.Default(),
	}
	for _, option := range options {
		option(s)
	}

	if s.maxChunkPoints < 1 {
		return nil, fmt.Errorf("%d: invalid maximum chunk points", s.maxChunkPoints)
	}
	if s.reprojector == nil {
		reprojector, err := coordsys.NewProjReprojector()
		if err != nil {
			return nil, err
		}
		s.reprojector = reprojector
	}
	return s, nil
}

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMaxChunkPoints(maxChunkPoints int) ServiceOption {
	return func(s *Service) {
		s.maxChunkPoints = maxChunkPoints
	}
}

// WithReferenceSystem sets the coordinate system accepted by the backend.
func WithReferenceSystem(reference *coordsys.CoordinateSystem) ServiceOption {
	return func(s *Service) {
		s.reference = reference
	}
}

func WithReprojector(reprojector coordsys.Reprojector) ServiceOption {
	return func(s *Service) {
		s.reprojector = reprojector
	}
}

// ReferenceSystem returns the coordinate system of the returned profiles.
func (s *Service) ReferenceSystem() *coordsys.CoordinateSystem {
	return s.reference
}

// ComputeProfileLine returns the elevation profile of a single line in
// coordinate system cs.
func (s *Service) ComputeProfileLine(ctx context.Context, line [][]float64, cs *coordsys.CoordinateSystem) (*Profile, error) {
	return s.ComputeProfile(ctx, [][][]float64{line}, cs)
}

// ComputeProfileGeometry returns the elevation profile of g in coordinate
// system cs.
func (s *Service) ComputeProfileGeometry(ctx context.Context, g orb.Geometry, cs *coordsys.CoordinateSystem) (*Profile, error) {
	parts, err := PartsFromGeometry(g)
	if err != nil {
		return nil, newProfileError(err)
	}
	return s.ComputeProfile(ctx, parts, cs)
}

// ComputeProfile returns the elevation profile of parts in coordinate system
// cs, with one segment per part. Points are in the reference coordinate
// system.
//
// A part that cannot be profiled is logged and omitted. If no part can be
// profiled then the errors of all failed parts are returned, joined. Errors
// wrapping ErrTooManyPoints or ErrMalformedChunk are returned immediately.
func (s *Service) ComputeProfile(ctx context.Context, parts [][][]float64, cs *coordsys.CoordinateSystem) (*Profile, error) {
	if cs == nil {
		return nil, newProfileError(fmt.Errorf("no coordinate system: %w", ErrInputMissing))
	}
	if countCoords(parts) == 0 {
		return nil, newProfileError(ErrInputMissing)
	}

	segments := make([]Segment, 0, len(parts))
	var partErrs []error
	for partIndex, part := range parts {
		segment, err := s.computeSegment(ctx, partIndex, part, cs)
		switch {
		case errors.Is(err, ErrTooManyPoints), errors.Is(err, ErrMalformedChunk):
			return nil, newProfileError(err)
		case err != nil:
			s.logger.Warn("part dropped from elevation profile", "part", partIndex, "error", err)
			partErrs = append(partErrs, fmt.Errorf("part %d: %w", partIndex, err))
		case len(segment.Points) > 0:
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		if len(partErrs) == 0 {
			return nil, newProfileError(ErrNoDataInBounds)
		}
		return nil, newProfileError(errors.Join(partErrs...))
	}

	profile := newProfile(segments)
	s.logger.Debug("computed elevation profile", "parts", len(parts), "segments", len(segments), "points", len(profile.Points()))
	return profile, nil
}

// computeSegment returns the segment of part. Chunks are processed in order
// because each chunk's distances continue from the last point of the previous
// chunk.
func (s *Service) computeSegment(ctx context.Context, partIndex int, part [][]float64, cs *coordsys.CoordinateSystem) (Segment, error) {
	plannedChunks, err := s.PlanPart(part, cs)
	if err != nil {
		return Segment{}, err
	}

	var points []Point
	var start *Point
	var chunkErr error
	for chunkIndex, plannedChunk := range plannedChunks {
		chunksProcessed.WithLabelValues(strconv.FormatBool(plannedChunk.IsWithinBounds)).Inc()
		chunkPoints, err := s.processChunk(ctx, plannedChunk, start)
		switch {
		case errors.Is(err, ErrTooManyPoints), errors.Is(err, ErrMalformedChunk):
			return Segment{}, err
		case err != nil:
			chunkFailures.Inc()
			s.logger.Warn("chunk dropped from elevation profile", "part", partIndex, "chunk", chunkIndex, "error", err)
			chunkErr = err
			continue
		case len(chunkPoints) == 0:
			continue
		}
		points = append(points, chunkPoints...)
		last := chunkPoints[len(chunkPoints)-1]
		start = &last
	}
	if len(points) == 0 && chunkErr != nil {
		return Segment{}, chunkErr
	}
	return newSegment(points), nil
}

// processChunk returns the points of plannedChunk, with distances continuing
// from start. start is nil for the first chunk of a part.
func (s *Service) processChunk(ctx context.Context, plannedChunk PlannedChunk, start *Point) ([]Point, error) {
	if len(plannedChunk.SubChunks) == 0 {
		return nil, ErrMalformedChunk
	}
	for _, subChunk := range plannedChunk.SubChunks {
		if len(subChunk.Coordinates) == 0 {
			return nil, ErrMalformedChunk
		}
	}

	// A chunk of a single repeated point has no profile to query.
	if !plannedChunk.IsWithinBounds || isSinglePoint(plannedChunk.SubChunks) {
		return flatPoints(plannedChunk.SubChunks, start), nil
	}

	// Sub-chunks are independent requests, so query them concurrently.
	// Distance offsets depend only on request order.
	responses, err := iter.MapErr(plannedChunk.SubChunks, func(subChunk *coordsys.Chunk) ([]BackendPoint, error) {
		backendPoints, err := s.querier.Query(ctx, s.reference, s.reference.RoundCoordinates(subChunk.Coordinates))
		if err != nil {
			return nil, err
		}
		if len(backendPoints) <= 2 {
			return nil, fmt.Errorf("%d points: %w", len(backendPoints), ErrIncompleteBackendResponse)
		}
		return backendPoints, nil
	})
	if err != nil {
		return nil, err
	}

	var lastCoordinate []float64
	var lastDist float64
	if start != nil {
		lastCoordinate, lastDist = start.Coordinate, start.Dist
	}
	var points []Point
	for i, backendPoints := range responses {
		offset := lastDist
		if lastCoordinate != nil {
			offset += flatDistance(lastCoordinate, plannedChunk.SubChunks[i].Coordinates[0])
		}
		for _, backendPoint := range backendPoints {
			point := Point{
				Coordinate: []float64{backendPoint.Easting, backendPoint.Northing},
				Dist:       offset + backendPoint.Dist,
				HasDist:    true,
			}
			point.Elevation, point.HasElevationData = backendPoint.Elevation()
			points = append(points, point)
		}
		last := points[len(points)-1]
		lastCoordinate, lastDist = last.Coordinate, last.Dist
	}
	return points, nil
}

// flatPoints returns points for out of bounds sub-chunks, with planar
// distances and no elevation data.
func flatPoints(subChunks []coordsys.Chunk, start *Point) []Point {
	var lastCoordinate []float64
	var lastDist float64
	if start != nil {
		lastCoordinate, lastDist = start.Coordinate, start.Dist
	}
	var points []Point
	for _, subChunk := range subChunks {
		for _, coord := range subChunk.Coordinates {
			if lastCoordinate != nil {
				lastDist += flatDistance(lastCoordinate, coord)
			}
			points = append(points, Point{
				Coordinate: []float64{coord[0], coord[1]},
				Dist:       lastDist,
				HasDist:    true,
			})
			lastCoordinate = coord
		}
	}
	return points
}

func flatDistance(a, b []float64) float64 {
	return planar.Distance(orb.Point{a[0], a[1]}, orb.Point{b[0], b[1]})
}

func isSinglePoint(subChunks []coordsys.Chunk) bool {
	first := subChunks[0].Coordinates[0]
	for _, subChunk := range subChunks {
		for _, coord := range subChunk.Coordinates {
			if coord[0] != first[0] || coord[1] != first[1] {
				return false
			}
		}
	}
	return true
}

func countCoords(parts [][][]float64) int {
	var n int
	for _, part := range parts {
		n += len(part)
	}
	return n
}
