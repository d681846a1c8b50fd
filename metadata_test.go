package elevationprofile_test

import (
	"math"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-elevationprofile"
)

func elevationPoint(dist, elevation float64) elevationprofile.Point {
	return elevationprofile.Point{
		Dist:             dist,
		HasDist:          true,
		Elevation:        elevation,
		HasElevationData: true,
	}
}

func TestNewMetadata(t *testing.T) {
	for _, tc := range []struct {
		name     string
		segments []elevationprofile.Segment
		expected elevationprofile.Metadata
	}{
		{
			name: "empty",
		},
		{
			name: "flat",
			segments: []elevationprofile.Segment{
				{Points: []elevationprofile.Point{elevationPoint(0, 500), elevationPoint(1000, 500)}},
			},
			expected: elevationprofile.Metadata{
				HasElevationData:    true,
				MinElevation:        500,
				MaxElevation:        500,
				TotalLinearDistance: 1000,
				SlopeDistance:       1000,
				HikingTime:          14 * time.Minute,
			},
		},
		{
			name: "uphill",
			segments: []elevationprofile.Segment{
				{Points: []elevationprofile.Point{elevationPoint(0, 0), elevationPoint(1000, 100)}},
			},
			expected: elevationprofile.Metadata{
				HasElevationData:    true,
				MinElevation:        0,
				MaxElevation:        100,
				ElevationDifference: 100,
				TotalAscent:         100,
				TotalLinearDistance: 1000,
				SlopeDistance:       math.Hypot(1000, 100),
				HikingTime:          20 * time.Minute,
			},
		},
		{
			name: "downhill",
			segments: []elevationprofile.Segment{
				{Points: []elevationprofile.Point{elevationPoint(0, 100), elevationPoint(1000, 0)}},
			},
			expected: elevationprofile.Metadata{
				HasElevationData:    true,
				MinElevation:        0,
				MaxElevation:        100,
				ElevationDifference: -100,
				TotalDescent:        100,
				TotalLinearDistance: 1000,
				SlopeDistance:       math.Hypot(1000, 100),
				HikingTime:          14 * time.Minute,
			},
		},
		{
			name: "steep",
			segments: []elevationprofile.Segment{
				{Points: []elevationprofile.Point{elevationPoint(0, 0), elevationPoint(100, 80)}},
			},
			expected: elevationprofile.Metadata{
				HasElevationData:    true,
				MinElevation:        0,
				MaxElevation:        80,
				ElevationDifference: 80,
				TotalAscent:         80,
				TotalLinearDistance: 100,
				SlopeDistance:       math.Hypot(100, 80),
				HikingTime:          13 * time.Minute,
			},
		},
		{
			name: "unsorted",
			segments: []elevationprofile.Segment{
				{Points: []elevationprofile.Point{elevationPoint(1000, 100), elevationPoint(0, 0)}},
			},
			expected: elevationprofile.Metadata{
				HasElevationData:    true,
				MinElevation:        0,
				MaxElevation:        100,
				ElevationDifference: 100,
				TotalAscent:         100,
				TotalLinearDistance: 1000,
				SlopeDistance:       math.Hypot(1000, 100),
				HikingTime:          20 * time.Minute,
			},
		},
		{
			name: "segments",
			segments: []elevationprofile.Segment{
				{Points: []elevationprofile.Point{elevationPoint(0, 0), elevationPoint(1000, 0)}},
				{Points: []elevationprofile.Point{elevationPoint(0, 100), elevationPoint(1000, 100)}},
			},
			expected: elevationprofile.Metadata{
				HasElevationData:    true,
				MinElevation:        0,
				MaxElevation:        100,
				ElevationDifference: 100,
				TotalLinearDistance: 2000,
				SlopeDistance:       2000,
				HikingTime:          29 * time.Minute,
			},
		},
		{
			name: "partial_elevation_data",
			segments: []elevationprofile.Segment{
				{
					Points: []elevationprofile.Point{
						elevationPoint(0, 100),
						{Dist: 500, HasDist: true},
						elevationPoint(1000, 200),
						elevationPoint(2000, 200),
					},
				},
			},
			expected: elevationprofile.Metadata{
				HasElevationData:    true,
				MinElevation:        100,
				MaxElevation:        200,
				ElevationDifference: 100,
				TotalLinearDistance: 2000,
				SlopeDistance:       1000,
				HikingTime:          14 * time.Minute,
			},
		},
		{
			name: "no_elevation_data",
			segments: []elevationprofile.Segment{
				{
					Points: []elevationprofile.Point{
						{Dist: 0, HasDist: true},
						{Dist: 500, HasDist: true},
					},
				},
			},
			expected: elevationprofile.Metadata{
				TotalLinearDistance: 500,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual := elevationprofile.NewMetadata(tc.segments)
			assert.Equal(t, tc.expected, actual)
		})
	}
}
