package elevationprofile

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// hikingTimeCoefficients are the coefficients of the polynomial giving the
// hiking time in minutes per kilometer as a function of slope, where the slope
// is in percent divided by ten. The fit is valid for slopes within
// [-maxFittedSlope, maxFittedSlope].
var hikingTimeCoefficients = [...]float64{
	14.271,
	3.6991,
	2.5922,
	-1.4384,
	0.32105,
	0.81542,
	-0.090261,
	-0.20757,
	0.010192,
	0.028588,
	-0.00057466,
	-0.0021842,
	1.5176e-5,
	8.6894e-5,
	-1.3584e-7,
	-1.4026e-6,
}

// maxFittedSlope is the largest absolute slope, in percent, for which
// hikingTimeCoefficients apply.
const maxFittedSlope = 40

// Metadata are values derived from the points of a Profile. All distances and
// elevations are in meters. If no point has elevation data then every
// elevation-derived value is zero.
type Metadata struct {
	HasElevationData    bool
	MinElevation        float64
	MaxElevation        float64
	ElevationDifference float64
	TotalAscent         float64
	TotalDescent        float64
	TotalLinearDistance float64
	SlopeDistance       float64
	HikingTime          time.Duration
}

// NewMetadata returns the metadata of segments. Points are considered in
// distance order. Differences between consecutive points are only taken
// within a segment.
func NewMetadata(segments []Segment) Metadata {
	var metadata Metadata
	var first, last *Point
	var hikingMinutes float64
	for _, segment := range segments {
		points := slices.Clone(segment.Points)
		slices.SortStableFunc(points, func(a, b Point) int {
			return cmp.Compare(a.Dist, b.Dist)
		})

		for i := range points {
			point := &points[i]
			if point.HasElevationData {
				if first == nil {
					first = point
					metadata.MinElevation = point.Elevation
					metadata.MaxElevation = point.Elevation
				} else {
					metadata.MinElevation = min(metadata.MinElevation, point.Elevation)
					metadata.MaxElevation = max(metadata.MaxElevation, point.Elevation)
				}
				last = point
			}
			if i == 0 {
				continue
			}

			previous := &points[i-1]
			dDist := point.Dist - previous.Dist
			metadata.TotalLinearDistance += dDist
			if !previous.HasElevationData || !point.HasElevationData {
				continue
			}
			dElevation := point.Elevation - previous.Elevation
			if dElevation > 0 {
				metadata.TotalAscent += dElevation
			} else {
				metadata.TotalDescent -= dElevation
			}
			metadata.SlopeDistance += math.Hypot(dDist, dElevation)
			if dDist > 0 {
				hikingMinutes += hikingMinutesPerKilometer(100*dElevation/dDist) * dDist / 1000
			}
		}
	}

	if first == nil {
		return Metadata{
			TotalLinearDistance: metadata.TotalLinearDistance,
		}
	}
	metadata.HasElevationData = true
	metadata.ElevationDifference = last.Elevation - first.Elevation
	metadata.HikingTime = time.Duration(math.Round(hikingMinutes)) * time.Minute
	return metadata
}

// hikingMinutesPerKilometer returns the hiking time in minutes per kilometer
// on a slope of slope percent.
func hikingMinutesPerKilometer(slope float64) float64 {
	if math.Abs(slope) > maxFittedSlope {
		return hikingTimePolynomial(math.Copysign(maxFittedSlope/10, slope)) * math.Abs(slope) / maxFittedSlope
	}
	return hikingTimePolynomial(slope / 10)
}

func hikingTimePolynomial(s float64) float64 {
	var result float64
	for i := len(hikingTimeCoefficients) - 1; i >= 0; i-- {
		result = result*s + hikingTimeCoefficients[i]
	}
	return result
}
