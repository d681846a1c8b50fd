// Package coordsys describes coordinate systems, their bounds, and clipping of
// polylines against those bounds.
package coordsys

import (
	"fmt"
	"math"
)

// A Resolver converts between zoom levels and resolutions for a coordinate
// system.
type Resolver interface {
	ResolutionForZoom(zoom float64) float64
	ZoomForResolution(resolution float64) float64
}

// A CoordinateSystem is a projection identified by a numeric code. Two
// CoordinateSystems with the same code are interchangeable. CoordinateSystems
// are immutable.
type CoordinateSystem struct {
	code           int
	label          string
	projDefinition string
	bounds         *Bounds
	resolver       Resolver
	decimals       int
}

// An Option sets an option on a CoordinateSystem.
type Option func(*CoordinateSystem)

// New returns a new CoordinateSystem. projDefinition is passed unchanged to
// the Reprojector.
func New(code int, projDefinition string, options ...Option) *CoordinateSystem {
	cs := &CoordinateSystem{
		code:           code,
		label:          fmt.Sprintf("EPSG:%d", code),
		projDefinition: projDefinition,
		resolver:       defaultMercatorResolver,
		decimals:       2,
	}
	for _, option := range options {
		option(cs)
	}
	return cs
}

func WithBounds(bounds *Bounds) Option {
	return func(cs *CoordinateSystem) {
		cs.bounds = bounds
	}
}

func WithLabel(label string) Option {
	return func(cs *CoordinateSystem) {
		cs.label = label
	}
}

// WithPrecision sets the number of decimals kept by RoundCoordinateValue.
func WithPrecision(decimals int) Option {
	return func(cs *CoordinateSystem) {
		cs.decimals = decimals
	}
}

func WithResolver(resolver Resolver) Option {
	return func(cs *CoordinateSystem) {
		cs.resolver = resolver
	}
}

// Code returns cs's numeric code.
func (cs *CoordinateSystem) Code() int {
	return cs.code
}

// Label returns cs's label, for example "EPSG:2056".
func (cs *CoordinateSystem) Label() string {
	return cs.label
}

// ProjDefinition returns the definition passed to the Reprojector.
func (cs *CoordinateSystem) ProjDefinition() string {
	return cs.projDefinition
}

// Bounds returns cs's bounds, or nil if cs is unbounded.
func (cs *CoordinateSystem) Bounds() *Bounds {
	return cs.bounds
}

func (cs *CoordinateSystem) String() string {
	return cs.label
}

// Equal returns whether cs and other identify the same coordinate system.
func (cs *CoordinateSystem) Equal(other *CoordinateSystem) bool {
	if cs == nil || other == nil {
		return cs == other
	}
	return cs.code == other.code
}

// IsInBounds returns whether (x, y) is inside cs's bounds. It returns false if
// cs has no bounds.
func (cs *CoordinateSystem) IsInBounds(x, y float64) bool {
	if cs.bounds == nil {
		return false
	}
	return cs.bounds.IsInBounds(x, y)
}

// RoundCoordinateValue rounds value to cs's precision.
func (cs *CoordinateSystem) RoundCoordinateValue(value float64) float64 {
	scale := math.Pow10(cs.decimals)
	return math.Round(value*scale) / scale
}

// RoundCoordinates returns a copy of coords with every value rounded to cs's
// precision.
func (cs *CoordinateSystem) RoundCoordinates(coords [][]float64) [][]float64 {
	rounded := cloneCoords(coords)
	for _, coord := range rounded {
		for i, value := range coord {
			coord[i] = cs.RoundCoordinateValue(value)
		}
	}
	return rounded
}

func (cs *CoordinateSystem) ResolutionForZoom(zoom float64) float64 {
	return cs.resolver.ResolutionForZoom(zoom)
}

func (cs *CoordinateSystem) ZoomForResolution(resolution float64) float64 {
	return cs.resolver.ZoomForResolution(resolution)
}

// BoundsAs returns cs's bounds expressed in target. It returns nil if cs has
// no bounds, and cs's own bounds if target is cs.
func (cs *CoordinateSystem) BoundsAs(target *CoordinateSystem, reprojector Reprojector) (*Bounds, error) {
	if cs.bounds == nil {
		return nil, nil
	}
	if cs.Equal(target) {
		return cs.bounds, nil
	}

	coords := [][]float64{
		cs.bounds.BottomLeft(),
		cs.bounds.TopRight(),
	}
	if cs.bounds.HasCustomCenter() {
		coords = append(coords, cs.bounds.Center())
	}
	reprojected, err := reprojector.Reproject(cs, target, coords)
	if err != nil {
		return nil, fmt.Errorf("%s to %s: %w", cs, target, err)
	}

	bottomLeft, topRight := reprojected[0], reprojected[1]
	var options []BoundsOption
	if len(reprojected) > 2 {
		options = append(options, WithCustomCenter(reprojected[2][0], reprojected[2][1]))
	}
	return NewBounds(bottomLeft[0], topRight[0], bottomLeft[1], topRight[1], options...)
}

func cloneCoords(coords [][]float64) [][]float64 {
	n := 0
	for _, coord := range coords {
		n += len(coord)
	}
	clonedCoordsFlat := make([]float64, n)
	clonedCoords := make([][]float64, len(coords))
	offset := 0
	for i, coord := range coords {
		copy(clonedCoordsFlat[offset:offset+len(coord)], coord)
		clonedCoords[i] = clonedCoordsFlat[offset : offset+len(coord) : offset+len(coord)]
		offset += len(coord)
	}
	return clonedCoords
}
