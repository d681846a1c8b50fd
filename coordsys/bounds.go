package coordsys

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// A Bounds is an axis-aligned rectangle in a coordinate system's native
// units. Bounds are immutable.
type Bounds struct {
	bound        orb.Bound
	customCenter []float64
}

// A BoundsOption sets an option on a Bounds.
type BoundsOption func(*Bounds)

// NewBounds returns a new Bounds.
func NewBounds(lowerX, upperX, lowerY, upperY float64, options ...BoundsOption) (*Bounds, error) {
	for _, value := range []float64{lowerX, upperX, lowerY, upperY} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%v: invalid bounds value", value)
		}
	}
	if lowerX > upperX {
		return nil, fmt.Errorf("lower x %v greater than upper x %v", lowerX, upperX)
	}
	if lowerY > upperY {
		return nil, fmt.Errorf("lower y %v greater than upper y %v", lowerY, upperY)
	}
	b := &Bounds{
		bound: orb.Bound{
			Min: orb.Point{lowerX, lowerY},
			Max: orb.Point{upperX, upperY},
		},
	}
	for _, option := range options {
		option(b)
	}
	return b, nil
}

// MustNewBounds returns a new Bounds and panics on any error.
func MustNewBounds(lowerX, upperX, lowerY, upperY float64, options ...BoundsOption) *Bounds {
	b, err := NewBounds(lowerX, upperX, lowerY, upperY, options...)
	if err != nil {
		panic(err)
	}
	return b
}

// WithCustomCenter overrides the center derived from the corners.
func WithCustomCenter(x, y float64) BoundsOption {
	return func(b *Bounds) {
		b.customCenter = []float64{x, y}
	}
}

func (b *Bounds) LowerX() float64 { return b.bound.Min[0] }
func (b *Bounds) UpperX() float64 { return b.bound.Max[0] }
func (b *Bounds) LowerY() float64 { return b.bound.Min[1] }
func (b *Bounds) UpperY() float64 { return b.bound.Max[1] }

func (b *Bounds) Width() float64  { return b.UpperX() - b.LowerX() }
func (b *Bounds) Height() float64 { return b.UpperY() - b.LowerY() }

// BottomLeft returns the lower left corner of b.
func (b *Bounds) BottomLeft() []float64 {
	return []float64{b.LowerX(), b.LowerY()}
}

// TopRight returns the upper right corner of b.
func (b *Bounds) TopRight() []float64 {
	return []float64{b.UpperX(), b.UpperY()}
}

// Center returns the custom center of b if there is one, otherwise the
// middle of b.
func (b *Bounds) Center() []float64 {
	if b.customCenter != nil {
		return []float64{b.customCenter[0], b.customCenter[1]}
	}
	center := b.bound.Center()
	return []float64{center[0], center[1]}
}

// HasCustomCenter returns whether b's center was overridden.
func (b *Bounds) HasCustomCenter() bool {
	return b.customCenter != nil
}

// Flatten returns b as [lowerX, lowerY, upperX, upperY].
func (b *Bounds) Flatten() []float64 {
	return []float64{b.LowerX(), b.LowerY(), b.UpperX(), b.UpperY()}
}

// Bound returns b as an orb.Bound.
func (b *Bounds) Bound() orb.Bound {
	return b.bound
}

// IsInBounds returns whether (x, y) lies inside b. Points on an edge are
// inside.
func (b *Bounds) IsInBounds(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	return b.bound.Contains(orb.Point{x, y})
}

func (b *Bounds) clamp(x, y float64) []float64 {
	return []float64{
		min(max(x, b.LowerX()), b.UpperX()),
		min(max(y, b.LowerY()), b.UpperY()),
	}
}
