// Package vector provides the minimal 2D vector used to step through a grid.
package vector

import (
	"fmt"
	"math"

	"github.com/gdey/errors"
)

// ErrZeroLength is returned when a vector of zero length is normalized.
const ErrZeroLength = errors.String("vector has zero length")

// Vector is an immutable 2D vector; every operation returns a new value.
type Vector struct {
	X float64
	Y float64
}

// New returns the vector (x,y)
func New(x, y float64) Vector { return Vector{X: x, Y: y} }

func (v Vector) String() string { return fmt.Sprintf("(%v, %v)", v.X, v.Y) }

// Neg returns the vector pointing the opposite way.
func (v Vector) Neg() Vector { return Vector{X: -v.X, Y: -v.Y} }

// Mul scales the vector by k.
func (v Vector) Mul(k float64) Vector { return Vector{X: v.X * k, Y: v.Y * k} }

// Div scales the vector by 1/k. k must not be zero.
func (v Vector) Div(k float64) Vector { return v.Mul(1.0 / k) }

// Add returns v+w
func (v Vector) Add(w Vector) Vector { return Vector{X: v.X + w.X, Y: v.Y + w.Y} }

// Dot is the dot product of v and w
func (v Vector) Dot(w Vector) float64 { return v.X*w.X + v.Y*w.Y }

// Length of the vector
func (v Vector) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Perp returns the vector rotated 90° counter-clockwise, (-y, x).
func (v Vector) Perp() Vector { return Vector{X: -v.Y, Y: v.X} }

// Angle returns the angle from the positive x axis in radians, in [0, 2π).
func (v Vector) Angle() float64 {
	ang := math.Atan2(v.Y, v.X)
	if ang < 0.0 {
		return ang + 2.0*math.Pi
	}
	return ang
}

// AngleTo is the signed difference w.Angle() - v.Angle(), it is not normalized.
func (v Vector) AngleTo(w Vector) float64 { return w.Angle() - v.Angle() }

// RotateBy rotates the vector by rad radians. The length is recomputed
// and reapplied so it is kept exactly.
func (v Vector) RotateBy(rad float64) Vector {
	ang := math.Atan2(v.Y, v.X) + rad
	length := v.Length()
	return Vector{X: length * math.Cos(ang), Y: length * math.Sin(ang)}
}

// Normal returns the unit vector in the direction of v.
func (v Vector) Normal() (Vector, error) {
	length := v.Length()
	if length == 0.0 {
		return Vector{}, ErrZeroLength
	}
	return v.Div(length), nil
}
