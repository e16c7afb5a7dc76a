package grid

import (
	"fmt"

	"github.com/gdey/errors"
)

const (
	// ErrDegenerateGrid is returned when the step vectors of the grid
	// collapse to zero length and no geometry can be produced.
	ErrDegenerateGrid = errors.String("degenerate grid: step vector has zero length")

	// ErrNilGeometry is returned when a nil geometry is provided
	ErrNilGeometry = errors.String("geometry is nil")
)

// ErrNegativeCellCount is returned when the number of cells along an axis is negative.
type ErrNegativeCellCount struct {
	Axis  string
	Count int
}

func (err ErrNegativeCellCount) Error() string {
	return fmt.Sprintf("invalid number of cells along %v: %v; must not be negative", err.Axis, err.Count)
}

// ErrInvalidCellSize is returned when a cell size is zero, negative or not a number.
type ErrInvalidCellSize struct {
	Axis string
	Size float64
}

func (err ErrInvalidCellSize) Error() string {
	return fmt.Sprintf("invalid cell size along %v: %v; must be greater than zero", err.Axis, err.Size)
}

// ErrNonFinite is returned when a configuration field is NaN or infinite.
type ErrNonFinite string

func (err ErrNonFinite) Error() string {
	return "configuration field (" + string(err) + ") is not a finite number"
}

// ErrInvalidAttribute is returned when a persisted attribute has the wrong type.
type ErrInvalidAttribute struct {
	Key string
	Err error
}

func (err ErrInvalidAttribute) Error() string {
	return fmt.Sprintf("invalid attribute (%v): %v", err.Key, err.Err)
}

// Cause returns the underlying error
func (err ErrInvalidAttribute) Cause() error { return err.Err }
