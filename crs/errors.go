package crs

import "fmt"

// ErrUnsupportedTransform is returned when no transform between two systems is known.
type ErrUnsupportedTransform struct {
	From SRID
	To   SRID
}

func (err ErrUnsupportedTransform) Error() string {
	return fmt.Sprintf("unsupported transform from %v to %v", err.From, err.To)
}
