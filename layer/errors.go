package layer

import "github.com/gdey/errors"

const (
	// ErrNilCRS is returned when a layer is given no coordinate reference system
	ErrNilCRS = errors.String("crs is nil")

	// ErrNilLayer is returned when a method is called on a nil layer
	ErrNilLayer = errors.String("layer is nil")

	// ErrDialogClosed is returned when a dialog is used after it was accepted or rejected
	ErrDialogClosed = errors.String("dialog already closed")

	// ErrNoTypesRegistered is returned when no layer types have been registered
	ErrNoTypesRegistered = errors.String("no layer types registered")
)

// ErrTypeExists is returned when the layer type was already registered.
type ErrTypeExists string

func (err ErrTypeExists) Error() string {
	return "layer type (" + string(err) + ") already exists"
}

// ErrTypeNotRegistered is returned when the requested layer type has not been registered
type ErrTypeNotRegistered string

func (err ErrTypeNotRegistered) Error() string {
	return "layer type (" + string(err) + ") not registered"
}
