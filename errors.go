package gridoverlay

import (
	"fmt"

	"github.com/gdey/errors"
)

const (
	// ErrNilGrid is returned when a nil grid is provided
	ErrNilGrid = errors.String("grid is nil")
	// ErrNilOverlayObject is returned when a nil overlay object is provided
	ErrNilOverlayObject = errors.String("overlay object is nil")
	// ErrBlankGridName is returned for a blank grid name
	ErrBlankGridName = errors.String("blank grid name")
	// ErrDuplicateGridName is returned for a duplicate grid name
	ErrDuplicateGridName = errors.String("duplicate grid name")
	// ErrNilProvider is returned when a grid has no provider
	ErrNilProvider = errors.String("grid provider is nil")
	// ErrNoGrids is returned when no grids were configured into the system
	ErrNoGrids = errors.String("no grids configured")
	// ErrInvalidLayer is returned when the layer built for a grid is not valid
	ErrInvalidLayer = errors.String("grid layer is not valid")
)

// ErrUnknownGridName is returned when the grid requested is not found or known.
type ErrUnknownGridName string

func (err ErrUnknownGridName) Error() string {
	return fmt.Sprintf("unknown grid named %v", string(err))
}
