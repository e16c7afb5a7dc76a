// Package providers defines the named sources of persisted grid
// configurations.
package providers

import (
	"context"

	"github.com/go-spatial/gridoverlay/crs"
	"github.com/go-spatial/tegola/dict"
)

const (
	// ConfigKeyName is the name of the provider
	ConfigKeyName = "name"
	// ConfigKeyType is the type of the provider
	ConfigKeyType = "type"
	// ConfigKeySRID is the srid the grid configurations are expressed in
	ConfigKeySRID = "srid"
)

// Grid is a persisted grid configuration.
type Grid struct {
	Name string
	// SRID of the origin and cell sizes
	SRID crs.SRID
	// Attributes is the flat attribute set of the grid
	Attributes dict.Dicter
}

// Provider returns persisted grid configurations by name.
type Provider interface {
	// Grid returns the configuration stored under name. If there is none,
	// ErrNotFound is returned.
	Grid(ctx context.Context, name string) (Grid, error)
}
