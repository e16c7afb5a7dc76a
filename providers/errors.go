package providers

import "github.com/gdey/errors"

const (
	// ErrNotFound is returned when a requested grid does not exist in the
	// provider
	ErrNotFound = errors.String("grid not found")

	// ErrNoProvidersRegistered is returned when providers have not been registered with the system
	ErrNoProvidersRegistered = errors.String("no providers registered")
)

// ErrProviderTypeExists is returned when the Provider type was already registered.
type ErrProviderTypeExists string

func (err ErrProviderTypeExists) Error() string {
	return "provider (" + string(err) + ") already exists"
}

// ErrProviderNotRegistered is returned when the requested provider type has not registered
type ErrProviderNotRegistered string

func (err ErrProviderNotRegistered) Error() string {
	return "provider (" + string(err) + ") not registered"
}

// ErrUnknownProvider is returned when no provider is configured under a name
type ErrUnknownProvider string

func (err ErrUnknownProvider) Error() string {
	return "unknown provider (" + string(err) + ")"
}
