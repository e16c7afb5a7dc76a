package providers

import (
	"sort"
	"strings"
	"sync"

	"github.com/gdey/errors"
	"github.com/go-spatial/tegola/dict"
	"github.com/prometheus/common/log"
)

// InitFunc builds a Provider from its config section. It should validate
// the section and report any errors.
type InitFunc func(dict.Dicter) (Provider, error)

// CleanupFunc releases what the providers of a type hold, such as database
// pools. It is called on shutdown.
type CleanupFunc func()

type registration struct {
	init    InitFunc
	cleanup CleanupFunc
}

var (
	typesLock sync.RWMutex
	types     map[string]registration
)

func typeKey(providerType string) string {
	return strings.ToLower(strings.TrimSpace(providerType))
}

// Register makes a provider type available to For. Types are case
// insensitive.
func Register(providerType string, init InitFunc, cleanup CleanupFunc) error {
	key := typeKey(providerType)

	typesLock.Lock()
	defer typesLock.Unlock()
	if types == nil {
		types = make(map[string]registration)
	}
	if _, ok := types[key]; ok {
		return ErrProviderTypeExists(key)
	}
	types[key] = registration{init: init, cleanup: cleanup}
	return nil
}

// Unregister removes a provider type, running its cleanup.
func Unregister(providerType string) {
	key := typeKey(providerType)

	typesLock.Lock()
	defer typesLock.Unlock()
	reg, ok := types[key]
	if !ok {
		return
	}
	if reg.cleanup != nil {
		reg.cleanup()
	}
	delete(types, key)
}

// Registered returns the sorted provider types.
func Registered() []string {
	typesLock.RLock()
	names := make([]string, 0, len(types))
	for k := range types {
		names = append(names, k)
	}
	typesLock.RUnlock()
	sort.Strings(names)
	return names
}

// For builds a provider of the given type from config.
func For(providerType string, config dict.Dicter) (Provider, error) {
	key := typeKey(providerType)

	typesLock.RLock()
	reg, ok := types[key]
	empty := len(types) == 0
	typesLock.RUnlock()

	switch {
	case empty:
		return nil, ErrNoProvidersRegistered
	case !ok:
		return nil, ErrProviderNotRegistered(key)
	}
	prv, err := reg.init(config)
	if err != nil {
		return nil, errors.Wrapf(err, "error configuring %v provider", key)
	}
	return prv, nil
}

// Cleanup runs the cleanup of every provider type and unregisters them all.
func Cleanup() {
	typesLock.Lock()
	defer typesLock.Unlock()
	for k, reg := range types {
		if reg.cleanup == nil {
			continue
		}
		log.Infof("cleaning up %v providers", k)
		reg.cleanup()
	}
	types = make(map[string]registration)
}
