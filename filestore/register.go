package filestore

import (
	"sort"
	"strings"
	"sync"

	"github.com/go-spatial/tegola/dict"
	"github.com/prometheus/common/log"
)

// Config is the interface that is passed to filestore providers to configure them
type Config interface {
	dict.Dicter
	// FileStoreFor returns a previously configured filestore by name.
	// If the filestore does not exist ErrUnknownProvider will be returned
	FileStoreFor(name string) (Provider, error)
}

// InitFunc initializes a filestore provider given a config.
// The InitFunc should validate the config and report any errors.
type InitFunc func(Config) (Provider, error)

// CleanupFunc is called when the system is shutting down.
type CleanupFunc func()

type entry struct {
	init    InitFunc
	cleanup CleanupFunc
}

// registry of filestore types, keyed by lower case type name
type registry struct {
	sync.RWMutex
	entries map[string]entry
}

var stores registry

func (r *registry) add(typ string, e entry) error {
	r.Lock()
	defer r.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]entry)
	}
	if _, ok := r.entries[typ]; ok {
		return ErrProviderTypeExists(typ)
	}
	r.entries[typ] = e
	return nil
}

func (r *registry) get(typ string) (entry, error) {
	r.RLock()
	defer r.RUnlock()
	if len(r.entries) == 0 {
		return entry{}, ErrNoProvidersRegistered
	}
	e, ok := r.entries[typ]
	if !ok {
		return entry{}, ErrUnknownProvider(typ)
	}
	return e, nil
}

// drain removes the entries of typs, or every entry when typs is empty, and
// returns their cleanup functions.
func (r *registry) drain(typs ...string) []CleanupFunc {
	r.Lock()
	defer r.Unlock()
	if len(typs) == 0 {
		for typ := range r.entries {
			typs = append(typs, typ)
		}
	}
	var fns []CleanupFunc
	for _, typ := range typs {
		if e, ok := r.entries[typ]; ok && e.cleanup != nil {
			fns = append(fns, e.cleanup)
		}
		delete(r.entries, typ)
	}
	return fns
}

func normType(typ string) string { return strings.ToLower(strings.TrimSpace(typ)) }

// Register is called by the init functions of each of the providers
func Register(providerType string, init InitFunc, cleanup CleanupFunc) error {
	return stores.add(normType(providerType), entry{init: init, cleanup: cleanup})
}

// Unregister will remove a provider and call its cleanup function.
func Unregister(providerType string) {
	for _, fn := range stores.drain(normType(providerType)) {
		fn()
	}
}

// Registered returns the providers that have been registered
func Registered() []string {
	stores.RLock()
	typs := make([]string, 0, len(stores.entries))
	for typ := range stores.entries {
		typs = append(typs, typ)
	}
	stores.RUnlock()
	sort.Strings(typs)
	return typs
}

// For returns a configured provider given the type and config
func For(providerType string, config Config) (Provider, error) {
	e, err := stores.get(normType(providerType))
	if err != nil {
		return nil, err
	}
	return e.init(config)
}

// Cleanup gives each provider a chance to do any needed cleanup and
// unregisters all providers.
func Cleanup() {
	fns := stores.drain()
	if len(fns) > 0 {
		log.Infof("cleaning up %v filestore types", len(fns))
	}
	for _, fn := range fns {
		fn()
	}
}
