package layer

import (
	"sort"
	"sync"

	"github.com/go-spatial/tegola/dict"
)

// InitFunc creates a layer of a registered type from an attribute set.
type InitFunc func(name string, c CRS, attrs dict.Dicter) (*Layer, error)

// CleanupFunc is called when the layer type is unregistered.
type CleanupFunc func()

type funcs struct {
	init    InitFunc
	cleanup CleanupFunc
}

var typesLock sync.RWMutex
var types map[string]funcs

func init() {
	Register(Type, initGrid, nil)
}

func initGrid(name string, c CRS, attrs dict.Dicter) (*Layer, error) {
	l, err := New(name, c)
	if err != nil {
		return nil, err
	}
	if err = l.ReadAttributes(attrs); err != nil {
		return nil, err
	}
	return l, nil
}

// Register makes a layer type available to For.
func Register(layerType string, init InitFunc, cleanup CleanupFunc) error {
	typesLock.Lock()
	defer typesLock.Unlock()

	if types == nil {
		types = make(map[string]funcs)
	}
	if _, ok := types[layerType]; ok {
		return ErrTypeExists(layerType)
	}
	types[layerType] = funcs{
		init:    init,
		cleanup: cleanup,
	}
	return nil
}

// Unregister removes a layer type and calls its clean up function.
func Unregister(layerType string) {
	typesLock.Lock()
	defer typesLock.Unlock()

	t, ok := types[layerType]
	if !ok {
		return
	}
	if t.cleanup != nil {
		t.cleanup()
	}
	delete(types, layerType)
}

// Registered returns the registered layer types
func Registered() []string {
	typesLock.RLock()
	t := make([]string, 0, len(types))
	for k := range types {
		t = append(t, k)
	}
	typesLock.RUnlock()
	sort.Strings(t)
	return t
}

// For returns a layer of the given type built from attrs.
func For(layerType string, name string, c CRS, attrs dict.Dicter) (*Layer, error) {
	typesLock.RLock()
	defer typesLock.RUnlock()
	if types == nil {
		return nil, ErrNoTypesRegistered
	}
	t, ok := types[layerType]
	if !ok {
		return nil, ErrTypeNotRegistered(layerType)
	}
	return t.init(name, c, attrs)
}

// Cleanup calls the clean up function of every layer type and unregisters them all.
func Cleanup() {
	typesLock.Lock()
	for _, t := range types {
		if t.cleanup != nil {
			t.cleanup()
		}
	}
	types = make(map[string]funcs)
	typesLock.Unlock()
}
