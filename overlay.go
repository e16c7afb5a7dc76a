// Package gridoverlay binds named grids to the providers their
// configuration is read from and the file stores their artifacts are
// written to.
package gridoverlay

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/go-spatial/gridoverlay/config"
	"github.com/go-spatial/gridoverlay/filestore"
	"github.com/go-spatial/gridoverlay/layer"
	"github.com/go-spatial/gridoverlay/providers"
	"github.com/prometheus/common/log"
)

// Grid is a named grid of the overlay.
type Grid struct {
	Name string
	// Desc of the grid
	Desc string
	// Provider the grid configuration is read from
	Provider providers.Provider
	// Filestore the generated files are written to. Nil means the files
	// are only generated.
	Filestore filestore.Provider
	// SVGWidth in pixels of the rendered grid
	SVGWidth int
}

// Layer reads the configuration of the grid and returns a valid grid layer
// for it.
func (g *Grid) Layer(ctx context.Context) (*layer.Layer, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if g.Provider == nil {
		return nil, ErrNilProvider
	}
	pg, err := g.Provider.Grid(ctx, g.Name)
	if err != nil {
		return nil, err
	}
	l, err := layer.For(layer.Type, g.Name, pg.SRID, pg.Attributes)
	if err != nil {
		return nil, err
	}
	if !l.Valid() {
		return nil, ErrInvalidLayer
	}
	return l, nil
}

func (g *Grid) width() int64 {
	if g.SVGWidth <= 0 {
		return config.DefaultSVGWidth
	}
	return int64(g.SVGWidth)
}

// Overlay is the set of configured grids.
type Overlay struct {
	gLock sync.RWMutex
	grids map[string]*Grid
}

// AddGrid adds g to the overlay. Grid names are case insensitive.
func (o *Overlay) AddGrid(g *Grid) error {
	if o == nil {
		return ErrNilOverlayObject
	}
	if g == nil {
		return ErrNilGrid
	}
	if g.Provider == nil {
		return ErrNilProvider
	}
	name := strings.ToLower(strings.TrimSpace(g.Name))
	if name == "" {
		return ErrBlankGridName
	}

	o.gLock.Lock()
	defer o.gLock.Unlock()
	if o.grids == nil {
		o.grids = make(map[string]*Grid)
	}
	if _, ok := o.grids[name]; ok {
		return ErrDuplicateGridName
	}
	o.grids[name] = g
	log.Infof("added grid %v", name)
	return nil
}

// Grids returns the sorted names of the grids.
func (o *Overlay) Grids() []string {
	if o == nil {
		return nil
	}
	o.gLock.RLock()
	names := make([]string, 0, len(o.grids))
	for name := range o.grids {
		names = append(names, name)
	}
	o.gLock.RUnlock()
	sort.Strings(names)
	return names
}

// GridFor returns the grid with the given name.
func (o *Overlay) GridFor(name string) (*Grid, error) {
	if o == nil {
		return nil, ErrNilOverlayObject
	}
	name = strings.ToLower(strings.TrimSpace(name))

	o.gLock.RLock()
	defer o.gLock.RUnlock()
	if len(o.grids) == 0 {
		return nil, ErrNoGrids
	}
	g, ok := o.grids[name]
	if !ok {
		return nil, ErrUnknownGridName(name)
	}
	return g, nil
}

// Layer returns the layer of the named grid.
func (o *Overlay) Layer(ctx context.Context, name string) (*layer.Layer, error) {
	g, err := o.GridFor(name)
	if err != nil {
		return nil, err
	}
	return g.Layer(ctx)
}

// Generate builds the named grid and writes its artifacts to the grid's
// filestore.
func (o *Overlay) Generate(ctx context.Context, name string) (*GeneratedFiles, error) {
	g, err := o.GridFor(name)
	if err != nil {
		return nil, err
	}
	l, err := g.Layer(ctx)
	if err != nil {
		return nil, err
	}
	files := NewGeneratedFiles(g.Name)
	if g.Filestore == nil {
		log.Infof("grid %v has no filestore, nothing written", g.Name)
		return files, nil
	}
	fw, err := g.Filestore.FileWriter(g.Name)
	if err != nil {
		return nil, err
	}
	for _, kind := range filestore.Kinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		kind := kind
		err := filestore.WriteFile(fw, files.For(kind), kind, func(w io.Writer) error {
			return Encode(w, kind, l, g.width())
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
