// Package layer binds a grid to a map: it holds the committed
// configuration, regenerates the geometry when the configuration or the crs
// changes, and hands lines and labels to the host renderers.
package layer

import (
	"sync"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/gridoverlay/grid"
	"github.com/go-spatial/tegola/dict"
	"github.com/prometheus/common/log"
)

// Type is the layer type name of grid layers.
const Type = "grid"

// Layer is a grid overlay layer.
type Layer struct {
	name string

	mu       sync.RWMutex
	cfg      grid.Config
	crs      CRS
	geometry *grid.Geometry
	valid    bool

	lineStyle  LineStyle
	labelStyle LabelStyle
}

// New returns an invalid layer with the default configuration. The layer
// becomes valid once a configuration is committed or read from attributes.
func New(name string, c CRS) (*Layer, error) {
	if c == nil {
		return nil, ErrNilCRS
	}
	cfg := grid.DefaultConfig()
	g, err := grid.Generate(cfg, c.IsGeographic())
	if err != nil {
		return nil, err
	}
	return &Layer{
		name:       name,
		cfg:        cfg,
		crs:        c,
		geometry:   g,
		lineStyle:  DefaultLineStyle,
		labelStyle: DefaultLabelStyle,
	}, nil
}

// Name of the layer
func (l *Layer) Name() string { return l.name }

// Type returns the layer type name.
func (l *Layer) Type() string { return Type }

// SetConfig commits cfg and regenerates the geometry. An invalid cfg leaves
// the layer untouched.
func (l *Layer) SetConfig(cfg grid.Config) error {
	if l == nil {
		return ErrNilLayer
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	g, err := grid.Generate(cfg, l.crs.IsGeographic())
	if err != nil {
		log.Warnf("layer %v: not regenerating grid: %v", l.name, err)
		return err
	}
	l.cfg, l.geometry, l.valid = cfg, g, true
	return nil
}

// Config returns the committed configuration.
func (l *Layer) Config() grid.Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// SetCRS changes the crs of the layer and regenerates the geometry, since
// the label text depends on whether the crs is geographic.
func (l *Layer) SetCRS(c CRS) error {
	if l == nil {
		return ErrNilLayer
	}
	if c == nil {
		return ErrNilCRS
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	g, err := grid.Generate(l.cfg, c.IsGeographic())
	if err != nil {
		log.Warnf("layer %v: not regenerating grid: %v", l.name, err)
		return err
	}
	l.crs, l.geometry = c, g
	return nil
}

// CRS returns the crs of the layer.
func (l *Layer) CRS() CRS {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.crs
}

// Geometry returns the geometry generated from the committed configuration.
func (l *Layer) Geometry() *grid.Geometry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.geometry
}

// Extent of the grid in the layer crs.
func (l *Layer) Extent() geom.Extent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.geometry.Extent
}

// Valid reports whether a configuration has been committed to the layer.
func (l *Layer) Valid() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.valid
}

// LineStyle returns the symbol of the grid lines.
func (l *Layer) LineStyle() LineStyle {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lineStyle
}

// SetLineStyle changes the symbol of the grid lines.
func (l *Layer) SetLineStyle(s LineStyle) {
	l.mu.Lock()
	l.lineStyle = s
	l.mu.Unlock()
}

// LabelStyle returns the text style of the labels.
func (l *Layer) LabelStyle() LabelStyle {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.labelStyle
}

// SetLabelStyle changes the text style of the labels.
func (l *Layer) SetLabelStyle(s LabelStyle) {
	l.mu.Lock()
	l.labelStyle = s
	l.mu.Unlock()
}

// Draw hands every grid line, converted to pixels, to the line renderer.
func (l *Layer) Draw(rc RenderContext) error {
	if l == nil {
		return ErrNilLayer
	}
	l.mu.RLock()
	g, style := l.geometry, l.lineStyle
	l.mu.RUnlock()

	if rc.Lines == nil {
		return nil
	}
	for _, line := range g.Lines {
		pts := make([][2]float64, len(line))
		for i := range line {
			pt, err := rc.pixel(line[i])
			if err != nil {
				return err
			}
			pts[i] = pt
		}
		if err := rc.Lines.RenderPolyline(pts, style); err != nil {
			return err
		}
	}
	return nil
}

// DrawLabels hands every label, with its position converted to pixels, to
// the label renderer. Nothing is drawn when labels are disabled.
func (l *Layer) DrawLabels(rc RenderContext) error {
	if l == nil {
		return ErrNilLayer
	}
	l.mu.RLock()
	enabled, g, style := l.cfg.Labels.Enabled, l.geometry, l.labelStyle
	l.mu.RUnlock()

	if !enabled || rc.Labels == nil {
		return nil
	}
	for _, lbl := range g.Labels {
		pt, err := rc.pixel(lbl.Position)
		if err != nil {
			return err
		}
		lbl.Position = geom.Point(pt)
		if err := rc.Labels.RenderLabel(lbl, style); err != nil {
			return err
		}
	}
	return nil
}

// ReadAttributes commits the configuration stored in attrs.
func (l *Layer) ReadAttributes(attrs dict.Dicter) error {
	cfg, err := grid.FromAttributes(attrs)
	if err != nil {
		return err
	}
	return l.SetConfig(cfg)
}

// WriteAttributes returns the attribute set of the committed configuration.
func (l *Layer) WriteAttributes() dict.Dict {
	return l.Config().Attributes()
}
