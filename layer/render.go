package layer

import (
	"image/color"

	"github.com/go-spatial/gridoverlay/grid"
)

// CRS is the coordinate reference system of a layer.
type CRS interface {
	IsGeographic() bool
}

// Transformer converts a point from the layer crs to the display crs.
type Transformer interface {
	Transform(pt [2]float64) ([2]float64, error)
}

// MapToPixel converts a point in the display crs to device pixels.
type MapToPixel interface {
	Pixel(pt [2]float64) [2]float64
}

// LineRenderer draws a polyline given in pixels.
type LineRenderer interface {
	RenderPolyline(pts [][2]float64, style LineStyle) error
}

// LabelRenderer draws a label whose position is given in pixels.
type LabelRenderer interface {
	RenderLabel(lbl grid.Label, style LabelStyle) error
}

// LineStyle is the symbol the grid lines are drawn with.
type LineStyle struct {
	Color color.RGBA
	// Width in pixels; zero is a hairline
	Width float64
}

// DefaultLineStyle is a green hairline.
var DefaultLineStyle = LineStyle{
	Color: color.RGBA{R: 0, G: 255, B: 0, A: 255},
	Width: 0,
}

// LabelStyle is the text style the labels are drawn with.
type LabelStyle struct {
	Font   string
	Size   float64
	Bold   bool
	Italic bool
	Color  color.RGBA
}

// DefaultLabelStyle is 10pt black sans-serif text.
var DefaultLabelStyle = LabelStyle{
	Font:  "sans-serif",
	Size:  10,
	Color: color.RGBA{A: 255},
}

// RenderContext bundles the services a draw call uses.
type RenderContext struct {
	// Transform from the layer crs to the display crs. Nil is the identity.
	Transform Transformer
	// Pixels from the display crs to device pixels. Nil is the identity.
	Pixels MapToPixel
	Lines  LineRenderer
	Labels LabelRenderer
}

func (rc RenderContext) pixel(pt [2]float64) ([2]float64, error) {
	if rc.Transform != nil {
		var err error
		if pt, err = rc.Transform.Transform(pt); err != nil {
			return pt, err
		}
	}
	if rc.Pixels != nil {
		pt = rc.Pixels.Pixel(pt)
	}
	return pt, nil
}
