// Package svg renders grid lines and labels into an SVG document.
package svg

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"sort"
	"strings"

	"github.com/gdey/errors"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/gridoverlay/grid"
	"github.com/go-spatial/gridoverlay/layer"
)

// Mime is the content type of the rendered document.
const Mime = "image/svg+xml"

const (
	// ErrEmptyExtent is returned when the extent to render has no area
	ErrEmptyExtent = errors.String("extent has no width or height")
)

// ErrUnsupportedGeometry is returned for geometries that are not lines.
type ErrUnsupportedGeometry struct {
	Geom geom.Geometry
}

func (err ErrUnsupportedGeometry) Error() string {
	return fmt.Sprintf("unsupported geometry type %T", err.Geom)
}

// Attr renders attrs as sorted key="value" pairs, followed by extra.
func Attr(attrs map[string]string, extra string) string {
	pairs := make([]string, 0, len(attrs)+1)
	for k, v := range attrs {
		pairs = append(pairs, fmt.Sprintf(`%v="%v"`, k, html.EscapeString(v)))
	}
	sort.Strings(pairs)
	extra = strings.TrimSpace(extra)
	if extra != "" {
		pairs = append(pairs, extra)
	}
	return strings.Join(pairs, " ")
}

// Canvas collects the drawn elements of a single document. Map coordinates
// inside the extent are mapped onto a width by height pixel area, with y
// increasing downwards.
type Canvas struct {
	fn     func(...float64) ([]float64, error)
	width  int64
	height int64
	buff   int64

	body strings.Builder
}

// New returns a canvas for ext, scaled so the extent spans width pixels.
// buff pads the view box on every side.
func New(ext *geom.Extent, width int64, buff int64) (*Canvas, error) {
	if ext == nil || ext.XSpan() <= 0 || ext.YSpan() <= 0 {
		return nil, ErrEmptyExtent
	}
	scale := float64(width) / ext.XSpan()
	deltaX := ext[0]
	deltaY := ext[3] * -1
	fn := func(pts ...float64) ([]float64, error) {
		pts[0] -= deltaX
		pts[1] *= -1
		pts[1] -= deltaY
		pts[0] *= scale
		pts[1] *= scale
		return pts, nil
	}
	return &Canvas{
		fn:     fn,
		width:  width,
		height: int64(ext.YSpan()*scale + 0.5),
		buff:   buff,
	}, nil
}

// Pixel maps a point in map coordinates to the canvas.
func (c *Canvas) Pixel(pt [2]float64) [2]float64 {
	xy, _ := c.fn(pt[0], pt[1])
	return [2]float64{xy[0], xy[1]}
}

// Path maps g onto the canvas and returns it as path data.
func (c *Canvas) Path(g geom.Geometry) (string, error) {
	g, err := geom.ApplyToPoints(g, c.fn)
	if err != nil {
		return "", err
	}
	return encodePath(g)
}

func encodeLine(path *strings.Builder, l [][2]float64) {
	path.WriteString("M")
	pts := make([]string, 0, len(l))
	for _, pt := range l {
		pts = append(pts, fmt.Sprintf("%g %g", pt[0], pt[1]))
	}
	path.WriteString(strings.Join(pts, ","))
}

func encodePath(g geom.Geometry) (string, error) {
	var path strings.Builder
	switch geo := g.(type) {
	case geom.LineString:
		encodeLine(&path, geo)
	case geom.MultiLineString:
		for i, l := range geo {
			if i > 0 {
				path.WriteRune(' ')
			}
			encodeLine(&path, l)
		}
	default:
		return "", ErrUnsupportedGeometry{Geom: g}
	}
	return path.String(), nil
}

func rgb(c color.RGBA) string { return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B) }

func opacity(c color.RGBA) string { return fmt.Sprintf("%g", float64(c.A)/255.0) }

func (c *Canvas) writeTag(tag string, attrs string, body string) {
	c.body.WriteRune('<')
	c.body.WriteString(tag)
	c.body.WriteRune(' ')
	c.body.WriteString(attrs)
	if body == "" {
		c.body.WriteString("/>\n")
		return
	}
	c.body.WriteRune('>')
	c.body.WriteString(body)
	c.body.WriteString("</")
	c.body.WriteString(tag)
	c.body.WriteString(">\n")
}

// RenderPolyline draws a polyline already given in canvas pixels.
func (c *Canvas) RenderPolyline(pts [][2]float64, style layer.LineStyle) error {
	if len(pts) == 0 {
		return nil
	}
	var path strings.Builder
	encodeLine(&path, pts)
	attrs := map[string]string{
		"d":              path.String(),
		"fill":           "none",
		"stroke":         rgb(style.Color),
		"stroke-opacity": opacity(style.Color),
		"stroke-width":   fmt.Sprintf("%g", style.Width),
	}
	extra := ""
	if style.Width <= 0 {
		attrs["stroke-width"] = "1"
		extra = `vector-effect="non-scaling-stroke"`
	}
	c.writeTag("path", Attr(attrs, extra), "")
	return nil
}

// anchors returns the text-anchor and dominant-baseline of an alignment.
func anchors(a grid.Alignment) (string, string) {
	switch a {
	case grid.AlignRight:
		return "end", "middle"
	case grid.AlignBottom:
		return "middle", "text-after-edge"
	default:
		return "middle", "hanging"
	}
}

// RenderLabel draws a label whose position is given in canvas pixels.
func (c *Canvas) RenderLabel(lbl grid.Label, style layer.LabelStyle) error {
	anchor, baseline := anchors(lbl.Alignment)
	x, y := lbl.Position[0], lbl.Position[1]
	attrs := map[string]string{
		"x":                 fmt.Sprintf("%g", x),
		"y":                 fmt.Sprintf("%g", y),
		"dx":                fmt.Sprintf("%g", lbl.XOffset),
		"dy":                fmt.Sprintf("%g", -lbl.YOffset),
		"text-anchor":       anchor,
		"dominant-baseline": baseline,
		"font-family":       style.Font,
		"font-size":         fmt.Sprintf("%g", style.Size),
		"fill":              rgb(style.Color),
		"fill-opacity":      opacity(style.Color),
		// map angles are counter-clockwise, svg rotations clockwise
		"transform": fmt.Sprintf("rotate(%g %g %g)", -lbl.Angle, x, y),
	}
	if style.Bold {
		attrs["font-weight"] = "bold"
	}
	if style.Italic {
		attrs["font-style"] = "italic"
	}
	c.writeTag("text", Attr(attrs, ""), html.EscapeString(lbl.Text))
	return nil
}

// ViewBox of the document.
func (c *Canvas) ViewBox() string {
	return fmt.Sprintf("%d %d %d %d",
		-c.buff, -c.buff,
		c.width+2*c.buff, c.height+2*c.buff,
	)
}

// WriteTo writes the complete document to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	doc.WriteString("<svg ")
	doc.WriteString(Attr(map[string]string{
		"xmlns":   "http://www.w3.org/2000/svg",
		"viewBox": c.ViewBox(),
		"width":   fmt.Sprintf("%d", c.width+2*c.buff),
		"height":  fmt.Sprintf("%d", c.height+2*c.buff),
	}, ""))
	doc.WriteString(">\n")
	doc.WriteString(c.body.String())
	doc.WriteString("</svg>\n")
	n, err := io.WriteString(w, doc.String())
	return int64(n), err
}
