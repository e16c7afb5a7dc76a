package gridoverlay

import (
	"encoding/json"
	"io"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
	"github.com/go-spatial/gridoverlay/crs"
	"github.com/go-spatial/gridoverlay/filestore"
	"github.com/go-spatial/gridoverlay/grid"
	"github.com/go-spatial/gridoverlay/layer"
	"github.com/go-spatial/gridoverlay/render/svg"
	"github.com/prometheus/common/log"
)

const (
	// DefaultSVGBuffer is the padding in pixels around rendered grids
	DefaultSVGBuffer = 20
)

// GeneratedFiles are the names of the files generated for a grid.
type GeneratedFiles struct {
	GeoJSON    string
	SVG        string
	Attributes string
}

// NewGeneratedFiles returns the file names for the grid name.
func NewGeneratedFiles(name string) *GeneratedFiles {
	return &GeneratedFiles{
		GeoJSON:    name + filestore.KindGeoJSON.Ext(),
		SVG:        name + filestore.KindSVG.Ext(),
		Attributes: name + filestore.KindAttributes.Ext(),
	}
}

// For returns the file name of kind.
func (gf *GeneratedFiles) For(kind filestore.Kind) string {
	switch kind {
	case filestore.KindGeoJSON:
		return gf.GeoJSON
	case filestore.KindSVG:
		return gf.SVG
	case filestore.KindAttributes:
		return gf.Attributes
	default:
		return ""
	}
}

// Encode writes the kind artifact of l to w. width is the pixel width of
// svg output.
func Encode(w io.Writer, kind filestore.Kind, l *layer.Layer, width int64) error {
	if l == nil {
		return layer.ErrNilLayer
	}
	switch kind {
	case filestore.KindGeoJSON:
		fc, err := GeoJSON(l)
		if err != nil {
			return err
		}
		return json.NewEncoder(w).Encode(fc)
	case filestore.KindSVG:
		c, err := svg.Render(l, width, DefaultSVGBuffer)
		if err != nil {
			return err
		}
		_, err = c.WriteTo(w)
		return err
	case filestore.KindAttributes:
		return grid.WriteAttributes(w, l.Config())
	default:
		return filestore.ErrUnknownKind(kind)
	}
}

// GeoJSON returns the geometry of l in WGS84. Layers in a system without a
// transform to WGS84 are returned in their own coordinates.
func GeoJSON(l *layer.Layer) (geojson.FeatureCollection, error) {
	fc, err := l.Geometry().GeoJSON()
	if err != nil {
		return fc, err
	}
	srid, ok := l.CRS().(crs.SRID)
	if !ok || srid == crs.WGS84 {
		return fc, nil
	}
	fn, err := crs.TransformFor(srid, crs.WGS84)
	if err != nil {
		log.Warnf("grid %v: geojson left in %v: %v", l.Name(), srid, err)
		return fc, nil
	}
	toWGS84 := func(coords ...float64) ([]float64, error) {
		pt, err := fn([2]float64{coords[0], coords[1]})
		if err != nil {
			return nil, err
		}
		coords[0], coords[1] = pt[0], pt[1]
		return coords, nil
	}
	for i := range fc.Features {
		g, err := geom.ApplyToPoints(fc.Features[i].Geometry.Geometry, toWGS84)
		if err != nil {
			return fc, err
		}
		fc.Features[i].Geometry.Geometry = g
	}
	return fc, nil
}
