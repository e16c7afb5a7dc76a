package grid

import (
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
)

// GeoJSON returns the lines as a single MultiLineString feature followed by
// one Point feature per label.
func (g *Geometry) GeoJSON() (geojson.FeatureCollection, error) {
	var features geojson.FeatureCollection
	if g == nil {
		return features, ErrNilGeometry
	}

	lines := make(geom.MultiLineString, 0, len(g.Lines))
	for _, l := range g.Lines {
		lines = append(lines, [][2]float64(l))
	}
	features.Features = make([]geojson.Feature, 0, len(g.Labels)+1)
	features.Features = append(features.Features, geojson.Feature{
		Geometry: geojson.Geometry{Geometry: lines},
		Properties: map[string]interface{}{
			"kind":       "grid",
			"horizontal": len(g.Horizontal()),
			"vertical":   len(g.Vertical()),
		},
	})

	for _, lbl := range g.Labels {
		features.Features = append(features.Features, geojson.Feature{
			Geometry: geojson.Geometry{Geometry: lbl.Position},
			Properties: map[string]interface{}{
				"kind":      "label",
				"name":      lbl.Text,
				"angle":     lbl.Angle,
				"alignment": lbl.Alignment.String(),
				"x_offset":  lbl.XOffset,
				"y_offset":  lbl.YOffset,
				"index":     lbl.Index,
			},
		})
	}
	return features, nil
}
