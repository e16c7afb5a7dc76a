package grid

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/arolek/p"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/gridoverlay/angle"
	"github.com/go-spatial/tegola/dict"
	"github.com/pkg/errors"
)

// Keys of the persisted attribute set.
const (
	KeyOriginX       = "origin_x"
	KeyOriginY       = "origin_y"
	KeyNumCellsX     = "num_cells_x"
	KeyNumCellsY     = "num_cells_y"
	KeyGridOffsetX   = "grid_offset_x"
	KeyGridOffsetY   = "grid_offset_y"
	KeyCellSizeX     = "cell_size_x"
	KeyCellSizeY     = "cell_size_y"
	KeyBaselineAngle = "baseline_angle"

	KeyDrawLabels        = "draw_labels"
	KeyLabelType         = "label_type"
	KeyLabelPrecision    = "label_precision"
	KeyLabelOrientation  = "label_orientation"
	KeyLabelFormat       = "label_format"
	KeyLabelHemisphere   = "label_hemisphere"
	KeyLabelLeadingZeros = "label_leading_zeros"
	KeyLabelDegreesDiff  = "label_degrees_diff"
	KeyLabelXOffsetH     = "label_x_offset_h"
	KeyLabelXOffsetV     = "label_x_offset_v"
	KeyLabelYOffsetH     = "label_y_offset_h"
	KeyLabelYOffsetV     = "label_y_offset_v"
)

// Keys lists every persisted attribute key.
var Keys = [...]string{
	KeyOriginX, KeyOriginY,
	KeyNumCellsX, KeyNumCellsY,
	KeyGridOffsetX, KeyGridOffsetY,
	KeyCellSizeX, KeyCellSizeY,
	KeyBaselineAngle,
	KeyDrawLabels, KeyLabelType, KeyLabelPrecision, KeyLabelOrientation, KeyLabelFormat,
	KeyLabelHemisphere, KeyLabelLeadingZeros, KeyLabelDegreesDiff,
	KeyLabelXOffsetH, KeyLabelXOffsetV, KeyLabelYOffsetH, KeyLabelYOffsetV,
}

// Attributes returns the flat attribute set for the config.
func (cfg Config) Attributes() dict.Dict {
	lc := cfg.Labels
	return dict.Dict{
		KeyOriginX:       cfg.Origin[0],
		KeyOriginY:       cfg.Origin[1],
		KeyNumCellsX:     cfg.NumCellsX,
		KeyNumCellsY:     cfg.NumCellsY,
		KeyGridOffsetX:   cfg.OffsetX,
		KeyGridOffsetY:   cfg.OffsetY,
		KeyCellSizeX:     cfg.CellSizeX,
		KeyCellSizeY:     cfg.CellSizeY,
		KeyBaselineAngle: cfg.BaselineAngle,

		KeyDrawLabels:        lc.Enabled,
		KeyLabelType:         int(lc.Mode),
		KeyLabelPrecision:    lc.Precision,
		KeyLabelOrientation:  int(lc.Orientation),
		KeyLabelFormat:       int(lc.Format),
		KeyLabelHemisphere:   lc.ShowHemisphere,
		KeyLabelLeadingZeros: lc.LeadingZeros,
		KeyLabelDegreesDiff:  lc.SuppressRepeatedDegrees,
		KeyLabelXOffsetH:     lc.Offsets.XOffH,
		KeyLabelXOffsetV:     lc.Offsets.XOffV,
		KeyLabelYOffsetH:     lc.Offsets.YOffH,
		KeyLabelYOffsetV:     lc.Offsets.YOffV,
	}
}

// attrReader reads typed values from an attribute set, keeping the first error.
type attrReader struct {
	attrs dict.Dicter
	err   error
}

func (r *attrReader) float(key string, def float64) float64 {
	if r.err != nil {
		return def
	}
	v, err := r.attrs.Float(key, p.Float64(def))
	if err != nil {
		r.err = ErrInvalidAttribute{Key: key, Err: err}
		return def
	}
	return v
}

func (r *attrReader) int(key string, def int) int {
	if r.err != nil {
		return def
	}
	v, err := r.attrs.Int(key, p.Int(def))
	if err != nil {
		r.err = ErrInvalidAttribute{Key: key, Err: err}
		return def
	}
	return v
}

func (r *attrReader) bool(key string, def bool) bool {
	if r.err != nil {
		return def
	}
	v, err := r.attrs.Bool(key, p.Bool(def))
	if err != nil {
		r.err = ErrInvalidAttribute{Key: key, Err: err}
		return def
	}
	return v
}

// FromAttributes builds a config from an attribute set. Missing keys take
// their default values. Enumerations are kept as read; unknown values
// behave as the first value of the enumeration.
func FromAttributes(attrs dict.Dicter) (Config, error) {
	def := DefaultConfig()
	if attrs == nil {
		return def, nil
	}
	r := attrReader{attrs: attrs}

	cfg := Config{
		Origin: geom.Point{
			r.float(KeyOriginX, def.Origin[0]),
			r.float(KeyOriginY, def.Origin[1]),
		},
		NumCellsX:     r.int(KeyNumCellsX, def.NumCellsX),
		NumCellsY:     r.int(KeyNumCellsY, def.NumCellsY),
		OffsetX:       r.int(KeyGridOffsetX, def.OffsetX),
		OffsetY:       r.int(KeyGridOffsetY, def.OffsetY),
		CellSizeX:     r.float(KeyCellSizeX, def.CellSizeX),
		CellSizeY:     r.float(KeyCellSizeY, def.CellSizeY),
		BaselineAngle: r.float(KeyBaselineAngle, def.BaselineAngle),
		Labels: LabelConfig{
			Enabled:                 r.bool(KeyDrawLabels, def.Labels.Enabled),
			Mode:                    LabelMode(r.int(KeyLabelType, int(def.Labels.Mode))),
			Precision:               r.int(KeyLabelPrecision, def.Labels.Precision),
			Orientation:             Orientation(r.int(KeyLabelOrientation, int(def.Labels.Orientation))),
			Format:                  angle.Format(r.int(KeyLabelFormat, int(def.Labels.Format))),
			ShowHemisphere:          r.bool(KeyLabelHemisphere, def.Labels.ShowHemisphere),
			LeadingZeros:            r.bool(KeyLabelLeadingZeros, def.Labels.LeadingZeros),
			SuppressRepeatedDegrees: r.bool(KeyLabelDegreesDiff, def.Labels.SuppressRepeatedDegrees),
			Offsets: Offsets{
				XOffH: r.float(KeyLabelXOffsetH, def.Labels.Offsets.XOffH),
				XOffV: r.float(KeyLabelXOffsetV, def.Labels.Offsets.XOffV),
				YOffH: r.float(KeyLabelYOffsetH, def.Labels.Offsets.YOffH),
				YOffV: r.float(KeyLabelYOffsetV, def.Labels.Offsets.YOffV),
			},
		},
	}
	if r.err != nil {
		return def, r.err
	}
	return cfg, nil
}

// WriteAttributes encodes the attribute set of cfg as TOML.
func WriteAttributes(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(map[string]interface{}(cfg.Attributes())); err != nil {
		return errors.Wrap(err, "failed to encode grid attributes")
	}
	return nil
}

// ReadAttributes decodes a TOML attribute set written by WriteAttributes.
func ReadAttributes(r io.Reader) (Config, error) {
	attrs := make(map[string]interface{})
	if _, err := toml.DecodeReader(r, &attrs); err != nil {
		return DefaultConfig(), errors.Wrap(err, "failed to decode grid attributes")
	}
	return FromAttributes(Normalize(dict.Dict(attrs)))
}

var floatKeys = map[string]bool{
	KeyOriginX: true, KeyOriginY: true,
	KeyCellSizeX: true, KeyCellSizeY: true,
	KeyBaselineAngle: true,
	KeyLabelXOffsetH: true, KeyLabelXOffsetV: true,
	KeyLabelYOffsetH: true, KeyLabelYOffsetV: true,
}

// Normalize narrows the int64 values produced by decoders to int, and widens
// whole numbers stored under float keys to float64. Dicters other than
// dict.Dict are returned as is.
func Normalize(attrs dict.Dicter) dict.Dicter {
	d, ok := attrs.(dict.Dict)
	if !ok {
		return attrs
	}
	n := make(dict.Dict, len(d))
	for k, v := range d {
		switch i := v.(type) {
		case int64:
			v = int(i)
			if floatKeys[k] {
				v = float64(i)
			}
		case int:
			if floatKeys[k] {
				v = float64(i)
			}
		}
		n[k] = v
	}
	return n
}
