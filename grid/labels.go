package grid

import (
	"strconv"
	"strings"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/gridoverlay/angle"
	"github.com/go-spatial/gridoverlay/vector"
)

// Alignment of a label relative to its anchor point.
type Alignment uint8

const (
	// AlignTop anchors the label at its top edge
	AlignTop Alignment = iota
	// AlignRight anchors the label at its right edge
	AlignRight
	// AlignBottom anchors the label at its bottom edge
	AlignBottom
)

func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// Hemisphere codes used for geographic ordinates.
const (
	North = "N"
	South = "S"
	East  = "E"
	West  = "W"
)

// Label is a single label feature handed to the label renderer.
type Label struct {
	Position geom.Point
	Text     string
	// Angle in degrees
	Angle     float64
	Alignment Alignment
	XOffset   float64
	YOffset   float64
	// Index is the position of the label along its boundary line, or the
	// cell number for grid references.
	Index int
	// Value is the ordinate or cell index the text was made from.
	Value float64
}

// rowPlacement is the angle, alignment and offsets of a boundary row label.
func (lc LabelConfig) rowPlacement(ang float64) (float64, Alignment, float64, float64) {
	switch lc.Orientation.Normalize() {
	case 1, 2:
		return ang + 90.0, AlignRight, lc.Offsets.XOffV, lc.Offsets.XOffH
	default:
		return ang, AlignTop, lc.Offsets.XOffH, lc.Offsets.XOffV
	}
}

// colPlacement is the angle, alignment and offsets of a boundary column label.
// Note the column flips on orientations 1 and 3, where the row flips on 1 and 2.
func (lc LabelConfig) colPlacement(ang float64) (float64, Alignment, float64, float64) {
	switch lc.Orientation.Normalize() {
	case 1, 3:
		return ang + 90.0, AlignBottom, lc.Offsets.YOffV, lc.Offsets.YOffH
	default:
		return ang, AlignRight, lc.Offsets.YOffH, lc.Offsets.YOffV
	}
}

type placement func(float64) (float64, Alignment, float64, float64)

func newLabel(pos [2]float64, text string, value float64, index int, ang float64, place placement) Label {
	a, align, xoff, yoff := place(ang)
	return Label{
		Position:  geom.Point(pos),
		Text:      text,
		Angle:     a,
		Alignment: align,
		XOffset:   xoff,
		YOffset:   yoff,
		Index:     index,
		Value:     value,
	}
}

func translate(pt [2]float64, v vector.Vector) [2]float64 {
	return [2]float64{pt[0] + v.X, pt[1] + v.Y}
}

// labels builds the label features for the configured mode. Grid reference
// labels sit inside cells, not on a boundary, and use the row placement.
func labels(cfg Config, g *Geometry, geographic bool) []Label {
	lc := cfg.Labels
	ang := g.BaseAngle()
	// The boundary row is the first horizontal line, the boundary column
	// the last vertical line.
	row := g.Lines[0]
	col := g.Lines[len(g.Lines)-1]

	var lbls []Label
	switch lc.Mode.Normalize() {
	case LabelCellIndex:
		half := g.Base.Div(2.0)
		for i := 0; i < cfg.NumCellsX; i++ {
			idx := cfg.OffsetX + i
			lbls = append(lbls, newLabel(translate(row[i], half), strconv.Itoa(idx), float64(idx), i, ang, lc.rowPlacement))
		}
		half = g.Perp.Div(2.0)
		for j := 0; j < cfg.NumCellsY; j++ {
			idx := cfg.OffsetY + j
			lbls = append(lbls, newLabel(translate(col[j], half), strconv.Itoa(idx), float64(idx), j, ang, lc.colPlacement))
		}

	case LabelGridReference:
		half := g.Base.Add(g.Perp).Div(2.0)
		n := 0
		for j := 0; j < cfg.NumCellsY; j++ {
			y := cfg.OffsetY + j
			for i := 0; i < cfg.NumCellsX; i++ {
				x := cfg.OffsetX + i
				corner := cfg.point(g.Base.Mul(float64(x)).Add(g.Perp.Mul(float64(y))))
				text := strconv.Itoa(x) + " " + strconv.Itoa(y)
				lbls = append(lbls, newLabel(translate(corner, half), text, float64(n), n, ang, lc.rowPlacement))
				n++
			}
		}

	default:
		xs := make([]float64, len(row))
		for i := range row {
			xs[i] = row[i][0]
		}
		for i, text := range coordinateTexts(lc, xs, geographic, East, West) {
			lbls = append(lbls, newLabel(row[i], text, xs[i], i, ang, lc.rowPlacement))
		}
		ys := make([]float64, len(col))
		for i := range col {
			ys[i] = col[i][1]
		}
		for i, text := range coordinateTexts(lc, ys, geographic, North, South) {
			lbls = append(lbls, newLabel(col[i], text, ys[i], i, ang, lc.colPlacement))
		}
	}
	return lbls
}

// neighbor returns the index of the label that a repeated degree value is
// compared against: the next label for negative values, the previous one
// otherwise.
func neighbor(values []float64, i int) int {
	if values[i] < 0.0 {
		return i + 1
	}
	return i - 1
}

// fixed formats v with prec decimal places, dropping the sign of values
// that round to zero.
func fixed(v float64, prec uint) string {
	s := strconv.FormatFloat(v, 'f', int(prec), 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		return s[1:]
	}
	return s
}

// coordinateTexts formats a sequence of ordinates along a boundary line.
func coordinateTexts(lc LabelConfig, values []float64, geographic bool, positive, negative string) []string {
	texts := make([]string, len(values))
	prec := lc.precision()
	if !geographic {
		for i, v := range values {
			texts[i] = fixed(v, prec)
		}
		return texts
	}

	format := lc.Format.Normalize()
	for i, v := range values {
		opts := angle.Options{
			Format:         format,
			Precision:      prec,
			LeadingZeros:   lc.LeadingZeros,
			ShowHemisphere: lc.ShowHemisphere,
			Positive:       positive,
			Negative:       negative,
		}
		if lc.SuppressRepeatedDegrees && i > 0 && i < len(values)-1 {
			n := neighbor(values, i)
			if (v < 0.0) == (values[n] < 0.0) &&
				angle.Split(v, format, prec).Degrees == angle.Split(values[n], format, prec).Degrees {
				opts.OmitDegrees = true
			}
		}
		texts[i] = angle.Text(v, opts)
	}
	return texts
}
