package grid

import (
	"testing"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/cmp"
	"github.com/go-spatial/gridoverlay/angle"
)

// TestLabelPlacement pins the placement table as characterization: rows
// flip to the vertical placement on orientations 1 and 2, columns on 1 and 3.
func TestLabelPlacement(t *testing.T) {
	type placement struct {
		angle     float64
		alignment Alignment
		xoff      float64
		yoff      float64
	}
	type tcase struct {
		orientation Orientation
		row         placement
		col         placement
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			cfg := Config{
				NumCellsX: 1, NumCellsY: 1,
				CellSizeX: 1, CellSizeY: 1,
				BaselineAngle: 30,
				Labels: LabelConfig{
					Enabled:     true,
					Orientation: tc.orientation,
					Offsets:     Offsets{XOffH: 1, XOffV: 2, YOffH: 3, YOffV: 4},
				},
			}
			g, err := Generate(cfg, false)
			if err != nil {
				t.Fatalf("error, expected nil got %v", err)
			}
			if len(g.Labels) != 4 {
				t.Fatalf("labels, expected 4 got %v", len(g.Labels))
			}
			check := func(name string, lbl Label, p placement) {
				if !cmp.Float(lbl.Angle, p.angle) {
					t.Errorf("%v angle, expected %v got %v", name, p.angle, lbl.Angle)
				}
				if lbl.Alignment != p.alignment {
					t.Errorf("%v alignment, expected %v got %v", name, p.alignment, lbl.Alignment)
				}
				if lbl.XOffset != p.xoff || lbl.YOffset != p.yoff {
					t.Errorf("%v offsets, expected (%v,%v) got (%v,%v)", name, p.xoff, p.yoff, lbl.XOffset, lbl.YOffset)
				}
			}
			check("row", g.Labels[0], tc.row)
			check("col", g.Labels[2], tc.col)
		}
	}

	tests := map[string]tcase{
		"0": {
			orientation: 0,
			row:         placement{330, AlignTop, 1, 2},
			col:         placement{330, AlignRight, 3, 4},
		},
		"1": {
			orientation: 1,
			row:         placement{420, AlignRight, 2, 1},
			col:         placement{420, AlignBottom, 4, 3},
		},
		"2": {
			orientation: 2,
			row:         placement{420, AlignRight, 2, 1},
			col:         placement{330, AlignRight, 3, 4},
		},
		"3": {
			orientation: 3,
			row:         placement{330, AlignTop, 1, 2},
			col:         placement{420, AlignBottom, 4, 3},
		},
		"unknown": {
			orientation: 7,
			row:         placement{330, AlignTop, 1, 2},
			col:         placement{330, AlignRight, 3, 4},
		},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

func labelTexts(lbls []Label) []string {
	texts := make([]string, len(lbls))
	for i := range lbls {
		texts[i] = lbls[i].Text
	}
	return texts
}

func TestCoordinateLabels(t *testing.T) {
	type tcase struct {
		cfg        Config
		geographic bool
		texts      []string
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			tc.cfg.Labels.Enabled = true
			g, err := Generate(tc.cfg, tc.geographic)
			if err != nil {
				t.Fatalf("error, expected nil got %v", err)
			}
			got := labelTexts(g.Labels)
			if len(got) != len(tc.texts) {
				t.Fatalf("labels, expected %v got %v", tc.texts, got)
			}
			for i := range got {
				if got[i] != tc.texts[i] {
					t.Errorf("label %v, expected %q got %q", i, tc.texts[i], got[i])
				}
			}
		}
	}

	dm := LabelConfig{
		Format:                  angle.DegreesMinutes,
		ShowHemisphere:          true,
		SuppressRepeatedDegrees: true,
	}
	nosuppress := dm
	nosuppress.SuppressRepeatedDegrees = false

	tests := map[string]tcase{
		"repeated degrees": {
			cfg: Config{
				Origin:    geom.Point{45.25, 10},
				NumCellsX: 2, NumCellsY: 1,
				CellSizeX: 0.5, CellSizeY: 1,
				Labels: dm,
			},
			geographic: true,
			texts:      []string{"45° 15'E", "45'E", "46° 15'E", "10° 0'N", "11° 0'N"},
		},
		"repeated degrees not suppressed": {
			cfg: Config{
				Origin:    geom.Point{45.25, 10},
				NumCellsX: 2, NumCellsY: 1,
				CellSizeX: 0.5, CellSizeY: 1,
				Labels: nosuppress,
			},
			geographic: true,
			texts:      []string{"45° 15'E", "45° 45'E", "46° 15'E", "10° 0'N", "11° 0'N"},
		},
		"changed degrees": {
			cfg: Config{
				Origin:    geom.Point{45.75, 10},
				NumCellsX: 2, NumCellsY: 1,
				CellSizeX: 0.5, CellSizeY: 1,
				Labels: dm,
			},
			geographic: true,
			texts:      []string{"45° 45'E", "46° 15'E", "46° 45'E", "10° 0'N", "11° 0'N"},
		},
		// Characterization: a negative ordinate is compared with the next
		// label, a positive one with the previous label. Against the
		// previous label (-46.25) the middle one would keep its degrees.
		"negative compares with next": {
			cfg: Config{
				Origin:    geom.Point{-46.25, -11},
				NumCellsX: 2, NumCellsY: 1,
				CellSizeX: 0.5, CellSizeY: 1,
				Labels: dm,
			},
			geographic: true,
			texts:      []string{"46° 15'W", "45'W", "45° 15'W", "11° 0'S", "10° 0'S"},
		},
		// 45.8 and its successors are stored just below the decimal value,
		// minutes are truncated, never rounded.
		"minutes truncate": {
			cfg: Config{
				Origin:    geom.Point{45.8, 10},
				NumCellsX: 2, NumCellsY: 1,
				CellSizeX: 0.6, CellSizeY: 1,
				Labels: nosuppress,
			},
			geographic: true,
			texts:      []string{"45° 47'E", "46° 23'E", "47° 0'E", "10° 0'N", "11° 0'N"},
		},
		"projected": {
			cfg: Config{
				Origin:    geom.Point{1000.5, 2000},
				NumCellsX: 1, NumCellsY: 1,
				CellSizeX: 250, CellSizeY: 10,
				Labels: LabelConfig{Precision: 1},
			},
			texts: []string{"1000.5", "1250.5", "2000.0", "2010.0"},
		},
		"projected negative precision": {
			cfg: Config{
				NumCellsX: 1, NumCellsY: 1,
				CellSizeX: 100, CellSizeY: 100,
				Labels: LabelConfig{Precision: -2},
			},
			texts: []string{"0", "100", "0", "100"},
		},
		"unknown mode": {
			cfg: Config{
				NumCellsX: 1, NumCellsY: 1,
				CellSizeX: 100, CellSizeY: 100,
				Labels: LabelConfig{Mode: LabelMode(9)},
			},
			texts: []string{"0", "100", "0", "100"},
		},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

// TestColumnSuppression covers repeated degree suppression on the boundary
// column with negative latitudes, at orientation 3 where only the column
// labels turn.
func TestColumnSuppression(t *testing.T) {
	cfg := Config{
		Origin:    geom.Point{0, -46.25},
		NumCellsX: 1, NumCellsY: 2,
		CellSizeX: 1, CellSizeY: 0.5,
		Labels: LabelConfig{
			Enabled:                 true,
			Format:                  angle.DegreesMinutes,
			ShowHemisphere:          true,
			SuppressRepeatedDegrees: true,
			Orientation:             3,
		},
	}
	g, err := Generate(cfg, true)
	if err != nil {
		t.Fatalf("error, expected nil got %v", err)
	}
	expected := []string{"0° 0'E", "1° 0'E", "46° 15'S", "45'S", "45° 15'S"}
	got := labelTexts(g.Labels)
	if len(got) != len(expected) {
		t.Fatalf("labels, expected %v got %v", expected, got)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("label %v, expected %q got %q", i, expected[i], got[i])
		}
	}
	for i, lbl := range g.Labels {
		align := AlignBottom
		if i < 2 {
			align = AlignTop
		}
		if lbl.Alignment != align {
			t.Errorf("label %v alignment, expected %v got %v", i, align, lbl.Alignment)
		}
	}
}

func TestIndexLabels(t *testing.T) {
	type tcase struct {
		cfg    Config
		labels []Label
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			tc.cfg.Labels.Enabled = true
			g, err := Generate(tc.cfg, false)
			if err != nil {
				t.Fatalf("error, expected nil got %v", err)
			}
			if len(g.Labels) != len(tc.labels) {
				t.Fatalf("labels, expected %v got %v", len(tc.labels), len(g.Labels))
			}
			for i, lbl := range g.Labels {
				exp := tc.labels[i]
				if lbl.Text != exp.Text {
					t.Errorf("label %v text, expected %q got %q", i, exp.Text, lbl.Text)
				}
				if lbl.Index != exp.Index {
					t.Errorf("label %v index, expected %v got %v", i, exp.Index, lbl.Index)
				}
				if !pointsEqual(lbl.Position, exp.Position) {
					t.Errorf("label %v position, expected %v got %v", i, exp.Position, lbl.Position)
				}
			}
		}
	}

	tests := map[string]tcase{
		"cell index": {
			cfg: Config{
				NumCellsX: 2, NumCellsY: 1,
				OffsetX: 3, OffsetY: 5,
				CellSizeX: 2, CellSizeY: 4,
				Labels: LabelConfig{Mode: LabelCellIndex},
			},
			labels: []Label{
				{Text: "3", Index: 0, Position: geom.Point{7, 20}},
				{Text: "4", Index: 1, Position: geom.Point{9, 20}},
				{Text: "5", Index: 0, Position: geom.Point{10, 22}},
			},
		},
		"grid reference": {
			cfg: Config{
				NumCellsX: 2, NumCellsY: 1,
				CellSizeX: 1, CellSizeY: 1,
				Labels: LabelConfig{Mode: LabelGridReference},
			},
			labels: []Label{
				{Text: "0 0", Index: 0, Position: geom.Point{0.5, 0.5}},
				{Text: "1 0", Index: 1, Position: geom.Point{1.5, 0.5}},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}
