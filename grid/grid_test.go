package grid

import (
	"math"
	"testing"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/cmp"
)

func pointsEqual(p1, p2 [2]float64) bool {
	return cmp.Float(p1[0], p2[0]) && cmp.Float(p1[1], p2[1])
}

func lineEqual(l1, l2 geom.LineString) bool {
	if len(l1) != len(l2) {
		return false
	}
	for i := range l1 {
		if !pointsEqual(l1[i], l2[i]) {
			return false
		}
	}
	return true
}

func TestGenerate(t *testing.T) {
	type tcase struct {
		cfg        Config
		horizontal []geom.LineString
		vertical   []geom.LineString
		extent     geom.Extent
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			g, err := Generate(tc.cfg, false)
			if err != nil {
				t.Fatalf("error, expected nil got %v", err)
			}
			if len(g.Lines) != tc.cfg.NumCellsX+tc.cfg.NumCellsY+2 {
				t.Errorf("lines, expected %v got %v", tc.cfg.NumCellsX+tc.cfg.NumCellsY+2, len(g.Lines))
			}
			hz := g.Horizontal()
			if len(hz) != len(tc.horizontal) {
				t.Fatalf("horizontal, expected %v got %v", len(tc.horizontal), len(hz))
			}
			for i := range hz {
				if !lineEqual(hz[i], tc.horizontal[i]) {
					t.Errorf("horizontal %v, expected %v got %v", i, tc.horizontal[i], hz[i])
				}
			}
			vt := g.Vertical()
			if len(vt) != len(tc.vertical) {
				t.Fatalf("vertical, expected %v got %v", len(tc.vertical), len(vt))
			}
			for i := range vt {
				if !lineEqual(vt[i], tc.vertical[i]) {
					t.Errorf("vertical %v, expected %v got %v", i, tc.vertical[i], vt[i])
				}
			}
			for i := range tc.extent {
				if !cmp.Float(g.Extent[i], tc.extent[i]) {
					t.Errorf("extent, expected %v got %v", tc.extent, g.Extent)
					break
				}
			}
			for _, l := range g.Lines {
				for _, pt := range l {
					if !contains(g.Extent, pt) {
						t.Errorf("extent %v does not contain %v", g.Extent, pt)
					}
				}
			}
			if len(g.Labels) != 0 {
				t.Errorf("labels, expected none got %v", len(g.Labels))
			}
		}
	}

	tests := map[string]tcase{
		"unit": {
			cfg: Config{
				NumCellsX: 2, NumCellsY: 1,
				CellSizeX: 1, CellSizeY: 1,
			},
			horizontal: []geom.LineString{
				{{0, 0}, {1, 0}, {2, 0}},
				{{0, 1}, {1, 1}, {2, 1}},
			},
			vertical: []geom.LineString{
				{{0, 0}, {0, 1}},
				{{1, 0}, {1, 1}},
				{{2, 0}, {2, 1}},
			},
			extent: geom.Extent{0, 0, 2, 1},
		},
		"origin and sizes": {
			cfg: Config{
				Origin:    geom.Point{100, 50},
				NumCellsX: 1, NumCellsY: 2,
				CellSizeX: 10, CellSizeY: 5,
			},
			horizontal: []geom.LineString{
				{{100, 50}, {110, 50}},
				{{100, 55}, {110, 55}},
				{{100, 60}, {110, 60}},
			},
			vertical: []geom.LineString{
				{{100, 50}, {100, 60}},
				{{110, 50}, {110, 60}},
			},
			extent: geom.Extent{100, 50, 110, 60},
		},
		"offsets": {
			cfg: Config{
				NumCellsX: 1, NumCellsY: 1,
				OffsetX: 2, OffsetY: -1,
				CellSizeX: 1, CellSizeY: 1,
			},
			horizontal: []geom.LineString{
				{{2, -1}, {3, -1}},
				{{2, 0}, {3, 0}},
			},
			vertical: []geom.LineString{
				{{2, -1}, {2, 0}},
				{{3, -1}, {3, 0}},
			},
			extent: geom.Extent{2, -1, 3, 0},
		},
		"rotated 90": {
			cfg: Config{
				NumCellsX: 1, NumCellsY: 1,
				CellSizeX: 2, CellSizeY: 1,
				BaselineAngle: 90,
			},
			// the primary axis points south, the secondary axis east
			horizontal: []geom.LineString{
				{{0, 0}, {0, -2}},
				{{1, 0}, {1, -2}},
			},
			vertical: []geom.LineString{
				{{0, 0}, {1, 0}},
				{{0, -2}, {1, -2}},
			},
			extent: geom.Extent{0, -2, 1, 0},
		},
		"zero cells": {
			cfg: Config{
				Origin:    geom.Point{5, 5},
				CellSizeX: 1, CellSizeY: 1,
			},
			horizontal: []geom.LineString{{{5, 5}}},
			vertical:   []geom.LineString{{{5, 5}}},
			extent:     geom.Extent{5, 5, 5, 5},
		},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

func contains(ext geom.Extent, pt [2]float64) bool {
	const tolerance = 1e-9
	return pt[0] >= ext[0]-tolerance && pt[0] <= ext[2]+tolerance &&
		pt[1] >= ext[1]-tolerance && pt[1] <= ext[3]+tolerance
}

func TestGenerateErrors(t *testing.T) {
	type tcase struct {
		cfg Config
		err error
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			g, err := Generate(tc.cfg, false)
			if err != tc.err {
				t.Errorf("error, expected %v got %v", tc.err, err)
			}
			if g != nil {
				t.Errorf("geometry, expected nil got %v", g)
			}
		}
	}

	tests := map[string]tcase{
		"zero cell size x": {
			cfg: Config{NumCellsX: 1, NumCellsY: 1, CellSizeY: 1},
			err: ErrInvalidCellSize{Axis: "x", Size: 0},
		},
		"negative cell size y": {
			cfg: Config{NumCellsX: 1, NumCellsY: 1, CellSizeX: 1, CellSizeY: -1},
			err: ErrInvalidCellSize{Axis: "y", Size: -1},
		},
		"negative cell count": {
			cfg: Config{NumCellsX: -1, NumCellsY: 1, CellSizeX: 1, CellSizeY: 1},
			err: ErrNegativeCellCount{Axis: "x", Count: -1},
		},
		"non finite origin": {
			cfg: Config{Origin: geom.Point{0, math.Inf(1)}, CellSizeX: 1, CellSizeY: 1},
			err: ErrNonFinite("origin_y"),
		},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

func TestBaseAngle(t *testing.T) {
	tests := map[string]struct {
		baseline float64
		expected float64
	}{
		"30":  {baseline: 30, expected: 330},
		"90":  {baseline: 90, expected: 270},
		"270": {baseline: 270, expected: 90},
	}
	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.BaselineAngle = tc.baseline
			g, err := Generate(cfg, false)
			if err != nil {
				t.Fatalf("error, expected nil got %v", err)
			}
			if !cmp.Float(g.BaseAngle(), tc.expected) {
				t.Errorf("base angle, expected %v got %v", tc.expected, g.BaseAngle())
			}
			if !cmp.Float(g.Base.Length(), cfg.CellSizeX) {
				t.Errorf("base length, expected %v got %v", cfg.CellSizeX, g.Base.Length())
			}
			if !cmp.Float(g.Base.Dot(g.Perp), 0) {
				t.Errorf("base perp dot, expected 0 got %v", g.Base.Dot(g.Perp))
			}
		})
	}
}
