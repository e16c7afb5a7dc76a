package crs

import (
	"math"
	"testing"
)

func TestIsGeographic(t *testing.T) {
	tests := map[string]struct {
		srid     SRID
		expected bool
	}{
		"wgs84":        {srid: WGS84, expected: true},
		"nad83":        {srid: 4269, expected: true},
		"web mercator": {srid: WebMercator, expected: false},
		"utm":          {srid: 32630, expected: false},
	}
	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			if got := tc.srid.IsGeographic(); got != tc.expected {
				t.Errorf("geographic, expected %v got %v", tc.expected, got)
			}
		})
	}
}

func TestTransformFor(t *testing.T) {
	// 6378137 * π
	const halfWorld = 20037508.342789244

	type tcase struct {
		from, to SRID
		pt       [2]float64
		expected [2]float64
		// tolerance in the units of to, 1e-6 when zero
		tol float64
		err error
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			tr, err := TransformFor(tc.from, tc.to)
			if err != tc.err {
				t.Fatalf("error, expected %v got %v", tc.err, err)
			}
			if tc.err != nil {
				return
			}
			got, err := tr.Transform(tc.pt)
			if err != nil {
				t.Fatalf("transform error, expected nil got %v", err)
			}
			tol := tc.tol
			if tol == 0 {
				tol = 1e-6
			}
			if math.Abs(got[0]-tc.expected[0]) > tol || math.Abs(got[1]-tc.expected[1]) > tol {
				t.Errorf("point, expected %v got %v", tc.expected, got)
			}
		}
	}

	tests := map[string]tcase{
		"identity": {
			from: WebMercator, to: WebMercator,
			pt: [2]float64{10, 20}, expected: [2]float64{10, 20},
		},
		"geographic datums": {
			from: 4269, to: WGS84,
			pt: [2]float64{-3, 43}, expected: [2]float64{-3, 43},
		},
		"to mercator origin": {
			from: WGS84, to: WebMercator,
			pt: [2]float64{0, 0}, expected: [2]float64{0, 0},
		},
		"to mercator antimeridian": {
			from: WGS84, to: WebMercator,
			pt: [2]float64{180, 0}, expected: [2]float64{halfWorld, 0},
		},
		"to mercator clamps the pole": {
			from: WGS84, to: WebMercator,
			pt: [2]float64{0, 90}, expected: [2]float64{0, halfWorld},
			tol: 1,
		},
		"from mercator": {
			from: WebMercator, to: WGS84,
			pt: [2]float64{-halfWorld / 2, 0}, expected: [2]float64{-90, 0},
		},
		"world mercator equator": {
			from: WGS84, to: 3395,
			pt: [2]float64{10, 0}, expected: [2]float64{1113194.9079327357, 0},
		},
		"mercator to equidistant": {
			from: WebMercator, to: 4087,
			pt: [2]float64{1113194.9079327357, 0}, expected: [2]float64{1113194.9079327357, 0},
		},
		"unsupported": {
			from: WebMercator, to: 32630,
			err: ErrUnsupportedTransform{From: WebMercator, To: 32630},
		},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}
