package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/cmp"
	"github.com/go-spatial/gridoverlay/crs"
	"github.com/go-spatial/gridoverlay/grid"
	"github.com/go-spatial/gridoverlay/layer"
)

func TestNew(t *testing.T) {
	type tcase struct {
		ext *geom.Extent
		err error
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			_, err := New(tc.ext, 100, 0)
			if err != tc.err {
				t.Errorf("error, expected %v got %v", tc.err, err)
			}
		}
	}

	tests := map[string]tcase{
		"nil":   {err: ErrEmptyExtent},
		"flat":  {ext: &geom.Extent{0, 0, 10, 0}, err: ErrEmptyExtent},
		"valid": {ext: &geom.Extent{0, 0, 10, 5}},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

func TestPixel(t *testing.T) {
	c, err := New(&geom.Extent{0, 0, 10, 5}, 100, 2)
	if err != nil {
		t.Fatalf("error, expected nil got %v", err)
	}
	tests := map[string]struct {
		pt       [2]float64
		expected [2]float64
	}{
		"top left":     {pt: [2]float64{0, 5}, expected: [2]float64{0, 0}},
		"bottom right": {pt: [2]float64{10, 0}, expected: [2]float64{100, 50}},
		"center":       {pt: [2]float64{5, 2.5}, expected: [2]float64{50, 25}},
	}
	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			got := c.Pixel(tc.pt)
			if !cmp.Float(got[0], tc.expected[0]) || !cmp.Float(got[1], tc.expected[1]) {
				t.Errorf("pixel, expected %v got %v", tc.expected, got)
			}
		})
	}
	if vb := c.ViewBox(); vb != "-2 -2 104 54" {
		t.Errorf("viewbox, expected -2 -2 104 54 got %v", vb)
	}
}

func TestPath(t *testing.T) {
	c, err := New(&geom.Extent{0, 0, 10, 5}, 100, 0)
	if err != nil {
		t.Fatalf("error, expected nil got %v", err)
	}
	got, err := c.Path(geom.LineString{{0, 5}, {10, 5}})
	if err != nil {
		t.Fatalf("path error, expected nil got %v", err)
	}
	if got != "M0 0,100 0" {
		t.Errorf("path, expected %q got %q", "M0 0,100 0", got)
	}
	if _, err = c.Path(geom.Point{1, 1}); err == nil {
		t.Errorf("path error, expected error got nil")
	}
}

func TestRenderElements(t *testing.T) {
	c, err := New(&geom.Extent{0, 0, 10, 5}, 100, 0)
	if err != nil {
		t.Fatalf("error, expected nil got %v", err)
	}
	if err = c.RenderPolyline([][2]float64{{0, 0}, {100, 50}}, layer.DefaultLineStyle); err != nil {
		t.Fatalf("polyline error, expected nil got %v", err)
	}
	lbl := grid.Label{
		Position:  geom.Point{10, 20},
		Text:      "<5>",
		Angle:     90,
		Alignment: grid.AlignRight,
	}
	style := layer.DefaultLabelStyle
	style.Bold = true
	if err = c.RenderLabel(lbl, style); err != nil {
		t.Fatalf("label error, expected nil got %v", err)
	}

	var buf bytes.Buffer
	if _, err = c.WriteTo(&buf); err != nil {
		t.Fatalf("write error, expected nil got %v", err)
	}
	doc := buf.String()
	for _, want := range []string{
		`d="M0 0,100 50"`,
		`stroke="rgb(0,255,0)"`,
		`vector-effect="non-scaling-stroke"`,
		`text-anchor="end"`,
		`font-weight="bold"`,
		`transform="rotate(-90 10 20)"`,
		`&lt;5&gt;`,
		`viewBox="0 0 100 50"`,
		`</svg>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document, expected %v in\n%v", want, doc)
		}
	}
}

func TestRender(t *testing.T) {
	l, err := layer.New("grid", crs.WebMercator)
	if err != nil {
		t.Fatalf("error, expected nil got %v", err)
	}
	cfg := grid.DefaultConfig()
	cfg.NumCellsX, cfg.NumCellsY = 3, 2
	cfg.Labels.Enabled = true
	if err = l.SetConfig(cfg); err != nil {
		t.Fatalf("error, expected nil got %v", err)
	}
	c, err := Render(l, 300, 10)
	if err != nil {
		t.Fatalf("render error, expected nil got %v", err)
	}
	var buf bytes.Buffer
	if _, err = c.WriteTo(&buf); err != nil {
		t.Fatalf("write error, expected nil got %v", err)
	}
	doc := buf.String()
	if got := strings.Count(doc, "<path "); got != 7 {
		t.Errorf("paths, expected 7 got %v", got)
	}
	if got := strings.Count(doc, "<text "); got != 7 {
		t.Errorf("labels, expected 7 got %v", got)
	}
}
