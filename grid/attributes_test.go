package grid

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/gridoverlay/angle"
	"github.com/go-spatial/tegola/dict"
)

func sampleConfig() Config {
	return Config{
		Origin:        geom.Point{-12.5, 48.25},
		NumCellsX:     4,
		NumCellsY:     3,
		OffsetX:       -2,
		OffsetY:       1,
		CellSizeX:     0.5,
		CellSizeY:     0.25,
		BaselineAngle: 15,
		Labels: LabelConfig{
			Enabled:                 true,
			Mode:                    LabelGridReference,
			Precision:               3,
			Orientation:             2,
			Format:                  angle.DegreesMinutesSeconds,
			ShowHemisphere:          false,
			LeadingZeros:            true,
			SuppressRepeatedDegrees: true,
			Offsets:                 Offsets{XOffH: 1.5, XOffV: -2, YOffH: 0.25, YOffV: 4},
		},
	}
}

func TestAttributes(t *testing.T) {
	type tcase struct {
		cfg Config
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			attrs := tc.cfg.Attributes()
			if len(attrs) != len(Keys) {
				t.Errorf("keys, expected %v got %v", len(Keys), len(attrs))
			}
			for _, k := range Keys {
				if _, ok := attrs[k]; !ok {
					t.Errorf("key %v, expected present", k)
				}
			}
			got, err := FromAttributes(attrs)
			if err != nil {
				t.Fatalf("error, expected nil got %v", err)
			}
			if !reflect.DeepEqual(got, tc.cfg) {
				t.Errorf("config, expected %+v got %+v", tc.cfg, got)
			}
		}
	}

	unknown := sampleConfig()
	unknown.Labels.Mode = LabelMode(7)
	unknown.Labels.Orientation = 9
	unknown.Labels.Format = angle.Format(5)

	tests := map[string]tcase{
		"default": {
			cfg: DefaultConfig(),
		},
		"sample": {
			cfg: sampleConfig(),
		},
		"unknown enumerations": {
			cfg: unknown,
		},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

func TestFromAttributes(t *testing.T) {
	type tcase struct {
		attrs    dict.Dict
		expected func() Config
		err      string
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			got, err := FromAttributes(tc.attrs)
			if tc.err != "" {
				if err == nil {
					t.Fatalf("error, expected %v got nil", tc.err)
				}
				e, ok := err.(ErrInvalidAttribute)
				if !ok {
					t.Fatalf("error, expected ErrInvalidAttribute got %T", err)
				}
				if e.Key != tc.err {
					t.Errorf("error key, expected %v got %v", tc.err, e.Key)
				}
				return
			}
			if err != nil {
				t.Fatalf("error, expected nil got %v", err)
			}
			if exp := tc.expected(); !reflect.DeepEqual(got, exp) {
				t.Errorf("config, expected %+v got %+v", exp, got)
			}
		}
	}

	tests := map[string]tcase{
		"nil": {
			expected: DefaultConfig,
		},
		"empty": {
			attrs:    dict.Dict{},
			expected: DefaultConfig,
		},
		"partial": {
			attrs: dict.Dict{
				KeyNumCellsX:  5,
				KeyCellSizeY:  2.5,
				KeyDrawLabels: true,
			},
			expected: func() Config {
				cfg := DefaultConfig()
				cfg.NumCellsX = 5
				cfg.CellSizeY = 2.5
				cfg.Labels.Enabled = true
				return cfg
			},
		},
		"wrong type": {
			attrs: dict.Dict{
				KeyNumCellsX: "many",
			},
			err: KeyNumCellsX,
		},
		"wrong bool": {
			attrs: dict.Dict{
				KeyLabelHemisphere: "yes please",
			},
			err: KeyLabelHemisphere,
		},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

func TestWriteReadAttributes(t *testing.T) {
	cfg := sampleConfig()
	var buf bytes.Buffer
	if err := WriteAttributes(&buf, cfg); err != nil {
		t.Fatalf("write error, expected nil got %v", err)
	}
	if !strings.Contains(buf.String(), KeyBaselineAngle) {
		t.Errorf("toml, expected %v in %v", KeyBaselineAngle, buf.String())
	}
	got, err := ReadAttributes(&buf)
	if err != nil {
		t.Fatalf("read error, expected nil got %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("config, expected %+v got %+v", cfg, got)
	}

	_, err = ReadAttributes(strings.NewReader("origin_x = [broken"))
	if err == nil {
		t.Errorf("read error, expected error got nil")
	}
}

func TestReadAttributesWholeNumbers(t *testing.T) {
	got, err := ReadAttributes(strings.NewReader("cell_size_x = 2\nnum_cells_x = 3\nbaseline_angle = -45\n"))
	if err != nil {
		t.Fatalf("error, expected nil got %v", err)
	}
	if got.CellSizeX != 2 || got.NumCellsX != 3 || got.BaselineAngle != -45 {
		t.Errorf("config, expected cell size 2, 3 cells, angle -45 got %v, %v, %v", got.CellSizeX, got.NumCellsX, got.BaselineAngle)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(dict.Dict{
		KeyNumCellsX:  int64(4),
		KeyOriginX:    int64(-3),
		KeyCellSizeY:  7,
		KeyDrawLabels: true,
	})
	want := dict.Dict{
		KeyNumCellsX:  4,
		KeyOriginX:    float64(-3),
		KeyCellSizeY:  float64(7),
		KeyDrawLabels: true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalize, expected %v got %v", want, got)
	}
}
