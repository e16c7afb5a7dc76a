package cmd

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdey/errors"
	"github.com/go-spatial/gridoverlay/config"
	"github.com/go-spatial/gridoverlay/grid"
)

func TestReadAttributesFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "gridoverlay-cmd")
	if err != nil {
		t.Fatalf("temp dir, expected nil got %v", err)
	}
	defer os.RemoveAll(dir)

	cfg := grid.DefaultConfig()
	cfg.NumCellsX, cfg.CellSizeY, cfg.BaselineAngle = 6, 2.5, 30
	var buf bytes.Buffer
	if err = grid.WriteAttributes(&buf, cfg); err != nil {
		t.Fatalf("write, expected nil got %v", err)
	}
	path := filepath.Join(dir, "layer.toml")
	if err = ioutil.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write file, expected nil got %v", err)
	}

	got, err := readAttributesFile(path)
	if err != nil {
		t.Fatalf("read, expected nil got %v", err)
	}
	if got != cfg {
		t.Errorf("config, expected %+v got %+v", cfg, got)
	}

	if _, err = readAttributesFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Errorf("missing file, expected error got nil")
	}
}

func TestErrExitWith(t *testing.T) {
	type tcase struct {
		err  ErrExitWith
		want string
	}

	fn := func(tc tcase) func(*testing.T) {
		return func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("error, expected %q got %q", tc.want, got)
			}
		}
	}

	tests := map[string]tcase{
		"message only": {
			err:  ErrExitWith{Msg: "one of --grid or --file is required"},
			want: "one of --grid or --file is required",
		},
		"wrapped": {
			err:  ErrExitWith{Msg: "error loading config", Err: errors.String("boom")},
			want: "error loading config: boom",
		},
	}

	for name, tc := range tests {
		t.Run(name, fn(tc))
	}
}

func TestGridNames(t *testing.T) {
	defer func(old string) { gridName = old }(gridName)
	gridName = "  Bilbao "
	if got := gridNames(nil); len(got) != 1 || got[0] != "bilbao" {
		t.Errorf("names, expected [bilbao] got %v", got)
	}
}

func TestNewServer(t *testing.T) {
	srv := newServer(config.Webserver{
		HostName: "maps.example.com",
		Scheme:   "https",
		Headers: map[string]string{
			"Cache-Control": "max-age=60",
			"X-Empty":       "",
		},
	}, ":9000")
	if srv.Port != ":9000" {
		t.Errorf("port, expected :9000 got %v", srv.Port)
	}
	if srv.Hostname != "maps.example.com" || srv.Scheme != "https" {
		t.Errorf("host, expected https://maps.example.com got %v://%v", srv.Scheme, srv.Hostname)
	}
	if len(srv.Headers) != 1 || srv.Headers["Cache-Control"] != "max-age=60" {
		t.Errorf("headers, expected only Cache-Control got %v", srv.Headers)
	}
}
