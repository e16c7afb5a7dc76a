package multi

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-spatial/gridoverlay/filestore"
	"github.com/go-spatial/gridoverlay/filestore/file"
	"github.com/go-spatial/gridoverlay/filestore/null"
)

func TestMulti(t *testing.T) {
	dir, err := ioutil.TempDir("", "gridoverlay-multi")
	if err != nil {
		t.Fatalf("tempdir error, expected nil got %v", err)
	}
	defer os.RemoveAll(dir)

	all, err := file.New(filepath.Join(dir, "all"), false, nil)
	if err != nil {
		t.Fatalf("error, expected nil got %v", err)
	}
	svgOnly, err := file.New(filepath.Join(dir, "svg"), false, filestore.Filter{filestore.KindSVG: true})
	if err != nil {
		t.Fatalf("error, expected nil got %v", err)
	}

	prv := New(New(all, nil), svgOnly)
	if prv.Len() != 2 {
		t.Fatalf("providers, expected 2 got %v", prv.Len())
	}
	fw, err := prv.FileWriter("g")
	if err != nil {
		t.Fatalf("filewriter error, expected nil got %v", err)
	}
	for _, kind := range []filestore.Kind{filestore.KindSVG, filestore.KindGeoJSON} {
		err = filestore.WriteFile(fw, "g"+kind.Ext(), kind, func(w io.Writer) error {
			_, err := io.WriteString(w, "data")
			return err
		})
		if err != nil {
			t.Fatalf("write error, expected nil got %v", err)
		}
	}

	tests := map[string]bool{
		"all/g.svg":     true,
		"all/g.geojson": true,
		"svg/g.svg":     true,
		"svg/g.geojson": false,
	}
	for name, exists := range tests {
		_, err := os.Stat(filepath.Join(dir, name))
		if got := err == nil; got != exists {
			t.Errorf("%v exists, expected %v got %v", name, exists, got)
		}
	}

	// every store skips
	fw, _ = New(svgOnly).FileWriter("g")
	if _, err = fw.Writer("g.toml", filestore.KindAttributes); err != filestore.ErrSkipWrite {
		t.Errorf("error, expected %v got %v", filestore.ErrSkipWrite, err)
	}

	fw, _ = New(null.Provider{}, svgOnly).FileWriter("g")
	w, err := fw.Writer("g.toml", filestore.KindAttributes)
	if err != nil {
		t.Fatalf("null writer error, expected nil got %v", err)
	}
	w.Close()
}
