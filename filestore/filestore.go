// Package filestore defines the sinks generated grid artifacts are written to.
package filestore

import (
	"io"
	"strings"

	"github.com/go-spatial/tegola/dict"
)

// Kind is the kind of artifact being written.
type Kind string

const (
	// KindGeoJSON is the grid lines and labels as a GeoJSON FeatureCollection
	KindGeoJSON Kind = "geojson"
	// KindSVG is the rendered grid
	KindSVG Kind = "svg"
	// KindAttributes is the attribute set of the grid as TOML
	KindAttributes Kind = "attributes"
)

// Kinds lists every artifact kind.
var Kinds = []Kind{KindGeoJSON, KindSVG, KindAttributes}

// Ext is the file extension of the kind.
func (k Kind) Ext() string {
	switch k {
	case KindGeoJSON:
		return ".geojson"
	case KindSVG:
		return ".svg"
	case KindAttributes:
		return ".toml"
	default:
		return ""
	}
}

const (
	// ConfigKeyName is the name of the filestore
	ConfigKeyName = "name"
	// ConfigKeyType is the type of the filestore
	ConfigKeyType = "type"
	// ConfigKeyKinds restricts the artifact kinds a filestore accepts
	ConfigKeyKinds = "kinds"
)

// FileWriter returns a writer object
type FileWriter interface {
	// Writer should return an io.WriteCloser that the file is written to.
	// If the file should not be written to the filestore, return
	// ErrSkipWrite.
	Writer(filepath string, kind Kind) (io.WriteCloser, error)
}

// Provider returns a filestore that can be used to store files.
type Provider interface {
	// FileWriter provides a file writer for the files of a group. The group
	// is the name of the grid the files were generated from.
	FileWriter(group string) (FileWriter, error)
}

// Filter is the set of kinds a filestore accepts. An empty filter accepts
// every kind.
type Filter map[Kind]bool

// Accepts reports whether files of kind k should be written.
func (f Filter) Accepts(k Kind) bool {
	return len(f) == 0 || f[k]
}

// FilterFrom reads the ConfigKeyKinds list of cfg.
func FilterFrom(cfg dict.Dicter) (Filter, error) {
	kinds, err := cfg.StringSlice(ConfigKeyKinds)
	if _, ok := err.(dict.ErrKeyRequired); ok {
		return Filter{}, nil
	}
	if err != nil {
		return nil, err
	}
	f := make(Filter, len(kinds))
	for _, k := range kinds {
		kind := Kind(strings.ToLower(strings.TrimSpace(k)))
		if kind.Ext() == "" {
			return nil, ErrUnknownKind(k)
		}
		f[kind] = true
	}
	return f, nil
}
