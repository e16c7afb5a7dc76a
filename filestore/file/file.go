// Package file provides a filestore that writes to the local file system.
package file

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arolek/p"
	"github.com/gdey/errors"
	"github.com/go-spatial/gridoverlay/filestore"
	"github.com/prometheus/common/log"
)

const (
	// TYPE is the name of the provider
	TYPE = "file"

	// ConfigKeyBasepath is the base directory where the files will be placed.
	ConfigKeyBasepath = "base_path"
	// ConfigKeyGroup places the files of each grid in a subdirectory named
	// after the grid.
	ConfigKeyGroup = "group"

	// ErrMissingBasePath is returned when the configured value for the base path is missing.
	ErrMissingBasePath = errors.String("error " + ConfigKeyBasepath + " missing value")
)

func initFunc(cfg filestore.Config) (filestore.Provider, error) {
	basepath, err := cfg.String(ConfigKeyBasepath, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error invalid for config key: %v", ConfigKeyBasepath)
	}
	if basepath == "" {
		return nil, ErrMissingBasePath
	}
	grp, err := cfg.Bool(ConfigKeyGroup, p.Bool(false))
	if err != nil {
		return nil, errors.Wrapf(err, "error invalid for config key: %v", ConfigKeyGroup)
	}
	filter, err := filestore.FilterFrom(cfg)
	if err != nil {
		return nil, err
	}
	prv, err := New(basepath, grp, filter)
	if err != nil {
		return nil, err
	}
	log.Infof("filestore %v: writing to %v", TYPE, prv.Base)
	return prv, nil
}

func init() {
	filestore.Register(TYPE, initFunc, nil)
}

// New returns a provider rooted at basepath, creating the directory if needed.
func New(basepath string, group bool, filter filestore.Filter) (Provider, error) {
	basepath = filepath.Clean(basepath)
	if basepath != "." {
		if err := os.MkdirAll(basepath, os.ModePerm); err != nil {
			return Provider{}, errors.Wrapf(err, "error failed to write to %v", basepath)
		}
	}
	return Provider{
		Base:   basepath,
		Group:  group,
		Filter: filter,
	}, nil
}

// Provider provides a filestore that writes to the local file system.
type Provider struct {
	Base   string
	Group  bool
	Filter filestore.Filter
}

// FileWriter implements the filestore.Provider interface
func (prv Provider) FileWriter(grp string) (filestore.FileWriter, error) {
	base := prv.Base
	if prv.Group {
		base = filepath.Clean(filepath.Join(base, grp))
		if err := os.MkdirAll(base, os.ModePerm); err != nil {
			return nil, errors.Wrapf(err, "error failed to write to %v", base)
		}
	}
	return Writer{
		Base:   base,
		Filter: prv.Filter,
	}, nil
}

// Writer writes files below Base
type Writer struct {
	Base   string
	Filter filestore.Filter
}

// Writer implements the filestore.FileWriter interface
func (w Writer) Writer(fpath string, kind filestore.Kind) (io.WriteCloser, error) {
	if !w.Filter.Accepts(kind) {
		return nil, filestore.ErrSkipWrite
	}
	path := filepath.Join(w.Base, fpath)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "error failed create base dir %v", dir)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error failed to create file %v", path)
	}
	return f, nil
}

var (
	_ = filestore.Provider(Provider{})
	_ = filestore.FileWriter(Writer{})
)
