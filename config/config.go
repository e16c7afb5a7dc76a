// Package config models the application config file.
package config

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-spatial/gridoverlay/internal/urlutil"
	"github.com/go-spatial/tegola/dict"
)

const (
	// DefaultPort the webserver listens on
	DefaultPort = ":8080"
	// DefaultSVGWidth is the width in pixels of rendered grids
	DefaultSVGWidth = 1024
)

// Config models the config file that can be passed into the application
type Config struct {
	// FileLocation is the location that the config file was
	// read from. If this value is nil, then the Parse() function
	// was used directly
	FileLocation *url.URL `toml:"-"`

	// Webserver is the configuration for the webserver
	Webserver Webserver `toml:"webserver"`

	Providers []dict.Dict `toml:"providers"`

	// FileStores are the sinks generated artifacts are written to
	FileStores []dict.Dict `toml:"file_stores"`

	Grids []Grid `toml:"grids"`
}

// Webserver represents the config values for the webserver potion
// of the application.
type Webserver struct {
	HostName string            `toml:"hostname"`
	Port     string            `toml:"port"`
	Scheme   string            `toml:"scheme"`
	Headers  map[string]string `toml:"headers"`
}

// Grid models a grid in the config file
type Grid struct {
	Name        string   `toml:"name"`
	Provider    string   `toml:"provider"`
	FileStores  []string `toml:"file_stores"`
	Description string   `toml:"description"`
	// SVGWidth in pixels, zero means DefaultSVGWidth
	SVGWidth int `toml:"svg_width"`
}

// ErrInvalid describes a problem with the config
type ErrInvalid struct {
	Section string
	Index   int
	Msg     string
}

func (err ErrInvalid) Error() string {
	return fmt.Sprintf("config: %v #%v: %v", err.Section, err.Index, err.Msg)
}

func names(section string, entries []dict.Dict) (map[string]bool, error) {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		name, err := e.String("name", nil)
		if err != nil || strings.TrimSpace(name) == "" {
			return nil, ErrInvalid{Section: section, Index: i, Msg: "missing name"}
		}
		if typ, err := e.String("type", nil); err != nil || typ == "" {
			return nil, ErrInvalid{Section: section, Index: i, Msg: "missing type"}
		}
		name = strings.ToLower(name)
		if seen[name] {
			return nil, ErrInvalid{Section: section, Index: i, Msg: "duplicate name " + name}
		}
		seen[name] = true
	}
	return seen, nil
}

// Validate checks that every name is set and unique, and that every grid
// refers to configured providers and file stores.
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalid{Section: "config", Msg: "not initialized"}
	}
	provs, err := names("providers", c.Providers)
	if err != nil {
		return err
	}
	stores, err := names("file_stores", c.FileStores)
	if err != nil {
		return err
	}
	if len(c.Grids) == 0 {
		return ErrInvalid{Section: "grids", Msg: "no grids configured"}
	}
	seen := make(map[string]bool, len(c.Grids))
	for i, g := range c.Grids {
		name := strings.ToLower(strings.TrimSpace(g.Name))
		switch {
		case name == "":
			return ErrInvalid{Section: "grids", Index: i, Msg: "missing name"}
		case seen[name]:
			return ErrInvalid{Section: "grids", Index: i, Msg: "duplicate name " + name}
		case !provs[strings.ToLower(g.Provider)]:
			return ErrInvalid{Section: "grids", Index: i, Msg: "unknown provider " + g.Provider}
		case g.SVGWidth < 0:
			return ErrInvalid{Section: "grids", Index: i, Msg: "negative svg_width"}
		}
		for _, fs := range g.FileStores {
			if !stores[strings.ToLower(strings.TrimSpace(fs))] {
				return ErrInvalid{Section: "grids", Index: i, Msg: "unknown file store " + fs}
			}
		}
		seen[name] = true
	}
	return nil
}

// Parse will parse a config file in the io.Reader
func Parse(reader io.Reader, fileLocation *url.URL) (conf Config, err error) {
	_, err = toml.DecodeReader(reader, &conf)
	conf.FileLocation = fileLocation
	if conf.Webserver.Port == "" {
		conf.Webserver.Port = DefaultPort
	}
	return conf, err
}

// Load will load and parse the config file from the given location.
func Load(location *url.URL) (conf Config, err error) {
	err = urlutil.VisitReader(location, func(r io.Reader) error {
		var e error
		conf, e = Parse(r, location)
		return e
	})
	return conf, err
}

// LoadAndValidate is helper function that just calls load and then validate
func LoadAndValidate(location *url.URL) (cfg Config, err error) {
	cfg, err = Load(location)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
