// Package static provides grid configurations written directly in the
// application config.
package static

import (
	"context"
	"strings"

	"github.com/arolek/p"
	"github.com/gdey/errors"
	"github.com/go-spatial/gridoverlay/crs"
	"github.com/go-spatial/gridoverlay/grid"
	"github.com/go-spatial/gridoverlay/providers"
	"github.com/go-spatial/tegola/dict"
	"github.com/prometheus/common/log"
)

// Name is the name of the provider type
const Name = "static"

const (
	// ConfigKeyGrid is an attribute set returned for any requested name
	ConfigKeyGrid = "grid"
	// ConfigKeyGrids is a table of attribute sets keyed by grid name
	ConfigKeyGrids = "grids"

	// DefaultSRID is the assumed srid of the grids unless specified
	DefaultSRID = int(crs.WGS84)

	// ErrNoGrids is returned when neither grid nor grids is configured
	ErrNoGrids = errors.String("error one of " + ConfigKeyGrid + " or " + ConfigKeyGrids + " is required")
)

func init() {
	providers.Register(Name, NewGridProvider, nil)
}

// Provider serves attribute sets held in memory.
type Provider struct {
	srid     crs.SRID
	fallback dict.Dicter
	grids    map[string]dict.Dicter
}

// New returns a provider serving grids by name, and fallback for any other
// name when fallback is not nil.
func New(srid crs.SRID, fallback dict.Dicter, grids map[string]dict.Dicter) (*Provider, error) {
	prv := Provider{
		srid:  srid,
		grids: make(map[string]dict.Dicter, len(grids)),
	}
	if fallback != nil {
		prv.fallback = grid.Normalize(fallback)
		if _, err := grid.FromAttributes(prv.fallback); err != nil {
			return nil, errors.Wrapf(err, "error in %v", ConfigKeyGrid)
		}
	}
	for name, attrs := range grids {
		attrs = grid.Normalize(attrs)
		if _, err := grid.FromAttributes(attrs); err != nil {
			return nil, errors.Wrapf(err, "error in %v.%v", ConfigKeyGrids, name)
		}
		prv.grids[strings.ToLower(name)] = attrs
	}
	if prv.fallback == nil && len(prv.grids) == 0 {
		return nil, ErrNoGrids
	}
	return &prv, nil
}

// NewGridProvider returns a provider configured from config
func NewGridProvider(config dict.Dicter) (providers.Provider, error) {
	srid, err := config.Int(providers.ConfigKeySRID, p.Int(DefaultSRID))
	if err != nil {
		return nil, err
	}

	var fallback dict.Dicter
	if d, err := config.Map(ConfigKeyGrid); err == nil && d != nil {
		fallback = d
	}

	grids := make(map[string]dict.Dicter)
	if d, err := config.Map(ConfigKeyGrids); err == nil && d != nil {
		table, ok := d.(dict.Dict)
		if !ok {
			return nil, errors.String("error " + ConfigKeyGrids + " must be a table")
		}
		for name := range table {
			attrs, err := table.Map(name)
			if err != nil {
				return nil, errors.Wrapf(err, "error in %v.%v", ConfigKeyGrids, name)
			}
			grids[name] = attrs
		}
	}

	prv, err := New(crs.SRID(srid), fallback, grids)
	if err != nil {
		return nil, err
	}
	log.Infof("provider %v: %v named grids, fallback %v", Name, len(prv.grids), prv.fallback != nil)
	return prv, nil
}

// Grid implements the providers.Provider interface
func (prv *Provider) Grid(ctx context.Context, name string) (providers.Grid, error) {
	if err := ctx.Err(); err != nil {
		return providers.Grid{}, err
	}
	attrs, ok := prv.grids[strings.ToLower(name)]
	if !ok {
		attrs = prv.fallback
	}
	if attrs == nil {
		return providers.Grid{}, providers.ErrNotFound
	}
	return providers.Grid{
		Name:       name,
		SRID:       prv.srid,
		Attributes: attrs,
	}, nil
}

var _ providers.Provider = &Provider{}
