// Package config builds an overlay from the application config.
package config

import (
	"fmt"
	"strings"

	"github.com/go-spatial/gridoverlay"
	"github.com/go-spatial/gridoverlay/config"
	"github.com/go-spatial/gridoverlay/filestore"
	fsmulti "github.com/go-spatial/gridoverlay/filestore/multi"
	"github.com/go-spatial/gridoverlay/providers"
	"github.com/go-spatial/tegola/dict"
	"github.com/prometheus/common/log"
)

// Filestore is a config for file stores
type Filestore struct {
	dict.Dicter
	stores map[string]filestore.Provider
}

// FileStoreFor implements the filestore.Config interface
func (fscfg Filestore) FileStoreFor(name string) (filestore.Provider, error) {
	name = strings.ToLower(name)
	p, ok := fscfg.stores[name]
	if !ok {
		return nil, filestore.ErrUnknownProvider(name)
	}
	return p, nil
}

// Load builds the providers, file stores and grids of conf into an overlay.
func Load(conf config.Config) (*gridoverlay.Overlay, error) {
	var (
		o          gridoverlay.Overlay
		provs      = make(map[string]providers.Provider)
		fileStores = make(map[string]filestore.Provider)
	)

	// Loop through providers creating a provider type mapping.
	for i, p := range conf.Providers {
		// type is required
		typ, err := p.String(providers.ConfigKeyType, nil)
		if err != nil {
			return nil, fmt.Errorf("error provider (%v) missing type : %v", i, err)
		}
		name, err := p.String(providers.ConfigKeyName, nil)
		if err != nil {
			return nil, fmt.Errorf("error provider (%v) missing name : %v", i, err)
		}
		name = strings.ToLower(name)
		if _, ok := provs[name]; ok {
			return nil, fmt.Errorf("error provider with name (%v) is already registered", name)
		}
		prv, err := providers.For(typ, p)
		if err != nil {
			if _, ok := err.(providers.ErrProviderNotRegistered); ok {
				log.Infoln("known grid providers:")
				for _, p := range providers.Registered() {
					log.Infoln("\t", p)
				}
			}
			return nil, fmt.Errorf("error registering provider #%v: %v", i, err)
		}
		provs[name] = prv
	}

	// filestores
	for i, fstore := range conf.FileStores {
		// type is required
		typ, err := fstore.String(filestore.ConfigKeyType, nil)
		if err != nil {
			return nil, fmt.Errorf("error filestore (%v) missing type : %v", i, err)
		}
		name, err := fstore.String(filestore.ConfigKeyName, nil)
		if err != nil {
			return nil, fmt.Errorf("error filestore (%v) missing name: %v", i, err)
		}
		name = strings.ToLower(name)
		if _, ok := fileStores[name]; ok {
			return nil, fmt.Errorf("error filestore (%v) with name (%v) is already registered", i, name)
		}
		prv, err := filestore.For(typ, Filestore{Dicter: fstore, stores: fileStores})
		if err != nil {
			return nil, fmt.Errorf("error registering filestore %v:%v", i, err)
		}
		fileStores[name] = prv
	}

	if len(conf.Grids) == 0 {
		return nil, gridoverlay.ErrNoGrids
	}
	// Establish grids
	for i, g := range conf.Grids {
		providerName := strings.ToLower(g.Provider)
		prv, ok := provs[providerName]
		if !ok {
			return nil, fmt.Errorf("error locating provider for grid %v (#%v): %v", g.Name, i, providers.ErrUnknownProvider(providerName))
		}

		var fstores []filestore.Provider
		for _, filestoreString := range g.FileStores {
			filestoreName := strings.TrimSpace(strings.ToLower(filestoreString))
			if filestoreName == "" {
				continue
			}
			fsprv, ok := fileStores[filestoreName]
			if !ok {
				log.Infoln("known file stores are:")
				for k := range fileStores {
					log.Infoln("\t", k)
				}
				return nil, filestore.ErrUnknownProvider(filestoreName)
			}
			fstores = append(fstores, fsprv)
		}
		var fsprv filestore.Provider
		switch len(fstores) {
		case 0:
			fsprv = nil
		case 1:
			fsprv = fstores[0]
		default:
			fsprv = fsmulti.New(fstores...)
		}

		err := o.AddGrid(&gridoverlay.Grid{
			Name:      strings.ToLower(g.Name),
			Desc:      g.Description,
			Provider:  prv,
			Filestore: fsprv,
			SVGWidth:  g.SVGWidth,
		})
		if err != nil {
			return nil, fmt.Errorf("error trying to add grid %v: %v", i, err)
		}
	}

	return &o, nil
}
