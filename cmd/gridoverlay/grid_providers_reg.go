package main

import (
	// Import various grid providers
	"github.com/go-spatial/gridoverlay/layer"
	"github.com/go-spatial/gridoverlay/providers"
	_ "github.com/go-spatial/gridoverlay/providers/postgresql"
	_ "github.com/go-spatial/gridoverlay/providers/static"
)

func init() {
	cleanupFns = append(cleanupFns, providers.Cleanup, layer.Cleanup)
}
