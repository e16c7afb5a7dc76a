package main

import (
	// Import various filestores
	"github.com/go-spatial/gridoverlay/filestore"
	_ "github.com/go-spatial/gridoverlay/filestore/file"
	_ "github.com/go-spatial/gridoverlay/filestore/multi"
	_ "github.com/go-spatial/gridoverlay/filestore/null"
	_ "github.com/go-spatial/gridoverlay/filestore/s3"
)

func init() {
	cleanupFns = append(cleanupFns, filestore.Cleanup)
}
