// Package multi provides a filestore that writes every file to several
// other filestores.
package multi

import (
	"io"

	"github.com/gdey/errors"
	"github.com/go-spatial/gridoverlay/filestore"
)

const (
	// TYPE is the name of the provider
	TYPE = "multi"

	// ConfigKeyFileStore is a config list of previously declared file stores
	ConfigKeyFileStore = "file_stores"

	// ErrZeroFilestoresConfigured is returned when a multi filestore does not have
	// any filestore configured.
	ErrZeroFilestoresConfigured = errors.String("zero filestores configured")
)

func initFunc(cfg filestore.Config) (filestore.Provider, error) {
	names, err := cfg.StringSlice(ConfigKeyFileStore)
	if err != nil {
		return nil, errors.Wrapf(err, "error for %v expected list of filestore providers", ConfigKeyFileStore)
	}
	var providers []filestore.Provider
	for _, name := range names {
		prv, err := cfg.FileStoreFor(name)
		if err != nil {
			return nil, filestore.ErrUnknownProvider(name)
		}
		providers = append(providers, prv)
	}
	provider := New(providers...)
	switch len(provider.providers) {
	case 0:
		return nil, ErrZeroFilestoresConfigured
	case 1:
		return provider.providers[0], nil
	default:
		return provider, nil
	}
}

func init() {
	filestore.Register(TYPE, initFunc, nil)
}

// New returns a provider writing to all of providers. Nested multi
// providers are flattened.
func New(providers ...filestore.Provider) (provider Provider) {
	for _, prv := range providers {
		if prv == nil {
			continue
		}
		if mp, ok := prv.(Provider); ok {
			provider.providers = append(provider.providers, mp.providers...)
			continue
		}
		provider.providers = append(provider.providers, prv)
	}
	return provider
}

// Provider duplexes writes to multiple other filestore providers
type Provider struct {
	providers []filestore.Provider
}

// Len is the number of providers written to
func (prv Provider) Len() int { return len(prv.providers) }

// FileWriter implements the filestore.Provider interface
func (prv Provider) FileWriter(grp string) (filestore.FileWriter, error) {
	var fw FileWriter
	for _, p := range prv.providers {
		w, err := p.FileWriter(grp)
		if err != nil {
			return nil, err
		}
		if w == nil {
			continue
		}
		fw.Writers = append(fw.Writers, w)
	}
	return fw, nil
}

// FileWriter returns writers that write files to all its Writers
type FileWriter struct {
	Writers []filestore.FileWriter
}

// Writer implements the filestore.FileWriter interface. Stores that skip
// the file are left out; when every store skips it, so does the multi
// writer.
func (fw FileWriter) Writer(fpath string, kind filestore.Kind) (io.WriteCloser, error) {
	var writer Writer
	for _, w := range fw.Writers {
		wc, err := w.Writer(fpath, kind)
		if err == filestore.ErrSkipWrite {
			continue
		}
		if err != nil {
			writer.Close()
			return nil, err
		}
		writer.writers = append(writer.writers, wc)
	}
	if len(writer.writers) == 0 {
		return nil, filestore.ErrSkipWrite
	}
	return &writer, nil
}

// Writer duplicates its writes to all the writers, similar to io.MultiWriter.
// The first error stops the write.
type Writer struct {
	writers []io.WriteCloser
}

// Write implements the io.Writer interface
func (t *Writer) Write(p []byte) (n int, err error) {
	for _, w := range t.writers {
		n, err = w.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Close closes every writer, returning the first error.
func (t *Writer) Close() error {
	var first error
	for _, w := range t.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var (
	_ filestore.Provider   = Provider{}
	_ filestore.FileWriter = FileWriter{}
)
