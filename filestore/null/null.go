// Package null provides a filestore that discards everything written to it.
package null

import (
	"io"

	"github.com/arolek/p"
	"github.com/go-spatial/gridoverlay/filestore"
	"github.com/prometheus/common/log"
)

const (
	// TYPE is the name of the provider
	TYPE = "null"

	// ConfigKeyLog logs the name of every discarded file
	ConfigKeyLog = "log"
)

func initFunc(cfg filestore.Config) (filestore.Provider, error) {
	if logged, _ := cfg.Bool(ConfigKeyLog, p.Bool(false)); !logged {
		return Provider{}, nil
	}
	return LogProvider{}, nil
}

func init() {
	filestore.Register(TYPE, initFunc, nil)
}

// Writer is a null writer
type Writer struct{}

// Write implements io.Writer
func (Writer) Write(p []byte) (int, error) { return len(p), nil }

// Close implements io.Closer
func (Writer) Close() error { return nil }

// Provider provides a filestore that throws away any file written to it.
type Provider struct{}

// Writer implements the filestore.FileWriter interface
func (Provider) Writer(string, filestore.Kind) (io.WriteCloser, error) { return Writer{}, nil }

// FileWriter implements the filestore.Provider interface
func (prv Provider) FileWriter(string) (filestore.FileWriter, error) { return prv, nil }

// LogProvider throws away any file written to it, logging its name.
type LogProvider struct{}

type logWriter struct {
	grp string
}

// FileWriter implements the filestore.Provider interface
func (LogProvider) FileWriter(grp string) (filestore.FileWriter, error) {
	return logWriter{grp: grp}, nil
}

func (l logWriter) Writer(fpath string, kind filestore.Kind) (io.WriteCloser, error) {
	log.Infof("%v would write %v: %v", l.grp, kind, fpath)
	return nil, filestore.ErrSkipWrite
}

var (
	_ = filestore.Provider(Provider{})
	_ = filestore.Provider(LogProvider{})
	_ = filestore.FileWriter(Provider{})
	_ = filestore.FileWriter(logWriter{})
)
