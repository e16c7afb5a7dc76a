// Package urlutil opens local files and http(s) resources named by a url.
package urlutil

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gdey/errors"
)

// ErrNilURL is returned when no location is given
const ErrNilURL = errors.String("nil url provided")

// Timeout for remote resources
var Timeout = 10 * time.Second

// ErrRemoteFile is returned when a remote resource could not be fetched
type ErrRemoteFile struct {
	Location *url.URL
	Err      error
}

func (e ErrRemoteFile) Error() string {
	return fmt.Sprintf("error obtaining remote file (%v): %v", e.Location, e.Err)
}

// ErrUnsupportedScheme is returned for schemes other than file, http and https
type ErrUnsupportedScheme struct {
	Location *url.URL
}

func (e ErrUnsupportedScheme) Error() string {
	return fmt.Sprintf("unsupported scheme (%v), for location %v", strings.ToLower(e.Location.Scheme), e.Location)
}

// ErrFileNotExists is returned when a local file does not exist
type ErrFileNotExists string

func (e ErrFileNotExists) Error() string {
	return fmt.Sprintf("file at location (%v) not found", string(e))
}

// Parse turns a command line location into a url. Plain paths are file urls.
func Parse(location string) (*url.URL, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Path = location
		u.RawPath = ""
	}
	return u, nil
}

// Open returns a reader for the resource at location. The caller closes it.
func Open(location *url.URL) (io.ReadCloser, error) {
	if location == nil {
		return nil, ErrNilURL
	}
	switch strings.ToLower(location.Scheme) {
	case "", "file":
		filename := location.Path
		f, err := os.Open(filename)
		if os.IsNotExist(err) {
			return nil, ErrFileNotExists(filename)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "error opening local file (%v)", filename)
		}
		return f, nil

	case "http", "https":
		client := http.Client{Timeout: Timeout}
		res, err := client.Get(location.String())
		if err != nil {
			return nil, ErrRemoteFile{Location: location, Err: err}
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, ErrRemoteFile{Location: location, Err: errors.String(res.Status)}
		}
		return res.Body, nil

	default:
		return nil, ErrUnsupportedScheme{Location: location}
	}
}

// VisitReader opens location and hands the reader to fn.
func VisitReader(location *url.URL, fn func(io.Reader) error) error {
	r, err := Open(location)
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}
