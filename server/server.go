// Package server serves the grids of an overlay over http.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dimfeld/httptreemux"
	"github.com/go-spatial/gridoverlay"
	"github.com/go-spatial/gridoverlay/config"
	"github.com/go-spatial/gridoverlay/filestore"
	"github.com/go-spatial/gridoverlay/providers"
	"github.com/go-spatial/gridoverlay/render/svg"
	"github.com/prometheus/common/log"
)

// URLPath is a named parameter of a route.
type URLPath string

// PathComponent returns the route pattern of the parameter.
func (u URLPath) PathComponent() string { return ":" + string(u) }

const (
	// ParamsKeyGridName is the key used for the grid name
	ParamsKeyGridName = URLPath("name")

	// QueryKeyWidth overrides the pixel width of svg output
	QueryKeyWidth = "width"

	HTTPErrorHeader = "X-HTTP-Error-Description"

	// MimeGeoJSON is the content type of geojson output
	MimeGeoJSON = "application/geo+json"
	// MimeTOML is the content type of attribute output
	MimeTOML = "application/toml"
)

// GenPath joins the components into a route path.
func GenPath(paths ...interface{}) string {
	var path strings.Builder
	for _, p := range paths {
		var str string
		switch pp := p.(type) {
		case URLPath:
			str = pp.PathComponent()
		case string:
			str = pp
		case filestore.Kind:
			str = string(pp)
		default:
			if pp == nil {
				continue
			}
			str = fmt.Sprintf("%v", p)
		}
		if str == "/" || str == "" {
			continue
		}
		path.WriteString("/" + str)
	}
	return path.String()
}

// Server is used to serve up the grids of an overlay
type Server struct {
	// HostName is the name of the host to use for construction of URLS.
	Hostname string

	// Port is the port the server is listening on, used for construction of URLS.
	Port string

	// Scheme is the scheme that should be used for construction of URLs.
	Scheme string

	// Headers is the map of user defined response headers.
	Headers map[string]string

	// Overlay holds the grids being served
	Overlay *gridoverlay.Overlay
}

var (
	// Version is the version of the software, this should be set by the main program, before starting up.
	Version = "Version Not Set"

	// DefaultCORSHeaders define the default CORS response headers added to all requests
	DefaultCORSHeaders = map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, OPTIONS",
	}

	mimeTypes = map[filestore.Kind]string{
		filestore.KindGeoJSON:    MimeGeoJSON,
		filestore.KindSVG:        svg.Mime,
		filestore.KindAttributes: MimeTOML,
	}
)

func setHeaders(h map[string]string, w http.ResponseWriter) {
	// add CORS headers
	for name, val := range DefaultCORSHeaders {
		w.Header().Set(name, val)
	}

	// set user defined headers
	for name, val := range h {
		if val == "" {
			log.Warnf("header (%v) has no value", name)
		}
		w.Header().Set(name, val)
	}
}

func badRequest(w http.ResponseWriter, reasonFmt string, data ...interface{}) {
	errorStatus(w, http.StatusBadRequest, reasonFmt, data...)
}

func errorStatus(w http.ResponseWriter, status int, reasonFmt string, data ...interface{}) {
	w.Header().Set(HTTPErrorHeader, fmt.Sprintf(reasonFmt, data...))
	w.WriteHeader(status)
}

// GetHostName returns determines the hostname:port to return based on the following hierarchy
// Hostname/Port in the server object.
// the host/port in the request object.
func (s *Server) GetHostName(r *http.Request) string {
	var (
		rHostname = s.Hostname
		rPort     = s.Port
	)

	if rHostname == "" {
		substrs := strings.Split(r.Host, ":")
		switch len(substrs) {
		case 1:
			rHostname = substrs[0]
		case 2:
			rHostname = substrs[0]
			if rPort == "" || rPort == "none" {
				rPort = substrs[1]
			}
		default:
			log.Warnf("multiple colons (':') in host string: %v", r.Host)
		}
	}

	rPort = strings.TrimPrefix(rPort, ":")
	if rPort == "" || rPort == "none" {
		return rHostname
	}
	return rHostname + ":" + rPort
}

// GetScheme checks to determine if the request is http or https.
func (s *Server) GetScheme(r *http.Request) string {
	switch {
	case r.Header.Get("X-Forwarded-Proto") != "":
		return r.Header.Get("X-Forwarded-Proto")
	case r.TLS != nil:
		return "https"
	case s.Scheme != "":
		return s.Scheme
	default:
		return "http"
	}
}

// URLRoot builds a string containing the scheme, host and port based on a combination of user defined values,
// headers and request parameters.
func (s *Server) URLRoot(r *http.Request) string {
	return fmt.Sprintf("%v://%v", s.GetScheme(r), s.GetHostName(r))
}

type gridInfo struct {
	Name       string `json:"name"`
	Desc       string `json:"description,omitempty"`
	GeoJSON    string `json:"geojson_url"`
	SVG        string `json:"svg_url"`
	Attributes string `json:"attributes_url"`
}

// GridsHandler lists the grids of the overlay with the urls of their
// artifacts.
func (s *Server) GridsHandler(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	root := s.URLRoot(r)
	names := s.Overlay.Grids()
	infos := make([]gridInfo, 0, len(names))
	for _, name := range names {
		g, err := s.Overlay.GridFor(name)
		if err != nil {
			log.Warnf("grid %v went away: %v", name, err)
			continue
		}
		infos = append(infos, gridInfo{
			Name:       name,
			Desc:       g.Desc,
			GeoJSON:    root + GenPath("grids", name, filestore.KindGeoJSON),
			SVG:        root + GenPath("grids", name, filestore.KindSVG),
			Attributes: root + GenPath("grids", name, filestore.KindAttributes),
		})
	}

	setHeaders(s.Headers, w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Version string     `json:"version"`
		Grids   []gridInfo `json:"grids"`
	}{
		Version: Version,
		Grids:   infos,
	})
}

// KindHandler returns a handler that writes the kind artifact of the grid
// named in the url.
func (s *Server) KindHandler(kind filestore.Kind) httptreemux.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, urlParams map[string]string) {
		name, ok := urlParams[string(ParamsKeyGridName)]
		if !ok {
			badRequest(w, "missing grid name")
			return
		}
		g, err := s.Overlay.GridFor(name)
		if err != nil {
			errorStatus(w, http.StatusNotFound, "error getting grid(%v): %v", name, err)
			return
		}

		width := int64(g.SVGWidth)
		if ws := r.URL.Query().Get(QueryKeyWidth); ws != "" {
			width, err = strconv.ParseInt(ws, 10, 64)
			if err != nil || width <= 0 {
				badRequest(w, "error converting width(%v)", ws)
				return
			}
		}
		if width <= 0 {
			width = config.DefaultSVGWidth
		}

		l, err := g.Layer(r.Context())
		switch err {
		case nil:
		case providers.ErrNotFound:
			errorStatus(w, http.StatusNotFound, "grid(%v) not found in provider", name)
			return
		default:
			log.Errorf("error building grid %v: %v", name, err)
			errorStatus(w, http.StatusInternalServerError, "error building grid(%v): %v", name, err)
			return
		}

		var body strings.Builder
		if err = gridoverlay.Encode(&body, kind, l, width); err != nil {
			log.Errorf("error encoding %v of grid %v: %v", kind, name, err)
			errorStatus(w, http.StatusInternalServerError, "error encoding grid(%v): %v", name, err)
			return
		}

		setHeaders(s.Headers, w)
		w.Header().Set("Content-Type", mimeTypes[kind])
		fmt.Fprint(w, body.String())
	}
}

// RegisterRoutes setup the routes
func (s *Server) RegisterRoutes(r *httptreemux.TreeMux) {
	r.GET(GenPath("metrics"), MetricsHandler)
	r.GET(GenPath("grids"), instrument("grids", s.GridsHandler))
	group := r.NewGroup(GenPath("grids"))
	for _, kind := range filestore.Kinds {
		group.GET(GenPath(ParamsKeyGridName, kind), instrument(string(kind), s.KindHandler(kind)))
	}
}
