// Package crs describes the coordinate reference systems a grid can be
// drawn in and the transforms between them.
package crs

import (
	"fmt"
	"math"

	"github.com/gdey/errors"
	"github.com/go-spatial/proj"
	"github.com/go-spatial/tegola"
)

// SRID is an EPSG spatial reference identifier.
type SRID uint

const (
	// WGS84 is geographic longitude/latitude in degrees
	WGS84 = SRID(tegola.WGS84)
	// WebMercator is spherical mercator in meters
	WebMercator = SRID(tegola.WebMercator)
)

// geographic lists the supported systems whose units are degrees.
var geographic = map[SRID]bool{
	WGS84: true,
	4258:  true, // ETRS89
	4269:  true, // NAD83
	4283:  true, // GDA94
	4617:  true, // NAD83(CSRS)
}

// IsGeographic reports whether coordinates in the system are degrees.
func (srid SRID) IsGeographic() bool { return geographic[srid] }

func (srid SRID) String() string { return fmt.Sprintf("EPSG:%d", uint(srid)) }

// projected lists the supported projected systems, with the latitude
// their projection is clamped to.
var projected = map[SRID]struct {
	code   proj.EPSGCode
	maxLat float64
}{
	WebMercator: {code: proj.EPSG3857, maxLat: 85.0511287798},
	3395:        {code: proj.EPSG3395, maxLat: 85.0840590501}, // World Mercator
	4087:        {code: proj.EPSG4087, maxLat: 90},            // World Equidistant Cylindrical
}

// Transform converts a point from one system to another.
type Transform func(pt [2]float64) ([2]float64, error)

// Transform calls fn, so a Transform satisfies single method transformer interfaces.
func (fn Transform) Transform(pt [2]float64) ([2]float64, error) { return fn(pt) }

// Identity returns the point unchanged.
func Identity(pt [2]float64) ([2]float64, error) { return pt, nil }

func forward(to SRID) Transform {
	prj := projected[to]
	return func(pt [2]float64) ([2]float64, error) {
		lat := math.Max(-prj.maxLat, math.Min(pt[1], prj.maxLat))
		out, err := proj.Convert(prj.code, []float64{pt[0], lat})
		if err != nil {
			return pt, errors.Wrapf(err, "projecting %v to %v", pt, to)
		}
		return [2]float64{out[0], out[1]}, nil
	}
}

func inverse(from SRID) Transform {
	code := projected[from].code
	return func(pt [2]float64) ([2]float64, error) {
		out, err := proj.Inverse(code, []float64{pt[0], pt[1]})
		if err != nil {
			return pt, errors.Wrapf(err, "unprojecting %v from %v", pt, from)
		}
		return [2]float64{out[0], out[1]}, nil
	}
}

// TransformFor returns the transform from one system to another.
func TransformFor(from, to SRID) (Transform, error) {
	_, fromProjected := projected[from]
	_, toProjected := projected[to]
	switch {
	case from == to:
		return Identity, nil
	case from.IsGeographic() && to.IsGeographic():
		// datum shifts between the supported geographic systems are below
		// the precision of a drawn grid
		return Identity, nil
	case from.IsGeographic() && toProjected:
		return forward(to), nil
	case fromProjected && to.IsGeographic():
		return inverse(from), nil
	case fromProjected && toProjected:
		inv, fwd := inverse(from), forward(to)
		return func(pt [2]float64) ([2]float64, error) {
			ll, err := inv(pt)
			if err != nil {
				return pt, err
			}
			return fwd(ll)
		}, nil
	}
	return nil, ErrUnsupportedTransform{From: from, To: to}
}
