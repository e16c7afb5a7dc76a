package grid

import (
	"math"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/gridoverlay/angle"
)

// LabelMode selects what the labels show.
type LabelMode uint8

const (
	// LabelCRSCoordinate labels every vertex of the boundary row and column with its ordinate.
	LabelCRSCoordinate LabelMode = iota
	// LabelCellIndex labels every cell along the boundary row and column with its index.
	LabelCellIndex
	// LabelGridReference labels every cell with its "x y" index pair.
	LabelGridReference
)

// Normalize returns the mode, falling back to LabelCRSCoordinate for unknown values.
func (m LabelMode) Normalize() LabelMode {
	if m > LabelGridReference {
		return LabelCRSCoordinate
	}
	return m
}

func (m LabelMode) String() string {
	switch m.Normalize() {
	case LabelCellIndex:
		return "cell_index"
	case LabelGridReference:
		return "grid_reference"
	default:
		return "crs_coordinate"
	}
}

// Orientation is one of the four label orientations, 0 through 3.
type Orientation uint8

// MaxOrientation is the largest known orientation.
const MaxOrientation Orientation = 3

// Normalize returns the orientation, falling back to 0 for unknown values.
func (o Orientation) Normalize() Orientation {
	if o > MaxOrientation {
		return 0
	}
	return o
}

// Offsets shift the labels relative to their anchor. The X offsets apply to
// the boundary row labels, the Y offsets to the boundary column labels.
type Offsets struct {
	XOffH float64
	XOffV float64
	YOffH float64
	YOffV float64
}

// LabelConfig describes how labels are generated.
type LabelConfig struct {
	Enabled     bool
	Mode        LabelMode
	Precision   int
	Orientation Orientation
	Format      angle.Format

	ShowHemisphere          bool
	LeadingZeros            bool
	SuppressRepeatedDegrees bool

	Offsets Offsets
}

func (lc LabelConfig) precision() uint {
	if lc.Precision < 0 {
		return 0
	}
	return uint(lc.Precision)
}

// Config is the persisted state of a grid.
type Config struct {
	// Origin in map crs coordinates
	Origin geom.Point

	NumCellsX int
	NumCellsY int

	// OffsetX and OffsetY are the index of the first line along each axis.
	OffsetX int
	OffsetY int

	CellSizeX float64
	CellSizeY float64

	// BaselineAngle is the clockwise rotation, in degrees, of the primary
	// axis from the east axis.
	BaselineAngle float64

	Labels LabelConfig
}

// DefaultConfig returns a config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		Origin:        geom.Point{0.0, 0.0},
		NumCellsX:     1,
		NumCellsY:     1,
		CellSizeX:     10.0,
		CellSizeY:     10.0,
		BaselineAngle: 0.0,
		Labels: LabelConfig{
			ShowHemisphere: true,
			LeadingZeros:   true,
		},
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Validate reports the first problem with the config, if any.
func (cfg Config) Validate() error {
	switch {
	case !finite(cfg.Origin[0]):
		return ErrNonFinite("origin_x")
	case !finite(cfg.Origin[1]):
		return ErrNonFinite("origin_y")
	case !finite(cfg.BaselineAngle):
		return ErrNonFinite("baseline_angle")
	case cfg.NumCellsX < 0:
		return ErrNegativeCellCount{Axis: "x", Count: cfg.NumCellsX}
	case cfg.NumCellsY < 0:
		return ErrNegativeCellCount{Axis: "y", Count: cfg.NumCellsY}
	case !finite(cfg.CellSizeX) || cfg.CellSizeX <= 0:
		return ErrInvalidCellSize{Axis: "x", Size: cfg.CellSizeX}
	case !finite(cfg.CellSizeY) || cfg.CellSizeY <= 0:
		return ErrInvalidCellSize{Axis: "y", Size: cfg.CellSizeY}
	}
	return nil
}
