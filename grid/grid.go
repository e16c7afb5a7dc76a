// Package grid generates the lines, extent and labels of an overlay grid
// from its configuration.
package grid

import (
	"math"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/gridoverlay/vector"
)

// Geometry is everything derived from a Config. All coordinates are in the
// map crs of the config's origin.
type Geometry struct {
	// Lines holds the horizontal family (NumCellsY+1 lines) followed by the
	// vertical family (NumCellsX+1 lines).
	Lines []geom.LineString

	// Extent covers the four corners of the grid.
	Extent geom.Extent

	// Labels is empty unless labels are enabled.
	Labels []Label

	// Base and Perp are the steps of one cell along the primary and
	// secondary axis.
	Base vector.Vector
	Perp vector.Vector

	numHorizontal int
}

// Horizontal returns the horizontal family of lines.
func (g *Geometry) Horizontal() []geom.LineString {
	if g == nil {
		return nil
	}
	return g.Lines[:g.numHorizontal]
}

// Vertical returns the vertical family of lines.
func (g *Geometry) Vertical() []geom.LineString {
	if g == nil {
		return nil
	}
	return g.Lines[g.numHorizontal:]
}

// BaseAngle is the angle of the primary axis from the east axis, counter-clockwise in degrees.
func (g *Geometry) BaseAngle() float64 { return degrees(g.Base.Angle()) }

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }
func degrees(rad float64) float64 { return rad * 180.0 / math.Pi }

// stepVectors returns the vectors spanning one cell.
func (cfg Config) stepVectors() (base, perp vector.Vector, err error) {
	base = vector.New(1.0, 0.0).RotateBy(radians(360.0 - cfg.BaselineAngle)).Mul(cfg.CellSizeX)
	perp, err = base.Perp().Normal()
	if err != nil {
		return base, perp, ErrDegenerateGrid
	}
	perp = perp.Mul(cfg.CellSizeY)
	if perp.Length() == 0.0 {
		return base, perp, ErrDegenerateGrid
	}
	return base, perp, nil
}

func (cfg Config) point(v vector.Vector) [2]float64 {
	return [2]float64{cfg.Origin[0] + v.X, cfg.Origin[1] + v.Y}
}

// Generate computes the geometry of the grid. geographic reports whether the
// map crs is in degrees; it selects the label formatting.
func Generate(cfg Config, geographic bool) (*Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, perp, err := cfg.stepVectors()
	if err != nil {
		return nil, err
	}

	var (
		firstX, lastX = cfg.OffsetX, cfg.OffsetX + cfg.NumCellsX
		firstY, lastY = cfg.OffsetY, cfg.OffsetY + cfg.NumCellsY
	)

	g := &Geometry{
		Lines:         make([]geom.LineString, 0, cfg.NumCellsX+cfg.NumCellsY+2),
		Base:          base,
		Perp:          perp,
		numHorizontal: cfg.NumCellsY + 1,
	}

	// Horizontal lines as a piecewise curve.
	for h := firstY; h <= lastY; h++ {
		line := make(geom.LineString, 0, cfg.NumCellsX+1)
		for l := firstX; l <= lastX; l++ {
			line = append(line, cfg.point(perp.Mul(float64(h)).Add(base.Mul(float64(l)))))
		}
		g.Lines = append(g.Lines, line)
	}

	// Vertical lines as a piecewise curve.
	for v := firstX; v <= lastX; v++ {
		line := make(geom.LineString, 0, cfg.NumCellsY+1)
		for l := firstY; l <= lastY; l++ {
			line = append(line, cfg.point(base.Mul(float64(v)).Add(perp.Mul(float64(l)))))
		}
		g.Lines = append(g.Lines, line)
	}

	g.Extent = extent(
		cfg.point(base.Mul(float64(firstX)).Add(perp.Mul(float64(firstY)))),
		cfg.point(base.Mul(float64(lastX)).Add(perp.Mul(float64(firstY)))),
		cfg.point(base.Mul(float64(firstX)).Add(perp.Mul(float64(lastY)))),
		cfg.point(base.Mul(float64(lastX)).Add(perp.Mul(float64(lastY)))),
	)

	if cfg.Labels.Enabled {
		g.Labels = labels(cfg, g, geographic)
	}
	return g, nil
}

func extent(corners ...[2]float64) geom.Extent {
	ext := geom.Extent{
		math.Inf(1), math.Inf(1),
		math.Inf(-1), math.Inf(-1),
	}
	for _, pt := range corners {
		ext[0] = math.Min(ext[0], pt[0])
		ext[1] = math.Min(ext[1], pt[1])
		ext[2] = math.Max(ext[2], pt[0])
		ext[3] = math.Max(ext[3], pt[1])
	}
	return ext
}
