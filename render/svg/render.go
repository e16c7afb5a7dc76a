package svg

import "github.com/go-spatial/gridoverlay/layer"

// Render draws the lines and labels of l onto a new canvas covering the
// extent of the grid. Coordinates stay in the crs of the layer.
func Render(l *layer.Layer, width int64, buff int64) (*Canvas, error) {
	ext := l.Extent()
	c, err := New(&ext, width, buff)
	if err != nil {
		return nil, err
	}
	rc := layer.RenderContext{
		Pixels: c,
		Lines:  c,
		Labels: c,
	}
	if err = l.Draw(rc); err != nil {
		return nil, err
	}
	if err = l.DrawLabels(rc); err != nil {
		return nil, err
	}
	return c, nil
}
