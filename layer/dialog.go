package layer

import "github.com/go-spatial/gridoverlay/grid"

// Dialog is an edit session on a layer. Changes to Config and LineStyle
// reach the layer only on Accept. Label style changes are previewed on the
// layer immediately and restored on Reject.
type Dialog struct {
	Config    grid.Config
	LineStyle LineStyle

	layer      *Layer
	savedLabel LabelStyle
	closed     bool
}

// Edit opens an edit session with a copy of the committed state.
func (l *Layer) Edit() *Dialog {
	return &Dialog{
		Config:     l.Config(),
		LineStyle:  l.LineStyle(),
		layer:      l,
		savedLabel: l.LabelStyle(),
	}
}

// SetLabelStyle applies s to the layer.
func (d *Dialog) SetLabelStyle(s LabelStyle) error {
	if d.closed {
		return ErrDialogClosed
	}
	d.layer.SetLabelStyle(s)
	return nil
}

// Accept commits the edited state. If the configuration is invalid the
// error is returned, the layer is untouched and the dialog stays open.
func (d *Dialog) Accept() error {
	if d.closed {
		return ErrDialogClosed
	}
	if err := d.layer.SetConfig(d.Config); err != nil {
		return err
	}
	d.layer.SetLineStyle(d.LineStyle)
	d.closed = true
	return nil
}

// Reject discards the edited state and restores the label style the layer
// had when the dialog was opened.
func (d *Dialog) Reject() error {
	if d.closed {
		return ErrDialogClosed
	}
	d.layer.SetLabelStyle(d.savedLabel)
	d.closed = true
	return nil
}
