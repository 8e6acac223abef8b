package scope

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/goppk/pkg/chart"
	"github.com/itohio/goppk/pkg/config"
)

// ChannelHeight is the minimum height of one digital channel row.
const ChannelHeight = 28

// DigitalChannels stacks the enabled digital channel surfaces of a group
// below the main chart. While the visible window is too wide it shows a
// placeholder instead.
type DigitalChannels struct {
	widget.BaseWidget

	group       *chart.Group
	surfaces    []*Surface
	placeholder *widget.Label
	box         *fyne.Container
}

// NewDigitalChannels creates the channel stack of g.
func NewDigitalChannels(g *chart.Group) *DigitalChannels {
	d := &DigitalChannels{
		group:       g,
		placeholder: widget.NewLabel(chart.DigitalPlaceholder),
	}
	d.placeholder.Alignment = fyne.TextAlignCenter

	objs := []fyne.CanvasObject{d.placeholder}
	for ch := range config.DigitalChannelCount {
		s := NewSurface(g.Digital(ch), fmt.Sprintf("digital%d", ch), fyne.NewSize(400, ChannelHeight))
		d.surfaces = append(d.surfaces, s)
		objs = append(objs, s)
	}
	d.box = container.NewVBox(objs...)
	d.ExtendBaseWidget(d)
	d.sync()
	return d
}

// OnPaint registers fn on every channel surface.
func (d *DigitalChannels) OnPaint(fn func(name string)) {
	for _, s := range d.surfaces {
		s.OnPaint(fn)
	}
}

// CreateRenderer implements fyne.Widget.
func (d *DigitalChannels) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.box)
}

// Refresh updates channel visibility and repaints the visible channels.
func (d *DigitalChannels) Refresh() {
	if d.sync() {
		d.box.Refresh()
	}
	for _, s := range d.surfaces {
		if s.Visible() {
			s.Refresh()
		}
	}
}

// sync shows the enabled channels or the placeholder. It reports whether
// anything changed.
func (d *DigitalChannels) sync() bool {
	hidden := d.group.DigitalHidden()
	enabled := d.group.State().DigitalChannels

	changed := setVisible(d.placeholder, hidden)
	for ch, s := range d.surfaces {
		on := !hidden && ch < len(enabled) && enabled[ch]
		if setVisible(s, on) {
			changed = true
		}
	}
	return changed
}

func setVisible(o fyne.CanvasObject, visible bool) bool {
	if o.Visible() == visible {
		return false
	}
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
	return true
}
