package scope

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/itohio/goppk/pkg/chart"
	"github.com/itohio/goppk/pkg/config"
	"github.com/itohio/goppk/pkg/sample"
	"github.com/stretchr/testify/assert"
)

type extentSource struct {
	end float64
}

func (s extentSource) Extent() (chart.Window, bool) {
	return chart.NewWindow(0, s.end), true
}

func (extentSource) TimestampOf(int) (float64, bool)                       { return 0, false }
func (extentSource) Analog(chart.Window, int) []sample.Sample              { return nil }
func (extentSource) Digital(chart.Window, int, int) []sample.DigitalSample { return nil }
func (extentSource) SampleInterval() float64                               { return 10 }

func TestDigitalChannels_Visibility(t *testing.T) {
	test.NewTempApp(t)
	cfg := config.Default()
	cfg.Digital.Channels[3] = false
	g := chart.NewGroup(cfg, extentSource{end: 10_000_000})

	d := NewDigitalChannels(g)
	test.WidgetRenderer(d)

	// The live window spans more than the digital limit
	assert.True(t, g.DigitalHidden())
	assert.True(t, d.placeholder.Visible())
	for _, s := range d.surfaces {
		assert.False(t, s.Visible())
	}

	g.Dispatch(chart.SetWindow{Window: chart.NewWindow(0, 1000)})
	d.Refresh()

	assert.False(t, d.placeholder.Visible())
	for ch, s := range d.surfaces {
		assert.Equal(t, ch != 3, s.Visible(), "channel %d", ch)
	}
}

func TestDigitalChannels_Placeholder(t *testing.T) {
	test.NewTempApp(t)
	g := chart.NewGroup(config.Default(), nil)

	d := NewDigitalChannels(g)
	assert.Equal(t, chart.DigitalPlaceholder, d.placeholder.Text)
	assert.Len(t, d.surfaces, config.DigitalChannelCount)
}
