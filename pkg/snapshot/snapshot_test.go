package snapshot

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/itohio/goppk/pkg/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func scene(w, h float64, items ...chart.Item) *chart.Scene {
	sc := &chart.Scene{}
	sc.Reset(w, h)
	sc.Add(items...)
	return sc
}

func rgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func TestRender_StacksScenes(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	analog := scene(200, 100, chart.Box{Rect: chart.Rect{X: 10, Y: 10, W: 20, H: 20}, Fill: red})
	hidden := scene(200, 30)
	digital := scene(150, 40, chart.Area{
		Points: []chart.Point{{X: 10, Y: 5}, {X: 50, Y: 5}, {X: 50, Y: 35}, {X: 10, Y: 35}},
		Fill:   red,
	})

	img, err := e.Render(analog, hidden, digital)
	require.NoError(t, err)

	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 140, img.Bounds().Dy(), "Empty scenes are skipped")

	assert.Equal(t, red, rgba(img.At(20, 20)))
	assert.Equal(t, rgba(chart.ColorBackground), rgba(img.At(100, 50)))
	assert.Equal(t, red, rgba(img.At(30, 120)), "Second scene starts below the first")
}

func TestRender_Empty(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	_, err = e.Render()
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = e.Render(scene(100, 100), nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRender_AllItems(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	sc := scene(300, 100,
		chart.Line{X1: 0, Y1: 50, X2: 300, Y2: 50, Width: 3, Color: red},
		chart.Polyline{Points: []chart.Point{{X: 0, Y: 90}, {X: 100, Y: 80}, {X: 200, Y: 90}}, Width: 1.5, Tension: 0.2, Color: chart.ColorTrace},
		chart.Marker{X: 250, Y: 20, Radius: 4, Fill: chart.ColorBackground, Stroke: chart.ColorTrace, StrokeWidth: 1.5},
		chart.Text{X: 290, Y: 5, Text: "1.5 mA", Size: 11, Align: chart.AlignRight, Color: chart.ColorLabel},
	)

	img, err := e.Render(sc)
	require.NoError(t, err)
	assert.Equal(t, red, rgba(img.At(150, 50)))
	assert.Len(t, e.faces, 1)
}

func TestEncodePNG(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	img, err := e.Render(scene(64, 32, chart.Box{Rect: chart.Rect{W: 64, H: 32}, Fill: red}))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, img))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
	assert.Equal(t, 32, decoded.Bounds().Dy())
	assert.Equal(t, red, rgba(decoded.At(32, 16)))
}
