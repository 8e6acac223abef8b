// Package snapshot paints chart scenes into a PNG image.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/itohio/goppk/pkg/chart"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("nothing to export")

const splineSegments = 12

// Exporter paints scenes stacked top to bottom.
type Exporter struct {
	font  *truetype.Font
	faces map[float64]font.Face
}

// New parses the label font.
func New() (*Exporter, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Exporter{
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// Render paints the scenes into one image. Scenes without items are
// skipped.
func (e *Exporter) Render(scenes ...*chart.Scene) (image.Image, error) {
	var width, height float64
	var drawn []*chart.Scene
	for _, sc := range scenes {
		if sc == nil || len(sc.Items) == 0 || sc.Width <= 0 || sc.Height <= 0 {
			continue
		}
		drawn = append(drawn, sc)
		width = math.Max(width, sc.Width)
		height += sc.Height
	}
	if len(drawn) == 0 {
		return nil, ErrEmpty
	}

	dc := gg.NewContext(int(math.Ceil(width)), int(math.Ceil(height)))
	dc.SetColor(chart.ColorBackground)
	dc.Clear()

	top := 0.0
	for _, sc := range drawn {
		dc.Push()
		dc.Translate(0, top)
		e.paint(dc, sc)
		dc.Pop()
		top += sc.Height
	}
	return dc.Image(), nil
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := gg.NewContextForImage(img).EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func (e *Exporter) paint(dc *gg.Context, sc *chart.Scene) {
	for _, it := range sc.Items {
		switch v := it.(type) {
		case chart.Line:
			dc.SetColor(v.Color)
			dc.SetLineWidth(v.Width)
			dc.DrawLine(v.X1, v.Y1, v.X2, v.Y2)
			dc.Stroke()

		case chart.Polyline:
			pts := v.Flatten(splineSegments)
			if len(pts) < 2 {
				continue
			}
			dc.SetColor(v.Color)
			dc.SetLineWidth(v.Width)
			dc.MoveTo(pts[0].X, pts[0].Y)
			for _, p := range pts[1:] {
				dc.LineTo(p.X, p.Y)
			}
			dc.Stroke()

		case chart.Area:
			if len(v.Points) < 3 {
				continue
			}
			dc.SetColor(v.Fill)
			dc.MoveTo(v.Points[0].X, v.Points[0].Y)
			for _, p := range v.Points[1:] {
				dc.LineTo(p.X, p.Y)
			}
			dc.ClosePath()
			dc.Fill()

		case chart.Box:
			r := v.Rect
			fillStroke(dc, v.Fill, v.Stroke, v.StrokeWidth, func() { dc.DrawRectangle(r.X, r.Y, r.W, r.H) })

		case chart.Marker:
			fillStroke(dc, v.Fill, v.Stroke, v.StrokeWidth, func() { dc.DrawCircle(v.X, v.Y, v.Radius) })

		case chart.Text:
			dc.SetFontFace(e.face(v.Size))
			dc.SetColor(v.Color)
			ax := 0.0
			switch v.Align {
			case chart.AlignCenter:
				ax = 0.5
			case chart.AlignRight:
				ax = 1
			}
			// Anchored at the top edge
			dc.DrawStringAnchored(v.Text, v.X, v.Y, ax, 1)
		}
	}
}

func fillStroke(dc *gg.Context, fill, stroke color.Color, width float64, path func()) {
	if fill != nil {
		path()
		dc.SetColor(fill)
		dc.Fill()
	}
	if stroke != nil && width > 0 {
		path()
		dc.SetColor(stroke)
		dc.SetLineWidth(width)
		dc.Stroke()
	}
}

func (e *Exporter) face(size float64) font.Face {
	if f, ok := e.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(e.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	e.faces[size] = f
	return f
}
