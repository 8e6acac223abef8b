package chart

// Axis is an affine map between a domain interval and a pixel interval.
// An Inverted axis grows towards smaller pixels, as the value axis does on
// screen.
type Axis struct {
	DomainMin   float64
	DomainMax   float64
	PixelOffset float64
	PixelExtent float64
	Inverted    bool
}

// ToPixel maps a domain value to a pixel. A degenerate domain maps every
// value to the middle of the pixel extent.
func (a Axis) ToPixel(v float64) float64 {
	span := a.DomainMax - a.DomainMin
	if span == 0 {
		return a.PixelOffset + a.PixelExtent/2
	}
	f := (v - a.DomainMin) / span
	if a.Inverted {
		f = 1 - f
	}
	return a.PixelOffset + f*a.PixelExtent
}

// FromPixel is the inverse of ToPixel. A degenerate domain or pixel extent
// yields DomainMin.
func (a Axis) FromPixel(p float64) float64 {
	span := a.DomainMax - a.DomainMin
	if span == 0 || a.PixelExtent == 0 {
		return a.DomainMin
	}
	f := (p - a.PixelOffset) / a.PixelExtent
	if a.Inverted {
		f = 1 - f
	}
	return a.DomainMin + f*span
}

// Clamp limits v to the domain.
func (a Axis) Clamp(v float64) float64 {
	lo, hi := a.DomainMin, a.DomainMax
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(v, lo), hi)
}

// Mapper converts between domain and pixel coordinates of one surface.
type Mapper struct {
	Time  Axis
	Value Axis
}

// NewMapper builds the mapper of a surface showing window w and the value
// range [vmin, vmax] inside the plot area of g.
func NewMapper(g Geometry, w Window, vmin, vmax float64) Mapper {
	plot := g.Plot()
	return Mapper{
		Time: Axis{
			DomainMin:   w.Begin,
			DomainMax:   w.End,
			PixelOffset: plot.X,
			PixelExtent: plot.W,
		},
		Value: Axis{
			DomainMin:   vmin,
			DomainMax:   vmax,
			PixelOffset: plot.Y,
			PixelExtent: plot.H,
			Inverted:    true,
		},
	}
}

func (m Mapper) TimeToPixel(t float64) float64  { return m.Time.ToPixel(t) }
func (m Mapper) PixelToTime(x float64) float64  { return m.Time.FromPixel(x) }
func (m Mapper) ValueToPixel(v float64) float64 { return m.Value.ToPixel(v) }
func (m Mapper) PixelToValue(y float64) float64 { return m.Value.FromPixel(y) }

// Rect is an axis aligned pixel rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Geometry is the pixel layout of a surface. The plot area excludes the
// value axis labels on the left, the right margin and the time labels below.
type Geometry struct {
	Width        float64
	Height       float64
	AxisWidth    float64 // Left, reserved for value labels
	RightMargin  float64
	BottomMargin float64 // Reserved for time labels
	TopMargin    float64
}

// Plot returns the plot area.
func (g Geometry) Plot() Rect {
	return Rect{
		X: g.AxisWidth,
		Y: g.TopMargin,
		W: max(g.Width-g.AxisWidth-g.RightMargin, 0),
		H: max(g.Height-g.TopMargin-g.BottomMargin, 0),
	}
}

// PlotWidth returns the usable plotting width in whole pixels.
func (g Geometry) PlotWidth() int {
	return int(g.Plot().W)
}
