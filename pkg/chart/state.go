package chart

// Window is the visible time range in microseconds. The zero Window is the
// live sentinel: unbounded, following the newest sample.
type Window struct {
	Begin float64
	End   float64
}

// Live is the window that follows the newest sample.
var Live = Window{}

// NewWindow returns a window over [begin, end], swapping the bounds when
// they are given in the wrong order.
func NewWindow(begin, end float64) Window {
	if begin > end {
		begin, end = end, begin
	}
	return Window{Begin: begin, End: end}
}

// IsLive reports whether w is the live sentinel.
func (w Window) IsLive() bool {
	return w.Begin == 0 && w.End == 0
}

// Span returns the window duration.
func (w Window) Span() float64 {
	return w.End - w.Begin
}

// Contains reports whether t lies inside the window.
func (w Window) Contains(t float64) bool {
	return t >= w.Begin && t <= w.End
}

// Cursor is an optional selection independent of the window. Both bounds nil
// means no selection.
type Cursor struct {
	Begin *float64
	End   *float64
}

// NewCursor returns a cursor over [begin, end] in ascending order.
func NewCursor(begin, end float64) Cursor {
	if begin > end {
		begin, end = end, begin
	}
	return Cursor{Begin: &begin, End: &end}
}

// IsSet reports whether the cursor selects a range.
func (c Cursor) IsSet() bool {
	return c.Begin != nil && c.End != nil
}

// Bounds returns the selected range.
func (c Cursor) Bounds() (begin, end float64, ok bool) {
	if !c.IsSet() {
		return 0, 0, false
	}
	return *c.Begin, *c.End, true
}

// ValueRange bounds the analog value axis. A nil Max fits the axis to the
// visible data.
type ValueRange struct {
	Min float64
	Max *float64
}

// TriggerState describes the device trigger as seen by the chart.
type TriggerState struct {
	Level         float64 // µA
	Origin        *int    // Sample index of the last trigger event
	Running       bool
	SingleWaiting bool
	External      bool
}

// Active reports whether the trigger is armed.
func (t TriggerState) Active() bool {
	return t.Running || t.SingleWaiting
}

// State is the single source of truth every surface renders from.
type State struct {
	Window            Window
	Cursor            Cursor
	ValueRange        ValueRange
	Trigger           TriggerState
	SamplingRunning   bool
	RealTimePane      bool
	TimestampsVisible bool
	DigitalChannels   []bool
	LiveDuration      float64 // µs shown while following the newest sample
}

// Live reports whether the chart auto-scrolls with incoming data.
func (s State) Live() bool {
	return s.Window.IsLive() && (s.SamplingRunning || s.Trigger.Active())
}

// Resolve returns the concrete window to display for the recorded extent.
// The live sentinel resolves to the newest LiveDuration of data.
func (s State) Resolve(extent Window) Window {
	if !s.Window.IsLive() {
		return s.Window
	}
	begin := extent.End - s.LiveDuration
	if begin < extent.Begin {
		begin = extent.Begin
	}
	return NewWindow(begin, extent.End)
}

// EnabledChannels returns the indices of the enabled digital channels.
func (s State) EnabledChannels() []int {
	var res []int
	for i, on := range s.DigitalChannels {
		if on {
			res = append(res, i)
		}
	}
	return res
}

// clone copies the slices and pointers of s so the result can be handed to
// subscribers without sharing memory with the group.
func (s State) clone() State {
	c := s
	if s.Cursor.Begin != nil {
		b := *s.Cursor.Begin
		c.Cursor.Begin = &b
	}
	if s.Cursor.End != nil {
		e := *s.Cursor.End
		c.Cursor.End = &e
	}
	if s.ValueRange.Max != nil {
		m := *s.ValueRange.Max
		c.ValueRange.Max = &m
	}
	if s.Trigger.Origin != nil {
		o := *s.Trigger.Origin
		c.Trigger.Origin = &o
	}
	c.DigitalChannels = append([]bool(nil), s.DigitalChannels...)
	return c
}
