package chart

import (
	"math"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/itohio/goppk/pkg/config"
	"github.com/itohio/goppk/pkg/sample"
	"github.com/rs/zerolog"
)

// TriggerSink receives committed trigger levels, typically the device.
type TriggerSink interface {
	SetTriggerLevel(levelUA float64) error
}

// WidthSink receives the plot width so it can bound how many points it
// materializes.
type WidthSink interface {
	ReportPlotWidth(width, maxPoints int)
}

// DigitalPlaceholder is shown instead of the digital traces when the window
// is too wide for transitions to be visible.
const DigitalPlaceholder = "Zoom in on the main chart to see the digital channels"

// Group owns the chart state shared by the analog surface and the digital
// surfaces. Intents are applied strictly in dispatch order; a Dispatch
// issued while another one is being applied is queued behind it.
type Group struct {
	cfg        config.ChartConfig
	digitalMax float64
	source     Source

	mu          sync.Mutex
	state       State
	queue       []Intent
	dispatching bool
	subscribers []func(State)
	intentHooks []func(Intent)
	triggerSink TriggerSink
	widthSink   WidthSink

	dirty atomic.Bool

	crosshair *Crosshair
	analog    *Analog
	digital   []*Digital
	nextID    int

	logger zerolog.Logger
}

// NewGroup creates a group reading samples from src. The initial state is
// taken from cfg.
func NewGroup(cfg *config.Config, src Source) *Group {
	if src == nil {
		src = emptySource{}
	}

	g := &Group{
		cfg:        cfg.Chart,
		digitalMax: cfg.Digital.MaxWindowUs,
		source:     src,
		state: State{
			ValueRange: ValueRange{Min: 0},
			Trigger: TriggerState{
				Level:    cfg.Trigger.LevelUA,
				External: cfg.Trigger.External,
			},
			RealTimePane:      true,
			TimestampsVisible: true,
			DigitalChannels:   append([]bool(nil), cfg.Digital.Channels...),
			LiveDuration:      cfg.Chart.LiveDurationUs,
		},
		logger: zerolog.Nop(),
	}
	g.crosshair = &Crosshair{}
	g.analog = newAnalog(g)
	g.digital = make([]*Digital, config.DigitalChannelCount)
	for ch := range g.digital {
		g.digital[ch] = newDigital(g, ch)
	}
	g.dirty.Store(true)

	return g
}

// SetLogger configures the logger.
func (g *Group) SetLogger(l zerolog.Logger) {
	g.logger = l
}

// SetTriggerSink sets the receiver of committed trigger levels.
func (g *Group) SetTriggerSink(s TriggerSink) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.triggerSink = s
}

// SetWidthSink sets the receiver of plot width reports.
func (g *Group) SetWidthSink(s WidthSink) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.widthSink = s
}

// Subscribe registers fn to be called with a copy of the state after every
// change.
func (g *Group) Subscribe(fn func(State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subscribers = append(g.subscribers, fn)
}

// OnIntent registers fn to be called for every applied intent.
func (g *Group) OnIntent(fn func(Intent)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intentHooks = append(g.intentHooks, fn)
}

// State returns a copy of the current state.
func (g *Group) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.clone()
}

// Source returns the sample source.
func (g *Group) Source() Source {
	return g.source
}

// Analog returns the analog surface.
func (g *Group) Analog() *Analog {
	return g.analog
}

// Digital returns the surface of digital channel ch.
func (g *Group) Digital(ch int) *Digital {
	return g.digital[ch]
}

// Crosshair returns the crosshair shared by all surfaces.
func (g *Group) Crosshair() *Crosshair {
	return g.crosshair
}

// Update applies a host command to the state, e.g. sampling started or a
// channel toggled. Window and cursor change through Dispatch only.
func (g *Group) Update(fn func(*State)) {
	g.mu.Lock()
	window, cursor := g.state.Window, g.state.Cursor
	fn(&g.state)
	g.state.Window, g.state.Cursor = window, cursor
	st := g.state.clone()
	subs := slices.Clone(g.subscribers)
	g.mu.Unlock()

	g.notify(subs, st)
}

// GoLive returns the window to following the newest sample.
func (g *Group) GoLive() {
	g.Dispatch(SetWindow{Window: Live}, ClearCursor())
}

// Dispatch applies intents in order.
func (g *Group) Dispatch(intents ...Intent) {
	if len(intents) == 0 {
		return
	}

	g.mu.Lock()
	g.queue = append(g.queue, intents...)
	if g.dispatching {
		g.mu.Unlock()
		return
	}
	g.dispatching = true

	for len(g.queue) > 0 {
		in := g.queue[0]
		g.queue[0] = nil
		g.queue = g.queue[1:]

		changed, effect := g.apply(in)
		st := g.state.clone()
		subs := slices.Clone(g.subscribers)
		hooks := slices.Clone(g.intentHooks)
		g.mu.Unlock()

		if effect != nil {
			effect()
		}
		for _, h := range hooks {
			h(in)
		}
		if changed {
			g.notify(subs, st)
		}

		g.mu.Lock()
	}

	g.queue = g.queue[:0]
	g.dispatching = false
	g.mu.Unlock()
}

// apply mutates the state for one intent and returns whether the state
// changed along with a side effect to run outside the lock.
func (g *Group) apply(in Intent) (bool, func()) {
	switch in := in.(type) {
	case SetWindow:
		g.state.Window = NewWindow(in.Window.Begin, in.Window.End)
		return true, nil

	case SetCursor:
		g.state.Cursor = in.Cursor
		if in.Cursor.IsSet() {
			g.state.Cursor = NewCursor(*in.Cursor.Begin, *in.Cursor.End)
		}
		return true, nil

	case PreviewTriggerLevel:
		g.state.Trigger.Level = in.Level
		return true, nil

	case CommitTriggerLevel:
		g.state.Trigger.Level = in.Level
		sink := g.triggerSink
		if sink == nil {
			return true, nil
		}
		return true, func() {
			if err := sink.SetTriggerLevel(in.Level); err != nil {
				g.logger.Error().Err(err).Float64("level", in.Level).Msg("failed to commit trigger level")
				return
			}
			g.logger.Debug().Float64("level", in.Level).Msg("trigger level committed")
		}

	case ReportPlotWidth:
		sink := g.widthSink
		if sink == nil {
			return false, nil
		}
		return false, func() { sink.ReportPlotWidth(in.Width, in.MaxPoints) }
	}

	g.logger.Warn().Str("kind", in.Kind()).Msg("unknown intent")
	return false, nil
}

func (g *Group) notify(subs []func(State), st State) {
	for _, fn := range subs {
		if fn != nil {
			fn(st)
		}
	}
	g.Invalidate()
}

// Invalidate marks the surfaces for repaint on the next frame.
func (g *Group) Invalidate() {
	g.dirty.Store(true)
}

// TakeDirty reports whether a repaint was requested since the last call and
// clears the request.
func (g *Group) TakeDirty() bool {
	return g.dirty.Swap(false)
}

// DigitalHidden reports whether the visible window is too wide for the
// digital traces.
func (g *Group) DigitalHidden() bool {
	extent, _ := g.source.Extent()
	g.mu.Lock()
	win := g.state.Resolve(extent)
	limit := g.digitalMax
	g.mu.Unlock()
	return limit > 0 && win.Span() > limit
}

// SetDigitalLimit sets the widest window, in µs, that still shows the
// digital traces. Zero never hides them.
func (g *Group) SetDigitalLimit(us float64) {
	g.mu.Lock()
	g.digitalMax = us
	g.mu.Unlock()
	g.Invalidate()
}

func (g *Group) newID() int {
	g.nextID++
	return g.nextID
}

// context builds the surface context for the current state.
func (g *Group) context(s *surface, vmin, vmax float64) *SurfaceContext {
	st := g.State()
	extent, ok := g.source.Extent()
	win := st.Resolve(extent)

	ctx := &SurfaceContext{
		ID:       s.id,
		Kind:     s.kind,
		Channel:  s.channel,
		Geometry: s.geometry,
		Mapper:   NewMapper(s.geometry, win, vmin, vmax),
		State:    st,
		Window:   win,
		Extent:   extent,
		HasData:  ok,
		Step:     math.Inf(1),
		Config:   g.cfg,
		Scene:    &s.scene,
	}

	pw := s.geometry.PlotWidth()
	ctx.Interval = g.source.SampleInterval()
	if pw > 0 && ctx.Interval > 0 {
		ctx.Step = win.Span() / float64(pw) / ctx.Interval
	}
	if st.Trigger.Origin != nil {
		ctx.Origin, ctx.HasOrigin = g.source.TimestampOf(*st.Trigger.Origin)
	}

	return ctx
}

// emptySource is used until a recorder is attached.
type emptySource struct{}

func (emptySource) Extent() (Window, bool)                          { return Window{}, false }
func (emptySource) TimestampOf(int) (float64, bool)                 { return 0, false }
func (emptySource) Analog(Window, int) []sample.Sample              { return nil }
func (emptySource) Digital(Window, int, int) []sample.DigitalSample { return nil }
func (emptySource) SampleInterval() float64                         { return 0 }
