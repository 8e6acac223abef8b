package main

import (
	"context"
	"flag"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/goppk/pkg/chart"
	"github.com/itohio/goppk/pkg/config"
	"github.com/itohio/goppk/pkg/metrics"
	"github.com/itohio/goppk/pkg/recorder"
	"github.com/itohio/goppk/pkg/scope"
	"github.com/itohio/goppk/pkg/snapshot"
	"github.com/rs/zerolog"
)

func main() {
	var (
		portFlag           = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag         = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag           = flag.Bool("mock", false, "Use mocked device instead of serial port")
		metricsFlag        = flag.String("metrics", "", "Serve Prometheus metrics on this address (e.g., :9100)")
		verboseFlag        = flag.Bool("v", false, "Debug logging")
		averageSamplesFlag = flag.Int("average-samples", -1, "Number of samples to average (0 = disabled, overrides config)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger := newLogger(os.Stderr, "info", false)
		logger.Fatal().Err(err).Str("path", *configFlag).Msg("failed to load configuration")
	}
	logger := newLogger(os.Stderr, cfg.Log.Level, *verboseFlag)

	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *averageSamplesFlag >= 0 {
		cfg.Sampling.AverageSamples = *averageSamplesFlag
	}
	if *metricsFlag != "" {
		cfg.Metrics.Address = *metricsFlag
	}

	application := app.NewWithID("com.itohio.goppk")
	window := application.NewWindow("Power Profiler")
	window.Resize(fyne.NewSize(1280, 860))
	window.CenterOnScreen()

	state := newAppState(cfg, *configFlag, *mockFlag, window, logger)

	ampere := scope.NewAmpereChart(state.group)
	digital := scope.NewDigitalChannels(state.group)
	ampere.OnPaint(state.metrics.FramePainted)
	digital.OnPaint(state.metrics.FramePainted)

	status := newStatusLine(state)
	trigger := newTriggerPanel(state)
	resistors := newResistorPanel(state)
	state.panels = []connectable{trigger, resistors}
	state.setConnected(false)

	ctx, cancel := context.WithCancel(context.Background())
	scheduler := scope.NewFrameScheduler(state.group, cfg.Chart.FrameInterval, ampere.Refresh, digital.Refresh, status.update)
	scheduler.SetLogger(logger.With().Str("component", "frames").Logger())
	go scheduler.Run(ctx)

	if addr := cfg.Metrics.Address; addr != "" {
		go func() {
			if err := state.metrics.Serve(ctx, addr, logger); err != nil {
				logger.Error().Err(err).Msg("metrics exporter stopped")
			}
		}()
	}

	charts := container.NewVSplit(ampere, container.NewVScroll(digital))
	charts.SetOffset(0.6)

	content := container.NewBorder(
		createToolbar(state),
		status.label,
		nil,
		container.NewVBox(trigger.content, widget.NewSeparator(), resistors.content),
		charts,
	)

	window.SetContent(content)
	window.SetOnClosed(func() {
		cancel()
		state.disconnect()
	})
	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configPath string
	useMock    bool
	window     fyne.Window
	logger     zerolog.Logger

	recorder *recorder.Buffer
	group    *chart.Group
	metrics  *metrics.Metrics

	mu      sync.RWMutex
	session *session // Current measurement chain (nil if not connected)
	panels  []connectable

	connectBtn *widget.Button
}

// connectable is a control that is only usable while a device is connected.
type connectable interface {
	setConnected(connected bool)
}

func newAppState(cfg *config.Config, configPath string, useMock bool, window fyne.Window, logger zerolog.Logger) *appState {
	rec := recorder.New(cfg)
	rec.SetLogger(logger.With().Str("component", "recorder").Logger())

	group := chart.NewGroup(cfg, rec)
	group.SetLogger(logger.With().Str("component", "chart").Logger())
	group.SetWidthSink(rec)

	state := &appState{
		cfg:        cfg,
		configPath: configPath,
		useMock:    useMock,
		window:     window,
		logger:     logger,
		recorder:   rec,
		group:      group,
		metrics:    metrics.NewMetrics(),
	}
	group.SetTriggerSink(state)
	group.OnIntent(state.observeIntent)

	rec.OnUpdate(func(recorder.Update) { group.Invalidate() })
	rec.OnTrigger(state.onTrigger)

	state.registerMetrics()
	return state
}

func (s *appState) observeIntent(in chart.Intent) {
	s.metrics.IntentApplied(in.Kind())
	if r, ok := in.(chart.ReportPlotWidth); ok {
		s.metrics.SetPlotWidth(r.Width)
	}
}

func (s *appState) registerMetrics() {
	for _, err := range []error{
		s.metrics.CountFunc("samples_recorded_total", "Samples appended to the recorder.", s.recorder.Recorded),
		s.metrics.CountFunc("device_samples_dropped_total", "Samples dropped because the pipeline was full.", s.dropped),
		s.metrics.GaugeFunc("buffer_samples", "Samples held by the recorder.", func() float64 { return float64(s.recorder.Count()) }),
	} {
		if err != nil {
			s.logger.Warn().Err(err).Msg("metric not registered")
		}
	}
}

// saveConfig writes the configuration and reports failures to the user.
func (s *appState) saveConfig() {
	if err := s.cfg.Save(s.configPath); err != nil {
		dialog.ShowError(err, s.window)
	}
}

// createToolbar creates the application toolbar.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("Connect", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	liveBtn := widget.NewButtonWithIcon("Live", theme.MediaFastForwardIcon(), func() {
		state.group.GoLive()
	})

	clearBtn := widget.NewButtonWithIcon("", theme.ContentClearIcon(), func() {
		state.clear()
	})

	exportBtn := widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), func() {
		exportPNG(state)
	})

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	return container.NewBorder(
		nil,
		nil,
		container.NewHBox(connectBtn, liveBtn, clearBtn),
		container.NewHBox(exportBtn, settingsBtn),
		nil,
	)
}

// clear drops the recording and returns to the live window.
func (s *appState) clear() {
	s.recorder.Reset()
	s.group.Update(func(st *chart.State) { st.Trigger.Origin = nil })
	s.group.GoLive()
}

// exportPNG saves the current analog and digital scenes as an image.
func exportPNG(state *appState) {
	exporter, err := snapshot.New()
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}

	scenes := []*chart.Scene{state.group.Analog().Render()}
	if !state.group.DigitalHidden() {
		for _, ch := range state.group.State().EnabledChannels() {
			scenes = append(scenes, state.group.Digital(ch).Render())
		}
	}
	img, err := exporter.Render(scenes...)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}

	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()

		if err := snapshot.EncodePNG(w, img); err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		state.logger.Info().Str("uri", w.URI().String()).Msg("chart exported")
	}, state.window)
	save.SetFileName("chart.png")
	save.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	save.Show()
}
