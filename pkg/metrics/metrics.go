// Package metrics exposes chart and acquisition counters in the Prometheus
// text format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const namespace = "goppk"

// Metrics owns a private registry so several instances can coexist.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	intents   *prometheus.CounterVec
	frames    *prometheus.CounterVec
	plotWidth prometheus.Gauge
}

// NewMetrics creates the collectors and registers the Go runtime metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Chart intents applied, by kind.",
		}, []string{"kind"}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_painted_total",
			Help:      "Chart frames painted, by surface.",
		}, []string{"surface"}),
		plotWidth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "plot_width_pixels",
			Help:      "Last reported width of the main plot area.",
		}),
	}
	reg.MustRegister(
		m.intents,
		m.frames,
		m.plotWidth,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IntentApplied counts one applied intent.
func (m *Metrics) IntentApplied(kind string) {
	m.intents.WithLabelValues(kind).Inc()
}

// FramePainted counts one painted frame of a surface.
func (m *Metrics) FramePainted(surface string) {
	m.frames.WithLabelValues(surface).Inc()
}

// SetPlotWidth records the plot width reported by the main chart.
func (m *Metrics) SetPlotWidth(width int) {
	m.plotWidth.Set(float64(width))
}

// CountFunc exposes a monotonic counter read from fn at scrape time, e.g.
// the number of recorded samples.
func (m *Metrics) CountFunc(name, help string, fn func() uint64) error {
	c := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, func() float64 { return float64(fn()) })
	if err := m.registry.Register(c); err != nil {
		return fmt.Errorf("failed to register %s: %w", name, err)
	}
	return nil
}

// GaugeFunc exposes a value read from fn at scrape time.
func (m *Metrics) GaugeFunc(name, help string, fn func() float64) error {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn)
	if err := m.registry.Register(g); err != nil {
		return fmt.Errorf("failed to register %s: %w", name, err)
	}
	return nil
}

// Handler returns the scrape handler.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// WritePrometheus writes the current metrics to w.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Serve serves /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.handler)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", addr).Msg("serving metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
