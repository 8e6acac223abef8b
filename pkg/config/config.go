package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial    SerialConfig   `yaml:"serial"`
	Sampling  SamplingConfig `yaml:"sampling"`
	Chart     ChartConfig    `yaml:"chart"`
	Digital   DigitalConfig  `yaml:"digital"`
	Trigger   TriggerConfig  `yaml:"trigger"`
	Resistors ResistorConfig `yaml:"resistors"`
	Mock      MockConfig     `yaml:"mock"`
	Log       LogConfig      `yaml:"log"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port string `yaml:"port"`
}

// SamplingConfig describes the sample stream produced by the device.
type SamplingConfig struct {
	IntervalUs     float64 `yaml:"interval_us"`     // Time between two samples (µs)
	AverageSamples int     `yaml:"average_samples"` // Number of samples to average (0 = disabled, default)
	BufferSamples  int     `yaml:"buffer_samples"`  // Recorder capacity, oldest samples are dropped beyond it
}

// ChartConfig contains layout and interaction constants of the chart surfaces.
type ChartConfig struct {
	YAxisWidthPx    float64       `yaml:"y_axis_width_px"`
	RightMarginPx   float64       `yaml:"right_margin_px"`
	MaxPlotSamples  int           `yaml:"max_plot_samples"`
	MaxTicks        int           `yaml:"max_ticks"`
	SnapStep        float64       `yaml:"snap_step"`        // Samples per pixel at or below which point markers are shown
	LargePointStep  float64       `yaml:"large_point_step"` // Samples per pixel at or below which markers are enlarged
	ThinLineStep    float64       `yaml:"thin_line_step"`   // Samples per pixel above which the trace is drawn thin
	MinDragPx       float64       `yaml:"min_drag_px"`
	TriggerGrabPx   float64       `yaml:"trigger_grab_px"`
	MinWindowUs     float64       `yaml:"min_window_us"`
	ZoomSensitivity float64       `yaml:"zoom_sensitivity"` // Exponent per wheel unit, s = 2^(-dy*sensitivity)
	LiveDurationUs  float64       `yaml:"live_duration_us"` // Width of the live window
	FrameInterval   time.Duration `yaml:"frame_interval"`
}

// DigitalConfig contains digital channel configuration.
type DigitalConfig struct {
	Channels    []bool  `yaml:"channels"`
	MaxWindowUs float64 `yaml:"max_window_us"` // Wider windows hide digital traces
}

// TriggerConfig contains the initial trigger settings.
type TriggerConfig struct {
	LevelUA  float64 `yaml:"level_ua"`
	WindowMs float64 `yaml:"window_ms"`
	External bool    `yaml:"external"`
}

// ResistorConfig contains the measurement shunt calibration (Ω).
type ResistorConfig struct {
	High float64 `yaml:"high"`
	Mid  float64 `yaml:"mid"`
	Low  float64 `yaml:"low"`
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	BaseCurrent   float64       `yaml:"base_current"`   // Sleep current (µA)
	BurstCurrent  float64       `yaml:"burst_current"`  // Active current (µA)
	NoiseLevel    float64       `yaml:"noise_level"`    // Noise amplitude (µA)
	BurstDuration time.Duration `yaml:"burst_duration"` // Active phase duration
	BurstPeriod   time.Duration `yaml:"burst_period"`   // Time between active phases
	GapEvery      int           `yaml:"gap_every"`      // Emit a missing sample every N samples (0 = never)
	TickInterval  time.Duration `yaml:"tick_interval"`  // Samples are generated in batches on this tick
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig contains Prometheus exporter configuration.
type MetricsConfig struct {
	Address string `yaml:"address"` // Empty disables the exporter
}

// DigitalChannelCount is the number of digital inputs on the device.
const DigitalChannelCount = 8

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
		},
		Sampling: SamplingConfig{
			IntervalUs:     10,
			AverageSamples: 0,
			BufferSamples:  2_000_000,
		},
		Chart: ChartConfig{
			YAxisWidthPx:    64,
			RightMarginPx:   32,
			MaxPlotSamples:  2000,
			MaxTicks:        7,
			SnapStep:        0.16,
			LargePointStep:  0.08,
			ThinLineStep:    2,
			MinDragPx:       4,
			TriggerGrabPx:   6,
			MinWindowUs:     10,
			ZoomSensitivity: 0.01,
			LiveDurationUs:  5_000_000,
			FrameInterval:   16 * time.Millisecond, // ~60 FPS
		},
		Digital: DigitalConfig{
			Channels:    []bool{true, true, true, true, true, true, true, true},
			MaxWindowUs: 2_000_000,
		},
		Trigger: TriggerConfig{
			LevelUA:  1000,
			WindowMs: 450 * 13 / 1e3,
			External: false,
		},
		Resistors: ResistorConfig{
			High: 1.8,
			Mid:  28,
			Low:  500,
		},
		Mock: MockConfig{
			BaseCurrent:   3,
			BurstCurrent:  4500,
			NoiseLevel:    1.5,
			BurstDuration: 20 * time.Millisecond,
			BurstPeriod:   500 * time.Millisecond,
			GapEvery:      0,
			TickInterval:  10 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}

	if c.Sampling.IntervalUs <= 0 {
		c.Sampling.IntervalUs = def.Sampling.IntervalUs
	}
	if c.Sampling.BufferSamples <= 0 {
		c.Sampling.BufferSamples = def.Sampling.BufferSamples
	}

	ensure := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	ensure(&c.Chart.YAxisWidthPx, def.Chart.YAxisWidthPx)
	ensure(&c.Chart.RightMarginPx, def.Chart.RightMarginPx)
	ensure(&c.Chart.SnapStep, def.Chart.SnapStep)
	ensure(&c.Chart.LargePointStep, def.Chart.LargePointStep)
	ensure(&c.Chart.ThinLineStep, def.Chart.ThinLineStep)
	ensure(&c.Chart.MinDragPx, def.Chart.MinDragPx)
	ensure(&c.Chart.TriggerGrabPx, def.Chart.TriggerGrabPx)
	ensure(&c.Chart.MinWindowUs, def.Chart.MinWindowUs)
	ensure(&c.Chart.ZoomSensitivity, def.Chart.ZoomSensitivity)
	ensure(&c.Chart.LiveDurationUs, def.Chart.LiveDurationUs)
	if c.Chart.MaxPlotSamples <= 0 {
		c.Chart.MaxPlotSamples = def.Chart.MaxPlotSamples
	}
	if c.Chart.MaxTicks < 2 {
		c.Chart.MaxTicks = def.Chart.MaxTicks
	}
	if c.Chart.FrameInterval <= 0 {
		c.Chart.FrameInterval = def.Chart.FrameInterval
	}

	// Missing channels default to enabled, extra ones are dropped
	if len(c.Digital.Channels) != DigitalChannelCount {
		channels := make([]bool, DigitalChannelCount)
		for i := range channels {
			channels[i] = true
			if i < len(c.Digital.Channels) {
				channels[i] = c.Digital.Channels[i]
			}
		}
		c.Digital.Channels = channels
	}
	ensure(&c.Digital.MaxWindowUs, def.Digital.MaxWindowUs)

	ensure(&c.Trigger.LevelUA, def.Trigger.LevelUA)
	ensure(&c.Trigger.WindowMs, def.Trigger.WindowMs)

	ensure(&c.Resistors.High, def.Resistors.High)
	ensure(&c.Resistors.Mid, def.Resistors.Mid)
	ensure(&c.Resistors.Low, def.Resistors.Low)

	if c.Mock.TickInterval == 0 {
		c.Mock.TickInterval = def.Mock.TickInterval
	}
	if c.Mock.BurstPeriod == 0 {
		c.Mock.BurstPeriod = def.Mock.BurstPeriod
	}
	if c.Mock.BurstDuration == 0 {
		c.Mock.BurstDuration = def.Mock.BurstDuration
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
