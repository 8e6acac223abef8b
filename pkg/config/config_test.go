package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
	assert.Equal(t, float64(10), cfg.Sampling.IntervalUs)
	assert.Equal(t, float64(64), cfg.Chart.YAxisWidthPx)
	assert.Equal(t, float64(32), cfg.Chart.RightMarginPx)
	assert.Equal(t, 2000, cfg.Chart.MaxPlotSamples)
	assert.Equal(t, 0.16, cfg.Chart.SnapStep)
	assert.Equal(t, 16*time.Millisecond, cfg.Chart.FrameInterval)
	assert.Len(t, cfg.Digital.Channels, DigitalChannelCount)
	assert.InDelta(t, 5.85, cfg.Trigger.WindowMs, 1e-9)
	assert.Equal(t, float64(500), cfg.Resistors.Low)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Metrics.Address)
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
serial:
  port: "/dev/ttyACM0"

sampling:
  interval_us: 100
  average_samples: 4

chart:
  y_axis_width_px: 80
  min_drag_px: 3
  frame_interval: 20ms

digital:
  channels: [true, false, true, false, true, false, true, false]
  max_window_us: 1000000

trigger:
  level_ua: 250
  window_ms: 10
  external: true

resistors:
  high: 2.1
  mid: 30
  low: 510

mock:
  burst_period: 1s
  gap_every: 100

log:
  level: debug

metrics:
  address: ":9100"
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, float64(100), cfg.Sampling.IntervalUs)
	assert.Equal(t, 4, cfg.Sampling.AverageSamples)
	assert.Equal(t, float64(80), cfg.Chart.YAxisWidthPx)
	assert.Equal(t, float64(3), cfg.Chart.MinDragPx)
	assert.Equal(t, 20*time.Millisecond, cfg.Chart.FrameInterval)
	assert.Equal(t, []bool{true, false, true, false, true, false, true, false}, cfg.Digital.Channels)
	assert.Equal(t, float64(1_000_000), cfg.Digital.MaxWindowUs)
	assert.Equal(t, float64(250), cfg.Trigger.LevelUA)
	assert.True(t, cfg.Trigger.External)
	assert.Equal(t, 2.1, cfg.Resistors.High)
	assert.Equal(t, time.Second, cfg.Mock.BurstPeriod)
	assert.Equal(t, 100, cfg.Mock.GapEvery)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
serial:
  port: "/dev/ttyACM0"
digital:
  channels: [false, false]
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Should use defaults for missing fields
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, float64(10), cfg.Sampling.IntervalUs)
	assert.Equal(t, 0.16, cfg.Chart.SnapStep)
	assert.Equal(t, float64(1000), cfg.Trigger.LevelUA)

	// Short channel list is padded with enabled channels
	require.Len(t, cfg.Digital.Channels, DigitalChannelCount)
	assert.False(t, cfg.Digital.Channels[0])
	assert.False(t, cfg.Digital.Channels[1])
	assert.True(t, cfg.Digital.Channels[2])
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Serial.Port = "/dev/ttyUSB0"
	cfg.Resistors.Mid = 31.5
	cfg.Digital.Channels[3] = false

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.Save(path))

	// Load it back and verify
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", loaded.Serial.Port)
	assert.Equal(t, 31.5, loaded.Resistors.Mid)
	assert.False(t, loaded.Digital.Channels[3])
}
