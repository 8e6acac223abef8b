package ppk

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/itohio/goppk/pkg/config"
)

// Mock simulates a power profiler for testing and development.
type Mock struct {
	cfg        *config.MockConfig
	intervalUs float64

	samples   chan RawSample
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	// Trigger settings
	triggerLevel    float64
	triggerWindowMs float64
	triggerArmed    bool
	triggerSingle   bool
	externalTrigger bool
	resistors       [3]float64

	// Simulation state
	index    uint64
	previous float64
}

// NewMock creates a new mocked device instance producing one sample every
// intervalUs microseconds of simulated time.
func NewMock(cfg *config.MockConfig, intervalUs float64) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			BaseCurrent:   3,
			BurstCurrent:  4500,
			NoiseLevel:    1.5,
			BurstDuration: 20 * time.Millisecond,
			BurstPeriod:   500 * time.Millisecond,
			TickInterval:  10 * time.Millisecond,
		}
	}
	if intervalUs <= 0 {
		intervalUs = 10
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:        cfg,
		intervalUs: intervalUs,
		samples:    make(chan RawSample, 4*batchSize(cfg.TickInterval, intervalUs)),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// batchSize returns the number of samples generated on each tick.
func batchSize(tick time.Duration, intervalUs float64) int {
	n := int(float64(tick.Microseconds()) / intervalUs)
	if n < 1 {
		n = 1
	}
	return n
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.index = 0
	m.previous = m.cfg.BaseCurrent

	go m.generateSamples()

	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false

	return nil
}

// Samples returns the channel for reading samples.
func (m *Mock) Samples() <-chan RawSample {
	return m.samples
}

// SetTriggerLevel sets the simulated trigger threshold (µA).
func (m *Mock) SetTriggerLevel(levelUA float64) error {
	return m.update(func() { m.triggerLevel = levelUA })
}

// SetTriggerWindow stores the trigger window length (ms).
func (m *Mock) SetTriggerWindow(windowMs float64) error {
	return m.update(func() { m.triggerWindowMs = windowMs })
}

// StartTrigger arms the simulated trigger.
func (m *Mock) StartTrigger(single bool) error {
	return m.update(func() {
		m.triggerArmed = true
		m.triggerSingle = single
	})
}

// StopTrigger disarms the simulated trigger.
func (m *Mock) StopTrigger() error {
	return m.update(func() {
		m.triggerArmed = false
		m.triggerSingle = false
	})
}

// SetExternalTrigger selects the external trigger source. The mock never
// sees an external edge, so no trigger fires while it is enabled.
func (m *Mock) SetExternalTrigger(enabled bool) error {
	return m.update(func() { m.externalTrigger = enabled })
}

// UpdateResistors stores the calibrated shunt values.
func (m *Mock) UpdateResistors(high, mid, low float64) error {
	return m.update(func() { m.resistors = [3]float64{high, mid, low} })
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

func (m *Mock) update(fn func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}
	fn()
	return nil
}

// generateSamples generates simulated samples in batches, one batch per tick.
func (m *Mock) generateSamples() {
	defer close(m.samples)

	ticker := time.NewTicker(m.cfg.TickInterval)
	defer ticker.Stop()

	n := batchSize(m.cfg.TickInterval, m.intervalUs)
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			for range n {
				sample := m.generateSample()
				select {
				case m.samples <- sample:
				case <-m.ctx.Done():
					return
				default:
					// Channel full, skip
				}
			}
		}
	}
}

// generateSample generates the next simulated sample.
func (m *Mock) generateSample() RawSample {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := float64(m.index) * m.intervalUs
	m.index++

	period := float64(m.cfg.BurstPeriod.Microseconds())
	burst := float64(m.cfg.BurstDuration.Microseconds())
	phase := math.Mod(t, period)
	active := phase < burst

	current := m.cfg.BaseCurrent
	if active {
		current = m.cfg.BurstCurrent
	}
	current += (math.Sin(t*0.0013) + math.Cos(t*0.00071)) * m.cfg.NoiseLevel * 0.5

	s := RawSample{
		Timestamp: t,
		Current:   current,
		Valid:     true,
		Bits:      mockBits(t, active),
	}

	if m.cfg.GapEvery > 0 && m.index%uint64(m.cfg.GapEvery) == 0 {
		s.Valid = false
		s.Current = 0
	}

	if s.Valid && m.triggerArmed && !m.externalTrigger &&
		m.previous < m.triggerLevel && current >= m.triggerLevel {
		s.Trigger = true
		if m.triggerSingle {
			m.triggerArmed = false
			m.triggerSingle = false
		}
	}
	if s.Valid {
		m.previous = current
	}

	return s
}

// mockBits derives digital inputs from the simulated time: bit 0 follows the
// active phase, the other bits are square waves of increasing period.
func mockBits(t float64, active bool) uint8 {
	var bits uint8
	if active {
		bits |= 1
	}
	for i := 1; i < 8; i++ {
		half := 50.0 * float64(uint(1)<<uint(i))
		if int(t/half)%2 == 1 {
			bits |= 1 << uint(i)
		}
	}
	return bits
}
