package ppk

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the baud rate of the profiler's CDC interface.
	DefaultBaudRate = 921600
	// DefaultBufferSize is the default size for the samples channel buffer.
	DefaultBufferSize = 4096
)

// RawSample represents a single measurement reported by the device.
type RawSample struct {
	Timestamp float64 // Microseconds since sampling start
	Current   float64 // Current (µA), meaningful only when Valid
	Valid     bool    // False when the device reported no value (out of range, not settled)
	Bits      uint8   // Digital inputs, bit i is channel i
	Trigger   bool    // Set on the sample that fired the trigger
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial represents a connection to the profiler over a serial port.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      io.ReadWriteCloser
	samples   chan RawSample
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
	dropped   atomic.Uint64

	logger zerolog.Logger
}

// New creates a new Serial device with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		samples:  make(chan RawSample, bufSize),
		ctx:      ctx,
		cancel:   cancel,
		logger:   zerolog.Nop(),
	}
}

// SetLogger configures the logger for connection and protocol events.
func (d *Serial) SetLogger(l zerolog.Logger) {
	d.logger = l
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect connects to the serial port and starts reading samples.
func (d *Serial) Connect() error {
	port, err := serial.Open(d.port, &serial.Mode{BaudRate: d.baudRate})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}
	if err := d.attach(port); err != nil {
		port.Close()
		return err
	}
	d.logger.Info().Str("port", d.port).Int("baud", d.baudRate).Msg("connected")
	return nil
}

// attach starts reading from an already opened connection.
func (d *Serial) attach(conn io.ReadWriteCloser) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	d.conn = conn
	d.connected = true

	go d.readSamples(conn)

	return nil
}

// Close closes the connection. The samples channel is closed once the
// reader goroutine has exited.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	d.cancel()

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			d.logger.Warn().Err(err).Msg("error closing serial port")
		}
		d.conn = nil
	}

	d.connected = false

	return nil
}

// Samples returns the channel for reading samples.
func (d *Serial) Samples() <-chan RawSample {
	return d.samples
}

// Dropped returns the number of samples dropped because the channel was full.
func (d *Serial) Dropped() uint64 {
	return d.dropped.Load()
}

// SetTriggerLevel sets the trigger threshold in µA.
func (d *Serial) SetTriggerLevel(levelUA float64) error {
	return d.send(fmt.Sprintf("TL %.3f", levelUA))
}

// SetTriggerWindow sets the length of the captured trigger window in ms.
func (d *Serial) SetTriggerWindow(windowMs float64) error {
	return d.send(fmt.Sprintf("TW %.3f", windowMs))
}

// StartTrigger arms the trigger, either continuously or for a single capture.
func (d *Serial) StartTrigger(single bool) error {
	if single {
		return d.send("TO")
	}
	return d.send("TS")
}

// StopTrigger disarms the trigger.
func (d *Serial) StopTrigger() error {
	return d.send("TX")
}

// SetExternalTrigger switches the trigger source to the external input.
func (d *Serial) SetExternalTrigger(enabled bool) error {
	if enabled {
		return d.send("TE 1")
	}
	return d.send("TE 0")
}

// UpdateResistors sends the user calibrated shunt resistor values (Ω).
func (d *Serial) UpdateResistors(high, mid, low float64) error {
	return d.send(fmt.Sprintf("RS %.3f %.3f %.3f", high, mid, low))
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// send writes a single newline terminated command.
func (d *Serial) send(cmd string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	if _, err := io.WriteString(d.conn, cmd+"\n"); err != nil {
		return fmt.Errorf("failed to send command %q: %w", cmd, err)
	}
	d.logger.Debug().Str("cmd", cmd).Msg("command sent")

	return nil
}

// readSamples reads lines from the connection and parses them into RawSample.
func (d *Serial) readSamples(conn io.Reader) {
	defer close(d.samples)

	last := math.Inf(-1)
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sample, err := parseLine(line)
		if err != nil {
			d.logger.Debug().Err(err).Str("line", line).Msg("failed to parse line")
			continue
		}
		// Samples are stored in timestamp order
		if sample.Timestamp < last {
			d.logger.Debug().Float64("timestamp", sample.Timestamp).Float64("last", last).Msg("timestamp went backwards, dropping sample")
			continue
		}
		last = sample.Timestamp

		// Send sample to channel (non-blocking)
		select {
		case d.samples <- sample:
		case <-d.ctx.Done():
			return
		default:
			d.dropped.Add(1)
		}
	}

	if err := scanner.Err(); err != nil && d.ctx.Err() == nil {
		d.logger.Error().Err(err).Msg("error reading from serial port")
	}
}

// parseLine parses a line from the device into a RawSample.
// Format: timestamp_us,current_uA,bits_hex[,T]
// An empty current field marks a missing value.
// Example: 1234567,812.5,a5
func parseLine(line string) (RawSample, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return RawSample{}, fmt.Errorf("invalid line format: expected 3 or 4 comma-separated values, got %d", len(parts))
	}

	timestamp, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return RawSample{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	if timestamp < 0 || math.IsNaN(timestamp) || math.IsInf(timestamp, 0) {
		return RawSample{}, fmt.Errorf("invalid timestamp: %v", timestamp)
	}

	var s RawSample
	s.Timestamp = timestamp

	if parts[1] != "" {
		current, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return RawSample{}, fmt.Errorf("invalid current: %w", err)
		}
		s.Current = current
		s.Valid = true
	}

	bits, err := strconv.ParseUint(parts[2], 16, 8)
	if err != nil {
		return RawSample{}, fmt.Errorf("invalid digital bits: %w", err)
	}
	s.Bits = uint8(bits)

	if len(parts) == 4 {
		if parts[3] != "T" {
			return RawSample{}, fmt.Errorf("invalid trigger marker %q", parts[3])
		}
		s.Trigger = true
	}

	return s, nil
}
