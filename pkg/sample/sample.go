package sample

import (
	"math"
	"time"

	"github.com/itohio/goppk/pkg/ppk"
	"github.com/rs/zerolog"
)

// Sample is a single point of a trace. A Sample that is not Valid is a gap:
// it has a timestamp but no value and must not be drawn or interpolated.
type Sample struct {
	Timestamp float64 // Microseconds
	Value     float64
	Valid     bool
}

// At returns a valid sample.
func At(timestamp, value float64) Sample {
	return Sample{Timestamp: timestamp, Value: value, Valid: true}
}

// Gap returns a sample with no value.
func Gap(timestamp float64) Sample {
	return Sample{Timestamp: timestamp}
}

// DigitalSample is one step of a digital channel trace. Uncertainty is the
// other edge of the band drawn between it and Main; it equals Main when the
// bit did not change within the step.
type DigitalSample struct {
	Timestamp   float64
	Main        Sample
	Uncertainty Sample
}

// Frame is one converted measurement: the analog current and the digital
// inputs captured at the same instant.
type Frame struct {
	Analog  Sample // Current (µA)
	Bits    uint8
	Trigger bool // This frame fired the trigger
}

// Bit reports the state of digital channel ch.
func (f Frame) Bit(ch int) bool {
	return f.Bits&(1<<uint(ch)) != 0
}

// Converter is a function type that converts RawSample channel to Frame channel.
type Converter func(in <-chan ppk.RawSample) <-chan Frame

// Stage transforms a Frame stream, e.g. averaging.
type Stage func(in <-chan Frame) <-chan Frame

// NewConverter creates a converter function that transforms RawSample to Frame.
func NewConverter(bufSize int, logger zerolog.Logger) Converter {
	if bufSize <= 0 {
		bufSize = 100
	}

	return func(in <-chan ppk.RawSample) <-chan Frame {
		out := make(chan Frame, bufSize)

		go func() {
			defer close(out)

			for raw := range in {
				select {
				case out <- convertSample(raw):
				case <-time.After(time.Second):
					logger.Warn().Float64("timestamp", raw.Timestamp).Msg("converter output channel full, dropping sample")
				}
			}
		}()

		return out
	}
}

// convertSample converts a RawSample to a Frame. Values that are not finite
// become gaps.
func convertSample(raw ppk.RawSample) Frame {
	s := Gap(raw.Timestamp)
	if raw.Valid && !math.IsNaN(raw.Current) && !math.IsInf(raw.Current, 0) {
		s = At(raw.Timestamp, raw.Current)
	}
	return Frame{
		Analog:  s,
		Bits:    raw.Bits,
		Trigger: raw.Trigger,
	}
}
