package main

import (
	"strconv"
	"testing"

	"github.com/itohio/goppk/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		text    string
		unit    string
		want    float64
		wantErr bool
	}{
		{"1", unitMicro, 1, false},
		{"250.5", unitMicro, 250.5, false},
		{"1000", unitMicro, 1000, false},
		{"2.5", unitMilli, 2500, false},
		{"0.5", unitMicro, 0, true},
		{"1001", unitMilli, 0, true},
		{"abc", unitMicro, 0, true},
		{"", unitMicro, 0, true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.text, tt.unit)
		if tt.wantErr {
			assert.Error(t, err, "level %q", tt.text)
			continue
		}
		require.NoError(t, err, "level %q", tt.text)
		assert.InDelta(t, tt.want, got, 1e-9)
	}
}

func TestDisplayLevel(t *testing.T) {
	tests := []struct {
		uA       float64
		wantVal  float64
		wantUnit string
	}{
		{1, 1, unitMicro},
		{999.99999, 1000, unitMicro},
		{1000, 1000, unitMicro},
		{1500, 1.5, unitMilli},
		{123456, 123.456, unitMilli},
	}
	for _, tt := range tests {
		v, unit := displayLevel(tt.uA)
		assert.Equal(t, tt.wantUnit, unit, "level %v", tt.uA)
		assert.InDelta(t, tt.wantVal, v, 1e-9, "level %v", tt.uA)
	}
}

func TestDisplayLevelRoundTrip(t *testing.T) {
	for _, uA := range []float64{1, 42, 1000, 4500, 999000} {
		v, unit := displayLevel(uA)
		text := strconv.FormatFloat(v, 'f', -1, 64)
		got, err := parseLevel(text, unit)
		require.NoError(t, err)
		assert.InDelta(t, uA, got, 1e-6)
	}
}

func TestClampWindow(t *testing.T) {
	assert.InDelta(t, 5.85, clampWindow(0), 1e-9)
	assert.InDelta(t, 10, clampWindow(10), 1e-9)
	assert.InDelta(t, 52, clampWindow(100), 1e-9)
}

func TestClampResistors(t *testing.T) {
	got := clampResistors(config.ResistorConfig{High: 0.5, Mid: 30, Low: 1000})
	assert.Equal(t, config.ResistorConfig{High: 1, Mid: 30, Low: 550}, got)

	def := config.Default().Resistors
	assert.Equal(t, def, clampResistors(def))
}

func TestResistorRangeLabel(t *testing.T) {
	assert.Equal(t, "High 1.80 Ω", highRange.label(1.8))
	assert.Equal(t, "Low 500.00 Ω", lowRange.label(500))
}
