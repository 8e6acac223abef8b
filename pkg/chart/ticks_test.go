package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearTicks(t *testing.T) {
	tests := []struct {
		name     string
		lo, hi   float64
		maxTicks int
		want     []float64
	}{
		{
			name:     "round range",
			lo:       0,
			hi:       80000,
			maxTicks: 7,
			want:     []float64{0, 20000, 40000, 60000, 80000},
		},
		{
			name:     "bounds kept off grid",
			lo:       1234,
			hi:       5678,
			maxTicks: 7,
			want:     []float64{1234, 2000, 3000, 4000, 5000, 5678},
		},
		{
			name:     "degenerate",
			lo:       5,
			hi:       5,
			maxTicks: 7,
			want:     []float64{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearTicks(tt.lo, tt.hi, tt.maxTicks)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestLinearTicks_RespectsMax(t *testing.T) {
	for _, span := range []float64{1, 7, 13, 99, 1001, 123456, 9.87e7} {
		got := LinearTicks(0, span, 7)
		assert.LessOrEqual(t, len(got), 7, "span %v", span)
		assert.GreaterOrEqual(t, len(got), 2, "span %v", span)
	}
}

func TestNiceMax(t *testing.T) {
	assert.Equal(t, float64(5000), NiceMax(0, 4503, 7))
	assert.Equal(t, float64(2000), NiceMax(0, 1999, 7))
	assert.Equal(t, float64(1), NiceMax(0, 0, 7))
	assert.Equal(t, float64(11), NiceMax(10, 5, 7))
}
