package chart

import "math"

// LinearTicks returns tick positions for [lo, hi]: both bounds plus at most
// maxTicks-2 interior ticks on multiples of a 1-2-5 spacing.
func LinearTicks(lo, hi float64, maxTicks int) []float64 {
	if !(hi > lo) {
		return []float64{lo}
	}
	if maxTicks < 2 {
		maxTicks = 2
	}

	sp := niceCeil((hi - lo) / float64(maxTicks-1))
	for interiorCount(lo, hi, sp) > maxTicks-2 {
		sp = nextNice(sp)
	}

	ticks := make([]float64, 0, maxTicks)
	ticks = append(ticks, lo)
	eps := sp * 1e-6
	for k := math.Ceil(lo / sp); ; k++ {
		v := k * sp
		if v >= hi-eps {
			break
		}
		if v <= lo+eps {
			continue
		}
		ticks = append(ticks, v)
	}
	return append(ticks, hi)
}

// NiceMax extends dataMax to the next tick multiple above lo so an auto-fit
// axis ends on a round value.
func NiceMax(lo, dataMax float64, maxTicks int) float64 {
	if !(dataMax > lo) {
		return lo + 1
	}
	if maxTicks < 2 {
		maxTicks = 2
	}
	sp := niceCeil((dataMax - lo) / float64(maxTicks-1))
	return math.Ceil(dataMax/sp) * sp
}

func interiorCount(lo, hi, sp float64) int {
	eps := sp * 1e-6
	first := math.Ceil((lo + eps) / sp)
	last := math.Floor((hi - eps) / sp)
	if last < first {
		return 0
	}
	return int(last-first) + 1
}

// niceCeil returns the smallest 1, 2 or 5 times a power of ten >= x.
func niceCeil(x float64) float64 {
	if x <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 1
	}
	exp := math.Floor(math.Log10(x))
	base := math.Pow(10, exp)
	f := x / base
	switch {
	case f <= 1:
		return base
	case f <= 2:
		return 2 * base
	case f <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

func nextNice(sp float64) float64 {
	return niceCeil(sp * 1.0001)
}
