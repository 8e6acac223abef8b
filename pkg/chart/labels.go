package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatDuration formats a time in microseconds as signed milliseconds with
// three decimals, e.g. "-3.000 ms".
func FormatDuration(usecs float64) string {
	sign := ""
	if usecs < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%.3f ms", sign, math.Abs(usecs)/1e3)
}

// FormatTimeLabel formats the tick at ticks[index] relative to origin.
//
// Interior ticks closer than an eighth of the labelled span to either end
// are suppressed and yield nil. Other ticks yield two lines: a signed
// HH:MM:SS line and a zero padded sss.sss sub-second line. Without a tick
// set the time is formatted as milliseconds.
func FormatTimeLabel(t float64, index int, ticks []float64, origin float64) []string {
	usecs := t - origin
	if len(ticks) == 0 {
		return []string{FormatDuration(usecs)}
	}

	if index > 0 && index < len(ticks)-1 {
		first := ticks[0] - origin
		last := ticks[len(ticks)-1] - origin
		span := last - first
		if usecs-first < span/8 || last-usecs < span/8 {
			return nil
		}
	}

	sign := ""
	if usecs < 0 {
		sign = "-"
	}
	ms := math.Abs(usecs) / 1e3
	secs := int64(ms / 1e3)
	h := (secs / 3600) % 24
	m := (secs / 60) % 60
	s := secs % 60

	return []string{
		fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s),
		fmt.Sprintf("%07.3f", math.Mod(ms, 1e3)),
	}
}

// FormatCurrent formats a current given in µA with 4 significant digits,
// switching to mA once the rounded value reaches 1000 µA.
func FormatCurrent(uA float64) string {
	s := significant(uA, 4)
	if r, err := strconv.ParseFloat(s, 64); err == nil && math.Abs(r) >= 1e3 {
		return significant(uA/1e3, 4) + " mA"
	}
	return s + " µA"
}

// FormatValueTick formats a value axis tick. Negative currents are left
// unlabelled.
func FormatValueTick(uA float64) string {
	if uA < 0 {
		return ""
	}
	return FormatCurrent(uA)
}

// significant formats v rounded to n significant digits without trailing
// zeros.
func significant(v float64, n int) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	mag := int(math.Floor(math.Log10(math.Abs(v))))
	decimals := max(n-1-mag, 0)
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
