package sample

const (
	// DigitalHigh and DigitalLow are the plotted levels of a set and cleared
	// bit inside the fixed [-0.5, 0.5] digital value domain.
	DigitalHigh = 0.4
	DigitalLow  = -0.4
)

// Decimate reduces the analog trace of frames to at most maxPoints samples,
// one per bucket of consecutive frames. A bucket yields the mean of its valid
// values at the timestamp of its first frame, or a gap when it holds no
// valid value, so gaps survive decimation.
// Destination-based: reuses dst if it has sufficient capacity, otherwise allocates new.
func Decimate(dst []Sample, frames []Frame, maxPoints int) []Sample {
	if maxPoints <= 0 || len(frames) == 0 {
		return dst[:0]
	}

	if len(frames) <= maxPoints {
		if cap(dst) >= len(frames) {
			dst = dst[:0]
		} else {
			dst = make([]Sample, 0, len(frames))
		}
		for _, f := range frames {
			dst = append(dst, f.Analog)
		}
		return dst
	}

	if cap(dst) >= maxPoints {
		dst = dst[:0]
	} else {
		dst = make([]Sample, 0, maxPoints)
	}

	for i := range maxPoints {
		lo, hi := bucket(i, len(frames), maxPoints)
		if lo >= hi {
			continue
		}

		var (
			sum float64
			n   int
		)
		for _, f := range frames[lo:hi] {
			if f.Analog.Valid {
				sum += f.Analog.Value
				n++
			}
		}

		ts := frames[lo].Analog.Timestamp
		if n == 0 {
			dst = append(dst, Gap(ts))
			continue
		}
		dst = append(dst, At(ts, sum/float64(n)))
	}

	return dst
}

// DigitalLines reduces channel ch of frames to at most maxPoints step values.
// Main holds the bit at the start of each bucket; Uncertainty holds the
// opposite level when the bit toggled within the bucket and equals Main
// otherwise.
// Destination-based: reuses dst if it has sufficient capacity, otherwise allocates new.
func DigitalLines(dst []DigitalSample, frames []Frame, ch int, maxPoints int) []DigitalSample {
	if maxPoints <= 0 || len(frames) == 0 {
		return dst[:0]
	}

	n := min(len(frames), maxPoints)
	if cap(dst) >= n {
		dst = dst[:0]
	} else {
		dst = make([]DigitalSample, 0, n)
	}

	for i := range n {
		lo, hi := bucket(i, len(frames), n)
		if lo >= hi {
			continue
		}

		first := frames[lo].Bit(ch)
		mixed := false
		for _, f := range frames[lo+1 : hi] {
			if f.Bit(ch) != first {
				mixed = true
				break
			}
		}

		ts := frames[lo].Analog.Timestamp
		main := At(ts, level(first))
		unc := main
		if mixed {
			unc = At(ts, level(!first))
		}
		dst = append(dst, DigitalSample{Timestamp: ts, Main: main, Uncertainty: unc})
	}

	return dst
}

// bucket returns the frame range [lo, hi) covered by bucket i of n.
func bucket(i, total, n int) (int, int) {
	return i * total / n, (i + 1) * total / n
}

func level(bit bool) float64 {
	if bit {
		return DigitalHigh
	}
	return DigitalLow
}
