package sample

// NewAveragingStage creates a stage that averages each block of windowSize
// consecutive frames into one. This reduces noise and the effective sample
// rate by the same factor.
//
// Gaps are excluded from the mean; a block with no valid value becomes a gap.
// The block keeps the most recent timestamp and digital bits, and carries a
// trigger if any of its frames did.
func NewAveragingStage(windowSize int, bufSize int) Stage {
	if windowSize <= 0 {
		windowSize = 1 // No averaging if invalid
	}
	if bufSize <= 0 {
		bufSize = 100
	}

	return func(in <-chan Frame) <-chan Frame {
		out := make(chan Frame, bufSize)

		go func() {
			defer close(out)

			buffer := make([]Frame, 0, windowSize)
			for f := range in {
				buffer = append(buffer, f)
				if len(buffer) < windowSize {
					continue
				}
				out <- averageFrames(buffer)
				buffer = buffer[:0]
			}

			// Input closed, output the partial block
			if len(buffer) > 0 {
				out <- averageFrames(buffer)
			}
		}()

		return out
	}
}

// averageFrames averages a slice of frames.
func averageFrames(frames []Frame) Frame {
	if len(frames) == 0 {
		return Frame{}
	}

	last := frames[len(frames)-1]
	var (
		sum     float64
		n       int
		trigger bool
	)
	for _, f := range frames {
		if f.Analog.Valid {
			sum += f.Analog.Value
			n++
		}
		trigger = trigger || f.Trigger
	}

	avg := Frame{
		Analog:  Gap(last.Analog.Timestamp),
		Bits:    last.Bits,
		Trigger: trigger,
	}
	if n > 0 {
		avg.Analog = At(last.Analog.Timestamp, sum/float64(n))
	}
	return avg
}
