package timing

// NarrationPaddingSeconds is added after each narration clip so speech
// does not end exactly on the cut to the next slide.
const NarrationPaddingSeconds = 0.5

// Resolve computes per-slide display durations. With narration, each slide
// shows for the narration length plus padding, but never less than
// defaultSeconds. A narration list that does not cover every slide is
// ignored wholesale; partial narration is not a valid state.
func Resolve(slideCount int, narrationSeconds []float64, defaultSeconds float64) []float64 {
	durations := make([]float64, slideCount)
	useNarration := slideCount > 0 && len(narrationSeconds) == slideCount

	for i := range durations {
		durations[i] = defaultSeconds
		if useNarration {
			if d := narrationSeconds[i] + NarrationPaddingSeconds; d > defaultSeconds {
				durations[i] = d
			}
		}
	}
	return durations
}

// Total sums a duration list.
func Total(durations []float64) float64 {
	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	return sum
}
