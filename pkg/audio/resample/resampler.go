// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Resamples whole decoded buffers using linear interpolation
package resample

import "github.com/voiceturn/voiceturn-go/pkg/audio"

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Resample converts interleaved input at inputRate into output at
// outputRate. Returns the number of samples written to output.
func (r *Resampler) Resample(input []int32, output []int32) int {
	inputFrames := len(input) / r.channels
	outputFrames := len(output) / r.channels
	if inputFrames == 0 {
		return 0
	}

	outIdx := 0
	for ; outIdx < outputFrames; outIdx++ {
		pos := float64(outIdx) * r.ratio
		idx := int(pos)
		if idx >= inputFrames {
			break
		}

		// The last input frame is held rather than interpolated past the end
		next := idx + 1
		if next >= inputFrames {
			next = idx
		}
		frac := pos - float64(idx)

		for ch := 0; ch < r.channels; ch++ {
			s1 := float64(input[idx*r.channels+ch])
			s2 := float64(input[next*r.channels+ch])
			output[outIdx*r.channels+ch] = int32(s1*(1.0-frac) + s2*frac)
		}
	}

	return outIdx * r.channels
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}

// Buffer returns buf at the target rate. The input is returned as-is
// when the rates already match.
func Buffer(buf *audio.Buffer, rate int) *audio.Buffer {
	if buf.SampleRate == rate || buf.Channels == 0 {
		return buf
	}

	r := New(buf.SampleRate, rate, buf.Channels)
	out := make([]int32, r.OutputSamplesNeeded(len(buf.Samples)))
	n := r.Resample(buf.Samples, out)

	return &audio.Buffer{
		SampleRate: rate,
		Channels:   buf.Channels,
		Samples:    out[:n],
	}
}
