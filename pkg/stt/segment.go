package stt

import "math"

const (
	// rmsThreshold is the root-mean-square energy level (in 16-bit PCM
	// units) below which a chunk is considered silent. The maximum possible
	// value for 16-bit audio is 32767; 300 corresponds to near-silence.
	rmsThreshold = 300.0

	// defaultSilenceMs is the consecutive-silence duration that finalizes
	// the buffered utterance.
	defaultSilenceMs = 500

	// defaultMaxUtteranceMs caps a single utterance; longer speech is
	// force-flushed so a held-down vowel cannot stall recognition forever.
	defaultMaxUtteranceMs = 10_000
)

// Segmenter accumulates PCM chunks into utterances. Speech begins when a
// chunk's RMS energy crosses the threshold; the utterance is finalized after
// enough consecutive silence, or when the buffer hits its duration cap.
//
// Segmenter is not safe for concurrent use; the speech loop owns it.
type Segmenter struct {
	sampleRate     int
	silenceMs      int
	maxUtteranceMs int

	buffer    []int16
	hadSpeech bool
	silence   int // accumulated trailing silence, ms
}

// NewSegmenter creates a segmenter for mono PCM at the given sample rate.
func NewSegmenter(sampleRate int) *Segmenter {
	return &Segmenter{
		sampleRate:     sampleRate,
		silenceMs:      defaultSilenceMs,
		maxUtteranceMs: defaultMaxUtteranceMs,
	}
}

// Feed consumes one chunk and returns a finalized utterance, or nil if the
// utterance is still open. Leading silence is discarded; trailing silence up
// to the threshold is kept so whisper sees the utterance boundary.
func (s *Segmenter) Feed(chunk []int16) []int16 {
	chunkMs := len(chunk) * 1000 / s.sampleRate

	if rms(chunk) < rmsThreshold {
		if !s.hadSpeech {
			return nil
		}
		s.silence += chunkMs
		s.buffer = append(s.buffer, chunk...)
		if s.silence >= s.silenceMs {
			return s.flush()
		}
		return nil
	}

	s.hadSpeech = true
	s.silence = 0
	s.buffer = append(s.buffer, chunk...)
	if len(s.buffer)*1000/s.sampleRate >= s.maxUtteranceMs {
		return s.flush()
	}
	return nil
}

// Flush finalizes and returns whatever utterance is buffered, if any.
// Called on shutdown so trailing speech is not lost.
func (s *Segmenter) Flush() []int16 {
	if !s.hadSpeech {
		s.reset()
		return nil
	}
	return s.flush()
}

func (s *Segmenter) flush() []int16 {
	utterance := s.buffer
	s.reset()
	return utterance
}

func (s *Segmenter) reset() {
	s.buffer = nil
	s.hadSpeech = false
	s.silence = 0
}

// rms returns the root-mean-square energy of a PCM chunk in 16-bit units.
func rms(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		f := float64(v)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// ToFloat32 converts 16-bit PCM samples to float32 normalized to [-1, 1],
// the input format whisper.cpp expects.
func ToFloat32(samples []int16) []float32 {
	out := make([]float32, len(samples))
	for i, v := range samples {
		out[i] = float32(v) / 32768.0
	}
	return out
}
