// Package stt turns captured microphone audio into text. It segments the
// PCM stream into utterances with an energy-based silence detector and runs
// each completed utterance through the whisper.cpp CGO bindings. whisper.cpp
// is a batch engine, so there are no low-latency partials; each utterance
// yields exactly one final transcript.
package stt

import (
	"time"

	"github.com/google/uuid"
)

// Transcript is one finalized utterance.
type Transcript struct {
	// ID uniquely identifies the utterance for the event log.
	ID string `json:"id"`

	// Text is the recognized text, lower-cased and trimmed.
	Text string `json:"text"`

	// At is when the utterance was finalized.
	At time.Time `json:"at"`
}

// NewTranscript stamps a recognized text with an ID and timestamp.
func NewTranscript(text string, at time.Time) Transcript {
	return Transcript{ID: uuid.NewString(), Text: text, At: at}
}

// Engine runs batch speech recognition on a complete utterance.
type Engine interface {
	// Transcribe recognizes one utterance of mono float32 samples in the
	// range [-1, 1] at the engine's expected sample rate.
	Transcribe(samples []float32) (string, error)

	// Close releases the underlying model.
	Close() error
}
