// This file contains the whisper.cpp-backed Engine. The whisper.cpp static
// library (libwhisper.a) and headers (whisper.h) must be available at link
// time via LIBRARY_PATH and C_INCLUDE_PATH environment variables.

package stt

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// WhisperEngine implements Engine using the whisper.cpp CGO bindings. The
// model is loaded once at startup; each Transcribe call creates a fresh
// inference context because contexts are not reusable across calls.
type WhisperEngine struct {
	mu       sync.Mutex
	model    whisperlib.Model
	language string
}

var _ Engine = (*WhisperEngine)(nil)

// NewWhisperEngine loads the whisper model from the given ggml file path.
// The caller must call Close when the engine is no longer needed.
func NewWhisperEngine(modelPath, language string) (*WhisperEngine, error) {
	if modelPath == "" {
		return nil, errors.New("stt: model path must not be empty")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("stt: load model %q: %w", modelPath, err)
	}
	if language == "" {
		language = "en"
	}
	return &WhisperEngine{model: model, language: language}, nil
}

// Transcribe runs batch inference on one utterance and returns the
// concatenated segment text, lower-cased. The mutex serializes inference;
// the speech loop is the only caller in practice.
func (e *WhisperEngine) Transcribe(samples []float32) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	wctx, err := e.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("stt: create context: %w", err)
	}
	if err := wctx.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("stt: set language %q: %w", e.language, err)
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("stt: process audio: %w", err)
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("stt: read segment: %w", err)
		}
		text := strings.TrimSpace(segment.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.ToLower(strings.Join(parts, " ")), nil
}

// Close releases the whisper model.
func (e *WhisperEngine) Close() error {
	if e.model != nil {
		return e.model.Close()
	}
	return nil
}
