package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Rayan-Ghosh/GazeSync/internal/log"
	"github.com/Rayan-Ghosh/GazeSync/pkg/audioio"
	"github.com/Rayan-Ghosh/GazeSync/pkg/stt"
)

// whisperSampleRate is the sample rate whisper.cpp expects; chunks captured
// at any other rate are resampled before segmentation.
const whisperSampleRate = 16000

// EventSink receives listener events for the dashboard log. The gaze status
// sink satisfies this.
type EventSink interface {
	AddEvent(kind, message string)
}

// Stats counts what the listener has heard and acted on.
type Stats struct {
	Utterances  int64 `json:"utterances"`
	Recognized  int64 `json:"recognized"`
	Unmatched   int64 `json:"unmatched"`
	EngineFails int64 `json:"engine_fails"`
}

// Listener is the speech-command loop: it captures microphone audio,
// segments it into utterances, transcribes each one, and dispatches any
// recognized command. It runs independently of the frame loop and shares
// only the control state with it.
type Listener struct {
	source     audioio.Source
	engine     stt.Engine
	matcher    *Matcher
	dispatcher *Dispatcher
	sink       EventSink

	mu    sync.Mutex
	stats Stats
}

// NewListener wires the speech-command loop together.
func NewListener(source audioio.Source, engine stt.Engine, matcher *Matcher, dispatcher *Dispatcher) *Listener {
	return &Listener{
		source:     source,
		engine:     engine,
		matcher:    matcher,
		dispatcher: dispatcher,
	}
}

// SetEventSink attaches a presentation sink (the web dashboard).
func (l *Listener) SetEventSink(sink EventSink) {
	l.sink = sink
}

// Stats returns a copy of the listener counters.
func (l *Listener) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Run executes the speech loop until the context is cancelled or the audio
// source closes. Recognition failures are logged and skipped; a dead
// microphone ends the loop with an error.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.source.Start(ctx); err != nil {
		return fmt.Errorf("start audio capture: %w", err)
	}
	defer l.source.Stop()

	log.Info("voice listener started",
		"backend", l.source.Name(),
		"sample_rate", l.source.Config().SampleRate,
	)

	segmenter := stt.NewSegmenter(whisperSampleRate)

	for {
		chunk, err := l.source.Read(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return err
			}
			return fmt.Errorf("read audio: %w", err)
		}

		samples := chunk.Samples
		if chunk.Channels > 1 {
			samples = audioio.StereoToMono(samples)
		}
		if chunk.SampleRate != whisperSampleRate {
			samples = audioio.Resample(samples, chunk.SampleRate, whisperSampleRate)
		}

		utterance := segmenter.Feed(samples)
		if utterance == nil {
			continue
		}
		l.handleUtterance(utterance, time.Now())
	}
}

// handleUtterance transcribes one utterance and dispatches the result.
func (l *Listener) handleUtterance(utterance []int16, now time.Time) {
	l.count(func(s *Stats) { s.Utterances++ })

	text, err := l.engine.Transcribe(stt.ToFloat32(utterance))
	if err != nil {
		l.count(func(s *Stats) { s.EngineFails++ })
		log.Warn("transcription failed", "error", err)
		return
	}
	if text == "" {
		return
	}

	tr := stt.NewTranscript(text, now)
	log.Debug("heard", "id", tr.ID, "text", tr.Text)

	cmd := l.matcher.Match(tr.Text)
	if cmd == CmdNone {
		l.count(func(s *Stats) { s.Unmatched++ })
		return
	}

	applied := l.dispatcher.Dispatch(cmd, now)
	l.count(func(s *Stats) { s.Recognized++ })

	log.Info("voice command", "command", cmd.String(), "text", tr.Text, "applied", applied)
	if l.sink != nil && applied {
		l.sink.AddEvent("voice", cmd.String())
	}
}

func (l *Listener) count(fn func(*Stats)) {
	l.mu.Lock()
	fn(&l.stats)
	l.mu.Unlock()
}
