package audioio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
)

// ExecSource captures audio by running a recorder binary (arecord on Linux,
// sox rec on macOS) and reading raw S16_LE PCM from its stdout. This avoids
// CGO audio bindings entirely; the recorder process lives for the duration
// of the capture.
type ExecSource struct {
	cfg     Config
	backend Backend
	logger  *slog.Logger

	mu       sync.Mutex
	running  bool
	closed   bool
	cmd      *exec.Cmd
	stdout   io.ReadCloser
	streamCh chan AudioChunk
	stopCh   chan struct{}

	// Stats
	chunksRead  atomic.Int64
	samplesRead atomic.Int64
	overruns    atomic.Int64
}

// newExecSource creates a subprocess-backed audio source. The recorder binary
// is resolved at Start, not here, so a missing binary surfaces as a Start error.
func newExecSource(cfg Config, backend Backend, logger *slog.Logger) (*ExecSource, error) {
	s := &ExecSource{
		cfg:      cfg,
		backend:  backend,
		logger:   logger,
		streamCh: make(chan AudioChunk, 10),
		stopCh:   make(chan struct{}),
	}

	logger.Info("exec audio source created",
		"backend", backend,
		"device", cfg.Device,
		"sample_rate", cfg.SampleRate,
		"channels", cfg.Channels,
	)

	return s, nil
}

// command builds the recorder invocation emitting raw signed 16-bit
// little-endian PCM on stdout.
func (s *ExecSource) command() *exec.Cmd {
	rate := strconv.Itoa(s.cfg.SampleRate)
	channels := strconv.Itoa(s.cfg.Channels)

	switch s.backend {
	case BackendSox:
		// sox reads the default CoreAudio input with -d.
		return exec.Command("sox", "-q", "-d",
			"-t", "raw", "-b", "16", "-e", "signed-integer", "-L",
			"-r", rate, "-c", channels, "-")
	default:
		args := []string{"-q", "-t", "raw", "-f", "S16_LE",
			"-r", rate, "-c", channels}
		if s.cfg.Device != "" {
			args = append(args, "-D", s.cfg.Device)
		}
		return exec.Command("arecord", args...)
	}
}

// Start launches the recorder process and begins reading chunks.
func (s *ExecSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return io.ErrClosedPipe
	}
	if s.running {
		return nil
	}

	cmd := s.command()
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("recorder stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start recorder %q: %w", cmd.Path, err)
	}

	s.cmd = cmd
	s.stdout = stdout
	s.running = true
	s.stopCh = make(chan struct{})
	s.streamCh = make(chan AudioChunk, 10)

	go s.captureLoop(ctx, stdout)

	s.logger.Info("audio capture started",
		"backend", s.backend,
		"pid", cmd.Process.Pid,
	)

	return nil
}

// captureLoop reads fixed-size PCM buffers from the recorder's stdout and
// converts them to chunks. It ends when the pipe closes or capture stops.
func (s *ExecSource) captureLoop(ctx context.Context, r io.Reader) {
	buf := make([]byte, s.cfg.BufferBytes())

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return
		case <-s.stopCh:
			return
		default:
		}

		if _, err := io.ReadFull(r, buf); err != nil {
			// Pipe closed: the recorder exited or Stop killed it.
			select {
			case <-s.stopCh:
			default:
				s.logger.Warn("recorder pipe closed", "error", err)
				s.Stop()
			}
			return
		}

		var chunk AudioChunk
		chunk.FromBytes(buf, s.cfg.SampleRate, s.cfg.Channels)

		select {
		case s.streamCh <- chunk:
			s.chunksRead.Add(1)
			s.samplesRead.Add(int64(len(chunk.Samples)))
		default:
			s.overruns.Add(1)
			s.logger.Debug("exec source: buffer full, dropping chunk")
		}
	}
}

// Stop kills the recorder process and closes the stream channel.
// It is safe to call Stop multiple times.
func (s *ExecSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	close(s.stopCh)

	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
		_ = s.cmd.Wait()
	}
	s.cmd = nil
	s.stdout = nil
	close(s.streamCh)

	s.logger.Info("audio capture stopped", "backend", s.backend)

	return nil
}

// Read reads the next audio chunk, blocking until one is available.
func (s *ExecSource) Read(ctx context.Context) (AudioChunk, error) {
	select {
	case <-ctx.Done():
		return AudioChunk{}, ctx.Err()
	case chunk, ok := <-s.streamCh:
		if !ok {
			return AudioChunk{}, io.EOF
		}
		return chunk, nil
	}
}

// Stream returns the audio chunk channel.
func (s *ExecSource) Stream() <-chan AudioChunk {
	return s.streamCh
}

// Config returns the audio configuration.
func (s *ExecSource) Config() Config {
	return s.cfg
}

// Name returns the backend name.
func (s *ExecSource) Name() string {
	return string(s.backend)
}

// Close stops capture and releases resources.
func (s *ExecSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.Stop()
}

// Stats returns source statistics.
func (s *ExecSource) Stats() SourceStats {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	return SourceStats{
		ChunksRead:  s.chunksRead.Load(),
		SamplesRead: s.samplesRead.Load(),
		Overruns:    s.overruns.Load(),
		Running:     running,
		Backend:     string(s.backend),
	}
}

var _ SourceWithStats = (*ExecSource)(nil)
