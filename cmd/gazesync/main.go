// gazesync is a hands-free page controller: head movement scrolls, voice
// commands start/stop scrolling, recalibrate, zoom, and (in voice-only mode)
// scroll directly.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Rayan-Ghosh/GazeSync/internal/config"
	"github.com/Rayan-Ghosh/GazeSync/internal/log"
	"github.com/Rayan-Ghosh/GazeSync/pkg/audioio"
	"github.com/Rayan-Ghosh/GazeSync/pkg/control"
	"github.com/Rayan-Ghosh/GazeSync/pkg/gaze"
	"github.com/Rayan-Ghosh/GazeSync/pkg/input"
	"github.com/Rayan-Ghosh/GazeSync/pkg/landmark"
	"github.com/Rayan-Ghosh/GazeSync/pkg/stt"
	"github.com/Rayan-Ghosh/GazeSync/pkg/voice"
	"github.com/Rayan-Ghosh/GazeSync/pkg/web"
)

func main() {
	configPath := flag.String("config", "gazesync.yaml", "Path to YAML config file")
	modeFlag := flag.String("mode", "", "Control mode: voice-only or voice-gaze (prompts when empty)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Debug {
		log.Init("debug")
	} else {
		log.Init("info")
	}

	mode, err := selectMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, mode); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("gazesync exited", "error", err)
		os.Exit(1)
	}
	log.Info("goodbye")
}

// selectMode resolves the control mode from the flag, or interactively when
// the flag is empty.
func selectMode(flagValue string) (voice.Mode, error) {
	switch flagValue {
	case "voice-only", "1":
		return voice.ModeVoiceOnly, nil
	case "voice-gaze", "voice+gaze", "2":
		return voice.ModeVoiceGaze, nil
	case "":
	default:
		return 0, fmt.Errorf("unknown mode %q", flagValue)
	}

	fmt.Println("Select control mode:")
	fmt.Println("  1) voice-only   (speech commands drive everything)")
	fmt.Println("  2) voice + gaze (head movement scrolls, speech controls)")
	fmt.Print("> ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("read mode selection: %w", err)
	}
	switch strings.TrimSpace(line) {
	case "1":
		return voice.ModeVoiceOnly, nil
	case "2", "":
		return voice.ModeVoiceGaze, nil
	default:
		return 0, fmt.Errorf("unknown selection %q", strings.TrimSpace(line))
	}
}

// run composes the loops for the selected mode and blocks until the context
// is cancelled or a loop fails fatally.
func run(ctx context.Context, cfg config.Config, mode voice.Mode) error {
	log.Info("starting gazesync", "mode", mode.String())

	state := control.New()
	sim := input.NewRobotgo()

	gazeCfg := gaze.Config{
		InitialHold:  cfg.InitialHold,
		RecalHold:    cfg.RecalHold,
		DeadZone:     cfg.DeadZone,
		Sustain:      cfg.Sustain,
		RepeatDelay:  cfg.RepeatDelay,
		SleepTimeout: cfg.SleepTimeout,
	}

	// The speech stack runs in every mode.
	engine, err := stt.NewWhisperEngine(cfg.WhisperModel, "en")
	if err != nil {
		return err
	}
	defer engine.Close()

	audioCfg := audioio.DefaultConfig()
	audioCfg.SampleRate = cfg.SampleRate
	audioCfg.Device = cfg.AudioDevice
	source, err := audioio.NewSource(audioCfg, log.L())
	if err != nil {
		return err
	}
	defer source.Close()

	// The voice dispatcher and the gaze loop share one scroll path: in
	// voice+gaze mode that is the engine's debouncer, in voice-only mode a
	// standalone one carrying the voice one-shots.
	var gazeEngine *gaze.Engine
	var debouncer *gaze.Debouncer
	if mode == voice.ModeVoiceGaze {
		camera, err := landmark.OpenCamera(cfg.CameraDevice, landmark.DefaultDetectorConfig(cfg.YuNetModel))
		if err != nil {
			return err
		}
		defer camera.Close()
		gazeEngine = gaze.NewEngine(gazeCfg, camera, state, sim)
		debouncer = gazeEngine.Debouncer()
	} else {
		debouncer = gaze.NewDebouncer(gazeCfg, state, sim)
	}

	dispatcher := voice.NewDispatcher(mode, state, sim, debouncer)
	listener := voice.NewListener(source, engine, voice.NewMatcher(cfg.FuzzyMatch), dispatcher)

	var dashboard *web.Server
	if cfg.WebEnabled {
		dashboard = web.NewServer(cfg.WebPort, mode.String())
		if gazeEngine != nil {
			gazeEngine.SetStatusSink(dashboard)
		}
		listener.SetEventSink(dashboard)
	}

	errCh := make(chan error, 3)

	go func() { errCh <- listener.Run(ctx) }()
	if gazeEngine != nil {
		go func() { errCh <- gazeEngine.Run(ctx) }()
	}
	if dashboard != nil {
		go func() { errCh <- dashboard.Run(ctx) }()
	}

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
