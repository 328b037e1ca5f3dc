// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voicefront/cmd"
	"voicefront/internal/analysis"
	"voicefront/internal/audio"
	"voicefront/internal/config"
	applog "voicefront/internal/log"
	"voicefront/internal/session"
	"voicefront/internal/transport"
	"voicefront/pkg/build"
)

// main runs in three phases:
//
//  1. Startup (cold path): build info, PortAudio, argument parsing and
//     one-off commands.
//  2. Capture (hot path): the input stream feeds the session buffer and the
//     analysis processors from the audio callback.
//  3. Shutdown (cold path): stop the stream and release resources on
//     SIGINT/SIGTERM.
func main() {
	build.Initialize()

	if err := audio.Initialize(); err != nil {
		applog.Fatalf("%v", err)
	}
	defer audio.Terminate()

	cfg, err := cmd.ParseArgs()
	if err != nil {
		applog.Fatalf("%v", err)
	}

	if level, ok := applog.ParseLevel(cfg.LogLevel); ok {
		applog.SetLevel(level)
	}

	// One-off commands run without the engine.
	if cfg.Command != "" {
		if err := executeCommand(cfg.Command); err != nil {
			applog.Fatalf("%v", err)
		}
		return
	}

	if err := run(cfg); err != nil {
		applog.Fatalf("%v", err)
	}
}

func run(cfg *config.Config) error {
	sess, err := session.New(
		int(cfg.Audio.SampleRate),
		cfg.Audio.InputChannels,
		cfg.Buffer.Capacity(cfg.Audio.SampleRate),
	)
	if err != nil {
		return err
	}

	var tr transport.Transport
	if cfg.Transport.WSEnabled {
		tr = transport.NewWebSocketTransport(cfg.Transport.WSAddress)
	} else {
		tr = transport.NewLoggingTransport()
	}

	win, _ := analysis.ParseWindow(cfg.Audio.FFTWindow)
	spectrum, err := analysis.NewSpectrumProcessor(
		cfg.Audio.FramesPerBuffer,
		cfg.Audio.SampleRate,
		win,
		tr,
	)
	if err != nil {
		tr.Close()
		return err
	}
	defer spectrum.Close()

	bands := analysis.NewBandEnergyProcessor(tr, spectrum, nil)

	engine, err := audio.NewEngine(cfg, sess, spectrum, bands)
	if err != nil {
		return err
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// First callback fires right after this call; hot path starts here.
	if err := engine.StartInputStream(); err != nil {
		return err
	}

	fmt.Printf("%s capturing. Press Ctrl+C to stop.\n", build.GetInfo().Name)
	<-done

	if err := engine.StopInputStream(); err != nil {
		applog.Errorf("stopping input stream: %v", err)
	}
	return nil
}

func executeCommand(command string) error {
	switch command {
	case "list":
		return audio.ListDevices()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}
