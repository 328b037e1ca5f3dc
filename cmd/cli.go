// SPDX-License-Identifier: MIT
// Package cmd parses the command line into a runtime configuration. Flags
// override the YAML file and environment layers, so the precedence is
// defaults < file < environment < flags.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"voicefront/internal/config"
	"voicefront/pkg/build"
)

func ParseArgs() (*config.Config, error) {
	buildInfo := build.GetInfo()

	var configPath string

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         "Voice assistant audio front-end",
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	var command string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available audio devices",
		Run: func(cmd *cobra.Command, args []string) {
			command = "list"
		},
	}
	rootCmd.AddCommand(listCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "f", "",
		"Path to a YAML configuration file")

	// Audio device configuration.
	device := flags.IntP("device", "d", config.DefaultDeviceID,
		"Input device ID. Use the 'list' command to see available devices.")
	channels := flags.IntP("channels", "c", config.DefaultChannels,
		"Number of channels to capture (1=mono, 2=stereo)")
	sampleRate := flags.Float64P("sample-rate", "s", config.DefaultSampleRate,
		"Sample rate in Hertz (Hz)")
	framesPerBuffer := flags.IntP("frames-per-buffer", "b", config.DefaultFramesPerBuffer,
		"Frames per buffer (affects latency)")
	lowLatency := flags.BoolP("low-latency", "l", config.DefaultLowLatency,
		"Use the device's low latency mode")

	// Processing configuration.
	gateThreshold := flags.Float64P("gate", "g", config.DefaultGateThreshold,
		"Noise gate threshold, 0=always open, 1=always closed")
	bufferSeconds := flags.Float64P("buffer-seconds", "B", config.DefaultBufferSeconds,
		"Seconds of audio retained in the sample buffer")

	// Transport configuration.
	wsEnabled := flags.BoolP("websocket", "w", false,
		"Publish analysis frames over a websocket feed")
	wsAddress := flags.StringP("ws-address", "a", config.DefaultWSAddress,
		"Listen address for the websocket feed")

	// Debug configuration.
	verbose := flags.BoolP("verbose", "v", false,
		"Show verbose output")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	// File and environment layers first; only flags the caller actually set
	// override them.
	options, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	options.Command = command

	if flags.Changed("device") {
		options.Audio.InputDevice = *device
	}
	if flags.Changed("channels") {
		options.Audio.InputChannels = *channels
	}
	if flags.Changed("sample-rate") {
		options.Audio.SampleRate = *sampleRate
	}
	if flags.Changed("frames-per-buffer") {
		options.Audio.FramesPerBuffer = *framesPerBuffer
	}
	if flags.Changed("low-latency") {
		options.Audio.LowLatency = *lowLatency
	}
	if flags.Changed("gate") {
		options.Audio.GateThreshold = *gateThreshold
	}
	if flags.Changed("buffer-seconds") {
		options.Buffer.Seconds = *bufferSeconds
	}
	if flags.Changed("websocket") {
		options.Transport.WSEnabled = *wsEnabled
	}
	if flags.Changed("ws-address") {
		options.Transport.WSAddress = *wsAddress
	}
	if flags.Changed("verbose") {
		options.Debug = *verbose
		if *verbose {
			options.LogLevel = "debug"
		}
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}
