// cmd/run.go
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"konamid/internal/config"
	"konamid/internal/gamepad"
	"konamid/internal/keyboard"
	"konamid/internal/konami"
	"konamid/internal/playback"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Listen for the sequence and play the reward sound",
	RunE:  runListener,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runListener(cmd *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := newLogger(settings.Debug)
	slog.SetDefault(logger)

	player, err := playback.NewWavPlayer(playback.Config{
		SoundPath:   settings.Sound,
		Volume:      settings.Volume,
		DeviceIndex: settings.PlaybackDevice,
	})
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}

	gate, err := playback.NewGate(player, settings.Cooldown(), logger)
	if err != nil {
		return fmt.Errorf("playback gate: %w", err)
	}

	detector := konami.NewDetector(gate, logger)

	poller, err := gamepad.NewPoller(settings.PollInterval(), detector.HandleButton, logger)
	if err != nil {
		return fmt.Errorf("controller poller: %w", err)
	}

	// Either input source alone is enough to run; only both missing is fatal.
	sources := 0

	manager := gamepad.NewManager(poller, logger)
	if err := manager.Start(); err != nil {
		logger.Warn("controller input unavailable", "error", err)
	} else {
		sources++
		defer manager.Close()
	}

	reader, err := keyboard.Open(settings.KeyboardDevices, detector.HandleKey, logger)
	if err != nil {
		logger.Warn("keyboard input unavailable", "error", err)
	} else {
		sources++
		defer reader.Close()
	}

	if sources == 0 {
		return errors.New("no input sources available")
	}

	logger.Info("listening for the sequence",
		"cooldown", settings.Cooldown(),
		"poll_interval", settings.PollInterval(),
		"sound", settings.Sound)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	return nil
}
