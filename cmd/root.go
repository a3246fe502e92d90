// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"konamid/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "konamid",
	Short: "Konami code listener for keyboard and gamepad",
	Long: `A small daemon that watches keyboard and game-controller input for the
classic cheat sequence (up, up, down, down, left, right, left, right, B, A)
and plays a sound when someone enters it.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().StringP("sound", "s", "", "WAV file played on a match")
	rootCmd.PersistentFlags().Float64P("volume", "v", 0.7, "playback volume (0.0-1.0)")
	rootCmd.PersistentFlags().IntP("cooldown", "c", 10, "seconds to suppress re-triggering after a match")
	rootCmd.PersistentFlags().IntP("poll-interval", "p", 50, "controller polling period in milliseconds")
	rootCmd.PersistentFlags().IntP("playback-device", "d", -1, "playback device index (-1 for default)")
	rootCmd.PersistentFlags().StringSliceP("keyboard", "k", nil, "evdev keyboard device nodes (empty for autodetect)")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug logging")

	// Bind flags to viper
	viper.BindPFlag("sound", rootCmd.PersistentFlags().Lookup("sound"))
	viper.BindPFlag("volume", rootCmd.PersistentFlags().Lookup("volume"))
	viper.BindPFlag("cooldown_seconds", rootCmd.PersistentFlags().Lookup("cooldown"))
	viper.BindPFlag("poll_interval_ms", rootCmd.PersistentFlags().Lookup("poll-interval"))
	viper.BindPFlag("playback_device", rootCmd.PersistentFlags().Lookup("playback-device"))
	viper.BindPFlag("keyboard_devices", rootCmd.PersistentFlags().Lookup("keyboard"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}
