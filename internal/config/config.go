// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	AppName       = "konamid"
	ConfigType    = "yaml"
	DefaultConfig = `# konamid configuration

# Reward sound
sound: ""               # WAV file played when the sequence is entered (empty disables playback)
volume: 0.7             # Playback volume (0.0-1.0)
playback_device: -1     # Playback device index (-1 for default, see 'konamid devices')

# Detection
cooldown_seconds: 10    # Suppression window after a successful match
poll_interval_ms: 50    # Controller polling period

# Input devices
keyboard_devices: []    # evdev nodes to watch (empty = autodetect keyboards)

# Output
debug: false            # Enable debug logging
`
)

// Settings holds all application configuration
type Settings struct {
	// Reward sound
	Sound          string  `mapstructure:"sound"`
	Volume         float64 `mapstructure:"volume"`
	PlaybackDevice int     `mapstructure:"playback_device"`

	// Detection
	CooldownSeconds int `mapstructure:"cooldown_seconds"`
	PollIntervalMS  int `mapstructure:"poll_interval_ms"`

	// Input devices
	KeyboardDevices []string `mapstructure:"keyboard_devices"`

	// Output
	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/konamid/
func Init() error {
	// Set defaults
	viper.SetDefault("sound", "")
	viper.SetDefault("volume", 0.7)
	viper.SetDefault("playback_device", -1)
	viper.SetDefault("cooldown_seconds", 10)
	viper.SetDefault("poll_interval_ms", 50)
	viper.SetDefault("keyboard_devices", []string{})
	viper.SetDefault("debug", false)

	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	if s.Volume < 0 || s.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume must be between 0.0 and 1.0, got %v", s.Volume))
	}
	if s.PlaybackDevice < -1 {
		errs = append(errs, fmt.Errorf("playback_device must be -1 or a device index, got %d", s.PlaybackDevice))
	}
	if s.CooldownSeconds < 1 || s.CooldownSeconds > 3600 {
		errs = append(errs, fmt.Errorf("cooldown_seconds must be between 1 and 3600, got %d", s.CooldownSeconds))
	}
	if s.PollIntervalMS < 10 || s.PollIntervalMS > 1000 {
		errs = append(errs, fmt.Errorf("poll_interval_ms must be between 10 and 1000, got %d", s.PollIntervalMS))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Cooldown returns the suppression window as a duration.
func (s *Settings) Cooldown() time.Duration {
	return time.Duration(s.CooldownSeconds) * time.Second
}

// PollInterval returns the controller polling period as a duration.
func (s *Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMS) * time.Millisecond
}
