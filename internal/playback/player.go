// internal/playback/player.go
package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/go-audio/wav"
)

var (
	// ErrNoSound indicates no sound file is configured
	ErrNoSound = errors.New("no sound file configured")
	// ErrInvalidVolume indicates volume must be between 0 and 1
	ErrInvalidVolume = errors.New("volume must be between 0.0 and 1.0")
	// ErrEmptySound indicates the sound file decoded to no samples
	ErrEmptySound = errors.New("sound file contains no samples")
)

// Config holds playback output configuration
type Config struct {
	SoundPath   string  // WAV file played on a match
	Volume      float64 // 0.0-1.0, applied per sample
	DeviceIndex int     // -1 for default playback device
}

// DefaultConfig returns sensible defaults for the reward sound
func DefaultConfig() Config {
	return Config{
		SoundPath:   "",
		Volume:      0.7,
		DeviceIndex: -1,
	}
}

// WavPlayer decodes the configured sound once and streams it to a malgo
// playback device from the beginning on every Play call.
type WavPlayer struct {
	config Config

	// Decoding is deferred to the first Play so a missing or broken asset
	// degrades to a logged warning per trigger instead of failing startup.
	loadOnce sync.Once
	loadErr  error
	samples  []float32 // interleaved, volume already applied
	rate     uint32
	channels uint32

	mu sync.Mutex // serializes device use; overlapping Play calls queue
}

// NewWavPlayer creates a player for the given configuration.
func NewWavPlayer(cfg Config) (*WavPlayer, error) {
	if cfg.Volume < 0 || cfg.Volume > 1 {
		return nil, ErrInvalidVolume
	}
	return &WavPlayer{config: cfg}, nil
}

// load decodes the WAV asset and applies the configured volume.
func (p *WavPlayer) load() {
	if p.config.SoundPath == "" {
		p.loadErr = ErrNoSound
		return
	}

	f, err := os.Open(p.config.SoundPath)
	if err != nil {
		p.loadErr = fmt.Errorf("open sound: %w", err)
		return
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		p.loadErr = fmt.Errorf("decode sound: %w", err)
		return
	}
	if buf == nil || len(buf.Data) == 0 {
		p.loadErr = ErrEmptySound
		return
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}
	scale := p.config.Volume / float64(uint64(1)<<(bitDepth-1))

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(float64(v) * scale)
	}

	p.samples = samples
	p.rate = uint32(buf.Format.SampleRate)
	p.channels = uint32(buf.Format.NumChannels)
}

// Play streams the sound once and blocks until it finishes.
func (p *WavPlayer) Play() error {
	p.loadOnce.Do(p.load)
	if p.loadErr != nil {
		return p.loadErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	deviceConfig := malgo.DeviceConfig{
		DeviceType: malgo.Playback,
		SampleRate: p.rate,
		Playback: malgo.SubConfig{
			Format:   malgo.FormatF32,
			Channels: p.channels,
		},
	}

	// Select specific device if requested
	if p.config.DeviceIndex >= 0 {
		devices, err := ctx.Devices(malgo.Playback)
		if err != nil {
			return fmt.Errorf("enumerate devices: %w", err)
		}
		if p.config.DeviceIndex >= len(devices) {
			return fmt.Errorf("device index %d out of range (have %d devices)",
				p.config.DeviceIndex, len(devices))
		}
		deviceConfig.Playback.DeviceID = devices[p.config.DeviceIndex].ID.Pointer()
	}

	pos := 0
	done := make(chan struct{})
	var closeOnce sync.Once

	// Feeds the device from the decoded buffer; zero-fills after the end
	// until the device is torn down.
	onSendFrames := func(outputSamples, inputSamples []byte, frameCount uint32) {
		n := len(outputSamples) / 4
		for i := 0; i < n; i++ {
			var s float32
			if pos < len(p.samples) {
				s = p.samples[pos]
				pos++
			}
			binary.LittleEndian.PutUint32(outputSamples[i*4:], math.Float32bits(s))
		}
		if pos >= len(p.samples) {
			closeOnce.Do(func() { close(done) })
		}
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSendFrames,
	})
	if err != nil {
		return fmt.Errorf("init playback device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	<-done
	return nil
}

// ListDevices returns the available playback devices.
func ListDevices() ([]malgo.DeviceInfo, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	infos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	return infos, nil
}
