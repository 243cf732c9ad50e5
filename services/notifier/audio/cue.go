// Package audio plays the notification cue through the default output
// device. Playback is best-effort everywhere: a machine without an audio
// device gets a log line, never an error.
package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/zonagamer/console/internal/pkg/logger"
	"github.com/zonagamer/console/internal/pkg/models"
)

const frameSize = 512

// ToneCue synthesizes a short sine tone as the alert sound
type ToneCue struct {
	cfg models.AudioConfig

	mu          sync.Mutex
	initialized bool
}

// NewToneCue creates a cue for the configured tone
func NewToneCue(cfg models.AudioConfig) *ToneCue {
	return &ToneCue{cfg: cfg}
}

// Prime makes a first low-volume playback attempt so the output device is
// opened before the first real alert arrives.
func (c *ToneCue) Prime() {
	if err := c.play(0.1); err != nil {
		logger.Warn("audio priming failed, alerts will be visual only", logger.Err(err))
		return
	}
	logger.Debug("audio cue primed")
}

// Play sounds the alert cue. Failure is logged and swallowed.
func (c *ToneCue) Play() {
	if err := c.play(1.0); err != nil {
		logger.Warn("failed to play alert sound", logger.Err(err))
	}
}

// Close releases the audio backend
func (c *ToneCue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		_ = portaudio.Terminate()
		c.initialized = false
	}
}

func (c *ToneCue) play(volume float64) error {
	if !c.cfg.Enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		if err := portaudio.Initialize(); err != nil {
			return fmt.Errorf("audio backend unavailable: %w", err)
		}
		c.initialized = true
	}

	output, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return fmt.Errorf("no output device: %w", err)
	}

	params := portaudio.LowLatencyParameters(nil, output)
	params.Output.Channels = 1
	params.Input.Device = nil
	params.Input.Channels = 0
	params.SampleRate = c.cfg.SampleRate
	params.FramesPerBuffer = frameSize

	buffer := make([]int16, frameSize)
	stream, err := portaudio.OpenStream(params, buffer)
	if err != nil {
		return fmt.Errorf("open playback stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}
	defer stream.Stop()

	totalSamples := int(c.cfg.SampleRate * float64(c.cfg.DurationMs) / 1000)
	step := 2 * math.Pi * c.cfg.ToneHz / c.cfg.SampleRate
	for written := 0; written < totalSamples; written += frameSize {
		for i := range buffer {
			sample := volume * math.Sin(float64(written+i)*step)
			buffer[i] = int16(sample * math.MaxInt16 * 0.8)
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("write tone frame: %w", err)
		}
	}

	return nil
}
