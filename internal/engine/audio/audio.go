// Package audio plays the synthesized sound effects for wall bounces and pushes.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/Faultbox/bouncebox/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Tone describes a short decaying sine blip.
type Tone struct {
	Frequency float64 // Hz
	Duration  time.Duration
	Decay     float64 // Envelope falloff; larger is snappier
}

// Sound effect tones.
var (
	BounceTone = Tone{Frequency: 880, Duration: 45 * time.Millisecond, Decay: 6}
	PushTone   = Tone{Frequency: 330, Duration: 140 * time.Millisecond, Decay: 3}
)

// Manager handles sound effect playback.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64 // 0.0 to 1.0

	// Mixer for concurrent sound effects
	sfxMixer *beep.Mixer
	log      *zap.Logger
}

// New creates a new audio manager.
func New(volume float64) *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     clamp(volume, 0, 1),
		sfxMixer:   &beep.Mixer{},
		log:        logger.Named("audio"),
	}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.sfxMixer)

	m.initialized = true
	m.log.Debug("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the effect volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// PlayBounce plays the wall bounce tick. Simultaneous bounces play one louder tick.
func (m *Manager) PlayBounce(count int) {
	if count <= 0 {
		return
	}
	gain := 1 + 0.25*float64(count-1)
	m.play(BounceTone, gain)
}

// PlayPush plays the tone for a sphere being pushed.
func (m *Manager) PlayPush() {
	m.play(PushTone, 1)
}

// play is a no-op until Init succeeds.
func (m *Manager) play(t Tone, gain float64) {
	m.mu.RLock()
	initialized := m.initialized
	vol := clamp(m.volume*gain, 0, 1)
	m.mu.RUnlock()

	if !initialized {
		return
	}

	s, err := t.Streamer(m.sampleRate)
	if err != nil {
		m.log.Warn("failed to synthesize tone", zap.Float64("frequency", t.Frequency), zap.Error(err))
		return
	}

	volStreamer := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeExponent(vol),
		Silent:   vol <= 0,
	}

	speaker.Lock()
	m.sfxMixer.Add(volStreamer)
	speaker.Unlock()
}

// Streamer renders the tone at the given sample rate.
func (t Tone) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, t.Frequency)
	if err != nil {
		return nil, err
	}
	n := sr.N(t.Duration)
	return &envelope{streamer: beep.Take(n, sine), total: n, decay: t.Decay}, nil
}

// envelope applies an exponential fade over a fixed number of samples.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	decay    float64
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := math.Exp(-e.decay * float64(e.pos) / float64(e.total))
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error {
	return e.streamer.Err()
}

// volumeExponent converts a 0-1 volume to the base-2 exponent effects.Volume expects.
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	// vol=1 -> 0, vol=0.5 -> -1, vol=0.25 -> -2
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
