package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/jmylchreest/bouncy/internal/model"
)

const (
	defaultSampleRate = beep.SampleRate(44100)

	thudFrequency = 90.0
	thudDuration  = 60 * time.Millisecond

	// Impacts at or above this speed (pixels per step) play at full volume.
	fullImpact = 40.0
)

// Player plays a sound when the window bounces.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	// Volume control (0.0 to 1.0)
	volume float64

	// Impacts slower than this are silent
	minImpact float64

	// Sound file, empty for the generated thud
	soundPath string

	// Whether speaker has been initialized
	initialized bool
	// Set once speaker init failed so we stop retrying every bounce
	disabled bool

	sampleRate beep.SampleRate
	buffer     *beep.Buffer
}

// NewPlayer creates a new audio player.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	return &Player{
		logger:     logger,
		volume:     1.0,
		sampleRate: defaultSampleRate,
	}
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = clamp01(volume)
	p.logger.Debug("volume set", "volume", p.volume)
}

// GetVolume returns the current volume.
func (p *Player) GetVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetMinImpact sets the slowest impact that still makes a sound.
func (p *Player) SetMinImpact(speed float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.minImpact = speed
}

// SetSound switches the bounce sound. The new sound is loaded lazily.
func (p *Player) SetSound(path string) {
	path = expandPath(path)

	p.mu.Lock()
	defer p.mu.Unlock()

	if path == p.soundPath {
		return
	}
	p.soundPath = path
	p.buffer = nil
}

// Preload decodes the bounce sound so the first bounce plays without delay.
func (p *Player) Preload() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := p.loadLocked()
	return err
}

// OnBounce plays the bounce sound for b. It matches the physics.Hooks
// OnBounce signature.
func (p *Player) OnBounce(b model.Bounce) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disabled || b.Speed < p.minImpact {
		return
	}

	buffer, err := p.loadLocked()
	if err != nil {
		p.logger.Warn("failed to load bounce sound", "path", p.soundPath, "error", err)
		p.disabled = true
		return
	}

	p.playLocked(buffer, p.volume*impactGain(b.Speed))
}

// loadLocked returns the decoded bounce sound, initializing the speaker
// on first use. p.mu must be held.
func (p *Player) loadLocked() (*beep.Buffer, error) {
	if p.buffer != nil {
		return p.buffer, nil
	}

	var (
		buffer *beep.Buffer
		err    error
	)
	if p.soundPath == "" {
		buffer, err = newThud(defaultSampleRate)
	} else {
		buffer, err = loadSound(p.soundPath)
	}
	if err != nil {
		return nil, err
	}

	if err := p.ensureInitializedLocked(buffer.Format().SampleRate); err != nil {
		return nil, err
	}

	p.buffer = buffer
	return buffer, nil
}

// loadSound loads and decodes a sound file into a buffer.
func loadSound(path string) (*beep.Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".ogg", ".mp3":
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

// newThud renders a short, linearly decaying low sine tone.
func newThud(sr beep.SampleRate) (*beep.Buffer, error) {
	tone, err := generators.SineTone(sr, thudFrequency)
	if err != nil {
		return nil, fmt.Errorf("failed to generate thud: %w", err)
	}

	buffer := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buffer.Append(decay(tone, sr.N(thudDuration)))
	return buffer, nil
}

// decay limits s to n samples and fades it linearly to silence.
func decay(s beep.Streamer, n int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		if len(samples) > n-pos {
			samples = samples[:n-pos]
		}
		k, ok := s.Stream(samples)
		for i := 0; i < k; i++ {
			gain := 1 - float64(pos+i)/float64(n)
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		pos += k
		return k, ok
	})
}

// ensureInitializedLocked initializes the speaker if not already done.
func (p *Player) ensureInitializedLocked(sampleRate beep.SampleRate) error {
	if p.initialized {
		return nil
	}

	// Use a reasonable buffer size for low latency
	bufferSize := sampleRate.N(50 * time.Millisecond)

	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", sampleRate)
	return nil
}

// playLocked plays a buffered sound at the given linear volume.
func (p *Player) playLocked(buffer *beep.Buffer, volume float64) {
	if volume <= 0 {
		return
	}

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())

	if buffer.Format().SampleRate != p.sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, p.sampleRate, streamer)
	}

	if volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   volumeToExponent(volume),
		}
	}

	speaker.Play(streamer)
}

// Close stops all playback and releases resources.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	p.buffer = nil
	p.logger.Debug("audio player closed")
}

// impactGain maps an impact speed to a linear gain in (0, 1].
func impactGain(speed float64) float64 {
	return clamp01(speed / fullImpact)
}

// volumeToExponent converts a linear volume (0-1) to the base-2 exponent
// effects.Volume expects. Halving the volume lowers the exponent by one.
func volumeToExponent(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return math.Log2(volume)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}
