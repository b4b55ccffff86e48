package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCheck
	SoundCastle
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// AudioManager plays short procedurally generated sound effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates a new audio manager.
func NewAudioManager() *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		enabled: true,
		volume:  0.5,
	}
	am.sounds = map[SoundType][]byte{
		SoundMove:    click(440, 0.08, 0.3),
		SoundCapture: click(330, 0.12, 0.5),
		SoundCheck:   synth(0.15, 0.4, attackDecay(0.1), 880),
		SoundCastle:  concat(click(400, 0.06, 0.3), silence(0.05), click(440, 0.06, 0.24)),
		SoundInvalid: buzz(150, 0.1, 0.3),
		SoundGameEnd: synth(0.4, 0.5, fadeInOut(0.1, 0.7), 261.63, 329.63, 392.00),
	}
	return am
}

// pcm renders n samples of f as 16-bit little-endian stereo.
func pcm(duration float64, f func(t float64) float64) []byte {
	n := int(sampleRate * duration)
	data := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := math.Max(-1, math.Min(1, f(float64(i)/sampleRate)))
		s := int16(v * 32767)
		data[i*4] = byte(s)
		data[i*4+1] = byte(s >> 8)
		data[i*4+2] = byte(s)
		data[i*4+3] = byte(s >> 8)
	}
	return data
}

// click is a percussive tone with an exponential decay and a little noise.
func click(freq, duration, amplitude float64) []byte {
	return pcm(duration, func(t float64) float64 {
		i := t * sampleRate
		noise := (math.Sin(i*0.3) + math.Sin(i*0.7)) * 0.3
		return (math.Sin(2*math.Pi*freq*t) + noise) * math.Exp(-t*30) * amplitude
	})
}

// buzz is a low square-ish wave with a linear decay.
func buzz(freq, duration, amplitude float64) []byte {
	return pcm(duration, func(t float64) float64 {
		wave := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
		return wave * (1 - t/duration) * amplitude * 0.5
	})
}

// synth mixes sine waves at freqs under an envelope of progress 0..1.
func synth(duration, amplitude float64, envelope func(p float64) float64, freqs ...float64) []byte {
	return pcm(duration, func(t float64) float64 {
		sum := 0.0
		for _, f := range freqs {
			sum += math.Sin(2 * math.Pi * f * t)
		}
		return sum / float64(len(freqs)) * envelope(t/duration) * amplitude
	})
}

func attackDecay(attack float64) func(float64) float64 {
	return func(p float64) float64 {
		if p < attack {
			return p / attack
		}
		return 1 - (p-attack)/(1-attack)
	}
}

func fadeInOut(in, out float64) func(float64) float64 {
	return func(p float64) float64 {
		switch {
		case p < in:
			return p / in
		case p > out:
			return (1 - p) / (1 - out)
		}
		return 1
	}
}

func silence(duration float64) []byte {
	return make([]byte, int(sampleRate*duration)*4)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}

	// One player per call so sounds can overlap.
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
