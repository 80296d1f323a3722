package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/cosmicdefender/internal/game"
)

// Cue is a short synthesized sound.
type Cue int

const (
	CueExplosion Cue = iota
	CueHit
	CueShieldBreak
	CuePowerUp
	CueDamage
	CueLevelUp
	CueGameOver
	CueHighScore
	CueStart
)

var cueNames = [...]string{
	CueExplosion:   "explosion",
	CueHit:         "hit",
	CueShieldBreak: "shield-break",
	CuePowerUp:     "power-up",
	CueDamage:      "damage",
	CueLevelUp:     "level-up",
	CueGameOver:    "game-over",
	CueHighScore:   "high-score",
	CueStart:       "start",
}

func (c Cue) String() string {
	if c >= 0 && int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// CueFor maps a game event to the cue it plays.
func CueFor(k game.EventKind) (Cue, bool) {
	switch k {
	case game.EventExplosion:
		return CueExplosion, true
	case game.EventHit:
		return CueHit, true
	case game.EventShieldBreak, game.EventShieldDown:
		return CueShieldBreak, true
	case game.EventPowerUpCollected:
		return CuePowerUp, true
	case game.EventShipDamaged:
		return CueDamage, true
	case game.EventLevelUp:
		return CueLevelUp, true
	case game.EventGameOver:
		return CueGameOver, true
	case game.EventNewHighScore:
		return CueHighScore, true
	case game.EventGameStarted:
		return CueStart, true
	}
	return 0, false
}

// tone is one enveloped oscillator.
func tone(freq, endFreq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(freq, endFreq, d, wave, rate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, rate)
}

// Stream builds a fresh streamer for c at volume vol.
func (c Cue) Stream(rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueExplosion:
		s = beep.Mix(
			newVolume(tone(0, 0, 250*time.Millisecond, WaveNoise, rate), 0.6),
			newVolume(tone(120, 40, 250*time.Millisecond, WaveSine, rate), 0.4),
		)
	case CueHit:
		s = tone(660, 440, 40*time.Millisecond, WaveSquare, rate)
	case CueShieldBreak:
		s = tone(900, 200, 200*time.Millisecond, WaveSaw, rate)
	case CuePowerUp:
		s = beep.Seq(
			tone(660, 660, 70*time.Millisecond, WaveSine, rate),
			tone(990, 990, 110*time.Millisecond, WaveSine, rate),
		)
	case CueDamage:
		s = tone(160, 90, 220*time.Millisecond, WaveSaw, rate)
	case CueLevelUp:
		s = beep.Seq(
			tone(523.25, 523.25, 80*time.Millisecond, WaveSquare, rate),
			tone(659.25, 659.25, 80*time.Millisecond, WaveSquare, rate),
			tone(783.99, 783.99, 140*time.Millisecond, WaveSquare, rate),
		)
	case CueGameOver:
		s = beep.Seq(
			tone(392, 392, 180*time.Millisecond, WaveSaw, rate),
			tone(311.13, 311.13, 180*time.Millisecond, WaveSaw, rate),
			tone(261.63, 130, 400*time.Millisecond, WaveSaw, rate),
		)
	case CueHighScore:
		s = beep.Seq(
			tone(987.77, 987.77, 80*time.Millisecond, WaveSquare, rate),
			tone(1318.51, 1318.51, 200*time.Millisecond, WaveSquare, rate),
		)
	case CueStart:
		s = tone(330, 880, 150*time.Millisecond, WaveSine, rate)
	default:
		return nil
	}
	return newVolume(s, vol)
}
