package game

import (
	"time"

	"github.com/tomz197/cosmicdefender/internal/object"
)

// ActiveEffect is a timed power-up in force.
type ActiveEffect struct {
	Kind      object.Kind
	Remaining time.Duration
}

// Snapshot is a read-only copy of the game for rendering.
// Nothing in it aliases the game's own state.
type Snapshot struct {
	State     State
	Clock     time.Duration // Played time of the current game
	Screen    object.Screen
	Score     int
	Level     int
	HighScore int

	Player      object.Player
	Enemies     []object.Enemy
	Projectiles []object.Projectile
	PowerUps    []object.PowerUp
	Particles   []object.Particle
	Effects     []ActiveEffect
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		State:       g.state,
		Clock:       g.clock,
		Screen:      g.screen,
		Score:       g.score,
		Level:       g.level,
		HighScore:   g.highScore,
		Enemies:     g.enemies.Values(),
		Projectiles: g.projectiles.Values(),
		PowerUps:    g.powerUps.Values(),
		Particles:   g.particles.Values(),
	}
	if g.player != nil {
		s.Player = *g.player
	}
	for _, k := range object.Kinds() {
		if g.effects.Active(k) {
			s.Effects = append(s.Effects, ActiveEffect{Kind: k, Remaining: g.effects.Remaining(k, g.clock)})
		}
	}
	return s
}

// Active reports whether k is among the snapshot's effects.
func (s Snapshot) Active(k object.Kind) bool {
	for _, e := range s.Effects {
		if e.Kind == k {
			return true
		}
	}
	return false
}
