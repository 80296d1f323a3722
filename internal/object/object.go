// Package object defines the simulation entities (player, enemies, projectiles,
// power-ups, particles), their per-tick kinematics, and the arena store that
// holds each collection.
package object

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/cosmicdefender/internal/physics"
)

// FrameTime is the reference frame all speeds are expressed against.
// An entity with speed 5 moves 5 units per 16ms of game time.
const FrameTime = 16 * time.Millisecond

// Color is a "#rrggbb" hex colour. Renderers decide how to display it.
type Color string

// Screen holds the playfield dimensions in logical units.
type Screen struct {
	Width  float64
	Height float64
}

// Shooter receives shots fired by enemies during their update.
type Shooter interface {
	EnemyFire(e *Enemy)
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Delta   time.Duration // Game time elapsed since the previous tick
	Now     time.Duration // Game clock (played time only)
	Screen  Screen
	Rand    *rand.Rand
	Target  physics.Rect // Player ship, for hunters and the like
	Shooter Shooter      // May be nil
}

// Frames returns Delta measured in reference frames. Never negative.
func (ctx UpdateContext) Frames() float64 {
	if ctx.Delta <= 0 {
		return 0
	}
	return float64(ctx.Delta) / float64(FrameTime)
}

// randFloat returns a float in [lo, hi) from rng.
func randFloat(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
