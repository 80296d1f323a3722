package object

import (
	"math"
	"math/rand/v2"

	"github.com/tomz197/cosmicdefender/internal/physics"
)

// Particle is a short-lived visual effect. It never affects gameplay.
type Particle struct {
	X, Y    float64
	Size    float64
	Color   Color
	Speed   float64 // Units per reference frame
	Angle   float64 // Radians
	Life    float64 // Reference frames remaining
	MaxLife float64
}

// Alpha is the remaining fraction of the particle's life, in [0, 1].
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return physics.Clamp(p.Life/p.MaxLife, 0, 1)
}

// Update moves the particle along its angle and ages it.
// Returns true once its life has run out.
func (p *Particle) Update(ctx UpdateContext) bool {
	frames := ctx.Frames()
	p.X += math.Cos(p.Angle) * p.Speed * frames
	p.Y += math.Sin(p.Angle) * p.Speed * frames
	p.Life -= frames
	return p.Life <= 0
}

// Range is a half-open interval [Min, Max).
type Range struct {
	Min, Max float64
}

func (r Range) pick(rng *rand.Rand) float64 {
	return randFloat(rng, r.Min, r.Max)
}

// Burst describes a particle effect. An empty Color means the caller supplies one.
type Burst struct {
	Count int
	Color Color
	Speed Range
	Size  Range
	Life  Range
}

var (
	ExplosionBurst   = Burst{Count: 30, Speed: Range{1, 4}, Size: Range{2, 7}, Life: Range{10, 40}}
	ShieldBreakBurst = Burst{Count: 20, Color: "#00ffcc", Speed: Range{2, 7}, Size: Range{1, 5}, Life: Range{10, 30}}
	HitBurst         = Burst{Count: 10, Color: "#ffff99", Speed: Range{1, 3}, Size: Range{1, 4}, Life: Range{5, 15}}
	CollectBurst     = Burst{Count: 20, Speed: Range{1, 4}, Size: Range{2, 6}, Life: Range{10, 30}}
)

// ParticleSpawner accepts new particles.
type ParticleSpawner interface {
	Add(p Particle) Handle
}

// Spawn emits b.Count particles at (x, y) in random directions.
// c overrides the burst colour when non-empty.
func (b Burst) Spawn(dst ParticleSpawner, x, y float64, c Color, rng *rand.Rand) {
	if dst == nil || rng == nil {
		return
	}
	if c == "" {
		c = b.Color
	}
	for i := 0; i < b.Count; i++ {
		life := b.Life.pick(rng)
		dst.Add(Particle{
			X:       x,
			Y:       y,
			Size:    b.Size.pick(rng),
			Color:   c,
			Speed:   b.Speed.pick(rng),
			Angle:   rng.Float64() * 2 * math.Pi,
			Life:    life,
			MaxLife: life,
		})
	}
}
