package object

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tomz197/cosmicdefender/internal/physics"
)

// Archetype is an enemy's fixed behavioural and statistical class.
type Archetype uint8

const (
	Drifter Archetype = iota
	Zigzagger
	Hunter
	Tank
	Swarm
	Boss

	archetypeCount
)

var archetypeNames = [archetypeCount]string{"drifter", "zigzagger", "hunter", "tank", "swarm", "boss"}

func (a Archetype) String() string {
	if a < archetypeCount {
		return archetypeNames[a]
	}
	return "unknown"
}

// Archetypes returns every archetype in declaration order.
func Archetypes() []Archetype {
	out := make([]Archetype, archetypeCount)
	for i := range out {
		out[i] = Archetype(i)
	}
	return out
}

// ArchetypeStats are the base attributes of an archetype.
// Speed at spawn is BaseSpeed + r*level*LevelSpeed with r uniform in [0, 1).
type ArchetypeStats struct {
	Width, Height float64
	Health        int
	Points        int
	BaseSpeed     float64
	LevelSpeed    float64
	FireChance    float64 // Probability of firing per reference frame
	Color         Color
}

var archetypeStats = [archetypeCount]ArchetypeStats{
	Drifter:   {Width: 40, Height: 40, Health: 1, Points: 10, BaseSpeed: 2, LevelSpeed: 0.5, Color: "#ff5555"},
	Zigzagger: {Width: 35, Height: 35, Health: 2, Points: 20, BaseSpeed: 2.5, LevelSpeed: 0.3, Color: "#ffaa00"},
	Hunter:    {Width: 45, Height: 30, Health: 3, Points: 30, BaseSpeed: 1.5, LevelSpeed: 0.4, FireChance: 0.005, Color: "#aa55ff"},
	Tank:      {Width: 60, Height: 50, Health: 5, Points: 40, BaseSpeed: 1, LevelSpeed: 0.2, FireChance: 0.005, Color: "#55aa55"},
	Swarm:     {Width: 20, Height: 20, Health: 1, Points: 5, BaseSpeed: 3, LevelSpeed: 0.6, Color: "#ff99ff"},
	Boss:      {Width: 100, Height: 100, Health: 20, Points: 500, BaseSpeed: 1, FireChance: 0.02, Color: "#ff0066"},
}

// Stats returns the base attributes of a. Unknown archetypes get drifter stats.
func (a Archetype) Stats() ArchetypeStats {
	if a < archetypeCount {
		return archetypeStats[a]
	}
	return archetypeStats[Drifter]
}

// Color returns the display and explosion colour of a.
func (a Archetype) Color() Color {
	return a.Stats().Color
}

const (
	// EnemyMargin is how far below the bottom edge an enemy may fall before it is reaped.
	EnemyMargin = 100.0

	ZigzagInterval = 1000 * time.Millisecond

	zigzagFactor = 0.5
	huntFactor   = 0.3
)

// Enemy is a hostile ship. Its motion depends on the archetype.
type Enemy struct {
	physics.Rect
	Archetype Archetype
	Speed     float64
	Health    int
	MaxHealth int
	Points    int

	// Zigzag state.
	Direction               float64 // -1, 0 or 1
	LastDirectionChange     time.Duration
	DirectionChangeInterval time.Duration
}

// NewEnemy creates an enemy of archetype a entering above the screen at x.
func NewEnemy(a Archetype, x float64, level int, now time.Duration, rng *rand.Rand) Enemy {
	st := a.Stats()
	e := Enemy{
		Rect:      physics.Rect{X: x, Y: -st.Height, W: st.Width, H: st.Height},
		Archetype: a,
		Speed:     st.BaseSpeed + rng.Float64()*float64(level)*st.LevelSpeed,
		Health:    st.Health,
		MaxHealth: st.Health,
		Points:    st.Points,
	}
	if a == Zigzagger {
		e.Direction = 1
		if rng.Float64() <= 0.5 {
			e.Direction = -1
		}
		e.LastDirectionChange = now
		e.DirectionChangeInterval = ZigzagInterval
	}
	return e
}

// Update advances the enemy by one tick and lets it fire through ctx.Shooter.
// Returns true once it has fallen past the bottom margin.
func (e *Enemy) Update(ctx UpdateContext) bool {
	frames := ctx.Frames()
	e.Y += e.Speed * frames

	switch e.Archetype {
	case Zigzagger:
		if ctx.Now-e.LastDirectionChange > e.DirectionChangeInterval {
			e.Direction = -e.Direction
			e.LastDirectionChange = ctx.Now
		}
		e.X += e.Direction * e.Speed * zigzagFactor * frames
	case Hunter:
		cx, _ := e.Center()
		tx, _ := ctx.Target.Center()
		step := e.Speed * huntFactor * frames
		if cx < tx {
			e.X += step
		} else if cx > tx {
			e.X -= step
		}
	case Boss:
		phase := float64(ctx.Now) / float64(time.Second)
		e.X = ctx.Screen.Width/2 - e.W/2 + math.Sin(phase)*ctx.Screen.Width/3
	}
	e.X = physics.Clamp(e.X, 0, ctx.Screen.Width-e.W)

	if chance := e.Archetype.Stats().FireChance; chance > 0 && frames > 0 && ctx.Shooter != nil {
		if ctx.Rand.Float64() < chance*frames {
			ctx.Shooter.EnemyFire(e)
		}
	}

	return e.Y >= ctx.Screen.Height+EnemyMargin
}

// Hit removes one point of health. Returns true if the enemy was destroyed.
func (e *Enemy) Hit() bool {
	if e.Health > 0 {
		e.Health--
	}
	return e.Health <= 0
}

// HealthFraction returns health as a fraction of the starting health.
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return physics.Clamp(float64(e.Health)/float64(e.MaxHealth), 0, 1)
}
