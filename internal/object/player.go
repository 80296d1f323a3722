package object

import (
	"time"

	"github.com/tomz197/cosmicdefender/internal/physics"
)

// Controls are the movement and fire intents applied to the ship each tick.
type Controls struct {
	Left, Right, Up, Down bool
	Fire                  bool
}

// Moving reports whether any movement intent is held.
func (c Controls) Moving() bool {
	return c.Left || c.Right || c.Up || c.Down
}

// PlayerStats are the tunable starting attributes of the ship.
type PlayerStats struct {
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Speed     float64       `yaml:"speed"`     // Units per reference frame
	Lives     int           `yaml:"lives"`     // Starting and maximum lives
	FireRate  time.Duration `yaml:"fireRate"`  // Minimum time between shots
	BottomGap float64       `yaml:"bottomGap"` // Spawn distance from the bottom edge
}

// DefaultPlayerStats returns the stock ship.
func DefaultPlayerStats() PlayerStats {
	return PlayerStats{
		Width:     50,
		Height:    50,
		Speed:     5,
		Lives:     3,
		FireRate:  300 * time.Millisecond,
		BottomGap: 70,
	}
}

// Player is the ship controlled by the host's intents.
type Player struct {
	physics.Rect
	Speed        float64
	Lives        int
	MaxLives     int
	Controls     Controls
	LastFireTime time.Duration
	FireRate     time.Duration
	ShieldActive bool
}

// NewPlayer creates a ship centred horizontally near the bottom of the screen.
func NewPlayer(screen Screen, stats PlayerStats) *Player {
	p := &Player{
		Rect: physics.Rect{
			X: screen.Width/2 - stats.Width/2,
			Y: screen.Height - stats.BottomGap,
			W: stats.Width,
			H: stats.Height,
		},
		Speed:    stats.Speed,
		Lives:    stats.Lives,
		MaxLives: stats.Lives,
		FireRate: stats.FireRate,
		// Ready to fire on the first tick.
		LastFireTime: -stats.FireRate,
	}
	p.clamp(screen)
	return p
}

// Update moves the ship by its held intents and keeps it on screen.
func (p *Player) Update(ctx UpdateContext) {
	step := p.Speed * ctx.Frames()
	if p.Controls.Left {
		p.X -= step
	}
	if p.Controls.Right {
		p.X += step
	}
	if p.Controls.Up {
		p.Y -= step
	}
	if p.Controls.Down {
		p.Y += step
	}
	p.clamp(ctx.Screen)
}

func (p *Player) clamp(screen Screen) {
	p.X = physics.Clamp(p.X, 0, screen.Width-p.W)
	p.Y = physics.Clamp(p.Y, 0, screen.Height-p.H)
}

// Cooldown returns the time required between shots.
func (p *Player) Cooldown(rapid bool) time.Duration {
	if rapid {
		return p.FireRate / 2
	}
	return p.FireRate
}

// TryFire fires if the fire intent is held and the cooldown has elapsed.
// It returns the new shots (one, or three with triple shot) or nil.
func (p *Player) TryFire(now time.Duration, rapid, triple bool) []Projectile {
	if !p.Controls.Fire {
		return nil
	}
	if now-p.LastFireTime < p.Cooldown(rapid) {
		return nil
	}
	p.LastFireTime = now

	cx, _ := p.Center()
	if !triple {
		return []Projectile{NewPlayerShot(cx, p.Y)}
	}
	shots := make([]Projectile, 0, 3)
	for i := -1; i <= 1; i++ {
		shots = append(shots, NewPlayerShot(cx+float64(i)*TripleShotSpread, p.Y))
	}
	return shots
}

// Damage removes a life and returns how many remain. Lives never go below 0.
func (p *Player) Damage() int {
	if p.Lives > 0 {
		p.Lives--
	}
	return p.Lives
}

// Repair adds a life up to MaxLives. It returns false if already at full health.
func (p *Player) Repair() bool {
	if p.Lives >= p.MaxLives {
		return false
	}
	p.Lives++
	return true
}
