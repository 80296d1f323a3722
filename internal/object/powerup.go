package object

import (
	"time"

	"github.com/tomz197/cosmicdefender/internal/physics"
)

// Kind is a power-up type. Timed kinds come first so they can index a fixed table.
type Kind uint8

const (
	TripleShot Kind = iota
	RapidFire
	Shield
	Repair
	SmartBomb

	kindCount
)

// TimedKinds is the number of kinds with a lasting effect.
const TimedKinds = int(Shield) + 1

var kindInfo = [kindCount]struct {
	name  string
	label string
	color Color
}{
	TripleShot: {"tripleShot", "TripleShot", "#33ccff"},
	RapidFire:  {"rapidFire", "RapidFire", "#ffcc00"},
	Shield:     {"shield", "Shield", "#00ffcc"},
	Repair:     {"repair", "Repair", "#ff3366"},
	SmartBomb:  {"smartBomb", "SmartBomb", "#ff6600"},
}

func (k Kind) String() string {
	if k.Valid() {
		return kindInfo[k].name
	}
	return "unknown"
}

// Label is the capitalised name used in notifications.
func (k Kind) Label() string {
	if k.Valid() {
		return kindInfo[k].label
	}
	return "Unknown"
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k < kindCount }

// Timed reports whether k registers an expiring effect.
func (k Kind) Timed() bool { return k <= Shield }

// Color returns the display and collection colour of k.
func (k Kind) Color() Color {
	if k.Valid() {
		return kindInfo[k].color
	}
	return "#ffffff"
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

const (
	PowerUpSize  = 30
	PowerUpSpeed = 2.0

	// PowerUpMargin is how far below the bottom edge a power-up may fall before it is reaped.
	PowerUpMargin = 30.0

	PowerUpDuration = 10 * time.Second
)

// PowerUp is a falling pickup.
type PowerUp struct {
	physics.Rect
	Speed     float64
	Kind      Kind
	Duration  time.Duration // Zero for instantaneous kinds
	Collected bool
}

// NewPowerUp creates a power-up of kind k entering above the screen at x.
func NewPowerUp(k Kind, x float64, duration time.Duration) PowerUp {
	p := PowerUp{
		Rect:  physics.Rect{X: x, Y: -PowerUpSize, W: PowerUpSize, H: PowerUpSize},
		Speed: PowerUpSpeed,
		Kind:  k,
	}
	if k.Timed() {
		p.Duration = duration
	}
	return p
}

// Collect marks the power-up collected. It succeeds only once.
func (p *PowerUp) Collect() bool {
	if p.Collected {
		return false
	}
	p.Collected = true
	return true
}

// Update moves the power-up. Returns true once it is collected or has fallen past the margin.
func (p *PowerUp) Update(ctx UpdateContext) bool {
	if p.Collected {
		return true
	}
	p.Y += p.Speed * ctx.Frames()
	return p.Y >= ctx.Screen.Height+PowerUpMargin
}
