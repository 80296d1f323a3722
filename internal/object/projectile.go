package object

import "github.com/tomz197/cosmicdefender/internal/physics"

// Owner identifies who fired a projectile. It also fixes the travel direction.
type Owner uint8

const (
	OwnerPlayer Owner = iota // Travels up
	OwnerEnemy               // Travels down
)

func (o Owner) String() string {
	if o == OwnerEnemy {
		return "enemy"
	}
	return "player"
}

// Color returns the display colour of shots fired by o.
func (o Owner) Color() Color {
	if o == OwnerEnemy {
		return "#ff3333"
	}
	return "#33ccff"
}

const (
	ProjectileWidth  = 6
	ProjectileHeight = 12

	PlayerShotSpeed = 10.0
	EnemyShotSpeed  = 5.0

	// TripleShotSpread is the x offset between the three shots of a triple shot.
	TripleShotSpread = 10.0

	// ProjectileMargin is how far past the top or bottom edge a shot may travel
	// before it is reaped.
	ProjectileMargin = 20.0
)

// Projectile is a shot travelling vertically at a fixed speed.
type Projectile struct {
	physics.Rect
	Speed float64
	Owner Owner
}

// NewPlayerShot creates a shot centred on x, just above a ship whose top edge is at top.
func NewPlayerShot(x, top float64) Projectile {
	return Projectile{
		Rect:  physics.Rect{X: x - ProjectileWidth/2, Y: top - 10, W: ProjectileWidth, H: ProjectileHeight},
		Speed: PlayerShotSpeed,
		Owner: OwnerPlayer,
	}
}

// NewEnemyShot creates a shot leaving the bottom centre of e.
func NewEnemyShot(e *Enemy) Projectile {
	return Projectile{
		Rect:  physics.Rect{X: e.X + e.W/2 - ProjectileWidth/2, Y: e.Bottom(), W: ProjectileWidth, H: ProjectileHeight},
		Speed: EnemyShotSpeed,
		Owner: OwnerEnemy,
	}
}

// Update moves the projectile. Returns true once it has left the vertical margin.
func (p *Projectile) Update(ctx UpdateContext) bool {
	step := p.Speed * ctx.Frames()
	if p.Owner == OwnerEnemy {
		p.Y += step
	} else {
		p.Y -= step
	}
	return p.Y < -ProjectileMargin || p.Y > ctx.Screen.Height+ProjectileMargin
}
