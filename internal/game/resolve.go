package game

import "github.com/tomz197/cosmicdefender/internal/object"

const (
	// PlayerColor is used for the ship's own explosion.
	PlayerColor object.Color = "#3399ff"

	// RamColor is used for enemies destroyed by ramming the ship.
	RamColor object.Color = "#ff5555"
)

// ended reports whether an earlier contact in this tick ended the game.
// Later contacts still remove entities but neither score nor touch lives,
// so the final score is the one recorded at game over.
func (g *Game) ended() bool {
	return g.state == StateGameOver
}

func (g *Game) playerRammed(i int) {
	e := g.enemies.At(i)
	ex, ey := e.Center()
	px, py := g.player.Center()

	if g.player.ShieldActive {
		g.burst(object.ShieldBreakBurst, EventShieldBreak, px, py, "")
		g.dropShield()
	} else if g.damagePlayer() {
		g.burst(object.ExplosionBurst, EventExplosion, px, py, PlayerColor)
	}

	g.burst(object.ExplosionBurst, EventExplosion, ex, ey, RamColor)
	g.enemies.Kill(i)
}

func (g *Game) enemyShot(p, i int) {
	proj := g.projectiles.At(p)
	g.projectiles.Kill(p)
	g.burst(object.HitBurst, EventHit, proj.X, proj.Y, "")

	if g.enemies.At(i).Hit() {
		g.destroyEnemy(i)
	}
}

func (g *Game) playerShot(p int) {
	proj := g.projectiles.At(p)
	g.projectiles.Kill(p)
	g.burst(object.HitBurst, EventHit, proj.X, proj.Y, "")

	if g.player.ShieldActive {
		return // absorbed, the shield stays up
	}
	g.damagePlayer()
}

func (g *Game) powerUpTouched(i int) {
	pu := g.powerUps.At(i)
	if !pu.Collect() {
		return
	}
	g.powerUps.Kill(i)
	if !g.ended() {
		g.applyPowerUp(pu)
	}

	cx, cy := pu.Center()
	g.burst(object.CollectBurst, EventPowerUpCollected, cx, cy, pu.Kind.Color())
}

// damagePlayer removes a life and ends the game at zero.
// Returns true if the ship survived.
func (g *Game) damagePlayer() bool {
	if g.ended() {
		return false
	}
	lives := g.player.Damage()
	if lives == 0 {
		g.gameOver()
		return false
	}
	g.emit(Event{Kind: EventShipDamaged, Value: lives})
	return true
}

// destroyEnemy awards the enemy's points and removes it with an explosion
// in its archetype colour.
func (g *Game) destroyEnemy(i int) {
	if !g.enemies.Kill(i) {
		return
	}
	e := g.enemies.At(i)
	points := e.Points
	if g.ended() {
		points = 0
	}
	g.addScore(points)
	g.emit(Event{Kind: EventEnemyDestroyed, Value: points, Archetype: e.Archetype})

	cx, cy := e.Center()
	g.burst(object.ExplosionBurst, EventExplosion, cx, cy, e.Archetype.Color())
}

// burst spawns a particle effect and reports it.
func (g *Game) burst(b object.Burst, kind EventKind, x, y float64, c object.Color) {
	if c == "" {
		c = b.Color
	}
	b.Spawn(&g.particles, x, y, c, g.rng)
	g.emit(Event{Kind: kind, X: x, Y: y, Color: c})
}
