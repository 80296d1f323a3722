package game

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/cosmicdefender/internal/object"
	"github.com/tomz197/cosmicdefender/internal/physics"
)

const swarmStagger = 15.0 // Vertical gap between swarm members

// spawner decides when and what enters the playfield.
type spawner struct {
	cfg SpawnTunables

	enemyInterval time.Duration
	lastEnemy     time.Duration
	lastPowerUp   time.Duration

	// Highest score band a boss has been forced for, so a band's window
	// yields at most one boss even if it spans several spawn decisions.
	bossBand int
}

func newSpawner(cfg SpawnTunables) spawner {
	return spawner{cfg: cfg, enemyInterval: cfg.EnemyInterval}
}

// eligible returns the archetypes that may be rolled at level.
func eligible(level int) []object.Archetype {
	types := []object.Archetype{object.Drifter}
	if level >= 2 {
		types = append(types, object.Zigzagger)
	}
	if level >= 3 {
		types = append(types, object.Hunter)
	}
	if level >= 4 {
		types = append(types, object.Tank, object.Swarm)
	}
	return types
}

// bossDue reports whether the next spawn decision must yield a boss.
func (s *spawner) bossDue(score int, bossAlive bool) bool {
	if score <= 0 || bossAlive {
		return false
	}
	band := score / s.cfg.BossEvery
	return score%s.cfg.BossEvery < s.cfg.BossWindow && band > s.bossBand
}

// pick chooses the archetype of the next enemy.
func (s *spawner) pick(level, score int, bossAlive bool, rng *rand.Rand) object.Archetype {
	if s.bossDue(score, bossAlive) {
		s.bossBand = score / s.cfg.BossEvery
		return object.Boss
	}
	types := eligible(level)
	return types[rng.IntN(len(types))]
}

// update adds whatever is due at the current game clock.
func (s *spawner) update(g *Game) {
	now := g.clock
	if now-s.lastEnemy > s.enemyInterval {
		s.spawnEnemy(g)
		s.lastEnemy = now
		s.enemyInterval = max(s.cfg.MinEnemyInterval, s.enemyInterval-s.cfg.EnemyIntervalStep)
	}
	if now-s.lastPowerUp > s.cfg.PowerUpInterval {
		s.spawnPowerUp(g)
		s.lastPowerUp = now
	}
}

func (s *spawner) spawnEnemy(g *Game) {
	a := s.pick(g.level, g.score, g.bossAlive(), g.rng)
	st := a.Stats()
	x := g.rng.Float64() * max(0, g.screen.Width-st.Width)
	e := object.NewEnemy(a, x, g.level, g.clock, g.rng)

	if a != object.Swarm {
		g.enemies.Add(e)
		return
	}

	n := s.cfg.SwarmMin + g.rng.IntN(s.cfg.SwarmMax-s.cfg.SwarmMin+1)
	for i := 0; i < n; i++ {
		m := e
		m.X = physics.Clamp(x+(float64(i)-float64(n)/2)*e.W*1.5, 0, g.screen.Width-e.W)
		m.Y = e.Y - float64(i)*swarmStagger
		g.enemies.Add(m)
	}
}

func (s *spawner) spawnPowerUp(g *Game) {
	kinds := object.Kinds()
	k := kinds[g.rng.IntN(len(kinds))]
	x := g.rng.Float64() * max(0, g.screen.Width-object.PowerUpSize)
	g.powerUps.Add(object.NewPowerUp(k, x, g.tun.PowerUpDuration))
}
