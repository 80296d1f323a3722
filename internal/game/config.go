package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/cosmicdefender/internal/object"
)

// ErrInvalidTunables is wrapped by every Validate failure.
var ErrInvalidTunables = errors.New("invalid tunables")

// SpawnTunables control the enemy and power-up spawn cadence.
type SpawnTunables struct {
	EnemyInterval     time.Duration `yaml:"enemyInterval"`     // Starting gap between enemy spawns
	EnemyIntervalStep time.Duration `yaml:"enemyIntervalStep"` // Reduction after every spawn
	MinEnemyInterval  time.Duration `yaml:"minEnemyInterval"`
	PowerUpInterval   time.Duration `yaml:"powerUpInterval"`

	BossEvery  int `yaml:"bossEvery"`  // Score band width for boss appearances
	BossWindow int `yaml:"bossWindow"` // Score range at the start of a band in which a boss is forced

	SwarmMin int `yaml:"swarmMin"`
	SwarmMax int `yaml:"swarmMax"`
}

// Tunables are the gameplay parameters. They can be loaded from YAML and are
// applied when the next game starts.
type Tunables struct {
	Player          object.PlayerStats `yaml:"player"`
	Spawn           SpawnTunables      `yaml:"spawn"`
	PowerUpDuration time.Duration      `yaml:"powerUpDuration"`
	PointsPerLevel  int                `yaml:"pointsPerLevel"`

	// MaxFrameDelta caps the time a single tick may simulate. Zero disables the cap.
	MaxFrameDelta time.Duration `yaml:"maxFrameDelta"`
}

// DefaultTunables returns the stock game.
func DefaultTunables() Tunables {
	return Tunables{
		Player: object.DefaultPlayerStats(),
		Spawn: SpawnTunables{
			EnemyInterval:     1500 * time.Millisecond,
			EnemyIntervalStep: 10 * time.Millisecond,
			MinEnemyInterval:  300 * time.Millisecond,
			PowerUpInterval:   10 * time.Second,
			BossEvery:         5000,
			BossWindow:        100,
			SwarmMin:          5,
			SwarmMax:          9,
		},
		PowerUpDuration: object.PowerUpDuration,
		PointsPerLevel:  1000,
		MaxFrameDelta:   250 * time.Millisecond,
	}
}

// Validate reports the first out-of-range field.
func (t Tunables) Validate() error {
	p := t.Player
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: player size %vx%v", ErrInvalidTunables, p.Width, p.Height)
	case p.Speed < 0:
		return fmt.Errorf("%w: player speed %v", ErrInvalidTunables, p.Speed)
	case p.Lives < 1:
		return fmt.Errorf("%w: player lives %d", ErrInvalidTunables, p.Lives)
	case p.FireRate <= 0:
		return fmt.Errorf("%w: player fire rate %v", ErrInvalidTunables, p.FireRate)
	}

	s := t.Spawn
	switch {
	case s.EnemyInterval <= 0 || s.MinEnemyInterval <= 0:
		return fmt.Errorf("%w: enemy interval %v (min %v)", ErrInvalidTunables, s.EnemyInterval, s.MinEnemyInterval)
	case s.MinEnemyInterval > s.EnemyInterval:
		return fmt.Errorf("%w: min enemy interval %v above starting interval %v", ErrInvalidTunables, s.MinEnemyInterval, s.EnemyInterval)
	case s.EnemyIntervalStep < 0:
		return fmt.Errorf("%w: enemy interval step %v", ErrInvalidTunables, s.EnemyIntervalStep)
	case s.PowerUpInterval <= 0:
		return fmt.Errorf("%w: power-up interval %v", ErrInvalidTunables, s.PowerUpInterval)
	case s.BossEvery <= 0 || s.BossWindow <= 0 || s.BossWindow > s.BossEvery:
		return fmt.Errorf("%w: boss window %d of %d", ErrInvalidTunables, s.BossWindow, s.BossEvery)
	case s.SwarmMin < 1 || s.SwarmMax < s.SwarmMin:
		return fmt.Errorf("%w: swarm size %d..%d", ErrInvalidTunables, s.SwarmMin, s.SwarmMax)
	}

	switch {
	case t.PowerUpDuration <= 0:
		return fmt.Errorf("%w: power-up duration %v", ErrInvalidTunables, t.PowerUpDuration)
	case t.PointsPerLevel <= 0:
		return fmt.Errorf("%w: points per level %d", ErrInvalidTunables, t.PointsPerLevel)
	case t.MaxFrameDelta < 0:
		return fmt.Errorf("%w: max frame delta %v", ErrInvalidTunables, t.MaxFrameDelta)
	}
	return nil
}
