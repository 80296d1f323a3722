// Package game is the Cosmic Defender simulation: the lifecycle state machine,
// spawner, collision resolution, power-up effects and scoring.
//
// The host drives it by calling Tick once per frame with a monotonic timestamp
// and the current intents, then drains Events. A Game is not safe for
// concurrent use; a host serving several players runs one Game per player.
package game

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/cosmicdefender/internal/object"
)

// DefaultScreen is the logical playfield. Hosts scale it to their surface.
var DefaultScreen = object.Screen{Width: 800, Height: 600}

// world holds every entity collection of a running game.
type world struct {
	player      *object.Player
	enemies     object.Store[object.Enemy]
	projectiles object.Store[object.Projectile]
	powerUps    object.Store[object.PowerUp]
	particles   object.Store[object.Particle]
}

// EnemyFire adds a shot leaving e. Implements object.Shooter.
func (w *world) EnemyFire(e *object.Enemy) {
	w.projectiles.Add(object.NewEnemyShot(e))
}

func (w *world) bossAlive() bool {
	alive := false
	w.enemies.Each(func(_ int, e *object.Enemy) bool {
		alive = e.Archetype == object.Boss
		return !alive
	})
	return alive
}

func (w *world) reap() {
	w.enemies.Reap()
	w.projectiles.Reap()
	w.powerUps.Reap()
	w.particles.Reap()
}

func (w *world) clear() {
	w.enemies.Clear()
	w.projectiles.Clear()
	w.powerUps.Clear()
	w.particles.Clear()
}

// Game is one single-player session.
type Game struct {
	world

	tun     Tunables
	pending *Tunables // Applied on the next start
	screen  object.Screen
	rng     *rand.Rand
	log     *log.Logger
	scores  HighScoreStore

	state State

	// Host timestamps and the game clock, which only advances while playing.
	lastNow time.Duration
	hasNow  bool
	clock   time.Duration

	score     int
	level     int
	highScore int

	effects  ActivePowerUps
	spawner  spawner
	detector *detector
	events   []Event
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source. Use a seeded source for replays and tests.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithSeed seeds a PCG source.
func WithSeed(seed1, seed2 uint64) Option {
	return func(g *Game) { g.rng = rand.New(rand.NewPCG(seed1, seed2)) }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithHighScoreStore persists the high score in s.
func WithHighScoreStore(s HighScoreStore) Option {
	return func(g *Game) { g.scores = s }
}

// WithTunables replaces the default tunables. Invalid tunables are ignored.
func WithTunables(t Tunables) Option {
	return func(g *Game) { g.tun = t }
}

// WithScreen sets the logical playfield size.
func WithScreen(s object.Screen) Option {
	return func(g *Game) { g.screen = s }
}

// New creates a game in the menu state.
func New(opts ...Option) *Game {
	g := &Game{
		tun:    DefaultTunables(),
		screen: DefaultScreen,
		state:  StateMenu,
		level:  1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = log.Default()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if err := g.tun.Validate(); err != nil {
		g.log.Warn("using default tunables", "err", err)
		g.tun = DefaultTunables()
	}
	if g.screen.Width <= 0 || g.screen.Height <= 0 {
		g.screen = DefaultScreen
	}

	g.detector = newDetector(g.screen)
	g.spawner = newSpawner(g.tun.Spawn)
	g.player = object.NewPlayer(g.screen, g.tun.Player)
	g.loadHighScore()
	return g
}

// Configure validates t and schedules it for the next game start.
func (g *Game) Configure(t Tunables) error {
	if err := t.Validate(); err != nil {
		return err
	}
	g.pending = &t
	return nil
}

// State returns the lifecycle phase.
func (g *Game) State() State { return g.state }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// HighScore returns the best score known to this game.
func (g *Game) HighScore() int { return g.highScore }

// start resets the session and enters PLAYING.
func (g *Game) start() {
	if g.pending != nil {
		g.tun = *g.pending
		g.pending = nil
		g.log.Debug("applied new tunables")
	}

	g.clear()
	g.effects.Clear()
	g.spawner = newSpawner(g.tun.Spawn)
	g.player = object.NewPlayer(g.screen, g.tun.Player)
	g.clock = 0
	g.score = 0
	g.level = 1
	g.loadHighScore()

	g.setState(StatePlaying)
	g.emit(Event{Kind: EventGameStarted})
}

// Tick advances the game to host time now and returns the resulting snapshot.
// now must come from a monotonic source; a step backwards is treated as zero.
// Outside PLAYING only the lifecycle intents are processed.
func (g *Game) Tick(now time.Duration, in Intents) Snapshot {
	var delta time.Duration
	if g.hasNow {
		delta = max(0, now-g.lastNow)
	}
	g.lastNow, g.hasNow = now, true
	if limit := g.tun.MaxFrameDelta; limit > 0 {
		delta = min(delta, limit)
	}

	wasPlaying := g.state == StatePlaying
	g.applyLifecycle(in)
	if g.state != StatePlaying {
		return g.Snapshot()
	}
	if !wasPlaying {
		// Time spent outside PLAYING is not played time.
		delta = 0
	}
	g.clock += delta

	ctx := object.UpdateContext{
		Delta:   delta,
		Now:     g.clock,
		Screen:  g.screen,
		Rand:    g.rng,
		Shooter: &g.world,
	}

	g.player.Controls = object.Controls{Left: in.Left, Right: in.Right, Up: in.Up, Down: in.Down, Fire: in.Fire}
	g.player.Update(ctx)
	for _, shot := range g.player.TryFire(g.clock, g.effects.Active(object.RapidFire), g.effects.Active(object.TripleShot)) {
		g.projectiles.Add(shot)
	}
	ctx.Target = g.player.Rect

	g.spawner.update(g)
	g.updateEntities(ctx)

	g.detector.detect(&g.world, g)
	if g.state == StatePlaying {
		g.expirePowerUps()
		g.checkLevel()
	}

	g.particles.Each(func(i int, p *object.Particle) bool {
		if p.Update(ctx) {
			g.particles.Kill(i)
		}
		return true
	})
	g.reap()

	return g.Snapshot()
}

// updateEntities applies one tick of kinematics to enemies, projectiles and power-ups.
func (g *Game) updateEntities(ctx object.UpdateContext) {
	g.enemies.Each(func(i int, e *object.Enemy) bool {
		if e.Update(ctx) {
			g.enemies.Kill(i)
		}
		return true
	})
	g.projectiles.Each(func(i int, p *object.Projectile) bool {
		if p.Update(ctx) {
			g.projectiles.Kill(i)
		}
		return true
	})
	g.powerUps.Each(func(i int, p *object.PowerUp) bool {
		if p.Update(ctx) {
			g.powerUps.Kill(i)
		}
		return true
	})
}
