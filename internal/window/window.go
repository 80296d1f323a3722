// Package window hosts a game in a desktop window with ebiten. It draws the
// same snapshots as the terminal host at full resolution.
package window

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/cosmicdefender/internal/audio"
	"github.com/tomz197/cosmicdefender/internal/game"
)

// Title is the window title.
const Title = "Cosmic Defender"

// Options configures the window host.
type Options struct {
	Logger *log.Logger
	Game   []game.Option
	Audio  *audio.Player // May be nil
	Scale  float64       // Window size relative to the playfield; 0 means 1
}

// App implements ebiten.Game around one game.
type App struct {
	game  *game.Game
	log   *log.Logger
	audio *audio.Player
	keys  keys
	start time.Time
	now   func() time.Time
	snap  game.Snapshot
	art   *palette
}

// New creates an App. It does not open a window.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	g := game.New(append([]game.Option{game.WithLogger(logger)}, opts.Game...)...)
	now := time.Now
	return &App{
		game:  g,
		log:   logger,
		audio: opts.Audio,
		keys:  keys{pressed: ebiten.IsKeyPressed, justPressed: inpututil.IsKeyJustPressed},
		start: now(),
		now:   now,
		snap:  g.Snapshot(),
		art:   newPalette(),
	}
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(opts Options) error {
	app := New(opts)
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	screen := app.snap.Screen
	ebiten.SetWindowSize(int(screen.Width*scale), int(screen.Height*scale))
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(app)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Game returns the hosted game.
func (a *App) Game() *game.Game {
	return a.game
}

// Update reads the keyboard and advances the game by one tick.
func (a *App) Update() error {
	in, quit := a.keys.intents()
	if quit {
		return ebiten.Termination
	}

	prev := a.snap.State
	a.snap = a.game.Tick(a.now().Sub(a.start), in)
	events := a.game.Events()
	if a.audio != nil {
		a.audio.HandleEvents(events)
	}
	for _, e := range events {
		if e.Kind == game.EventGameOver {
			a.log.Info("game over", "score", e.Value)
		}
	}
	if a.snap.State != prev {
		a.log.Debug("state changed", "state", a.snap.State)
	}
	return nil
}

// Layout keeps the logical playfield size and lets ebiten scale it.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.snap.Screen.Width), int(a.snap.Screen.Height)
}

// keys turns keyboard state into intents. Ebiten reports releases, so
// movement needs no hold window.
type keys struct {
	pressed     func(ebiten.Key) bool
	justPressed func(ebiten.Key) bool
}

func (k keys) any(pressed func(ebiten.Key) bool, ks ...ebiten.Key) bool {
	for _, key := range ks {
		if pressed(key) {
			return true
		}
	}
	return false
}

// intents returns this tick's intents and whether the player asked to quit.
func (k keys) intents() (game.Intents, bool) {
	in := game.Intents{
		Left:           k.any(k.pressed, ebiten.KeyArrowLeft, ebiten.KeyA),
		Right:          k.any(k.pressed, ebiten.KeyArrowRight, ebiten.KeyD),
		Up:             k.any(k.pressed, ebiten.KeyArrowUp, ebiten.KeyW),
		Down:           k.any(k.pressed, ebiten.KeyArrowDown, ebiten.KeyS),
		Fire:           k.pressed(ebiten.KeySpace),
		PauseToggle:    k.any(k.justPressed, ebiten.KeyP, ebiten.KeyEscape),
		StartOrRestart: k.any(k.justPressed, ebiten.KeySpace, ebiten.KeyEnter),
	}
	return in, k.justPressed(ebiten.KeyQ)
}
