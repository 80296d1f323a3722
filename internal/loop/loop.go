// Package loop hosts a game in an ANSI terminal: it reads key bytes, ticks the
// simulation at a fixed frame rate and draws each snapshot with colour
// half-blocks. The same loop serves the local binary and every SSH session.
package loop

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/cosmicdefender/internal/audio"
	"github.com/tomz197/cosmicdefender/internal/config"
	"github.com/tomz197/cosmicdefender/internal/draw"
	"github.com/tomz197/cosmicdefender/internal/game"
	"github.com/tomz197/cosmicdefender/internal/input"
	"github.com/tomz197/cosmicdefender/internal/object"
)

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Logger       *log.Logger
	Game         []game.Option // Extra options for the session's game
	Hold         time.Duration // Key-hold window; 0 selects input.DefaultHold

	// Reload receives the path of a changed tunables file. The new tunables
	// take effect at the next game start.
	Reload <-chan string

	// Audio plays event cues. May be nil.
	Audio *audio.Player

	// IdleTimeout disconnects a session without key presses for this long.
	// Zero never disconnects.
	IdleTimeout time.Duration

	// Shutdown is closed when the server is going away. The session shows a
	// notice for ShutdownDisplay and then returns.
	Shutdown <-chan struct{}
}

// Session runs one player's game on one terminal.
type Session struct {
	game     *game.Game
	stream   *input.Stream
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	writer   io.Writer
	log      *log.Logger
	audio    *audio.Player
	termSize draw.TermSizeFunc
	reload   <-chan string
	shutdown <-chan struct{}
	idle     time.Duration

	toasts    *feed
	stars     []star
	colors    map[object.Color]colorful.Color
	state     sessionState
	start     time.Time
	lastInput time.Time
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r io.ByteReader, w io.Writer, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}

	gameOpts := append([]game.Option{game.WithLogger(logger)}, opts.Game...)
	g := game.New(gameOpts...)
	screen := g.Snapshot().Screen

	cols, rows, _ := termSize()
	vw, vh, offCol, offRow := viewport(cols, rows, MaxTermWidth, MaxTermHeight, screen.Width/screen.Height)
	canvas := draw.NewScaledCanvas(vw, vh, screen.Width, screen.Height)
	canvas.SetOffset(offCol, offRow)

	now := time.Now()
	return &Session{
		game:      g,
		stream:    input.StartStream(r, opts.Hold),
		canvas:    canvas,
		cw:        draw.NewChunkWriter(w, offCol, offRow),
		writer:    w,
		log:       logger,
		audio:     opts.Audio,
		termSize:  termSize,
		reload:    opts.Reload,
		shutdown:  opts.Shutdown,
		idle:      opts.IdleTimeout,
		toasts:    newFeed(),
		colors:    make(map[object.Color]colorful.Color),
		stars:     newStars(rand.New(rand.NewPCG(uint64(now.UnixNano()), 0)), screen.Width, screen.Height),
		state:     sessionState{running: true, prevState: g.State()},
		start:     now,
		lastInput: now,
	}
}

// Run starts a session and blocks until the player quits, the input closes,
// the session idles out or ctx is cancelled.
func Run(ctx context.Context, r io.ByteReader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run(ctx)
}

// Game returns the session's game.
func (s *Session) Game() *game.Game {
	return s.game
}

// Run starts the frame loop with the Input → Update → Draw cycle.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	for s.state.running {
		frameStart := time.Now()
		select {
		case <-ctx.Done():
			s.state.running = false
			continue
		default:
		}

		if err := s.frame(frameStart); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			select {
			case <-ctx.Done():
			case <-time.After(TargetFrameTime - elapsed):
			}
		}
	}

	draw.ClearScreen(s.writer)
	return nil
}

// frame runs one iteration of the loop at host time now.
func (s *Session) frame(now time.Time) error {
	pause := s.processShutdown(now)
	in := s.processInput(now)
	if pause {
		in.PauseToggle = true
	}
	s.processReload(now)

	snap := s.game.Tick(now.Sub(s.start), in)
	s.processEvents(now, s.game.Events())

	if snap.State != s.state.prevState {
		s.stream.ResetKeyInput()
		s.state.prevState = snap.State
		if snap.State == game.StatePlaying {
			s.state.newHigh = false
		}
		s.log.Debug("state changed", "state", snap.State)
	}

	s.updateScreen()
	return s.drawFrame(now, snap)
}

// processInput reads pending keys and turns them into this tick's intents.
func (s *Session) processInput(now time.Time) game.Intents {
	f := s.stream.Read(now)

	if len(f.Pressed) > 0 {
		s.lastInput = now
		s.state.inactive = false
	} else if s.idle > 0 {
		idleFor := now.Sub(s.lastInput)
		switch {
		case idleFor > s.idle:
			s.log.Info("disconnecting idle session", "idle", idleFor.Round(time.Second))
			s.state.running = false
		case idleFor > s.idle*3/4:
			if !s.state.inactive && s.game.State() == game.StatePlaying {
				f.PauseToggle = true
			}
			s.state.inactive = true
		}
	}

	if f.Quit || (!s.state.shutdownAt.IsZero() && now.Sub(s.state.shutdownAt) > ShutdownDisplay) {
		s.state.running = false
	}

	in := f.Intents
	if s.game.State() == game.StateGameOver && now.Sub(s.state.gameOverAt) < RestartGrace {
		in.StartOrRestart = false
	}
	if !s.state.shutdownAt.IsZero() {
		in.StartOrRestart = false
		in.PauseToggle = false
	}
	return in
}

// processReload validates a changed tunables file and schedules it.
func (s *Session) processReload(now time.Time) {
	select {
	case path, ok := <-s.reload:
		if !ok {
			s.reload = nil
			return
		}
		t, err := config.LoadTunables(path)
		if err == nil {
			err = s.game.Configure(t)
		}
		if err != nil {
			s.log.Warn("ignoring tunables", "path", path, "err", err)
			s.toasts.push(now, Toast{Title: "Settings Rejected", Detail: "Check the log for details.", Color: toastRed})
			return
		}
		s.log.Info("reloaded tunables", "path", path)
		s.toasts.push(now, Toast{Title: "Settings Reloaded", Detail: "Applied on the next game.", Color: toastWhite})
	default:
	}
}

// processShutdown starts the shutdown notice and reports whether a running
// game has to be paused for it.
func (s *Session) processShutdown(now time.Time) bool {
	if s.shutdown == nil || !s.state.shutdownAt.IsZero() {
		return false
	}
	select {
	case <-s.shutdown:
		s.state.shutdownAt = now
		return s.game.State() == game.StatePlaying
	default:
		return false
	}
}

// processEvents feeds the notification feed and the audio cues.
func (s *Session) processEvents(now time.Time, events []game.Event) {
	for _, e := range events {
		switch e.Kind {
		case game.EventGameStarted:
			s.toasts.clear()
		case game.EventGameOver:
			s.state.gameOverAt = now
			s.log.Info("game over", "score", e.Value)
		case game.EventNewHighScore:
			s.state.newHigh = true
		}
		if t, ok := toastFor(e); ok {
			s.toasts.push(now, t)
		}
	}
	if s.audio != nil {
		s.audio.HandleEvents(events)
	}
}

// updateScreen handles terminal resize. On a size change it clears the
// terminal to remove residue outside the new canvas area.
func (s *Session) updateScreen() {
	cols, rows, err := s.termSize()
	if err != nil {
		return
	}
	screen := s.canvas
	w, h, offCol, offRow := viewport(cols, rows, MaxTermWidth, MaxTermHeight, screen.LogicalWidth()/screen.LogicalHeight())

	if w != screen.TerminalWidth() || h != screen.TerminalHeight() ||
		offCol != screen.OffsetCol() || offRow != screen.OffsetRow() {
		s.cw.Clear()
		screen.ForceRedraw()
	}
	screen.Resize(w, h)
	screen.SetOffset(offCol, offRow)
	s.cw.SetOffset(offCol, offRow)
}
