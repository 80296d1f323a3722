package game

// State is the top-level lifecycle phase of a game.
type State int

const (
	StateMenu     State = iota // Title screen, nothing simulated yet
	StatePlaying               // Active gameplay
	StatePaused                // Frozen until resumed
	StateGameOver              // Lives ran out, waiting for restart
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Intents are the logical inputs supplied to one tick.
// Movement and Fire are levels; PauseToggle and StartOrRestart are edges and
// should be true only on the tick the key was pressed.
type Intents struct {
	Left, Right, Up, Down bool
	Fire                  bool

	PauseToggle    bool
	StartOrRestart bool
}

// applyLifecycle runs the state machine edges for one tick.
func (g *Game) applyLifecycle(in Intents) {
	if in.StartOrRestart && (g.state == StateMenu || g.state == StateGameOver) {
		g.start()
	}
	if !in.PauseToggle {
		return
	}
	switch g.state {
	case StatePlaying:
		g.setState(StatePaused)
		g.emit(Event{Kind: EventPaused})
	case StatePaused:
		g.setState(StatePlaying)
		g.emit(Event{Kind: EventResumed})
	}
}

func (g *Game) setState(s State) {
	if g.state == s {
		return
	}
	g.log.Debug("state change", "from", g.state, "to", s, "score", g.score)
	g.state = s
}
