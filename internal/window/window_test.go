package window

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/cosmicdefender/internal/game"
)

func keySet(ks ...ebiten.Key) func(ebiten.Key) bool {
	set := make(map[ebiten.Key]bool, len(ks))
	for _, k := range ks {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestIntents(t *testing.T) {
	tests := []struct {
		name    string
		pressed []ebiten.Key
		just    []ebiten.Key
		want    game.Intents
		quit    bool
	}{
		{"none", nil, nil, game.Intents{}, false},
		{"arrows", []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowUp}, nil, game.Intents{Left: true, Up: true}, false},
		{"wasd", []ebiten.Key{ebiten.KeyD, ebiten.KeyS}, nil, game.Intents{Right: true, Down: true}, false},
		{"fire held", []ebiten.Key{ebiten.KeySpace}, nil, game.Intents{Fire: true}, false},
		{"space pressed", []ebiten.Key{ebiten.KeySpace}, []ebiten.Key{ebiten.KeySpace}, game.Intents{Fire: true, StartOrRestart: true}, false},
		{"enter", nil, []ebiten.Key{ebiten.KeyEnter}, game.Intents{StartOrRestart: true}, false},
		{"escape", nil, []ebiten.Key{ebiten.KeyEscape}, game.Intents{PauseToggle: true}, false},
		{"p", nil, []ebiten.Key{ebiten.KeyP}, game.Intents{PauseToggle: true}, false},
		{"quit", nil, []ebiten.Key{ebiten.KeyQ}, game.Intents{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := keys{pressed: keySet(tt.pressed...), justPressed: keySet(tt.just...)}
			got, quit := k.intents()
			if got != tt.want || quit != tt.quit {
				t.Errorf("expected %+v/%v, got %+v/%v", tt.want, tt.quit, got, quit)
			}
		})
	}
}

func newTestApp(t *testing.T) (*App, *time.Time) {
	t.Helper()
	a := New(Options{Logger: log.New(io.Discard), Game: []game.Option{game.WithSeed(1, 2)}})
	now := a.start
	a.now = func() time.Time { return now }
	return a, &now
}

func TestUpdate(t *testing.T) {
	a, now := newTestApp(t)

	a.keys = keys{pressed: keySet(), justPressed: keySet(ebiten.KeySpace)}
	*now = now.Add(16 * time.Millisecond)
	if err := a.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if a.Game().State() != game.StatePlaying {
		t.Fatalf("expected playing, got %v", a.Game().State())
	}

	a.keys = keys{pressed: keySet(), justPressed: keySet(ebiten.KeyP)}
	*now = now.Add(16 * time.Millisecond)
	if err := a.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if a.Game().State() != game.StatePaused {
		t.Fatalf("expected paused, got %v", a.Game().State())
	}

	a.keys = keys{pressed: keySet(), justPressed: keySet(ebiten.KeyQ)}
	if err := a.Update(); err != ebiten.Termination {
		t.Errorf("expected termination, got %v", err)
	}
}

func TestLayout(t *testing.T) {
	a, _ := newTestApp(t)
	w, h := a.Layout(1920, 1080)
	if w != int(game.DefaultScreen.Width) || h != int(game.DefaultScreen.Height) {
		t.Errorf("expected the playfield size, got %dx%d", w, h)
	}
}
