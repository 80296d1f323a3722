package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/cosmicdefender/internal/config"
	"github.com/tomz197/cosmicdefender/internal/game"
	"github.com/tomz197/cosmicdefender/internal/input"
	"github.com/tomz197/cosmicdefender/internal/object"
)

// newTestSession returns a session on an 80x24 terminal whose keys are fed
// through the returned stream.
func newTestSession(t *testing.T, opts Options) (*Session, *input.Stream, *bytes.Buffer) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	opts.TermSizeFunc = func() (int, int, error) { return 80, 24, nil }
	opts.Logger = log.New(io.Discard)
	opts.Game = append(opts.Game, game.WithSeed(1, 2))

	var out bytes.Buffer
	s := NewSession(bufio.NewReader(pr), &out, opts)
	stream := input.NewStream(0)
	s.stream = stream
	return s, stream, &out
}

func frameAt(t *testing.T, s *Session, out *bytes.Buffer, d time.Duration) string {
	t.Helper()
	out.Reset()
	if err := s.frame(s.start.Add(d)); err != nil {
		t.Fatalf("frame: %v", err)
	}
	return out.String()
}

func TestSessionLifecycle(t *testing.T) {
	s, keys, out := newTestSession(t, Options{})

	screen := frameAt(t, s, out, 16*time.Millisecond)
	if !strings.Contains(screen, "Controls") {
		t.Error("expected the title screen")
	}

	keys.Feed(' ')
	screen = frameAt(t, s, out, 32*time.Millisecond)
	if s.Game().State() != game.StatePlaying {
		t.Fatalf("expected playing, got %v", s.Game().State())
	}
	for _, want := range []string{"Score: 0", "Level 1", "Game started!"} {
		if !strings.Contains(screen, want) {
			t.Errorf("expected %q on screen", want)
		}
	}

	keys.Feed('p')
	screen = frameAt(t, s, out, 48*time.Millisecond)
	if s.Game().State() != game.StatePaused {
		t.Fatalf("expected paused, got %v", s.Game().State())
	}
	if !strings.Contains(screen, "PAUSED") {
		t.Error("expected the pause overlay")
	}

	keys.Feed('q')
	frameAt(t, s, out, 64*time.Millisecond)
	if s.state.running {
		t.Error("expected q to stop the session")
	}
}

func TestSessionIdle(t *testing.T) {
	s, keys, out := newTestSession(t, Options{IdleTimeout: 4 * time.Second})

	keys.Feed(' ')
	frameAt(t, s, out, 16*time.Millisecond)

	screen := frameAt(t, s, out, 3500*time.Millisecond)
	if !strings.Contains(screen, "INACTIVITY WARNING") {
		t.Error("expected the idle warning")
	}
	if s.Game().State() != game.StatePaused {
		t.Errorf("expected an idle game to pause, got %v", s.Game().State())
	}
	if !s.state.running {
		t.Fatal("expected the session to still run during the warning")
	}

	frameAt(t, s, out, 5*time.Second)
	if s.state.running {
		t.Error("expected an idle session to stop")
	}
}

func TestSessionShutdown(t *testing.T) {
	shutdown := make(chan struct{})
	s, keys, out := newTestSession(t, Options{Shutdown: shutdown})

	keys.Feed(' ')
	frameAt(t, s, out, 16*time.Millisecond)

	close(shutdown)
	screen := frameAt(t, s, out, time.Second)
	if !strings.Contains(screen, "SERVER SHUTTING DOWN") {
		t.Error("expected the shutdown notice")
	}
	if s.Game().State() != game.StatePaused {
		t.Errorf("expected the game to pause, got %v", s.Game().State())
	}

	keys.Feed(' ')
	frameAt(t, s, out, 2*time.Second)
	if s.Game().State() != game.StatePaused {
		t.Errorf("expected input to be ignored during shutdown, got %v", s.Game().State())
	}

	frameAt(t, s, out, time.Second+ShutdownDisplay+time.Second)
	if s.state.running {
		t.Error("expected the session to stop after the notice")
	}
}

func TestSessionReload(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	f, err := os.Create(good)
	if err != nil {
		t.Fatal(err)
	}
	if err := config.WriteTunables(f, game.DefaultTunables()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("pointsPerLevel: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"valid", good, "Settings Reloaded"},
		{"invalid", bad, "Settings Rejected"},
		{"missing", filepath.Join(dir, "nope.yaml"), "Settings Rejected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reload := make(chan string, 1)
			s, _, out := newTestSession(t, Options{Reload: reload})
			reload <- tt.path
			frameAt(t, s, out, 16*time.Millisecond)

			items := s.toasts.visible(s.start.Add(16 * time.Millisecond))
			if len(items) != 1 || items[0].Title != tt.want {
				t.Errorf("expected toast %q, got %+v", tt.want, items)
			}
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestViewport(t *testing.T) {
	tests := []struct {
		name                 string
		cols, rows           int
		w, h, offCol, offRow int
	}{
		{"height bound", 80, 24, 64, 24, 8, 0},
		{"width bound", 40, 40, 40, 15, 0, 12},
		{"clamped", 200, 60, 160, 60, 20, 0},
		{"tiny", 1, 1, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := viewport(tt.cols, tt.rows, MaxTermWidth, MaxTermHeight, 4.0/3.0)
			if w != tt.w || h != tt.h || oc != tt.offCol || or != tt.offRow {
				t.Errorf("expected %d,%d,%d,%d got %d,%d,%d,%d",
					tt.w, tt.h, tt.offCol, tt.offRow, w, h, oc, or)
			}
		})
	}
}

func TestFeed(t *testing.T) {
	f := newFeed()
	now := time.Unix(0, 0)
	for i := range MaxToasts + 2 {
		f.push(now.Add(time.Duration(i)*time.Millisecond), Toast{Title: string(rune('a' + i))})
	}
	got := f.visible(now)
	if len(got) != MaxToasts {
		t.Fatalf("expected %d toasts, got %d", MaxToasts, len(got))
	}
	if got[0].Title != "c" {
		t.Errorf("expected the oldest entries dropped, first is %q", got[0].Title)
	}
	if n := len(f.visible(now.Add(ToastTTL + time.Second))); n != 0 {
		t.Errorf("expected every toast to expire, %d left", n)
	}
}

func TestToastFor(t *testing.T) {
	tests := []struct {
		event game.Event
		title string
		ok    bool
	}{
		{game.Event{Kind: game.EventLevelUp, Value: 3}, "Level Up!", true},
		{game.Event{Kind: game.EventShieldDown}, "Shield Down!", true},
		{game.Event{Kind: game.EventShipDamaged, Value: 2}, "Ship Damaged!", true},
		{game.Event{Kind: game.EventPowerUpActivated, PowerUp: object.TripleShot}, "Triple Shot!", true},
		{game.Event{Kind: game.EventPowerUpActivated, PowerUp: object.RapidFire}, "Rapid Fire!", true},
		{game.Event{Kind: game.EventPowerUpActivated, PowerUp: object.Shield}, "Shield Activated!", true},
		{game.Event{Kind: game.EventPowerUpActivated, PowerUp: object.Repair, Value: 3}, "Repair Kit!", true},
		{game.Event{Kind: game.EventPowerUpActivated, PowerUp: object.SmartBomb}, "Smart Bomb!", true},
		{game.Event{Kind: game.EventRepairNotNeeded}, "Ship at Full Health", true},
		{game.Event{Kind: game.EventPowerUpExpired, PowerUp: object.RapidFire}, "RapidFire Expired", true},
		{game.Event{Kind: game.EventNewHighScore, Value: 900}, "New High Score!", true},
		{game.Event{Kind: game.EventHit}, "", false},
		{game.Event{Kind: game.EventPowerUpActivated, PowerUp: object.Kind(42)}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.event.Kind.String(), func(t *testing.T) {
			got, ok := toastFor(tt.event)
			if ok != tt.ok || got.Title != tt.title {
				t.Errorf("expected %q/%v, got %q/%v", tt.title, tt.ok, got.Title, ok)
			}
		})
	}

	lv, _ := toastFor(game.Event{Kind: game.EventLevelUp, Value: 3})
	if lv.Text() != "Level Up!  Advanced to level 3" {
		t.Errorf("unexpected text %q", lv.Text())
	}
}

func TestStarWraps(t *testing.T) {
	st := star{x: 10, y: 590, layer: 0}
	y := st.at(2*time.Second, 600)
	if y < 0 || y >= 600 {
		t.Errorf("expected y inside the screen, got %v", y)
	}
}
