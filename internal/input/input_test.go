package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	now := time.Unix(1000, 0)
	testCases := []struct {
		name  string
		in    string
		check func(f Frame) bool
	}{
		{"arrow left", "\x1b[D", func(f Frame) bool { return f.Left && !f.Right }},
		{"arrow up", "\x1b[A", func(f Frame) bool { return f.Up && !f.PauseToggle }},
		{"wasd right", "d", func(f Frame) bool { return f.Right }},
		{"space fires and starts", " ", func(f Frame) bool { return f.Fire && f.StartOrRestart }},
		{"enter starts", "\r", func(f Frame) bool { return f.StartOrRestart && !f.Fire }},
		{"p pauses", "p", func(f Frame) bool { return f.PauseToggle }},
		{"lone escape pauses", "\x1b", func(f Frame) bool { return f.PauseToggle }},
		{"quit", "q", func(f Frame) bool { return f.Quit }},
		{"ctrl-c quits", "\x03", func(f Frame) bool { return f.Quit }},
		{"combination", "a \x1b[A", func(f Frame) bool { return f.Left && f.Up && f.Fire }},
		{"opposite releases", "ad", func(f Frame) bool { return f.Right && !f.Left }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStream(DefaultHold)
			f := s.parse([]byte(tc.in), now)
			if !tc.check(f) {
				t.Errorf("unexpected frame %+v", f)
			}
		})
	}
}

func TestHoldWindow(t *testing.T) {
	s := NewStream(100 * time.Millisecond)
	start := time.Unix(1000, 0)

	f := s.parse([]byte("a "), start)
	if !f.Left || !f.Fire || !f.StartOrRestart {
		t.Fatalf("unexpected first frame %+v", f)
	}

	f = s.parse(nil, start.Add(50*time.Millisecond))
	if !f.Left || !f.Fire {
		t.Error("keys released inside the hold window")
	}
	if f.StartOrRestart {
		t.Error("edge intent repeated without a new press")
	}

	f = s.parse(nil, start.Add(150*time.Millisecond))
	if f.Left || f.Fire {
		t.Error("keys still held after the window")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := NewStream(time.Second)
	now := time.Unix(1000, 0)
	s.parse([]byte("w"), now)
	s.ResetKeyInput()
	if f := s.parse(nil, now); f.Up {
		t.Error("key still held after reset")
	}
}

func TestStreamReadsReader(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d")), DefaultHold)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f := s.Read(time.Now())
		if f.Quit {
			if !s.Closed() {
				t.Error("quit without a closed stream")
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("stream never reported EOF")
}

func TestFeed(t *testing.T) {
	s := NewStream(DefaultHold)
	s.Feed('p')
	if f := s.Read(time.Now()); !f.PauseToggle || string(f.Pressed) != "p" {
		t.Errorf("unexpected frame %+v", f)
	}
}
