// Package input turns raw terminal bytes into game intents.
//
// Terminals report key presses and auto-repeats but never releases, so a
// movement key counts as held for a short window after its last byte.
package input

import (
	"io"
	"time"

	"github.com/tomz197/cosmicdefender/internal/game"
)

// DefaultHold is how long a key is considered held after its last press.
// It has to bridge the terminal's initial auto-repeat delay.
const DefaultHold = 150 * time.Millisecond

// Frame is the input for one tick.
type Frame struct {
	game.Intents
	Quit    bool
	Pressed []byte // Raw bytes received since the previous frame
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	fire  time.Time
}

// Stream delivers input bytes via a channel and tracks key state.
type Stream struct {
	ch     chan byte
	closed bool
	hold   time.Duration
	state  keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// hold <= 0 selects DefaultHold.
func StartStream(r io.ByteReader, hold time.Duration) *Stream {
	s := NewStream(hold)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// NewStream creates a stream fed through Feed instead of a reader.
func NewStream(hold time.Duration) *Stream {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Stream{ch: make(chan byte, 128), hold: hold}
}

// Feed queues bytes as if they were read from the terminal.
func (s *Stream) Feed(b ...byte) {
	for _, c := range b {
		s.ch <- c
	}
}

// Closed reports whether the reader has hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput forgets every held key, e.g. when the game changes state.
func (s *Stream) ResetKeyInput() {
	s.state = keyState{}
}

// Read drains all available bytes (non-blocking) and returns the frame at now.
func (s *Stream) Read(now time.Time) Frame {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	f := s.parse(buf, now)
	if s.closed {
		f.Quit = true
	}
	return f
}

// press records a key and releases its opposite direction.
func (s *Stream) press(key, opposite *time.Time, now time.Time) {
	*key = now
	*opposite = time.Time{}
}

// parse updates key state from buf and builds the frame.
// Edge intents are set only by bytes received in this frame.
func (s *Stream) parse(buf []byte, now time.Time) Frame {
	var f Frame
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			// CSI sequence: ESC [ <code>
			if i+2 < len(buf) && buf[i+1] == '[' {
				switch buf[i+2] {
				case 'A':
					s.press(&s.state.up, &s.state.down, now)
				case 'B':
					s.press(&s.state.down, &s.state.up, now)
				case 'C':
					s.press(&s.state.right, &s.state.left, now)
				case 'D':
					s.press(&s.state.left, &s.state.right, now)
				}
				i += 2
				continue
			}
			// A lone escape.
			f.PauseToggle = true
			continue
		}

		switch b {
		case 'q', 'Q', '\x03':
			f.Quit = true
		case 'a', 'A', 'h', 'H':
			s.press(&s.state.left, &s.state.right, now)
		case 'd', 'D', 'l', 'L':
			s.press(&s.state.right, &s.state.left, now)
		case 'w', 'W', 'k', 'K':
			s.press(&s.state.up, &s.state.down, now)
		case 's', 'S', 'j', 'J':
			s.press(&s.state.down, &s.state.up, now)
		case ' ':
			s.state.fire = now
			f.StartOrRestart = true
		case '\n', '\r':
			f.StartOrRestart = true
		case 'p', 'P':
			f.PauseToggle = true
		}
	}

	held := func(t time.Time) bool {
		return !t.IsZero() && now.Sub(t) < s.hold
	}
	f.Left = held(s.state.left)
	f.Right = held(s.state.right)
	f.Up = held(s.state.up)
	f.Down = held(s.state.down)
	f.Fire = held(s.state.fire)
	f.Pressed = buf
	return f
}
