package loop

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tomz197/cosmicdefender/internal/game"
)

// screenID identifies which full screen a frame shows.
type screenID struct {
	state    game.State
	inactive bool
	shutdown bool
}

// sessionState holds per-connection state the game itself does not track.
type sessionState struct {
	running    bool
	prevState  game.State
	inactive   bool      // Idle warning is showing
	gameOverAt time.Time // When the last game ended
	shutdownAt time.Time // When the shutdown notice appeared; zero if none
	newHigh    bool      // The last game set a new high score
	drawn      screenID  // Screen shown by the previous frame
}

// star is one point of the scrolling backdrop.
type star struct {
	x, y  float64
	layer int // 0 is the farthest and slowest
}

func newStars(rng *rand.Rand, w, h float64) []star {
	stars := make([]star, starCount)
	for i := range stars {
		stars[i] = star{x: rng.Float64() * w, y: rng.Float64() * h, layer: i % starLayers}
	}
	return stars
}

// at returns the star's y at host time t.
func (s star) at(t time.Duration, h float64) float64 {
	speed := 0.01 * float64(s.layer+1) // Logical units per millisecond
	return math.Mod(s.y+float64(t.Milliseconds())*speed, h)
}

// viewport fits a 4:3 play area (square sub-pixels) into cols x rows and
// returns its size and centering offset.
func viewport(cols, rows, maxCols, maxRows int, aspect float64) (w, h, offCol, offRow int) {
	availW, availH := min(cols, maxCols), min(rows, maxRows)
	w, h = availW, availH

	// Each row holds two sub-pixels.
	if want := int(math.Round(float64(h*2) * aspect)); want < w {
		w = want
	} else if want := int(math.Round(float64(w) / aspect / 2)); want < h {
		h = want
	}
	w, h = max(w, 1), max(h, 1)
	return w, h, (cols - w) / 2, (rows - h) / 2
}
