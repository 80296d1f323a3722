package loop

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/cosmicdefender/internal/draw"
	"github.com/tomz197/cosmicdefender/internal/game"
	"github.com/tomz197/cosmicdefender/internal/object"
)

var (
	playerColor   = draw.Hex(string(game.PlayerColor))
	shieldColor   = draw.Hex(string(object.Shield.Color()))
	healthGood    = draw.Hex("#00ff00")
	healthLow     = draw.Hex("#ff0000")
	starColors    = [starLayers]colorful.Color{draw.Hex("#555577"), draw.Hex("#8888aa"), draw.Hex("#ccccee")}
	effectSymbols = [object.TimedKinds]string{
		object.TripleShot: "⟪⟫",
		object.RapidFire:  "⚡",
		object.Shield:     "⊙",
	}
)

// hex parses an entity colour once per session and reuses it.
func (s *Session) hex(c object.Color) colorful.Color {
	if v, ok := s.colors[c]; ok {
		return v
	}
	v := draw.Hex(string(c))
	s.colors[c] = v
	return v
}

// drawWorld paints the starfield and every entity of snap onto the canvas.
func (s *Session) drawWorld(now time.Time, snap game.Snapshot) {
	c := s.canvas
	t := now.Sub(s.start)
	for _, st := range s.stars {
		c.SetFloat(st.x, st.at(t, snap.Screen.Height), starColors[st.layer])
	}

	if snap.State == game.StateMenu {
		return
	}

	for i := range snap.PowerUps {
		p := &snap.PowerUps[i]
		c.DrawPolygon(draw.Diamond(p.X, p.Y, p.W, p.H), true, s.hex(p.Kind.Color()))
	}

	for i := range snap.Enemies {
		e := &snap.Enemies[i]
		col := s.hex(e.Archetype.Color())
		if e.Archetype == object.Hunter {
			c.DrawPolygon(draw.Diamond(e.X, e.Y, e.W, e.H), true, col)
		} else {
			c.FillRect(e.X, e.Y, e.W, e.H, col)
		}
		if e.MaxHealth > 1 {
			bar := healthGood
			if e.Health <= 2 {
				bar = healthLow
			}
			c.FillRect(e.X, e.Y-8, e.W*e.HealthFraction(), 4, bar)
		}
	}

	for i := range snap.Projectiles {
		p := &snap.Projectiles[i]
		c.FillRect(p.X, p.Y, p.W, p.H, s.hex(p.Owner.Color()))
	}

	if snap.State != game.StateGameOver {
		pl := snap.Player
		c.DrawPolygon(draw.Triangle(pl.X, pl.Y, pl.W, pl.H), true, playerColor)
		if pl.ShieldActive {
			c.DrawPolygon(draw.Box(pl.X, pl.Y, pl.W, pl.H, 8), false, shieldColor)
		}
	}

	for i := range snap.Particles {
		p := &snap.Particles[i]
		col := draw.Fade(s.hex(p.Color), draw.Black, p.Alpha())
		c.FillRect(p.X-p.Size/2, p.Y-p.Size/2, p.Size, p.Size, col)
	}
}

// text writes s at a canvas position and marks the cells for repainting.
func (s *Session) text(col, row int, str string, c colorful.Color) {
	w := s.canvas.TerminalWidth()
	if row < 1 || row > s.canvas.TerminalHeight() || col > w {
		return
	}
	if col < 1 {
		col = 1
	}
	if n := draw.TextWidth(str); col+n-1 > w {
		str = string([]rune(str)[:max(w-col+1, 0)])
	}
	s.cw.WriteColored(col, row, str, c)
	s.canvas.MarkTextDirty(col, row, draw.TextWidth(str))
}

// centered writes str centered on row.
func (s *Session) centered(row int, str string, c colorful.Color) {
	s.text((s.canvas.TerminalWidth()-draw.TextWidth(str))/2+1, row, str, c)
}

// drawHUD draws score, level, high score, lives, active effects and toasts.
// Fields are padded so shrinking values don't leave residue behind.
func (s *Session) drawHUD(now time.Time, snap game.Snapshot) {
	width := s.canvas.TerminalWidth()

	s.text(2, 1, fmt.Sprintf("Score: %-8d", snap.Score), draw.White)
	s.centered(1, fmt.Sprintf("Level %d", snap.Level), draw.White)
	high := fmt.Sprintf("High Score: %8d", max(snap.HighScore, snap.Score))
	s.text(width-draw.TextWidth(high), 1, high, draw.White)

	lives := strings.Repeat("▲ ", snap.Player.Lives) + strings.Repeat("  ", max(snap.Player.MaxLives-snap.Player.Lives, 0))
	s.text(2, 2, lives, playerColor)

	row := 2
	for _, e := range snap.Effects {
		secs := int(math.Ceil(e.Remaining.Seconds()))
		label := fmt.Sprintf("%s %2ds", effectSymbol(e.Kind), secs)
		s.text(width-draw.TextWidth(label), row, label, s.hex(e.Kind.Color()))
		row++
	}

	for i, t := range s.toasts.visible(now) {
		s.centered(3+i, t.Text(), t.Color)
	}
}

func effectSymbol(k object.Kind) string {
	if k.Timed() {
		return effectSymbols[k]
	}
	return "?"
}
