package window

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/cosmicdefender/internal/draw"
	"github.com/tomz197/cosmicdefender/internal/game"
	"github.com/tomz197/cosmicdefender/internal/object"
)

// Debug font cell size, used to center text.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	background = color.RGBA{A: 0xff}
	overlay    = color.RGBA{A: 0xa0}
	healthGood = draw.Hex("#00ff00")
	healthLow  = draw.Hex("#ff0000")
)

// palette caches parsed entity colours.
type palette struct {
	colors map[object.Color]colorful.Color
}

func newPalette() *palette {
	return &palette{colors: make(map[object.Color]colorful.Color)}
}

func (p *palette) get(c object.Color) colorful.Color {
	if v, ok := p.colors[c]; ok {
		return v
	}
	v := draw.Hex(string(c))
	p.colors[c] = v
	return v
}

// withAlpha returns c with opacity alpha in [0, 1].
func withAlpha(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 0xff))}
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

// fillTriangle fills an upward triangle inside the box one row at a time.
func fillTriangle(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	cx := x + w/2
	for i := 0.0; i < h; i++ {
		rw := w * (i + 1) / h
		fillRect(dst, cx-rw/2, y+i, rw, 1, c)
	}
}

// Draw renders the latest snapshot.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := a.snap
	if snap.State != game.StateMenu {
		a.drawWorld(screen, snap)
		a.drawHUD(screen, snap)
	}

	switch snap.State {
	case game.StateMenu:
		a.drawMenu(screen, snap)
	case game.StatePaused:
		fillRect(screen, 0, 0, snap.Screen.Width, snap.Screen.Height, overlay)
		lines(screen, snap.Screen, "PAUSED", "", "Press ESC or P to continue")
	case game.StateGameOver:
		fillRect(screen, 0, 0, snap.Screen.Width, snap.Screen.Height, overlay)
		best := fmt.Sprintf("High Score: %d", snap.HighScore)
		if snap.Score > 0 && snap.Score >= snap.HighScore {
			best = "New High Score!"
		}
		lines(screen, snap.Screen, "GAME OVER", "", fmt.Sprintf("Score: %d", snap.Score), best, "", "Press SPACE to restart or Q to quit")
	}
}

func (a *App) drawWorld(screen *ebiten.Image, snap game.Snapshot) {
	for i := range snap.PowerUps {
		p := &snap.PowerUps[i]
		cx, cy := p.Center()
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(p.W/2), a.art.get(p.Kind.Color()), true)
	}

	for i := range snap.Enemies {
		e := &snap.Enemies[i]
		col := a.art.get(e.Archetype.Color())
		if e.Archetype == object.Hunter {
			cx, cy := e.Center()
			vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(e.W/2), col, true)
		} else {
			fillRect(screen, e.X, e.Y, e.W, e.H, col)
		}
		if e.MaxHealth > 1 {
			bar := healthGood
			if e.Health <= 2 {
				bar = healthLow
			}
			fillRect(screen, e.X, e.Y-8, e.W*e.HealthFraction(), 4, bar)
		}
	}

	for i := range snap.Projectiles {
		p := &snap.Projectiles[i]
		fillRect(screen, p.X, p.Y, p.W, p.H, a.art.get(p.Owner.Color()))
	}

	if snap.State != game.StateGameOver {
		pl := snap.Player
		fillTriangle(screen, pl.X, pl.Y, pl.W, pl.H, a.art.get(game.PlayerColor))
		if pl.ShieldActive {
			pad := 8.0
			vector.StrokeRect(screen, float32(pl.X-pad), float32(pl.Y-pad), float32(pl.W+2*pad), float32(pl.H+2*pad),
				2, a.art.get(object.Shield.Color()), false)
		}
	}

	for i := range snap.Particles {
		p := &snap.Particles[i]
		fillRect(screen, p.X-p.Size/2, p.Y-p.Size/2, p.Size, p.Size, withAlpha(a.art.get(p.Color), p.Alpha()))
	}
}

func (a *App) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	w := int(snap.Screen.Width)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), 10, 8)
	level := fmt.Sprintf("Level %d", snap.Level)
	ebitenutil.DebugPrintAt(screen, level, (w-len(level)*glyphWidth)/2, 8)
	high := fmt.Sprintf("High Score: %d", max(snap.HighScore, snap.Score))
	ebitenutil.DebugPrintAt(screen, high, w-10-len(high)*glyphWidth, 8)

	for i := range snap.Player.Lives {
		fillTriangle(screen, 10+float64(i)*20, 30, 14, 12, a.art.get(game.PlayerColor))
	}

	y := 30
	for _, e := range snap.Effects {
		label := fmt.Sprintf("%s %ds", e.Kind.Label(), int(math.Ceil(e.Remaining.Seconds())))
		fillRect(screen, float64(w-20-len(label)*glyphWidth), float64(y+4), 8, 8, a.art.get(e.Kind.Color()))
		ebitenutil.DebugPrintAt(screen, label, w-10-len(label)*glyphWidth, y)
		y += glyphHeight
	}
}

func (a *App) drawMenu(screen *ebiten.Image, snap game.Snapshot) {
	lines(screen, snap.Screen,
		strings.ToUpper(Title),
		"",
		"Controls",
		"Arrows / WASD  move",
		"SPACE          fire",
		"P / ESC        pause",
		"Q              quit",
		"",
		"Press SPACE to Start",
		"",
		fmt.Sprintf("High Score: %d", snap.HighScore),
	)
}

// lines prints a block of centered lines in the middle of the screen.
func lines(screen *ebiten.Image, s object.Screen, text ...string) {
	y := (int(s.Height) - len(text)*glyphHeight) / 2
	for _, t := range text {
		ebitenutil.DebugPrintAt(screen, t, (int(s.Width)-len(t)*glyphWidth)/2, y)
		y += glyphHeight
	}
}
