package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/cosmicdefender/internal/draw"
	"github.com/tomz197/cosmicdefender/internal/game"
)

var (
	titleColor  = draw.Hex("#33ccff")
	promptColor = draw.Hex("#ffcc00")
)

// Title art (figlet "small" font).
var titleArt = []string{
	`  ___ ___  ___ __  __ ___ ___   ___  ___ ___ ___ _  _ ___  ___ ___  `,
	` / __/ _ \/ __|  \/  |_ _/ __| |   \| __| __| __| \| |   \| __| _ \ `,
	`| (_| (_) \__ \ |\/| || | (__  | |) | _|| _|| _|| .' | |) | _||   / `,
	` \___\___/|___/_|  |_|___\___| |___/|___|_| |___|_|\_|___/|___|_|_\ `,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawFrame draws the current frame.
func (s *Session) drawFrame(now time.Time, snap game.Snapshot) error {
	// On state or inactivity transitions, do a full terminal clear so overlay
	// text from the previous screen does not persist.
	id := screenID{state: snap.State, inactive: s.state.inactive, shutdown: !s.state.shutdownAt.IsZero()}
	if id != s.state.drawn {
		s.cw.Clear()
		s.canvas.ForceRedraw()
		s.state.drawn = id
	}

	s.canvas.Clear()
	s.drawWorld(now, snap)
	if err := s.canvas.Render(s.cw); err != nil {
		return err
	}
	if err := s.canvas.RenderBorder(s.cw); err != nil {
		return err
	}

	s.drawUI(now, snap)
	return s.cw.Flush()
}

// drawUI draws the text layer over the canvas.
func (s *Session) drawUI(now time.Time, snap game.Snapshot) {
	centerY := s.canvas.TerminalHeight() / 2

	switch {
	case !s.state.shutdownAt.IsZero():
		s.drawShutdownScreen(now, centerY)
		return
	case s.state.inactive:
		s.drawInactivityScreen(now, centerY)
		return
	}

	switch snap.State {
	case game.StateMenu:
		s.drawStartScreen(now, centerY, snap)
	case game.StatePlaying:
		s.drawHUD(now, snap)
	case game.StatePaused:
		s.drawHUD(now, snap)
		s.drawPauseScreen(centerY)
	case game.StateGameOver:
		s.drawGameOverScreen(now, centerY, snap)
	}
}

// blink reports whether a blinking prompt is visible at now.
func blink(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}

func (s *Session) drawArt(top int, art []string) {
	width := 0
	for _, line := range art {
		width = max(width, draw.TextWidth(line))
	}
	if width > s.canvas.TerminalWidth() {
		return
	}
	col := (s.canvas.TerminalWidth()-width)/2 + 1
	for i, line := range art {
		s.text(col, top+i, line, titleColor)
	}
}

// drawStartScreen draws the title screen.
func (s *Session) drawStartScreen(now time.Time, centerY int, snap game.Snapshot) {
	top := centerY - 8
	if draw.TextWidth(titleArt[0]) <= s.canvas.TerminalWidth() {
		s.drawArt(top, titleArt)
	} else {
		s.centered(top+2, "C O S M I C   D E F E N D E R", titleColor)
	}

	controlsY := top + len(titleArt) + 2
	s.centered(controlsY, "Controls", draw.White)
	lines := []string{
		"Arrows / WASD . . . . Move",
		"SPACE . . . . . . . . Fire",
		"P / ESC . . . . . . Pause",
		"Q . . . . . . . . . . Quit",
	}
	for i, line := range lines {
		s.centered(controlsY+1+i, line, draw.Grey)
	}

	promptY := controlsY + len(lines) + 2
	if blink(now) {
		s.centered(promptY, ">>  Press SPACE to Start  <<", promptColor)
	}
	if snap.HighScore > 0 {
		s.centered(promptY+2, fmt.Sprintf("High Score: %d", snap.HighScore), draw.White)
	}
}

// drawPauseScreen draws the pause overlay on top of the frozen world.
func (s *Session) drawPauseScreen(centerY int) {
	s.centered(centerY-1, "PAUSED", draw.White)
	s.centered(centerY+1, "Press ESC or P to continue", draw.Grey)
}

// drawGameOverScreen draws the game over overlay.
func (s *Session) drawGameOverScreen(now time.Time, centerY int, snap game.Snapshot) {
	top := centerY - 6
	if draw.TextWidth(gameOverArt[0]) <= s.canvas.TerminalWidth() {
		s.drawArt(top, gameOverArt)
	} else {
		s.centered(top+2, "GAME OVER", toastRed)
	}

	y := top + len(gameOverArt) + 1
	s.centered(y, fmt.Sprintf("Score: %d", snap.Score), draw.White)
	if s.state.newHigh {
		s.centered(y+2, "New High Score!", promptColor)
	} else {
		s.centered(y+2, fmt.Sprintf("High Score: %d", snap.HighScore), draw.Grey)
	}
	if now.Sub(s.state.gameOverAt) >= RestartGrace && blink(now) {
		s.centered(y+4, ">>  Press SPACE to Restart  <<", promptColor)
	}
}

// drawInactivityScreen draws the idle warning.
func (s *Session) drawInactivityScreen(now time.Time, centerY int) {
	s.centered(centerY-2, "INACTIVITY WARNING", toastRed)
	left := max(s.idle-now.Sub(s.lastInput), 0)
	s.centered(centerY, fmt.Sprintf("You will be disconnected in %d seconds.", int(left.Seconds())), draw.White)
	s.centered(centerY+2, "Press any key to continue", draw.Grey)
}

// drawShutdownScreen draws the server shutdown notice.
func (s *Session) drawShutdownScreen(now time.Time, centerY int) {
	s.centered(centerY-3, "SERVER SHUTTING DOWN", toastRed)
	s.centered(centerY-1, "The server is restarting for maintenance.", draw.White)
	s.centered(centerY, "Your high score has been saved.", draw.White)
	left := max(ShutdownDisplay-now.Sub(s.state.shutdownAt), 0)
	s.centered(centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", int(left.Seconds())+1), draw.Grey)
	s.centered(centerY+4, "Press Q to disconnect now", draw.Grey)
}
