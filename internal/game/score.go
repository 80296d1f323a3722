package game

// HighScoreStore persists the best score across sessions.
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// levelFor derives the difficulty level from a score.
func (g *Game) levelFor(score int) int {
	return score/g.tun.PointsPerLevel + 1
}

func (g *Game) addScore(points int) {
	if points > 0 {
		g.score += points
	}
}

// checkLevel emits a level-up once the score crosses into a new level.
func (g *Game) checkLevel() {
	if lvl := g.levelFor(g.score); lvl > g.level {
		g.level = lvl
		g.emit(Event{Kind: EventLevelUp, Value: lvl})
	}
}

// gameOver ends the session and records a new high score.
func (g *Game) gameOver() {
	g.setState(StateGameOver)
	g.emit(Event{Kind: EventGameOver, Value: g.score})

	if g.score <= g.highScore {
		return
	}
	g.highScore = g.score
	g.emit(Event{Kind: EventNewHighScore, Value: g.score})
	if g.scores == nil {
		return
	}
	if err := g.scores.Save(g.score); err != nil {
		g.log.Warn("failed to save high score", "score", g.score, "err", err)
	}
}

func (g *Game) loadHighScore() {
	if g.scores == nil {
		return
	}
	score, err := g.scores.Load()
	if err != nil {
		g.log.Warn("failed to load high score", "err", err)
		return
	}
	g.highScore = max(0, score)
}
