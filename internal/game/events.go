package game

import "github.com/tomz197/cosmicdefender/internal/object"

// EventKind identifies something that happened during a tick.
type EventKind uint8

const (
	EventGameStarted EventKind = iota
	EventPaused
	EventResumed
	EventGameOver         // Value: final score
	EventNewHighScore     // Value: new high score
	EventLevelUp          // Value: new level
	EventShieldDown       // Shield consumed by a ram
	EventShipDamaged      // Value: lives remaining
	EventEnemyDestroyed   // Value: points awarded
	EventPowerUpActivated // Value: lives after a repair, points after a smart bomb
	EventPowerUpExpired
	EventRepairNotNeeded

	// Visual effects. X and Y locate the burst.
	EventExplosion
	EventShieldBreak
	EventHit
	EventPowerUpCollected
)

var eventNames = [...]string{
	EventGameStarted:      "game-started",
	EventPaused:           "paused",
	EventResumed:          "resumed",
	EventGameOver:         "game-over",
	EventNewHighScore:     "new-high-score",
	EventLevelUp:          "level-up",
	EventShieldDown:       "shield-down",
	EventShipDamaged:      "ship-damaged",
	EventEnemyDestroyed:   "enemy-destroyed",
	EventPowerUpActivated: "power-up-activated",
	EventPowerUpExpired:   "power-up-expired",
	EventRepairNotNeeded:  "repair-not-needed",
	EventExplosion:        "explosion",
	EventShieldBreak:      "shield-break",
	EventHit:              "hit",
	EventPowerUpCollected: "power-up-collected",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Effect reports whether k is a purely visual event.
func (k EventKind) Effect() bool {
	return k >= EventExplosion
}

// Event is one entry of the queue drained by the host after each tick.
type Event struct {
	Kind      EventKind
	Value     int
	PowerUp   object.Kind
	Archetype object.Archetype
	X, Y      float64
	Color     object.Color
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// Events drains the queue. The returned slice belongs to the caller.
func (g *Game) Events() []Event {
	out := g.events
	g.events = nil
	return out
}
