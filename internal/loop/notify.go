package loop

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/cosmicdefender/internal/draw"
	"github.com/tomz197/cosmicdefender/internal/game"
	"github.com/tomz197/cosmicdefender/internal/object"
)

// Toast is one entry of the notification feed.
type Toast struct {
	Title   string
	Detail  string
	Color   colorful.Color
	expires time.Time
}

// Text is the single line the toast is drawn as.
func (t Toast) Text() string {
	if t.Detail == "" {
		return t.Title
	}
	return t.Title + "  " + t.Detail
}

// feed keeps the most recent toasts until they expire.
type feed struct {
	items []Toast
	ttl   time.Duration
	max   int
}

func newFeed() *feed {
	return &feed{ttl: ToastTTL, max: MaxToasts}
}

// push adds t, dropping the oldest entry once the feed is full.
func (f *feed) push(now time.Time, t Toast) {
	t.expires = now.Add(f.ttl)
	f.items = append(f.items, t)
	if len(f.items) > f.max {
		f.items = f.items[len(f.items)-f.max:]
	}
}

// visible drops expired toasts and returns the rest, oldest first.
func (f *feed) visible(now time.Time) []Toast {
	kept := f.items[:0]
	for _, t := range f.items {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	f.items = kept
	return f.items
}

func (f *feed) clear() {
	f.items = f.items[:0]
}

var (
	toastWhite = draw.White
	toastRed   = draw.Hex("#ff5555")
	toastGold  = draw.Hex("#ffcc00")
)

// toastFor returns the notification an event raises, if any.
func toastFor(e game.Event) (Toast, bool) {
	switch e.Kind {
	case game.EventGameStarted:
		return Toast{Title: "Cosmic Defender", Detail: "Game started! Defend the cosmos!", Color: toastWhite}, true
	case game.EventLevelUp:
		return Toast{Title: "Level Up!", Detail: fmt.Sprintf("Advanced to level %d", e.Value), Color: toastGold}, true
	case game.EventShieldDown:
		return Toast{Title: "Shield Down!", Detail: "Your shield has been depleted.", Color: draw.Hex(string(object.Shield.Color()))}, true
	case game.EventShipDamaged:
		return Toast{Title: "Ship Damaged!", Detail: fmt.Sprintf("%d lives remaining", e.Value), Color: toastRed}, true
	case game.EventPowerUpActivated:
		return powerUpToast(e)
	case game.EventRepairNotNeeded:
		return Toast{Title: "Ship at Full Health", Detail: "Repair kit not needed.", Color: draw.Hex(string(object.Repair.Color()))}, true
	case game.EventPowerUpExpired:
		return Toast{Title: e.PowerUp.Label() + " Expired", Detail: "Power-up effect has ended.", Color: draw.Grey}, true
	case game.EventNewHighScore:
		return Toast{Title: "New High Score!", Detail: fmt.Sprintf("You achieved %d points!", e.Value), Color: toastGold}, true
	}
	return Toast{}, false
}

func powerUpToast(e game.Event) (Toast, bool) {
	t := Toast{Color: draw.Hex(string(e.PowerUp.Color()))}
	switch e.PowerUp {
	case object.TripleShot:
		t.Title, t.Detail = "Triple Shot!", "Fire three projectiles at once."
	case object.RapidFire:
		t.Title, t.Detail = "Rapid Fire!", "Increased firing rate."
	case object.Shield:
		t.Title, t.Detail = "Shield Activated!", "Protected from one hit."
	case object.Repair:
		t.Title, t.Detail = "Repair Kit!", fmt.Sprintf("Ship repaired. Lives: %d", e.Value)
	case object.SmartBomb:
		t.Title, t.Detail = "Smart Bomb!", "All enemies destroyed."
	default:
		return Toast{}, false
	}
	return t, true
}
