package game

import (
	"time"

	"github.com/tomz197/cosmicdefender/internal/object"
)

// ActivePowerUps tracks the timed effects in force, one slot per timed kind.
// A pickup of an active kind overwrites its expiry.
type ActivePowerUps struct {
	expiry [object.TimedKinds]time.Duration
	active [object.TimedKinds]bool
}

// Activate starts or refreshes k until now+d. Instantaneous kinds are ignored.
func (a *ActivePowerUps) Activate(k object.Kind, now, d time.Duration) bool {
	if !k.Timed() {
		return false
	}
	a.expiry[k] = now + d
	a.active[k] = true
	return true
}

// Active reports whether k is in force.
func (a *ActivePowerUps) Active(k object.Kind) bool {
	return k.Timed() && a.active[k]
}

// Remove ends k immediately.
func (a *ActivePowerUps) Remove(k object.Kind) {
	if k.Timed() {
		a.active[k] = false
		a.expiry[k] = 0
	}
}

// Remaining returns how long k stays active, or 0.
func (a *ActivePowerUps) Remaining(k object.Kind, now time.Duration) time.Duration {
	if !a.Active(k) || a.expiry[k] <= now {
		return 0
	}
	return a.expiry[k] - now
}

// Expire removes every entry whose expiry has passed and calls fn for each,
// in kind order.
func (a *ActivePowerUps) Expire(now time.Duration, fn func(k object.Kind)) {
	for i := range a.active {
		if a.active[i] && now > a.expiry[i] {
			k := object.Kind(i)
			a.Remove(k)
			if fn != nil {
				fn(k)
			}
		}
	}
}

// Clear ends every effect.
func (a *ActivePowerUps) Clear() {
	*a = ActivePowerUps{}
}

// applyPowerUp applies the effect of a collected power-up.
func (g *Game) applyPowerUp(p *object.PowerUp) {
	switch {
	case p.Kind.Timed():
		d := p.Duration
		if d <= 0 {
			d = g.tun.PowerUpDuration
		}
		g.effects.Activate(p.Kind, g.clock, d)
		if p.Kind == object.Shield {
			g.player.ShieldActive = true
		}
		g.emit(Event{Kind: EventPowerUpActivated, PowerUp: p.Kind})
	case p.Kind == object.Repair:
		if !g.player.Repair() {
			g.emit(Event{Kind: EventRepairNotNeeded, PowerUp: p.Kind, Value: g.player.Lives})
			return
		}
		g.emit(Event{Kind: EventPowerUpActivated, PowerUp: p.Kind, Value: g.player.Lives})
	case p.Kind == object.SmartBomb:
		before := g.score
		g.enemies.Each(func(i int, _ *object.Enemy) bool {
			g.destroyEnemy(i)
			return true
		})
		g.emit(Event{Kind: EventPowerUpActivated, PowerUp: p.Kind, Value: g.score - before})
	}
}

// dropShield ends the shield after it absorbed a ram.
func (g *Game) dropShield() {
	g.effects.Remove(object.Shield)
	g.player.ShieldActive = false
	g.emit(Event{Kind: EventShieldDown})
}

// expirePowerUps ends timed effects whose expiry has passed.
func (g *Game) expirePowerUps() {
	g.effects.Expire(g.clock, func(k object.Kind) {
		if k == object.Shield {
			g.player.ShieldActive = false
		}
		g.emit(Event{Kind: EventPowerUpExpired, PowerUp: k})
	})
}
