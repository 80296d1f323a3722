package game

import (
	"slices"

	"github.com/tomz197/cosmicdefender/internal/object"
	"github.com/tomz197/cosmicdefender/internal/physics"
)

// resolver reacts to contacts found by detectCollisions. Indices are store
// slots. Contacts with entities killed earlier in the tick are never reported.
type resolver interface {
	playerRammed(enemy int)
	enemyShot(projectile, enemy int)
	playerShot(projectile int)
	powerUpTouched(powerUp int)
}

// detector finds overlapping pairs. It only reads entity state; kills made by
// the resolver in one pass are visible to the next through the stores' flags.
type detector struct {
	grid       *physics.SpatialGrid
	candidates []int
}

func newDetector(screen object.Screen) *detector {
	// Cells about twice the size of a regular enemy.
	return &detector{grid: physics.NewSpatialGrid(screen.Width, screen.Height, 100)}
}

// detect runs the four passes in their fixed order. Every pass runs even
// after a contact ends the game.
func (d *detector) detect(w *world, r resolver) {
	if w.player == nil {
		return
	}
	ship := w.player.Rect

	// Player × Enemy.
	for i := 0; i < w.enemies.Len(); i++ {
		if !w.enemies.Dead(i) && physics.Overlaps(ship, w.enemies.At(i).Rect) {
			r.playerRammed(i)
		}
	}

	// Player projectile × Enemy, with the grid as broad phase.
	d.grid.Clear()
	w.enemies.Each(func(i int, e *object.Enemy) bool {
		d.grid.Insert(e.Rect, i)
		return true
	})
	for p := 0; p < w.projectiles.Len(); p++ {
		if w.projectiles.Dead(p) || w.projectiles.At(p).Owner != object.OwnerPlayer {
			continue
		}
		shot := w.projectiles.At(p).Rect
		d.candidates = d.candidates[:0]
		d.grid.Query(shot, func(i int) bool {
			d.candidates = append(d.candidates, i)
			return false
		})
		slices.Sort(d.candidates) // store order keeps the outcome deterministic
		for _, i := range d.candidates {
			if w.enemies.Dead(i) || !physics.Overlaps(shot, w.enemies.At(i).Rect) {
				continue
			}
			r.enemyShot(p, i)
			break // the shot is spent
		}
	}

	// Enemy projectile × Player.
	for p := 0; p < w.projectiles.Len(); p++ {
		if w.projectiles.Dead(p) {
			continue
		}
		if proj := w.projectiles.At(p); proj.Owner == object.OwnerEnemy && physics.Overlaps(proj.Rect, ship) {
			r.playerShot(p)
		}
	}

	// Player × PowerUp.
	for i := 0; i < w.powerUps.Len(); i++ {
		if w.powerUps.Dead(i) {
			continue
		}
		if pu := w.powerUps.At(i); !pu.Collected && physics.Overlaps(pu.Rect, ship) {
			r.powerUpTouched(i)
		}
	}
}
