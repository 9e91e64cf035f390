package ecsworld

import (
	"github.com/Xevion/Pac-Man-sub000/pacman/animation"
	"github.com/Xevion/Pac-Man-sub000/pacman/entity"
)

// ForEachGhost calls fn for every live entity tagged as a ghost.
func (w *World) ForEachGhost(fn func(h entity.Handle, tag GhostTag)) {
	for h, tag := range w.ghostTags {
		if w.Alive(h) {
			fn(h, tag)
		}
	}
}

// ForEachFruit calls fn for every live entity tagged with a fruit kind.
func (w *World) ForEachFruit(fn func(h entity.Handle, tag FruitTag)) {
	for h, tag := range w.fruitTags {
		if w.Alive(h) {
			fn(h, tag)
		}
	}
}

// ForEachCollider calls fn for every live entity with a Collider.
func (w *World) ForEachCollider(fn func(h entity.Handle, c Collider)) {
	for h, c := range w.colliders {
		if w.Alive(h) {
			fn(h, c)
		}
	}
}

// ForEachTimeToLive calls fn for every live entity with a TimeToLive countdown.
func (w *World) ForEachTimeToLive(fn func(h entity.Handle, t *animation.TimeToLive)) {
	for h, t := range w.timeToLive {
		if w.Alive(h) {
			fn(h, t)
		}
	}
}

// ForEachDirectional calls fn for every live entity with a DirectionalAnimation.
func (w *World) ForEachDirectional(fn func(h entity.Handle, a *animation.DirectionalAnimation)) {
	for h, a := range w.directional {
		if w.Alive(h) {
			fn(h, a)
		}
	}
}

// ForEachLinear calls fn for every live entity with a LinearAnimation.
func (w *World) ForEachLinear(fn func(h entity.Handle, a *animation.LinearAnimation)) {
	for h, a := range w.linear {
		if w.Alive(h) {
			fn(h, a)
		}
	}
}

// ForEachBlinking calls fn for every live entity with a Blinking toggle.
func (w *World) ForEachBlinking(fn func(h entity.Handle, b *animation.Blinking)) {
	for h, b := range w.blinking {
		if w.Alive(h) {
			fn(h, b)
		}
	}
}

// PlayerEntity returns the single entity marked PlayerControlled, if any.
func (w *World) PlayerEntity() (entity.Handle, bool) {
	for h := range w.playerEntity {
		if w.Alive(h) {
			return h, true
		}
	}
	return entity.Handle{}, false
}
