// Package collision implements the circular overlap test and the
// Pac-Man x items / Pac-Man x ghosts collision scan from spec.md §4.6.
// Resolution of what an overlap means is split into item.go and
// ghostobserver.go so each observer can be tested independently of the
// scan itself, mirroring spec.md's "event-observed transitions" design
// note: a Collision event lives for exactly one tick and is consumed by
// exactly the observer whose entity type matches.
package collision

import (
	"github.com/Xevion/Pac-Man-sub000/pacman/entity"
	"github.com/go-gl/mathgl/mgl64"
)

// Tag classifies a collider for scan filtering, per spec.md §3 "collider
// tags (pacman/ghost/item)".
type Tag uint8

const (
	TagPacman Tag = iota
	TagGhost
	TagItem
)

// Candidate is one collidable entity considered during a scan.
type Candidate struct {
	Entity   entity.Handle
	Position mgl64.Vec2
	Size     float32
	Tag      Tag
}

// Overlap reports whether two circular colliders overlap: the pixel
// distance between their centers is strictly less than the average of
// their sizes, per spec.md §4.6.
func Overlap(a, b mgl64.Vec2, sizeA, sizeB float32) bool {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dist := dx*dx + dy*dy
	threshold := float64((sizeA + sizeB) / 2)
	return dist < threshold*threshold
}

// Collision is the one-tick event emitted for each overlap found by Scan.
type Collision struct {
	Other entity.Handle
	Tag   Tag
}

// Scan finds every candidate overlapping Pac-Man's collider, restricted to
// TagItem and TagGhost candidates (Pac-Man never collides with itself).
func Scan(pacmanPos mgl64.Vec2, pacmanSize float32, candidates []Candidate) []Collision {
	var out []Collision
	for _, c := range candidates {
		if c.Tag != TagItem && c.Tag != TagGhost {
			continue
		}
		if Overlap(pacmanPos, c.Position, pacmanSize, c.Size) {
			out = append(out, Collision{Other: c.Entity, Tag: c.Tag})
		}
	}
	return out
}
