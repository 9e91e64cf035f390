// Package entity defines the stable identity handle shared by the ECS
// kernel (package ecsworld) and the stage machine (package stage), which
// needs to name a specific ghost entity in GhostEatenPause without
// depending on ecsworld itself. This mirrors the teacher's EntityHandle
// design: identity is a small value type, never a pointer into World state.
package entity

import "github.com/google/uuid"

// Handle identifies one spawned entity (a ghost, pellet, fruit, life icon,
// or score popup) for the lifetime of a Game. Index/Generation make a
// despawned-and-reused slot detectable: a stale Handle whose Generation no
// longer matches the live slot is one ecsworld.World.Alive reports as not
// alive, the Go shape of spec.md §7's EntityError.
type Handle struct {
	Index      uint32
	Generation uint32
	// ID is a random identity drawn by ecsworld.World.Spawn (uuid.New) for
	// each spawn; the replay log does not record it.
	ID uuid.UUID
}

// Zero is the handle value no real entity ever has.
var Zero Handle

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h == Zero
}
