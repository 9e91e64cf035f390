// Package renderdirty tracks whether the world changed in a way the draw
// phase cares about this tick, per spec.md §4.8. It is a single bool-backed
// resource, matching the teacher's own dirty-flag-style gates on optional
// per-tick work (e.g. world.advance / RequiredSleepTicks in
// server/world/tick.go) rather than anything library-backed.
package renderdirty

// RenderDirty records whether the frame needs a redraw. The scheduler marks
// it (schedule's systemDirtyCheck comment lists where); a host's draw phase
// can skip clean frames and call Clear after drawing.
type RenderDirty struct {
	dirty bool
}

// Mark flags the frame as needing a redraw.
func (r *RenderDirty) Mark() {
	r.dirty = true
}

// Dirty reports whether the frame needs a redraw.
func (r *RenderDirty) Dirty() bool {
	return r.dirty
}

// Clear resets the flag, for the host to call after drawing a frame.
func (r *RenderDirty) Clear() {
	r.dirty = false
}
