package animation

import "github.com/Xevion/Pac-Man-sub000/pacman/ghost"

// Kind names which animation bank a ghost should have attached this tick,
// per the spec.md §4.7 state→animation mapping.
type Kind uint8

const (
	KindDirectional Kind = iota
	KindFrightenedLinear
	KindFlashingLinear
	KindEyesDirectional
)

// GhostAnimationFor maps a ghost.State to the animation bank it should
// wear: Normal attaches the per-ghost directional animation, Frightened
// attaches the shared frightened or flashing linear loop depending on its
// flash flag, and Eyes attaches the shared eyes directional animation.
func GhostAnimationFor(s ghost.State) Kind {
	switch {
	case s.IsEyes():
		return KindEyesDirectional
	case s.IsFrightened() && s.Flashing():
		return KindFlashingLinear
	case s.IsFrightened():
		return KindFrightenedLinear
	default:
		return KindDirectional
	}
}

// LastAnimationState change-detects the animation Kind across ticks so the
// attach/remove dance in spec.md §4.7 only runs on an actual transition.
type LastAnimationState struct {
	kind Kind
	set  bool
}

// Changed reports whether newKind differs from the previously recorded
// kind (or none was recorded yet), and records newKind as current.
func (l *LastAnimationState) Changed(newKind Kind) bool {
	changed := !l.set || l.kind != newKind
	l.kind = newKind
	l.set = true
	return changed
}
