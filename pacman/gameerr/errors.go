// Package gameerr defines the error taxonomy consumed across the core, per
// spec §7. Map and asset loading errors are fatal at startup; per-frame
// errors are wrapped in a GameError and placed on the error bus without
// aborting the frame.
package gameerr

import "errors"

// Sentinel errors, one per spec §7 category. Concrete errors returned by
// the core wrap one of these with fmt.Errorf("%w: ...", ...) so callers can
// classify a failure with errors.Is without parsing a message.
var (
	// ErrParse signals a malformed ASCII board layout: an unknown
	// character, a wrong row count or length, or a bad house-door count.
	ErrParse = errors.New("gameerr: parse error")
	// ErrMap signals a structurally impossible map: a missing spawn, a
	// missing tunnel endpoint, or a graph construction failure.
	ErrMap = errors.New("gameerr: map error")
	// ErrAsset signals a requested sprite name that could not be resolved.
	ErrAsset = errors.New("gameerr: asset error")
	// ErrEntity signals a stale Position referencing a node or edge that no
	// longer exists in the graph. This should never occur in a correctly
	// built world; seeing it indicates a bug, not bad input.
	ErrEntity = errors.New("gameerr: entity error")
	// ErrTexture wraps a collaborator texture-surface failure.
	ErrTexture = errors.New("gameerr: texture error")
	// ErrAudio wraps a collaborator audio-surface failure.
	ErrAudio = errors.New("gameerr: audio error")
	// ErrPlatform wraps a collaborator platform-surface failure.
	ErrPlatform = errors.New("gameerr: platform error")
)

// GameError is a per-frame error placed on the error bus (spec §7). It is
// never panicked; the frame that produced it continues.
type GameError struct {
	Tick uint64
	Err  error
}

func (e GameError) Error() string {
	return e.Err.Error()
}

func (e GameError) Unwrap() error {
	return e.Err
}
