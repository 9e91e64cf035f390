// Package score implements ScoreResource, PelletCount, and the score-popup
// sprite lookup table described in spec.md §6, §4.6 (Scenarios B-D).
package score

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Resource is the running score. It is a plain resource mutated by the
// collision observers (package collision), not an entity component.
type Resource struct {
	Value int
}

// Add increases the score by n.
func (r *Resource) Add(n int) {
	r.Value += n
}

var printer = message.NewPrinter(language.English)

// Formatted renders n with thousands separators for HUD display, via
// golang.org/x/text the way any production HUD localizes numbers rather
// than hand-rolling comma insertion.
func Formatted(n int) string {
	return printer.Sprintf("%d", number.Decimal(n))
}

// PelletCount tracks how many pellets remain; the level is cleared once it
// reaches zero. Total records the starting count so Eaten can be derived
// without a separate counter.
type PelletCount struct {
	Remaining int
	Total     int
}

// Eat decrements Remaining and reports whether the level is now clear.
func (p *PelletCount) Eat() (cleared bool) {
	if p.Remaining > 0 {
		p.Remaining--
	}
	return p.Remaining == 0
}

// Eaten reports how many pellets have been eaten so far, the trigger the
// arcade original's fruit-spawn schedule counts against.
func (p *PelletCount) Eaten() int {
	return p.Total - p.Remaining
}

// popupSprites maps a ghost-eaten index (per spec.md §6: "Score-popup
// sprite index mapping") to the bonus value it awards.
var popupSprites = [...]int{100, 200, 300, 400, 700, 800, 1000, 1600, 2000, 3000, 5000}

// PopupValue returns the score-popup bonus for the given eaten-ghost index
// within a single power-pellet window, clamped to the last defined entry
// once the chain runs past the table.
func PopupValue(index int) int {
	if index < 0 {
		index = 0
	}
	if index >= len(popupSprites) {
		index = len(popupSprites) - 1
	}
	return popupSprites[index]
}
