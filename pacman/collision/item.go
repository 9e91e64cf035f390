package collision

import "github.com/Xevion/Pac-Man-sub000/pacman/ports"

// ItemKind is the subset of worldmap.EntityType an item collision can
// name, per spec.md §4.6's item observer.
type ItemKind uint8

const (
	ItemPellet ItemKind = iota
	ItemPowerPellet
	ItemFruit
)

// ItemOutcome is what the item observer decides for one Collision(pacman,
// item), per spec.md §4.6:
//
//   - Pellet: +10, decrement PelletCount, despawn.
//   - PowerPellet: +50, despawn, frighten every Normal ghost.
//   - Fruit(kind): score per kind, despawn, append to HUD fruit history.
type ItemOutcome struct {
	ScoreDelta   int
	Despawn      bool
	FrightenAll  bool
	RecordFruit  bool
	AudioEvent   ports.AudioEvent
}

// WakaSound and PowerPelletSound are the audio events spec.md §4.6 calls
// for: "Emit Waka audio event for pellets; a dedicated sound for power
// pellets/fruit."
var (
	WakaSound        = ports.AudioEvent{Name: "waka"}
	PowerPelletSound = ports.AudioEvent{Name: "power_pellet"}
	FruitSound       = ports.AudioEvent{Name: "fruit"}
)

// ResolveItem computes the outcome of eating one item. fruitScore is the
// score awarded for ItemFruit, looked up by the caller from the fruit kind
// since the kind→score table is an asset/HUD concern outside collision.
func ResolveItem(kind ItemKind, fruitScore int) ItemOutcome {
	switch kind {
	case ItemPellet:
		return ItemOutcome{ScoreDelta: 10, Despawn: true, AudioEvent: WakaSound}
	case ItemPowerPellet:
		return ItemOutcome{ScoreDelta: 50, Despawn: true, FrightenAll: true, AudioEvent: PowerPelletSound}
	case ItemFruit:
		return ItemOutcome{ScoreDelta: fruitScore, Despawn: true, RecordFruit: true, AudioEvent: FruitSound}
	default:
		return ItemOutcome{}
	}
}
