package battle

import (
	"fmt"

	"github.com/cory-johannsen/slimebattle/internal/game/dice"
)

// DropTable associates item keys with a percent chance to drop, preserving
// insertion order. The engine never interprets the keys.
type DropTable[K comparable] struct {
	keys    []K
	chances map[K]int
}

// NewDropTable returns an empty DropTable.
func NewDropTable[K comparable]() *DropTable[K] {
	return &DropTable[K]{chances: make(map[K]int)}
}

// Set records chance for item. An existing item keeps its position.
//
// Precondition: 0 <= chance <= 100.
func (t *DropTable[K]) Set(item K, chance int) error {
	if chance < 0 || chance > 100 {
		return fmt.Errorf("battle: drop chance must be in [0, 100], got %d", chance)
	}
	if _, ok := t.chances[item]; !ok {
		t.keys = append(t.keys, item)
	}
	t.chances[item] = chance
	return nil
}

// Chance returns the drop chance for item and whether it is present.
func (t *DropTable[K]) Chance(item K) (int, bool) {
	if t == nil {
		return 0, false
	}
	c, ok := t.chances[item]
	return c, ok
}

// Len returns the number of associations.
func (t *DropTable[K]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Each calls fn for every association in insertion order.
func (t *DropTable[K]) Each(fn func(item K, chance int)) {
	if t == nil {
		return
	}
	for _, k := range t.keys {
		fn(k, t.chances[k])
	}
}

// Rewards is everything the victors collect from the defeated.
type Rewards struct {
	ExperiencePoints int
	GoldPoints       int
	Items            []string
}

// SumExperience totals the experience rewards of the defeated.
//
// Postcondition: Returns 0 for an empty list.
func SumExperience(defeated []*Participant) int {
	sum := 0
	for _, p := range defeated {
		sum += p.ExperiencePoints
	}
	return sum
}

// SumGold totals the gold rewards of the defeated, each scaled by
// (rand(0, 63) + 192) / 256. One draw per participant, in list order.
//
// Postcondition: Returns 0 for an empty list.
func SumGold(defeated []*Participant, src dice.Source) int {
	sum := 0
	for _, p := range defeated {
		sum += p.GoldPoints * (src.Next(0, goldDrawMax) + goldDrawBase) / 256
	}
	return sum
}

// RollDrops returns every item whose roll rand(chance, 100) lands at or below
// its chance, in table order.
func RollDrops[K comparable](table *DropTable[K], src dice.Source) []K {
	var dropped []K
	table.Each(func(item K, chance int) {
		if src.Next(chance, dropDrawMax) <= chance {
			dropped = append(dropped, item)
		}
	})
	return dropped
}

// RollParticipantDrops rolls each defeated participant's drop table in list
// order and concatenates the results. Duplicates are kept.
func RollParticipantDrops(defeated []*Participant, src dice.Source) []string {
	var dropped []string
	for _, p := range defeated {
		dropped = append(dropped, RollDrops(p.Drops, src)...)
	}
	return dropped
}

// ResolveRewards computes experience, then gold, then item drops.
func ResolveRewards(defeated []*Participant, src dice.Source) Rewards {
	return Rewards{
		ExperiencePoints: SumExperience(defeated),
		GoldPoints:       SumGold(defeated, src),
		Items:            RollParticipantDrops(defeated, src),
	}
}
