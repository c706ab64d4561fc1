// Package affix decides which modifiers attach to an item: how many to add
// for a rarity, which candidates are eligible given the item's current state,
// and how likely each eligible candidate is to be drawn.
package affix

import (
	"math"
	"math/bits"

	"github.com/cory-johannsen/craftsim/internal/game/catalog"
	"github.com/cory-johannsen/craftsim/internal/game/item"
)

// defaultGenerationWeight is the neutral generation multiplier, in percent.
const defaultGenerationWeight = 100

// Limit returns how many prefixes (and, separately, suffixes) an item of the
// given rarity and class may carry.
func Limit(r item.Rarity, class string) int {
	switch r {
	case item.Magic:
		return 1
	case item.Rare:
		if item.IsJewelClass(class) {
			return 2
		}
		return 3
	}
	return 0
}

// Scale is the eligibility and weighting context for a single draw. It is a
// snapshot of the item at the time it was built and must be rebuilt before
// every draw, since each rolled modifier can close a slot, claim a group or
// add tags.
type Scale struct {
	OpenPrefix bool
	OpenSuffix bool
	Domain     catalog.Domain
	ItemLevel  int
	Groups     map[string]struct{}
	Tags       map[catalog.TagID]struct{}
}

// NewScale builds the Scale for the next draw on it, assuming it is being
// brought to the target rarity.
//
// Postcondition: Tags is the union of the base's tags and the tags added by
// every current explicit; Groups holds every current explicit's group.
func NewScale(cat *catalog.Catalog, it *item.Item, target item.Rarity) Scale {
	base := cat.Base(it.Base)
	limit := Limit(target, base.ItemClass)

	s := Scale{
		Domain:    base.Domain,
		ItemLevel: it.Level,
		Groups:    make(map[string]struct{}, len(it.Explicits)),
		Tags:      make(map[catalog.TagID]struct{}, len(base.Tags)),
	}

	prefixes, suffixes := 0, 0
	for _, e := range it.Explicits {
		m := cat.Modifier(e.Mod)
		switch m.GenerationType {
		case catalog.GenPrefix:
			prefixes++
		case catalog.GenSuffix:
			suffixes++
		}
		s.Groups[m.Group] = struct{}{}
		for _, t := range m.AddsTags {
			s.Tags[t] = struct{}{}
		}
	}
	for _, t := range base.Tags {
		s.Tags[t] = struct{}{}
	}
	s.OpenPrefix = prefixes < limit
	s.OpenSuffix = suffixes < limit
	return s
}

// Weight returns the draw weight of m under this scale; 0 means m cannot be
// drawn.
//
// The candidate must match the item's domain, be a prefix or suffix with an
// open slot of its kind, not require a higher level than the item, and not
// share a group with an existing explicit. Its weight is then the first
// matching spawn weight, scaled by the first matching generation weight as a
// percentage. No matching spawn weight means weight 0; no matching generation
// weight means no scaling.
func (s *Scale) Weight(m *catalog.Modifier) uint64 {
	if m.Domain != s.Domain {
		return 0
	}
	if !(m.GenerationType == catalog.GenPrefix && s.OpenPrefix ||
		m.GenerationType == catalog.GenSuffix && s.OpenSuffix) {
		return 0
	}
	if m.RequiredLevel > s.ItemLevel {
		return 0
	}
	if _, used := s.Groups[m.Group]; used {
		return 0
	}

	spawn, ok := s.firstMatch(m.SpawnWeights)
	if !ok || spawn == 0 {
		return 0
	}
	gen, ok := s.firstMatch(m.GenerationWeights)
	if !ok {
		gen = defaultGenerationWeight
	}
	return scaleWeight(spawn, gen)
}

// scaleWeight returns spawn*gen/100, saturating at math.MaxUint64.
func scaleWeight(spawn, gen uint64) uint64 {
	hi, lo := bits.Mul64(spawn, gen)
	if hi >= 100 {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, 100)
	return q
}

func (s *Scale) firstMatch(table []catalog.TagWeight) (uint64, bool) {
	for _, w := range table {
		if _, ok := s.Tags[w.Tag]; ok {
			return w.Weight, true
		}
	}
	return 0, false
}
