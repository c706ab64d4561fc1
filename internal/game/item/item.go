// Package item models a generated item and resolves its display properties
// from its base template and rolled explicit modifiers.
package item

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/craftsim/internal/game/catalog"
)

// Item classes with special affix-count rules.
const (
	ClassJewel      = "Jewel"
	ClassAbyssJewel = "AbyssJewel"
)

// IsJewelClass reports whether class uses the jewel affix rules.
func IsJewelClass(class string) bool {
	return class == ClassJewel || class == ClassAbyssJewel
}

// Rarity is an item's rarity tier.
type Rarity int

// Rarity values.
const (
	Normal Rarity = iota
	Magic
	Rare
	Unique
)

// String returns the display name of r.
func (r Rarity) String() string {
	switch r {
	case Normal:
		return "Normal"
	case Magic:
		return "Magic"
	case Rare:
		return "Rare"
	case Unique:
		return "Unique"
	}
	return fmt.Sprintf("Rarity(%d)", int(r))
}

// QualityKind says whether quality feeds the defence and damage multipliers.
type QualityKind int

// QualityKind values.
const (
	// QualityNormal adds its amount to the armour, evasion, energy shield and
	// physical damage multipliers.
	QualityNormal QualityKind = iota
	// QualityImbued feeds no multiplier.
	QualityImbued
)

// Quality is an item's own quality bonus.
type Quality struct {
	Amount int
	Kind   QualityKind
}

// ModifierInstance is a rolled modifier attached to an item.
//
// Invariant: len(Rolls) == len(mod.Stats) and every roll lies within its
// stat's [Min, Max].
type ModifierInstance struct {
	Mod   catalog.ModID
	Rolls []int
}

// StatRoll pairs a stat id with its rolled value.
type StatRoll struct {
	Stat catalog.StatID
	Roll int
}

// Stats returns the instance's (stat, roll) pairs in the modifier's declared order.
func (mi ModifierInstance) Stats(cat *catalog.Catalog) []StatRoll {
	m := cat.Modifier(mi.Mod)
	out := make([]StatRoll, len(mi.Rolls))
	for i, r := range mi.Rolls {
		out[i] = StatRoll{Stat: m.Stats[i].Stat, Roll: r}
	}
	return out
}

// Item is a single generated item.
//
// Invariant: no two explicits share a modifier group, and the number of
// prefix (or suffix) explicits never exceeds the affix limit for the item's
// rarity and class. Only the affix package appends explicits.
type Item struct {
	ID        string
	Name      string
	Base      catalog.BaseID
	Rarity    Rarity
	Quality   Quality
	Level     int
	Explicits []ModifierInstance
}

// New creates a Normal item of the given base with a fresh instance id.
//
// Postcondition: returned item has no explicits.
func New(name string, base catalog.BaseID, level int, quality Quality) *Item {
	return &Item{
		ID:      uuid.New().String(),
		Name:    name,
		Base:    base,
		Rarity:  Normal,
		Quality: quality,
		Level:   level,
	}
}

// CountGenerationType returns how many explicits have generation type g.
func (it *Item) CountGenerationType(cat *catalog.Catalog, g catalog.GenerationType) int {
	n := 0
	for _, e := range it.Explicits {
		if cat.Modifier(e.Mod).GenerationType == g {
			n++
		}
	}
	return n
}
