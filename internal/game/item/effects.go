package item

import "github.com/cory-johannsen/craftsim/internal/game/catalog"

// FlatField names the base property a stat adds to directly.
type FlatField int

// FlatField values.
const (
	FlatNone FlatField = iota
	FlatArmour
	FlatEvasion
	FlatEnergyShield
	FlatPhysicalDamageMin
	FlatPhysicalDamageMax
	FlatQuality
	FlatBlock
)

// Percent multiplier bits. A stat may touch several at once.
const (
	PctArmour uint8 = 1 << iota
	PctEvasion
	PctEnergyShield
	PctPhysicalDamage
	PctCriticalStrike
	PctAttackSpeed
)

// Effect describes what one rolled stat contributes to aggregation.
type Effect struct {
	Flat    FlatField
	Percent uint8
}

var flatStats = map[string]FlatField{
	"local_base_physical_damage_reduction_rating": FlatArmour,
	"local_base_evasion_rating":                   FlatEvasion,
	"local_energy_shield":                         FlatEnergyShield,
	"local_minimum_added_physical_damage":         FlatPhysicalDamageMin,
	"local_maximum_added_physical_damage":         FlatPhysicalDamageMax,
	"local_item_quality_+":                        FlatQuality,
	"local_additional_block_chance_%":             FlatBlock,
}

var percentStats = map[string]uint8{
	"local_physical_damage_reduction_rating_+%":     PctArmour,
	"local_evasion_rating_+%":                       PctEvasion,
	"local_energy_shield_+%":                        PctEnergyShield,
	"local_armour_and_evasion_+%":                   PctArmour | PctEvasion,
	"local_armour_and_energy_shield_+%":             PctArmour | PctEnergyShield,
	"local_evasion_and_energy_shield_+%":            PctEvasion | PctEnergyShield,
	"local_armour_and_evasion_and_energy_shield_+%": PctArmour | PctEvasion | PctEnergyShield,
	"local_physical_damage_+%":                      PctPhysicalDamage,
	"local_critical_strike_chance_+%":               PctCriticalStrike,
	"local_attack_speed_+%":                         PctAttackSpeed,
}

// Effects maps interned stat ids to their aggregation effect. It is built
// once per catalog and is read-only afterwards.
type Effects struct {
	byStat map[catalog.StatID]Effect
}

// NewEffects resolves the recognized stat names against the catalog's interner.
// Stats no catalog record mentions are skipped; they can never be rolled.
func NewEffects(in *catalog.Interner) *Effects {
	fx := &Effects{byStat: make(map[catalog.StatID]Effect, len(flatStats)+len(percentStats))}
	for name, f := range flatStats {
		if id, ok := in.LookupStat(name); ok {
			e := fx.byStat[id]
			e.Flat = f
			fx.byStat[id] = e
		}
	}
	for name, p := range percentStats {
		if id, ok := in.LookupStat(name); ok {
			e := fx.byStat[id]
			e.Percent |= p
			fx.byStat[id] = e
		}
	}
	return fx
}

// Lookup returns the effect of stat, if it has one.
func (fx *Effects) Lookup(stat catalog.StatID) (Effect, bool) {
	e, ok := fx.byStat[stat]
	return e, ok
}
