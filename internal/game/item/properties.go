package item

import "github.com/cory-johannsen/craftsim/internal/game/catalog"

type percents struct {
	armour, evasion, energyShield, physicalDamage, criticalStrike, attackSpeed int
}

func (p *percents) add(mask uint8, v int) {
	if mask&PctArmour != 0 {
		p.armour += v
	}
	if mask&PctEvasion != 0 {
		p.evasion += v
	}
	if mask&PctEnergyShield != 0 {
		p.energyShield += v
	}
	if mask&PctPhysicalDamage != 0 {
		p.physicalDamage += v
	}
	if mask&PctCriticalStrike != 0 {
		p.criticalStrike += v
	}
	if mask&PctAttackSpeed != 0 {
		p.attackSpeed += v
	}
}

func addFlat(props *catalog.Properties, f FlatField, v int) {
	switch f {
	case FlatArmour:
		props.Armour += v
	case FlatEvasion:
		props.Evasion += v
	case FlatEnergyShield:
		props.EnergyShield += v
	case FlatPhysicalDamageMin:
		props.PhysicalDamageMin += v
	case FlatPhysicalDamageMax:
		props.PhysicalDamageMax += v
	case FlatQuality:
		props.Quality += v
	case FlatBlock:
		props.Block += v
	}
}

// Properties resolves the item's display properties from its base template,
// its explicits and its quality. The result is a fresh snapshot; the item and
// catalog are not modified.
//
// Implicits are not applied.
//
// Postcondition: every multiplier starts at 100; Normal quality adds the item's
// own quality amount to the armour, evasion, energy shield and physical damage
// multipliers; attack time is divided by the attack speed multiplier instead
// of scaled by it.
func (it *Item) Properties(cat *catalog.Catalog, fx *Effects) catalog.Properties {
	props := cat.Base(it.Base).Properties
	pct := percents{100, 100, 100, 100, 100, 100}

	for _, e := range it.Explicits {
		for _, s := range e.Stats(cat) {
			eff, ok := fx.Lookup(s.Stat)
			if !ok {
				continue
			}
			addFlat(&props, eff.Flat, s.Roll)
			pct.add(eff.Percent, s.Roll)
		}
	}

	props.Quality += it.Quality.Amount
	if it.Quality.Kind == QualityNormal {
		// Only the item's own amount scales defences; flat quality rolls do not.
		pct.add(PctArmour|PctEvasion|PctEnergyShield|PctPhysicalDamage, it.Quality.Amount)
	}

	props.Armour = props.Armour * pct.armour / 100
	props.Evasion = props.Evasion * pct.evasion / 100
	props.EnergyShield = props.EnergyShield * pct.energyShield / 100
	props.PhysicalDamageMin = props.PhysicalDamageMin * pct.physicalDamage / 100
	props.PhysicalDamageMax = props.PhysicalDamageMax * pct.physicalDamage / 100
	props.CriticalStrikeChance = props.CriticalStrikeChance * pct.criticalStrike / 100
	if pct.attackSpeed > 0 {
		props.AttackTime = props.AttackTime * 100 / pct.attackSpeed
	} else {
		props.AttackTime = 0
	}

	return props
}
