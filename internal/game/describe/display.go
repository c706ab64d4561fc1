package describe

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/craftsim/internal/game/catalog"
	"github.com/cory-johannsen/craftsim/internal/game/item"
)

const separator = "--------\n"

// Display renders the item block: header, resolved properties, item level and
// the explicit lines. props is the item's resolved property snapshot and desc
// the output of DescribeAll for it.
//
// Postcondition: every line, including the last, ends with a newline. Zero
// valued properties are omitted.
func (e *Engine) Display(it *item.Item, props catalog.Properties, desc Description) string {
	base := e.cat.Base(it.Base)
	name := it.Name
	if name == "" {
		name = base.Name
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Rarity: %s\n", it.Rarity)
	sb.WriteString(name + "\n")
	sb.WriteString(separator)
	sb.WriteString(base.ItemClass + "\n")

	if props.Block != 0 {
		fmt.Fprintf(&sb, "Chance to Block: %d%%\n", props.Block)
	}
	if props.Armour != 0 {
		fmt.Fprintf(&sb, "Armour: %d\n", props.Armour)
	}
	if props.Evasion != 0 {
		fmt.Fprintf(&sb, "Evasion: %d\n", props.Evasion)
	}
	if props.EnergyShield != 0 {
		fmt.Fprintf(&sb, "Energy Shield: %d\n", props.EnergyShield)
	}
	if props.PhysicalDamageMax != 0 {
		fmt.Fprintf(&sb, "Physical Damage: %d-%d\n", props.PhysicalDamageMin, props.PhysicalDamageMax)
	}
	if props.CriticalStrikeChance != 0 {
		fmt.Fprintf(&sb, "Critical Strike Chance: %.2f\n", float64(props.CriticalStrikeChance)/100)
	}
	if props.AttackTime != 0 {
		fmt.Fprintf(&sb, "Attacks per Second: %.2f\n", 1000/float64(props.AttackTime))
	}
	if props.Quality != 0 {
		fmt.Fprintf(&sb, "Quality: %+d%%\n", props.Quality)
	}

	sb.WriteString(separator)
	fmt.Fprintf(&sb, "Item Level: %d\n", it.Level)

	if len(it.Explicits) > 0 {
		sb.WriteString(separator)
		for _, line := range desc.Lines {
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}
