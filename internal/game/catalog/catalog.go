// Package catalog owns the static content records item generation works
// from: modifiers, base item templates and stat description templates.
//
// A Catalog is built once at startup and is read-only afterwards, so it can be
// shared freely between generation workers. Other packages refer to records by
// the small integer handles defined here rather than holding pointers into the
// catalog's storage.
package catalog

// ModID indexes Catalog.Modifiers.
type ModID int

// BaseID indexes Catalog.Bases.
type BaseID int

// TagWeight is one tag-keyed entry of a spawn or generation weight table.
type TagWeight struct {
	Tag    TagID
	Weight uint64
}

// StatRange is a stat a modifier rolls, with its inclusive bounds.
type StatRange struct {
	Stat StatID
	Min  int
	Max  int
}

// Buff is buff metadata granted by some modifiers. Carried, not interpreted.
type Buff struct {
	ID    string
	Range int
}

// GrantedEffect is a skill granted by some modifiers. Carried, not interpreted.
type GrantedEffect struct {
	ID    string
	Level int
}

// Modifier is an immutable modifier definition.
type Modifier struct {
	Key            string
	Name           string
	Domain         Domain
	GenerationType GenerationType
	// Group is the exclusivity class: an item carries at most one modifier per group.
	Group             string
	RequiredLevel     int
	SpawnWeights      []TagWeight
	GenerationWeights []TagWeight
	Stats             []StatRange
	AddsTags          []TagID
	GrantsBuff        *Buff
	GrantsEffects     []GrantedEffect
	Type              string
}

// Properties are the numeric display properties of an item. Base templates
// carry the unmodified values; item aggregation produces resolved copies.
type Properties struct {
	Quality              int `yaml:"quality"`
	Armour               int `yaml:"armour"`
	Evasion              int `yaml:"evasion"`
	EnergyShield         int `yaml:"energy_shield"`
	Block                int `yaml:"block"`
	AttackTime           int `yaml:"attack_time"`
	CriticalStrikeChance int `yaml:"critical_strike_chance"`
	PhysicalDamageMin    int `yaml:"physical_damage_min"`
	PhysicalDamageMax    int `yaml:"physical_damage_max"`
}

// Requirements are the attribute and level requirements to equip a base.
type Requirements struct {
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Intelligence int `yaml:"intelligence"`
	Level        int `yaml:"level"`
}

// BaseTemplate is an immutable base item definition.
type BaseTemplate struct {
	Key             string
	Domain          Domain
	ItemClass       string
	Tags            []TagID
	Name            string
	Properties      Properties
	Implicits       []ModID
	Requirements    *Requirements
	InventoryWidth  int
	InventoryHeight int
}

// Range is an inclusive numeric condition. A nil bound is unbounded.
type Range struct {
	Min *int
	Max *int
}

// Contains reports whether v satisfies both bounds.
func (r Range) Contains(v int) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Alternative is one phrasing of a DescriptionTemplate. Conditions, Formats
// and IndexHandlers are indexed by slot.
type Alternative struct {
	Conditions    []Range
	Formats       []string
	IndexHandlers [][]string
	Text          string
}

// DescriptionTemplate jointly describes an ordered set of stats.
type DescriptionTemplate struct {
	Stats        []StatID
	Alternatives []Alternative
}

// Catalog owns every loaded record.
type Catalog struct {
	Intern       *Interner
	Modifiers    []Modifier
	Bases        []BaseTemplate
	Descriptions []DescriptionTemplate

	modByKey  map[string]ModID
	baseByKey map[string]BaseID
}

// Modifier returns the modifier for id.
//
// Precondition: id was issued by this catalog.
func (c *Catalog) Modifier(id ModID) *Modifier {
	return &c.Modifiers[id]
}

// ModifierByKey returns the handle of the modifier with the given catalog key.
func (c *Catalog) ModifierByKey(key string) (ModID, bool) {
	id, ok := c.modByKey[key]
	return id, ok
}

// Base returns the base template for id.
//
// Precondition: id was issued by this catalog.
func (c *Catalog) Base(id BaseID) *BaseTemplate {
	return &c.Bases[id]
}

// BaseByKey returns the handle of the base with the given catalog key.
func (c *Catalog) BaseByKey(key string) (BaseID, bool) {
	id, ok := c.baseByKey[key]
	return id, ok
}

// FirstBaseOfClass returns the first base, in key order, whose item class is class.
func (c *Catalog) FirstBaseOfClass(class string) (BaseID, bool) {
	for i := range c.Bases {
		if c.Bases[i].ItemClass == class {
			return BaseID(i), true
		}
	}
	return 0, false
}

// StatName returns the string id of a stat.
func (c *Catalog) StatName(id StatID) string {
	return c.Intern.StatName(id)
}

// TagNames returns the names of ids in order.
func (c *Catalog) TagNames(ids []TagID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = c.Intern.TagName(id)
	}
	return out
}
