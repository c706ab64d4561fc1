package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Domain is the coarse item category a modifier may apply to.
type Domain int

// Domain values, in the order they appear in the content data. The zero
// value marks a record whose domain was never set.
const (
	DomainUnset Domain = iota
	DomainItem
	DomainAbyssJewel
	DomainArea
	DomainMisc
	DomainFlask
	DomainCrafted
	DomainDelve
	DomainAtlas
	// DomainUndefined appears on currency bases.
	DomainUndefined
)

var domainNames = map[Domain]string{
	DomainItem:       "item",
	DomainAbyssJewel: "abyss_jewel",
	DomainArea:       "area",
	DomainMisc:       "misc",
	DomainFlask:      "flask",
	DomainCrafted:    "crafted",
	DomainDelve:      "delve",
	DomainAtlas:      "atlas",
	DomainUndefined:  "undefined",
}

// String returns the content-data spelling of d.
func (d Domain) String() string {
	if s, ok := domainNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Domain(%d)", int(d))
}

// ParseDomain maps the content-data spelling to a Domain.
func ParseDomain(s string) (Domain, error) {
	for d, name := range domainNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown domain %q", s)
}

// UnmarshalYAML decodes a Domain from its snake_case name.
func (d *Domain) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDomain(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = parsed
	return nil
}

// GenerationType is a modifier's structural role on an item.
type GenerationType int

// GenerationType values. Only Prefix and Suffix are rolled as explicits. The
// zero value marks a record whose generation type was never set.
const (
	GenUnset GenerationType = iota
	GenPrefix
	GenSuffix
	GenUnique
	GenCorrupted
	GenEnchantment
	GenBlightTower
	GenTempest
)

var generationTypeNames = map[GenerationType]string{
	GenPrefix:      "prefix",
	GenSuffix:      "suffix",
	GenUnique:      "unique",
	GenCorrupted:   "corrupted",
	GenEnchantment: "enchantment",
	GenBlightTower: "blight_tower",
	GenTempest:     "tempest",
}

// String returns the content-data spelling of g.
func (g GenerationType) String() string {
	if s, ok := generationTypeNames[g]; ok {
		return s
	}
	return fmt.Sprintf("GenerationType(%d)", int(g))
}

// IsAffix reports whether g is a prefix or a suffix.
func (g GenerationType) IsAffix() bool {
	return g == GenPrefix || g == GenSuffix
}

// ParseGenerationType maps the content-data spelling to a GenerationType.
func ParseGenerationType(s string) (GenerationType, error) {
	for g, name := range generationTypeNames {
		if name == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown generation type %q", s)
}

// UnmarshalYAML decodes a GenerationType from its snake_case name.
func (g *GenerationType) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseGenerationType(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*g = parsed
	return nil
}
