package catalog

import (
	"errors"
	"fmt"
)

// WeightRecord is a persisted (tag, weight) pair.
type WeightRecord struct {
	Tag    string `yaml:"tag"`
	Weight uint64 `yaml:"weight"`
}

// StatRecord is a persisted stat roll definition.
type StatRecord struct {
	ID  string `yaml:"id"`
	Min int    `yaml:"min"`
	Max int    `yaml:"max"`
}

// BuffRecord is persisted buff metadata. An empty ID means no buff.
type BuffRecord struct {
	ID    string `yaml:"id"`
	Range int    `yaml:"range"`
}

// GrantedEffectRecord is a persisted granted skill.
type GrantedEffectRecord struct {
	GrantedEffectID string `yaml:"granted_effect_id"`
	Level           int    `yaml:"level"`
}

// ModifierRecord is the persisted form of a Modifier.
type ModifierRecord struct {
	Name              string                `yaml:"name"`
	AddsTags          []string              `yaml:"adds_tags"`
	Domain            Domain                `yaml:"domain"`
	GenerationType    GenerationType        `yaml:"generation_type"`
	Group             string                `yaml:"group"`
	GenerationWeights []WeightRecord        `yaml:"generation_weights"`
	SpawnWeights      []WeightRecord        `yaml:"spawn_weights"`
	GrantsBuff        BuffRecord            `yaml:"grants_buff"`
	GrantsEffects     []GrantedEffectRecord `yaml:"grants_effects"`
	Stats             []StatRecord          `yaml:"stats"`
	RequiredLevel     int                   `yaml:"required_level"`
	Type              string                `yaml:"type"`
}

// Validate checks that the ModifierRecord satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (r *ModifierRecord) Validate() error {
	var errs []error
	if r.Domain == DomainUnset {
		errs = append(errs, errors.New("domain must be set"))
	}
	if r.GenerationType == GenUnset {
		errs = append(errs, errors.New("generation_type must be set"))
	}
	if r.RequiredLevel < 0 {
		errs = append(errs, fmt.Errorf("required_level must be >= 0, got %d", r.RequiredLevel))
	}
	for i, s := range r.Stats {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("stats[%d] id must not be empty", i))
		}
		if s.Min > s.Max {
			errs = append(errs, fmt.Errorf("stats[%d] %q min (%d) must be <= max (%d)", i, s.ID, s.Min, s.Max))
		}
	}
	for i, w := range r.SpawnWeights {
		if w.Tag == "" {
			errs = append(errs, fmt.Errorf("spawn_weights[%d] tag must not be empty", i))
		}
	}
	for i, w := range r.GenerationWeights {
		if w.Tag == "" {
			errs = append(errs, fmt.Errorf("generation_weights[%d] tag must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("modifier validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// BaseRecord is the persisted form of a BaseTemplate.
type BaseRecord struct {
	Domain          Domain        `yaml:"domain"`
	ItemClass       string        `yaml:"item_class"`
	Tags            []string      `yaml:"tags"`
	Name            string        `yaml:"name"`
	Properties      Properties    `yaml:"properties"`
	Implicits       []string      `yaml:"implicits"`
	Requirements    *Requirements `yaml:"requirements"`
	InventoryWidth  int           `yaml:"inventory_width"`
	InventoryHeight int           `yaml:"inventory_height"`
}

// Validate checks that the BaseRecord satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (r *BaseRecord) Validate() error {
	var errs []error
	if r.Domain == DomainUnset {
		errs = append(errs, errors.New("domain must be set"))
	}
	if r.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if r.ItemClass == "" {
		errs = append(errs, errors.New("item_class must not be empty"))
	}
	if r.InventoryWidth < 0 || r.InventoryHeight < 0 {
		errs = append(errs, errors.New("inventory dimensions must be >= 0"))
	}
	if r.Properties.AttackTime < 0 {
		errs = append(errs, errors.New("properties.attack_time must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("base validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// RangeRecord is a persisted optional-bound condition.
type RangeRecord struct {
	Min *int `yaml:"min"`
	Max *int `yaml:"max"`
}

// AlternativeRecord is a persisted phrasing alternative.
type AlternativeRecord struct {
	Condition     []RangeRecord `yaml:"condition"`
	Format        []string      `yaml:"format"`
	IndexHandlers [][]string    `yaml:"index_handlers"`
	String        string        `yaml:"string"`
}

// DescriptionRecord is the persisted form of a DescriptionTemplate.
type DescriptionRecord struct {
	IDs     []string            `yaml:"ids"`
	English []AlternativeRecord `yaml:"English"`
}

// Validate checks that the DescriptionRecord satisfies its invariants.
//
// Postcondition: returns nil iff every alternative has a format directive per
// covered stat.
func (r *DescriptionRecord) Validate() error {
	var errs []error
	if len(r.IDs) == 0 {
		errs = append(errs, errors.New("ids must not be empty"))
	}
	for i, a := range r.English {
		if len(a.Format) < len(r.IDs) {
			errs = append(errs, fmt.Errorf("alternative[%d] has %d format directives for %d stats", i, len(a.Format), len(r.IDs)))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("description validation failed: %w", errors.Join(errs...))
	}
	return nil
}
