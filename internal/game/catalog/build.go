package catalog

import (
	"fmt"
	"sort"
)

// Build validates the given records and assembles them into a Catalog.
// Modifiers and bases are assigned handles in key order so that the same
// content always produces the same handles.
//
// Postcondition: returns a fully resolved Catalog or the first invalid record's error.
func Build(mods map[string]ModifierRecord, bases map[string]BaseRecord, descs []DescriptionRecord) (*Catalog, error) {
	c := &Catalog{
		Intern:    NewInterner(),
		Modifiers: make([]Modifier, 0, len(mods)),
		Bases:     make([]BaseTemplate, 0, len(bases)),
		modByKey:  make(map[string]ModID, len(mods)),
		baseByKey: make(map[string]BaseID, len(bases)),
	}

	for _, key := range sortedKeys(mods) {
		rec := mods[key]
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("modifier %q: %w", key, err)
		}
		c.modByKey[key] = ModID(len(c.Modifiers))
		c.Modifiers = append(c.Modifiers, c.buildModifier(key, &rec))
	}

	for _, key := range sortedKeys(bases) {
		rec := bases[key]
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("base %q: %w", key, err)
		}
		b, err := c.buildBase(key, &rec)
		if err != nil {
			return nil, fmt.Errorf("base %q: %w", key, err)
		}
		c.baseByKey[key] = BaseID(len(c.Bases))
		c.Bases = append(c.Bases, b)
	}

	c.Descriptions = make([]DescriptionTemplate, 0, len(descs))
	for i := range descs {
		if err := descs[i].Validate(); err != nil {
			return nil, fmt.Errorf("description[%d]: %w", i, err)
		}
		c.Descriptions = append(c.Descriptions, c.buildDescription(&descs[i]))
	}

	return c, nil
}

func (c *Catalog) buildModifier(key string, rec *ModifierRecord) Modifier {
	m := Modifier{
		Key:               key,
		Name:              rec.Name,
		Domain:            rec.Domain,
		GenerationType:    rec.GenerationType,
		Group:             rec.Group,
		RequiredLevel:     rec.RequiredLevel,
		SpawnWeights:      c.tagWeights(rec.SpawnWeights),
		GenerationWeights: c.tagWeights(rec.GenerationWeights),
		Stats:             make([]StatRange, len(rec.Stats)),
		AddsTags:          c.tags(rec.AddsTags),
		Type:              rec.Type,
	}
	for i, s := range rec.Stats {
		m.Stats[i] = StatRange{Stat: c.Intern.Stat(s.ID), Min: s.Min, Max: s.Max}
	}
	if rec.GrantsBuff.ID != "" {
		m.GrantsBuff = &Buff{ID: rec.GrantsBuff.ID, Range: rec.GrantsBuff.Range}
	}
	for _, e := range rec.GrantsEffects {
		m.GrantsEffects = append(m.GrantsEffects, GrantedEffect{ID: e.GrantedEffectID, Level: e.Level})
	}
	return m
}

func (c *Catalog) buildBase(key string, rec *BaseRecord) (BaseTemplate, error) {
	b := BaseTemplate{
		Key:             key,
		Domain:          rec.Domain,
		ItemClass:       rec.ItemClass,
		Tags:            c.tags(rec.Tags),
		Name:            rec.Name,
		Properties:      rec.Properties,
		Requirements:    rec.Requirements,
		InventoryWidth:  rec.InventoryWidth,
		InventoryHeight: rec.InventoryHeight,
	}
	for _, ref := range rec.Implicits {
		id, ok := c.modByKey[ref]
		if !ok {
			return BaseTemplate{}, fmt.Errorf("implicit %q references unknown modifier", ref)
		}
		b.Implicits = append(b.Implicits, id)
	}
	return b, nil
}

func (c *Catalog) buildDescription(rec *DescriptionRecord) DescriptionTemplate {
	d := DescriptionTemplate{
		Stats:        make([]StatID, len(rec.IDs)),
		Alternatives: make([]Alternative, len(rec.English)),
	}
	for i, id := range rec.IDs {
		d.Stats[i] = c.Intern.Stat(id)
	}
	for i, a := range rec.English {
		alt := Alternative{
			Conditions:    make([]Range, len(a.Condition)),
			Formats:       a.Format,
			IndexHandlers: a.IndexHandlers,
			Text:          a.String,
		}
		for j, cond := range a.Condition {
			alt.Conditions[j] = Range{Min: cond.Min, Max: cond.Max}
		}
		d.Alternatives[i] = alt
	}
	return d
}

func (c *Catalog) tagWeights(in []WeightRecord) []TagWeight {
	out := make([]TagWeight, len(in))
	for i, w := range in {
		out[i] = TagWeight{Tag: c.Intern.Tag(w.Tag), Weight: w.Weight}
	}
	return out
}

func (c *Catalog) tags(in []string) []TagID {
	out := make([]TagID, len(in))
	for i, t := range in {
		out[i] = c.Intern.Tag(t)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
