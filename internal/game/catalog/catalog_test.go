package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/craftsim/internal/game/catalog"
)

func intp(v int) *int { return &v }

func sampleMods() map[string]catalog.ModifierRecord {
	return map[string]catalog.ModifierRecord{
		"Strength1": {
			Name:           "of the Brute",
			Domain:         catalog.DomainItem,
			GenerationType: catalog.GenSuffix,
			Group:          "Strength",
			RequiredLevel:  1,
			SpawnWeights:   []catalog.WeightRecord{{Tag: "default", Weight: 1000}},
			Stats:          []catalog.StatRecord{{ID: "additional_strength", Min: 8, Max: 12}},
		},
		"Implicit1": {
			Domain:         catalog.DomainItem,
			GenerationType: catalog.GenUnique,
			Group:          "Implicit",
			Stats:          []catalog.StatRecord{{ID: "accuracy_rating", Min: 60, Max: 60}},
			GrantsBuff:     catalog.BuffRecord{ID: "aura", Range: 10},
		},
	}
}

func sampleBases() map[string]catalog.BaseRecord {
	return map[string]catalog.BaseRecord{
		"b/sword": {
			Domain:     catalog.DomainItem,
			ItemClass:  "Two Hand Sword",
			Name:       "Corroded Blade",
			Tags:       []string{"weapon", "default"},
			Properties: catalog.Properties{AttackTime: 740},
			Implicits:  []string{"Implicit1"},
		},
		"a/vest": {
			Domain:    catalog.DomainItem,
			ItemClass: "Body Armour",
			Name:      "Plate Vest",
			Tags:      []string{"armour", "default"},
		},
	}
}

func sampleDescs() []catalog.DescriptionRecord {
	return []catalog.DescriptionRecord{{
		IDs: []string{"additional_strength"},
		English: []catalog.AlternativeRecord{{
			Condition: []catalog.RangeRecord{{Min: intp(1)}},
			Format:    []string{"+#"},
			String:    "{0} to Strength",
		}},
	}}
}

func TestBuild_ResolvesRecords(t *testing.T) {
	cat, err := catalog.Build(sampleMods(), sampleBases(), sampleDescs())
	require.NoError(t, err)

	require.Len(t, cat.Modifiers, 2)
	id, ok := cat.ModifierByKey("Strength1")
	require.True(t, ok)
	m := cat.Modifier(id)
	assert.Equal(t, "Strength1", m.Key)
	assert.Equal(t, catalog.GenSuffix, m.GenerationType)
	require.Len(t, m.Stats, 1)
	assert.Equal(t, "additional_strength", cat.StatName(m.Stats[0].Stat))
	assert.Nil(t, m.GrantsBuff)

	impl, ok := cat.ModifierByKey("Implicit1")
	require.True(t, ok)
	require.NotNil(t, cat.Modifier(impl).GrantsBuff)
	assert.Equal(t, "aura", cat.Modifier(impl).GrantsBuff.ID)

	swordID, ok := cat.BaseByKey("b/sword")
	require.True(t, ok)
	sword := cat.Base(swordID)
	assert.Equal(t, []catalog.ModID{impl}, sword.Implicits)
	assert.Equal(t, 740, sword.Properties.AttackTime)
	assert.Equal(t, []string{"weapon", "default"}, cat.TagNames(sword.Tags))

	descStat := cat.Descriptions[0].Stats[0]
	assert.Equal(t, m.Stats[0].Stat, descStat, "descriptions and modifiers share interned stat ids")
}

func TestBuild_HandlesAreKeyOrdered(t *testing.T) {
	cat, err := catalog.Build(sampleMods(), sampleBases(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Implicit1", cat.Modifiers[0].Key)
	assert.Equal(t, "Strength1", cat.Modifiers[1].Key)
	assert.Equal(t, "a/vest", cat.Bases[0].Key)
	assert.Equal(t, "b/sword", cat.Bases[1].Key)
}

func TestBuild_FirstBaseOfClass(t *testing.T) {
	cat, err := catalog.Build(sampleMods(), sampleBases(), nil)
	require.NoError(t, err)
	id, ok := cat.FirstBaseOfClass("Two Hand Sword")
	require.True(t, ok)
	assert.Equal(t, "Corroded Blade", cat.Base(id).Name)
	_, ok = cat.FirstBaseOfClass("Wand")
	assert.False(t, ok)
}

func TestBuild_UnknownImplicit(t *testing.T) {
	bases := sampleBases()
	b := bases["b/sword"]
	b.Implicits = []string{"Missing"}
	bases["b/sword"] = b
	_, err := catalog.Build(sampleMods(), bases, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}

func TestBuild_RejectsInvertedStatRange(t *testing.T) {
	mods := sampleMods()
	m := mods["Strength1"]
	m.Stats = []catalog.StatRecord{{ID: "additional_strength", Min: 12, Max: 8}}
	mods["Strength1"] = m
	_, err := catalog.Build(mods, nil, nil)
	assert.Error(t, err)
}

func TestBuild_RejectsShortFormatList(t *testing.T) {
	descs := []catalog.DescriptionRecord{{
		IDs:     []string{"a", "b"},
		English: []catalog.AlternativeRecord{{Format: []string{"#"}, String: "{0} {1}"}},
	}}
	_, err := catalog.Build(nil, nil, descs)
	assert.Error(t, err)
}

func TestBaseRecord_Validate(t *testing.T) {
	r := catalog.BaseRecord{}
	assert.Error(t, r.Validate())
	r = catalog.BaseRecord{Name: "x", ItemClass: "Ring"}
	assert.ErrorContains(t, r.Validate(), "domain must be set")
	r.Domain = catalog.DomainItem
	assert.NoError(t, r.Validate())
}

func TestModifierRecord_ValidateRequiresDomainAndGenerationType(t *testing.T) {
	r := catalog.ModifierRecord{Group: "G"}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain must be set")
	assert.Contains(t, err.Error(), "generation_type must be set")

	r.Domain = catalog.DomainItem
	r.GenerationType = catalog.GenSuffix
	assert.NoError(t, r.Validate())
}

func TestRange_Contains(t *testing.T) {
	assert.True(t, catalog.Range{}.Contains(-1000))
	r := catalog.Range{Min: intp(1), Max: intp(10)}
	assert.True(t, r.Contains(1))
	assert.True(t, r.Contains(10))
	assert.False(t, r.Contains(0))
	assert.False(t, r.Contains(11))
}

func TestProperty_Range_BoundsInclusive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-100, 100).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+100).Draw(rt, "hi")
		v := rapid.IntRange(-300, 300).Draw(rt, "v")
		r := catalog.Range{Min: &lo, Max: &hi}
		assert.Equal(rt, v >= lo && v <= hi, r.Contains(v))
	})
}

func TestParseDomain(t *testing.T) {
	d, err := catalog.ParseDomain("abyss_jewel")
	require.NoError(t, err)
	assert.Equal(t, catalog.DomainAbyssJewel, d)
	assert.Equal(t, "abyss_jewel", d.String())
	_, err = catalog.ParseDomain("nope")
	assert.Error(t, err)
}

func TestParseGenerationType(t *testing.T) {
	for _, name := range []string{"prefix", "suffix", "unique", "corrupted", "enchantment", "blight_tower", "tempest"} {
		g, err := catalog.ParseGenerationType(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, g.String())
	}
	assert.True(t, catalog.GenPrefix.IsAffix())
	assert.True(t, catalog.GenSuffix.IsAffix())
	assert.False(t, catalog.GenCorrupted.IsAffix())
}

func TestInterner_StableHandles(t *testing.T) {
	in := catalog.NewInterner()
	a := in.Stat("a")
	b := in.Stat("b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, in.Stat("a"))
	assert.Equal(t, "b", in.StatName(b))
	assert.Equal(t, "", in.StatName(99))
	_, ok := in.LookupStat("c")
	assert.False(t, ok)

	tag := in.Tag("default")
	assert.Equal(t, tag, in.Tag("default"))
	assert.Equal(t, "default", in.TagName(tag))
	assert.Equal(t, "", in.TagName(-1))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	// YAML rejects tab indentation; the fixtures are indented with tabs.
	content = strings.ReplaceAll(content, "\t", "  ")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AcceptsJSON(t *testing.T) {
	dir := t.TempDir()
	paths := catalog.Paths{
		Mods: writeFile(t, dir, "mods.json", `{
			"Dexterity1": {
				"name": "of the Mongoose", "domain": "item", "generation_type": "suffix",
				"group": "Dexterity", "required_level": 1,
				"spawn_weights": [{"tag": "default", "weight": 1000}],
				"generation_weights": [],
				"stats": [{"id": "additional_dexterity", "min": 8, "max": 12}],
				"adds_tags": [], "grants_buff": {}, "grants_effects": [], "type": "Dexterity",
				"is_essence_only": false
			}
		}`),
		Bases: writeFile(t, dir, "bases.json", `{
			"Ring1": {"domain": "item", "item_class": "Ring", "name": "Iron Ring",
			  "tags": ["ring", "default"], "properties": {}, "implicits": [],
			  "requirements": null, "inventory_width": 1, "inventory_height": 1}
		}`),
		Descriptions: writeFile(t, dir, "descs.json", `[
			{"ids": ["additional_dexterity"], "English": [
				{"condition": [{"min": null, "max": null}], "format": ["+#"],
				 "index_handlers": [[]], "string": "{0} to Dexterity"}
			]}
		]`),
	}
	cat, err := catalog.Load(paths)
	require.NoError(t, err)
	require.Len(t, cat.Modifiers, 1)
	assert.Equal(t, catalog.DomainItem, cat.Modifiers[0].Domain)
	require.Len(t, cat.Bases, 1)
	assert.Nil(t, cat.Bases[0].Requirements)
	require.Len(t, cat.Descriptions, 1)
	cond := cat.Descriptions[0].Alternatives[0].Conditions[0]
	assert.Nil(t, cond.Min)
	assert.Nil(t, cond.Max)
}

func TestLoad_UnknownEnumFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mods.yaml", `
Bad1:
  domain: item
  generation_type: infix
`)
	_, err := catalog.LoadModifiers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "infix")
}

func TestLoad_MissingDomainOrGenerationTypeFails(t *testing.T) {
	dir := t.TempDir()
	descs := writeFile(t, dir, "descs.yaml", "[]\n")
	goodBases := writeFile(t, dir, "bases.yaml", `
Ring1:
  domain: item
  item_class: Ring
  name: Iron Ring
`)
	untyped := writeFile(t, dir, "mods.yaml", `
Untyped1:
  domain: item
  group: Life
  spawn_weights: [{tag: default, weight: 1000}]
  stats: [{id: base_maximum_life, min: 10, max: 19}]
`)
	_, err := catalog.Load(catalog.Paths{Mods: untyped, Bases: goodBases, Descriptions: descs})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Untyped1")
	assert.Contains(t, err.Error(), "generation_type must be set")

	goodMods := writeFile(t, dir, "mods_ok.yaml", `
Life1:
  domain: item
  generation_type: prefix
  group: Life
  spawn_weights: [{tag: default, weight: 1000}]
  stats: [{id: base_maximum_life, min: 10, max: 19}]
`)
	noDomain := writeFile(t, dir, "bases_bad.yaml", `
Ring1:
  item_class: Ring
  name: Iron Ring
`)
	_, err = catalog.Load(catalog.Paths{Mods: goodMods, Bases: noDomain, Descriptions: descs})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ring1")
	assert.Contains(t, err.Error(), "domain must be set")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := catalog.Load(catalog.Paths{Mods: "/nonexistent/mods.yaml"})
	assert.Error(t, err)
}

func TestLoad_ShippedContent(t *testing.T) {
	root := filepath.Join("..", "..", "..", "content")
	cat, err := catalog.Load(catalog.Paths{
		Mods:         filepath.Join(root, "mods.yaml"),
		Bases:        filepath.Join(root, "bases.yaml"),
		Descriptions: filepath.Join(root, "stat_descriptions.yaml"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Modifiers)
	_, ok := cat.FirstBaseOfClass("Two Hand Sword")
	assert.True(t, ok)
	_, ok = cat.FirstBaseOfClass("Jewel")
	assert.True(t, ok)
}
