package catalog

// StatID is an interned stat identifier.
type StatID int32

// TagID is an interned item tag.
type TagID int32

// Interner assigns dense integer handles to stat ids and tags so the rest of
// the system never compares strings on the hot path.
//
// An Interner is mutated only while a Catalog is being built.
type Interner struct {
	stats    map[string]StatID
	statKeys []string
	tags     map[string]TagID
	tagKeys  []string
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{
		stats: make(map[string]StatID),
		tags:  make(map[string]TagID),
	}
}

// Stat returns the handle for name, allocating one on first use.
func (in *Interner) Stat(name string) StatID {
	if id, ok := in.stats[name]; ok {
		return id
	}
	id := StatID(len(in.statKeys))
	in.stats[name] = id
	in.statKeys = append(in.statKeys, name)
	return id
}

// LookupStat returns the handle for name without allocating.
func (in *Interner) LookupStat(name string) (StatID, bool) {
	id, ok := in.stats[name]
	return id, ok
}

// StatName returns the string a StatID was interned from.
func (in *Interner) StatName(id StatID) string {
	if id < 0 || int(id) >= len(in.statKeys) {
		return ""
	}
	return in.statKeys[id]
}

// Tag returns the handle for name, allocating one on first use.
func (in *Interner) Tag(name string) TagID {
	if id, ok := in.tags[name]; ok {
		return id
	}
	id := TagID(len(in.tagKeys))
	in.tags[name] = id
	in.tagKeys = append(in.tagKeys, name)
	return id
}

// TagName returns the string a TagID was interned from.
func (in *Interner) TagName(id TagID) string {
	if id < 0 || int(id) >= len(in.tagKeys) {
		return ""
	}
	return in.tagKeys[id]
}
