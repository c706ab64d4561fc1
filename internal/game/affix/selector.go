package affix

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/craftsim/internal/game/catalog"
	"github.com/cory-johannsen/craftsim/internal/game/dice"
	"github.com/cory-johannsen/craftsim/internal/game/item"
)

// ErrNoEligibleModifier is returned when a draw finds every candidate at
// weight 0. It indicates content that cannot fill the slots the item needs.
var ErrNoEligibleModifier = errors.New("affix: no eligible modifier")

// Relative weights of the explicit totals a Rare item is created with.
var (
	rareJewelCounts = []uint64{13, 7}   // 3, 4
	rareCounts      = []uint64{8, 3, 1} // 4, 5, 6
)

// Selector rolls explicit modifiers onto items.
//
// A Selector owns its Sampler and must not be shared between goroutines; the
// Catalog it reads may be.
type Selector struct {
	cat        *catalog.Catalog
	candidates []catalog.ModID
	sampler    *dice.Sampler
	logger     *zap.Logger
	weights    []uint64
}

// NewSelector creates a Selector drawing from every affix in cat.
//
// Precondition: cat and sampler must be non-nil. A nil logger disables logging.
func NewSelector(cat *catalog.Catalog, sampler *dice.Sampler, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Selector{cat: cat, sampler: sampler, logger: logger}
	// Non-affix generation types can never be drawn; leave them out of the
	// weighing loop.
	for i := range cat.Modifiers {
		if cat.Modifiers[i].GenerationType.IsAffix() {
			s.candidates = append(s.candidates, catalog.ModID(i))
		}
	}
	s.weights = make([]uint64, len(s.candidates))
	return s
}

// RollCount returns how many explicits an item of the given rarity and class
// is created with.
//
// Postcondition: Normal and Unique yield 0; Magic yields 1 or 2; Rare jewels
// yield 3 or 4 weighted 13:7; other Rares yield 4, 5 or 6 weighted 8:3:1.
func (s *Selector) RollCount(r item.Rarity, class string) int {
	switch r {
	case item.Magic:
		if s.sampler.Flip() {
			return 1
		}
		return 2
	case item.Rare:
		if item.IsJewelClass(class) {
			return s.pick(rareJewelCounts) + 3
		}
		return s.pick(rareCounts) + 4
	}
	return 0
}

func (s *Selector) pick(weights []uint64) int {
	i, err := s.sampler.WeightedIndex(weights)
	if err != nil {
		panic("affix: fixed count weights rejected: " + err.Error())
	}
	return i
}

// Generate performs count draws on it under the affix limits of the target
// rarity, appending one rolled modifier per draw. The scale is rebuilt before
// every draw.
//
// Postcondition: on success len(it.Explicits) grew by count. On error it is
// left exactly as it was before the call.
func (s *Selector) Generate(it *item.Item, count int, target item.Rarity) error {
	before := len(it.Explicits)
	for n := 0; n < count; n++ {
		scale := NewScale(s.cat, it, target)
		for i, id := range s.candidates {
			s.weights[i] = scale.Weight(s.cat.Modifier(id))
		}

		i, err := s.sampler.WeightedIndex(s.weights)
		if err != nil {
			it.Explicits = it.Explicits[:before]
			base := s.cat.Base(it.Base).Name
			if errors.Is(err, dice.ErrNoWeight) {
				return fmt.Errorf("%w: draw %d of %d on %q (level %d): %v",
					ErrNoEligibleModifier, n+1, count, base, it.Level, err)
			}
			return fmt.Errorf("affix: draw %d of %d on %q (level %d): %w",
				n+1, count, base, it.Level, err)
		}

		inst := s.roll(s.candidates[i])
		it.Explicits = append(it.Explicits, inst)
		m := s.cat.Modifier(inst.Mod)
		s.logger.Debug("affix rolled",
			zap.String("item", it.ID),
			zap.String("modifier", m.Key),
			zap.Ints("rolls", inst.Rolls),
			zap.Strings("adds_tags", s.cat.TagNames(m.AddsTags)),
		)
	}
	return nil
}

// roll instantiates a modifier by rolling each stat independently.
func (s *Selector) roll(id catalog.ModID) item.ModifierInstance {
	m := s.cat.Modifier(id)
	rolls := make([]int, len(m.Stats))
	for i, st := range m.Stats {
		rolls[i] = s.sampler.IntRange(st.Min, st.Max)
	}
	return item.ModifierInstance{Mod: id, Rolls: rolls}
}

// ApplyAlchemy upgrades a Normal item to Rare with a fresh set of explicits.
// Items of any other rarity are returned unchanged.
//
// Postcondition: on success a previously Normal item is Rare. On error the
// item is unchanged.
func (s *Selector) ApplyAlchemy(it *item.Item) error {
	return s.upgrade(it, item.Rare)
}

// ApplyTransmutation upgrades a Normal item to Magic with one or two explicits.
// Items of any other rarity are returned unchanged.
//
// Postcondition: on success a previously Normal item is Magic. On error the
// item is unchanged.
func (s *Selector) ApplyTransmutation(it *item.Item) error {
	return s.upgrade(it, item.Magic)
}

func (s *Selector) upgrade(it *item.Item, target item.Rarity) error {
	if it.Rarity != item.Normal {
		return nil
	}
	count := s.RollCount(target, s.cat.Base(it.Base).ItemClass)
	if err := s.Generate(it, count, target); err != nil {
		return err
	}
	it.Rarity = target
	return nil
}

// Scour strips every explicit and returns the item to Normal. Unique items are
// left unchanged.
func Scour(it *item.Item) {
	if it.Rarity == item.Unique {
		return
	}
	it.Explicits = nil
	it.Rarity = item.Normal
}
