package craft

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/craftsim/internal/game/affix"
	"github.com/cory-johannsen/craftsim/internal/game/catalog"
	"github.com/cory-johannsen/craftsim/internal/game/describe"
	"github.com/cory-johannsen/craftsim/internal/game/dice"
	"github.com/cory-johannsen/craftsim/internal/game/item"
)

// ErrUnknownBase is returned when a plan names a base key or item class the
// catalog does not have.
var ErrUnknownBase = errors.New("craft: unknown base")

// RolledModifier is the portable form of a rolled explicit.
type RolledModifier struct {
	Key            string `json:"key"`
	GenerationType string `json:"generation_type"`
	Rolls          []int  `json:"rolls"`
}

// Result is the outcome of crafting one item of a batch.
type Result struct {
	// Index is the item's position in the plan.
	Index     int
	BaseKey   string
	ItemClass string
	Item      *item.Item
	// Err is set when the transform could not be applied. The remaining
	// fields are then zero apart from Index, BaseKey, ItemClass and Item,
	// which holds the untouched Normal item.
	Err         error
	Explicits   []RolledModifier
	Properties  catalog.Properties
	Description describe.Description
	// Text is the rendered display block.
	Text string
}

// Store persists successful results.
type Store interface {
	Save(ctx context.Context, r Result) error
}

// Runner crafts batches against a shared catalog.
type Runner struct {
	cat     *catalog.Catalog
	engine  *describe.Engine
	effects *item.Effects
	logger  *zap.Logger
	store   Store
}

// NewRunner creates a Runner. store may be nil to skip persistence.
//
// Precondition: cat, engine and effects must be non-nil and built from the
// same catalog. A nil logger disables logging.
func NewRunner(cat *catalog.Catalog, engine *describe.Engine, effects *item.Effects, logger *zap.Logger, store Store) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cat: cat, engine: engine, effects: effects, logger: logger, store: store}
}

// ResolveBase returns the base a plan crafts on.
func (r *Runner) ResolveBase(p Plan) (catalog.BaseID, error) {
	if p.BaseKey != "" {
		id, ok := r.cat.BaseByKey(p.BaseKey)
		if !ok {
			return 0, fmt.Errorf("%w: key %q", ErrUnknownBase, p.BaseKey)
		}
		return id, nil
	}
	id, ok := r.cat.FirstBaseOfClass(p.ItemClass)
	if !ok {
		return 0, fmt.Errorf("%w: no base of class %q", ErrUnknownBase, p.ItemClass)
	}
	return id, nil
}

// Run crafts p.Count items and returns one Result per item in plan order.
//
// Items are spread over p.Workers goroutines; worker w crafts items w,
// w+Workers, w+2*Workers... with its own sampler, so a seeded plan yields the
// same results for the same worker count. A per-item generation failure is
// recorded in that Result and does not stop the batch. Context cancellation
// and store failures abort the run and are returned with the results
// gathered so far.
//
// Precondition: p must pass Validate.
func (r *Runner) Run(ctx context.Context, p Plan) ([]Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	base, err := r.ResolveBase(p)
	if err != nil {
		return nil, err
	}
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > p.Count {
		workers = max(p.Count, 1)
	}

	r.logger.Info("crafting batch",
		zap.String("base", r.cat.Base(base).Key),
		zap.Int("count", p.Count),
		zap.String("transform", string(p.Transform)),
		zap.Int("workers", workers),
		zap.Uint64("seed", p.Seed),
	)

	results := make([]Result, p.Count)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			sel := affix.NewSelector(r.cat, dice.NewSampler(sourceFor(p.Seed, w), r.logger), r.logger)
			for i := w; i < p.Count; i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				res := r.craft(sel, base, p, i)
				results[i] = res
				if res.Err != nil || r.store == nil {
					continue
				}
				if err := r.store.Save(gctx, res); err != nil {
					return fmt.Errorf("saving item %d: %w", i, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func sourceFor(seed uint64, worker int) dice.Source {
	if seed == 0 {
		return dice.NewCryptoSource()
	}
	return dice.NewSeededSource(seed + uint64(worker))
}

func (r *Runner) craft(sel *affix.Selector, baseID catalog.BaseID, p Plan, i int) Result {
	base := r.cat.Base(baseID)
	it := item.New(base.Name, baseID, p.ItemLevel, p.Quality)
	res := Result{Index: i, BaseKey: base.Key, ItemClass: base.ItemClass, Item: it}

	var err error
	switch p.Transform {
	case TransformAlchemy:
		err = sel.ApplyAlchemy(it)
	case TransformTransmutation:
		err = sel.ApplyTransmutation(it)
	}
	if err != nil {
		r.logger.Warn("item generation failed", zap.Int("index", i), zap.Error(err))
		res.Err = err
		return res
	}

	res.Explicits = make([]RolledModifier, len(it.Explicits))
	for j, e := range it.Explicits {
		m := r.cat.Modifier(e.Mod)
		res.Explicits[j] = RolledModifier{Key: m.Key, GenerationType: m.GenerationType.String(), Rolls: e.Rolls}
	}
	res.Properties = it.Properties(r.cat, r.effects)
	res.Description = r.engine.DescribeAll(it)
	res.Text = r.engine.Display(it, res.Properties, res.Description)
	return res
}
