// Package describe renders the human-readable text of rolled modifiers from
// stat description templates, and the display block of a whole item.
package describe

import (
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/craftsim/internal/game/catalog"
	"github.com/cory-johannsen/craftsim/internal/game/item"
)

// NoMatchLine is emitted in place of a template group when none of its
// alternatives accepts the collected rolls.
const NoMatchLine = "ERROR: None of the description alternatives match."

const (
	ignoreDirective = "ignore"
	rollMarker      = "#"
)

// Description is the rendered text of one or more modifier instances.
type Description struct {
	Lines []string
	// Unmapped lists stats that had no description template, in the order
	// they were dropped.
	Unmapped []string
	// Unmatched counts template groups rendered as NoMatchLine.
	Unmatched int
}

// String joins the lines with newlines.
func (d Description) String() string {
	return strings.Join(d.Lines, "\n")
}

func (d *Description) merge(o Description) {
	d.Lines = append(d.Lines, o.Lines...)
	d.Unmapped = append(d.Unmapped, o.Unmapped...)
	d.Unmatched += o.Unmatched
}

// Engine renders modifier text. It is read-only after construction and safe
// for concurrent use.
type Engine struct {
	cat      *catalog.Catalog
	byStat   map[catalog.StatID]int
	logger   *zap.Logger
	handlers bool
	unknown  sync.Map // index handler names already reported
}

// Option configures an Engine.
type Option func(*Engine)

// WithIndexHandlers makes the engine run each slot's index handlers over the
// roll before printing it. Without it the # marker prints the raw roll.
func WithIndexHandlers() Option {
	return func(e *Engine) { e.handlers = true }
}

// NewEngine indexes every description template in cat by each stat it covers.
// When templates overlap the first one keeps the stat.
//
// Precondition: cat must be non-nil. A nil logger disables logging.
func NewEngine(cat *catalog.Catalog, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		cat:    cat,
		byStat: make(map[catalog.StatID]int),
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	for i, tmpl := range cat.Descriptions {
		for _, stat := range tmpl.Stats {
			if prev, ok := e.byStat[stat]; ok {
				if prev != i {
					logger.Warn("stat covered by multiple description templates",
						zap.String("stat", cat.StatName(stat)),
						zap.Int("kept", prev),
						zap.Int("ignored", i),
					)
				}
				continue
			}
			e.byStat[stat] = i
		}
	}
	return e
}

// Describe renders one modifier instance.
//
// The instance's (stat, roll) pairs form a pool. The last pair in the pool is
// the anchor: its template claims one matching pair per slot, in template
// order, and slots with no pair read 0. A stat without a template is dropped
// and reported in Unmapped.
//
// Postcondition: every pair of inst is consumed exactly once.
func (e *Engine) Describe(inst item.ModifierInstance) Description {
	var d Description
	pool := inst.Stats(e.cat)
	for len(pool) > 0 {
		anchor := pool[len(pool)-1]
		idx, ok := e.byStat[anchor.Stat]
		if !ok {
			name := e.cat.StatName(anchor.Stat)
			e.logger.Warn("no description for stat",
				zap.String("stat", name),
				zap.String("modifier", e.cat.Modifier(inst.Mod).Key),
			)
			d.Unmapped = append(d.Unmapped, name)
			pool = pool[:len(pool)-1]
			continue
		}

		tmpl := &e.cat.Descriptions[idx]
		var slots []int
		slots, pool = collect(tmpl.Stats, pool)

		line, ok := e.render(tmpl, slots)
		if !ok {
			e.logger.Warn("no description alternative matches",
				zap.String("stat", e.cat.StatName(anchor.Stat)),
				zap.String("modifier", e.cat.Modifier(inst.Mod).Key),
				zap.Ints("rolls", slots),
			)
			d.Unmatched++
			line = NoMatchLine
		}
		d.Lines = append(d.Lines, line)
	}
	return d
}

// DescribeAll renders every explicit of it in order.
func (e *Engine) DescribeAll(it *item.Item) Description {
	var d Description
	for _, inst := range it.Explicits {
		d.merge(e.Describe(inst))
	}
	return d
}

// collect removes the first pool entry for each template stat and returns the
// slot rolls alongside the shrunk pool. Pool order is preserved.
func collect(stats []catalog.StatID, pool []item.StatRoll) ([]int, []item.StatRoll) {
	slots := make([]int, len(stats))
	for i, stat := range stats {
		for j := range pool {
			if pool[j].Stat == stat {
				slots[i] = pool[j].Roll
				pool = append(pool[:j], pool[j+1:]...)
				break
			}
		}
	}
	return slots, pool
}

func (e *Engine) render(tmpl *catalog.DescriptionTemplate, slots []int) (string, bool) {
	for i := range tmpl.Alternatives {
		alt := &tmpl.Alternatives[i]
		if matches(alt, slots) {
			return e.substitute(alt, slots), true
		}
	}
	return "", false
}

func matches(alt *catalog.Alternative, slots []int) bool {
	for i, v := range slots {
		if i < len(alt.Conditions) && !alt.Conditions[i].Contains(v) {
			return false
		}
	}
	return true
}

func (e *Engine) substitute(alt *catalog.Alternative, slots []int) string {
	text := alt.Text
	for i, v := range slots {
		if i >= len(alt.Formats) || alt.Formats[i] == ignoreDirective {
			continue
		}
		var handlers []string
		if e.handlers && i < len(alt.IndexHandlers) {
			handlers = alt.IndexHandlers[i]
		}
		value := strings.ReplaceAll(alt.Formats[i], rollMarker, e.formatValue(handlers, v))
		text = strings.ReplaceAll(text, "{"+strconv.Itoa(i)+"}", value)
	}
	return text
}
