// Package craft runs batches of item generations: it creates items from a
// base, applies a crafting transform to each and collects the rendered
// results.
package craft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/craftsim/internal/game/item"
)

// Transform names the currency applied to each freshly created item.
type Transform string

const (
	// TransformAlchemy upgrades Normal items to Rare.
	TransformAlchemy Transform = "alchemy"
	// TransformTransmutation upgrades Normal items to Magic.
	TransformTransmutation Transform = "transmutation"
	// TransformNone leaves items Normal.
	TransformNone Transform = "none"
)

// ParseTransform converts a transform name to a Transform.
func ParseTransform(s string) (Transform, error) {
	switch t := Transform(strings.ToLower(s)); t {
	case TransformAlchemy, TransformTransmutation, TransformNone:
		return t, nil
	}
	return "", fmt.Errorf("unknown transform %q", s)
}

// ParseQualityKind converts "normal" or "imbued" to an item.QualityKind.
func ParseQualityKind(s string) (item.QualityKind, error) {
	switch strings.ToLower(s) {
	case "normal", "":
		return item.QualityNormal, nil
	case "imbued":
		return item.QualityImbued, nil
	}
	return 0, fmt.Errorf("unknown quality kind %q", s)
}

// Plan describes one batch.
type Plan struct {
	Count int
	// BaseKey names the base template. When empty, the first base of
	// ItemClass in catalog order is used.
	BaseKey   string
	ItemClass string
	ItemLevel int
	Quality   item.Quality
	Transform Transform
	// Seed makes the batch reproducible: worker i draws from a source seeded
	// with Seed+i. Zero uses the OS entropy source.
	Seed    uint64
	Workers int
}

// Validate checks the plan's invariants.
//
// Postcondition: returns nil iff the plan can be run.
func (p Plan) Validate() error {
	var errs []error
	if p.Count < 0 {
		errs = append(errs, fmt.Errorf("count must be >= 0, got %d", p.Count))
	}
	if p.BaseKey == "" && p.ItemClass == "" {
		errs = append(errs, errors.New("base key or item class must be set"))
	}
	if p.ItemLevel < 0 {
		errs = append(errs, fmt.Errorf("item level must be >= 0, got %d", p.ItemLevel))
	}
	if p.Quality.Amount < 0 {
		errs = append(errs, fmt.Errorf("quality must be >= 0, got %d", p.Quality.Amount))
	}
	if _, err := ParseTransform(string(p.Transform)); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid plan: %w", errors.Join(errs...))
	}
	return nil
}
