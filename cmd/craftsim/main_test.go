package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/craftsim/internal/config"
	"github.com/cory-johannsen/craftsim/internal/craft"
	"github.com/cory-johannsen/craftsim/internal/game/item"
)

func TestPlanFromConfig(t *testing.T) {
	plan, err := planFromConfig(config.GenerationConfig{
		ItemClass:   "Two Hand Sword",
		Count:       100,
		ItemLevel:   1,
		Quality:     20,
		QualityKind: "imbued",
		Transform:   "transmutation",
		Seed:        9,
		Workers:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, craft.Plan{
		Count:     100,
		ItemClass: "Two Hand Sword",
		ItemLevel: 1,
		Quality:   item.Quality{Amount: 20, Kind: item.QualityImbued},
		Transform: craft.TransformTransmutation,
		Seed:      9,
		Workers:   3,
	}, plan)
}

func TestPlanFromConfig_RejectsUnknownNames(t *testing.T) {
	_, err := planFromConfig(config.GenerationConfig{Transform: "exalted", QualityKind: "normal"})
	assert.Error(t, err)
	_, err = planFromConfig(config.GenerationConfig{Transform: "alchemy", QualityKind: "shiny"})
	assert.Error(t, err)
}
