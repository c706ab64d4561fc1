// Package main provides the craftsim binary, which crafts a batch of items
// from the loaded content and prints each one's display block.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/craftsim/internal/config"
	"github.com/cory-johannsen/craftsim/internal/craft"
	"github.com/cory-johannsen/craftsim/internal/game/catalog"
	"github.com/cory-johannsen/craftsim/internal/game/describe"
	"github.com/cory-johannsen/craftsim/internal/game/item"
	"github.com/cory-johannsen/craftsim/internal/observability"
	"github.com/cory-johannsen/craftsim/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (defaults and CRAFTSIM_* env only when empty)")
	modsPath := flag.String("mods", "", "path to the modifier catalog")
	basesPath := flag.String("bases", "", "path to the base item catalog")
	descPath := flag.String("descriptions", "", "path to the stat description catalog")
	class := flag.String("class", "", "item class to craft; the first base of the class is used")
	base := flag.String("base", "", "base item key to craft; overrides -class")
	count := flag.Int("count", 0, "number of items to craft")
	level := flag.Int("level", 0, "item level")
	quality := flag.Int("quality", 0, "item quality")
	imbued := flag.Bool("imbued", false, "quality is imbued rather than normal")
	transform := flag.String("transform", "", "alchemy, transmutation or none")
	seed := flag.Uint64("seed", 0, "seed for a reproducible batch (0 = random)")
	workers := flag.Int("workers", 0, "number of concurrent crafting workers")
	store := flag.Bool("store", false, "save crafted items to the database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mods":
			cfg.Catalog.Mods = *modsPath
		case "bases":
			cfg.Catalog.Bases = *basesPath
		case "descriptions":
			cfg.Catalog.Descriptions = *descPath
		case "class":
			cfg.Generation.ItemClass = *class
		case "base":
			cfg.Generation.Base = *base
		case "count":
			cfg.Generation.Count = *count
		case "level":
			cfg.Generation.ItemLevel = *level
		case "quality":
			cfg.Generation.Quality = *quality
		case "imbued":
			if *imbued {
				cfg.Generation.QualityKind = "imbued"
			} else {
				cfg.Generation.QualityKind = "normal"
			}
		case "transform":
			cfg.Generation.Transform = *transform
		case "seed":
			cfg.Generation.Seed = *seed
		case "workers":
			cfg.Generation.Workers = *workers
		case "store":
			cfg.Storage.Enabled = *store
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catStart := time.Now()
	cat, err := catalog.Load(catalog.Paths{
		Mods:         cfg.Catalog.Mods,
		Bases:        cfg.Catalog.Bases,
		Descriptions: cfg.Catalog.Descriptions,
	})
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("modifiers", len(cat.Modifiers)),
		zap.Int("bases", len(cat.Bases)),
		zap.Int("descriptions", len(cat.Descriptions)),
		zap.Duration("elapsed", time.Since(catStart)),
	)

	plan, err := planFromConfig(cfg.Generation)
	if err != nil {
		logger.Fatal("building plan", zap.Error(err))
	}

	var sink craft.Store
	if cfg.Storage.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		if err := pool.Health(ctx, cfg.Database.ConnectTimeout); err != nil {
			logger.Fatal("database not reachable",
				zap.String("host", cfg.Database.Host),
				zap.Duration("timeout", cfg.Database.ConnectTimeout),
				zap.Error(err),
			)
		}
		logger.Info("database connected", zap.String("host", cfg.Database.Host))
		sink = postgres.NewCraftRepository(pool.DB())
	}

	var describeOpts []describe.Option
	if cfg.Catalog.IndexHandlers {
		describeOpts = append(describeOpts, describe.WithIndexHandlers())
	}
	engine := describe.NewEngine(cat, logger, describeOpts...)
	runner := craft.NewRunner(cat, engine, item.NewEffects(cat.Intern), logger, sink)

	results, runErr := runner.Run(ctx, plan)
	for _, r := range results {
		switch {
		case r.Item == nil:
			// not reached before the run stopped
		case r.Err != nil:
			fmt.Fprintf(os.Stderr, "item %d: %v\n", r.Index, r.Err)
		default:
			fmt.Fprintln(os.Stdout, r.Text)
		}
	}
	fmt.Fprint(os.Stdout, craft.Summarize(results).String())

	if runErr != nil {
		logger.Error("crafting stopped", zap.Error(runErr))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
}

func planFromConfig(g config.GenerationConfig) (craft.Plan, error) {
	transform, err := craft.ParseTransform(g.Transform)
	if err != nil {
		return craft.Plan{}, err
	}
	kind, err := craft.ParseQualityKind(g.QualityKind)
	if err != nil {
		return craft.Plan{}, err
	}
	return craft.Plan{
		Count:     g.Count,
		BaseKey:   g.Base,
		ItemClass: g.ItemClass,
		ItemLevel: g.ItemLevel,
		Quality:   item.Quality{Amount: g.Quality, Kind: kind},
		Transform: transform,
		Seed:      g.Seed,
		Workers:   g.Workers,
	}, nil
}
