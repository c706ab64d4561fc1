// Package config provides Viper-based configuration loading for craftsim.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	// ConnectTimeout bounds the startup health check.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path. Item text is written to
	// stdout, so logs default to stderr.
	Output string `mapstructure:"output"`
}

// CatalogConfig holds the paths of the content files loaded at startup.
type CatalogConfig struct {
	Mods         string `mapstructure:"mods"`
	Bases        string `mapstructure:"bases"`
	Descriptions string `mapstructure:"descriptions"`
	// IndexHandlers applies each template's index handlers to printed rolls.
	// Off, the # marker prints the raw roll.
	IndexHandlers bool `mapstructure:"index_handlers"`
}

// GenerationConfig describes the batch of items to craft.
type GenerationConfig struct {
	// ItemClass selects the first base of this class. Ignored when Base is set.
	ItemClass string `mapstructure:"item_class"`
	// Base is an explicit base template key.
	Base      string `mapstructure:"base"`
	Count     int    `mapstructure:"count"`
	ItemLevel int    `mapstructure:"item_level"`
	Quality   int    `mapstructure:"quality"`
	// QualityKind is "normal" or "imbued".
	QualityKind string `mapstructure:"quality_kind"`
	// Transform is "alchemy", "transmutation" or "none".
	Transform string `mapstructure:"transform"`
	// Seed makes the batch reproducible. 0 draws from the OS entropy source.
	Seed    uint64 `mapstructure:"seed"`
	Workers int    `mapstructure:"workers"`
}

// StorageConfig controls persistence of crafted items.
type StorageConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Generation GenerationConfig `mapstructure:"generation"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
}

// Validate checks all configuration invariants. Database settings are only
// checked when storage is enabled.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCatalog(c.Catalog); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGeneration(c.Generation); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Storage.Enabled {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCatalog(c CatalogConfig) error {
	var errs []string
	if c.Mods == "" {
		errs = append(errs, "catalog.mods must not be empty")
	}
	if c.Bases == "" {
		errs = append(errs, "catalog.bases must not be empty")
	}
	if c.Descriptions == "" {
		errs = append(errs, "catalog.descriptions must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGeneration(g GenerationConfig) error {
	var errs []string
	if g.ItemClass == "" && g.Base == "" {
		errs = append(errs, "generation.item_class or generation.base must be set")
	}
	if g.Count < 0 {
		errs = append(errs, fmt.Sprintf("generation.count must be >= 0, got %d", g.Count))
	}
	if g.ItemLevel < 0 {
		errs = append(errs, fmt.Sprintf("generation.item_level must be >= 0, got %d", g.ItemLevel))
	}
	if g.Quality < 0 {
		errs = append(errs, fmt.Sprintf("generation.quality must be >= 0, got %d", g.Quality))
	}
	validKinds := map[string]bool{"normal": true, "imbued": true}
	if !validKinds[g.QualityKind] {
		errs = append(errs, fmt.Sprintf("generation.quality_kind must be one of [normal, imbued], got %q", g.QualityKind))
	}
	validTransforms := map[string]bool{"alchemy": true, "transmutation": true, "none": true}
	if !validTransforms[g.Transform] {
		errs = append(errs, fmt.Sprintf("generation.transform must be one of [alchemy, transmutation, none], got %q", g.Transform))
	}
	if g.Workers < 1 {
		errs = append(errs, fmt.Sprintf("generation.workers must be >= 1, got %d", g.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks the database settings on their own, for tools that always
// need a database.
//
// Postcondition: Returns nil if the settings are usable, or an error describing all violations.
func (d DatabaseConfig) Validate() error {
	return validateDatabase(d)
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if d.ConnectTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("database.connect_timeout must be > 0, got %s", d.ConnectTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and
// environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with CRAFTSIM_ prefix
	v.SetEnvPrefix("CRAFTSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("catalog.mods", "content/mods.yaml")
	v.SetDefault("catalog.bases", "content/bases.yaml")
	v.SetDefault("catalog.descriptions", "content/stat_descriptions.yaml")
	v.SetDefault("catalog.index_handlers", false)

	v.SetDefault("generation.item_class", "Two Hand Sword")
	v.SetDefault("generation.base", "")
	v.SetDefault("generation.count", 100)
	v.SetDefault("generation.item_level", 1)
	v.SetDefault("generation.quality", 20)
	v.SetDefault("generation.quality_kind", "normal")
	v.SetDefault("generation.transform", "alchemy")
	v.SetDefault("generation.seed", 0)
	v.SetDefault("generation.workers", 1)

	v.SetDefault("storage.enabled", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "craftsim")
	v.SetDefault("database.password", "craftsim")
	v.SetDefault("database.name", "craftsim")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.connect_timeout", "5s")
}
