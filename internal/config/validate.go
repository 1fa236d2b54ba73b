package config

import (
	"fmt"

	"github.com/heartmarshall/wordnet-translator/internal/translator"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Service credentials are checked separately by ValidateCredentials so that
// dry runs and store-only commands work without them.
func (c *Config) Validate() error {
	if err := c.Translator.validate(); err != nil {
		return fmt.Errorf("translator: %w", err)
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.Mongo.URI == "" {
			return fmt.Errorf("store.mongo.uri is required")
		}
	case DriverPostgres:
		if c.Store.Postgres.DSN == "" {
			return fmt.Errorf("store.postgres.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("store.driver must be %q or %q (got %q)", DriverMongo, DriverPostgres, c.Store.Driver)
	}

	return nil
}

// ValidateCredentials checks that the service selected by the translator
// method has its credentials configured.
func (c *Config) ValidateCredentials() error {
	switch translator.Method(c.Translator.Method).Provider() {
	case "google":
		if c.Google.CredentialsFile == "" {
			return fmt.Errorf("google.credentials_file is required for method %s", c.Translator.Method)
		}
	default:
		if c.Bing.KeyFile == "" {
			return fmt.Errorf("bing.key_file is required for method %s", c.Translator.Method)
		}
	}
	return nil
}

func (t *TranslatorConfig) validate() error {
	if !translator.Method(t.Method).IsValid() {
		return fmt.Errorf("unknown method %q (want one of %v)", t.Method, translator.Methods)
	}
	if t.GroupBy < 1 {
		return fmt.Errorf("group_by must be >= 1 (got %d)", t.GroupBy)
	}
	if t.SourceLanguage == "" || t.TargetLanguage == "" {
		return fmt.Errorf("source_language and target_language are required")
	}
	if t.Sleep < 0 {
		return fmt.Errorf("sleep must be >= 0 (got %s)", t.Sleep)
	}
	if t.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1 (got %d)", t.BatchSize)
	}
	if t.PricePerMB < 0 {
		return fmt.Errorf("price_per_mb must be >= 0 (got %v)", t.PricePerMB)
	}
	return nil
}

// Options converts the settings into sliding window options.
func (t TranslatorConfig) Options() translator.Options {
	return translator.Options{
		GroupBy:        t.GroupBy,
		AddOr:          t.AddOr,
		AddQuotes:      t.AddQuotes,
		CombineInOne:   t.CombineInOne,
		AddAuxWords:    t.AddAuxWords,
		SourceLanguage: t.SourceLanguage,
		TargetLanguage: t.TargetLanguage,
	}
}

// EffectivePricePerMB returns the configured price or the method default.
func (t TranslatorConfig) EffectivePricePerMB() float64 {
	if t.PricePerMB > 0 {
		return t.PricePerMB
	}
	return translator.Method(t.Method).DefaultPricePerMB()
}
