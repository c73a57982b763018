package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/matzehuels/schemaview/pkg/errors"
)

// EnvPrefix prefixes every environment variable schemaview reads.
const EnvPrefix = "SCHEMAVIEW_"

// LoadDotEnv loads .env files into the process environment. Variables that
// are already set win over the files. Missing files are skipped; with no
// arguments ".env" is tried.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", f)
		}
	}
	return nil
}

// ApplyEnv overrides settings from SCHEMAVIEW_* variables named by the env
// tags of Config. A nil environ reads the process environment. Empty
// values leave the setting unchanged.
func (c *Config) ApplyEnv(environ map[string]string) error {
	err := env.ParseWithOptions(c, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read environment")
	}
	return nil
}
