package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix for environment overrides, e.g. SALARYDASH_TOP_N.
const EnvPrefix = "SALARYDASH_"

// Config file names looked up in the working directory when none is given.
var defaultFiles = []string{"salarydash.yaml", "salarydash.yml", "salarydash.json"}

// findConfigFile returns the explicit path, or the first default file that
// exists, or "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range defaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds the configuration from layered sources.
// Precedence (highest to lowest): explicitly set flags > env vars > config file > defaults.
// JSON config files are read with the YAML parser, which accepts them as-is.
// It returns the config and the config file used, if any.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, string, error) {
	k := koanf.New(".")
	defaults := NewConfig()

	roles := make([]interface{}, 0, len(defaults.Roles))
	for _, r := range defaults.Roles {
		roles = append(roles, map[string]interface{}{"role": r.Role, "title": r.Title})
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data_source":        defaults.DataSource,
		"port":               defaults.Port,
		"top_n":              defaults.TopN,
		"histogram_bins":     defaults.HistogramBins,
		"roles":              roles,
		"fetch_timeout":      defaults.FetchTimeout.String(),
		"workers":            defaults.Workers,
		"metrics_collection": defaults.MetricsCollection,
		"verbose":            defaults.Verbose,
		"log_format":         defaults.LogFormat,
	}, "."), nil); err != nil {
		return Config{}, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return Config{}, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: SALARYDASH_TOP_N -> top_n
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Config{}, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, "", fmt.Errorf("unable to decode config: %w", err)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, used, nil
}
