package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paveg/salarydash/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.DefaultDataSource, cfg.DataSource)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 30, cfg.HistogramBins)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.MetricsCollection)
	assert.False(t, cfg.Verbose)

	require.Len(t, cfg.Roles, 3)
	assert.Equal(t, "Data Scientist", cfg.Roles[0].Role)
	assert.Equal(t, "Data Engineer", cfg.Roles[1].Role)
	assert.Equal(t, "Data Analyst", cfg.Roles[2].Role)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:   "valid config",
			mutate: func(*config.Config) {},
		},
		{
			name:          "empty data source",
			mutate:        func(c *config.Config) { c.DataSource = "" },
			expectedError: "data_source must not be empty",
		},
		{
			name:          "zero port",
			mutate:        func(c *config.Config) { c.Port = 0 },
			expectedError: "port must be positive, got 0",
		},
		{
			name:          "port out of range",
			mutate:        func(c *config.Config) { c.Port = 70000 },
			expectedError: "port must be at most 65535, got 70000",
		},
		{
			name:          "negative top n",
			mutate:        func(c *config.Config) { c.TopN = -1 },
			expectedError: "top_n must be positive, got -1",
		},
		{
			name:          "zero bins",
			mutate:        func(c *config.Config) { c.HistogramBins = 0 },
			expectedError: "histogram_bins must be positive, got 0",
		},
		{
			name:          "negative timeout",
			mutate:        func(c *config.Config) { c.FetchTimeout = -time.Second },
			expectedError: "fetch_timeout must be non-negative",
		},
		{
			name:          "negative workers",
			mutate:        func(c *config.Config) { c.Workers = -2 },
			expectedError: "workers must be non-negative, got -2",
		},
		{
			name:          "unknown log format",
			mutate:        func(c *config.Config) { c.LogFormat = "xml" },
			expectedError: `log_format must be "text" or "json", got "xml"`,
		},
		{
			name:          "blank role",
			mutate:        func(c *config.Config) { c.Roles = []config.RoleTarget{{Title: "x"}} },
			expectedError: "roles[0].role must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectedError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Run("zero config", func(t *testing.T) {
		cfg := config.Config{}.WithDefaults()
		assert.Equal(t, config.NewConfig(), cfg)
	})

	t.Run("keeps explicit values and titles roles", func(t *testing.T) {
		cfg := config.Config{
			Port:  9090,
			TopN:  5,
			Roles: []config.RoleTarget{{Role: "ML Engineer"}},
		}.WithDefaults()

		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, 5, cfg.TopN)
		assert.Equal(t, 30, cfg.HistogramBins)
		require.Len(t, cfg.Roles, 1)
		assert.Equal(t, "Mean ML Engineer salary by country", cfg.Roles[0].Title)
	})
}

func TestConfig_Dump(t *testing.T) {
	cfg := config.NewConfig()
	cfg.TopN = 7

	out, err := cfg.Dump()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, 7, decoded["top_n"])
	assert.Equal(t, "30s", decoded["fetch_timeout"])
	assert.Equal(t, config.DefaultDataSource, decoded["data_source"])
	assert.Len(t, decoded["roles"], 3)
}

func TestLoad(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		cfg, used, err := config.Load("", nil)
		require.NoError(t, err)
		assert.Empty(t, used)
		assert.Equal(t, config.NewConfig(), cfg)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "salarydash.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
data_source: ./data.csv
top_n: 3
fetch_timeout: 5s
roles:
  - role: ML Engineer
    title: ML pay
`), 0o600))

		cfg, used, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, path, used)
		assert.Equal(t, "./data.csv", cfg.DataSource)
		assert.Equal(t, 3, cfg.TopN)
		assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
		assert.Equal(t, []config.RoleTarget{{Role: "ML Engineer", Title: "ML pay"}}, cfg.Roles)
		assert.Equal(t, 30, cfg.HistogramBins)
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "salarydash.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"port": 9000, "log_format": "json"}`), 0o600))

		cfg, _, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "salarydash.yaml")
		require.NoError(t, os.WriteFile(path, []byte("top_n: 3\n"), 0o600))
		t.Setenv("SALARYDASH_TOP_N", "4")
		t.Setenv("SALARYDASH_METRICS_COLLECTION", "true")

		cfg, _, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.TopN)
		assert.True(t, cfg.MetricsCollection)
	})

	t.Run("changed flags override env", func(t *testing.T) {
		t.Setenv("SALARYDASH_PORT", "9000")
		t.Setenv("SALARYDASH_HISTOGRAM_BINS", "12")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.Int("port", 0, "")
		flags.Int("histogram-bins", 0, "")
		require.NoError(t, flags.Parse([]string{"--port", "7000"}))

		cfg, _, err := config.Load("", flags)
		require.NoError(t, err)
		assert.Equal(t, 7000, cfg.Port)
		assert.Equal(t, 12, cfg.HistogramBins, "unchanged flag must not mask env")
	})

	t.Run("invalid result", func(t *testing.T) {
		t.Setenv("SALARYDASH_TOP_N", "-2")
		_, _, err := config.Load("", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "top_n must be positive")
	})
}
