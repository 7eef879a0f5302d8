package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading.
type Loader interface {
	// Load loads configuration with the priority
	// defaults → config file → environment variables (env wins).
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a loader reading .ivraudit/config.yml under rootDir and
// IVRAUDIT_* environment variables.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.rootDir + "/.ivraudit")

	v.SetEnvPrefix("IVRAUDIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("audit.workers")
	v.BindEnv("audit.history_db")
	v.BindEnv("audit.cache_size")
	v.BindEnv("audit.debug_trace")
	v.BindEnv("export.dir")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine: defaults plus env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("audit.workers", def.Audit.Workers)
	v.SetDefault("audit.history_db", def.Audit.HistoryDB)
	v.SetDefault("audit.cache_size", def.Audit.CacheSize)
	v.SetDefault("audit.debug_trace", def.Audit.DebugTrace)
	v.SetDefault("paths.include", def.Paths.Include)
	v.SetDefault("paths.ignore", def.Paths.Ignore)
	v.SetDefault("export.dir", def.Export.Dir)
}
