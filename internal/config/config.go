// Package config loads pharmcat's configuration via Viper, in the shape
// the teacher's cmd/vibe-vep/config.go established: a YAML file plus
// environment overrides, read once at startup and exposed as a typed
// struct for the rest of the program.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the full set of tunables the match pipeline and CLI read.
type Config struct {
	Catalog struct {
		Dir    string `mapstructure:"dir"`
		DuckDB string `mapstructure:"duckdb"`
	} `mapstructure:"catalog"`

	Match struct {
		PermutationCap  int  `mapstructure:"permutationCap"`
		AllMatches      bool `mapstructure:"allMatches"`
		UseCombinations bool `mapstructure:"useCombinations"`
		Workers         int  `mapstructure:"workers"`
	} `mapstructure:"match"`

	Server struct {
		Addr      string `mapstructure:"addr"`
		CacheSize int    `mapstructure:"cacheSize"`
	} `mapstructure:"server"`

	Verbose bool `mapstructure:"verbose"`
}

// defaultConfigName is the config file pharmcat reads from the user's home
// directory, mirroring the teacher's ~/.vibe-vep.yaml convention.
const defaultConfigName = ".pharmcat.yaml"

// Load reads configuration from (in ascending precedence) defaults, the
// config file, and PHARMCAT_-prefixed environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PHARMCAT")
	v.AutomaticEnv()

	v.SetDefault("match.permutationCap", 1<<20)
	v.SetDefault("match.allMatches", false)
	v.SetDefault("match.useCombinations", true)
	v.SetDefault("match.workers", 0)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cacheSize", 256)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, defaultConfigName))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	viperInstance = v
	return &cfg, nil
}

// viperInstance backs Get/Set/Show for the `pharmcat config` subcommand,
// exactly as the teacher's config.go uses the global viper instance.
var viperInstance *viper.Viper

// Instance returns the Viper instance Load bound, for direct get/set/show
// access from the config subcommand.
func Instance() *viper.Viper { return viperInstance }
