package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"fourinarow/agent"
	"fourinarow/experiments/metrics"
	"fourinarow/meta"
	"fourinarow/utils"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile = "fourinarow/config.yaml"
	modes   = []string{"symmetry", "throughput"}
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type AgentSpec struct {
	Strategy string `yaml:"strategy"`
	Seed     uint64 `yaml:"seed"`
}

// SearchConfig applies to every mcts agent.
type SearchConfig struct {
	Goroutines     int           `yaml:"goroutines"`
	Simulations    int           `yaml:"simulations"`
	MinSimulations int           `yaml:"min_simulations"`
	TimeLimit      time.Duration `yaml:"time_limit"`
	Exploration    float64       `yaml:"exploration"`
	Confidence     float64       `yaml:"confidence"`
	Cutoff         int           `yaml:"cutoff"`
}

type Config struct {
	Mode     string       `yaml:"mode"`
	Games    int          `yaml:"games"`
	Workers  int          `yaml:"workers"`
	MaxTurns int          `yaml:"max_turns"`
	OutDir   string       `yaml:"out_dir"`
	LogLevel string       `yaml:"log_level"`
	A        AgentSpec    `yaml:"a"`
	B        AgentSpec    `yaml:"b"`
	Search   SearchConfig `yaml:"search"`

	// Worker counts compared in throughput mode
	Throughput []int `yaml:"throughput_goroutines"`
}

var DefaultConfig = Config{
	Mode:     "symmetry",
	Games:    meta.GAMES,
	Workers:  meta.WORKERS,
	MaxTurns: meta.MAX_TURNS,
	OutDir:   meta.OUT_DIR,
	LogLevel: "info",
	A:        AgentSpec{Strategy: "balanced"},
	B:        AgentSpec{Strategy: "mcts"},
	Search: SearchConfig{
		Goroutines:     meta.GO_ROUTINES,
		Simulations:    meta.SIMULATIONS,
		MinSimulations: meta.MIN_SIMULATIONS,
		TimeLimit:      meta.TIME_LIMIT,
		Exploration:    meta.EXPLORATION,
		Confidence:     meta.CONFIDENCE,
		Cutoff:         meta.WITH_CUTOFF,
	},
	Throughput: []int{1, 2, 4, 8, 16},
}

// InitConfig loads the config at path, or the first fourinarow/config.yaml
// found in the XDG config directories when path is empty. Without any file
// the defaults are used.
func InitConfig(path string) (*Config, error) {
	config := DefaultConfig
	config.Throughput = append([]int(nil), DefaultConfig.Throughput...)
	if path == "" {
		absPath, err := xdg.SearchConfigFile(cfgFile)
		if err == nil {
			path = absPath
		}
	}
	if path != "" {
		if err := readCfgFile(path, &config); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch {
	case !utils.Contains(modes, c.Mode):
		return &InvalidConfig{fmt.Sprintf("mode must be one of %v, got %q", modes, c.Mode)}
	case c.Games <= 0:
		return &InvalidConfig{"games must be positive"}
	case c.Workers <= 0:
		return &InvalidConfig{"workers must be positive"}
	case c.MaxTurns < 0:
		return &InvalidConfig{"max_turns cannot be negative"}
	case c.OutDir == "":
		return &InvalidConfig{"out_dir cannot be empty"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	for _, a := range []AgentSpec{c.A, c.B} {
		if !utils.Contains(agent.Names, a.Strategy) {
			return &InvalidConfig{fmt.Sprintf("strategy must be one of %v, got %q", agent.Names, a.Strategy)}
		}
	}

	s := c.Search
	switch {
	case s.Goroutines <= 0:
		return &InvalidConfig{"search goroutines must be positive"}
	case s.Simulations <= 0:
		return &InvalidConfig{"search simulations must be positive"}
	case s.MinSimulations <= 0 || s.MinSimulations > s.Simulations:
		return &InvalidConfig{"search min_simulations must be between 1 and simulations"}
	case s.Exploration <= 0:
		return &InvalidConfig{"search exploration must be positive"}
	case s.TimeLimit < 0:
		return &InvalidConfig{"search time_limit cannot be negative, use 0 to disable it"}
	case s.Confidence < 0:
		return &InvalidConfig{"search confidence cannot be negative"}
	case s.Cutoff <= 0:
		return &InvalidConfig{"search cutoff must be positive"}
	}
	for _, n := range c.Throughput {
		if n <= 0 {
			return &InvalidConfig{"throughput goroutines must be positive"}
		}
	}
	return nil
}

// AgentConfigs returns the configs of both sides, with the search settings
// filled in.
func (c *Config) AgentConfigs() (metrics.AgentConfig, metrics.AgentConfig) {
	return c.agentConfig(1, c.A), c.agentConfig(2, c.B)
}

func (c *Config) agentConfig(id int, spec AgentSpec) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:             id,
		Strategy:       spec.Strategy,
		Goroutines:     c.Search.Goroutines,
		Duration:       c.Search.TimeLimit,
		Simulations:    c.Search.Simulations,
		MinSimulations: c.Search.MinSimulations,
		Exploration:    c.Search.Exploration,
		Confidence:     c.Search.Confidence,
		Cutoff:         c.Search.Cutoff,
		Seed:           spec.Seed,
	}
}

// Save writes the config to the user's XDG config directory and returns the
// file's path.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, c *Config, perm fs.FileMode) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(filePath, data, perm)
}

func readCfgFile(filePath string, c *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &InvalidConfig{fmt.Sprintf("no config file at %s", filePath)}
		}
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &InvalidConfig{fmt.Sprintf("failed to parse %s: %v", filePath, err)}
	}
	return nil
}
