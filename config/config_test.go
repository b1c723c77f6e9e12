package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fourinarow/agent"
	"fourinarow/searcher"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
)

// isolate points the XDG config lookup at an empty temporary directory.
func isolate(t *testing.T) string {
	dir := t.TempDir()
	// Runs after the environment is restored
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "none"))
	xdg.Reload()
	return dir
}

func writeFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestInitConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		isolate(t)

		c, err := InitConfig("")

		require.NoError(t, err)
		require.Equal(t, DefaultConfig, *c)
	})

	t.Run("explicit path overrides defaults", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "match.yaml")
		writeFile(t, path, `
mode: throughput
games: 20
a:
  strategy: defensive
  seed: 9
search:
  time_limit: 500ms
  simulations: 300
`)

		c, err := InitConfig(path)

		require.NoError(t, err)
		require.Equal(t, "throughput", c.Mode)
		require.Equal(t, 20, c.Games)
		require.Equal(t, AgentSpec{Strategy: "defensive", Seed: 9}, c.A)
		require.Equal(t, DefaultConfig.B, c.B, "Unset keys keep their defaults")
		require.Equal(t, 500*time.Millisecond, c.Search.TimeLimit)
		require.Equal(t, 300, c.Search.Simulations)
		require.Equal(t, DefaultConfig.Search.Cutoff, c.Search.Cutoff)
	})

	t.Run("discovered in the XDG config directory", func(t *testing.T) {
		dir := isolate(t)
		writeFile(t, filepath.Join(dir, "fourinarow", "config.yaml"), "games: 7\n")

		c, err := InitConfig("")

		require.NoError(t, err)
		require.Equal(t, 7, c.Games)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		isolate(t)

		_, err := InitConfig(filepath.Join(t.TempDir(), "nope.yaml"))

		var invalid *InvalidConfig
		require.True(t, errors.As(err, &invalid))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "bad.yaml")
		writeFile(t, path, "games: [1, 2\n")

		_, err := InitConfig(path)

		var invalid *InvalidConfig
		require.True(t, errors.As(err, &invalid))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"unknown mode", func(c *Config) { c.Mode = "league" }},
		{"no games", func(c *Config) { c.Games = 0 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"negative turn limit", func(c *Config) { c.MaxTurns = -1 }},
		{"no output directory", func(c *Config) { c.OutDir = "" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown strategy", func(c *Config) { c.B.Strategy = "minimax" }},
		{"no search goroutines", func(c *Config) { c.Search.Goroutines = 0 }},
		{"no simulations", func(c *Config) { c.Search.Simulations = 0 }},
		{"minimum above base", func(c *Config) { c.Search.MinSimulations = c.Search.Simulations + 1 }},
		{"no exploration", func(c *Config) { c.Search.Exploration = 0 }},
		{"negative confidence", func(c *Config) { c.Search.Confidence = -1 }},
		{"negative time limit", func(c *Config) { c.Search.TimeLimit = -time.Second }},
		{"no cutoff", func(c *Config) { c.Search.Cutoff = 0 }},
		{"zero throughput goroutines", func(c *Config) { c.Throughput = []int{1, 0} }},
	}

	t.Run("defaults are valid", func(t *testing.T) {
		c := DefaultConfig
		require.NoError(t, c.Validate())
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			c.Throughput = append([]int(nil), DefaultConfig.Throughput...)
			tt.modify(&c)

			err := c.Validate()

			var invalid *InvalidConfig
			require.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestAgentConfigs(t *testing.T) {
	c := DefaultConfig
	c.A.Seed = 4

	a, b := c.AgentConfigs()

	require.Equal(t, 1, a.ID)
	require.Equal(t, 2, b.ID)
	require.Equal(t, "balanced", a.Strategy)
	require.Equal(t, uint64(4), a.Seed)
	require.Equal(t, "mcts", b.Strategy)
	require.Equal(t, c.Search.Simulations, b.Simulations)
	require.Equal(t, c.Search.TimeLimit, b.Duration)
}

func TestZeroSearchSettingsReachTheSearcher(t *testing.T) {
	c := DefaultConfig
	c.Search.Confidence = 0
	c.Search.TimeLimit = 0
	require.NoError(t, c.Validate())

	_, b := c.AgentConfigs()
	s, err := agent.NewStrategy(b)
	require.NoError(t, err)

	m, ok := s.(*searcher.MCTS)
	require.True(t, ok)
	require.Zero(t, b.Confidence)
	require.Zero(t, m.Confidence())
	require.LessOrEqual(t, m.TimeLimit(), time.Duration(0))
}

func TestSave(t *testing.T) {
	isolate(t)
	c := DefaultConfig
	c.Games = 12
	c.Search.TimeLimit = 750 * time.Millisecond

	path, err := c.Save()
	require.NoError(t, err)

	loaded, err := InitConfig(path)
	require.NoError(t, err)
	require.Equal(t, 12, loaded.Games)
	require.Equal(t, 750*time.Millisecond, loaded.Search.TimeLimit)

	found, err := InitConfig("")
	require.NoError(t, err)
	require.Equal(t, c, *found)
}
