package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/racketeer/internal/game"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "racketeer.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
match {
  target_score     = 150
  escalating_ticks = false
  seed             = 42
  matches          = 20
  log_level        = "debug"
}

seat "vinnie" {
  persona = "aggressive"
}

seat "marco" {
  persona = "balanced"
}

seat "silvio" {
  persona = "conservative"
}

seat "rook" {
  agent = "rook-v1"
}

agent "rook-v1" {
  alpha         = 0.2
  gamma         = 0.95
  epsilon       = 0.3
  epsilon_decay = 0.99
  epsilon_floor = 0.05
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 150, cfg.Match.TargetScore)
	assert.Equal(t, int64(42), cfg.Match.Seed)
	assert.Equal(t, 20, cfg.Match.Matches)

	opts := cfg.MatchOptions()
	assert.Equal(t, 150, opts.TargetScore)
	assert.False(t, opts.EscalatingTicks)

	require.Len(t, cfg.Seats, 4)
	assert.Equal(t, "rook-v1", cfg.Seats[3].Agent)

	agents := cfg.AgentConfigs()
	require.Len(t, agents, 1)
	assert.Equal(t, "rook-v1", agents[0].Name)
	assert.Equal(t, 0.2, agents[0].Alpha)
	assert.Equal(t, 0.95, agents[0].Gamma)
	assert.Equal(t, 0.05, agents[0].EpsilonFloor)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
match {
  seed = 7
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, game.DefaultOptions().TargetScore, cfg.Match.TargetScore)
	assert.Equal(t, 1, cfg.Match.Matches)
	assert.Equal(t, "info", cfg.Match.LogLevel)
	assert.Equal(t, Default().Seats, cfg.Seats)

	opts := cfg.MatchOptions()
	assert.True(t, opts.EscalatingTicks, "unset escalating_ticks keeps the engine default")
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	path := writeConfig(t, `match { target_score = `)
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default is valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero target score",
			mutate:  func(c *Config) { c.Match.TargetScore = 0 },
			wantErr: "target score",
		},
		{
			name:    "wrong seat count",
			mutate:  func(c *Config) { c.Seats = c.Seats[:3] },
			wantErr: "seats",
		},
		{
			name:    "unknown persona",
			mutate:  func(c *Config) { c.Seats[0].Persona = "reckless" },
			wantErr: "invalid persona",
		},
		{
			name: "persona and agent on one seat",
			mutate: func(c *Config) {
				c.Seats[0].Agent = "rook"
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "seat with neither persona nor agent",
			mutate: func(c *Config) {
				c.Seats[0].Persona = ""
			},
			wantErr: "either persona or agent",
		},
		{
			name: "agent alpha out of range",
			mutate: func(c *Config) {
				c.Agents = []AgentConfig{{Name: "rook", Alpha: 1.5}}
			},
			wantErr: "alpha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
