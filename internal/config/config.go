package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/racketeer/internal/bot"
	"github.com/lox/racketeer/internal/game"
)

// Config represents the complete simulation configuration
type Config struct {
	Match  MatchSettings `hcl:"match,block"`
	Seats  []SeatConfig  `hcl:"seat,block"`
	Agents []AgentConfig `hcl:"agent,block"`
}

// MatchSettings contains match-level configuration
type MatchSettings struct {
	TargetScore     int    `hcl:"target_score,optional"`
	EscalatingTicks *bool  `hcl:"escalating_ticks,optional"`
	Seed            int64  `hcl:"seed,optional"`
	Matches         int    `hcl:"matches,optional"`
	LogLevel        string `hcl:"log_level,optional"`
}

// SeatConfig assigns a decider to one of the four seats
type SeatConfig struct {
	Name    string `hcl:"name,label"`
	Persona string `hcl:"persona,optional"`
	Agent   string `hcl:"agent,optional"`
}

// AgentConfig defines a named Q-learning agent
type AgentConfig struct {
	Name          string  `hcl:"name,label"`
	Alpha         float64 `hcl:"alpha,optional"`
	Gamma         float64 `hcl:"gamma,optional"`
	Epsilon       float64 `hcl:"epsilon,optional"`
	EpsilonDecay  float64 `hcl:"epsilon_decay,optional"`
	EpsilonFloor  float64 `hcl:"epsilon_floor,optional"`
	KnowledgeFile string  `hcl:"knowledge_file,optional"`
}

// Default returns the default simulation configuration: four heuristic
// personas and no learning agents.
func Default() *Config {
	return &Config{
		Match: MatchSettings{
			TargetScore: game.DefaultOptions().TargetScore,
			Seed:        1,
			Matches:     1,
			LogLevel:    "info",
		},
		Seats: []SeatConfig{
			{Name: "vinnie", Persona: string(game.PersonaAggressive)},
			{Name: "marco", Persona: string(game.PersonaBalanced)},
			{Name: "silvio", Persona: string(game.PersonaConservative)},
			{Name: "tony", Persona: string(game.PersonaOpportunist)},
		},
	}
}

// Load loads configuration from an HCL file, falling back to Default when
// the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Match.TargetScore == 0 {
		config.Match.TargetScore = game.DefaultOptions().TargetScore
	}
	if config.Match.Seed == 0 {
		config.Match.Seed = 1
	}
	if config.Match.Matches == 0 {
		config.Match.Matches = 1
	}
	if config.Match.LogLevel == "" {
		config.Match.LogLevel = "info"
	}
	if len(config.Seats) == 0 {
		config.Seats = Default().Seats
	}

	return &config, nil
}

// MatchOptions converts the match settings into engine options.
func (c *Config) MatchOptions() game.MatchOptions {
	opts := game.DefaultOptions()
	opts.TargetScore = c.Match.TargetScore
	if c.Match.EscalatingTicks != nil {
		opts.EscalatingTicks = *c.Match.EscalatingTicks
	}
	return opts
}

// AgentConfigs converts agent blocks into learner configurations, filling
// unset fields from the default.
func (c *Config) AgentConfigs() []bot.Config {
	configs := make([]bot.Config, 0, len(c.Agents))
	for _, a := range c.Agents {
		cfg := bot.DefaultConfig(a.Name)
		if a.Alpha != 0 {
			cfg.Alpha = a.Alpha
		}
		if a.Gamma != 0 {
			cfg.Gamma = a.Gamma
		}
		if a.Epsilon != 0 {
			cfg.Epsilon = a.Epsilon
		}
		if a.EpsilonDecay != 0 {
			cfg.EpsilonDecay = a.EpsilonDecay
		}
		if a.EpsilonFloor != 0 {
			cfg.EpsilonFloor = a.EpsilonFloor
		}
		configs = append(configs, cfg)
	}
	return configs
}

// Validate validates the simulation configuration
func (c *Config) Validate() error {
	if c.Match.TargetScore <= 0 {
		return fmt.Errorf("target score must be positive, got %d", c.Match.TargetScore)
	}
	if c.Match.Matches <= 0 {
		return fmt.Errorf("match count must be positive, got %d", c.Match.Matches)
	}
	if len(c.Seats) != game.NumSeats {
		return fmt.Errorf("exactly %d seats must be configured, got %d", game.NumSeats, len(c.Seats))
	}

	validPersonas := map[string]bool{
		string(game.PersonaAggressive):   true,
		string(game.PersonaBalanced):     true,
		string(game.PersonaConservative): true,
		string(game.PersonaOpportunist):  true,
	}
	for _, a := range c.Agents {
		if a.Name == "" {
			return fmt.Errorf("agent blocks require a name label")
		}
		if a.Alpha < 0 || a.Alpha > 1 {
			return fmt.Errorf("agent %s: alpha must be in [0,1], got %g", a.Name, a.Alpha)
		}
		if a.Gamma < 0 || a.Gamma > 1 {
			return fmt.Errorf("agent %s: gamma must be in [0,1], got %g", a.Name, a.Gamma)
		}
		if a.Epsilon < 0 || a.Epsilon > 1 {
			return fmt.Errorf("agent %s: epsilon must be in [0,1], got %g", a.Name, a.Epsilon)
		}
	}

	for _, seat := range c.Seats {
		if seat.Persona != "" && seat.Agent != "" {
			return fmt.Errorf("seat %s: persona and agent are mutually exclusive", seat.Name)
		}
		if seat.Persona == "" && seat.Agent == "" {
			return fmt.Errorf("seat %s: either persona or agent is required", seat.Name)
		}
		if seat.Persona != "" && !validPersonas[seat.Persona] {
			return fmt.Errorf("seat %s: invalid persona %s", seat.Name, seat.Persona)
		}
	}

	return nil
}
