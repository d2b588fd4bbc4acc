package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/racketeer/cmd/racketeer/shared"
	"github.com/lox/racketeer/internal/bot"
	"github.com/lox/racketeer/internal/config"
	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/internal/simulator"
)

// SimulateCmd runs matches between the players configured in the HCL file.
type SimulateCmd struct {
	Config  string        `kong:"default='racketeer.hcl',help='HCL configuration file'"`
	Matches int           `kong:"help='Override the configured match count'"`
	Seed    *int64        `kong:"help='Override the configured RNG seed'"`
	Pace    time.Duration `kong:"help='Delay between turns, for watching a run'"`
	Debug   bool          `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Matches > 0 {
		cfg.Match.Matches = c.Matches
	}
	if c.Seed != nil {
		cfg.Match.Seed = *c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	participants, err := buildParticipants(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting simulation",
		"matches", cfg.Match.Matches,
		"seed", cfg.Match.Seed,
		"target_score", cfg.Match.TargetScore)

	ctx := shared.SetupSignalHandler(logger)
	sim := simulator.New(simulator.Config{
		Matches:      cfg.Match.Matches,
		Seed:         cfg.Match.Seed,
		Options:      cfg.MatchOptions(),
		Participants: participants,
		PaceDelay:    c.Pace,
		Logger:       logger,
	})

	summary, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(summary)
	return nil
}

// buildParticipants assembles the four seats from the configuration,
// instantiating learning agents through a registry so seats that share an
// agent name share the same Q-table.
func buildParticipants(cfg *config.Config) ([game.NumSeats]simulator.Participant, error) {
	var participants [game.NumSeats]simulator.Participant

	registry := bot.NewRegistry(cfg.Match.Seed)
	for _, agentCfg := range cfg.AgentConfigs() {
		registry.Put(bot.NewLearner(agentCfg, cfg.Match.Seed))
	}
	for _, a := range cfg.Agents {
		if a.KnowledgeFile == "" {
			continue
		}
		data, err := os.ReadFile(a.KnowledgeFile)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return participants, fmt.Errorf("reading knowledge for agent %s: %w", a.Name, err)
		}
		k, err := bot.UnmarshalKnowledge(data)
		if err != nil {
			return participants, fmt.Errorf("agent %s: %w", a.Name, err)
		}
		registry.Put(bot.FromKnowledge(k, cfg.Match.Seed))
	}

	for i, seat := range cfg.Seats {
		p := simulator.Participant{Name: seat.Name}
		if seat.Agent != "" {
			l := registry.Get(seat.Agent)
			p.Decider = l
			p.Learner = l
		} else {
			p.Persona = game.PersonaTag(seat.Persona)
			p.Decider = bot.ForPersona(p.Persona)
		}
		participants[i] = p
	}
	return participants, nil
}
