package main

import (
	"fmt"
	"os"

	"github.com/lox/racketeer/cmd/racketeer/shared"
	"github.com/lox/racketeer/internal/bot"
	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/internal/simulator"
)

// EvalCmd plays matches with a frozen knowledge snapshot, exploration off,
// to measure how well a trained agent actually does.
type EvalCmd struct {
	Knowledge   string `kong:"default='knowledge.json',help='Knowledge file to evaluate'"`
	Matches     int    `kong:"default='1000',help='Number of evaluation matches'"`
	Seed        int64  `kong:"default='1',help='RNG seed'"`
	TargetScore int    `kong:"default='200',help='Match target score'"`
	Debug       bool   `kong:"help='Enable debug logging'"`
}

func (c *EvalCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	data, err := os.ReadFile(c.Knowledge)
	if err != nil {
		return fmt.Errorf("reading knowledge file: %w", err)
	}
	k, err := bot.UnmarshalKnowledge(data)
	if err != nil {
		return err
	}

	logger.Info("evaluating agent",
		"agent", k.Name,
		"episodes", k.Episodes,
		"states", len(k.QTable),
		"matches", c.Matches)

	opts := game.DefaultOptions()
	opts.TargetScore = c.TargetScore

	ctx := shared.SetupSignalHandler(logger)
	summary, err := simulator.Evaluate(ctx, k, c.Matches, c.Seed, opts, logger)
	if err != nil {
		return err
	}

	simulator.PrintSummary(summary)
	return nil
}
