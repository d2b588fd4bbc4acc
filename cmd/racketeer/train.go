package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/racketeer/cmd/racketeer/shared"
	"github.com/lox/racketeer/internal/bot"
	"github.com/lox/racketeer/internal/fileutil"
	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/internal/simulator"
)

// TrainCmd trains a single Q-learning agent against heuristic opponents and
// writes its knowledge to a JSON file.
type TrainCmd struct {
	Agent       string `kong:"default='rook',help='Agent name'"`
	Episodes    int    `kong:"default='10000',help='Number of training episodes'"`
	Seed        *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Knowledge   string `kong:"default='knowledge.json',help='Knowledge file to resume from and write to'"`
	TargetScore int    `kong:"default='200',help='Match target score'"`
	ReportEvery int    `kong:"default='1000',help='Log progress every N episodes'"`
	Debug       bool   `kong:"help='Enable debug logging'"`
}

func (c *TrainCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
		logger.Info("using random seed", "seed", seed)
	}

	agent, err := loadOrCreateAgent(c.Agent, c.Knowledge, seed, logger)
	if err != nil {
		return err
	}

	opts := game.DefaultOptions()
	opts.TargetScore = c.TargetScore

	trainer := simulator.NewTrainer(simulator.TrainerConfig{
		Episodes:    c.Episodes,
		Seed:        seed,
		Options:     opts,
		ReportEvery: c.ReportEvery,
		Logger:      logger,
	}, agent)

	ctx := shared.SetupSignalHandler(logger)
	summary, err := trainer.Train(ctx)
	if err != nil {
		// Save progress on interruption before reporting the error.
		if saveErr := saveKnowledge(agent, c.Knowledge); saveErr != nil {
			logger.Error("failed to save knowledge", "error", saveErr)
		}
		return err
	}

	if err := saveKnowledge(agent, c.Knowledge); err != nil {
		return err
	}

	r := summary.Seats[agent.Name()]
	logger.Info("training complete",
		"episodes", agent.Episodes(),
		"epsilon", fmt.Sprintf("%.3f", agent.Epsilon()),
		"win_rate", fmt.Sprintf("%.3f", r.WinRate()),
		"avg_score", fmt.Sprintf("%.1f", r.MeanScore()),
		"knowledge", c.Knowledge)
	return nil
}

// loadOrCreateAgent resumes from an existing knowledge file or starts fresh.
func loadOrCreateAgent(name, path string, seed int64, logger *log.Logger) (*bot.Learner, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Info("starting fresh agent", "agent", name)
		return bot.NewLearner(bot.DefaultConfig(name), seed), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading knowledge file: %w", err)
	}

	k, err := bot.UnmarshalKnowledge(data)
	if err != nil {
		return nil, err
	}
	logger.Info("resuming trained agent",
		"agent", k.Name, "episodes", k.Episodes, "states", len(k.QTable))
	return bot.FromKnowledge(k, seed), nil
}

func saveKnowledge(agent *bot.Learner, path string) error {
	data, err := bot.MarshalKnowledge(agent.Export())
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing knowledge file: %w", err)
	}
	return nil
}
