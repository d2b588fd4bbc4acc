package simulator

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/racketeer/internal/bot"
	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/internal/randutil"
)

// TrainerConfig holds configuration for a training run.
type TrainerConfig struct {
	Episodes int
	Seed     int64
	Options  game.MatchOptions

	// Opponents are the three heuristic profiles the learner trains
	// against. The learner always occupies the remaining seat.
	Opponents [game.NumSeats - 1]bot.Profile

	// ReportEvery logs a progress line every N episodes. Zero disables it.
	ReportEvery int

	Logger *log.Logger
}

// Trainer runs Q-learning training episodes for a single agent. Training is
// sequential because every episode updates the same Q-table; evaluation of
// a frozen snapshot parallelizes freely.
type Trainer struct {
	config TrainerConfig
	agent  *bot.Learner
}

// NewTrainer creates a trainer for the given agent.
func NewTrainer(config TrainerConfig, agent *bot.Learner) *Trainer {
	if config.Logger == nil {
		config.Logger = log.New(nil)
	}
	if config.Opponents == ([game.NumSeats - 1]bot.Profile{}) {
		config.Opponents = [game.NumSeats - 1]bot.Profile{
			bot.AggressiveProfile,
			bot.BalancedProfile,
			bot.ConservativeProfile,
		}
	}
	return &Trainer{config: config, agent: agent}
}

// Train runs the configured number of training episodes. The learner's seat
// rotates each episode so it experiences every position.
func (t *Trainer) Train(ctx context.Context) (*Summary, error) {
	cfg := Config{
		Matches: t.config.Episodes,
		Seed:    t.config.Seed,
		Options: t.config.Options,
		Logger:  t.config.Logger,
		Participants: [game.NumSeats]Participant{
			{Name: t.agent.Name(), Decider: t.agent, Learner: t.agent},
			{Name: "trainer-" + string(t.config.Opponents[0].Tag), Decider: bot.NewPersona(t.config.Opponents[0]), Persona: t.config.Opponents[0].Tag},
			{Name: "trainer-" + string(t.config.Opponents[1].Tag), Decider: bot.NewPersona(t.config.Opponents[1]), Persona: t.config.Opponents[1].Tag},
			{Name: "trainer-" + string(t.config.Opponents[2].Tag), Decider: bot.NewPersona(t.config.Opponents[2]), Persona: t.config.Opponents[2].Tag},
		},
	}

	if t.config.ReportEvery > 0 {
		return t.trainChunked(ctx, cfg)
	}
	return New(cfg).Run(ctx)
}

// trainChunked splits the run so progress can be logged between chunks.
func (t *Trainer) trainChunked(ctx context.Context, cfg Config) (*Summary, error) {
	total := newSummary()
	remaining := t.config.Episodes
	chunkIndex := 0

	for remaining > 0 {
		chunk := t.config.ReportEvery
		if chunk > remaining {
			chunk = remaining
		}
		chunkCfg := cfg
		chunkCfg.Matches = chunk
		chunkCfg.Seed = randutil.Derive(t.config.Seed, int64(chunkIndex)+1)

		s, err := New(chunkCfg).Run(ctx)
		if err != nil {
			return nil, err
		}
		total.merge(s)
		remaining -= chunk
		chunkIndex++

		r := total.Seats[t.agent.Name()]
		t.config.Logger.Info("training progress",
			"episodes", t.agent.Episodes(),
			"epsilon", fmt.Sprintf("%.3f", t.agent.Epsilon()),
			"win_rate", fmt.Sprintf("%.3f", r.WinRate()),
			"avg_score", fmt.Sprintf("%.1f", r.MeanScore()))
	}
	return total, nil
}

// merge folds another summary into this one.
func (s *Summary) merge(o *Summary) {
	s.Matches += o.Matches
	s.Turns += o.Turns
	for name, or := range o.Seats {
		r := s.Seats[name]
		if r == nil {
			r = &SeatResult{Name: name}
			s.Seats[name] = r
		}
		r.Matches += or.Matches
		r.Wins += or.Wins
		r.TotalScore += or.TotalScore
		r.LegalPlays += or.LegalPlays
		r.IllegalPlays += or.IllegalPlays
		r.Spikes += or.Spikes
		r.AuditsDone += or.AuditsDone
		r.AuditsHit += or.AuditsHit
	}
}

// Evaluate plays matches with a frozen snapshot of the agent's knowledge,
// exploration off, split across workers. Each worker gets its own learner
// rebuilt from the snapshot, so no Q-table is shared and no locking is
// needed.
func Evaluate(ctx context.Context, k bot.Knowledge, matches int, seed int64, opts game.MatchOptions, logger *log.Logger) (*Summary, error) {
	if logger == nil {
		logger = log.New(nil)
	}
	if matches <= 0 {
		return newSummary(), nil
	}

	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers > matches {
		workers = matches
	}

	perWorker := matches / workers
	remainder := matches % workers

	g, ctx := errgroup.WithContext(ctx)
	results := make([]*Summary, workers)

	for w := 0; w < workers; w++ {
		workerMatches := perWorker
		if w < remainder {
			workerMatches++
		}
		workerSeed := randutil.Derive(seed, int64(w))
		slot := w

		g.Go(func() error {
			frozen := k
			frozen.Epsilon = 0
			agent := bot.FromKnowledge(frozen, workerSeed)

			cfg := Config{
				Matches: workerMatches,
				Seed:    workerSeed,
				Options: opts,
				Logger:  logger,
				Participants: [game.NumSeats]Participant{
					{Name: agent.Name(), Decider: agent},
					{Name: "eval-aggressive", Decider: bot.NewPersona(bot.AggressiveProfile), Persona: game.PersonaAggressive},
					{Name: "eval-balanced", Decider: bot.NewPersona(bot.BalancedProfile), Persona: game.PersonaBalanced},
					{Name: "eval-conservative", Decider: bot.NewPersona(bot.ConservativeProfile), Persona: game.PersonaConservative},
				},
			}

			s, err := New(cfg).Run(ctx)
			if err != nil {
				return err
			}
			results[slot] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newSummary()
	for _, s := range results {
		total.merge(s)
	}
	return total, nil
}
