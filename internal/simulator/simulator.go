package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/racketeer/internal/bot"
	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/internal/randutil"
)

// maxTurns bounds a single match. Deck exhaustion ends every match well
// inside this, so hitting the cap means the engine misbehaved.
const maxTurns = 1000

// Participant pairs a display name with the decider driving it.
type Participant struct {
	Name    string
	Decider bot.Decider

	// Persona tags the seat in match state for display and summaries.
	// Learner participants are tagged as learners regardless.
	Persona game.PersonaTag

	// Learner is set when the decider is a Q-learning agent that should
	// receive Observe and FinishEpisode callbacks during the run.
	Learner *bot.Learner
}

// Config holds configuration for running simulations
type Config struct {
	Matches      int
	Seed         int64
	Options      game.MatchOptions
	Participants [game.NumSeats]Participant

	// PaceDelay inserts a wait between turns, for watching a run live.
	PaceDelay time.Duration

	Logger *log.Logger
	Clock  quartz.Clock
}

// Simulator runs card game match simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(nil)
	}
	return &Simulator{config: config}
}

// Run executes the configured number of matches and returns aggregate
// results. Participants rotate one seat per match to eliminate the
// first-seat advantage.
func (s *Simulator) Run(ctx context.Context) (*Summary, error) {
	summary := newSummary()

	for match := 0; match < s.config.Matches; match++ {
		matchSeed := randutil.Derive(s.config.Seed, int64(match))
		offset := match % game.NumSeats

		var names [game.NumSeats]string
		var deciders [game.NumSeats]bot.Decider
		var learners [game.NumSeats]*bot.Learner
		var personas [game.NumSeats]game.PersonaTag
		for seat := 0; seat < game.NumSeats; seat++ {
			p := s.config.Participants[(seat+offset)%game.NumSeats]
			names[seat] = p.Name
			deciders[seat] = p.Decider
			learners[seat] = p.Learner
			if p.Learner != nil {
				personas[seat] = game.PersonaLearner
			} else {
				personas[seat] = p.Persona
			}
		}

		final, turns, err := s.playMatch(ctx, matchSeed, names, personas, deciders, learners)
		if err != nil {
			return nil, fmt.Errorf("match %d (seed %d): %w", match+1, matchSeed, err)
		}

		for seat, l := range learners {
			if l != nil {
				l.FinishEpisode(final, seat)
			}
		}

		summary.add(final, names)
		summary.Turns += turns
		s.config.Logger.Debug("match complete",
			"match", match+1, "seed", matchSeed, "turns", turns,
			"winner", names[final.Winner], "score", final.Players[final.Winner].Score)
	}

	return summary, nil
}

// playMatch drives one match from deal to completion.
func (s *Simulator) playMatch(ctx context.Context, seed int64, names [game.NumSeats]string, personas [game.NumSeats]game.PersonaTag, deciders [game.NumSeats]bot.Decider, learners [game.NumSeats]*bot.Learner) (game.MatchState, int, error) {
	m := game.NewMatch(seed, names, personas, s.config.Options)

	turns := 0
	for !m.Over() {
		if turns >= maxTurns {
			return m, turns, fmt.Errorf("match exceeded %d turns without ending", maxTurns)
		}
		if err := ctx.Err(); err != nil {
			return m, turns, err
		}
		if s.config.PaceDelay > 0 {
			if err := s.pace(ctx); err != nil {
				return m, turns, err
			}
		}

		var err error
		m, err = m.Draw()
		if err != nil {
			return m, turns, fmt.Errorf("draw: %w", err)
		}

		seat := m.Turn
		d := deciders[seat].Decide(m, seat)

		prev := m
		m, err = m.Apply(d)
		if err != nil {
			// A decider handed back an invalid decision. Log and pass so
			// one bad agent cannot wedge the whole run.
			s.config.Logger.Warn("invalid decision, seat passes",
				"seat", seat, "name", names[seat], "error", err)
			m, err = prev.Apply(game.PassDecision())
			if err != nil {
				return m, turns, fmt.Errorf("apply pass: %w", err)
			}
		}
		if l := learners[seat]; l != nil {
			l.Observe(prev, m, seat)
		}
		turns++

		if m.Over() {
			break
		}
		m, err = m.Advance()
		if err != nil {
			return m, turns, fmt.Errorf("advance: %w", err)
		}
	}

	return m, turns, nil
}

// pace waits out the configured per-turn delay on the injected clock.
func (s *Simulator) pace(ctx context.Context) error {
	timer := s.config.Clock.NewTimer(s.config.PaceDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
