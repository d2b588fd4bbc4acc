package simulator

import (
	"fmt"
	"sort"

	"github.com/lox/racketeer/internal/game"
)

// SeatResult accumulates per-participant outcomes across matches. Results
// are keyed by participant name, not seat index, because the simulator
// rotates seating between matches.
type SeatResult struct {
	Name         string
	Matches      int
	Wins         int
	TotalScore   int
	LegalPlays   int
	IllegalPlays int
	Spikes       int
	AuditsDone   int
	AuditsHit    int
}

// WinRate returns the fraction of matches this participant won.
func (r SeatResult) WinRate() float64 {
	if r.Matches == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Matches)
}

// MeanScore returns the average final score per match.
func (r SeatResult) MeanScore() float64 {
	if r.Matches == 0 {
		return 0
	}
	return float64(r.TotalScore) / float64(r.Matches)
}

// Summary aggregates the results of a simulation run.
type Summary struct {
	Matches int
	Turns   int
	Seats   map[string]*SeatResult
}

func newSummary() *Summary {
	return &Summary{Seats: make(map[string]*SeatResult)}
}

// add folds one finished match into the summary. names maps seat index to
// participant name for this match's rotation.
func (s *Summary) add(final game.MatchState, names [game.NumSeats]string) {
	s.Matches++
	for seat := range final.Players {
		p := &final.Players[seat]
		r := s.Seats[names[seat]]
		if r == nil {
			r = &SeatResult{Name: names[seat]}
			s.Seats[names[seat]] = r
		}
		r.Matches++
		if final.Winner == seat {
			r.Wins++
		}
		r.TotalScore += p.Score
		r.LegalPlays += p.Stats.LegalPlays
		r.IllegalPlays += p.Stats.IllegalPlays
		r.Spikes += p.Stats.Spikes
		r.AuditsDone += p.Stats.AuditsDone
		r.AuditsHit += p.Stats.AuditsReceived
	}
}

// Ranked returns the seat results sorted by wins, then total score, then
// name.
func (s *Summary) Ranked() []*SeatResult {
	results := make([]*SeatResult, 0, len(s.Seats))
	for _, r := range s.Seats {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Wins != results[j].Wins {
			return results[i].Wins > results[j].Wins
		}
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return results[i].Name < results[j].Name
	})
	return results
}

// PrintSummary writes a human-readable results table to stdout.
func PrintSummary(s *Summary) {
	fmt.Printf("\n=== RESULTS (%d matches, %d turns) ===\n", s.Matches, s.Turns)
	for _, r := range s.Ranked() {
		fmt.Printf("%-14s wins=%d (%.1f%%)  avg score=%.1f  legal=%d illegal=%d spikes=%d audits=%d/%d\n",
			r.Name, r.Wins, r.WinRate()*100, r.MeanScore(),
			r.LegalPlays, r.IllegalPlays, r.Spikes, r.AuditsDone, r.AuditsHit)
	}
}
