package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/racket"
)

func learnerState(hand ...string) game.MatchState {
	m := game.NewMatch(13, [4]string{"a", "b", "c", "d"}, [4]game.PersonaTag{}, game.DefaultOptions())
	m.Phase = game.PhaseAwaitingAction
	m.Players[0].Hand = racket.MustParseCards(hand...)
	return m
}

// With epsilon zero and an empty table the learner must fall back to its
// heuristic tie-break deterministically: no randomness for a fixed state.
func TestEmptyTableZeroEpsilonIsDeterministic(t *testing.T) {
	cfg := DefaultConfig("det")
	cfg.Epsilon = 0

	state := learnerState("9s", "9h", "Ks", "Qh", "3c")

	first := NewLearner(cfg, 1).Decide(state, 0)
	for seed := int64(2); seed < 10; seed++ {
		l := NewLearner(cfg, seed)
		d := l.Decide(state, 0)
		assert.Equal(t, first, d, "seed %d diverged", seed)
	}

	// The heuristic prefers the legal play when one exists.
	assert.Equal(t, game.DecideLegal, first.Kind)
}

func TestAvailableActionsNeverEmpty(t *testing.T) {
	state := learnerState() // no cards at all
	actions := availableActions(&state, 0)
	require.NotEmpty(t, actions)
	assert.Equal(t, []Action{ActionPass}, actions)
}

func TestAvailableActionsGating(t *testing.T) {
	// Legal pair, safe illegal, a qualifying audit hand and an exposed
	// opponent: everything should be on the table except dump (raw below
	// the spike threshold).
	state := learnerState("7s", "7h", "7d", "2c")
	state.Players[3].Floor = racket.MustParseCards("As", "Kh")

	actions := availableActions(&state, 0)
	assert.Contains(t, actions, ActionPlayLegal)
	assert.Contains(t, actions, ActionSafeIllegal)
	assert.Contains(t, actions, ActionAudit)
	assert.Contains(t, actions, ActionPass)
	assert.NotContains(t, actions, ActionDump) // raw 23 cannot spike
}

func TestExploitPrefersStoredValue(t *testing.T) {
	cfg := DefaultConfig("stored")
	cfg.Epsilon = 0
	l := NewLearner(cfg, 1)

	state := learnerState("9s", "9h", "Ks", "Qh", "3c")
	key := featureKey(&state, 0)
	l.q[key] = map[string]float64{
		ActionPass.String():      5.0,
		ActionPlayLegal.String(): 1.0,
	}

	d := l.Decide(state, 0)
	assert.Equal(t, game.DecidePass, d.Kind)
	assert.Nil(t, d.Audit)
}

func TestObserveTDUpdate(t *testing.T) {
	cfg := DefaultConfig("td")
	cfg.Epsilon = 0
	cfg.Alpha = 0.5
	cfg.Gamma = 0.9
	cfg.Rewards = RewardWeights{PointFactor: 1.0}
	l := NewLearner(cfg, 1)

	prev := learnerState("9s", "9h")
	d := l.Decide(prev, 0)
	require.Equal(t, game.DecideLegal, d.Kind)

	next, err := prev.Apply(d)
	require.NoError(t, err)

	l.Observe(prev, next, 0)

	// Reward is the score delta (pair of nines: ScoreLegal(18) = 14);
	// next state has no stored values, so the bootstrap term is zero and
	// Q(s,a) = 0 + 0.5 * (14 + 0.9*0 - 0) = 7.
	k := l.Export()
	key := featureKey(&prev, 0)
	assert.InDelta(t, 7.0, k.QTable[key][ActionPlayLegal.String()], 1e-9)

	// Without a pending decision Observe is a no-op.
	before := l.Export()
	l.Observe(prev, next, 0)
	assert.Equal(t, before.QTable, l.Export().QTable)
}

func TestObserveTerminalOmitsFutureTerm(t *testing.T) {
	cfg := DefaultConfig("terminal")
	cfg.Epsilon = 0
	cfg.Alpha = 1.0
	cfg.Rewards = RewardWeights{PointFactor: 1.0, WinBonus: 100}
	l := NewLearner(cfg, 1)

	prev := learnerState("As", "Ah")
	prev.Players[0].Score = prev.Options.TargetScore - 1

	d := l.Decide(prev, 0)
	require.Equal(t, game.DecideLegal, d.Kind)

	next, err := prev.Apply(d)
	require.NoError(t, err)
	require.True(t, next.Over())

	l.Observe(prev, next, 0)

	// Terminal target is reward only: 16 points + 100 win bonus, with
	// alpha 1 the cell holds it exactly. A discounted future term would
	// show up as a different value.
	key := featureKey(&prev, 0)
	assert.InDelta(t, 116.0, l.Export().QTable[key][ActionPlayLegal.String()], 1e-9)
}

func TestEpsilonDecaysGeometrically(t *testing.T) {
	cfg := DefaultConfig("decay")
	cfg.Epsilon = 0.5
	cfg.EpsilonDecay = 0.5
	cfg.EpsilonFloor = 0.1
	l := NewLearner(cfg, 1)

	final := learnerState()
	final.Phase = game.PhaseMatchOver
	final.Winner = 1

	l.FinishEpisode(final, 0)
	assert.InDelta(t, 0.25, l.Epsilon(), 1e-9)
	l.FinishEpisode(final, 0)
	assert.InDelta(t, 0.125, l.Epsilon(), 1e-9)
	l.FinishEpisode(final, 0)
	assert.InDelta(t, 0.1, l.Epsilon(), 1e-9, "decay must stop at the floor")
	assert.Equal(t, 3, l.Episodes())
}

func TestKnowledgeRoundTrip(t *testing.T) {
	cfg := DefaultConfig("round-trip")
	cfg.Epsilon = 0
	l := NewLearner(cfg, 1)

	state := learnerState("9s", "9h", "Ks", "Qh", "3c")
	key := featureKey(&state, 0)
	l.q[key] = map[string]float64{
		ActionPass.String():      3.5,
		ActionPlayLegal.String(): 1.25,
	}

	data, err := MarshalKnowledge(l.Export())
	require.NoError(t, err)

	k, err := UnmarshalKnowledge(data)
	require.NoError(t, err)

	restored := FromKnowledge(k, 99)

	// Identical decision behavior for the probed state.
	assert.Equal(t, l.Decide(state, 0), restored.Decide(state, 0))
	assert.Equal(t, l.Export().QTable, restored.Export().QTable)
	assert.Equal(t, l.Epsilon(), restored.Epsilon())
}

func TestRegistryFallsBackToDefaultConfig(t *testing.T) {
	r := NewRegistry(1)

	l := r.Get("never-registered")
	require.NotNil(t, l, "unknown agents must get a default, not fail")
	assert.Equal(t, "never-registered", l.Name())
	assert.Same(t, l, r.Get("never-registered"), "repeat lookups return the same instance")

	other := NewLearner(DefaultConfig("trained"), 2)
	r.Put(other)
	assert.Same(t, other, r.Get("trained"))
	assert.Equal(t, []string{"never-registered", "trained"}, r.Names())
}

func TestLearnerPlaysFullMatch(t *testing.T) {
	cfg := DefaultConfig("full-match")
	l := NewLearner(cfg, 5)
	opponents := []Decider{
		nil, // seat 0 is the learner
		NewPersona(BalancedProfile),
		NewPersona(AggressiveProfile),
		NewPersona(ConservativeProfile),
	}

	m := game.NewMatch(5, [4]string{"learner", "b", "c", "d"}, [4]game.PersonaTag{}, game.DefaultOptions())
	for turns := 0; !m.Over() && turns < 600; turns++ {
		var err error
		m, err = m.Draw()
		require.NoError(t, err)

		var d game.Decision
		if m.Turn == 0 {
			d = l.Decide(m, 0)
		} else {
			d = opponents[m.Turn].Decide(m, m.Turn)
		}

		prev := m
		m, err = m.Apply(d)
		require.NoError(t, err)
		if m.Turn == 0 {
			l.Observe(prev, m, 0)
		}
		if m.Over() {
			break
		}
		m, err = m.Advance()
		require.NoError(t, err)
	}
	require.True(t, m.Over())
	l.FinishEpisode(m, 0)
	assert.Equal(t, 1, l.Episodes())
	assert.NotEmpty(t, l.Export().QTable)
}
