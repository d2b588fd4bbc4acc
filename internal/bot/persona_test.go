package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/racket"
)

func personaState(hand ...string) game.MatchState {
	m := game.NewMatch(7, [4]string{"a", "b", "c", "d"}, [4]game.PersonaTag{}, game.DefaultOptions())
	m.Phase = game.PhaseAwaitingAction
	m.Players[0].Hand = racket.MustParseCards(hand...)
	return m
}

func TestPersonasAreDeterministic(t *testing.T) {
	state := personaState("9s", "9h", "Ks", "Qh", "7d", "3c")
	for _, profile := range []Profile{AggressiveProfile, BalancedProfile, ConservativeProfile, OpportunistProfile} {
		p := NewPersona(profile)
		first := p.Decide(state, 0)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, p.Decide(state, 0), "persona %s wavered", profile.Tag)
		}
	}
}

func TestConservativePrefersLegal(t *testing.T) {
	// A pair of nines vs. scattered illegal value: the conservative
	// persona takes the taxed-but-safe pair.
	state := personaState("9s", "9h", "Ks", "Qh", "3c")
	d := NewPersona(ConservativeProfile).Decide(state, 0)

	assert.Equal(t, game.DecideLegal, d.Kind)
	assert.Equal(t, racket.HandPair, racket.Classify(d.Cards))
	assert.Nil(t, d.Audit)
}

func TestConservativeNeverDumps(t *testing.T) {
	// A huge unstructured hand tempts a dump; the conservative profile
	// has dumping disabled outright.
	state := personaState("As", "Kh", "Qd", "Jc", "9s", "8h", "Ad", "Kc")
	d := NewPersona(ConservativeProfile).Decide(state, 0)

	if d.Kind == game.DecideIllegal {
		assert.Less(t, racket.RawValue(d.Cards), game.SpikeThreshold)
	}
}

func TestAggressiveTakesIllegalValue(t *testing.T) {
	// Legal option is a measly pair of threes (raw 6, 8 points); illegal
	// can bank round(0.6*26) = 16 safely. Aggressive goes illegal.
	state := personaState("3s", "3h", "Ks", "Qh", "6d")
	d := NewPersona(AggressiveProfile).Decide(state, 0)

	assert.Equal(t, game.DecideIllegal, d.Kind)
	assert.Less(t, racket.RawValue(d.Cards), game.SpikeThreshold)
}

func TestOpportunistAuditsWheneverProfitable(t *testing.T) {
	state := personaState("7s", "7h", "7d", "2c")
	// Seat 2 is exposed for a juicy confiscation.
	state.Players[2].Floor = racket.MustParseCards("As", "Kh", "Qd")

	d := NewPersona(OpportunistProfile).Decide(state, 0)
	require.NotNil(t, d.Audit)
	assert.Equal(t, 2, d.Audit.Target)
	assert.Equal(t, racket.HandTrips, racket.Classify(d.Audit.Cards))
}

func TestPersonaAuditRespectsMinGain(t *testing.T) {
	state := personaState("7s", "7h", "7d", "2c")
	// Tiny exposure: transfer round(1.5*3)=5 minus taxed 16 is deeply
	// negative, so nobody audits.
	state.Players[2].Floor = racket.MustParseCards("3d")

	for _, profile := range []Profile{AggressiveProfile, BalancedProfile, ConservativeProfile, OpportunistProfile} {
		d := NewPersona(profile).Decide(state, 0)
		assert.Nil(t, d.Audit, "persona %s audited at a loss", profile.Tag)
	}
}

func TestPersonaPassesWithNothing(t *testing.T) {
	state := personaState()
	for _, profile := range []Profile{AggressiveProfile, BalancedProfile, ConservativeProfile, OpportunistProfile} {
		d := NewPersona(profile).Decide(state, 0)
		assert.Equal(t, game.DecidePass, d.Kind)
		assert.Nil(t, d.Audit)
	}
}

func TestPersonaDecisionsApplyCleanly(t *testing.T) {
	// Whatever a persona returns must be accepted by the engine.
	m := game.NewMatch(99, [4]string{"a", "b", "c", "d"},
		[4]game.PersonaTag{game.PersonaAggressive, game.PersonaBalanced, game.PersonaConservative, game.PersonaOpportunist},
		game.DefaultOptions())

	deciders := []Decider{
		NewPersona(AggressiveProfile),
		NewPersona(BalancedProfile),
		NewPersona(ConservativeProfile),
		NewPersona(OpportunistProfile),
	}

	for turns := 0; !m.Over() && turns < 600; turns++ {
		var err error
		m, err = m.Draw()
		require.NoError(t, err)

		d := deciders[m.Turn].Decide(m, m.Turn)
		m, err = m.Apply(d)
		require.NoError(t, err, "turn %d: decision %v rejected", turns, d.Kind)
		if m.Over() {
			break
		}
		m, err = m.Advance()
		require.NoError(t, err)
	}
	assert.True(t, m.Over(), "persona match failed to finish")
}

func TestForPersonaFallsBackToBalanced(t *testing.T) {
	d := ForPersona(game.PersonaTag("no-such-archetype"))
	p, ok := d.(*Persona)
	require.True(t, ok)
	assert.Equal(t, game.PersonaBalanced, p.Tag())
}
