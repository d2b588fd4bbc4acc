package bot

import (
	rand "math/rand/v2"

	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/internal/randutil"
	"github.com/lox/racketeer/racket"
)

// Action is the learner's closed action set. Each action maps onto a
// concrete Decision through an availability predicate, so the set of legal
// actions is never empty: pass is always available.
type Action uint8

const (
	ActionPlayLegal Action = iota
	ActionSafeIllegal
	ActionDump
	ActionAudit
	ActionPass
)

// String returns the action's stable name, used as the Q-table column key.
func (a Action) String() string {
	switch a {
	case ActionPlayLegal:
		return "play-legal"
	case ActionSafeIllegal:
		return "safe-illegal"
	case ActionDump:
		return "dump"
	case ActionAudit:
		return "audit"
	default:
		return "pass"
	}
}

// heuristicOrder is the tie-break preference when the Q-table has nothing to
// say: prefer the steady legal income, then profitable audits, then safe
// illegal value, then dumping, passing last. Exploitation iterates actions
// in this order, so an empty table with epsilon zero is fully deterministic.
var heuristicOrder = [...]Action{ActionPlayLegal, ActionAudit, ActionSafeIllegal, ActionDump, ActionPass}

// RewardWeights shape the learning signal.
type RewardWeights struct {
	PointFactor    float64 `json:"point_factor"`
	SpikePenalty   float64 `json:"spike_penalty"`
	AuditBonus     float64 `json:"audit_bonus"`
	WinBonus       float64 `json:"win_bonus"`
	LossPenalty    float64 `json:"loss_penalty"`
	PositionFactor float64 `json:"position_factor"`
}

// Config parameterizes a Learner. Instances are named so several
// independently trained agents can coexist in one registry.
type Config struct {
	Name         string        `json:"name"`
	Alpha        float64       `json:"alpha"`
	Gamma        float64       `json:"gamma"`
	Epsilon      float64       `json:"epsilon"`
	EpsilonDecay float64       `json:"epsilon_decay"`
	EpsilonFloor float64       `json:"epsilon_floor"`
	Rewards      RewardWeights `json:"rewards"`
}

// DefaultConfig is the documented fallback configuration; agents requested
// under an unregistered name get it rather than failing the turn.
func DefaultConfig(name string) Config {
	return Config{
		Name:         name,
		Alpha:        0.1,
		Gamma:        0.9,
		Epsilon:      0.2,
		EpsilonDecay: 0.995,
		EpsilonFloor: 0.01,
		Rewards: RewardWeights{
			PointFactor:    1.0,
			SpikePenalty:   -8,
			AuditBonus:     6,
			WinBonus:       100,
			LossPenalty:    -40,
			PositionFactor: 10,
		},
	}
}

// Learner is a tabular Q-learning decider. The Q-table is the only mutable
// state in the whole core; it is owned exclusively by this instance and
// updated synchronously after decisions this instance made, so no locking is
// needed as long as one agent has one owner.
type Learner struct {
	cfg     Config
	rng     *rand.Rand
	q       map[string]map[string]float64
	epsilon float64

	episodes   int
	wins       int
	totalScore float64

	// pending is the (state key, action) of the last decision, consumed
	// by the next Observe call.
	pendingKey    string
	pendingAction Action
	hasPending    bool
}

// NewLearner creates a learner with the given config and exploration seed.
func NewLearner(cfg Config, seed int64) *Learner {
	return &Learner{
		cfg:     cfg,
		rng:     randutil.New(seed),
		q:       make(map[string]map[string]float64),
		epsilon: cfg.Epsilon,
	}
}

// Name returns the learner's instance name.
func (l *Learner) Name() string { return l.cfg.Name }

// Epsilon returns the current exploration rate.
func (l *Learner) Epsilon() float64 { return l.epsilon }

// Episodes returns the number of completed training episodes.
func (l *Learner) Episodes() int { return l.episodes }

// availableActions gates the action set by what the seat can actually do.
// Pass is unconditional, so the result never comes back empty.
func availableActions(state *game.MatchState, seat int) []Action {
	p := &state.Players[seat]
	actions := make([]Action, 0, len(heuristicOrder))

	for _, a := range heuristicOrder {
		switch a {
		case ActionPlayLegal:
			if _, ok := BestLegal(p.Hand); ok {
				actions = append(actions, a)
			}
		case ActionSafeIllegal:
			if _, ok := BestSafeIllegal(p.Hand); ok {
				actions = append(actions, a)
			}
		case ActionDump:
			// A dump is only distinct from safe play when it actually
			// crosses the spike threshold.
			if cards, ok := BestDump(p.Hand); ok && racket.RawValue(cards) >= game.SpikeThreshold {
				actions = append(actions, a)
			}
		case ActionAudit:
			if _, ok := BestAuditHand(p.Hand); ok {
				if _, _, ok := TopCrimeOpponent(state, seat); ok {
					actions = append(actions, a)
				}
			}
		case ActionPass:
			actions = append(actions, a)
		}
	}
	return actions
}

// plan converts a chosen action into the concrete decision for this state.
func plan(state *game.MatchState, seat int, action Action) game.Decision {
	hand := state.Players[seat].Hand
	switch action {
	case ActionPlayLegal:
		cards, _ := BestLegal(hand)
		return game.Decision{Kind: game.DecideLegal, Cards: cards}
	case ActionSafeIllegal:
		cards, _ := BestSafeIllegal(hand)
		return game.Decision{Kind: game.DecideIllegal, Cards: cards}
	case ActionDump:
		cards, _ := BestDump(hand)
		return game.Decision{Kind: game.DecideIllegal, Cards: cards}
	case ActionAudit:
		cards, _ := BestAuditHand(hand)
		target, _, _ := TopCrimeOpponent(state, seat)
		return game.Decision{Kind: game.DecidePass, Audit: &game.AuditCall{Target: target, Cards: cards}}
	default:
		return game.PassDecision()
	}
}

// Decide picks an action epsilon-greedily: with probability epsilon a
// uniformly random available action, otherwise the highest-valued stored
// action for this state key, falling back to the heuristic preference order
// when the table has no opinion. The (key, action) pair is retained for the
// next Observe call.
func (l *Learner) Decide(state game.MatchState, seat int) game.Decision {
	key := featureKey(&state, seat)
	actions := availableActions(&state, seat)

	var chosen Action
	if l.epsilon > 0 && l.rng.Float64() < l.epsilon {
		chosen = actions[l.rng.IntN(len(actions))]
	} else {
		chosen = l.exploit(key, actions)
	}

	l.pendingKey = key
	l.pendingAction = chosen
	l.hasPending = true
	return plan(&state, seat, chosen)
}

// exploit returns the available action with the highest stored value.
// Actions are visited in heuristic order and only a strictly greater value
// displaces the incumbent, so unseen states resolve deterministically.
func (l *Learner) exploit(key string, actions []Action) Action {
	row := l.q[key]
	best := actions[0]
	bestVal := row[best.String()]
	for _, a := range actions[1:] {
		if v := row[a.String()]; v > bestVal {
			best = a
			bestVal = v
		}
	}
	return best
}

// Observe completes the TD step for the last decision: computes the shaped
// reward from the state transition and applies the one-step Q-learning
// update, omitting the discounted future term on terminal states.
func (l *Learner) Observe(prev, next game.MatchState, seat int) {
	if !l.hasPending {
		return
	}

	reward := l.shapedReward(&prev, &next, seat)
	target := reward
	if !next.Over() {
		nextKey := featureKey(&next, seat)
		nextActions := availableActions(&next, seat)
		best := l.q[nextKey][l.exploit(nextKey, nextActions).String()]
		target += l.cfg.Gamma * best
	}

	row := l.q[l.pendingKey]
	if row == nil {
		row = make(map[string]float64)
		l.q[l.pendingKey] = row
	}
	a := l.pendingAction.String()
	row[a] += l.cfg.Alpha * (target - row[a])
	l.hasPending = false
}

// shapedReward converts a state transition into the learning signal.
func (l *Learner) shapedReward(prev, next *game.MatchState, seat int) float64 {
	w := l.cfg.Rewards
	before, after := &prev.Players[seat], &next.Players[seat]

	reward := float64(after.Score-before.Score) * w.PointFactor
	reward += float64(after.Stats.Spikes-before.Stats.Spikes) * w.SpikePenalty
	reward += float64(after.Stats.AuditsDone-before.Stats.AuditsDone) * w.AuditBonus

	if next.Over() {
		if next.Winner == seat {
			reward += w.WinBonus
		} else {
			reward += w.LossPenalty
			behind := 0
			for i := range next.Players {
				if i != seat && next.Players[i].Score < after.Score {
					behind++
				}
			}
			reward += float64(behind) * w.PositionFactor
		}
	}
	return reward
}

// FinishEpisode records the episode outcome and decays epsilon
// geometrically toward its floor.
func (l *Learner) FinishEpisode(final game.MatchState, seat int) {
	l.episodes++
	if final.Winner == seat {
		l.wins++
	}
	l.totalScore += float64(final.Players[seat].Score)

	l.epsilon *= l.cfg.EpsilonDecay
	if l.epsilon < l.cfg.EpsilonFloor {
		l.epsilon = l.cfg.EpsilonFloor
	}
	l.hasPending = false
}
