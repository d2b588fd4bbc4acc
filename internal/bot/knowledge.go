package bot

import (
	"encoding/json"
	"fmt"
)

// Knowledge is the serializable export of everything a trained Learner
// knows: the Q-table, the current exploration rate, accumulated training
// statistics and the originating configuration. Importing a Knowledge
// restores decision behavior exactly. Durable storage of these blobs is the
// caller's concern; the core only defines the shape.
type Knowledge struct {
	Name     string                        `json:"name"`
	Config   Config                        `json:"config"`
	Epsilon  float64                       `json:"epsilon"`
	Episodes int                           `json:"episodes"`
	Wins     int                           `json:"wins"`
	AvgScore float64                       `json:"avg_score"`
	QTable   map[string]map[string]float64 `json:"q_table"`
}

// Export snapshots the learner's knowledge. The returned structure shares
// nothing with the learner; callers may serialize or mutate it freely.
func (l *Learner) Export() Knowledge {
	table := make(map[string]map[string]float64, len(l.q))
	for key, row := range l.q {
		cp := make(map[string]float64, len(row))
		for a, v := range row {
			cp[a] = v
		}
		table[key] = cp
	}

	avg := 0.0
	if l.episodes > 0 {
		avg = l.totalScore / float64(l.episodes)
	}
	return Knowledge{
		Name:     l.cfg.Name,
		Config:   l.cfg,
		Epsilon:  l.epsilon,
		Episodes: l.episodes,
		Wins:     l.wins,
		AvgScore: avg,
		QTable:   table,
	}
}

// FromKnowledge reconstructs a learner from an exported snapshot.
func FromKnowledge(k Knowledge, seed int64) *Learner {
	l := NewLearner(k.Config, seed)
	l.epsilon = k.Epsilon
	l.episodes = k.Episodes
	l.wins = k.Wins
	l.totalScore = k.AvgScore * float64(k.Episodes)
	for key, row := range k.QTable {
		cp := make(map[string]float64, len(row))
		for a, v := range row {
			cp[a] = v
		}
		l.q[key] = cp
	}
	return l
}

// MarshalKnowledge encodes a snapshot as indented JSON.
func MarshalKnowledge(k Knowledge) ([]byte, error) {
	return json.MarshalIndent(k, "", "  ")
}

// UnmarshalKnowledge decodes a snapshot produced by MarshalKnowledge.
func UnmarshalKnowledge(data []byte) (Knowledge, error) {
	var k Knowledge
	if err := json.Unmarshal(data, &k); err != nil {
		return Knowledge{}, fmt.Errorf("decoding agent knowledge: %w", err)
	}
	return k, nil
}
