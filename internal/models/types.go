package models

import (
	"strings"
	"time"
)

// ========================= Wire Models =========================
// Shapes accepted from and returned to local HTTP callers. Optional values
// are pointers so "absent" and "zero" stay distinguishable.

// DefaultIterations is the trial count used when the caller asks for none.
const DefaultIterations = 10000

// SimOptions controls one simulation run.
type SimOptions struct {
	Iterations  int
	TimeoutMs   *int
	ThreadCount *int
}

// DefaultSimOptions returns options with only the iteration default set.
func DefaultSimOptions() SimOptions {
	return SimOptions{Iterations: DefaultIterations}
}

// TimeLimit returns the wall-clock budget, or 0 when none was requested.
func (o SimOptions) TimeLimit() time.Duration {
	if o.TimeoutMs == nil {
		return 0
	}
	return time.Duration(*o.TimeoutMs) * time.Millisecond
}

// Threads returns the requested parallelism, or 0 when unset.
func (o SimOptions) Threads() int {
	if o.ThreadCount == nil {
		return 0
	}
	return *o.ThreadCount
}

// SimResult is the outcome of a run. Win+Tie+Lose sums to 1.
type SimResult struct {
	Win         float64 `json:"win"`
	Tie         float64 `json:"tie"`
	Lose        float64 `json:"lose"`
	Simulations int     `json:"simulations"`
}

// BattleSnapshot describes one combat supplied by the caller.
type BattleSnapshot struct {
	Player         *SideSnapshot `json:"player"`
	Opponent       *SideSnapshot `json:"opponent"`
	DamageCap      *int          `json:"damageCap,omitempty"`
	AvailableRaces []string      `json:"availableRaces,omitempty"`
	AnomalyCardID  *string       `json:"anomalyCardId,omitempty"`
}

// Anomaly returns the trimmed anomaly id, or "" when absent or blank.
func (b *BattleSnapshot) Anomaly() string {
	if b == nil || b.AnomalyCardID == nil {
		return ""
	}
	return strings.TrimSpace(*b.AnomalyCardID)
}

// SideSnapshot is one combatant's board.
type SideSnapshot struct {
	Health      *int             `json:"health,omitempty"`
	Armor       *int             `json:"armor,omitempty"`
	Tier        *int             `json:"tier,omitempty"`
	DamageTaken *int             `json:"damageTaken,omitempty"`
	Minions     []MinionSnapshot `json:"minions,omitempty"`
}

// MinionSnapshot is one minion in board order.
type MinionSnapshot struct {
	CardID         string   `json:"cardId"`
	Atk            *int     `json:"atk,omitempty"`
	Hp             *int     `json:"hp,omitempty"`
	Golden         *bool    `json:"golden,omitempty"`
	Tier           *int     `json:"tier,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	ScriptDataNum1 *int     `json:"scriptDataNum1,omitempty"`
	ScriptDataNum2 *int     `json:"scriptDataNum2,omitempty"`
	ScriptDataNum3 *int     `json:"scriptDataNum3,omitempty"`
}

// IsGolden reports the golden flag, with the "golden" tag treated as an alias.
// The second result is false when neither form was supplied.
func (m MinionSnapshot) IsGolden() (golden bool, present bool) {
	if m.Golden != nil {
		golden, present = *m.Golden, true
	}
	for _, t := range m.Tags {
		if strings.EqualFold(strings.TrimSpace(t), "golden") {
			return true, true
		}
	}
	return golden, present
}

// IntPtr is a small helper for building snapshots in code.
func IntPtr(v int) *int { return &v }
