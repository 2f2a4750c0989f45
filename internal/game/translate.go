package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pefman/bg-localsim/internal/models"
)

const (
	defaultHealth = 40
	defaultArmor  = 0
)

var (
	// ErrMissingSide is returned when a snapshot lacks the player or opponent.
	ErrMissingSide = errors.New("snapshot requires both player and opponent")
	// ErrUnknownAnomaly is returned when an anomaly id cannot be resolved.
	ErrUnknownAnomaly = errors.New("unknown anomaly")
)

// Translator converts wire snapshots into simulator input.
type Translator struct {
	Minions   MinionFactory
	Anomalies AnomalyFactory
	// LiveRaces returns the races available in the running match, if any.
	LiveRaces func() []Race
}

// Translate builds an Input from the snapshot. It never returns a partial
// input: any failure aborts the whole translation.
func (t Translator) Translate(snapshot *models.BattleSnapshot) (*Input, error) {
	if snapshot == nil || snapshot.Player == nil || snapshot.Opponent == nil {
		return nil, ErrMissingSide
	}

	in := &Input{AvailableRaces: t.resolveRaces(snapshot.AvailableRaces)}
	if snapshot.DamageCap != nil {
		dc := *snapshot.DamageCap
		in.DamageCap = &dc
	}

	if id := snapshot.Anomaly(); id != "" {
		if t.Anomalies == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAnomaly, id)
		}
		a, err := t.Anomalies.CreateAnomaly(id)
		if err != nil {
			return nil, fmt.Errorf("anomaly %s: %w", id, err)
		}
		in.Anomaly = a
	}

	if err := t.applySide(&in.Player, snapshot.Player, true); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	if err := t.applySide(&in.Opponent, snapshot.Opponent, false); err != nil {
		return nil, fmt.Errorf("opponent: %w", err)
	}
	return in, nil
}

// resolveRaces applies explicit > live match > all races precedence.
func (t Translator) resolveRaces(explicit []string) []Race {
	if len(explicit) > 0 {
		out := make([]Race, 0, len(explicit))
		for _, name := range explicit {
			if r, ok := ParseRace(name); ok && r != RaceInvalid {
				out = append(out, r)
			}
		}
		return out
	}
	if t.LiveRaces != nil {
		if live := t.LiveRaces(); len(live) > 0 {
			out := make([]Race, 0, len(live))
			out = append(out, live...)
			return out
		}
	}
	return AllRaces()
}

func (t Translator) applySide(target *Player, side *models.SideSnapshot, isPlayer bool) error {
	target.Health = valueOr(side.Health, defaultHealth) + valueOr(side.Armor, defaultArmor)
	target.DamageTaken = valueOr(side.DamageTaken, 0)
	target.Tier = valueOr(side.Tier, 0)
	target.Side = make([]*Minion, 0, len(side.Minions))

	pos := 1
	for i, ms := range side.Minions {
		if strings.TrimSpace(ms.CardID) == "" {
			continue
		}
		m, err := t.createMinion(ms, isPlayer)
		if err != nil {
			return fmt.Errorf("minion %d (%s): %w", i, ms.CardID, err)
		}
		m.Position = pos
		pos++
		target.Side = append(target.Side, m)
	}
	return nil
}

func (t Translator) createMinion(ms models.MinionSnapshot, isPlayer bool) (*Minion, error) {
	if t.Minions == nil {
		return nil, errors.New("no minion factory")
	}
	cardID := strings.TrimSpace(ms.CardID)
	m, err := t.Minions.CreateMinion(cardID, isPlayer)
	if err != nil {
		return nil, err
	}

	if golden, ok := ms.IsGolden(); ok {
		m.Golden = golden
	}
	if ms.Atk != nil {
		m.BaseAttack = *ms.Atk
		m.MaxAttack = *ms.Atk
	}
	if ms.Hp != nil {
		m.BaseHealth = *ms.Hp
		m.MaxHealth = *ms.Hp
	}
	if ms.Tier != nil {
		m.Tier = *ms.Tier
	}

	ParseKeywords(ms.Tags).Apply(m)
	m.Cleave = CleaveCardIDs[m.CardID]

	if ms.ScriptDataNum1 != nil {
		m.ScriptDataNum1 = *ms.ScriptDataNum1
	}
	if ms.ScriptDataNum2 != nil {
		m.ScriptDataNum2 = *ms.ScriptDataNum2
	}
	if ms.ScriptDataNum3 != nil {
		m.ScriptDataNum3 = *ms.ScriptDataNum3
	}

	if m.Golden && NoPremiumCardIDs[m.CardID] {
		m.VanillaAttack *= 2
		m.VanillaHealth *= 2
	}
	return m, nil
}

func valueOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
