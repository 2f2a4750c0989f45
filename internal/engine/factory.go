package engine

import (
	"errors"
	"fmt"

	"github.com/pefman/bg-localsim/internal/catalog"
	"github.com/pefman/bg-localsim/internal/game"
)

// ErrUnknownCard is returned for card ids missing from the catalog or not
// describing a minion.
var ErrUnknownCard = errors.New("unknown minion card")

// CardLookup resolves catalog entries by id.
type CardLookup interface {
	Card(id string) (catalog.Card, bool)
}

// anomalyBuffs holds the start-of-combat stat changes the resolver knows.
// Anomalies missing here still resolve but change nothing.
var anomalyBuffs = map[string][2]int{
	"BG27_Anomaly_100": {1, 1},
	"BG27_Anomaly_101": {2, 0},
	"BG27_Anomaly_102": {0, 3},
}

// Factory builds minions and anomalies from catalog data.
type Factory struct {
	Cards CardLookup
}

// CreateMinion implements game.MinionFactory.
func (f Factory) CreateMinion(cardID string, isPlayer bool) (*game.Minion, error) {
	c, ok := f.Cards.Card(cardID)
	if !ok || !c.IsMinion() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
	}
	return &game.Minion{
		CardID:        c.ID,
		Name:          c.DisplayName(),
		IsPlayer:      isPlayer,
		Tier:          c.TechLevel,
		BaseAttack:    c.Attack,
		MaxAttack:     c.Attack,
		BaseHealth:    c.Health,
		MaxHealth:     c.Health,
		VanillaAttack: c.Attack,
		VanillaHealth: c.Health,
		Races:         append([]game.Race(nil), c.Races...),
	}, nil
}

// CreateAnomaly implements game.AnomalyFactory.
func (f Factory) CreateAnomaly(cardID string) (*game.Anomaly, error) {
	c, ok := f.Cards.Card(cardID)
	if !ok || c.Type != catalog.TypeAnomaly {
		return nil, fmt.Errorf("%w: %s", game.ErrUnknownAnomaly, cardID)
	}
	buff := anomalyBuffs[c.ID]
	return &game.Anomaly{
		CardID:      c.ID,
		Name:        c.DisplayName(),
		AttackBonus: buff[0],
		HealthBonus: buff[1],
	}, nil
}
