// Package catalog loads the card database and projects it into the minimal
// listings the local API serves.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pefman/bg-localsim/internal/game"
)

const (
	TypeMinion  = "MINION"
	TypeAnomaly = "BATTLEGROUND_ANOMALY"

	SetBattlegrounds = "BATTLEGROUNDS"
)

// Card is one catalog entry. Tag values mirror the game's numeric tags, so
// a positive value means the tag is set.
type Card struct {
	ID            string
	Name          string
	LocalizedName string
	Type          string
	Set           string
	Races         []game.Race
	Attack        int
	Health        int
	TechLevel     int
	PoolMinion    int
	Buddy         int
	DuosOnly      bool
	SolosOnly     bool
}

// DisplayName prefers the localized name, then the internal name, then the id.
func (c Card) DisplayName() string {
	if n := strings.TrimSpace(c.LocalizedName); n != "" {
		return n
	}
	if n := strings.TrimSpace(c.Name); n != "" {
		return n
	}
	return c.ID
}

// IsMinion reports whether the card is a minion.
func (c Card) IsMinion() bool { return strings.EqualFold(c.Type, TypeMinion) }

func (c Card) hasRace(r game.Race) bool {
	for _, cr := range c.Races {
		if cr == r || cr == game.RaceAll {
			return true
		}
	}
	return false
}

var battlegroundsPrefixes = []string{"bgs_", "bg_", "tb_bacon"}

// IsBattlegroundsMinion recognises Battlegrounds minions that may not be in
// the current pool: tokens, buddies and rotated-out cards.
func IsBattlegroundsMinion(c Card) bool {
	if !c.IsMinion() {
		return false
	}
	id := strings.ToLower(c.ID)
	for _, p := range battlegroundsPrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	if strings.EqualFold(c.Set, SetBattlegrounds) {
		return true
	}
	return c.TechLevel > 0 || c.PoolMinion > 0 || c.Buddy > 0
}

// ParseCards reads a catalog document. Both {"cards":[...]} and a bare
// array are accepted; entries without an id are skipped.
func ParseCards(data []byte) ([]Card, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("catalog is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	list := doc
	if doc.IsObject() {
		list = doc.Get("cards")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("catalog has no card array")
	}

	var out []Card
	list.ForEach(func(_, v gjson.Result) bool {
		id := strings.TrimSpace(v.Get("id").String())
		if id == "" {
			return true
		}
		c := Card{
			ID:            id,
			Name:          v.Get("name").String(),
			LocalizedName: v.Get("localizedName").String(),
			Type:          strings.ToUpper(v.Get("type").String()),
			Set:           strings.ToUpper(v.Get("set").String()),
			Attack:        int(v.Get("attack").Int()),
			Health:        int(v.Get("health").Int()),
			TechLevel:     int(v.Get("techLevel").Int()),
			PoolMinion:    int(v.Get("isBaconPoolMinion").Int()),
			Buddy:         int(v.Get("baconBuddy").Int()),
			DuosOnly:      v.Get("duosOnly").Bool(),
			SolosOnly:     v.Get("solosOnly").Bool(),
		}
		races := v.Get("races").Array()
		if r := v.Get("race"); r.Exists() {
			races = append(races, r)
		}
		for _, r := range races {
			if race, ok := game.ParseRace(r.String()); ok && race != game.RaceInvalid {
				c.Races = append(c.Races, race)
			}
		}
		out = append(out, c)
		return true
	})
	return out, nil
}
