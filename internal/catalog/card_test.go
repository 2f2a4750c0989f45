package catalog

import (
	"testing"

	"github.com/pefman/bg-localsim/internal/game"
)

const sampleCatalog = `{
  "cards": [
    {"id": "BGS_004", "name": "Wrath Weaver", "type": "MINION", "set": "BATTLEGROUNDS", "races": ["DEMON"], "attack": 1, "health": 3, "techLevel": 1, "isBaconPoolMinion": 1},
    {"id": "BGS_061", "name": "Scallywag", "localizedName": "Scallywag (en)", "type": "minion", "race": "pirate", "attack": 2, "health": 1, "techLevel": 1, "isBaconPoolMinion": 1},
    {"id": "GVG_113", "name": "Foe Reaper 4000", "type": "MINION", "set": "GVG", "races": ["MECHANICAL"], "attack": 6, "health": 9, "techLevel": 6},
    {"id": "", "name": "No id"},
    {"id": "CS2_231", "name": "Wisp", "type": "MINION", "set": "CORE", "attack": 1, "health": 1},
    {"id": "TB_BaconShop_HERO_01", "name": "Some Hero", "type": "HERO"},
    {"id": "BGS_Anomaly_1", "name": "Tavern Special", "type": "BATTLEGROUND_ANOMALY"}
  ]
}`

func TestParseCards(t *testing.T) {
	cards, err := ParseCards([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cards) != 6 {
		t.Fatalf("got %d cards, want 6", len(cards))
	}
	scally := cards[1]
	if scally.Type != TypeMinion {
		t.Errorf("type = %q, want upper-cased MINION", scally.Type)
	}
	if len(scally.Races) != 1 || scally.Races[0] != game.RacePirate {
		t.Errorf("races = %v, want [PIRATE]", scally.Races)
	}
	if scally.DisplayName() != "Scallywag (en)" {
		t.Errorf("display name = %q", scally.DisplayName())
	}
	if cards[0].Attack != 1 || cards[0].Health != 3 || cards[0].TechLevel != 1 {
		t.Errorf("stats not parsed: %+v", cards[0])
	}
}

func TestParseCardsBareArray(t *testing.T) {
	cards, err := ParseCards([]byte(`[{"id":"BG_1","type":"MINION"}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cards) != 1 || cards[0].DisplayName() != "BG_1" {
		t.Fatalf("got %+v", cards)
	}
}

func TestParseCardsErrors(t *testing.T) {
	for _, doc := range []string{`{`, `{"cards": 3}`, `"x"`} {
		if _, err := ParseCards([]byte(doc)); err == nil {
			t.Errorf("ParseCards(%q) succeeded, want error", doc)
		}
	}
}

func TestIsBattlegroundsMinion(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want bool
	}{
		{"bgs prefix", Card{ID: "bgs_100", Type: TypeMinion}, true},
		{"bg prefix", Card{ID: "BG_Foo", Type: TypeMinion}, true},
		{"tb bacon prefix", Card{ID: "TB_BaconUps_1", Type: TypeMinion}, true},
		{"battlegrounds set", Card{ID: "X_1", Type: TypeMinion, Set: SetBattlegrounds}, true},
		{"tech level", Card{ID: "X_2", Type: TypeMinion, TechLevel: 2}, true},
		{"pool flag", Card{ID: "X_3", Type: TypeMinion, PoolMinion: 1}, true},
		{"buddy", Card{ID: "X_4", Type: TypeMinion, Buddy: 1}, true},
		{"plain minion", Card{ID: "CS2_231", Type: TypeMinion}, false},
		{"zero tags", Card{ID: "X_5", Type: TypeMinion, TechLevel: 0, PoolMinion: 0}, false},
		{"not a minion", Card{ID: "BGS_hero", Type: "HERO"}, false},
	}
	for _, tt := range tests {
		if got := IsBattlegroundsMinion(tt.card); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}
