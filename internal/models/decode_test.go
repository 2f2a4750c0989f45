package models

import "testing"

func TestDecodeLenientWholeFloats(t *testing.T) {
	body := `{"player":{"health":30.0,"minions":[{"cardId":"A","atk":3.0,"hp":2e1}]},"opponent":{"armor":5}}`
	var snap BattleSnapshot
	if err := DecodeLenient([]byte(body), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *snap.Player.Health != 30 || *snap.Opponent.Armor != 5 {
		t.Errorf("sides = %+v / %+v", snap.Player, snap.Opponent)
	}
	m := snap.Player.Minions[0]
	if m.CardID != "A" || *m.Atk != 3 || *m.Hp != 20 {
		t.Errorf("minion = %+v", m)
	}
}

func TestDecodeLenientRejects(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"fraction", `{"player":{"health":30.5}}`},
		{"huge", `{"player":{"health":1e30}}`},
		{"string", `{"player":{"health":"30"}}`},
		{"malformed", `{"player":`},
	}
	for _, tt := range tests {
		var snap BattleSnapshot
		if err := DecodeLenient([]byte(tt.body), &snap); err == nil {
			t.Errorf("%s: decoded %s", tt.name, tt.body)
		}
	}
}
