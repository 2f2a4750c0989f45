package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pefman/bg-localsim/internal/game"
)

func writeCatalog(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestStoreLoadAndNotify(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)
	s := NewStore(path)
	initial, changed := 0, 0
	s.OnInitialLoad(func() { initial++ })
	s.OnChange(func() { changed++ })

	if s.Ready() {
		t.Fatal("store ready before load")
	}
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Ready() || initial != 1 || changed != 0 {
		t.Fatalf("after first load ready=%v initial=%d changed=%d", s.Ready(), initial, changed)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if initial != 1 || changed != 1 {
		t.Fatalf("after reload initial=%d changed=%d", initial, changed)
	}

	if c, ok := s.Card("GVG_113"); !ok || c.Attack != 6 {
		t.Errorf("Card(GVG_113) = %+v, %v", c, ok)
	}
	if _, ok := s.Card("nope"); ok {
		t.Error("Card(nope) found")
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); err == nil {
		t.Fatal("expected error")
	}
	if s.Ready() {
		t.Fatal("ready after failed load")
	}
}

func TestStoreRaces(t *testing.T) {
	s := NewStore("")
	s.Replace([]Card{
		{ID: "a", Type: TypeMinion, TechLevel: 1, Races: []game.Race{game.RaceMurloc}},
		{ID: "b", Type: TypeMinion, TechLevel: 1, Races: []game.Race{game.RaceBeast, game.RaceAll}},
		{ID: "c", Type: TypeMinion, Races: []game.Race{game.RaceDragon}}, // not in pool
	})
	got := s.Races()
	want := []game.Race{game.RaceBeast, game.RaceMurloc}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("race %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStoreCardsByRaces(t *testing.T) {
	s := NewStore("")
	s.Replace([]Card{
		{ID: "murloc", Type: TypeMinion, TechLevel: 1, Races: []game.Race{game.RaceMurloc}},
		{ID: "beast", Type: TypeMinion, TechLevel: 1, Races: []game.Race{game.RaceBeast}},
		{ID: "amalgam", Type: TypeMinion, TechLevel: 1, Races: []game.Race{game.RaceAll}},
		{ID: "neutral", Type: TypeMinion, PoolMinion: 1},
		{ID: "duos", Type: TypeMinion, TechLevel: 2, DuosOnly: true},
		{ID: "solos", Type: TypeMinion, TechLevel: 2, SolosOnly: true},
		{ID: "spell", Type: "SPELL", TechLevel: 1},
	})
	ids := func(cards []Card) map[string]bool {
		m := map[string]bool{}
		for _, c := range cards {
			m[c.ID] = true
		}
		return m
	}
	solo := ids(s.CardsByRaces([]game.Race{game.RaceMurloc}, false))
	for _, want := range []string{"murloc", "amalgam", "neutral", "solos"} {
		if !solo[want] {
			t.Errorf("solos pool missing %s", want)
		}
	}
	for _, not := range []string{"beast", "duos", "spell"} {
		if solo[not] {
			t.Errorf("solos pool contains %s", not)
		}
	}
	duo := ids(s.CardsByRaces([]game.Race{game.RaceBeast}, true))
	if !duo["duos"] || duo["solos"] || !duo["beast"] {
		t.Errorf("duos pool = %v", duo)
	}
}
