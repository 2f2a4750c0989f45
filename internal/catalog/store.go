package catalog

import (
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/pefman/bg-localsim/internal/game"
)

// Store is a file-backed card catalog. It is not ready until the first
// successful load; later loads replace the cards and notify OnChange.
type Store struct {
	path string

	mu    sync.RWMutex
	ready bool
	cards []Card
	byID  map[string]Card

	listenersMu sync.Mutex
	onChange    []func()
	onInitial   []func()
}

// NewStore creates a store reading from path. No I/O happens until Load.
func NewStore(path string) *Store {
	return &Store{path: path, byID: map[string]Card{}}
}

// Load reads the catalog file and replaces the store's contents.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", s.path, err)
	}
	cards, err := ParseCards(data)
	if err != nil {
		return fmt.Errorf("parse catalog %s: %w", s.path, err)
	}
	log.Printf("[Catalog] Loaded %d cards from %s", len(cards), s.path)
	s.Replace(cards)
	return nil
}

// Replace swaps in a new card set. The first call fires the initial-load
// listeners; later calls fire the change listeners.
func (s *Store) Replace(cards []Card) {
	byID := make(map[string]Card, len(cards))
	for _, c := range cards {
		if _, dup := byID[c.ID]; !dup {
			byID[c.ID] = c
		}
	}

	s.mu.Lock()
	first := !s.ready
	s.ready = true
	s.cards = cards
	s.byID = byID
	s.mu.Unlock()

	s.listenersMu.Lock()
	listeners := s.onChange
	if first {
		listeners = s.onInitial
	}
	listeners = append([]func(){}, listeners...)
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnChange registers fn to run after every reload following the first.
func (s *Store) OnChange(fn func()) {
	s.listenersMu.Lock()
	s.onChange = append(s.onChange, fn)
	s.listenersMu.Unlock()
}

// OnInitialLoad registers fn to run once the first load completes.
func (s *Store) OnInitialLoad(fn func()) {
	s.listenersMu.Lock()
	s.onInitial = append(s.onInitial, fn)
	s.listenersMu.Unlock()
}

// Ready reports whether the initial load has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// All returns every card in file order.
func (s *Store) All() []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Card looks up one card by id.
func (s *Store) Card(id string) (Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	return c, ok
}

// Races returns the tribes present in the minion pool, sorted.
func (s *Store) Races() []game.Race {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[game.Race]bool{}
	for _, c := range s.cards {
		if !isPoolMinion(c) {
			continue
		}
		for _, r := range c.Races {
			if r != game.RaceInvalid && r != game.RaceAll {
				seen[r] = true
			}
		}
	}
	out := make([]game.Race, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CardsByRaces returns pool minions of any of the given races plus neutral
// pool minions, honoring the solos/duos restrictions.
func (s *Store) CardsByRaces(races []game.Race, duos bool) []Card {
	want := map[game.Race]bool{}
	for _, r := range races {
		want[r] = true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Card
	for _, c := range s.cards {
		if !isPoolMinion(c) {
			continue
		}
		if (duos && c.SolosOnly) || (!duos && c.DuosOnly) {
			continue
		}
		if len(c.Races) == 0 || matchesAny(c, want) {
			out = append(out, c)
		}
	}
	return out
}

func isPoolMinion(c Card) bool {
	return c.IsMinion() && (c.PoolMinion > 0 || c.TechLevel > 0)
}

func matchesAny(c Card, want map[game.Race]bool) bool {
	for r := range want {
		if c.hasRace(r) {
			return true
		}
	}
	return false
}
