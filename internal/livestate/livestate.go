// Package livestate reads the state of the running match from a JSON file
// kept up to date by the game tracker.
package livestate

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/pefman/bg-localsim/internal/game"
	"github.com/pefman/bg-localsim/internal/models"
)

// ErrNoSnapshot is returned when no current board is available.
var ErrNoSnapshot = errors.New("no live battle snapshot")

// document is the file layout.
type document struct {
	InBattlegrounds bool                   `json:"inBattlegrounds"`
	Duos            bool                   `json:"duos"`
	AvailableRaces  []string               `json:"availableRaces"`
	Snapshot        *models.BattleSnapshot `json:"snapshot"`
}

// State is the last successfully read match state. An empty path or a
// missing file means no match is running.
type State struct {
	path string

	mu  sync.RWMutex
	doc document
}

// New creates a state reader. Call Reload to read the file.
func New(path string) *State {
	return &State{path: path}
}

// Reload re-reads the file. A parse failure keeps the previous state.
func (s *State) Reload() error {
	var doc document
	if s.path != "" {
		data, err := os.ReadFile(s.path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return fmt.Errorf("read live state: %w", err)
		default:
			if err := models.DecodeLenient(data, &doc); err != nil {
				return fmt.Errorf("parse live state: %w", err)
			}
		}
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	log.Printf("[LiveState] inBattlegrounds=%v duos=%v races=%d", doc.InBattlegrounds, doc.Duos, len(doc.AvailableRaces))
	return nil
}

// Set replaces the state directly.
func (s *State) Set(inBattlegrounds, duos bool, races []string, snapshot *models.BattleSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = document{InBattlegrounds: inBattlegrounds, Duos: duos, AvailableRaces: races, Snapshot: snapshot}
}

// IsInBattlegrounds reports whether a Battlegrounds match is running.
func (s *State) IsInBattlegrounds() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.InBattlegrounds
}

// IsDuos reports whether the running match is a duos match.
func (s *State) IsDuos() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.InBattlegrounds && s.doc.Duos
}

// AvailableRaces returns the match's tribes, or nil outside a match.
func (s *State) AvailableRaces() []game.Race {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.doc.InBattlegrounds {
		return nil
	}
	var out []game.Race
	for _, name := range s.doc.AvailableRaces {
		if r, ok := game.ParseRace(name); ok && r != game.RaceInvalid {
			out = append(out, r)
		}
	}
	return out
}

// Snapshot returns the current board.
func (s *State) Snapshot() (*models.BattleSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.doc.InBattlegrounds || s.doc.Snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return s.doc.Snapshot, nil
}
