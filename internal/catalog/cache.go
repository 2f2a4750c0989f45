package catalog

import (
	"encoding/json"
	"log"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pefman/bg-localsim/internal/game"
)

// Provider is the card database the cache projects.
type Provider interface {
	Ready() bool
	Races() []game.Race
	CardsByRaces(races []game.Race, duos bool) []Card
	All() []Card
}

// Notifier delivers catalog change notifications.
type Notifier interface {
	OnChange(fn func())
	OnInitialLoad(fn func())
}

// Listing is one entry of the /cards payload.
type Listing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type listingDoc struct {
	Ready bool      `json:"ready"`
	Cards []Listing `json:"cards"`
}

var notReadyJSON = mustMarshal(listingDoc{Ready: false, Cards: []Listing{}})

// Cache memoizes the serialized card listing until invalidated.
type Cache struct {
	provider Provider
	duos     func() bool
	tag      language.Tag

	mu     sync.Mutex
	cached []byte
}

// NewCache builds a cache over provider. duos may be nil.
func NewCache(provider Provider, duos func() bool) *Cache {
	return &Cache{provider: provider, duos: duos, tag: language.English}
}

// Subscribe clears the cache on both catalog notifications.
func (c *Cache) Subscribe(n Notifier) {
	n.OnChange(c.Invalidate)
	n.OnInitialLoad(c.Invalidate)
}

// Invalidate drops the cached listing. A computation already holding the
// lock finishes first; the next reader recomputes.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// CardsJSON returns the serialized listing. The not-ready payload is never
// cached. The returned slice must not be modified.
func (c *Cache) CardsJSON() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil {
		return c.cached
	}
	if !c.provider.Ready() {
		return notReadyJSON
	}

	data, err := json.Marshal(listingDoc{Ready: true, Cards: c.listings()})
	if err != nil {
		log.Printf("[Catalog] encode listing: %v", err)
		return notReadyJSON
	}
	c.cached = data
	return data
}

func (c *Cache) listings() []Listing {
	races := c.provider.Races()
	if len(races) == 0 {
		races = game.TribeRaces()
	}
	duos := c.duos != nil && c.duos()

	seen := map[string]bool{}
	out := []Listing{}
	add := func(card Card) {
		if seen[card.ID] {
			return
		}
		seen[card.ID] = true
		out = append(out, Listing{ID: card.ID, Name: card.DisplayName()})
	}
	for _, card := range c.provider.CardsByRaces(races, duos) {
		if card.IsMinion() {
			add(card)
		}
	}
	for _, card := range c.provider.All() {
		if IsBattlegroundsMinion(card) {
			add(card)
		}
	}

	col := collate.New(c.tag)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
