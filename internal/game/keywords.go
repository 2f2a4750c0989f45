package game

import "strings"

// Keyword is a caller-supplied minion flag.
type Keyword int

const (
	KeywordTaunt Keyword = iota
	KeywordDivineShield
	KeywordReborn
	KeywordPoisonous
	KeywordVenomous
	KeywordWindfury
	KeywordMegaWindfury
	KeywordStealth
)

// keywordTable maps lower-cased tag strings to keywords. Lookups fold case.
var keywordTable = map[string]Keyword{
	"taunt":        KeywordTaunt,
	"divineshield": KeywordDivineShield,
	"reborn":       KeywordReborn,
	"poisonous":    KeywordPoisonous,
	"venomous":     KeywordVenomous,
	"windfury":     KeywordWindfury,
	"megawindfury": KeywordMegaWindfury,
	"stealth":      KeywordStealth,
}

// KeywordSet is the set of keywords present on one minion.
type KeywordSet map[Keyword]bool

// LookupKeyword resolves one tag. Unknown tags, including the "golden"
// alias, report false.
func LookupKeyword(tag string) (Keyword, bool) {
	k, ok := keywordTable[strings.ToLower(strings.TrimSpace(tag))]
	return k, ok
}

// ParseKeywords builds a set from raw tags, ignoring unrecognised ones.
func ParseKeywords(tags []string) KeywordSet {
	set := KeywordSet{}
	for _, t := range tags {
		if k, ok := LookupKeyword(t); ok {
			set[k] = true
		}
	}
	return set
}

// Apply sets the minion's keyword flags from the set. Every flag is written,
// so absent keywords clear whatever the factory provided.
func (s KeywordSet) Apply(m *Minion) {
	m.Taunt = s[KeywordTaunt]
	m.Div = 0
	if s[KeywordDivineShield] {
		m.Div = 1
	}
	m.Reborn = s[KeywordReborn]
	m.Poisonous = s[KeywordPoisonous]
	m.Venomous = s[KeywordVenomous]
	m.Windfury = s[KeywordWindfury]
	m.MegaWindfury = s[KeywordMegaWindfury]
	m.Stealth = s[KeywordStealth]
}
