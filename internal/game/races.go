package game

import "strings"

// Race is a minion tribe. INVALID is the sentinel zero value.
type Race int

const (
	RaceInvalid Race = iota
	RaceBeast
	RaceDemon
	RaceDragon
	RaceElemental
	RaceMechanical
	RaceMurloc
	RaceNaga
	RacePirate
	RaceQuilboar
	RaceUndead
	RaceAll
)

var raceNames = [...]string{
	RaceInvalid:    "INVALID",
	RaceBeast:      "BEAST",
	RaceDemon:      "DEMON",
	RaceDragon:     "DRAGON",
	RaceElemental:  "ELEMENTAL",
	RaceMechanical: "MECHANICAL",
	RaceMurloc:     "MURLOC",
	RaceNaga:       "NAGA",
	RacePirate:     "PIRATE",
	RaceQuilboar:   "QUILBOAR",
	RaceUndead:     "UNDEAD",
	RaceAll:        "ALL",
}

func (r Race) String() string {
	if r < 0 || int(r) >= len(raceNames) {
		return raceNames[RaceInvalid]
	}
	return raceNames[r]
}

// ParseRace matches a race name case-insensitively. Unknown names return
// RaceInvalid and false.
func ParseRace(s string) (Race, bool) {
	s = strings.TrimSpace(s)
	for i, name := range raceNames {
		if strings.EqualFold(name, s) {
			return Race(i), true
		}
	}
	return RaceInvalid, false
}

// AllRaces returns every known race except the INVALID sentinel, in
// declaration order.
func AllRaces() []Race {
	out := make([]Race, 0, len(raceNames)-1)
	for i := range raceNames {
		if Race(i) != RaceInvalid {
			out = append(out, Race(i))
		}
	}
	return out
}

// TribeRaces is AllRaces without ALL, the set a minion pool is drawn from.
func TribeRaces() []Race {
	out := make([]Race, 0, len(raceNames)-2)
	for _, r := range AllRaces() {
		if r != RaceAll {
			out = append(out, r)
		}
	}
	return out
}
