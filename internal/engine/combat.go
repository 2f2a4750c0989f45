package engine

import (
	"math/rand"

	"github.com/pefman/bg-localsim/internal/game"
)

// maxAttacks bounds one fight; boards that cannot finish count as a tie.
const maxAttacks = 400

type result int

const (
	resultLose result = iota - 1
	resultTie
	resultWin
)

type unit struct {
	atk, hp   int
	div       int
	taunt     bool
	reborn    bool
	poisonous bool
	venomous  bool
	windfury  bool
	mega      bool
	stealth   bool
	cleave    bool
	attacked  bool
	src       *game.Minion
}

func newUnit(m *game.Minion, a *game.Anomaly) *unit {
	u := &unit{
		atk:       m.MaxAttack,
		hp:        m.MaxHealth,
		div:       m.Div,
		taunt:     m.Taunt,
		reborn:    m.Reborn,
		poisonous: m.Poisonous,
		venomous:  m.Venomous,
		windfury:  m.Windfury,
		mega:      m.MegaWindfury,
		stealth:   m.Stealth,
		cleave:    m.Cleave,
		src:       m,
	}
	if a != nil {
		u.atk += a.AttackBonus
		u.hp += a.HealthBonus
	}
	return u
}

// rebornCopy is the unit returned by reborn: same card, one health.
func (u *unit) rebornCopy() *unit {
	c := newUnit(u.src, nil)
	c.hp = 1
	c.reborn = false
	c.attacked = u.attacked
	return c
}

func (u *unit) swings() int {
	switch {
	case u.mega:
		return 4
	case u.windfury:
		return 2
	}
	return 1
}

type board []*unit

func newBoard(p game.Player, a *game.Anomaly) board {
	b := make(board, 0, len(p.Side))
	for _, m := range p.Side {
		u := newUnit(m, a)
		if u.hp > 0 {
			b = append(b, u)
		}
	}
	return b
}

// nextAttacker returns the leftmost unit with attack that has not attacked
// this cycle, starting a new cycle when every such unit has.
func (b board) nextAttacker() *unit {
	for pass := 0; pass < 2; pass++ {
		for _, u := range b {
			if u.atk > 0 && !u.attacked {
				return u
			}
		}
		for _, u := range b {
			u.attacked = false
		}
	}
	return nil
}

func (b board) pickTarget(rng *rand.Rand) int {
	var taunts, visible []int
	for i, u := range b {
		if u.stealth {
			continue
		}
		visible = append(visible, i)
		if u.taunt {
			taunts = append(taunts, i)
		}
	}
	switch {
	case len(taunts) > 0:
		return taunts[rng.Intn(len(taunts))]
	case len(visible) > 0:
		return visible[rng.Intn(len(visible))]
	}
	return rng.Intn(len(b))
}

// hit applies damage and reports whether it went past a divine shield.
func hit(u *unit, amount int, lethal bool) bool {
	if amount <= 0 {
		return false
	}
	if u.div > 0 {
		u.div--
		return false
	}
	u.hp -= amount
	if lethal {
		u.hp = 0
	}
	return true
}

func (b board) sweep() board {
	out := b[:0]
	for _, u := range b {
		switch {
		case u.hp > 0:
			out = append(out, u)
		case u.reborn:
			out = append(out, u.rebornCopy())
		}
	}
	return out
}

func contains(b board, u *unit) bool {
	for _, x := range b {
		if x == u {
			return true
		}
	}
	return false
}

func attack(rng *rand.Rand, a *unit, defenders board) {
	t := defenders.pickTarget(rng)
	target := defenders[t]
	victims := []*unit{target}
	if a.cleave {
		if t > 0 {
			victims = append(victims, defenders[t-1])
		}
		if t+1 < len(defenders) {
			victims = append(victims, defenders[t+1])
		}
	}
	landed := false
	for _, v := range victims {
		if hit(v, a.atk, a.poisonous || a.venomous) {
			landed = true
		}
	}
	if landed && a.venomous {
		a.venomous = false
	}
	if hit(a, target.atk, target.poisonous || target.venomous) && target.venomous {
		target.venomous = false
	}
	a.stealth = false
}

// fight resolves one combat from the player's point of view.
func fight(rng *rand.Rand, in *game.Input) result {
	sides := [2]board{newBoard(in.Player, in.Anomaly), newBoard(in.Opponent, in.Anomaly)}

	turn := rng.Intn(2)
	switch {
	case len(sides[0]) > len(sides[1]):
		turn = 0
	case len(sides[1]) > len(sides[0]):
		turn = 1
	}

	for n := 0; n < maxAttacks; n++ {
		if len(sides[0]) == 0 || len(sides[1]) == 0 {
			break
		}
		a := sides[turn].nextAttacker()
		if a == nil {
			if sides[1-turn].nextAttacker() == nil {
				return resultTie
			}
			turn = 1 - turn
			continue
		}
		a.attacked = true
		for s := a.swings(); s > 0; s-- {
			attack(rng, a, sides[1-turn])
			sides[0], sides[1] = sides[0].sweep(), sides[1].sweep()
			if len(sides[1-turn]) == 0 || !contains(sides[turn], a) {
				break
			}
		}
		turn = 1 - turn
	}

	switch p, o := len(sides[0]), len(sides[1]); {
	case p > 0 && o == 0:
		return resultWin
	case p == 0 && o > 0:
		return resultLose
	}
	return resultTie
}
