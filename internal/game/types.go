package game

// Minion is a simulator-ready minion. Base and Max stats start equal when
// the caller overrides them; Vanilla stats are the card's printed baseline.
type Minion struct {
	CardID        string
	Name          string
	IsPlayer      bool
	Position      int // 1-based board slot, per side
	Tier          int
	Golden        bool
	BaseAttack    int
	MaxAttack     int
	BaseHealth    int
	MaxHealth     int
	VanillaAttack int
	VanillaHealth int
	Races         []Race

	Taunt        bool
	Div          int // divine shield count
	Reborn       bool
	Poisonous    bool
	Venomous     bool
	Windfury     bool
	MegaWindfury bool
	Stealth      bool
	Cleave       bool

	ScriptDataNum1 int
	ScriptDataNum2 int
	ScriptDataNum3 int
}

// Player is one side of the combat. Health already includes armor.
type Player struct {
	Health      int
	DamageTaken int
	Tier        int
	Side        []*Minion
}

// Anomaly is a board-wide modifier active for the whole fight.
type Anomaly struct {
	CardID      string
	Name        string
	AttackBonus int
	HealthBonus int
}

// Input is the strict description handed to the simulator.
type Input struct {
	Player         Player
	Opponent       Player
	AvailableRaces []Race
	DamageCap      *int // nil keeps the simulator default
	Anomaly        *Anomaly
}

// MinionFactory builds a minion with the card's printed stats.
// isPlayer affects rule interpretation and is passed through unchanged.
type MinionFactory interface {
	CreateMinion(cardID string, isPlayer bool) (*Minion, error)
}

// AnomalyFactory resolves an anomaly card id.
type AnomalyFactory interface {
	CreateAnomaly(cardID string) (*Anomaly, error)
}

// CleaveCardIDs lists cards whose attacks also hit the target's neighbours.
var CleaveCardIDs = map[string]bool{
	"GVG_113":         true, // Foe Reaper 4000
	"TB_BaconUps_153": true,
	"LOOT_078":        true, // Cave Hydra
	"TB_BaconUps_151": true,
	"BG24_012":        true,
	"BG24_012_G":      true,
}

// NoPremiumCardIDs lists cards whose implementation does not encode the
// golden doubling, so golden copies need their vanilla stats doubled.
var NoPremiumCardIDs = map[string]bool{
	"BGS_004":  true,
	"BGS_039":  true,
	"BG20_301": true,
	"BG25_008": true,
	"BG26_176": true,
	"BG27_013": true,
	"BG28_401": true,
}
