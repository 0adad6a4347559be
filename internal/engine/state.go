package engine

import (
	"github.com/stphung/idlequest/internal/content"
)

// Attribute indexes the six-attribute block.
type Attribute uint8

const (
	Strength Attribute = iota
	Vitality
	Agility
	Intellect
	Wisdom
	Luck
	AttributeCount
)

// String returns the attribute name.
func (a Attribute) String() string {
	switch a {
	case Strength:
		return "strength"
	case Vitality:
		return "vitality"
	case Agility:
		return "agility"
	case Intellect:
		return "intellect"
	case Wisdom:
		return "wisdom"
	case Luck:
		return "luck"
	default:
		return "unknown"
	}
}

// AttributeBlock holds one value per attribute.
type AttributeBlock [AttributeCount]int

// ZoneProgress tracks position in the overworld and the kill counter toward
// the next boss spawn. Reset (not destroyed) on prestige.
type ZoneProgress struct {
	Zone           int  `json:"zone"`
	Subzone        int  `json:"subzone"`
	KillsInSubzone int  `json:"kills_in_subzone"`
	BossActive     bool `json:"boss_active"`
}

// MinigameRecord accumulates per-game statistics.
type MinigameRecord struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Enemy is the current combat opponent.
type Enemy struct {
	Name     string
	Level    int
	HP       int
	MaxHP    int
	Damage   int
	Defense  int
	XPReward int64
	Boss     bool
}

// CombatState holds the live enemy and the turn timers. Created on spawn,
// destroyed on enemy death or disengagement.
type CombatState struct {
	Enemy       Enemy
	AttackTimer int // ticks until the player's next strike
	EnemyTimer  int // ticks until the enemy's next strike
}

// DungeonState is the room-by-room run through a discovered dungeon.
type DungeonState struct {
	Name      string
	Seed      int64
	Rooms     []content.Room
	RoomIndex int
	HasKey    bool
	Combat    *CombatState // room enemy, if the current room fights
}

// CurrentRoom returns the room the character stands in.
func (d *DungeonState) CurrentRoom() content.Room {
	if d.RoomIndex < 0 || d.RoomIndex >= len(d.Rooms) {
		panic("engine: dungeon room index out of range")
	}
	return d.Rooms[d.RoomIndex]
}

// FishingPhase is a stage of the cast/wait/bite/reel cycle.
type FishingPhase uint8

const (
	PhaseCasting FishingPhase = iota
	PhaseWaiting
	PhaseBite
	PhaseReeling
)

// FishingSession is an active fishing trip. Fully exclusive with combat.
type FishingSession struct {
	Spot       content.FishingSpot
	Phase      FishingPhase
	PhaseTicks int
	TicksLeft  int
	Catches    int
}

// Challenge is a discovered minigame waiting in the menu.
type Challenge struct {
	Kind       content.MinigameKind
	Difficulty int
}

// DungeonOffer is a discovered entrance waiting for the player to step in.
type DungeonOffer struct {
	Name  string
	Seed  int64
	Rooms int
}

// MinigameSession is an accepted challenge being played out.
type MinigameSession struct {
	Kind       content.MinigameKind
	Difficulty int
	Engine     AIEngine
	Moves      int
}

// Character is the single mutable root of per-character state. Fields with
// JSON tags persist; the rest is transient session state rebuilt each run.
type Character struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Level      int            `json:"level"`
	XP         int64          `json:"xp"`
	Attributes AttributeBlock `json:"attributes"`

	PrestigeRank int `json:"prestige_rank"`

	Equipment [content.SlotCount]*content.Item `json:"equipment"`

	Zone ZoneProgress `json:"zone"`

	FishingRank   int                   `json:"fishing_rank"`
	FishingRankXP int                   `json:"fishing_rank_xp"`
	UnlockedSpots []content.FishingSpot `json:"unlocked_spots"`

	MinigameStats map[string]*MinigameRecord `json:"minigame_stats"`

	Tokens          int64 `json:"tokens"`
	PlayTimeSeconds int64 `json:"play_time_seconds"`

	// Transient: never persisted across save/load.
	HP           int
	MaxHP        int
	Regenerating bool
	KillStreak   int

	Combat           *CombatState
	Dungeon          *DungeonState
	Fishing          *FishingSession
	Minigame         *MinigameSession
	PendingChallenge *Challenge
	PendingDungeon   *DungeonOffer

	// RecentDrops is a display buffer, newest first, capped at 10.
	RecentDrops []content.Item

	// xpCarry accumulates the fractional part of the passive per-tick
	// experience trickle between ticks.
	xpCarry float64
}

// recentDropCap bounds the drop display buffer.
const recentDropCap = 10

// NewCharacter creates a fresh level-1 character.
func NewCharacter(id, name string) *Character {
	c := &Character{
		ID:    id,
		Name:  name,
		Level: 1,
		Attributes: AttributeBlock{
			Strength: 5, Vitality: 5, Agility: 5, Intellect: 5, Wisdom: 5, Luck: 5,
		},
		MinigameStats: make(map[string]*MinigameRecord),
	}
	return c
}

// Busy reports whether any exclusive activity is in progress.
func (c *Character) Busy() bool {
	return c.Dungeon != nil || c.Fishing != nil || c.Minigame != nil
}

// pushDrop records an item in the recent-drop buffer, newest first.
func (c *Character) pushDrop(item content.Item) {
	c.RecentDrops = append([]content.Item{item}, c.RecentDrops...)
	if len(c.RecentDrops) > recentDropCap {
		c.RecentDrops = c.RecentDrops[:recentDropCap]
	}
}

// equipIfBetter equips the item when its slot is empty or its power beats the
// current piece. Reports whether it was equipped.
func (c *Character) equipIfBetter(item content.Item) bool {
	cur := c.Equipment[item.Slot]
	if cur == nil || item.Power > cur.Power {
		it := item
		c.Equipment[item.Slot] = &it
		return true
	}
	return false
}

// equippedPower sums Power over the given slot, zero when empty.
func (c *Character) equippedPower(slot content.Slot) int {
	if it := c.Equipment[slot]; it != nil {
		return it.Power
	}
	return 0
}

// record bumps a minigame stat line, creating it on first play.
func (c *Character) recordMinigame(kind content.MinigameKind, outcome Outcome) {
	if c.MinigameStats == nil {
		c.MinigameStats = make(map[string]*MinigameRecord)
	}
	rec, ok := c.MinigameStats[kind.String()]
	if !ok {
		rec = &MinigameRecord{}
		c.MinigameStats[kind.String()] = rec
	}
	rec.Played++
	switch outcome {
	case OutcomeWin:
		rec.Wins++
	case OutcomeLoss:
		rec.Losses++
	case OutcomeDraw:
		rec.Draws++
	}
}
