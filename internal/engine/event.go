// Package engine implements the simulation core: a deterministic tick
// orchestrator over progression, combat, dungeons, fishing and minigames.
// The core performs no I/O; everything observable leaves through the event
// list on TickResult.
package engine

import "github.com/stphung/idlequest/internal/content"

// Event is one observable occurrence within a tick. The set of variants is
// closed: only types in this package implement it. Each variant carries
// pre-resolved display data so the presentation layer never re-derives game
// logic from raw state.
type Event interface {
	isEvent()
}

// AttackLanded is a single strike in combat, by either side.
type AttackLanded struct {
	Attacker string
	Target   string
	Damage   int
	Crit     bool
}

// EnemyDefeated reports a kill and the experience it paid.
type EnemyDefeated struct {
	Name   string
	Level  int
	XP     int64
	Streak int
}

// PlayerDied reports death in ordinary world combat.
type PlayerDied struct {
	EnemyName string
}

// EnemySpawned announces a fresh opponent.
type EnemySpawned struct {
	Name  string
	Level int
	Boss  bool
}

// BossDefeated reports a subzone boss kill and where the character advanced.
type BossDefeated struct {
	Name       string
	Subzone    string
	AdvancedTo string
}

// WeaponRequired is the domain outcome of a gated boss attempt without the
// forged weapon: not an error, the fight simply does not start.
type WeaponRequired struct {
	Name string
}

// ItemDropped reports loot from a kill, and whether it was auto-equipped.
type ItemDropped struct {
	Item     content.Item
	Equipped bool
}

// LeveledUp reports one level gained and the attribute points distributed.
type LeveledUp struct {
	Level  int
	Points int
}

// PrestigeGained reports one or more prestige ranks gained.
type PrestigeGained struct {
	Rank  int // new rank
	Ranks int // ranks gained in this event
}

// DungeonDiscovered reports a dungeon entrance found after a kill.
type DungeonDiscovered struct {
	Name  string
	Rooms int
}

// DungeonRoomEntered reports advancing to the next room.
type DungeonRoomEntered struct {
	Dungeon string
	Kind    content.RoomKind
	Depth   int
}

// DungeonTreasureFound reports loot from a treasure room.
type DungeonTreasureFound struct {
	Dungeon  string
	Item     content.Item
	Equipped bool
}

// DungeonKeyFound reports picking up the boss-door key.
type DungeonKeyFound struct {
	Dungeon string
}

// DungeonCompleted reports clearing the boss room.
type DungeonCompleted struct {
	Dungeon string
	BonusXP int64
}

// DungeonFailed reports an aborted run (boss door reached without the key).
type DungeonFailed struct {
	Dungeon string
}

// PlayerDiedInDungeon reports a safe death: the run ends, nothing else is
// lost.
type PlayerDiedInDungeon struct {
	Dungeon string
	Depth   int
}

// FishingSpotDiscovered reports a new spot found after a kill.
type FishingSpotDiscovered struct {
	Spot content.FishingSpot
}

// FishCaught reports one catch and its rank progress.
type FishCaught struct {
	Fish   string
	Spot   string
	RankXP int
}

// FishingRankUp reports a fishing rank increase.
type FishingRankUp struct {
	Rank int
}

// FishingEnded reports a session running out of time.
type FishingEnded struct {
	Spot    string
	Catches int
}

// ChallengeDiscovered reports a minigame challenge appearing.
type ChallengeDiscovered struct {
	Kind       content.MinigameKind
	Difficulty int
}

// MinigameMove reports the AI opponent committing a move.
type MinigameMove struct {
	Kind content.MinigameKind
	Move int
}

// MinigameConcluded reports a finished game and its generic rewards.
type MinigameConcluded struct {
	Kind          content.MinigameKind
	Outcome       Outcome
	XP            int64
	PrestigeRanks int
	Tokens        int64
}

// AchievementUnlocked reports a milestone crossing.
type AchievementUnlocked struct {
	ID   string
	Name string
}

// BaseBuildingDiscovered reports the account-level base becoming available.
type BaseBuildingDiscovered struct{}

func (AttackLanded) isEvent()           {}
func (EnemyDefeated) isEvent()          {}
func (PlayerDied) isEvent()             {}
func (EnemySpawned) isEvent()           {}
func (BossDefeated) isEvent()           {}
func (WeaponRequired) isEvent()         {}
func (ItemDropped) isEvent()            {}
func (LeveledUp) isEvent()              {}
func (PrestigeGained) isEvent()         {}
func (DungeonDiscovered) isEvent()      {}
func (DungeonRoomEntered) isEvent()     {}
func (DungeonTreasureFound) isEvent()   {}
func (DungeonKeyFound) isEvent()        {}
func (DungeonCompleted) isEvent()       {}
func (DungeonFailed) isEvent()          {}
func (PlayerDiedInDungeon) isEvent()    {}
func (FishingSpotDiscovered) isEvent()  {}
func (FishCaught) isEvent()             {}
func (FishingRankUp) isEvent()          {}
func (FishingEnded) isEvent()           {}
func (ChallengeDiscovered) isEvent()    {}
func (MinigameMove) isEvent()           {}
func (MinigameConcluded) isEvent()      {}
func (AchievementUnlocked) isEvent()    {}
func (BaseBuildingDiscovered) isEvent() {}

// IsCombatEvent reports whether an event can only arise from combat
// resolution. Used by the exclusivity invariant: a fishing tick must never
// contain one of these.
func IsCombatEvent(e Event) bool {
	switch e.(type) {
	case AttackLanded, EnemyDefeated, PlayerDied, EnemySpawned, BossDefeated, WeaponRequired, ItemDropped:
		return true
	}
	return false
}

// TickResult is the orchestrator's sole return value: everything that
// happened this tick, in order, plus persistence signals for the two
// account-level stores.
type TickResult struct {
	Events []Event

	// SaveAchievements and SaveBaseBuilding tell the caller the respective
	// account store changed and should be written out. When and how is the
	// caller's business.
	SaveAchievements bool
	SaveBaseBuilding bool

	// ReadyAchievements are batches whose accumulation window elapsed this
	// tick, ready for modal display.
	ReadyAchievements []Achievement
}

func (r *TickResult) add(e Event) {
	r.Events = append(r.Events, e)
}
