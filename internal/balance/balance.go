// Package balance holds every gameplay tuning constant in one flat struct.
// Values load from an optional YAML file; anything not overridden keeps its
// default.
package balance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance is the complete set of gameplay tuning knobs.
type Balance struct {
	// Experience curve
	XPBase     float64 `yaml:"xp_base"`
	XPExponent float64 `yaml:"xp_exponent"`
	XPPerTick  float64 `yaml:"xp_per_tick"`

	// Leveling
	PointsPerLevel   int `yaml:"points_per_level"`
	AttributeRerolls int `yaml:"attribute_rerolls"`
	BaseAttributeCap int `yaml:"base_attribute_cap"`
	CapPerPrestige   int `yaml:"cap_per_prestige"`

	// Prestige
	PrestigeCoeff    float64 `yaml:"prestige_coeff"`
	PrestigePower    float64 `yaml:"prestige_power"`
	PrestigeMinLevel int     `yaml:"prestige_min_level"`
	PrestigeHPBonus  int     `yaml:"prestige_hp_bonus"` // flat max-HP per rank
	WisdomXPBonus    float64 `yaml:"wisdom_xp_bonus"`   // linear, per point
	IntellectXPBonus float64 `yaml:"intellect_xp_bonus"`

	// Timekeeping
	TicksPerSecond int `yaml:"ticks_per_second"`

	// Offline progression
	OfflineCapHours int     `yaml:"offline_cap_hours"`
	OfflineRate     float64 `yaml:"offline_rate"` // fraction of online XP rate

	// Combat
	PlayerAttackTicks int     `yaml:"player_attack_ticks"`
	EnemyAttackTicks  int     `yaml:"enemy_attack_ticks"`
	RegenPerTick      int     `yaml:"regen_per_tick"`
	BaseCritChance    float64 `yaml:"base_crit_chance"`
	CritPerLuck       float64 `yaml:"crit_per_luck"`
	KillsPerBoss      int     `yaml:"kills_per_boss"`
	DropChance        float64 `yaml:"drop_chance"`

	// Discovery rolls
	DungeonChance        float64 `yaml:"dungeon_chance"`      // per kill
	FishingSpotChance    float64 `yaml:"fishing_spot_chance"` // per kill
	ChallengeChance      float64 `yaml:"challenge_chance"`    // per idle tick
	ChallengeMinPrestige int     `yaml:"challenge_min_prestige"`
	BaseBuildingChance   float64 `yaml:"base_building_chance"` // per eligible tick
	BaseBuildMinPrestige int     `yaml:"base_build_min_prestige"`

	// Fishing
	FishingSessionTicks int     `yaml:"fishing_session_ticks"`
	FishingCastTicks    int     `yaml:"fishing_cast_ticks"`
	FishingReelTicks    int     `yaml:"fishing_reel_ticks"`
	FishingBiteChance   float64 `yaml:"fishing_bite_chance"` // per waiting tick
	FishingRankXP       int     `yaml:"fishing_rank_xp"`     // rank-up threshold per rank

	// Dungeons
	DungeonRooms   int     `yaml:"dungeon_rooms"`
	EliteHPScale   float64 `yaml:"elite_hp_scale"`
	DungeonBonusXP float64 `yaml:"dungeon_bonus_xp"` // multiple of a kill's XP on clear

	// Achievements
	AchievementWindowTicks uint64 `yaml:"achievement_window_ticks"` // 500ms at 10 t/s
}

// Default returns the shipped tuning.
func Default() *Balance {
	return &Balance{
		XPBase:     100,
		XPExponent: 1.5,
		XPPerTick:  0.25,

		PointsPerLevel:   3,
		AttributeRerolls: 10,
		BaseAttributeCap: 100,
		CapPerPrestige:   10,

		PrestigeCoeff:    0.15,
		PrestigePower:    0.6,
		PrestigeMinLevel: 50,
		PrestigeHPBonus:  25,
		WisdomXPBonus:    0.002,
		IntellectXPBonus: 0.001,

		TicksPerSecond: 10,

		OfflineCapHours: 168, // 7 days
		OfflineRate:     0.5,

		PlayerAttackTicks: 8,
		EnemyAttackTicks:  11,
		RegenPerTick:      4,
		BaseCritChance:    0.05,
		CritPerLuck:       0.002,
		KillsPerBoss:      10,
		DropChance:        0.15,

		DungeonChance:        0.02,
		FishingSpotChance:    0.015,
		ChallengeChance:      0.003,
		ChallengeMinPrestige: 1,
		BaseBuildingChance:   0.001,
		BaseBuildMinPrestige: 3,

		FishingSessionTicks: 600,
		FishingCastTicks:    15,
		FishingReelTicks:    10,
		FishingBiteChance:   0.08,
		FishingRankXP:       100,

		DungeonRooms:   8,
		EliteHPScale:   1.8,
		DungeonBonusXP: 5.0,

		AchievementWindowTicks: 5,
	}
}

// Relaxed eases the grind for casual play.
func Relaxed() *Balance {
	b := Default()
	b.XPExponent = 1.4
	b.DropChance = 0.25
	b.DungeonChance = 0.04
	b.FishingSpotChance = 0.03
	b.OfflineRate = 0.75
	b.KillsPerBoss = 6
	return b
}

// Brutal stretches every curve for long-haul players.
func Brutal() *Balance {
	b := Default()
	b.XPExponent = 1.65
	b.DropChance = 0.08
	b.OfflineRate = 0.3
	b.KillsPerBoss = 15
	b.EnemyAttackTicks = 9
	return b
}

// Load reads YAML overrides from path on top of the defaults. A missing file
// is not an error: the defaults are returned unchanged.
func Load(path string) (*Balance, error) {
	b := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, fmt.Errorf("read balance file: %w", err)
	}
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parse balance file: %w", err)
	}
	return b, nil
}
