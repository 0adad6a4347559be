package engine

import (
	"math"
	"time"

	"github.com/stphung/idlequest/internal/content"
	"github.com/stphung/idlequest/internal/entropy"
)

// XPForLevel returns the experience required to advance from level n to
// n+1: BASE * n^EXP. Strictly increasing, uncapped.
func (e *Engine) XPForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(e.bal.XPBase * math.Pow(float64(level), e.bal.XPExponent))
}

// PrestigeMultiplier is the account-wide experience multiplier:
// 1 + k*rank^p (p < 1, diminishing marginal gain) plus a small linear
// wisdom bonus.
func (e *Engine) PrestigeMultiplier(c *Character) float64 {
	rank := float64(c.PrestigeRank)
	base := 1.0 + e.bal.PrestigeCoeff*math.Pow(rank, e.bal.PrestigePower)
	return base + e.bal.WisdomXPBonus*float64(c.Attributes[Wisdom])
}

// XPPerTickRate is the passive per-tick experience rate: base rate scaled by
// the prestige multiplier and a small intellect bonus.
func (e *Engine) XPPerTickRate(c *Character) float64 {
	intBonus := 1.0 + e.bal.IntellectXPBonus*float64(c.Attributes[Intellect])
	return e.bal.XPPerTick * e.PrestigeMultiplier(c) * intBonus
}

// AttributeCap is the per-attribute ceiling at the character's prestige rank.
func (e *Engine) AttributeCap(c *Character) int {
	return e.bal.BaseAttributeCap + e.bal.CapPerPrestige*c.PrestigeRank
}

// DerivedStats are the combat numbers recomputed from attributes and
// equipment at the top of every tick.
type DerivedStats struct {
	MaxHP      int
	Damage     int
	Defense    int
	CritChance float64
}

// Derive computes combat stats from the attribute block, equipment and
// prestige-derived flat bonuses.
func (e *Engine) Derive(c *Character) DerivedStats {
	return DerivedStats{
		MaxHP: 50 + 10*c.Attributes[Vitality] +
			e.bal.PrestigeHPBonus*c.PrestigeRank +
			c.equippedPower(content.SlotTrinket),
		Damage:     3 + c.Attributes[Strength] + c.equippedPower(content.SlotWeapon),
		Defense:    c.Attributes[Agility]/2 + c.equippedPower(content.SlotArmor),
		CritChance: e.bal.BaseCritChance + e.bal.CritPerLuck*float64(c.Attributes[Luck]),
	}
}

// GrantXP applies an experience gain, looping level-ups so one large grant
// can cascade through multiple levels. Each level grants PointsPerLevel
// attribute points distributed uniformly among uncapped attributes, with a
// bounded number of re-rolls per point before falling back to a scan.
func (e *Engine) GrantXP(c *Character, amount int64, rng entropy.Source) []Event {
	if amount <= 0 {
		return nil
	}
	c.XP += amount

	var events []Event
	for c.XP >= e.XPForLevel(c.Level) {
		c.XP -= e.XPForLevel(c.Level)
		c.Level++
		granted := e.distributePoints(c, e.bal.PointsPerLevel, rng)
		events = append(events, LeveledUp{Level: c.Level, Points: granted})
	}
	return events
}

// distributePoints assigns points uniformly at random among attributes below
// the prestige cap. Returns how many points actually landed; points are
// forfeited only when every attribute is capped.
func (e *Engine) distributePoints(c *Character, points int, rng entropy.Source) int {
	cap := e.AttributeCap(c)
	granted := 0
	for i := 0; i < points; i++ {
		placed := false
		for attempt := 0; attempt < e.bal.AttributeRerolls; attempt++ {
			a := Attribute(rng.Intn(int(AttributeCount)))
			if c.Attributes[a] < cap {
				c.Attributes[a]++
				placed = true
				break
			}
		}
		if !placed {
			// Re-rolls exhausted: take the first uncapped attribute.
			for a := Attribute(0); a < AttributeCount; a++ {
				if c.Attributes[a] < cap {
					c.Attributes[a]++
					placed = true
					break
				}
			}
		}
		if placed {
			granted++
		}
	}
	return granted
}

// Prestige performs the voluntary reset: level, experience and attributes
// return to their starting values in exchange for a permanent rank. Zone
// progression resets to the first subzone; equipment, fishing rank and
// account stores are untouched. Returns false below the minimum level.
func (e *Engine) Prestige(c *Character, tracker *AchievementTracker, counter uint64) bool {
	if c.Level < e.bal.PrestigeMinLevel {
		return false
	}
	c.PrestigeRank++
	tracker.Record(MetricPrestiges, 1, counter)
	c.Level = 1
	c.XP = 0
	c.Attributes = AttributeBlock{
		Strength: 5, Vitality: 5, Agility: 5, Intellect: 5, Wisdom: 5, Luck: 5,
	}
	c.Zone = ZoneProgress{}
	c.Combat = nil
	c.KillStreak = 0
	return true
}

// UnlockedZones is the number of zones reachable at the character's prestige
// rank: one at rank 0, plus one per rank, clamped to the content table.
func (e *Engine) UnlockedZones(c *Character) int {
	n := 1 + c.PrestigeRank
	if max := e.zoneCount(); n > max {
		n = max
	}
	return n
}

// OfflineReport summarizes an analytic offline-progression grant.
type OfflineReport struct {
	Elapsed      time.Duration // after capping
	Capped       bool
	Kills        int64
	XPGained     int64
	LevelsGained int
}

// ApplyOffline grants experience for elapsed real time analytically: O(1)
// regardless of duration. Offline time pays a discounted rate and never
// triggers combat events: no drops, no bosses, no discoveries. With no boss
// processing the character never leaves the current subzone, so the model is
// stationary farming of that subzone's regular enemies. Level-up attribute
// distribution still rolls through rng.
func (e *Engine) ApplyOffline(c *Character, base *BaseBuildingStore, elapsed time.Duration, rng entropy.Source) OfflineReport {
	report := OfflineReport{Elapsed: elapsed}

	cap := time.Duration(e.bal.OfflineCapHours) * time.Hour
	if elapsed > cap {
		report.Elapsed = cap
		report.Capped = true
		elapsed = cap
	}
	if elapsed <= 0 {
		return report
	}

	killSecs := e.killPeriodSeconds(c)
	if killSecs <= 0 {
		return report
	}

	kills := int64(elapsed.Seconds() / killSecs)
	ticks := elapsed.Seconds() * float64(e.bal.TicksPerSecond)
	xp := int64(float64(kills)*e.bal.OfflineRate*float64(e.xpPerKill(c, base)) +
		ticks*e.bal.OfflineRate*e.XPPerTickRate(c))

	before := c.Level
	e.GrantXP(c, xp, rng)

	report.Kills = kills
	report.XPGained = xp
	report.LevelsGained = c.Level - before
	return report
}

// killPeriodSeconds is the expected online seconds per kill in the current
// subzone: the mean strike count over the subzone's level span times the
// player's attack cadence.
func (e *Engine) killPeriodSeconds(c *Character) float64 {
	stats := e.Derive(c)
	sz := content.SubzoneAt(c.Zone.Zone, c.Zone.Subzone)

	var ticks float64
	for level := sz.LevelMin; level <= sz.LevelMax; level++ {
		enemy := e.enemyAtLevel("", level, false)
		dmg := stats.Damage - enemy.Defense
		if dmg < 1 {
			dmg = 1
		}
		strikes := (enemy.MaxHP + dmg - 1) / dmg
		ticks += float64(strikes * e.bal.PlayerAttackTicks)
	}
	ticks /= float64(sz.LevelMax - sz.LevelMin + 1)
	return ticks / float64(e.bal.TicksPerSecond)
}
