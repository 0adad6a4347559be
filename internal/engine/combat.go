package engine

import (
	"github.com/stphung/idlequest/internal/content"
	"github.com/stphung/idlequest/internal/entropy"
)

// combatResult is what one resolver step produced, shared by world combat
// and dungeon rooms.
type combatResult struct {
	events     []Event
	enemyDown  bool
	playerDown bool
}

// resolveCombat advances both turn timers by one tick and applies any strikes
// that come due. The player always strikes first on a shared tick.
func (e *Engine) resolveCombat(c *Character, cs *CombatState, stats DerivedStats, rng entropy.Source) combatResult {
	var res combatResult

	cs.AttackTimer--
	cs.EnemyTimer--

	if cs.AttackTimer <= 0 {
		cs.AttackTimer = e.bal.PlayerAttackTicks

		dmg := stats.Damage - cs.Enemy.Defense
		if dmg < 1 {
			dmg = 1
		}
		crit := rng.Float64() < stats.CritChance
		if crit {
			dmg *= 2
		}
		cs.Enemy.HP -= dmg
		res.events = append(res.events, AttackLanded{
			Attacker: c.Name, Target: cs.Enemy.Name, Damage: dmg, Crit: crit,
		})
		if cs.Enemy.HP <= 0 {
			res.enemyDown = true
			return res
		}
	}

	if cs.EnemyTimer <= 0 {
		cs.EnemyTimer = e.bal.EnemyAttackTicks

		dmg := cs.Enemy.Damage - stats.Defense
		if dmg < 1 {
			dmg = 1
		}
		c.HP -= dmg
		res.events = append(res.events, AttackLanded{
			Attacker: cs.Enemy.Name, Target: c.Name, Damage: dmg, Crit: false,
		})
		if c.HP <= 0 {
			res.playerDown = true
		}
	}

	return res
}

// newCombatState wraps an enemy with fresh turn timers.
func (e *Engine) newCombatState(enemy Enemy) *CombatState {
	return &CombatState{
		Enemy:       enemy,
		AttackTimer: e.bal.PlayerAttackTicks,
		EnemyTimer:  e.bal.EnemyAttackTicks,
	}
}

// rollEnemy builds a regular enemy for the character's current subzone.
func (e *Engine) rollEnemy(c *Character, rng entropy.Source) Enemy {
	sz := content.SubzoneAt(c.Zone.Zone, c.Zone.Subzone)
	span := sz.LevelMax - sz.LevelMin + 1
	level := sz.LevelMin + rng.Intn(span)
	return e.enemyAtLevel(content.EnemyName(rng.Intn(64), rng.Intn(64)), level, false)
}

// bossEnemy builds the subzone's named boss: higher level, thicker HP.
func (e *Engine) bossEnemy(c *Character) Enemy {
	sz := content.SubzoneAt(c.Zone.Zone, c.Zone.Subzone)
	boss := e.enemyAtLevel(sz.Boss, sz.LevelMax+2, true)
	boss.MaxHP = boss.MaxHP * 3
	boss.HP = boss.MaxHP
	boss.XPReward *= 4
	return boss
}

func (e *Engine) enemyAtLevel(name string, level int, boss bool) Enemy {
	hp := 20 + 9*level
	return Enemy{
		Name:     name,
		Level:    level,
		HP:       hp,
		MaxHP:    hp,
		Damage:   2 + 2*level,
		Defense:  level / 2,
		XPReward: int64(20 + 8*level),
		Boss:     boss,
	}
}

// killXP is what a specific kill pays: the enemy's reward scaled by the
// prestige multiplier and the library's passive bonus.
func (e *Engine) killXP(c *Character, enemy Enemy, base *BaseBuildingStore) int64 {
	xp := float64(enemy.XPReward) * e.PrestigeMultiplier(c)
	if base != nil {
		xp *= 1 + base.XPBonus()
	}
	return int64(xp)
}

// xpPerKill is the expected per-kill payout at the current subzone: the mean
// reward over the subzone's level span, scaled the same way killXP scales a
// specific kill.
func (e *Engine) xpPerKill(c *Character, base *BaseBuildingStore) int64 {
	sz := content.SubzoneAt(c.Zone.Zone, c.Zone.Subzone)
	var total float64
	for level := sz.LevelMin; level <= sz.LevelMax; level++ {
		total += float64(e.enemyAtLevel("", level, false).XPReward)
	}
	xp := total / float64(sz.LevelMax-sz.LevelMin+1) * e.PrestigeMultiplier(c)
	if base != nil {
		xp *= 1 + base.XPBonus()
	}
	return int64(xp)
}

func (e *Engine) zoneCount() int { return content.ZoneCount() }

// advanceZone moves progression forward after a boss defeat. Movement stops
// at the last subzone of the last unlocked zone; the boss stays farmable.
// Returns the name of the new subzone, or "" when already at the frontier.
func (e *Engine) advanceZone(c *Character) string {
	z := content.ZoneAt(c.Zone.Zone)
	if c.Zone.Subzone < len(z.Subzones)-1 {
		c.Zone.Subzone++
	} else if c.Zone.Zone < e.UnlockedZones(c)-1 {
		c.Zone.Zone++
		c.Zone.Subzone = 0
	} else {
		return ""
	}
	return content.SubzoneAt(c.Zone.Zone, c.Zone.Subzone).Name
}
