package engine

import (
	"github.com/stphung/idlequest/internal/content"
	"github.com/stphung/idlequest/internal/entropy"
)

// EnterDungeon consumes the pending dungeon offer and begins the run.
// Ordinary world combat disengages; the enemy simply despawns. Returns false
// when there is no offer or another activity is in progress.
func (e *Engine) EnterDungeon(c *Character) bool {
	if c.PendingDungeon == nil || c.Busy() {
		return false
	}
	offer := c.PendingDungeon
	c.PendingDungeon = nil
	c.Combat = nil
	c.Dungeon = &DungeonState{
		Name:  offer.Name,
		Seed:  offer.Seed,
		Rooms: content.GenerateFloor(offer.Seed, offer.Rooms),
	}
	return true
}

// advanceDungeon runs one tick of the room state machine. Rooms that fight
// use the shared combat resolver; death here is "safe": the run ends and
// nothing else is lost.
func (e *Engine) advanceDungeon(c *Character, base *BaseBuildingStore, tracker *AchievementTracker, stats DerivedStats, counter uint64, rng entropy.Source, res *TickResult) {
	d := c.Dungeon
	room := d.CurrentRoom()

	// A live room enemy takes priority over room effects.
	if d.Combat != nil {
		out := e.resolveCombat(c, d.Combat, stats, rng)
		for _, ev := range out.events {
			res.add(ev)
		}
		switch {
		case out.playerDown:
			res.add(PlayerDiedInDungeon{Dungeon: d.Name, Depth: room.Depth})
			c.Dungeon = nil
			c.HP = 0
			c.Regenerating = true
		case out.enemyDown:
			enemy := d.Combat.Enemy
			d.Combat = nil
			xp := e.killXP(c, enemy, base)
			res.add(EnemyDefeated{Name: enemy.Name, Level: enemy.Level, XP: xp, Streak: c.KillStreak})
			for _, ev := range e.GrantXP(c, xp, rng) {
				res.add(ev)
				tracker.Record(MetricLevels, 1, counter)
			}
			if room.Kind == content.RoomBoss {
				bonus := int64(e.bal.DungeonBonusXP * float64(e.xpPerKill(c, base)))
				res.add(DungeonCompleted{Dungeon: d.Name, BonusXP: bonus})
				for _, ev := range e.GrantXP(c, bonus, rng) {
					res.add(ev)
					tracker.Record(MetricLevels, 1, counter)
				}
				tracker.Record(MetricDungeons, 1, counter)
				c.Dungeon = nil
			} else {
				e.stepRoom(c, res)
			}
		}
		return
	}

	switch room.Kind {
	case content.RoomEntrance:
		e.stepRoom(c, res)

	case content.RoomTreasure:
		item := content.RollItem(c.Level+2, rng.Intn(64), rng.Intn(64), rng.Float64()*0.5)
		equipped := c.equipIfBetter(item)
		c.pushDrop(item)
		res.add(DungeonTreasureFound{Dungeon: d.Name, Item: item, Equipped: equipped})
		e.stepRoom(c, res)

	case content.RoomKey:
		d.HasKey = true
		res.add(DungeonKeyFound{Dungeon: d.Name})
		e.stepRoom(c, res)

	case content.RoomCombat, content.RoomElite:
		enemy := e.rollEnemy(c, rng)
		if room.Kind == content.RoomElite {
			enemy.Name = "Elite " + enemy.Name
			enemy.MaxHP = int(float64(enemy.MaxHP) * e.bal.EliteHPScale)
			enemy.HP = enemy.MaxHP
			enemy.XPReward *= 2
		}
		d.Combat = e.newCombatState(enemy)

	case content.RoomBoss:
		if !d.HasKey {
			// Floor generation always places the key first; reaching here
			// without it means the run is unwinnable. End it cleanly.
			res.add(DungeonFailed{Dungeon: d.Name})
			c.Dungeon = nil
			return
		}
		boss := e.rollEnemy(c, rng)
		boss.Name = "Warden of " + d.Name
		boss.Boss = true
		boss.MaxHP *= 2
		boss.HP = boss.MaxHP
		boss.XPReward *= 3
		d.Combat = e.newCombatState(boss)
	}
}

// stepRoom advances to the next room and announces it.
func (e *Engine) stepRoom(c *Character, res *TickResult) {
	d := c.Dungeon
	d.RoomIndex++
	room := d.CurrentRoom()
	res.add(DungeonRoomEntered{Dungeon: d.Name, Kind: room.Kind, Depth: room.Depth})
}
