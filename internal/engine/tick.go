package engine

import (
	"log/slog"

	"github.com/stphung/idlequest/internal/balance"
	"github.com/stphung/idlequest/internal/content"
	"github.com/stphung/idlequest/internal/entropy"
)

// Engine holds the immutable tuning the orchestrator runs against. All
// mutable state is passed into Tick explicitly; the engine itself never
// changes after construction.
type Engine struct {
	bal *balance.Balance
}

// New creates an engine over the given balance.
func New(bal *balance.Balance) *Engine {
	return &Engine{bal: bal}
}

// Balance exposes the tuning in effect.
func (e *Engine) Balance() *balance.Balance { return e.bal }

// Tick executes exactly one logical time-step and returns everything that
// happened. The stage order is fixed:
//
//  1. step minigame AI thinking, if a game is active
//  2. roll minigame-challenge discovery when fully idle
//  3. recompute derived combat stats
//  4. advance the dungeon room machine, if a run is active
//  5. advance fishing, if a session is active; combat is skipped entirely
//  6. resolve one combat exchange (kills, drops, post-kill discoveries)
//  7. spawn a replacement enemy if none exists and not regenerating
//  8. advance play-time (one second every TicksPerSecond ticks)
//  9. drain achievement unlocks into the event list
//  10. roll base-building discovery when eligible
//  11. flush the achievement accumulation window
//
// The function is infallible: inputs are validated at the load boundary and
// every "failure" is a domain outcome carried as an ordinary event.
func (e *Engine) Tick(c *Character, counter uint64, base *BaseBuildingStore, tracker *AchievementTracker, debug bool, rng entropy.Source) *TickResult {
	res := &TickResult{}

	// Stage 1: minigame AI.
	if c.Minigame != nil {
		e.stepMinigame(c, tracker, counter, rng, res)
	}

	// Stage 2: challenge discovery, only when nothing else is running.
	if !c.Busy() {
		e.rollChallengeDiscovery(c, base, rng, res)
	}

	// Stage 3: derived stats, prestige HP bonus folded into the ceiling.
	stats := e.Derive(c)
	c.MaxHP = stats.MaxHP
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	if c.HP <= 0 && !c.Regenerating {
		// Session start: live HP fills to the ceiling.
		c.HP = c.MaxHP
	}

	// Stage 4: dungeon room machine. The run contains its own combat, so
	// the world-combat stages are skipped while it lives.
	if c.Dungeon != nil {
		e.advanceDungeon(c, base, tracker, stats, counter, rng, res)
		e.finishTick(c, counter, base, tracker, rng, res)
		e.debugLog(debug, c, counter, res)
		return res
	}

	// Stage 5: fishing. Fully exclusive with combat: advance the session,
	// close out the tick, and stop.
	if c.Fishing != nil {
		e.advanceFishing(c, base, tracker, counter, rng, res)
		e.finishTick(c, counter, base, tracker, rng, res)
		e.debugLog(debug, c, counter, res)
		return res
	}

	// Stage 6: one combat exchange, unless regenerating or in a minigame.
	if c.Regenerating {
		c.HP += e.bal.RegenPerTick
		if c.HP >= c.MaxHP {
			c.HP = c.MaxHP
			c.Regenerating = false
		}
	} else if c.Minigame == nil && c.Combat != nil {
		e.resolveWorldCombat(c, base, tracker, stats, counter, rng, res)
	}

	// Stage 7: replacement spawn.
	if c.Minigame == nil && c.Combat == nil && !c.Regenerating {
		e.spawnEnemy(c, base, rng, res)
	}

	e.finishTick(c, counter, base, tracker, rng, res)
	e.debugLog(debug, c, counter, res)
	return res
}

// resolveWorldCombat runs one exchange of ordinary zone combat and reacts to
// whichever side fell.
func (e *Engine) resolveWorldCombat(c *Character, base *BaseBuildingStore, tracker *AchievementTracker, stats DerivedStats, counter uint64, rng entropy.Source, res *TickResult) {
	out := e.resolveCombat(c, c.Combat, stats, rng)
	for _, ev := range out.events {
		res.add(ev)
	}

	switch {
	case out.playerDown:
		enemy := c.Combat.Enemy
		res.add(PlayerDied{EnemyName: enemy.Name})
		// World death resets the local streak but preserves currency.
		c.KillStreak = 0
		if enemy.Boss {
			c.Zone.BossActive = false
			c.Zone.KillsInSubzone = 0
		}
		c.Combat = nil
		c.HP = 0
		c.Regenerating = true

	case out.enemyDown:
		enemy := c.Combat.Enemy
		c.Combat = nil
		c.KillStreak++

		xp := e.killXP(c, enemy, base)
		res.add(EnemyDefeated{Name: enemy.Name, Level: enemy.Level, XP: xp, Streak: c.KillStreak})
		tracker.Record(MetricKills, 1, counter)
		for _, ev := range e.GrantXP(c, xp, rng) {
			res.add(ev)
			tracker.Record(MetricLevels, 1, counter)
		}

		if enemy.Boss {
			sz := content.SubzoneAt(c.Zone.Zone, c.Zone.Subzone)
			c.Zone.BossActive = false
			c.Zone.KillsInSubzone = 0
			advanced := e.advanceZone(c)
			res.add(BossDefeated{Name: enemy.Name, Subzone: sz.Name, AdvancedTo: advanced})
			tracker.Record(MetricBossKills, 1, counter)
		} else {
			c.Zone.KillsInSubzone++
		}

		if rng.Float64() < e.bal.DropChance {
			item := content.RollItem(enemy.Level, rng.Intn(64), rng.Intn(64), rng.Float64())
			equipped := c.equipIfBetter(item)
			c.pushDrop(item)
			res.add(ItemDropped{Item: item, Equipped: equipped})
		}

		e.rollPostKillDiscoveries(c, base, rng, res)
	}
}

// spawnEnemy fills the empty combat slot. At the kill threshold the subzone
// boss spawns, unless its door is gated and no weapon has been forged, in
// which case the attempt is blocked and an ordinary enemy steps in; zone
// progression is untouched.
func (e *Engine) spawnEnemy(c *Character, base *BaseBuildingStore, rng entropy.Source, res *TickResult) {
	var enemy Enemy
	if c.Zone.KillsInSubzone >= e.bal.KillsPerBoss {
		sz := content.SubzoneAt(c.Zone.Zone, c.Zone.Subzone)
		if sz.GatedBoss && !base.HasForgedWeapon() {
			res.add(WeaponRequired{Name: sz.Boss})
			enemy = e.rollEnemy(c, rng)
		} else {
			enemy = e.bossEnemy(c)
			c.Zone.BossActive = true
		}
	} else {
		enemy = e.rollEnemy(c, rng)
	}
	c.Combat = e.newCombatState(enemy)
	res.add(EnemySpawned{Name: enemy.Name, Level: enemy.Level, Boss: enemy.Boss})
}

// finishTick runs the cross-cutting tail stages (8–11): play-time,
// achievement toasts, base-building discovery, and the accumulation window.
func (e *Engine) finishTick(c *Character, counter uint64, base *BaseBuildingStore, tracker *AchievementTracker, rng entropy.Source, res *TickResult) {
	// Stage 8: play-time and the passive experience trickle.
	if counter%uint64(e.bal.TicksPerSecond) == 0 {
		c.PlayTimeSeconds++
		tracker.Record(MetricPlaySeconds, 1, counter)
	}
	c.xpCarry += e.XPPerTickRate(c)
	if whole := int64(c.xpCarry); whole > 0 {
		c.xpCarry -= float64(whole)
		for _, ev := range e.GrantXP(c, whole, rng) {
			res.add(ev)
			tracker.Record(MetricLevels, 1, counter)
		}
	}

	// Stage 9: achievement toasts unlocked this tick.
	for _, a := range tracker.drainToast() {
		res.add(AchievementUnlocked{ID: a.ID, Name: a.Name})
	}

	// Stage 10: base-building discovery (self-gating on eligibility).
	e.rollBaseDiscovery(c, base, rng, res)

	// Stage 11: accumulation window.
	res.ReadyAchievements = tracker.drainReady(counter, e.bal.AchievementWindowTicks)
	res.SaveAchievements = tracker.consumeDirty()
	res.SaveBaseBuilding = base.consumeDirty()
}

func (e *Engine) debugLog(debug bool, c *Character, counter uint64, res *TickResult) {
	if !debug || len(res.Events) == 0 {
		return
	}
	slog.Debug("tick",
		"counter", counter,
		"level", c.Level,
		"hp", c.HP,
		"events", len(res.Events),
	)
}
