package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stphung/idlequest/internal/content"
	"github.com/stphung/idlequest/internal/entropy"
)

func TestFishingExcludesCombat(t *testing.T) {
	eng, c, base, tracker := testWorld()
	rng := entropy.NewSeeded(7)

	c.Fishing = &FishingSession{
		Spot:      content.SpotFor(0, 0),
		Phase:     PhaseWaiting,
		TicksLeft: 200,
	}

	for i := 0; i < 150 && c.Fishing != nil; i++ {
		res := eng.Tick(c, uint64(i+1), base, tracker, false, rng)
		for _, ev := range res.Events {
			assert.False(t, IsCombatEvent(ev), "combat event %T emitted during fishing", ev)
		}
	}
}

func TestMinigameExcludesCombat(t *testing.T) {
	eng, c, base, tracker := testWorld()
	rng := entropy.NewSeeded(3)

	c.Minigame = &MinigameSession{
		Kind:       content.MinigameGo,
		Difficulty: 1,
		Engine:     NewAIEngine(content.MinigameGo, 1),
	}

	for i := 0; i < 50; i++ {
		res := eng.Tick(c, uint64(i+1), base, tracker, false, rng)
		require.NotNil(t, c.Minigame, "go at difficulty 1 lasts well past 50 ticks")
		for _, ev := range res.Events {
			assert.False(t, IsCombatEvent(ev), "combat event %T emitted during minigame", ev)
		}
		assert.Nil(t, c.Combat, "no enemy may spawn mid-minigame")
	}
}

func TestKillCounterSpawnsBoss(t *testing.T) {
	eng, c, base, tracker := testWorld()
	rng := entropy.NewSeeded(11)

	c.Zone.KillsInSubzone = eng.Balance().KillsPerBoss
	res := eng.Tick(c, 1, base, tracker, false, rng)

	var spawned *EnemySpawned
	for _, ev := range res.Events {
		if s, ok := ev.(EnemySpawned); ok {
			spawned = &s
		}
	}
	require.NotNil(t, spawned)
	assert.True(t, spawned.Boss)
	assert.Equal(t, content.SubzoneAt(0, 0).Boss, spawned.Name)
	assert.True(t, c.Zone.BossActive)
}

func TestBossDefeatAdvancesAndResetsCounter(t *testing.T) {
	eng, c, base, tracker := testWorld()
	rng := entropy.NewSeeded(11)

	c.Zone.KillsInSubzone = eng.Balance().KillsPerBoss
	eng.Tick(c, 1, base, tracker, false, rng)
	require.NotNil(t, c.Combat)
	require.True(t, c.Combat.Enemy.Boss)

	// Let the next player strike finish it.
	c.Combat.Enemy.HP = 1
	c.Combat.Enemy.Damage = 0

	var defeated *BossDefeated
	for i := 0; i < 20 && defeated == nil; i++ {
		res := eng.Tick(c, uint64(i+2), base, tracker, false, rng)
		for _, ev := range res.Events {
			if d, ok := ev.(BossDefeated); ok {
				defeated = &d
			}
		}
	}
	require.NotNil(t, defeated)
	assert.Equal(t, "Meadow Path", defeated.Subzone)
	assert.Equal(t, "Old Orchard", defeated.AdvancedTo)
	assert.Equal(t, 1, c.Zone.Subzone)
	assert.Equal(t, 0, c.Zone.KillsInSubzone)
	assert.False(t, c.Zone.BossActive)
	assert.EqualValues(t, 1, tracker.Counters[MetricBossKills])
}

func TestDeathToBossResetsCounter(t *testing.T) {
	eng, c, base, tracker := testWorld()
	rng := entropy.NewSeeded(5)

	c.Zone.KillsInSubzone = eng.Balance().KillsPerBoss
	eng.Tick(c, 1, base, tracker, false, rng)
	require.NotNil(t, c.Combat)
	require.True(t, c.Combat.Enemy.Boss)

	// Make the boss unkillable and lethal.
	c.Combat.Enemy.HP = 1 << 20
	c.Combat.Enemy.Defense = 1 << 20
	c.Combat.Enemy.Damage = 1 << 20

	var died bool
	for i := 0; i < 30 && !died; i++ {
		res := eng.Tick(c, uint64(i+2), base, tracker, false, rng)
		for _, ev := range res.Events {
			if _, ok := ev.(PlayerDied); ok {
				died = true
			}
		}
	}
	require.True(t, died)
	assert.Equal(t, 0, c.Zone.KillsInSubzone)
	assert.False(t, c.Zone.BossActive)
	assert.True(t, c.Regenerating)
	assert.Nil(t, c.Combat)
	assert.Equal(t, 0, c.KillStreak)
}

func TestBossGateWeaponRequired(t *testing.T) {
	eng, c, base, tracker := testWorld()
	rng := entropy.NewSeeded(9)

	// Briar Hollow's boss demands a forged weapon.
	c.Zone.Subzone = 2
	c.Zone.KillsInSubzone = eng.Balance().KillsPerBoss

	res := eng.Tick(c, 1, base, tracker, false, rng)

	var blocked bool
	for _, ev := range res.Events {
		switch e := ev.(type) {
		case WeaponRequired:
			blocked = true
			assert.Equal(t, "The Bramble King", e.Name)
		case EnemySpawned:
			assert.False(t, e.Boss, "a regular enemy stands in for the blocked boss")
		}
	}
	assert.True(t, blocked)
	assert.Equal(t, 2, c.Zone.Subzone, "zone progression unchanged")
	assert.Equal(t, eng.Balance().KillsPerBoss, c.Zone.KillsInSubzone)
	assert.False(t, c.Zone.BossActive)

	// With the forge built, the same spawn produces the boss.
	base.Levels[StructureForge] = 1
	c.Combat = nil
	res = eng.Tick(c, 2, base, tracker, false, rng)

	var boss bool
	for _, ev := range res.Events {
		if s, ok := ev.(EnemySpawned); ok && s.Boss {
			boss = true
		}
	}
	assert.True(t, boss)
	assert.True(t, c.Zone.BossActive)
}

func TestDungeonDeathIsSafe(t *testing.T) {
	eng, c, base, tracker := testWorld()
	rng := entropy.NewSeeded(2)
	c.PrestigeRank = 4

	c.Dungeon = &DungeonState{
		Name:      "Barrowdeep",
		Rooms:     content.GenerateFloor(1, 8),
		RoomIndex: 1,
		Combat: &CombatState{
			Enemy:       Enemy{Name: "Grave Brute", HP: 1 << 20, MaxHP: 1 << 20, Damage: 1 << 20, Defense: 1 << 20},
			AttackTimer: 8,
			EnemyTimer:  1,
		},
	}

	res := eng.Tick(c, 1, base, tracker, false, rng)

	var died *PlayerDiedInDungeon
	for _, ev := range res.Events {
		if d, ok := ev.(PlayerDiedInDungeon); ok {
			died = &d
		}
	}
	require.NotNil(t, died)
	assert.Equal(t, "Barrowdeep", died.Dungeon)
	assert.Nil(t, c.Dungeon, "the run ends on death")
	assert.Equal(t, 4, c.PrestigeRank, "safe death: prestige untouched")
	assert.True(t, c.Regenerating)
}

func TestDungeonRunClears(t *testing.T) {
	eng, c, base, tracker := testWorld()
	eng = New(quietBalance())
	rng := entropy.NewSeeded(21)

	// A strong character walks the whole floor.
	c.Attributes[Strength] = 90
	c.Attributes[Vitality] = 90
	c.PendingDungeon = &DungeonOffer{Name: "Saltgrave", Seed: 4, Rooms: 8}
	require.True(t, eng.EnterDungeon(c))

	var completed *DungeonCompleted
	var keyFound bool
	for i := 0; i < 5000 && c.Dungeon != nil; i++ {
		res := eng.Tick(c, uint64(i+1), base, tracker, false, rng)
		for _, ev := range res.Events {
			switch e := ev.(type) {
			case DungeonCompleted:
				completed = &e
			case DungeonKeyFound:
				keyFound = true
			}
		}
	}
	require.NotNil(t, completed, "the run must finish")
	assert.True(t, keyFound, "the key room precedes the boss")
	assert.Greater(t, completed.BonusXP, int64(0))
	assert.EqualValues(t, 1, tracker.Counters[MetricDungeons])
}

func TestPlayTimeAdvances(t *testing.T) {
	eng, c, base, tracker := testWorld()
	rng := entropy.NewSeeded(1)

	runTicks(eng, c, base, tracker, rng, 1, 30)
	assert.EqualValues(t, 3, c.PlayTimeSeconds)
	assert.EqualValues(t, 3, tracker.Counters[MetricPlaySeconds])
}

func TestRegenerationPausesSpawning(t *testing.T) {
	eng, c, base, tracker := testWorld()
	rng := entropy.NewSeeded(1)

	c.HP = 1
	c.Regenerating = true
	res := eng.Tick(c, 1, base, tracker, false, rng)

	for _, ev := range res.Events {
		_, spawned := ev.(EnemySpawned)
		assert.False(t, spawned, "no spawn while regenerating")
	}
	assert.Greater(t, c.HP, 1)
}
