package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stphung/idlequest/internal/content"
	"github.com/stphung/idlequest/internal/entropy"
)

func TestStartFishingValidation(t *testing.T) {
	eng, c, _, _ := testWorld()

	assert.False(t, eng.StartFishing(c, 0), "no unlocked spots")

	c.UnlockedSpots = append(c.UnlockedSpots, content.SpotFor(0, 0))
	assert.False(t, eng.StartFishing(c, -1))
	assert.False(t, eng.StartFishing(c, 1))

	c.Minigame = &MinigameSession{Kind: content.MinigameChess}
	assert.False(t, eng.StartFishing(c, 0), "busy elsewhere")
	c.Minigame = nil

	c.Combat = &CombatState{Enemy: Enemy{Name: "Feral Boar"}}
	require.True(t, eng.StartFishing(c, 0))
	assert.Nil(t, c.Combat, "combat disengages on cast")
	require.NotNil(t, c.Fishing)
	assert.Equal(t, PhaseCasting, c.Fishing.Phase)
	assert.Equal(t, eng.Balance().FishingSessionTicks, c.Fishing.TicksLeft)
}

func TestFishingCycleLandsCatches(t *testing.T) {
	eng, c, base, tracker := testWorld()
	c.UnlockedSpots = append(c.UnlockedSpots, content.SpotFor(0, 0))
	require.True(t, eng.StartFishing(c, 0))

	// A roll of zero bites on the first waiting tick, so one full cycle is
	// cast + bite + hook + reel.
	cycle := eng.Balance().FishingCastTicks + 2 + eng.Balance().FishingReelTicks

	var caught []FishCaught
	for i := 0; i < 2*cycle+10; i++ {
		res := eng.Tick(c, uint64(i+1), base, tracker, false, fixedSource{0})
		for _, ev := range res.Events {
			if fc, ok := ev.(FishCaught); ok {
				caught = append(caught, fc)
			}
		}
	}

	require.Len(t, caught, 2)
	assert.Equal(t, "Brook Trout", caught[0].Fish)
	assert.Equal(t, content.FishRankXP(c.Fishing.Spot, 0), caught[0].RankXP)
	assert.Equal(t, 2, c.Fishing.Catches)
	assert.Equal(t, 2*caught[0].RankXP, c.FishingRankXP)
	assert.EqualValues(t, 2, tracker.Counters[MetricCatches])
}

func TestFishingRankUp(t *testing.T) {
	eng, c, base, tracker := testWorld()
	c.UnlockedSpots = append(c.UnlockedSpots, content.SpotFor(0, 0))
	c.FishingRankXP = eng.Balance().FishingRankXP - 4
	require.True(t, eng.StartFishing(c, 0))

	var rankUp *FishingRankUp
	for i := 0; i < 100 && rankUp == nil; i++ {
		res := eng.Tick(c, uint64(i+1), base, tracker, false, fixedSource{0})
		for _, ev := range res.Events {
			if r, ok := ev.(FishingRankUp); ok {
				rankUp = &r
			}
		}
	}

	require.NotNil(t, rankUp)
	assert.Equal(t, 1, rankUp.Rank)
	assert.Equal(t, 1, c.FishingRank)
	assert.Equal(t, 1, c.FishingRankXP, "leftover progress carries toward the next rank")
}

func TestFishingSessionExpires(t *testing.T) {
	eng, c, base, tracker := testWorld()
	rng := entropy.NewSeeded(31)
	c.UnlockedSpots = append(c.UnlockedSpots, content.SpotFor(0, 0))
	require.True(t, eng.StartFishing(c, 0))
	c.Fishing.TicksLeft = 1

	res := eng.Tick(c, 1, base, tracker, false, rng)
	var ended *FishingEnded
	for _, ev := range res.Events {
		if e, ok := ev.(FishingEnded); ok {
			ended = &e
		}
	}
	require.NotNil(t, ended)
	assert.Equal(t, 0, ended.Catches)
	assert.Nil(t, c.Fishing)

	// Idle combat resumes on the next tick.
	res = eng.Tick(c, 2, base, tracker, false, rng)
	var spawned bool
	for _, ev := range res.Events {
		if _, ok := ev.(EnemySpawned); ok {
			spawned = true
		}
	}
	assert.True(t, spawned)
}

func TestStopFishingReturnsCatchCount(t *testing.T) {
	eng, c, _, _ := testWorld()

	_, ok := eng.StopFishing(c)
	assert.False(t, ok, "nothing to stop")

	c.UnlockedSpots = append(c.UnlockedSpots, content.SpotFor(0, 0))
	require.True(t, eng.StartFishing(c, 0))
	c.Fishing.Catches = 3

	catches, ok := eng.StopFishing(c)
	assert.True(t, ok)
	assert.Equal(t, 3, catches)
	assert.Nil(t, c.Fishing)
}
