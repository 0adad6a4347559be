package engine

import (
	"fmt"

	"github.com/stphung/idlequest/internal/content"
	"github.com/stphung/idlequest/internal/entropy"
)

// StartFishing begins a session at an unlocked spot. Combat disengages; the
// two never run in the same tick. Returns false for a bad index or when
// another activity is in progress.
func (e *Engine) StartFishing(c *Character, spotIndex int) bool {
	if c.Busy() || spotIndex < 0 || spotIndex >= len(c.UnlockedSpots) {
		return false
	}
	c.Combat = nil
	c.Fishing = &FishingSession{
		Spot:       c.UnlockedSpots[spotIndex],
		Phase:      PhaseCasting,
		PhaseTicks: e.bal.FishingCastTicks,
		TicksLeft:  e.bal.FishingSessionTicks,
	}
	return true
}

// StopFishing forfeits the session early. The character returns to idle
// combat on the next tick. Returns the catch count, or false when no
// session was running.
func (e *Engine) StopFishing(c *Character) (int, bool) {
	if c.Fishing == nil {
		return 0, false
	}
	catches := c.Fishing.Catches
	c.Fishing = nil
	return catches, true
}

// advanceFishing runs one tick of the cast/wait/bite/reel cycle.
func (e *Engine) advanceFishing(c *Character, base *BaseBuildingStore, tracker *AchievementTracker, counter uint64, rng entropy.Source, res *TickResult) {
	f := c.Fishing

	f.TicksLeft--
	if f.TicksLeft <= 0 {
		res.add(FishingEnded{Spot: f.Spot.Name, Catches: f.Catches})
		c.Fishing = nil
		return
	}

	switch f.Phase {
	case PhaseCasting:
		f.PhaseTicks--
		if f.PhaseTicks <= 0 {
			f.Phase = PhaseWaiting
		}

	case PhaseWaiting:
		if rng.Float64() < e.bal.FishingBiteChance+base.BiteBonus() {
			f.Phase = PhaseBite
		}

	case PhaseBite:
		// The bite is a single-tick window; hooking is automatic.
		f.Phase = PhaseReeling
		f.PhaseTicks = e.bal.FishingReelTicks

	case PhaseReeling:
		f.PhaseTicks--
		if f.PhaseTicks <= 0 {
			e.landCatch(c, f, tracker, counter, rng, res)
			f.Phase = PhaseCasting
			f.PhaseTicks = e.bal.FishingCastTicks
		}

	default:
		panic(fmt.Sprintf("engine: unknown fishing phase %d", f.Phase))
	}
}

// landCatch resolves a reeled-in fish: which species, rank progress, and any
// rank-up.
func (e *Engine) landCatch(c *Character, f *FishingSession, tracker *AchievementTracker, counter uint64, rng entropy.Source, res *TickResult) {
	idx := rng.Intn(len(f.Spot.Fish))
	rankXP := content.FishRankXP(f.Spot, idx)

	f.Catches++
	c.FishingRankXP += rankXP
	res.add(FishCaught{Fish: f.Spot.Fish[idx], Spot: f.Spot.Name, RankXP: rankXP})
	tracker.Record(MetricCatches, 1, counter)

	// Rank-up threshold grows linearly with rank.
	for c.FishingRankXP >= e.bal.FishingRankXP*(c.FishingRank+1) {
		c.FishingRankXP -= e.bal.FishingRankXP * (c.FishingRank + 1)
		c.FishingRank++
		res.add(FishingRankUp{Rank: c.FishingRank})
	}
}
