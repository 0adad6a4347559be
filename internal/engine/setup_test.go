package engine

import (
	"github.com/stphung/idlequest/internal/balance"
	"github.com/stphung/idlequest/internal/entropy"
)

// fixedSource always returns the same roll. A value of 0 makes every
// probability check succeed and every Intn pick index 0.
type fixedSource struct {
	f float64
}

func (s fixedSource) Float64() float64 { return s.f }
func (s fixedSource) Intn(n int) int   { return int(s.f * float64(n)) }

var _ entropy.Source = fixedSource{}

// testWorld is the common fixture: default balance, fresh character and
// empty account stores.
func testWorld() (*Engine, *Character, *BaseBuildingStore, *AchievementTracker) {
	eng := New(balance.Default())
	c := NewCharacter("test-id", "Tester")
	return eng, c, NewBaseBuildingStore(), NewAchievementTracker()
}

// quietBalance strips all randomness-driven side activity so combat math can
// be observed in isolation.
func quietBalance() *balance.Balance {
	bal := balance.Default()
	bal.DropChance = 0
	bal.BaseCritChance = 0
	bal.CritPerLuck = 0
	bal.DungeonChance = 0
	bal.FishingSpotChance = 0
	bal.ChallengeChance = 0
	bal.BaseBuildingChance = 0
	return bal
}

// runTicks advances the world n ticks from the given counter and returns all
// results in order.
func runTicks(eng *Engine, c *Character, base *BaseBuildingStore, tracker *AchievementTracker, rng entropy.Source, start uint64, n int) []*TickResult {
	results := make([]*TickResult, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, eng.Tick(c, start+uint64(i), base, tracker, false, rng))
	}
	return results
}
