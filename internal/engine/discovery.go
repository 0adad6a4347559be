package engine

import (
	"github.com/stphung/idlequest/internal/content"
	"github.com/stphung/idlequest/internal/entropy"
)

// Discovery rolls are independent Bernoulli trials: a failed roll this tick
// is simply re-attempted next tick under the same odds. Preconditions gate
// eligibility; the shrine adds a flat bonus to every probability.

// rollPostKillDiscoveries runs the two per-kill rolls in their fixed
// precedence order: dungeon first, then fishing spot. The first winner
// short-circuits, so a single kill never yields both.
func (e *Engine) rollPostKillDiscoveries(c *Character, base *BaseBuildingStore, rng entropy.Source, res *TickResult) {
	bonus := base.DiscoveryBonus()

	if c.PendingDungeon == nil && rng.Float64() < e.bal.DungeonChance+bonus {
		offer := &DungeonOffer{
			Name:  content.DungeonName(rng.Intn(1 << 16)),
			Seed:  int64(rng.Intn(1 << 30)),
			Rooms: e.bal.DungeonRooms,
		}
		c.PendingDungeon = offer
		res.add(DungeonDiscovered{Name: offer.Name, Rooms: offer.Rooms})
		return
	}

	sz := content.SubzoneAt(c.Zone.Zone, c.Zone.Subzone)
	if sz.FishNearby && rng.Float64() < e.bal.FishingSpotChance+bonus {
		spot := content.SpotFor(c.Zone.Zone, rng.Intn(1<<16))
		if !c.hasSpot(spot) {
			c.UnlockedSpots = append(c.UnlockedSpots, spot)
			res.add(FishingSpotDiscovered{Spot: spot})
		}
	}
}

// rollChallengeDiscovery offers a minigame challenge on an idle tick.
// Requires the minimum prestige rank and an empty challenge menu.
func (e *Engine) rollChallengeDiscovery(c *Character, base *BaseBuildingStore, rng entropy.Source, res *TickResult) {
	if c.PrestigeRank < e.bal.ChallengeMinPrestige || c.PendingChallenge != nil {
		return
	}
	if rng.Float64() >= e.bal.ChallengeChance+base.DiscoveryBonus() {
		return
	}
	ch := &Challenge{
		Kind:       content.MinigameKind(rng.Intn(int(content.MinigameKindCount))),
		Difficulty: rng.Intn(content.MaxDifficulty + 1),
	}
	c.PendingChallenge = ch
	res.add(ChallengeDiscovered{Kind: ch.Kind, Difficulty: ch.Difficulty})
}

// rollBaseDiscovery runs the base-building discovery roll. Eligible only at
// the prestige threshold, before the base exists, with no competing activity.
func (e *Engine) rollBaseDiscovery(c *Character, base *BaseBuildingStore, rng entropy.Source, res *TickResult) {
	if base.Discovered || c.PrestigeRank < e.bal.BaseBuildMinPrestige || c.Busy() {
		return
	}
	if rng.Float64() < e.bal.BaseBuildingChance {
		base.Discover()
		res.add(BaseBuildingDiscovered{})
	}
}

func (c *Character) hasSpot(spot content.FishingSpot) bool {
	for _, s := range c.UnlockedSpots {
		if s.Name == spot.Name && s.Zone == spot.Zone {
			return true
		}
	}
	return false
}
