// Package content holds the static game data: zones, enemies, items, fishing
// spots, dungeon floor generation and minigame reward rows. The simulation
// treats everything here as opaque lookups.
package content

import "fmt"

// Subzone is one stretch of a zone, gated by a named boss.
type Subzone struct {
	Name       string
	Boss       string
	LevelMin   int  // enemy level floor
	LevelMax   int  // enemy level ceiling
	GatedBoss  bool // boss door needs a forged weapon
	FishNearby bool // fishing spots discovered here draw from the zone's fish
}

// Zone is a region of the overworld. Zones unlock with prestige rank.
type Zone struct {
	Name     string
	Subzones []Subzone
	Fish     []string
}

var zones = []Zone{
	{
		Name: "Verdant Reach",
		Fish: []string{"Brook Trout", "Silver Dace", "Mudwhisker"},
		Subzones: []Subzone{
			{Name: "Meadow Path", Boss: "Hogweed the Rooted", LevelMin: 1, LevelMax: 5},
			{Name: "Old Orchard", Boss: "Wormfather", LevelMin: 4, LevelMax: 9, FishNearby: true},
			{Name: "Briar Hollow", Boss: "The Bramble King", LevelMin: 8, LevelMax: 14, GatedBoss: true},
		},
	},
	{
		Name: "Ashen Steppe",
		Fish: []string{"Cinder Carp", "Glass Eel", "Emberfin"},
		Subzones: []Subzone{
			{Name: "Scorched Flats", Boss: "Kraal of the Ash", LevelMin: 12, LevelMax: 20, FishNearby: true},
			{Name: "Basalt Fields", Boss: "Stonemaw", LevelMin: 18, LevelMax: 28},
			{Name: "The Cinder Court", Boss: "Queen Vess", LevelMin: 26, LevelMax: 38, GatedBoss: true},
		},
	},
	{
		Name: "Drowned Marches",
		Fish: []string{"Pale Lamprey", "Hollow Pike", "King Sturgeon"},
		Subzones: []Subzone{
			{Name: "Sunken Causeway", Boss: "The Ferryman", LevelMin: 34, LevelMax: 48, FishNearby: true},
			{Name: "Weeping Fen", Boss: "Mother Mire", LevelMin: 44, LevelMax: 60},
			{Name: "Leviathan's Rest", Boss: "Ulgoth the Below", LevelMin: 56, LevelMax: 78, GatedBoss: true},
		},
	},
	{
		Name: "Starfall Wastes",
		Fish: []string{"Void Minnow", "Cometfin", "Astral Ray"},
		Subzones: []Subzone{
			{Name: "Meteor Scar", Boss: "The Fallen Herald", LevelMin: 70, LevelMax: 95, FishNearby: true},
			{Name: "Glass Desert", Boss: "Shardwalker", LevelMin: 88, LevelMax: 120},
			{Name: "The Silent Crater", Boss: "Axiom, Last Light", LevelMin: 110, LevelMax: 160, GatedBoss: true},
		},
	},
}

// Zones returns the full zone table.
func Zones() []Zone { return zones }

// ZoneCount reports how many zones exist.
func ZoneCount() int { return len(zones) }

// ZoneAt returns the zone at index i. Panics on an out-of-range index; zone
// position is validated at the load boundary.
func ZoneAt(i int) Zone {
	if i < 0 || i >= len(zones) {
		panic(fmt.Sprintf("content: zone index %d out of range", i))
	}
	return zones[i]
}

// SubzoneAt returns the subzone at (zone, sub). Panics on an out-of-range
// index.
func SubzoneAt(zone, sub int) Subzone {
	z := ZoneAt(zone)
	if sub < 0 || sub >= len(z.Subzones) {
		panic(fmt.Sprintf("content: subzone index %d out of range in %s", sub, z.Name))
	}
	return z.Subzones[sub]
}

var enemyPrefixes = []string{"Feral", "Withered", "Hulking", "Cursed", "Rabid", "Gloom", "Dread"}
var enemyBases = []string{"Boar", "Wolf", "Bandit", "Revenant", "Harpy", "Golem", "Stalker", "Wisp"}

// EnemyName composes a flavor name for a regular spawn.
func EnemyName(prefixRoll, baseRoll int) string {
	return enemyPrefixes[prefixRoll%len(enemyPrefixes)] + " " + enemyBases[baseRoll%len(enemyBases)]
}
