package content

// FishingSpot is a discovered place to fish. Fish lists come from the zone
// the spot was found in.
type FishingSpot struct {
	Name string   `json:"name"`
	Zone int      `json:"zone"`
	Fish []string `json:"fish"`
}

var spotNames = []string{
	"Stillwater Bend", "The Drowned Jetty", "Heron's Shallows",
	"Blackreed Pool", "The Old Weir", "Glimmer Cove",
}

// SpotFor builds a fishing spot in the given zone from a uniform name roll.
func SpotFor(zone, nameRoll int) FishingSpot {
	z := ZoneAt(zone)
	return FishingSpot{
		Name: spotNames[nameRoll%len(spotNames)],
		Zone: zone,
		Fish: z.Fish,
	}
}

// FishRankXP returns the rank progress a catch of the given fish is worth.
// Rarer fish sit later in each zone's list.
func FishRankXP(spot FishingSpot, fishIndex int) int {
	return 5 + 5*fishIndex + 3*spot.Zone
}
