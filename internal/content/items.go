package content

// Slot is an equipment slot.
type Slot uint8

const (
	SlotWeapon Slot = iota
	SlotArmor
	SlotTrinket
	SlotCount
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotWeapon:
		return "weapon"
	case SlotArmor:
		return "armor"
	case SlotTrinket:
		return "trinket"
	default:
		return "unknown"
	}
}

// Rarity orders item quality tiers.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityFine
	RarityRare
	RarityEpic
)

// String returns the rarity name.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityFine:
		return "fine"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	default:
		return "unknown"
	}
}

// Item is a piece of equipment. Power is the single comparable stat: damage
// for weapons, defense for armor, max-HP for trinkets.
type Item struct {
	Name   string `json:"name"`
	Slot   Slot   `json:"slot"`
	Rarity Rarity `json:"rarity"`
	Power  int    `json:"power"`
}

var weaponNames = []string{"Shortsword", "Warhammer", "Hunting Bow", "Cleaver", "Spellblade"}
var armorNames = []string{"Leather Jerkin", "Chain Hauberk", "Scale Cuirass", "Wardplate"}
var trinketNames = []string{"Bone Charm", "River Pearl", "Sun Medallion", "Hollow Idol"}
var rarityAdjectives = map[Rarity]string{
	RarityCommon: "",
	RarityFine:   "Fine ",
	RarityRare:   "Runed ",
	RarityEpic:   "Mythic ",
}

// RollItem produces an item appropriate for the given enemy level.
// rollSlot/rollName/rollRarity are uniform rolls supplied by the caller so
// drops stay deterministic under a seeded source.
func RollItem(level, rollSlot, rollName int, rollRarity float64) Item {
	slot := Slot(rollSlot % int(SlotCount))

	var rarity Rarity
	switch {
	case rollRarity < 0.02:
		rarity = RarityEpic
	case rollRarity < 0.10:
		rarity = RarityRare
	case rollRarity < 0.35:
		rarity = RarityFine
	default:
		rarity = RarityCommon
	}

	var base string
	switch slot {
	case SlotWeapon:
		base = weaponNames[rollName%len(weaponNames)]
	case SlotArmor:
		base = armorNames[rollName%len(armorNames)]
	default:
		base = trinketNames[rollName%len(trinketNames)]
	}

	// Power scales with enemy level and jumps per rarity tier.
	power := 2 + level + level*int(rarity)/2

	return Item{
		Name:   rarityAdjectives[rarity] + base,
		Slot:   slot,
		Rarity: rarity,
		Power:  power,
	}
}
