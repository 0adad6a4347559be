package engine

// Structure identifies one upgradable building in the account base.
type Structure string

const (
	StructureForge   Structure = "forge"   // unlocks gated bosses, weapon power
	StructureLibrary Structure = "library" // passive experience bonus
	StructureShrine  Structure = "shrine"  // discovery roll bonus
	StructureLodge   Structure = "lodge"   // fishing bite bonus
)

// BaseBuildingStore is the account-level base. Like the achievement tracker
// it spans all characters and is persisted on its own.
type BaseBuildingStore struct {
	Discovered bool              `json:"discovered"`
	Levels     map[Structure]int `json:"levels"`

	dirty bool
}

// NewBaseBuildingStore returns an undiscovered base.
func NewBaseBuildingStore() *BaseBuildingStore {
	return &BaseBuildingStore{Levels: make(map[Structure]int)}
}

func (b *BaseBuildingStore) normalize() {
	if b.Levels == nil {
		b.Levels = make(map[Structure]int)
	}
}

// Discover marks the base as found. Idempotent.
func (b *BaseBuildingStore) Discover() bool {
	if b.Discovered {
		return false
	}
	b.Discovered = true
	b.dirty = true
	return true
}

// Level returns a structure's level, zero when unbuilt.
func (b *BaseBuildingStore) Level(s Structure) int {
	b.normalize()
	return b.Levels[s]
}

// UpgradeCost is the token price of a structure's next level.
func (b *BaseBuildingStore) UpgradeCost(s Structure) int64 {
	return int64(50 * (b.Level(s) + 1))
}

// Upgrade spends tokens from the character to raise a structure one level.
// Returns false when the base is undiscovered or tokens are short.
func (b *BaseBuildingStore) Upgrade(s Structure, c *Character) bool {
	if !b.Discovered {
		return false
	}
	cost := b.UpgradeCost(s)
	if c.Tokens < cost {
		return false
	}
	c.Tokens -= cost
	b.normalize()
	b.Levels[s]++
	b.dirty = true
	return true
}

// XPBonus is the library's passive multiplier on kill experience.
func (b *BaseBuildingStore) XPBonus() float64 {
	return 0.05 * float64(b.Level(StructureLibrary))
}

// DiscoveryBonus is the shrine's additive bonus to discovery probabilities.
func (b *BaseBuildingStore) DiscoveryBonus() float64 {
	return 0.005 * float64(b.Level(StructureShrine))
}

// BiteBonus is the lodge's additive bonus to fishing bite chance.
func (b *BaseBuildingStore) BiteBonus() float64 {
	return 0.01 * float64(b.Level(StructureLodge))
}

// HasForgedWeapon reports whether the forge can supply the weapon gated
// bosses demand.
func (b *BaseBuildingStore) HasForgedWeapon() bool {
	return b.Level(StructureForge) >= 1
}

// consumeDirty reports and clears the persistence flag.
func (b *BaseBuildingStore) consumeDirty() bool {
	d := b.dirty
	b.dirty = false
	return d
}
