package content

// MinigameKind identifies one of the bundled turn-based minigames. The set
// is closed: the host dispatches over these values only.
type MinigameKind uint8

const (
	MinigameChess MinigameKind = iota
	MinigameGo
	MinigameMinesweeper
	MinigameKindCount
)

// String returns the minigame name.
func (k MinigameKind) String() string {
	switch k {
	case MinigameChess:
		return "chess"
	case MinigameGo:
		return "go"
	case MinigameMinesweeper:
		return "minesweeper"
	default:
		return "unknown"
	}
}

// MaxDifficulty is the highest challenge tier (inclusive).
const MaxDifficulty = 4

// Reward is what a concluded challenge pays out, indexed by difficulty.
type Reward struct {
	XPPct         float64 // percent of the current level's requirement, on a win
	PrestigeRanks int     // ranks granted on a win at the top tiers
	Tokens        int64   // secondary currency, win only
	DrawTokens    int64   // consolation on a draw
}

var rewardTable = [MaxDifficulty + 1]Reward{
	{XPPct: 0.10, PrestigeRanks: 0, Tokens: 5, DrawTokens: 1},
	{XPPct: 0.25, PrestigeRanks: 0, Tokens: 12, DrawTokens: 3},
	{XPPct: 0.50, PrestigeRanks: 0, Tokens: 30, DrawTokens: 8},
	{XPPct: 1.00, PrestigeRanks: 1, Tokens: 75, DrawTokens: 20},
	{XPPct: 2.00, PrestigeRanks: 2, Tokens: 200, DrawTokens: 50},
}

// RewardFor returns the reward row for a difficulty tier, clamping out-of-range
// tiers to the table bounds.
func RewardFor(difficulty int) Reward {
	if difficulty < 0 {
		difficulty = 0
	}
	if difficulty > MaxDifficulty {
		difficulty = MaxDifficulty
	}
	return rewardTable[difficulty]
}
