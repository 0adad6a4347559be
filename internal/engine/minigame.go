package engine

import (
	"fmt"

	"github.com/stphung/idlequest/internal/content"
	"github.com/stphung/idlequest/internal/entropy"
)

// Outcome classifies a concluded minigame.
type Outcome uint8

const (
	OutcomeWin Outcome = iota
	OutcomeLoss
	OutcomeDraw
	OutcomeForfeit
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeDraw:
		return "draw"
	case OutcomeForfeit:
		return "forfeit"
	default:
		return "unknown"
	}
}

// AIEngine is the uniform contract every minigame opponent exposes. The
// orchestrator only ticks thinking, checks for conclusion and applies
// generic rewards; it never inspects board state.
type AIEngine interface {
	// ThinkTick advances the opponent's thinking by one tick and reports
	// whether a move was committed.
	ThinkTick(rng entropy.Source) bool
	// Concluded reports whether the game is over and how it ended.
	Concluded() (Outcome, bool)
}

// NewAIEngine constructs the opponent for a challenge kind at a difficulty
// tier. The kind set is closed; an unknown kind is an invariant violation.
func NewAIEngine(kind content.MinigameKind, difficulty int) AIEngine {
	switch kind {
	case content.MinigameChess:
		return &chessEngine{
			turnGame: newTurnGame(30+10*difficulty, 12+3*difficulty, 0.55-0.08*float64(difficulty), 0.15),
		}
	case content.MinigameGo:
		return &goEngine{
			turnGame: newTurnGame(80+20*difficulty, 5+2*difficulty, 0.50-0.07*float64(difficulty), 0.02),
		}
	case content.MinigameMinesweeper:
		return &minesweeperEngine{
			turnGame: newTurnGame(15+5*difficulty, 8+2*difficulty, 0.60-0.10*float64(difficulty), 0),
		}
	default:
		panic(fmt.Sprintf("engine: unknown minigame kind %d", kind))
	}
}

// turnGame is the shared pacing core of the bundled opponents: a per-move
// thinking budget, a move count to exhaustion, and outcome odds rolled when
// the final move lands.
type turnGame struct {
	movesLeft    int
	thinkPerMove int
	thinkLeft    int
	winOdds      float64
	drawOdds     float64

	done    bool
	outcome Outcome
}

func newTurnGame(moves, thinkPerMove int, winOdds, drawOdds float64) turnGame {
	if winOdds < 0.05 {
		winOdds = 0.05
	}
	return turnGame{
		movesLeft:    moves,
		thinkPerMove: thinkPerMove,
		thinkLeft:    thinkPerMove,
		winOdds:      winOdds,
		drawOdds:     drawOdds,
	}
}

func (g *turnGame) ThinkTick(rng entropy.Source) bool {
	if g.done {
		return false
	}
	g.thinkLeft--
	if g.thinkLeft > 0 {
		return false
	}
	g.thinkLeft = g.thinkPerMove
	g.movesLeft--
	if g.movesLeft <= 0 {
		roll := rng.Float64()
		switch {
		case roll < g.winOdds:
			g.outcome = OutcomeWin
		case roll < g.winOdds+g.drawOdds:
			g.outcome = OutcomeDraw
		default:
			g.outcome = OutcomeLoss
		}
		g.done = true
	}
	return true
}

func (g *turnGame) Concluded() (Outcome, bool) {
	return g.outcome, g.done
}

type chessEngine struct{ turnGame }
type goEngine struct{ turnGame }
type minesweeperEngine struct{ turnGame }

// AcceptChallenge takes the pending challenge and starts the game. Returns
// false with no pending challenge or a competing activity.
func (e *Engine) AcceptChallenge(c *Character) bool {
	if c.PendingChallenge == nil || c.Busy() {
		return false
	}
	ch := c.PendingChallenge
	c.PendingChallenge = nil
	c.Combat = nil
	c.Minigame = &MinigameSession{
		Kind:       ch.Kind,
		Difficulty: ch.Difficulty,
		Engine:     NewAIEngine(ch.Kind, ch.Difficulty),
	}
	return true
}

// DeclineChallenge clears the pending challenge menu.
func (e *Engine) DeclineChallenge(c *Character) {
	c.PendingChallenge = nil
}

// ForfeitMinigame abandons the active game with no reward. Reports whether
// a game was actually running.
func (e *Engine) ForfeitMinigame(c *Character) bool {
	if c.Minigame == nil {
		return false
	}
	c.recordMinigame(c.Minigame.Kind, OutcomeForfeit)
	c.Minigame = nil
	return true
}

// stepMinigame advances the opponent's thinking and, on conclusion, applies
// the difficulty-indexed rewards.
func (e *Engine) stepMinigame(c *Character, tracker *AchievementTracker, counter uint64, rng entropy.Source, res *TickResult) {
	m := c.Minigame

	if m.Engine.ThinkTick(rng) {
		m.Moves++
		res.add(MinigameMove{Kind: m.Kind, Move: m.Moves})
	}

	outcome, over := m.Engine.Concluded()
	if !over {
		return
	}

	reward := content.RewardFor(m.Difficulty)
	concluded := MinigameConcluded{Kind: m.Kind, Outcome: outcome}

	switch outcome {
	case OutcomeWin:
		concluded.XP = int64(reward.XPPct * float64(e.XPForLevel(c.Level)))
		concluded.PrestigeRanks = reward.PrestigeRanks
		concluded.Tokens = reward.Tokens
		tracker.Record(MetricMinigameWins, 1, counter)
	case OutcomeDraw:
		concluded.Tokens = reward.DrawTokens
	}

	c.recordMinigame(m.Kind, outcome)
	c.Tokens += concluded.Tokens
	c.Minigame = nil
	res.add(concluded)

	if concluded.XP > 0 {
		for _, ev := range e.GrantXP(c, concluded.XP, rng) {
			res.add(ev)
			tracker.Record(MetricLevels, 1, counter)
		}
	}
	if concluded.PrestigeRanks > 0 {
		c.PrestigeRank += concluded.PrestigeRanks
		tracker.Record(MetricPrestiges, int64(concluded.PrestigeRanks), counter)
		res.add(PrestigeGained{Rank: c.PrestigeRank, Ranks: concluded.PrestigeRanks})
	}
}
