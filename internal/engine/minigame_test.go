package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stphung/idlequest/internal/content"
)

func TestTurnGamePacing(t *testing.T) {
	ai := NewAIEngine(content.MinigameChess, 0)

	// Difficulty 0 chess: a move lands every 12th thinking tick, 30 moves
	// total. A high roll on the final move loses.
	moves := 0
	ticks := 0
	for {
		if ai.ThinkTick(fixedSource{0.99}) {
			moves++
		}
		ticks++
		if _, over := ai.Concluded(); over {
			break
		}
		require.Less(t, ticks, 10_000, "the game must conclude")
	}

	assert.Equal(t, 30, moves)
	assert.Equal(t, 30*12, ticks)
	outcome, over := ai.Concluded()
	require.True(t, over)
	assert.Equal(t, OutcomeLoss, outcome)
	assert.False(t, ai.ThinkTick(fixedSource{0.99}), "a finished game stops thinking")
}

func TestHarderOpponentsWinLessOften(t *testing.T) {
	// The outcome roll is uniform, so win odds order by the width of the win
	// band. Force conclusion and compare the roll that still wins.
	winsAt := func(difficulty int, roll float64) bool {
		ai := NewAIEngine(content.MinigameMinesweeper, difficulty)
		for {
			ai.ThinkTick(fixedSource{roll})
			if outcome, over := ai.Concluded(); over {
				return outcome == OutcomeWin
			}
		}
	}

	assert.True(t, winsAt(0, 0.55))
	assert.False(t, winsAt(4, 0.55))
	assert.True(t, winsAt(4, 0.01), "even the top tier is winnable")
}

func TestAcceptChallengeStartsGame(t *testing.T) {
	eng, c, _, _ := testWorld()

	assert.False(t, eng.AcceptChallenge(c), "no pending challenge")

	c.PendingChallenge = &Challenge{Kind: content.MinigameGo, Difficulty: 2}
	c.Fishing = &FishingSession{Spot: content.SpotFor(0, 0)}
	assert.False(t, eng.AcceptChallenge(c), "busy elsewhere")
	c.Fishing = nil

	c.Combat = &CombatState{Enemy: Enemy{Name: "Feral Boar"}}
	require.True(t, eng.AcceptChallenge(c))
	assert.Nil(t, c.PendingChallenge)
	assert.Nil(t, c.Combat, "combat disengages at the table")
	require.NotNil(t, c.Minigame)
	assert.Equal(t, content.MinigameGo, c.Minigame.Kind)
	assert.Equal(t, 2, c.Minigame.Difficulty)
}

func TestDeclineChallengeClearsMenu(t *testing.T) {
	eng, c, _, _ := testWorld()
	c.PendingChallenge = &Challenge{Kind: content.MinigameChess}
	eng.DeclineChallenge(c)
	assert.Nil(t, c.PendingChallenge)
}

func TestForfeitPaysNothing(t *testing.T) {
	eng, c, _, _ := testWorld()

	assert.False(t, eng.ForfeitMinigame(c), "no game running")

	c.PendingChallenge = &Challenge{Kind: content.MinigameChess, Difficulty: 1}
	require.True(t, eng.AcceptChallenge(c))
	require.True(t, eng.ForfeitMinigame(c))

	assert.Nil(t, c.Minigame)
	assert.Zero(t, c.Tokens)
	rec := c.MinigameStats["chess"]
	require.NotNil(t, rec)
	assert.Equal(t, 1, rec.Played)
	assert.Equal(t, 0, rec.Wins)
}

func TestWinPaysDifficultyReward(t *testing.T) {
	eng, c, base, tracker := testWorld()

	c.PendingChallenge = &Challenge{Kind: content.MinigameMinesweeper, Difficulty: 3}
	require.True(t, eng.AcceptChallenge(c))

	var concluded *MinigameConcluded
	var prestige *PrestigeGained
	for i := 0; i < 1000 && concluded == nil; i++ {
		res := eng.Tick(c, uint64(i+1), base, tracker, false, fixedSource{0})
		for _, ev := range res.Events {
			switch e := ev.(type) {
			case MinigameConcluded:
				concluded = &e
			case PrestigeGained:
				prestige = &e
			}
		}
	}

	require.NotNil(t, concluded)
	assert.Equal(t, OutcomeWin, concluded.Outcome)

	reward := content.RewardFor(3)
	assert.Equal(t, reward.Tokens, concluded.Tokens)
	assert.Equal(t, reward.Tokens, c.Tokens)
	assert.Greater(t, concluded.XP, int64(0))
	assert.Equal(t, reward.PrestigeRanks, concluded.PrestigeRanks)

	require.NotNil(t, prestige)
	assert.Equal(t, reward.PrestigeRanks, c.PrestigeRank)

	assert.Nil(t, c.Minigame)
	assert.EqualValues(t, 1, tracker.Counters[MetricMinigameWins])
	assert.EqualValues(t, int64(reward.PrestigeRanks), tracker.Counters[MetricPrestiges])
	assert.Equal(t, 1, c.MinigameStats["minesweeper"].Wins)
}

func TestDrawPaysConsolationTokens(t *testing.T) {
	eng, c, base, tracker := testWorld()

	c.PendingChallenge = &Challenge{Kind: content.MinigameChess, Difficulty: 0}
	require.True(t, eng.AcceptChallenge(c))

	// 0.6 lands in the draw band for difficulty 0 chess.
	var concluded *MinigameConcluded
	for i := 0; i < 1000 && concluded == nil; i++ {
		res := eng.Tick(c, uint64(i+1), base, tracker, false, fixedSource{0.6})
		for _, ev := range res.Events {
			if e, ok := ev.(MinigameConcluded); ok {
				concluded = &e
			}
		}
	}

	require.NotNil(t, concluded)
	assert.Equal(t, OutcomeDraw, concluded.Outcome)
	assert.Equal(t, content.RewardFor(0).DrawTokens, c.Tokens)
	assert.Zero(t, concluded.XP)
	assert.Zero(t, c.PrestigeRank)
	assert.Zero(t, tracker.Counters[MetricMinigameWins])
	assert.Equal(t, 1, c.MinigameStats["chess"].Draws)
}
