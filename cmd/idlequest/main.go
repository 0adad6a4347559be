// Command idlequest runs the idle RPG simulation loop in a terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/stphung/idlequest/internal/balance"
	"github.com/stphung/idlequest/internal/engine"
	"github.com/stphung/idlequest/internal/entropy"
	"github.com/stphung/idlequest/internal/persistence"
)

func main() {
	var (
		dbPath      = flag.String("db", "data/idlequest.db", "path to the save database")
		balancePath = flag.String("balance", "balance.yaml", "optional YAML balance overrides")
		name        = flag.String("name", "Wanderer", "name for a newly created character")
		seed        = flag.Int64("seed", 0, "RNG seed; 0 uses system entropy")
		debug       = flag.Bool("debug", false, "enable per-tick debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	bal, err := balance.Load(*balancePath)
	if err != nil {
		slog.Error("failed to load balance", "error", err)
		os.Exit(1)
	}
	eng := engine.New(bal)

	var rng entropy.Source
	if *seed != 0 {
		rng = entropy.NewSeeded(*seed)
		slog.Info("using seeded randomness", "seed", *seed)
	} else {
		rng = entropy.NewCrypto()
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		slog.Error("failed to create save directory", "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	tracker := db.LoadAchievements()
	base := db.LoadBaseBuilding()

	char, err := db.LoadCharacter()
	if err != nil {
		slog.Error("failed to load character", "error", err)
		os.Exit(1)
	}
	if char == nil {
		char = engine.NewCharacter(uuid.NewString(), *name)
		slog.Info("created character", "name", char.Name, "id", char.ID)
	} else {
		slog.Info("loaded character",
			"name", char.Name,
			"level", char.Level,
			"prestige", char.PrestigeRank,
			"play_time", (time.Duration(char.PlayTimeSeconds) * time.Second).String(),
		)
		reportOffline(eng, char, base, db, rng)
	}

	saveAll := func() {
		if err := db.SaveCharacter(char); err != nil {
			slog.Error("character save failed", "error", err)
		}
		if err := db.SaveAchievements(tracker); err != nil {
			slog.Error("achievements save failed", "error", err)
		}
		if err := db.SaveBaseBuilding(base); err != nil {
			slog.Error("base-building save failed", "error", err)
		}
		if err := db.MarkSaved(time.Now()); err != nil {
			slog.Error("save timestamp failed", "error", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	interval := time.Second / time.Duration(bal.TicksPerSecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	autosave := time.NewTicker(30 * time.Second)
	defer autosave.Stop()

	slog.Info("simulation running", "tick_interval", interval.String())

	var counter uint64
	for {
		select {
		case <-sigCh:
			slog.Info("shutting down, saving")
			saveAll()
			return

		case <-autosave.C:
			saveAll()

		case <-ticker.C:
			counter++
			res := eng.Tick(char, counter, base, tracker, *debug, rng)

			for _, ev := range res.Events {
				renderEvent(ev)
			}
			for _, a := range res.ReadyAchievements {
				slog.Info("achievement earned", "name", a.Name, "id", a.ID)
			}

			if res.SaveAchievements {
				if err := db.SaveAchievements(tracker); err != nil {
					slog.Error("achievements save failed", "error", err)
				}
			}
			if res.SaveBaseBuilding {
				if err := db.SaveBaseBuilding(base); err != nil {
					slog.Error("base-building save failed", "error", err)
				}
			}

			autopilot(eng, char, base, tracker, counter, res)
		}
	}
}

// reportOffline grants analytic catch-up experience for the time since the
// last save and prints a summary.
func reportOffline(eng *engine.Engine, char *engine.Character, base *engine.BaseBuildingStore, db *persistence.DB, rng entropy.Source) {
	lastSaved, ok := db.LastSaved()
	if !ok {
		return
	}
	away := time.Since(lastSaved)
	if away < time.Minute {
		return
	}

	report := eng.ApplyOffline(char, base, away, rng)
	slog.Info("welcome back",
		"away", humanize.RelTime(lastSaved, time.Now(), "ago", ""),
		"credited", report.Elapsed.Truncate(time.Second).String(),
		"capped", report.Capped,
		"kills", humanize.Comma(report.Kills),
		"xp", humanize.Comma(report.XPGained),
		"levels", report.LevelsGained,
	)
}

// autopilot supplies the player intent this headless driver has no human
// for: it enters whatever was just discovered, accepts challenges, spends
// tokens on the base, and prestiges when eligible.
func autopilot(eng *engine.Engine, char *engine.Character, base *engine.BaseBuildingStore, tracker *engine.AchievementTracker, counter uint64, res *engine.TickResult) {
	for _, ev := range res.Events {
		switch e := ev.(type) {
		case engine.DungeonDiscovered:
			if eng.EnterDungeon(char) {
				slog.Info("stepping into the dungeon", "dungeon", e.Name)
			}
		case engine.FishingSpotDiscovered:
			if eng.StartFishing(char, len(char.UnlockedSpots)-1) {
				slog.Info("casting a line", "spot", e.Spot.Name)
			}
		case engine.ChallengeDiscovered:
			if eng.AcceptChallenge(char) {
				slog.Info("challenge accepted", "game", e.Kind.String(), "difficulty", e.Difficulty)
			}
		}
	}

	// Token spending and prestige are cheap checks; once a second is plenty.
	if counter%uint64(eng.Balance().TicksPerSecond) != 0 {
		return
	}
	for _, s := range []engine.Structure{
		engine.StructureForge, engine.StructureLibrary,
		engine.StructureShrine, engine.StructureLodge,
	} {
		if base.Upgrade(s, char) {
			slog.Info("base structure upgraded", "structure", string(s), "level", base.Level(s))
			break
		}
	}
	if char.Level >= eng.Balance().PrestigeMinLevel && !char.Busy() {
		if eng.Prestige(char, tracker, counter) {
			slog.Info("prestiged", "rank", char.PrestigeRank)
		}
	}
}

func renderEvent(ev engine.Event) {
	switch e := ev.(type) {
	case engine.AttackLanded:
		if e.Crit {
			slog.Info(fmt.Sprintf("%s crits %s for %d", e.Attacker, e.Target, e.Damage))
		} else {
			slog.Debug(fmt.Sprintf("%s hits %s for %d", e.Attacker, e.Target, e.Damage))
		}
	case engine.EnemyDefeated:
		slog.Info(fmt.Sprintf("%s falls (+%s xp, streak %d)", e.Name, humanize.Comma(e.XP), e.Streak))
	case engine.PlayerDied:
		slog.Info(fmt.Sprintf("slain by %s, recovering", e.EnemyName))
	case engine.EnemySpawned:
		if e.Boss {
			slog.Info(fmt.Sprintf("boss appears: %s (level %d)", e.Name, e.Level))
		} else {
			slog.Debug(fmt.Sprintf("%s approaches (level %d)", e.Name, e.Level))
		}
	case engine.BossDefeated:
		if e.AdvancedTo != "" {
			slog.Info(fmt.Sprintf("%s defeated! advancing to %s", e.Name, e.AdvancedTo))
		} else {
			slog.Info(fmt.Sprintf("%s defeated!", e.Name))
		}
	case engine.WeaponRequired:
		slog.Info(fmt.Sprintf("%s bars the way: a forged weapon is required", e.Name))
	case engine.ItemDropped:
		slog.Info(fmt.Sprintf("loot: %s (%s, power %d, equipped=%v)",
			e.Item.Name, e.Item.Rarity, e.Item.Power, e.Equipped))
	case engine.LeveledUp:
		slog.Info(fmt.Sprintf("level up! now level %d (+%d attribute points)", e.Level, e.Points))
	case engine.PrestigeGained:
		slog.Info(fmt.Sprintf("prestige rank %d (+%d)", e.Rank, e.Ranks))
	case engine.DungeonDiscovered:
		slog.Info(fmt.Sprintf("discovered a dungeon: %s (%d rooms)", e.Name, e.Rooms))
	case engine.DungeonRoomEntered:
		slog.Debug(fmt.Sprintf("[%s] entered %s room (depth %d)", e.Dungeon, e.Kind, e.Depth))
	case engine.DungeonTreasureFound:
		slog.Info(fmt.Sprintf("[%s] treasure: %s (equipped=%v)", e.Dungeon, e.Item.Name, e.Equipped))
	case engine.DungeonKeyFound:
		slog.Info(fmt.Sprintf("[%s] found the boss key", e.Dungeon))
	case engine.DungeonCompleted:
		slog.Info(fmt.Sprintf("[%s] cleared! bonus %s xp", e.Dungeon, humanize.Comma(e.BonusXP)))
	case engine.DungeonFailed:
		slog.Info(fmt.Sprintf("[%s] the run is lost", e.Dungeon))
	case engine.PlayerDiedInDungeon:
		slog.Info(fmt.Sprintf("[%s] died at depth %d, ejected with nothing lost", e.Dungeon, e.Depth))
	case engine.FishingSpotDiscovered:
		slog.Info(fmt.Sprintf("found a fishing spot: %s", e.Spot.Name))
	case engine.FishCaught:
		slog.Info(fmt.Sprintf("caught a %s at %s (+%d rank)", e.Fish, e.Spot, e.RankXP))
	case engine.FishingRankUp:
		slog.Info(fmt.Sprintf("fishing rank %d", e.Rank))
	case engine.FishingEnded:
		slog.Info(fmt.Sprintf("fishing at %s is over (%d catches)", e.Spot, e.Catches))
	case engine.ChallengeDiscovered:
		slog.Info(fmt.Sprintf("a %s challenge appears (difficulty %d)", e.Kind, e.Difficulty))
	case engine.MinigameMove:
		slog.Debug(fmt.Sprintf("%s opponent plays move %d", e.Kind, e.Move))
	case engine.MinigameConcluded:
		slog.Info(fmt.Sprintf("%s concluded: %s (+%s xp, +%d tokens)",
			e.Kind, e.Outcome, humanize.Comma(e.XP), e.Tokens))
	case engine.AchievementUnlocked:
		slog.Info(fmt.Sprintf("achievement unlocked: %s", e.Name))
	case engine.BaseBuildingDiscovered:
		slog.Info("you have discovered a place to build a base")
	}
}
