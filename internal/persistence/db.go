// Package persistence stores character snapshots and the two account-level
// stores in SQLite. The simulation core never touches this package; the
// driver saves when a TickResult raises a persistence flag.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/stphung/idlequest/internal/engine"
)

// Store names for the account_stores table: one JSON document per store.
const (
	storeAchievements = "achievements"
	storeBaseBuilding = "base_building"
)

const metaLastSaved = "last_saved_unix"

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS characters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		level INTEGER NOT NULL,
		xp INTEGER NOT NULL,
		prestige_rank INTEGER NOT NULL,
		fishing_rank INTEGER NOT NULL,
		fishing_rank_xp INTEGER NOT NULL,
		tokens INTEGER NOT NULL,
		play_seconds INTEGER NOT NULL,
		attributes_json TEXT NOT NULL,
		equipment_json TEXT NOT NULL,
		zone_json TEXT NOT NULL,
		minigame_stats_json TEXT NOT NULL,
		unlocked_spots_json TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS account_stores (
		name TEXT PRIMARY KEY,
		doc TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveCharacter writes a full character snapshot. Transient session state
// (active dungeon, fishing trip, minigame, drop buffer) is deliberately not
// persisted.
func (db *DB) SaveCharacter(c *engine.Character) error {
	attrs, _ := json.Marshal(c.Attributes)
	equip, _ := json.Marshal(c.Equipment)
	zone, _ := json.Marshal(c.Zone)
	stats, _ := json.Marshal(c.MinigameStats)
	spots, _ := json.Marshal(c.UnlockedSpots)

	_, err := db.conn.Exec(`INSERT OR REPLACE INTO characters
		(id, name, level, xp, prestige_rank, fishing_rank, fishing_rank_xp,
		 tokens, play_seconds, attributes_json, equipment_json, zone_json,
		 minigame_stats_json, unlocked_spots_json, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Level, c.XP, c.PrestigeRank,
		c.FishingRank, c.FishingRankXP, c.Tokens, c.PlayTimeSeconds,
		string(attrs), string(equip), string(zone), string(stats), string(spots),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save character %s: %w", c.ID, err)
	}
	return nil
}

type characterRow struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Level         int    `db:"level"`
	XP            int64  `db:"xp"`
	PrestigeRank  int    `db:"prestige_rank"`
	FishingRank   int    `db:"fishing_rank"`
	FishingRankXP int    `db:"fishing_rank_xp"`
	Tokens        int64  `db:"tokens"`
	PlaySeconds   int64  `db:"play_seconds"`
	Attributes    string `db:"attributes_json"`
	Equipment     string `db:"equipment_json"`
	Zone          string `db:"zone_json"`
	MinigameStats string `db:"minigame_stats_json"`
	UnlockedSpots string `db:"unlocked_spots_json"`
	UpdatedAt     int64  `db:"updated_at"`
}

// LoadCharacter returns the most recently saved character, or nil when the
// table is empty.
func (db *DB) LoadCharacter() (*engine.Character, error) {
	var row characterRow
	err := db.conn.Get(&row, "SELECT * FROM characters ORDER BY updated_at DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load character: %w", err)
	}

	c := engine.NewCharacter(row.ID, row.Name)
	c.Level = row.Level
	c.XP = row.XP
	c.PrestigeRank = row.PrestigeRank
	c.FishingRank = row.FishingRank
	c.FishingRankXP = row.FishingRankXP
	c.Tokens = row.Tokens
	c.PlayTimeSeconds = row.PlaySeconds

	// Malformed blob columns fall back to the fresh-character defaults; the
	// core never observes corrupt state.
	if err := json.Unmarshal([]byte(row.Attributes), &c.Attributes); err != nil {
		slog.Warn("discarding malformed attributes blob", "character", row.ID, "error", err)
	}
	if err := json.Unmarshal([]byte(row.Equipment), &c.Equipment); err != nil {
		slog.Warn("discarding malformed equipment blob", "character", row.ID, "error", err)
	}
	if err := json.Unmarshal([]byte(row.Zone), &c.Zone); err != nil {
		slog.Warn("discarding malformed zone blob", "character", row.ID, "error", err)
	}
	if err := json.Unmarshal([]byte(row.MinigameStats), &c.MinigameStats); err != nil {
		slog.Warn("discarding malformed minigame stats blob", "character", row.ID, "error", err)
	}
	if err := json.Unmarshal([]byte(row.UnlockedSpots), &c.UnlockedSpots); err != nil {
		slog.Warn("discarding malformed spots blob", "character", row.ID, "error", err)
	}
	return c, nil
}

func (db *DB) saveStore(name string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s store: %w", name, err)
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO account_stores (name, doc) VALUES (?, ?)",
		name, string(data),
	)
	if err != nil {
		return fmt.Errorf("save %s store: %w", name, err)
	}
	return nil
}

func (db *DB) loadStore(name string, doc any) (bool, error) {
	var data string
	err := db.conn.Get(&data, "SELECT doc FROM account_stores WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), doc); err != nil {
		return false, err
	}
	return true, nil
}

// SaveAchievements writes the achievement tracker document.
func (db *DB) SaveAchievements(t *engine.AchievementTracker) error {
	return db.saveStore(storeAchievements, t)
}

// LoadAchievements reads the achievement tracker, falling back to a
// default-constructed one on a missing or malformed document.
func (db *DB) LoadAchievements() *engine.AchievementTracker {
	t := engine.NewAchievementTracker()
	ok, err := db.loadStore(storeAchievements, t)
	if err != nil {
		slog.Warn("discarding malformed achievements store", "error", err)
		return engine.NewAchievementTracker()
	}
	if !ok {
		return t
	}
	return t
}

// SaveBaseBuilding writes the base-building document.
func (db *DB) SaveBaseBuilding(b *engine.BaseBuildingStore) error {
	return db.saveStore(storeBaseBuilding, b)
}

// LoadBaseBuilding reads the base-building store with the same fallback
// policy as LoadAchievements.
func (db *DB) LoadBaseBuilding() *engine.BaseBuildingStore {
	b := engine.NewBaseBuildingStore()
	ok, err := db.loadStore(storeBaseBuilding, b)
	if err != nil {
		slog.Warn("discarding malformed base-building store", "error", err)
		return engine.NewBaseBuildingStore()
	}
	if !ok {
		return b
	}
	return b
}

// MarkSaved records the wall-clock moment of a successful save; offline
// progression measures from it on the next launch.
func (db *DB) MarkSaved(t time.Time) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		metaLastSaved, strconv.FormatInt(t.Unix(), 10),
	)
	return err
}

// LastSaved returns the recorded save moment, ok=false when none exists.
func (db *DB) LastSaved() (time.Time, bool) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", metaLastSaved)
	if err != nil {
		return time.Time{}, false
	}
	unix, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
