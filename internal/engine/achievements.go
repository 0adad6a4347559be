package engine

// Metric is a counter the achievement tracker watches.
type Metric string

const (
	MetricKills        Metric = "kills"
	MetricBossKills    Metric = "boss_kills"
	MetricCatches      Metric = "catches"
	MetricDungeons     Metric = "dungeons_cleared"
	MetricMinigameWins Metric = "minigame_wins"
	MetricPrestiges    Metric = "prestiges"
	MetricLevels       Metric = "levels_gained"
	MetricPlaySeconds  Metric = "play_seconds"
)

// Achievement is one milestone definition.
type Achievement struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Metric    Metric `json:"metric"`
	Threshold int64  `json:"threshold"`
}

// catalog is the fixed milestone table. IDs are stable; thresholds only ever
// grow at the end of a metric's ladder.
var catalog = []Achievement{
	{ID: "kills_10", Name: "Blooded", Metric: MetricKills, Threshold: 10},
	{ID: "kills_100", Name: "Veteran", Metric: MetricKills, Threshold: 100},
	{ID: "kills_1000", Name: "Reaper", Metric: MetricKills, Threshold: 1000},
	{ID: "kills_10000", Name: "Extinction Event", Metric: MetricKills, Threshold: 10000},
	{ID: "boss_1", Name: "Giantfall", Metric: MetricBossKills, Threshold: 1},
	{ID: "boss_25", Name: "Kingslayer", Metric: MetricBossKills, Threshold: 25},
	{ID: "boss_100", Name: "Throne of Skulls", Metric: MetricBossKills, Threshold: 100},
	{ID: "catch_1", Name: "First Cast", Metric: MetricCatches, Threshold: 1},
	{ID: "catch_50", Name: "Old Angler", Metric: MetricCatches, Threshold: 50},
	{ID: "catch_500", Name: "Master of the Line", Metric: MetricCatches, Threshold: 500},
	{ID: "dungeon_1", Name: "Spelunker", Metric: MetricDungeons, Threshold: 1},
	{ID: "dungeon_20", Name: "Deep Delver", Metric: MetricDungeons, Threshold: 20},
	{ID: "minigame_1", Name: "Worthy Opponent", Metric: MetricMinigameWins, Threshold: 1},
	{ID: "minigame_25", Name: "Grandmaster", Metric: MetricMinigameWins, Threshold: 25},
	{ID: "prestige_1", Name: "Reborn", Metric: MetricPrestiges, Threshold: 1},
	{ID: "prestige_10", Name: "Eternal Return", Metric: MetricPrestiges, Threshold: 10},
	{ID: "level_100", Name: "Centurion", Metric: MetricLevels, Threshold: 100},
	{ID: "play_86400", Name: "A Day Given", Metric: MetricPlaySeconds, Threshold: 86400},
}

// Catalog returns the milestone table.
func Catalog() []Achievement { return catalog }

// AchievementTracker is the account-level milestone store. It spans all
// characters and persists independently of any one of them. The three
// transient queues batch notifications inside a short accumulation window so
// a burst of unlocks produces one modal, not five.
type AchievementTracker struct {
	Unlocked map[string]int64 `json:"unlocked"` // ID -> tick of unlock
	Counters map[Metric]int64 `json:"counters"`

	// Transient. toast drains into tick events immediately; pending holds
	// the current accumulation batch; ready holds batches whose window
	// elapsed, awaiting modal display.
	toast       []Achievement
	pending     []Achievement
	ready       []Achievement
	windowStart uint64

	dirty bool
}

// NewAchievementTracker returns an empty tracker.
func NewAchievementTracker() *AchievementTracker {
	return &AchievementTracker{
		Unlocked: make(map[string]int64),
		Counters: make(map[Metric]int64),
	}
}

// normalize repairs nil maps after a load from persistence.
func (t *AchievementTracker) normalize() {
	if t.Unlocked == nil {
		t.Unlocked = make(map[string]int64)
	}
	if t.Counters == nil {
		t.Counters = make(map[Metric]int64)
	}
}

// Record adds delta to a metric and unlocks any milestones the new total
// crosses. Re-reporting an already-unlocked milestone is a silent no-op.
func (t *AchievementTracker) Record(metric Metric, delta int64, tick uint64) {
	if delta == 0 {
		return
	}
	t.normalize()
	t.Counters[metric] += delta
	t.dirty = true

	total := t.Counters[metric]
	for _, a := range catalog {
		if a.Metric != metric || total < a.Threshold {
			continue
		}
		if _, done := t.Unlocked[a.ID]; done {
			continue
		}
		t.Unlocked[a.ID] = int64(tick)
		t.toast = append(t.toast, a)
		if len(t.pending) == 0 {
			t.windowStart = tick
		}
		t.pending = append(t.pending, a)
	}
}

// drainToast returns the unlocks announced this tick and clears the queue.
func (t *AchievementTracker) drainToast() []Achievement {
	out := t.toast
	t.toast = nil
	return out
}

// drainReady moves the pending batch to ready once the accumulation window
// has elapsed, and returns everything ready for modal display.
func (t *AchievementTracker) drainReady(tick, windowTicks uint64) []Achievement {
	if len(t.pending) > 0 && tick >= t.windowStart+windowTicks {
		t.ready = append(t.ready, t.pending...)
		t.pending = nil
	}
	out := t.ready
	t.ready = nil
	return out
}

// consumeDirty reports and clears the persistence flag.
func (t *AchievementTracker) consumeDirty() bool {
	d := t.dirty
	t.dirty = false
	return d
}
