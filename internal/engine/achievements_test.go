package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnlocksAtThreshold(t *testing.T) {
	tr := NewAchievementTracker()

	tr.Record(MetricKills, 9, 1)
	assert.Empty(t, tr.Unlocked)

	tr.Record(MetricKills, 1, 2)
	require.Contains(t, tr.Unlocked, "kills_10")
	assert.EqualValues(t, 2, tr.Unlocked["kills_10"], "unlock remembers its tick")

	toast := tr.drainToast()
	require.Len(t, toast, 1)
	assert.Equal(t, "Blooded", toast[0].Name)
	assert.Empty(t, tr.drainToast(), "the toast queue drains once")
}

func TestRecordIsIdempotentPastThreshold(t *testing.T) {
	tr := NewAchievementTracker()

	tr.Record(MetricBossKills, 1, 3)
	require.Contains(t, tr.Unlocked, "boss_1")
	tr.drainToast()
	tr.drainReady(100, 5)

	// Crossing the same threshold again changes nothing visible.
	tr.Record(MetricBossKills, 1, 4)
	assert.Empty(t, tr.drainToast())
	assert.Empty(t, tr.drainReady(100, 5))
	assert.EqualValues(t, 2, tr.Counters[MetricBossKills])
}

func TestOneGrantCanUnlockSeveralTiers(t *testing.T) {
	tr := NewAchievementTracker()

	tr.Record(MetricKills, 150, 1)
	assert.Contains(t, tr.Unlocked, "kills_10")
	assert.Contains(t, tr.Unlocked, "kills_100")
	assert.NotContains(t, tr.Unlocked, "kills_1000")
	assert.Len(t, tr.drainToast(), 2)
}

func TestAccumulationWindowBatchesUnlocks(t *testing.T) {
	tr := NewAchievementTracker()

	tr.Record(MetricKills, 10, 3)
	tr.Record(MetricCatches, 1, 5)

	// The window starts at the first unlock and is not reset by the second.
	assert.Empty(t, tr.drainReady(7, 5), "window still open")
	ready := tr.drainReady(8, 5)
	require.Len(t, ready, 2)
	assert.Equal(t, "kills_10", ready[0].ID)
	assert.Equal(t, "catch_1", ready[1].ID)

	assert.Empty(t, tr.drainReady(9, 5), "the batch flushes once")
}

func TestWindowRestartsAfterFlush(t *testing.T) {
	tr := NewAchievementTracker()

	tr.Record(MetricKills, 10, 1)
	require.Len(t, tr.drainReady(6, 5), 1)

	tr.Record(MetricPrestiges, 1, 20)
	assert.Empty(t, tr.drainReady(24, 5))
	assert.Len(t, tr.drainReady(25, 5), 1)
}

func TestConsumeDirtyFlagsPersistence(t *testing.T) {
	tr := NewAchievementTracker()
	assert.False(t, tr.consumeDirty())

	tr.Record(MetricKills, 1, 1)
	assert.True(t, tr.consumeDirty())
	assert.False(t, tr.consumeDirty(), "the flag clears on read")
}

func TestLoadedTrackerRepairsNilMaps(t *testing.T) {
	var tr AchievementTracker
	require.NoError(t, json.Unmarshal([]byte(`{}`), &tr))

	// Must not panic on nil maps straight off the wire.
	tr.Record(MetricKills, 10, 1)
	assert.Contains(t, tr.Unlocked, "kills_10")
}

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Catalog() {
		assert.False(t, seen[a.ID], "duplicate achievement id %q", a.ID)
		seen[a.ID] = true
		assert.Greater(t, a.Threshold, int64(0))
	}
}
