package history

import (
	"errors"
	"testing"
	"time"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/data/kv"
	"github.com/penwyp/go-step-monitor/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock is a clock tests can move forward
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

// failingStore reads like an empty store and refuses every write
type failingStore struct {
	snapshotErr error
	applyErr    error
}

func (f *failingStore) Snapshot() (map[string]kv.Value, error) {
	return map[string]kv.Value{}, f.snapshotErr
}
func (f *failingStore) Apply(*kv.Batch) error { return f.applyErr }
func (f *failingStore) Close() error          { return nil }

func newTestStore(t *testing.T, now time.Time) (*Store, *kv.MemoryStore, *manualClock) {
	t.Helper()
	backing := kv.NewMemoryStore()
	clock := &manualClock{now: now}
	return NewStore(backing, clock), backing, clock
}

func TestStoreReconcilePersistsWindow(t *testing.T) {
	store, backing, _ := newTestStore(t, day(2024, 3, 15))

	result, err := store.Reconcile()
	require.NoError(t, err)
	assert.Len(t, result.History, constants.HistoryRetentionDays)

	values := mustSnapshot(t, backing)
	assert.Len(t, kv.WithPrefix(values, constants.HistoryKeyPrefix), constants.HistoryRetentionDays)
	assert.Equal(t, "15.03.2024", kv.String(values, constants.LastSaveDateKey, ""))
	assert.Equal(t, constants.NoResultText, kv.String(values, constants.LastResultKey, ""))
	assert.NotContains(t, values, constants.DayResetInitialStepsKey)
}

func TestStoreRecordSample(t *testing.T) {
	store, _, _ := newTestStore(t, day(2024, 3, 15))
	_, err := store.Reconcile()
	require.NoError(t, err)

	assert.Equal(t, 0, store.RecordSample(50000), "first reading is the zero point")
	assert.Equal(t, model.NewBaseline(50000), store.Counter().Baseline)

	assert.Equal(t, 120, store.RecordSample(50120))
	assert.Equal(t, 120, store.Counter().TotalDailySteps)

	// A sensor reset after reboot reports a smaller cumulative value
	assert.Equal(t, 0, store.RecordSample(30))
	assert.Equal(t, model.NewBaseline(50000), store.Counter().Baseline)
}

func TestStoreRecordSampleZeroBaselineIsKept(t *testing.T) {
	store, _, _ := newTestStore(t, day(2024, 3, 15))
	_, err := store.Reconcile()
	require.NoError(t, err)

	assert.Equal(t, 0, store.RecordSample(0))
	assert.Equal(t, 15, store.RecordSample(15), "a zero baseline must not be re-taken")
}

func TestStoreSameDayRestartKeepsBaseline(t *testing.T) {
	backing := kv.NewMemoryStore()
	clock := &manualClock{now: day(2024, 3, 15)}

	first := NewStore(backing, clock)
	_, err := first.Reconcile()
	require.NoError(t, err)
	first.RecordSample(1000)
	first.RecordSample(4000)
	require.NoError(t, first.PeriodicPersist())

	clock.now = clock.now.Add(2 * time.Hour)
	second := NewStore(backing, clock)
	result, err := second.Reconcile()
	require.NoError(t, err)

	assert.Equal(t, 3000, result.Counter.TotalDailySteps)
	assert.Equal(t, 3500, second.RecordSample(4500))
}

func TestStoreNextDayArchivesPersistedTotal(t *testing.T) {
	backing := kv.NewMemoryStore()
	clock := &manualClock{now: day(2024, 3, 14)}

	first := NewStore(backing, clock)
	_, err := first.Reconcile()
	require.NoError(t, err)
	first.RecordSample(10000)
	first.RecordSample(18500)
	require.NoError(t, first.PeriodicPersist())

	clock.now = day(2024, 3, 15)
	second := NewStore(backing, clock)
	result, err := second.Reconcile()
	require.NoError(t, err)

	assert.Equal(t, model.HistoryEntry{Date: "14.03.2024", Steps: 8500}, result.History[8])
	assert.Equal(t, 0, second.Counter().TotalDailySteps)
	assert.False(t, second.Counter().Baseline.Set)
	assert.Equal(t, 0, second.RecordSample(19000), "first reading of the new day is the zero point")
}

func TestStorePeriodicPersistDoesNotTouchHistory(t *testing.T) {
	store, backing, clock := newTestStore(t, day(2024, 3, 15))
	_, err := store.Reconcile()
	require.NoError(t, err)
	before := kv.WithPrefix(mustSnapshot(t, backing), constants.HistoryKeyPrefix)

	store.RecordSample(100)
	store.RecordSample(350)
	clock.now = clock.now.Add(3 * time.Minute)
	require.NoError(t, store.PeriodicPersist())

	values := mustSnapshot(t, backing)
	assert.Equal(t, before, kv.WithPrefix(values, constants.HistoryKeyPrefix))
	assert.Equal(t, 250, kv.Int(values, constants.TotalDailyStepsKey, -1))
	baseline, ok := kv.Float(values, constants.DayResetInitialStepsKey)
	assert.True(t, ok)
	assert.Equal(t, 100.0, baseline)
}

func TestStorePeriodicPersistAcrossMidnightStampsNewDate(t *testing.T) {
	store, backing, clock := newTestStore(t, time.Date(2024, 3, 15, 23, 58, 0, 0, time.UTC))
	_, err := store.Reconcile()
	require.NoError(t, err)
	store.RecordSample(0)
	store.RecordSample(700)

	clock.now = time.Date(2024, 3, 16, 0, 1, 0, 0, time.UTC)
	require.NoError(t, store.PeriodicPersist())

	// The running total is saved under the new date; it is only split into
	// days again at the next start.
	values := mustSnapshot(t, backing)
	assert.Equal(t, "16.03.2024", kv.String(values, constants.LastSaveDateKey, ""))
	assert.Equal(t, 700, kv.Int(values, constants.TotalDailyStepsKey, 0))
	assert.NotContains(t, values, constants.HistoryKey("16.03.2024"))
}

func TestStoreResults(t *testing.T) {
	backing := kv.NewMemoryStore()
	clock := &manualClock{now: day(2024, 3, 15)}

	store := NewStore(backing, clock)
	assert.Equal(t, model.EmptySessionResults(), store.Results())
	_, err := store.Reconcile()
	require.NoError(t, err)

	results := store.Results()
	results.Push("00:05:00 - 500 шагов")
	require.NoError(t, store.SaveResults(results))

	reopened := NewStore(backing, clock)
	_, err = reopened.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, model.SessionResults{Last: "00:05:00 - 500 шагов", Previous: constants.NoResultText}, reopened.Results())
}

func TestStoreReconcileWriteFailureStillReturnsResult(t *testing.T) {
	boom := errors.New("disk full")
	store := NewStore(&failingStore{applyErr: boom}, util.ClockFunc(func() time.Time { return day(2024, 3, 15) }))

	result, err := store.Reconcile()
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Len(t, result.History, constants.HistoryRetentionDays)
	assert.Equal(t, "15.03.2024", store.Counter().LastSaveDate)
}

func TestStoreReconcileReadFailureStartsEmpty(t *testing.T) {
	store := NewStore(&failingStore{snapshotErr: errors.New("permission denied")}, util.ClockFunc(func() time.Time { return day(2024, 3, 15) }))

	result, err := store.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, model.DailyCounterState{LastSaveDate: "15.03.2024"}, result.Counter)
}

func TestStoreClear(t *testing.T) {
	store, backing, _ := newTestStore(t, day(2024, 3, 15))
	_, err := store.Reconcile()
	require.NoError(t, err)
	store.RecordSample(10)

	require.NoError(t, store.Clear())
	assert.Empty(t, mustSnapshot(t, backing))
	assert.Equal(t, model.DailyCounterState{}, store.Counter())
}
