package persistence

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskflow/internal/converters"
	"github.com/thenoetrevino/taskflow/internal/database"
	"github.com/thenoetrevino/taskflow/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var errBoom = errors.New("quota exceeded")

// flakyStore is a MemoryStore whose reads and writes can be made to fail
type flakyStore struct {
	*database.MemoryStore
	failGet atomic.Bool
	failSet atomic.Bool
	sets    atomic.Int64
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: database.NewMemoryStore()}
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.failGet.Load() {
		return nil, errBoom
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet.Load() {
		return errBoom
	}
	s.sets.Add(1)
	return s.MemoryStore.Set(ctx, key, value)
}

// slowStore is a MemoryStore whose writes take delay each
type slowStore struct {
	*database.MemoryStore
	delay time.Duration
}

func (s *slowStore) Set(ctx context.Context, key string, value []byte) error {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return s.MemoryStore.Set(ctx, key, value)
}

// syncBuffer is a bytes.Buffer safe for the writer goroutine to log into
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newAdapter returns an adapter whose debounce window never elapses during
// a test, so writes happen only on Flush or Close.
func newAdapter(t *testing.T, store database.KeyValueStore, opts ...Option) *Adapter {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger()), WithDebounce(time.Hour)}, opts...)
	a := New(store, opts...)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// boardWithTasks returns the default board with n tasks in the first column
// and the version bumped once per task
func boardWithTasks(n int) models.Board {
	b := models.DefaultBoard()
	for i := range n {
		id := string(rune('a' + i))
		b = b.PutTask(models.Task{ID: id, Content: "task " + id, Priority: models.PriorityMedium})
		col, _ := b.Column(models.ColumnTodo)
		col.TaskIDs = append([]string{id}, col.TaskIDs...)
		b = b.PutColumn(col).Bump()
	}
	return b
}

func storedBoard(t *testing.T, store database.KeyValueStore, key string) models.Board {
	t.Helper()
	data, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	b, err := converters.UnmarshalBoard(data)
	require.NoError(t, err)
	return b
}

// ============================================================================
// LOAD
// ============================================================================

func TestLoad_EmptyStoreSeeds(t *testing.T) {
	t.Parallel()
	a := newAdapter(t, database.NewMemoryStore())

	board, res := a.Load(context.Background())

	assert.Equal(t, SourceSeed, res.Source)
	assert.NoError(t, res.Err)
	assert.True(t, models.DefaultBoard().Equal(board))
}

func TestLoad_CustomSeed(t *testing.T) {
	t.Parallel()
	seed := func() models.Board {
		b, _ := models.NewBoard([]models.Column{{ID: "backlog", Title: "Backlog"}, {ID: "shipped", Title: "Shipped"}})
		return b
	}
	a := newAdapter(t, database.NewMemoryStore(), WithSeed(seed))

	board, _ := a.Load(context.Background())
	assert.Equal(t, []models.ColumnID{"backlog", "shipped"}, board.ColumnOrder)
}

func TestLoad_RoundTripThroughStore(t *testing.T) {
	t.Parallel()
	store := database.NewMemoryStore()
	a := newAdapter(t, store)
	want := boardWithTasks(3)

	require.NoError(t, a.Save(want))
	require.NoError(t, a.Flush(context.Background()))

	reopened := newAdapter(t, store)
	got, res := reopened.Load(context.Background())
	assert.Equal(t, SourceSnapshot, res.Source)
	assert.True(t, want.Equal(got))
}

func TestLoad_KeepsContentPastInputLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := database.NewMemoryStore()
	long := strings.Repeat("x", models.MaxContentLength+1)
	snapshot := `{
		"tasks": {
			"t1": {"id": "t1", "content": "` + long + `", "priority": "medium", "dueDate": null},
			"t2": {"id": "t2", "content": "keep me", "priority": "low", "dueDate": "2024-05-01T10:00:00.000Z"}
		},
		"columns": {
			"column-1": {"id": "column-1", "title": "To Do", "taskIds": ["t1"]},
			"column-2": {"id": "column-2", "title": "In Progress", "taskIds": ["t2"]},
			"column-3": {"id": "column-3", "title": "Done", "taskIds": []}
		},
		"columnOrder": ["column-1", "column-2", "column-3"]}`
	require.NoError(t, store.Set(ctx, DefaultBoardKey, []byte(snapshot)))
	a := newAdapter(t, store)

	board, res := a.Load(ctx)

	require.Equal(t, SourceSnapshot, res.Source, "load error: %v", res.Err)
	assert.NoError(t, res.Err)
	assert.Equal(t, 2, board.TaskCount())
	t1, ok := board.Task("t1")
	require.True(t, ok)
	assert.Equal(t, long, t1.Content)

	// the loaded board can be written back unchanged
	require.NoError(t, a.Save(board.Bump()))
	require.NoError(t, a.Flush(ctx))
	assert.True(t, board.Bump().Equal(storedBoard(t, store, DefaultBoardKey)))
}

func TestLoad_RecoversFromBadSnapshot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"tasks":`},
		{"wrong shape", `{"tasks": [], "columns": {}, "columnOrder": []}`},
		{"dangling reference", `{"tasks": {}, "columns": {"column-1": {"id": "column-1", "title": "To Do", "taskIds": ["ghost"]}}, "columnOrder": ["column-1"]}`},
		{"duplicate placement", `{
			"tasks": {"a": {"id": "a", "content": "x", "priority": "low", "dueDate": null}},
			"columns": {
				"column-1": {"id": "column-1", "title": "To Do", "taskIds": ["a"]},
				"column-2": {"id": "column-2", "title": "Done", "taskIds": ["a"]}
			},
			"columnOrder": ["column-1", "column-2"]}`},
		{"no columns", `{"tasks": {}, "columns": {}, "columnOrder": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := database.NewMemoryStore()
			require.NoError(t, store.Set(context.Background(), DefaultBoardKey, []byte(tt.data)))
			a := newAdapter(t, store)

			board, res := a.Load(context.Background())

			assert.Equal(t, SourceRecovered, res.Source)
			assert.ErrorIs(t, res.Err, ErrDeserialization)
			var derr *DeserializationError
			assert.ErrorAs(t, res.Err, &derr)
			assert.True(t, models.DefaultBoard().Equal(board))
		})
	}
}

func TestLoad_RecoversFromReadFailure(t *testing.T) {
	t.Parallel()
	store := newFlakyStore()
	store.failGet.Store(true)
	a := newAdapter(t, store)

	board, res := a.Load(context.Background())

	assert.Equal(t, SourceRecovered, res.Source)
	assert.ErrorIs(t, res.Err, ErrStorage)
	assert.ErrorIs(t, res.Err, errBoom)
	assert.True(t, models.DefaultBoard().Equal(board))
}

// ============================================================================
// SAVE
// ============================================================================

func TestSave_CoalescesWithinWindow(t *testing.T) {
	t.Parallel()
	store := newFlakyStore()
	a := newAdapter(t, store)

	for n := 1; n <= 3; n++ {
		require.NoError(t, a.Save(boardWithTasks(n)))
	}
	require.NoError(t, a.Flush(context.Background()))

	assert.Equal(t, int64(1), store.sets.Load(), "one write for three saves")
	assert.True(t, boardWithTasks(3).Equal(storedBoard(t, store, DefaultBoardKey)), "newest board wins")

	m := a.Metrics().Snapshot()
	assert.Equal(t, int64(1), m.Writes)
	assert.Equal(t, int64(2), m.Coalesced)
	assert.NotNil(t, m.LastWrite)
}

func TestSave_WritesAfterDebounce(t *testing.T) {
	t.Parallel()
	store := database.NewMemoryStore()
	a := New(store, WithLogger(quietLogger()), WithDebounce(10*time.Millisecond))
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.Save(boardWithTasks(1)))

	assert.Eventually(t, func() bool {
		_, err := store.Get(context.Background(), DefaultBoardKey)
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestSave_ZeroDebounceWritesImmediately(t *testing.T) {
	t.Parallel()
	store := newFlakyStore()
	a := New(store, WithLogger(quietLogger()), WithDebounce(0))
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.Save(boardWithTasks(2)))

	assert.Eventually(t, func() bool {
		return a.Metrics().Snapshot().Writes == 1
	}, time.Second, 5*time.Millisecond)
	assert.True(t, boardWithTasks(2).Equal(storedBoard(t, store, DefaultBoardKey)))
}

func TestSave_Rejects(t *testing.T) {
	t.Parallel()

	valid := boardWithTasks(2)
	broken := valid.WithColumnOrder(valid.ColumnOrder[:2])

	tests := []struct {
		name  string
		board models.Board
	}{
		{"projection", valid.Projected(valid.Columns)},
		{"no columns", models.Board{Tasks: map[string]models.Task{}, Columns: map[models.ColumnID]models.Column{}}},
		{"invariant violation", broken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newFlakyStore()
			a := newAdapter(t, store)

			err := a.Save(tt.board)
			assert.ErrorIs(t, err, ErrRejected)

			require.NoError(t, a.Flush(context.Background()))
			assert.Zero(t, store.sets.Load(), "nothing written")
			assert.Equal(t, int64(1), a.Metrics().Snapshot().Rejected)
		})
	}
}

func TestSave_WriteFailureIsReported(t *testing.T) {
	t.Parallel()
	store := newFlakyStore()
	store.failSet.Store(true)
	a := newAdapter(t, store)

	require.NoError(t, a.Save(boardWithTasks(1)), "failures surface on write, not on save")
	err := a.Flush(context.Background())

	assert.ErrorIs(t, err, ErrStorage)
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "write", serr.Op)
	assert.Equal(t, DefaultBoardKey, serr.Key)
	assert.Equal(t, int64(1), a.Metrics().Snapshot().WriteFailures)

	// the adapter keeps working once the store recovers
	store.failSet.Store(false)
	require.NoError(t, a.Save(boardWithTasks(2)))
	require.NoError(t, a.Flush(context.Background()))
	assert.Equal(t, int64(1), a.Metrics().Snapshot().Writes)
}

func TestSave_ConcurrentSavers(t *testing.T) {
	t.Parallel()
	store := newFlakyStore()
	a := newAdapter(t, store)

	var wg sync.WaitGroup
	for n := 1; n <= 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, a.Save(boardWithTasks(n)))
		}()
	}
	wg.Wait()
	require.NoError(t, a.Flush(context.Background()))

	m := a.Metrics().Snapshot()
	assert.Equal(t, int64(8), m.Writes+m.Coalesced)
	assert.NoError(t, storedBoard(t, store, DefaultBoardKey).Validate())
}

func TestSave_DoesNotWaitForSlowStore(t *testing.T) {
	t.Parallel()
	store := &slowStore{MemoryStore: database.NewMemoryStore(), delay: 500 * time.Millisecond}
	a := New(store, WithLogger(quietLogger()), WithDebounce(0))

	start := time.Now()
	for n := 1; n <= 40; n++ {
		require.NoError(t, a.Save(boardWithTasks(n%20+1)))
	}
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 200*time.Millisecond, "40 saves took %s", elapsed)

	require.NoError(t, a.Close())
	m := a.Metrics().Snapshot()
	assert.Equal(t, int64(40), m.Writes+m.Coalesced)
	assert.True(t, boardWithTasks(40%20+1).Equal(storedBoard(t, store, DefaultBoardKey)), "last save wins")
}

func TestSave_CustomKeys(t *testing.T) {
	t.Parallel()
	store := database.NewMemoryStore()
	a := newAdapter(t, store, WithKeys("board:team-1", ""))

	require.NoError(t, a.Save(boardWithTasks(1)))
	require.NoError(t, a.Flush(context.Background()))

	_, err := store.Get(context.Background(), DefaultBoardKey)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.True(t, boardWithTasks(1).Equal(storedBoard(t, store, "board:team-1")))
}

// ============================================================================
// CLOSE
// ============================================================================

func TestClose_FlushesPending(t *testing.T) {
	t.Parallel()
	store := database.NewMemoryStore()
	a := New(store, WithLogger(quietLogger()), WithDebounce(time.Hour))

	require.NoError(t, a.Save(boardWithTasks(2)))
	require.NoError(t, a.Close())
	require.NoError(t, a.Close(), "second close is a no-op")

	assert.True(t, boardWithTasks(2).Equal(storedBoard(t, store, DefaultBoardKey)))
	assert.ErrorIs(t, a.Save(boardWithTasks(3)), ErrClosed)
	assert.ErrorIs(t, a.Flush(context.Background()), ErrClosed)
}

func TestClose_ReportsFailedFinalWrite(t *testing.T) {
	t.Parallel()
	var logs syncBuffer
	store := newFlakyStore()
	store.failSet.Store(true)
	a := New(store, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))), WithDebounce(time.Hour))

	require.NoError(t, a.Save(boardWithTasks(1)))
	err := a.Close()

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, int64(1), a.Metrics().Snapshot().WriteFailures)
	assert.Contains(t, logs.String(), "failed to flush board on close")
	assert.Contains(t, logs.String(), "op=write")
}

func TestFlush_HonoursContext(t *testing.T) {
	t.Parallel()
	a := newAdapter(t, database.NewMemoryStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.Flush(ctx)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

// ============================================================================
// THEME
// ============================================================================

func TestTheme(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := database.NewMemoryStore()
	a := newAdapter(t, store)

	assert.Equal(t, models.ThemeDark, a.LoadTheme(ctx), "default")

	require.NoError(t, a.SaveTheme(ctx, models.ThemeLight))
	assert.Equal(t, models.ThemeLight, a.LoadTheme(ctx))
	raw, err := store.Get(ctx, DefaultThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", string(raw), "stored as a bare scalar")

	next, err := a.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, next)
	assert.Equal(t, models.ThemeDark, a.LoadTheme(ctx))

	assert.ErrorIs(t, a.SaveTheme(ctx, "sepia"), models.ErrValidation)
}

func TestTheme_Fallbacks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFlakyStore()
	a := newAdapter(t, store, WithDefaultTheme(models.ThemeLight))

	require.NoError(t, store.MemoryStore.Set(ctx, DefaultThemeKey, []byte("blue")))
	assert.Equal(t, models.ThemeLight, a.LoadTheme(ctx), "unknown value")

	store.failGet.Store(true)
	assert.Equal(t, models.ThemeLight, a.LoadTheme(ctx), "unreadable store")

	store.failGet.Store(false)
	store.failSet.Store(true)
	next, err := a.ToggleTheme(ctx)
	assert.Equal(t, models.ThemeDark, next, "toggle still yields the new theme")
	assert.ErrorIs(t, err, ErrStorage)
}

func TestLoadSource_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "snapshot", SourceSnapshot.String())
	assert.Equal(t, "seed", SourceSeed.String())
	assert.Equal(t, "recovered", SourceRecovered.String())
	assert.Equal(t, "LoadSource(9)", LoadSource(9).String())
}
