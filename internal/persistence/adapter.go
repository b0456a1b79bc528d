// Package persistence loads the board snapshot at startup and writes it back,
// debounced, after every accepted mutation. Writes are best-effort: a failing
// store is logged and counted but never affects the in-memory board.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/taskflow/internal/converters"
	"github.com/thenoetrevino/taskflow/internal/database"
	"github.com/thenoetrevino/taskflow/internal/models"
)

// Default storage keys, shared with the browser build of the board
const (
	DefaultBoardKey = "kanbanBoard"
	DefaultThemeKey = "theme"
)

const (
	defaultDebounce     = 100 * time.Millisecond
	defaultWriteTimeout = 5 * time.Second
)

// LoadSource tells where the board returned by Load came from
type LoadSource int

const (
	// SourceSnapshot means the persisted snapshot was valid and used
	SourceSnapshot LoadSource = iota
	// SourceSeed means nothing was persisted yet
	SourceSeed
	// SourceRecovered means the snapshot was unreadable or invalid and the seed was used
	SourceRecovered
)

func (s LoadSource) String() string {
	switch s {
	case SourceSnapshot:
		return "snapshot"
	case SourceSeed:
		return "seed"
	case SourceRecovered:
		return "recovered"
	}
	return fmt.Sprintf("LoadSource(%d)", int(s))
}

// LoadResult describes the outcome of Load. Err is a *StorageError or
// *DeserializationError when Source is SourceRecovered.
type LoadResult struct {
	Source LoadSource
	Err    error
}

// Adapter serializes boards to a database.KeyValueStore.
// It holds no board of its own beyond the snapshot waiting to be written.
type Adapter struct {
	store        database.KeyValueStore
	boardKey     string
	themeKey     string
	seed         func() models.Board
	defaultTheme models.Theme
	debounce     time.Duration
	writeTimeout time.Duration
	logger       *slog.Logger
	metrics      *Metrics

	mu       sync.Mutex
	closed   bool
	pending  *models.Board
	closeErr error

	signal  chan struct{}
	flushes chan chan error
	stop    chan struct{}
	done    chan struct{}
}

// Option configures an Adapter
type Option func(*Adapter)

// WithLogger sets the logger for storage failures
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithDebounce sets the write debounce window. Zero writes every save immediately.
func WithDebounce(d time.Duration) Option {
	return func(a *Adapter) {
		a.debounce = d
	}
}

// WithKeys overrides the board and theme storage keys
func WithKeys(boardKey, themeKey string) Option {
	return func(a *Adapter) {
		if boardKey != "" {
			a.boardKey = boardKey
		}
		if themeKey != "" {
			a.themeKey = themeKey
		}
	}
}

// WithSeed sets the constructor for the board used when nothing valid is stored
func WithSeed(seed func() models.Board) Option {
	return func(a *Adapter) {
		a.seed = seed
	}
}

// WithDefaultTheme sets the theme used when none is stored
func WithDefaultTheme(t models.Theme) Option {
	return func(a *Adapter) {
		if t.Valid() {
			a.defaultTheme = t
		}
	}
}

// WithWriteTimeout bounds each store write
func WithWriteTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		a.writeTimeout = d
	}
}

// New creates an Adapter and starts its writer goroutine. Call Close to
// flush the pending snapshot and stop it; the store itself stays open.
func New(store database.KeyValueStore, opts ...Option) *Adapter {
	a := &Adapter{
		store:        store,
		boardKey:     DefaultBoardKey,
		themeKey:     DefaultThemeKey,
		seed:         models.DefaultBoard,
		defaultTheme: models.DefaultTheme,
		debounce:     defaultDebounce,
		writeTimeout: defaultWriteTimeout,
		logger:       slog.Default(),
		metrics:      NewMetrics(),
		signal:       make(chan struct{}, 1),
		flushes:      make(chan chan error),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	go a.startWriter()
	return a
}

// Metrics returns the adapter's counters
func (a *Adapter) Metrics() *Metrics {
	return a.metrics
}

// ============================================================================
// LOAD
// ============================================================================

// Load reads the persisted board. It never fails: a missing, unreadable or
// invalid snapshot yields the seed board, with the reason in the LoadResult.
func (a *Adapter) Load(ctx context.Context) (models.Board, LoadResult) {
	data, err := a.store.Get(ctx, a.boardKey)
	if errors.Is(err, database.ErrNotFound) {
		return a.seed(), LoadResult{Source: SourceSeed}
	}
	if err != nil {
		serr := &StorageError{Op: "read", Key: a.boardKey, Err: err}
		a.logger.Warn("failed to read board, starting from seed", "key", a.boardKey, "op", "read", "error", err)
		return a.seed(), LoadResult{Source: SourceRecovered, Err: serr}
	}

	board, err := converters.UnmarshalBoard(data)
	if err == nil && len(board.ColumnOrder) == 0 {
		err = errors.New("board has no columns")
	}
	if err != nil {
		derr := &DeserializationError{Err: err}
		a.logger.Warn("persisted board rejected, starting from seed", "key", a.boardKey, "reason", err)
		return a.seed(), LoadResult{Source: SourceRecovered, Err: derr}
	}

	a.logger.Debug("board loaded", "key", a.boardKey, "tasks", board.TaskCount(), "version", board.Version)
	return board, LoadResult{Source: SourceSnapshot}
}

// ============================================================================
// SAVE
// ============================================================================

// Save hands board to the debounced writer and returns without waiting on
// the store. Projections, boards without columns and boards breaking an
// invariant are refused with ErrRejected. A board still waiting to be
// written is replaced by the newer one and counted as coalesced.
func (a *Adapter) Save(board models.Board) error {
	if err := checkPersistable(board); err != nil {
		a.metrics.incRejected()
		a.logger.Warn("refusing to persist board", "version", board.Version, "reason", err)
		return err
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	if a.pending != nil {
		a.metrics.incCoalesced()
	}
	a.pending = &board
	a.mu.Unlock()

	select {
	case a.signal <- struct{}{}:
	default:
	}
	return nil
}

func checkPersistable(board models.Board) error {
	if board.IsProjection() {
		return fmt.Errorf("%w: %w", ErrRejected, converters.ErrProjection)
	}
	if len(board.ColumnOrder) == 0 {
		return fmt.Errorf("%w: board has no columns", ErrRejected)
	}
	if err := board.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return nil
}

// Flush writes the pending snapshot, if any, before returning
func (a *Adapter) Flush(ctx context.Context) error {
	a.mu.Lock()
	closed := a.closed
	a.mu.Unlock()
	if closed {
		return ErrClosed
	}

	reply := make(chan error, 1)
	select {
	case a.flushes <- reply:
	case <-a.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes the pending snapshot and stops the writer, returning the
// error of that final write. It is safe to call more than once.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	close(a.stop)
	<-a.done
	return a.closeErr
}

// takePending removes and returns the board waiting to be written
func (a *Adapter) takePending() (models.Board, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		return models.Board{}, false
	}
	b := *a.pending
	a.pending = nil
	return b, true
}

func (a *Adapter) writePending() error {
	b, ok := a.takePending()
	if !ok {
		return nil
	}
	return a.write(b)
}

// startWriter runs in a goroutine and writes the newest saved board every
// debounce interval, or on every signal when there is no debounce.
func (a *Adapter) startWriter() {
	defer close(a.done)

	var tick <-chan time.Time
	if a.debounce > 0 {
		ticker := time.NewTicker(a.debounce)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-a.signal:
			if tick == nil {
				_ = a.writePending()
			}

		case <-tick:
			_ = a.writePending()

		case reply := <-a.flushes:
			reply <- a.writePending()

		case <-a.stop:
			if err := a.writePending(); err != nil {
				a.logger.Warn("failed to flush board on close", "key", a.boardKey, "error", err)
				a.closeErr = err
			}
			return
		}
	}
}

func (a *Adapter) write(board models.Board) error {
	data, err := converters.MarshalBoard(board)
	if err != nil {
		a.metrics.incWriteFailures()
		a.logger.Warn("failed to encode board", "key", a.boardKey, "op", "encode", "version", board.Version, "error", err)
		return &StorageError{Op: "encode", Key: a.boardKey, Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.writeTimeout)
	defer cancel()

	if err := a.store.Set(ctx, a.boardKey, data); err != nil {
		a.metrics.incWriteFailures()
		a.logger.Warn("failed to persist board", "key", a.boardKey, "op", "write", "error", err)
		return &StorageError{Op: "write", Key: a.boardKey, Err: err}
	}

	a.metrics.incWrites(time.Now())
	a.logger.Debug("board persisted", "key", a.boardKey, "version", board.Version, "bytes", len(data))
	return nil
}

// ============================================================================
// THEME
// ============================================================================

// LoadTheme returns the stored theme, or the default when none is stored,
// the stored value is unknown, or the store cannot be read.
func (a *Adapter) LoadTheme(ctx context.Context) models.Theme {
	data, err := a.store.Get(ctx, a.themeKey)
	if errors.Is(err, database.ErrNotFound) {
		return a.defaultTheme
	}
	if err != nil {
		a.logger.Warn("failed to read theme", "key", a.themeKey, "op", "read", "error", err)
		return a.defaultTheme
	}

	theme := models.Theme(data)
	if !theme.Valid() {
		a.logger.Debug("ignoring unknown theme", "key", a.themeKey, "value", string(data))
		return a.defaultTheme
	}
	return theme
}

// SaveTheme writes the theme immediately
func (a *Adapter) SaveTheme(ctx context.Context, theme models.Theme) error {
	if !theme.Valid() {
		return &models.ValidationError{Field: "theme", Reason: "must be light or dark"}
	}
	if err := a.store.Set(ctx, a.themeKey, []byte(theme)); err != nil {
		a.logger.Warn("failed to persist theme", "key", a.themeKey, "op", "write", "error", err)
		return &StorageError{Op: "write", Key: a.themeKey, Err: err}
	}
	return nil
}

// ToggleTheme flips the stored theme and returns the new value. On a write
// failure the new value is still returned alongside the StorageError.
func (a *Adapter) ToggleTheme(ctx context.Context) (models.Theme, error) {
	next := a.LoadTheme(ctx).Toggled()
	return next, a.SaveTheme(ctx, next)
}
