package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/taskflow/internal/models"
	"github.com/thenoetrevino/taskflow/internal/services/analytics"
	"github.com/thenoetrevino/taskflow/internal/services/reorder"
	"github.com/thenoetrevino/taskflow/internal/services/search"
	taskservice "github.com/thenoetrevino/taskflow/internal/services/task"
	"github.com/thenoetrevino/taskflow/internal/types"
)

// Persister is what a Session needs from the persistence layer
type Persister interface {
	Save(board models.Board) error
	SaveTheme(ctx context.Context, theme models.Theme) error
}

// Session owns the current board. Every mutation computes the next board
// from the current one; an accepted result replaces it wholesale and is
// handed to the persister. Readers on other goroutines always see a whole
// board, never a partially updated one.
//
// A Session expects one mutator at a time; the mutex only guards the swap.
type Session struct {
	mu    sync.RWMutex
	board models.Board
	theme models.Theme

	tasks     *taskservice.Service
	persister Persister
	clock     types.Clock
	terminal  models.ColumnID
	logger    *slog.Logger
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithTheme sets the initial theme
func WithTheme(theme models.Theme) SessionOption {
	return func(s *Session) {
		if theme.Valid() {
			s.theme = theme
		}
	}
}

// WithSessionClock sets the time source for overdue checks
func WithSessionClock(clock types.Clock) SessionOption {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithTerminalColumn sets the column whose tasks count as completed
func WithTerminalColumn(id models.ColumnID) SessionOption {
	return func(s *Session) {
		s.terminal = id
	}
}

// WithSessionLogger sets the session logger
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession starts a session on board
func NewSession(board models.Board, tasks *taskservice.Service, persister Persister, opts ...SessionOption) *Session {
	s := &Session{
		board:     board,
		theme:     models.DefaultTheme,
		tasks:     tasks,
		persister: persister,
		clock:     types.SystemClock{},
		terminal:  models.DefaultTerminalColumn,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Board returns the current board
func (s *Session) Board() models.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// Theme returns the current theme
func (s *Session) Theme() models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Now returns the session clock's current time
func (s *Session) Now() time.Time {
	return s.clock.Now()
}

// ============================================================================
// MUTATIONS
// ============================================================================

// AddTask adds a task to the top of the first column
func (s *Session) AddTask(req taskservice.AddTaskRequest) (bool, error) {
	next, err := s.tasks.AddTask(s.Board(), req)
	if err != nil {
		return false, err
	}
	return s.commit(next)
}

// DeleteTask removes a task. An empty columnID means the column currently
// holding the task.
func (s *Session) DeleteTask(taskID string, columnID models.ColumnID) (bool, error) {
	board := s.Board()
	if columnID == "" {
		columnID, _, _ = board.ColumnOf(taskID)
	}
	return s.commit(s.tasks.DeleteTask(board, taskID, columnID))
}

// EditTaskContent replaces a task's content; blank content deletes the task
func (s *Session) EditTaskContent(taskID, content string) (bool, error) {
	next, err := s.tasks.EditTaskContent(s.Board(), taskID, content)
	if err != nil {
		return false, err
	}
	return s.commit(next)
}

// Drop applies the result of a drag gesture
func (s *Session) Drop(r reorder.Result) (bool, error) {
	next, transition := reorder.ApplyWithTransition(s.Board(), r)
	s.logger.Debug("drop", "type", string(r.Type), "id", r.DraggableID, "transition", transition.String())
	return s.commit(next)
}

// MoveTask moves a task to position index of column to
func (s *Session) MoveTask(taskID string, to models.ColumnID, index int) (bool, error) {
	next, _ := reorder.MoveTask(s.Board(), taskID, to, index)
	return s.commit(next)
}

// MoveColumn moves a column to position index of the column order
func (s *Session) MoveColumn(id models.ColumnID, index int) (bool, error) {
	next, _ := reorder.MoveColumn(s.Board(), id, index)
	return s.commit(next)
}

// commit installs next if it differs from the current board and hands it to
// the persister. A persister error is returned, but the new board stays.
func (s *Session) commit(next models.Board) (bool, error) {
	s.mu.Lock()
	if next.Version == s.board.Version {
		s.mu.Unlock()
		return false, nil
	}
	s.board = next
	s.mu.Unlock()

	if err := s.persister.Save(next); err != nil {
		s.logger.Warn("board not persisted", "version", next.Version, "error", err)
		return true, err
	}
	return true, nil
}

// ============================================================================
// PROJECTIONS
// ============================================================================

// Filter returns the current board with each column narrowed to tasks whose
// content contains term. The result must not be mutated or persisted.
func (s *Session) Filter(term string) models.Board {
	return search.FilterBoard(s.Board(), term)
}

// MatchCount returns how many placed tasks contain term, ignoring case
func (s *Session) MatchCount(term string) int {
	return search.MatchCount(s.Board(), term)
}

// Stats summarizes the current board
func (s *Session) Stats() analytics.Summary {
	return analytics.Summarize(s.Board(), s.terminal, s.clock.Now())
}

// ============================================================================
// THEME
// ============================================================================

// ToggleTheme flips between light and dark and persists the choice.
// The in-memory theme changes even if the write fails.
func (s *Session) ToggleTheme(ctx context.Context) (models.Theme, error) {
	s.mu.Lock()
	s.theme = s.theme.Toggled()
	theme := s.theme
	s.mu.Unlock()

	if err := s.persister.SaveTheme(ctx, theme); err != nil {
		s.logger.Warn("theme not persisted", "theme", string(theme), "error", err)
		return theme, err
	}
	return theme, nil
}
