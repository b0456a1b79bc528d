// Package task implements the task mutations of the board: add, delete and
// edit. Every operation takes the current board and returns the next one;
// the input board is never modified.
package task

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/thenoetrevino/taskflow/internal/models"
	"github.com/thenoetrevino/taskflow/internal/types"
)

// maxIDAttempts bounds how often AddTask re-draws an id that is already in use
const maxIDAttempts = 8

// AddTaskRequest encapsulates all data needed to create a task
type AddTaskRequest struct {
	Content  string          `validate:"nonblank,max=1000"`
	Priority models.Priority `validate:"required,oneof=high medium low"`
	DueDate  *time.Time      // Optional
}

// Service applies task mutations to boards
type Service struct {
	ids      types.IDGenerator
	validate *validator.Validate
	logger   *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger used for mutation diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new task service drawing ids from ids
func NewService(ids types.IDGenerator, opts ...Option) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return models.HasContent(fl.Field().String())
	})

	s := &Service{
		ids:      ids,
		validate: v,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTask creates a task and places it at the top of the board's first column.
// Rejected input yields a *models.ValidationError and the unchanged board.
func (s *Service) AddTask(board models.Board, req AddTaskRequest) (models.Board, error) {
	if err := s.validateAddTask(req); err != nil {
		return board, err
	}

	firstID, ok := board.FirstColumn()
	if !ok {
		return board, ErrNoColumns
	}
	first, ok := board.Column(firstID)
	if !ok {
		return board, fmt.Errorf("first column %q: %w", firstID, ErrNoColumns)
	}

	id, err := s.allocateID(board)
	if err != nil {
		return board, err
	}

	task := models.Task{
		ID:       id,
		Content:  strings.TrimSpace(req.Content),
		Priority: req.Priority,
	}
	if req.DueDate != nil {
		due := req.DueDate.UTC()
		task.DueDate = &due
	}

	first.TaskIDs = slices.Insert(slices.Clone(first.TaskIDs), 0, id)

	s.logger.Debug("task added", "task_id", id, "column_id", firstID, "priority", task.Priority)
	return board.PutTask(task).PutColumn(first).Bump(), nil
}

// DeleteTask removes taskID from column columnID and from the task mapping.
// Nothing happens when the column does not list the task.
func (s *Service) DeleteTask(board models.Board, taskID string, columnID models.ColumnID) models.Board {
	col, ok := board.Column(columnID)
	if !ok {
		s.logReference(&models.ReferenceError{Kind: models.RefColumn, ID: string(columnID)})
		return board
	}
	idx := col.IndexOf(taskID)
	if idx < 0 {
		s.logReference(&models.ReferenceError{Kind: models.RefTask, ID: taskID})
		return board
	}

	col.TaskIDs = slices.Delete(slices.Clone(col.TaskIDs), idx, idx+1)

	s.logger.Debug("task deleted", "task_id", taskID, "column_id", columnID)
	return board.PutColumn(col).RemoveTask(taskID).Bump()
}

// EditTaskContent replaces the content of taskID. Content that is blank once
// trimmed deletes the task from whichever column holds it. Unknown tasks and
// unchanged content leave the board as it is; content over the length limit
// is rejected with a *models.ValidationError.
func (s *Service) EditTaskContent(board models.Board, taskID, newContent string) (models.Board, error) {
	task, ok := board.Task(taskID)
	if !ok {
		s.logReference(&models.ReferenceError{Kind: models.RefTask, ID: taskID})
		return board, nil
	}

	if !models.HasContent(newContent) {
		columnID, _, placed := board.ColumnOf(taskID)
		if !placed {
			// not listed anywhere; drop the orphaned mapping entry
			return board.RemoveTask(taskID).Bump(), nil
		}
		return s.DeleteTask(board, taskID, columnID), nil
	}

	content := strings.TrimSpace(newContent)
	if err := s.validate.Var(content, "max=1000"); err != nil {
		return board, &models.ValidationError{Field: "content", Reason: fmt.Sprintf("cannot exceed %d characters", models.MaxContentLength)}
	}
	if content == task.Content {
		return board, nil
	}

	task.Content = content
	s.logger.Debug("task edited", "task_id", taskID)
	return board.PutTask(task).Bump(), nil
}

// validateAddTask checks an AddTaskRequest and converts validator failures
// into a *models.ValidationError naming the first offending field.
func (s *Service) validateAddTask(req AddTaskRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &models.ValidationError{Field: "task", Reason: err.Error()}
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "nonblank", "required":
		return &models.ValidationError{Field: field, Reason: "is required"}
	case "max":
		return &models.ValidationError{Field: field, Reason: fmt.Sprintf("cannot exceed %s characters", fe.Param())}
	case "oneof":
		return &models.ValidationError{Field: field, Reason: "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")}
	default:
		return &models.ValidationError{Field: field, Reason: "failed " + fe.Tag()}
	}
}

// allocateID draws ids until one is not already on the board
func (s *Service) allocateID(board models.Board) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.ids.NewID()
		if id == "" {
			continue
		}
		if _, taken := board.Task(id); !taken {
			return id, nil
		}
		s.logger.Warn("id generator returned an id already in use", "task_id", id, "attempt", attempt+1)
	}
	return "", ErrIDExhausted
}

func (s *Service) logReference(err *models.ReferenceError) {
	s.logger.Debug("mutation ignored", "error", err)
}
