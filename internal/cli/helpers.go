package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/taskflow/internal/config"
	"github.com/thenoetrevino/taskflow/internal/database"
	"github.com/thenoetrevino/taskflow/internal/models"
	"github.com/thenoetrevino/taskflow/internal/persistence"
)

// ErrUsage marks invalid flag combinations
var ErrUsage = errors.New("invalid usage")

// ClassifyError maps an error to its output code and process exit code
func ClassifyError(err error) (string, int) {
	switch {
	case errors.Is(err, ErrUsage):
		return "USAGE_ERROR", ExitUsage
	case errors.Is(err, models.ErrValidation):
		return "VALIDATION_ERROR", ExitValidation
	case errors.Is(err, models.ErrReference):
		return "NOT_FOUND", ExitNotFound
	case errors.Is(err, config.ErrInvalid), errors.Is(err, persistence.ErrDeserialization):
		return "DATA_ERROR", ExitDataErr
	case errors.Is(err, persistence.ErrStorage), errors.Is(err, database.ErrUnknownBackend):
		return "STORAGE_ERROR", ExitError
	}
	return "ERROR", ExitError
}

// ParseDueDate accepts YYYY-MM-DD (midnight UTC) or an RFC 3339 timestamp.
// An empty string means no due date.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, &models.ValidationError{
		Field:  "due date",
		Reason: fmt.Sprintf("%q is not YYYY-MM-DD or RFC 3339", s),
	}
}

// RequireTask returns a ReferenceError when the board has no task id
func RequireTask(board models.Board, id string) error {
	if _, ok := board.Task(id); !ok {
		return &models.ReferenceError{Kind: models.RefTask, ID: id}
	}
	return nil
}

// RequireColumn returns a ReferenceError when the board has no column id
func RequireColumn(board models.Board, id models.ColumnID) error {
	if _, ok := board.Column(id); !ok {
		return &models.ReferenceError{Kind: models.RefColumn, ID: string(id)}
	}
	return nil
}
