package converters

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskflow/internal/models"
)

// ErrProjection is returned when asked to serialize a derived view
var ErrProjection = errors.New("refusing to serialize a board projection")

// BoardSnapshot is the persisted form of a board, stored as a single JSON
// document under the board key.
type BoardSnapshot struct {
	Tasks       map[string]TaskSnapshot   `json:"tasks"`
	Columns     map[string]ColumnSnapshot `json:"columns"`
	ColumnOrder []string                  `json:"columnOrder"`
	Version     int64                     `json:"version"`
}

// BoardToSnapshot converts a models.Board to its persisted form
func BoardToSnapshot(b models.Board) BoardSnapshot {
	s := BoardSnapshot{
		Tasks:       make(map[string]TaskSnapshot, len(b.Tasks)),
		Columns:     make(map[string]ColumnSnapshot, len(b.Columns)),
		ColumnOrder: make([]string, 0, len(b.ColumnOrder)),
		Version:     b.Version,
	}
	for id, t := range b.Tasks {
		s.Tasks[id] = TaskToSnapshot(t)
	}
	for id, c := range b.Columns {
		s.Columns[string(id)] = ColumnToSnapshot(c)
	}
	for _, id := range b.ColumnOrder {
		s.ColumnOrder = append(s.ColumnOrder, string(id))
	}
	return s
}

// BoardFromSnapshot converts a persisted snapshot into a models.Board and
// checks the board invariants.
func BoardFromSnapshot(s BoardSnapshot) (models.Board, error) {
	b := models.Board{
		Tasks:       make(map[string]models.Task, len(s.Tasks)),
		Columns:     make(map[models.ColumnID]models.Column, len(s.Columns)),
		ColumnOrder: make([]models.ColumnID, 0, len(s.ColumnOrder)),
		Version:     s.Version,
	}
	for key, ts := range s.Tasks {
		t, err := TaskFromSnapshot(ts)
		if err != nil {
			return models.Board{}, err
		}
		b.Tasks[key] = t
	}
	for key, cs := range s.Columns {
		b.Columns[models.ColumnID(key)] = ColumnFromSnapshot(cs)
	}
	for _, id := range s.ColumnOrder {
		b.ColumnOrder = append(b.ColumnOrder, models.ColumnID(id))
	}

	if err := b.Validate(); err != nil {
		return models.Board{}, err
	}
	return b, nil
}

// MarshalBoard serializes a canonical board to JSON
func MarshalBoard(b models.Board) ([]byte, error) {
	if b.IsProjection() {
		return nil, ErrProjection
	}
	return json.Marshal(BoardToSnapshot(b))
}

// UnmarshalBoard parses a JSON snapshot: the document shape is checked
// against the snapshot schema, then the decoded board against the invariants.
func UnmarshalBoard(data []byte) (models.Board, error) {
	if err := ValidateSnapshotJSON(data); err != nil {
		return models.Board{}, err
	}

	var s BoardSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return models.Board{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return BoardFromSnapshot(s)
}
