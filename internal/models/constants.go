package models

// ============================================================================
// COLUMN CONSTANTS
// ============================================================================

// Column identifiers of the reference three-column board
const (
	ColumnTodo       ColumnID = "column-1"
	ColumnInProgress ColumnID = "column-2"
	ColumnDone       ColumnID = "column-3"
)

// DefaultTerminalColumn is the column whose size counts as "completed"
const DefaultTerminalColumn = ColumnDone

// ============================================================================
// VALIDATION LIMITS
// ============================================================================

// MaxContentLength is the longest task content accepted (in runes)
const MaxContentLength = 1000

// MaxColumnTitleLength is the longest column title accepted (in runes)
const MaxColumnTitleLength = 50
