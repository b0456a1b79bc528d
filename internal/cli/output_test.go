package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// ============================================================================
// Mock Types for Testing
// ============================================================================

type mockDataWithID struct {
	ID   string
	Name string
}

func (m mockDataWithID) GetID() string {
	return m.ID
}

type mockDataWithoutID struct {
	Name  string
	Value int
}

type mockRenderer struct{}

func (mockRenderer) Render() string { return "rendered" }

func newTestFormatter(jsonMode, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &OutputFormatter{JSON: jsonMode, Quiet: quiet, Out: &out, Err: &errOut}, &out, &errOut
}

// ============================================================================
// Success Method Tests
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	tests := []struct {
		name     string
		data     interface{}
		validate func(t *testing.T, result map[string]interface{})
	}{
		{
			name: "map data",
			data: map[string]interface{}{"test": "value"},
			validate: func(t *testing.T, result map[string]interface{}) {
				dataMap := result["data"].(map[string]interface{})
				if dataMap["test"] != "value" {
					t.Errorf("Expected data.test to be 'value', got %v", dataMap["test"])
				}
			},
		},
		{
			name: "struct with ID",
			data: mockDataWithID{ID: "task-1", Name: "Test"},
			validate: func(t *testing.T, result map[string]interface{}) {
				dataMap := result["data"].(map[string]interface{})
				if dataMap["Name"] != "Test" {
					t.Errorf("Expected data.Name to be 'Test', got %v", dataMap["Name"])
				}
			},
		},
		{
			name: "nil data",
			data: nil,
			validate: func(t *testing.T, result map[string]interface{}) {
				if result["data"] != nil {
					t.Errorf("Expected data to be nil, got %v", result["data"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter, out, _ := newTestFormatter(true, false)

			if err := formatter.Success(tt.data); err != nil {
				t.Fatalf("Success() returned error: %v", err)
			}

			var result map[string]interface{}
			if err := json.Unmarshal(out.Bytes(), &result); err != nil {
				t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, out.String())
			}
			if result["success"] != true {
				t.Error("Expected success to be true")
			}
			tt.validate(t, result)
		})
	}
}

func TestOutputFormatter_Success_Quiet(t *testing.T) {
	formatter, out, _ := newTestFormatter(false, true)
	if err := formatter.Success(mockDataWithID{ID: "task-7"}); err != nil {
		t.Fatalf("Success() returned error: %v", err)
	}
	if out.String() != "task-7\n" {
		t.Errorf("Expected 'task-7\\n', got %q", out.String())
	}

	formatter, out, _ = newTestFormatter(false, true)
	if err := formatter.Success(mockDataWithoutID{Name: "x"}); err != nil {
		t.Fatalf("Success() returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output without an ID, got %q", out.String())
	}
}

func TestOutputFormatter_QuietTakesPrecedenceOverJSON(t *testing.T) {
	formatter, out, _ := newTestFormatter(true, true)
	if err := formatter.Success(mockDataWithID{ID: "task-9"}); err != nil {
		t.Fatalf("Success() returned error: %v", err)
	}
	if out.String() != "task-9\n" {
		t.Errorf("Expected quiet output, got %q", out.String())
	}
}

func TestOutputFormatter_Success_HumanReadable(t *testing.T) {
	formatter, out, _ := newTestFormatter(false, false)
	if err := formatter.Success(mockRenderer{}); err != nil {
		t.Fatalf("Success() returned error: %v", err)
	}
	if out.String() != "rendered\n" {
		t.Errorf("Expected Render() output, got %q", out.String())
	}

	formatter, out, _ = newTestFormatter(false, false)
	if err := formatter.Success(mockDataWithoutID{Name: "plain", Value: 3}); err != nil {
		t.Fatalf("Success() returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Name:plain") {
		t.Errorf("Expected %%+v output, got %q", out.String())
	}
}

// ============================================================================
// Error Method Tests
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion_JSON(t *testing.T) {
	formatter, out, errOut := newTestFormatter(true, false)
	if err := formatter.ErrorWithSuggestion("NOT_FOUND", "task \"x\" not found", "Run 'taskflow board show'"); err != nil {
		t.Fatalf("ErrorWithSuggestion() returned error: %v", err)
	}
	if errOut.Len() != 0 {
		t.Errorf("JSON errors go to stdout, stderr got %q", errOut.String())
	}

	var result map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if result["success"] != false {
		t.Error("Expected success to be false")
	}
	errData := result["error"].(map[string]interface{})
	if errData["code"] != "NOT_FOUND" {
		t.Errorf("Expected code NOT_FOUND, got %v", errData["code"])
	}
	if errData["suggestion"] != "Run 'taskflow board show'" {
		t.Errorf("Unexpected suggestion %v", errData["suggestion"])
	}
}

func TestOutputFormatter_Error_OmitsEmptySuggestion(t *testing.T) {
	formatter, out, _ := newTestFormatter(true, false)
	if err := formatter.Error("ERROR", "boom"); err != nil {
		t.Fatalf("Error() returned error: %v", err)
	}
	if strings.Contains(out.String(), "suggestion") {
		t.Errorf("Expected no suggestion key, got %s", out.String())
	}
}

func TestOutputFormatter_ErrorWithSuggestion_HumanReadable(t *testing.T) {
	formatter, out, errOut := newTestFormatter(false, false)
	if err := formatter.ErrorWithSuggestion("USAGE_ERROR", "bad flag", "try --help"); err != nil {
		t.Fatalf("ErrorWithSuggestion() returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Human errors go to stderr, stdout got %q", out.String())
	}
	want := "❌ Error: bad flag\n💡 Suggestion: try --help\n"
	if errOut.String() != want {
		t.Errorf("Expected %q, got %q", want, errOut.String())
	}
}

// ============================================================================
// Fail
// ============================================================================

func TestOutputFormatter_Fail(t *testing.T) {
	formatter, _, errOut := newTestFormatter(false, false)

	err := formatter.Fail(ErrUsage)
	if ExitCode(err) != ExitUsage {
		t.Errorf("Expected exit code %d, got %d", ExitUsage, ExitCode(err))
	}
	if !errors.Is(err, ErrUsage) {
		t.Error("Expected the original error to stay reachable")
	}
	if !strings.Contains(errOut.String(), "invalid usage") {
		t.Errorf("Expected the message on stderr, got %q", errOut.String())
	}

	errOut.Reset()
	again := formatter.Fail(err)
	if again != err {
		t.Error("Expected an existing CommandError to pass through")
	}
	if errOut.Len() != 0 {
		t.Error("Expected a CommandError not to be reported twice")
	}
}
