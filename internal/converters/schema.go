package converters

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrSchema wraps every snapshot shape violation
var ErrSchema = errors.New("snapshot does not match schema")

const snapshotSchemaURL = "taskflow://schemas/board.json"

const snapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["tasks", "columns", "columnOrder"],
  "properties": {
    "tasks": {
      "type": "object",
      "additionalProperties": {"$ref": "#/definitions/task"}
    },
    "columns": {
      "type": "object",
      "additionalProperties": {"$ref": "#/definitions/column"}
    },
    "columnOrder": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "version": {"type": "integer", "minimum": 0}
  },
  "definitions": {
    "task": {
      "type": "object",
      "required": ["id", "content", "priority"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "content": {"type": "string"},
        "priority": {"enum": ["high", "medium", "low"]},
        "dueDate": {
          "oneOf": [
            {"type": "null"},
            {"type": "string", "format": "date-time"}
          ]
        }
      }
    },
    "column": {
      "type": "object",
      "required": ["id", "title", "taskIds"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string"},
        "taskIds": {"type": "array", "items": {"type": "string", "minLength": 1}}
      }
    }
  }
}`

var boardSchema = compileSnapshotSchema()

func compileSnapshotSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchema)); err != nil {
		panic(fmt.Sprintf("snapshot schema: %v", err))
	}
	return compiler.MustCompile(snapshotSchemaURL)
}

// ValidateSnapshotJSON checks that data is a JSON document shaped like a
// board snapshot. It reports the first leaf violation with its JSON path.
func ValidateSnapshotJSON(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrSchema, err)
	}

	err := boardSchema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	leaf := firstLeaf(ve)
	path := leaf.InstanceLocation
	if path == "" {
		path = "/"
	}
	return fmt.Errorf("%w: %s: %s", ErrSchema, path, leaf.Message)
}

// firstLeaf descends to the most specific cause of a validation error
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
