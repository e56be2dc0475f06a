package interpret

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resultSchema validates the success shape the model is instructed to emit.
// Requires structure and types only, so the
// interpreter still returns exactly what the model produced.
const resultSchema = `{
  "type": "object",
  "required": ["topics", "summary"],
  "properties": {
    "topics": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "confidence"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "confidence": {"type": "number", "minimum": 0, "maximum": 100},
          "effort": {"enum": ["Low", "Medium", "High"]},
          "reward": {"enum": ["Low", "Medium", "High"]},
          "priority": {"enum": ["Low", "Medium", "High"]},
          "frequency": {"type": "number", "minimum": 0},
          "keyConcepts": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "summary": {
      "type": "object",
      "properties": {
        "totalTopics": {"type": "number"},
        "highPriorityCount": {"type": "number"},
        "lowEffortHighReward": {"type": "number"}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("analysis_result.json", strings.NewReader(resultSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("analysis_result.json")
	})
	return compiledSchema, schemaErr
}

func validateResultShape(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return err
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("result does not match expected shape: %w", err)
	}
	return nil
}
