package content

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

type documentSchema struct {
	Name       string
	Definition string
}

var quizSchema = documentSchema{
	Name: "quiz",
	Definition: `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "title": {"type": "string"},
    "description": {"type": "string"},
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["q_id", "question_type", "correct_answer", "points"],
        "properties": {
          "q_id": {"type": ["string", "integer"]},
          "title": {"type": "string"},
          "img": {"type": "string"},
          "question_type": {
            "enum": ["mutiplechoice-single", "mutiplechoice-multiple", "multiplechoice-single", "multiplechoice-multiple", "truefalse"]
          },
          "possible_answers": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["a_id", "caption"],
              "properties": {
                "a_id": {"type": ["string", "integer", "boolean"]},
                "caption": {"type": "string"}
              }
            }
          },
          "correct_answer": {
            "anyOf": [
              {"type": ["string", "integer", "boolean"]},
              {"type": "array", "minItems": 1, "items": {"type": ["string", "integer", "boolean"]}}
            ]
          },
          "points": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`,
}

var resultsSchema = documentSchema{
	Name: "results",
	Definition: `{
  "type": "object",
  "required": ["results"],
  "properties": {
    "results": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["minpoints", "maxpoints", "title"],
        "properties": {
          "r_id": {"type": ["string", "integer"]},
          "minpoints": {"type": "integer", "minimum": 0, "maximum": 100},
          "maxpoints": {"type": "integer", "minimum": 0, "maximum": 100},
          "title": {"type": "string"},
          "message": {"type": "string"},
          "img": {"type": "string"}
        }
      }
    }
  }
}`,
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateDocument checks raw JSON against schema.
func validateDocument(schema documentSchema, raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid %s JSON: %w", schema.Name, err)
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("%s schema validation failed: %w", schema.Name, err)
	}
	return nil
}

func compiledSchema(schema documentSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, err := jsonschema.UnmarshalJSON(strings.NewReader(schema.Definition))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
