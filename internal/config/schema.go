package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrSchemaViolation indicates a config file that parses but does not
// conform to the schema.
var ErrSchemaViolation = errors.New("config schema violation")

// configSchema is the JSON Schema for the pinormal config file. Types
// are validated here; value ranges are enforced by Validate so the
// messages match the sentinel errors.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "engine": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "start_batch_terms": {"type": "integer", "minimum": 1},
        "max_batch_terms": {"type": "integer", "minimum": 1},
        "guard_digits": {"type": "integer", "minimum": 16},
        "max_digits": {"type": "integer", "minimum": 0}
      }
    },
    "stats": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "history_cap": {"type": "integer", "minimum": 1},
        "recent_window": {"type": "integer", "minimum": 201},
        "first_window": {"type": "integer", "minimum": 1}
      }
    },
    "display": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "refresh_ms": {"type": "integer", "minimum": 1},
        "no_color": {"type": "boolean"}
      }
    },
    "metrics": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "listen_addr": {"type": "string"}
      }
    }
  }
}`

// ValidateFile checks a YAML config file against the embedded schema
// and reports every violation, not just the first.
func ValidateFile(path string) error {
	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		return fmt.Errorf("read config: %w", readErr)
	}

	var doc map[string]any

	yamlErr := yaml.Unmarshal(raw, &doc)
	if yamlErr != nil {
		return fmt.Errorf("parse yaml: %w", yamlErr)
	}

	// gojsonschema validates JSON documents; round-trip the YAML tree.
	jsonDoc, marshalErr := json.Marshal(doc)
	if marshalErr != nil {
		return fmt.Errorf("convert config to json: %w", marshalErr)
	}

	result, validateErr := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(jsonDoc),
	)
	if validateErr != nil {
		return fmt.Errorf("validate config: %w", validateErr)
	}

	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(messages, "; "))
}
