// Package catalog ingests recipe documents: serialized composite-action
// definitions with one or more alternative branches of primitive descriptors.
// Documents are schema-validated before construction; unknown action kinds
// degrade to the registry fallback rather than aborting ingestion.
package catalog

// Recipe is the deserialized form of one composite-action definition.
type Recipe struct {
	Name        string   `json:"name" yaml:"name" mapstructure:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Branches    []Branch `json:"branches" yaml:"branches" mapstructure:"branches"`
}

// Branch is one labeled alternative route through the recipe's graph.
type Branch struct {
	Label string           `json:"label" yaml:"label" mapstructure:"label"`
	Steps []map[string]any `json:"steps" yaml:"steps" mapstructure:"steps"`
}

// recipeSchemaJSON is the JSON Schema for recipe document validation.
// Embedded as a constant to avoid filesystem dependencies.
const recipeSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://actiongraph.dev/schemas/recipe.json",
  "type": "object",
  "required": ["name", "branches"],
  "properties": {
    "name": {
      "type": "string",
      "minLength": 1
    },
    "description": {
      "type": "string"
    },
    "branches": {
      "type": "array",
      "minItems": 1,
      "items": { "$ref": "#/$defs/branch" }
    }
  },
  "additionalProperties": false,
  "$defs": {
    "branch": {
      "type": "object",
      "required": ["label", "steps"],
      "properties": {
        "label": {
          "type": "string",
          "minLength": 1
        },
        "steps": {
          "type": "array",
          "minItems": 1,
          "items": { "$ref": "#/$defs/step" }
        }
      },
      "additionalProperties": false
    },
    "step": {
      "type": "object",
      "required": ["kind"],
      "properties": {
        "kind": {
          "type": "string",
          "minLength": 1
        },
        "arguments": {
          "type": "object"
        }
      },
      "additionalProperties": true
    }
  }
}`
