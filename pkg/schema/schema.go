// pkg/schema/schema.go

// Package schema owns the JSON Schema describing content documents as
// they arrive from external indexes. Consumers validate documents
// against it before admitting them to the scoring pipeline.
package schema

import (
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// ContentDocument is the built-in schema for one indexed content item.
// id, sourceId and createdAt are required; everything else defaults.
const ContentDocument = `{
	"type": "object",
	"required": ["id", "sourceId", "createdAt"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"sourceId": {"type": "string", "minLength": 1},
		"title": {"type": "string"},
		"requirements": {"type": "array", "items": {"type": "string"}},
		"description": {"type": "string"},
		"tags": {"type": "array", "items": {"type": "string"}},
		"views": {"type": "integer"},
		"likes": {"type": "integer"},
		"applications": {"type": "integer"},
		"saves": {"type": "integer"},
		"createdAt": {"type": "string"},
		"location": {"type": "string"},
		"targetedAcademicYear": {"type": "integer"},
		"verified": {"type": "boolean"}
	}
}`

// Compile returns the built-in content document schema, compiled.
func Compile() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(ContentDocument))
}

// CompileFile compiles a schema from a file, for deployments that need
// to tighten or extend the built-in contract.
func CompileFile(path string) (*gojsonschema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
}
