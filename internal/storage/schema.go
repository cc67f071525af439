package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const tasksSchemaURL = "todo://schemas/tasks.schema.json"

//go:embed tasks.schema.json
var tasksSchemaJSON string

// tasksSchema compiles the embedded schema once.
var tasksSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(tasksSchemaURL, bytes.NewReader([]byte(tasksSchemaJSON))); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(tasksSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// validateDocument checks data against the task list schema.
// It reports isNull=true for a literal JSON null, which is treated as an empty list.
func validateDocument(data []byte) (isNull bool, err error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var doc interface{}
	if err := decoder.Decode(&doc); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}
	if decoder.More() {
		return false, fmt.Errorf("decode document: trailing data after JSON value")
	}
	if doc == nil {
		return true, nil
	}

	schema, err := tasksSchema()
	if err != nil {
		return false, err
	}
	return false, schema.Validate(doc)
}
