package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds one compiled schema per *Schema value.
var compiled sync.Map

// Validate checks raw against the schema. A nil schema accepts anything.
// Failures are reported as *ErrInvalidResponse carrying raw.
func (s *Schema) Validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := CompileSchema(s)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %s: %w", s.Name, err)}
	}
	return nil
}

// CompileSchema compiles the reply definition once and reuses the result
// for later calls with the same *Schema.
func CompileSchema(s *Schema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(s); ok {
		return v.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go maps with typed slices.
	buf, err := json.Marshal(s.replyDefinition())
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", s.Name, err)
	}

	url := "mem://schemas/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", s.Name, err)
	}

	actual, _ := compiled.LoadOrStore(s, sch)
	return actual.(*jsonschema.Schema), nil
}
