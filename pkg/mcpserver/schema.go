package mcpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
)

// compileSchema compiles a tool's input schema with format assertions on, so
// "uri" and similar formats reject bad input instead of only annotating it.
func compileSchema(name string, schema map[string]any) (*jsonschema.Schema, error) {
	if schema == nil {
		schema = map[string]any{"type": "object"}
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema for %s: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	c.AssertFormat()
	url := name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema resource for %s: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema for %s: %w", name, err)
	}
	return compiled, nil
}

// validateArgs checks raw arguments against a compiled schema. The returned
// error is always KindValidation.
func validateArgs(schema *jsonschema.Schema, args map[string]any) error {
	if schema == nil {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return apierr.Validation("invalid arguments: %v", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return apierr.Validation("invalid arguments: %v", err)
	}
	if err := schema.Validate(inst); err != nil {
		return &apierr.Error{
			Kind:    apierr.KindValidation,
			Message: "invalid arguments: " + summarizeValidation(err),
			Err:     err,
		}
	}
	return nil
}

// summarizeValidation drops the schema URL header jsonschema puts on the first
// line and folds the remaining causes onto one line.
func summarizeValidation(err error) string {
	lines := strings.Split(err.Error(), "\n")
	causes := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "jsonschema validation failed") {
			continue
		}
		causes = append(causes, strings.TrimPrefix(l, "- "))
	}
	if len(causes) == 0 {
		return err.Error()
	}
	return strings.Join(causes, "; ")
}
