package mcpserver

import "github.com/RobinCoderZhao/apibridge/pkg/render"

// Schema helpers for building tool input schemas as JSON-shaped maps.

// Object is a closed object schema: properties not listed are rejected.
func Object(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// String is a string property.
func String(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

// NonEmpty is a string property that must have at least one character.
func NonEmpty(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "minLength": 1}
}

// StringLen is a string property bounded to [min, max] characters.
// max <= 0 leaves the upper bound open.
func StringLen(desc string, min, max int) map[string]any {
	s := map[string]any{"type": "string", "description": desc, "minLength": min}
	if max > 0 {
		s["maxLength"] = max
	}
	return s
}

// URI is a string property that must be an absolute URI.
func URI(desc string) map[string]any {
	return map[string]any{"type": "string", "format": "uri", "description": desc}
}

// Bool is a boolean property.
func Bool(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

// Int is an integer property bounded to [min, max]. max <= 0 leaves the
// upper bound open.
func Int(desc string, min, max int) map[string]any {
	s := map[string]any{"type": "integer", "description": desc, "minimum": min}
	if max > 0 {
		s["maximum"] = max
	}
	return s
}

// Enum is a string property restricted to values.
func Enum(desc string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "enum": values}
}

// Strings is an array-of-strings property with item count in [min, max].
// Zero bounds are left open.
func Strings(desc string, min, max int) map[string]any {
	s := map[string]any{
		"type":        "array",
		"description": desc,
		"items":       map[string]any{"type": "string"},
	}
	if min > 0 {
		s["minItems"] = min
	}
	if max > 0 {
		s["maxItems"] = max
	}
	return s
}

// WithDefault records a documented default on a property schema.
func WithDefault(prop map[string]any, v any) map[string]any {
	prop["default"] = v
	return prop
}

// ResponseFormat is the shared response_format property.
func ResponseFormat(def render.Format) map[string]any {
	return WithDefault(Enum(
		"Output format: 'markdown' for human-readable text or 'json' for structured data",
		render.Formats()...,
	), string(def))
}
