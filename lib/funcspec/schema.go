// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package funcspec

import (
	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

// Schema is the JSON Schema subset used to describe a function's
// parameters to tools that build invocations programmatically.
type Schema struct {
	// Type is "object", "string", "boolean", "integer", "number", or
	// "array". Empty for unions and untyped parameters.
	Type string `json:"type,omitempty"`

	// Description carries the docstring on the top-level object and the
	// type summary on each property.
	Description string `json:"description,omitempty"`

	// Properties maps parameter names to their schemas. Only set when
	// Type is "object".
	Properties map[string]*Schema `json:"properties,omitempty"`

	// Required lists parameters without defaults.
	Required []string `json:"required,omitempty"`

	// Default is the parameter's default value.
	Default any `json:"default,omitempty"`

	// Items describes homogeneous array elements.
	Items *Schema `json:"items,omitempty"`

	// PrefixItems describes fixed tuple positions.
	PrefixItems []*Schema `json:"prefixItems,omitempty"`

	// MinItems and MaxItems bound fixed-arity tuples.
	MinItems *int `json:"minItems,omitempty"`
	MaxItems *int `json:"maxItems,omitempty"`

	// AdditionalProperties describes mapping values.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`

	// AnyOf lists union alternatives.
	AnyOf []*Schema `json:"anyOf,omitempty"`

	// Enum lists literal values.
	Enum []any `json:"enum,omitempty"`

	// Format is a format hint: "date", "date-time", "time", or "path"
	// for streams.
	Format string `json:"format,omitempty"`

	// Nullable marks optional parameters that accept none.
	Nullable bool `json:"nullable,omitempty"`

	// Kind records the parameter's calling convention.
	Kind string `json:"x-kind,omitempty"`
}

// InputSchema describes f's parameters as a JSON Schema object.
func InputSchema(f *Function) *Schema {
	schema := &Schema{
		Type:        "object",
		Description: f.Doc,
		Properties:  make(map[string]*Schema, len(f.Parameters)),
	}
	for _, parameter := range f.Parameters {
		declared := parameter.Type
		if declared == nil {
			declared = typedesc.Untyped()
		}
		property := TypeSchema(declared)
		property.Description = declared.Summary()
		property.Kind = parameter.Kind.String()
		if parameter.HasDefault {
			property.Default = parameter.Default
		} else {
			schema.Required = append(schema.Required, parameter.Name)
		}
		schema.Properties[parameter.Name] = property
	}
	return schema
}

// TypeSchema maps a type descriptor to its JSON Schema.
func TypeSchema(t *typedesc.Type) *Schema {
	switch t.Tag {
	case typedesc.TagPrimitive:
		switch t.Primitive {
		case typedesc.Int:
			return &Schema{Type: "integer"}
		case typedesc.Float:
			return &Schema{Type: "number"}
		case typedesc.Bool:
			return &Schema{Type: "boolean"}
		default:
			return &Schema{Type: "string"}
		}

	case typedesc.TagCollection:
		if t.Container.IsMapping() {
			schema := &Schema{Type: "object"}
			if len(t.Elements) == 2 {
				schema.AdditionalProperties = TypeSchema(t.Elements[1])
			}
			return schema
		}
		schema := &Schema{Type: "array"}
		if t.Container == typedesc.Tuple && !t.Variadic && len(t.Elements) > 0 {
			arity := len(t.Elements)
			schema.MinItems = &arity
			schema.MaxItems = &arity
			for _, element := range t.Elements {
				schema.PrefixItems = append(schema.PrefixItems, TypeSchema(element))
			}
			return schema
		}
		if len(t.Elements) == 1 {
			schema.Items = TypeSchema(t.Elements[0])
		}
		return schema

	case typedesc.TagUnion:
		schema := &Schema{}
		for _, member := range t.Members {
			if member.Tag == typedesc.TagNone {
				schema.Nullable = true
				continue
			}
			schema.AnyOf = append(schema.AnyOf, TypeSchema(member))
		}
		if len(schema.AnyOf) == 1 {
			only := schema.AnyOf[0]
			only.Nullable = schema.Nullable
			return only
		}
		return schema

	case typedesc.TagLiteral:
		return &Schema{Enum: t.Literals}

	case typedesc.TagStream:
		return &Schema{Type: "string", Format: "path"}

	case typedesc.TagDateTime:
		switch t.Time {
		case typedesc.Date:
			return &Schema{Type: "string", Format: "date"}
		case typedesc.DateTime:
			return &Schema{Type: "string", Format: "date-time"}
		default:
			return &Schema{Type: "string", Format: "time"}
		}

	case typedesc.TagUnknown:
		return &Schema{Type: "string", Format: t.Name}

	default:
		return &Schema{}
	}
}
