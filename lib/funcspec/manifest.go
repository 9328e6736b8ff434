// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package funcspec

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/tidwall/jsonc"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

// Manifest is the extracted description of a source module: the
// functions it defines and the variables it exports to the shell.
type Manifest struct {
	// Name identifies the module in generated stubs.
	Name string

	// Functions are in declaration order.
	Functions []*Function

	// Variables are exported values: scalars, lists, or string-keyed
	// maps.
	Variables map[string]any

	// Exports, when non-empty, is the explicit list of exported names.
	// Otherwise every name not starting with "_" is exported.
	Exports []string

	// Source is the raw manifest content. The stub cache hashes it.
	Source []byte
}

// Exported reports whether name is part of the module's public
// surface.
func (m *Manifest) Exported(name string) bool {
	if len(m.Exports) > 0 {
		return slices.Contains(m.Exports, name)
	}
	return !strings.HasPrefix(name, "_")
}

// Function returns the exported function with the given name.
func (m *Manifest) Function(name string) (*Function, bool) {
	if !m.Exported(name) {
		return nil, false
	}
	for _, function := range m.Functions {
		if function.Name == name {
			return function, true
		}
	}
	return nil, false
}

// ExportedFunctions returns exported functions in declaration order.
func (m *Manifest) ExportedFunctions() []*Function {
	var exported []*Function
	for _, function := range m.Functions {
		if m.Exported(function.Name) {
			exported = append(exported, function)
		}
	}
	return exported
}

// ExportedVariables returns the names of exported variables, sorted.
func (m *Manifest) ExportedVariables() []string {
	var names []string
	for name := range m.Variables {
		if m.Exported(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Extractor produces a Manifest from a source file.
type Extractor interface {
	Extract(ctx context.Context, source string) (*Manifest, error)
}

// ManifestExtractor reads JSONC or YAML manifests from a filesystem.
// Files ending in .yaml or .yml are YAML; everything else is JSONC.
type ManifestExtractor struct {
	FS fs.FS
}

// Extract reads and parses the manifest at source.
func (e ManifestExtractor) Extract(ctx context.Context, source string) (*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(e.FS, source)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	switch path.Ext(source) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSONC(data)
	}
}

// ParseJSONC parses a JSON manifest that may contain comments and
// trailing commas.
func ParseJSONC(data []byte) (*Manifest, error) {
	manifest, err := parseJSON(jsonc.ToJSON(data))
	if err != nil {
		return nil, err
	}
	manifest.Source = data
	return manifest, nil
}

// ParseYAML parses a YAML manifest. The document is converted to JSON
// and goes through the same validation as JSONC manifests.
func ParseYAML(data []byte) (*Manifest, error) {
	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parsing manifest YAML: %w", err)
	}
	converted, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("converting manifest YAML to JSON: %w", err)
	}
	manifest, err := parseJSON(converted)
	if err != nil {
		return nil, err
	}
	manifest.Source = data
	return manifest, nil
}

// manifestDocument is the on-disk shape of a manifest.
type manifestDocument struct {
	Name      string                     `json:"name"`
	Functions []functionDocument         `json:"functions"`
	Variables map[string]json.RawMessage `json:"variables"`
	Exports   []string                   `json:"exports"`
}

type functionDocument struct {
	Name       string              `json:"name"`
	Doc        string              `json:"doc"`
	Parameters []parameterDocument `json:"parameters"`
	Returns    string              `json:"returns"`
}

type parameterDocument struct {
	Name    string          `json:"name"`
	Kind    string          `json:"kind"`
	Type    string          `json:"type"`
	Default json.RawMessage `json:"default"`
}

func parseJSON(data []byte) (*Manifest, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var document manifestDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	manifest := &Manifest{
		Name:      document.Name,
		Exports:   document.Exports,
		Variables: make(map[string]any, len(document.Variables)),
	}
	for name, raw := range document.Variables {
		value, err := coerce.DecodeJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		manifest.Variables[name] = value
	}

	seen := make(map[string]bool, len(document.Functions))
	for _, functionDoc := range document.Functions {
		function, err := functionDoc.build()
		if err != nil {
			return nil, err
		}
		if seen[function.Name] {
			return nil, fmt.Errorf("duplicate function %q", function.Name)
		}
		seen[function.Name] = true
		manifest.Functions = append(manifest.Functions, function)
	}
	return manifest, nil
}

func (d functionDocument) build() (*Function, error) {
	returns, err := typedesc.Parse(d.Returns)
	if err != nil {
		return nil, fmt.Errorf("function %s: return type: %w", d.Name, err)
	}
	function := &Function{Name: d.Name, Doc: d.Doc, Returns: returns}
	for _, parameterDoc := range d.Parameters {
		kind, err := ParseKind(parameterDoc.Kind)
		if err != nil {
			return nil, fmt.Errorf("function %s: parameter %s: %w", d.Name, parameterDoc.Name, err)
		}
		declared, err := typedesc.Parse(parameterDoc.Type)
		if err != nil {
			return nil, fmt.Errorf("function %s: parameter %s: %w", d.Name, parameterDoc.Name, err)
		}
		parameter := Parameter{Name: parameterDoc.Name, Kind: kind, Type: declared}
		if len(parameterDoc.Default) > 0 {
			value, err := coerce.DecodeJSON(parameterDoc.Default)
			if err != nil {
				return nil, fmt.Errorf("function %s: parameter %s: default: %w", d.Name, parameterDoc.Name, err)
			}
			parameter.Default = value
			parameter.HasDefault = true
		}
		function.Parameters = append(function.Parameters, parameter)
	}
	if err := function.Validate(); err != nil {
		return nil, err
	}
	return function, nil
}

// manifestSchema is the JSON Schema every manifest must satisfy
// before decoding.
const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["functions"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "exports": {"type": "array", "items": {"type": "string"}},
    "variables": {"type": "object"},
    "functions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "doc": {"type": "string"},
          "returns": {"type": "string"},
          "parameters": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "additionalProperties": false,
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "kind": {"enum": ["positional_only", "positional_or_keyword", "keyword_only"]},
                "type": {"type": "string"},
                "default": {}
              }
            }
          }
        }
      }
    }
  }
}`

var compiledManifestSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(manifestSchema))
})

func validateDocument(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("manifest is not valid JSON")
	}
	schema, err := compiledManifestSchema()
	if err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validating manifest: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, resultError := range result.Errors() {
			problems = append(problems, resultError.String())
		}
		return fmt.Errorf("invalid manifest: %s", strings.Join(problems, "; "))
	}
	return nil
}
