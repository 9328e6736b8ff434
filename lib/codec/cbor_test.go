// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type sampleEntry struct {
	Source    string         `cbor:"source"`
	Wrapper   string         `cbor:"wrapper,omitempty"`
	Variables map[string]any `cbor:"variables,omitempty"`
	Created   time.Time      `cbor:"created"`
}

func TestRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	original := sampleEntry{
		Source:    "/home/user/demo.jsonc",
		Wrapper:   "multiply() { :; }\n",
		Variables: map[string]any{"answer": "forty-two"},
		Created:   created,
	}
	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleEntry
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Source != original.Source {
		t.Errorf("Source = %q, want %q", decoded.Source, original.Source)
	}
	if decoded.Wrapper != original.Wrapper {
		t.Errorf("Wrapper = %q, want %q", decoded.Wrapper, original.Wrapper)
	}
	if !decoded.Created.Equal(created) {
		t.Errorf("Created = %v, want %v", decoded.Created, created)
	}
	if decoded.Variables["answer"] != "forty-two" {
		t.Errorf("Variables[answer] = %v, want forty-two", decoded.Variables["answer"])
	}
}

func TestDeterministic(t *testing.T) {
	value := map[string]any{"zeta": 1, "alpha": 2, "mid": []string{"x", "y"}}
	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("encoding is not deterministic: %x vs %x", first, again)
		}
	}
}

func TestAnyMapsDecodeWithStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"outer": map[string]any{"inner": "value"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	outer, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded type = %T, want map[string]any", decoded)
	}
	inner, ok := outer["outer"].(map[string]any)
	if !ok {
		t.Fatalf("nested type = %T, want map[string]any", outer["outer"])
	}
	if inner["inner"] != "value" {
		t.Errorf("inner = %v, want value", inner["inner"])
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(sampleEntry{Source: "demo"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"source": "demo"`) {
		t.Errorf("Diagnose = %s, want it to contain the source field", notation)
	}
}
