// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

type outputParams struct {
	JSONOutput
	Name    string        `flag:"name" desc:"the name"`
	Count   int           `flag:"count,c" desc:"how many" default:"3"`
	Verbose bool          `flag:"verbose" desc:"more output" default:"true"`
	Timeout time.Duration `flag:"timeout" desc:"wait time" default:"5s"`
	Tags    []string      `flag:"tags" desc:"tags" default:"a,b"`
	Ignored string
}

func TestBindFlags_Defaults(t *testing.T) {
	var params outputParams
	flagSet := FlagsFromParams("test", &params)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if params.Count != 3 {
		t.Errorf("Count = %d, want 3", params.Count)
	}
	if !params.Verbose {
		t.Error("Verbose = false, want true")
	}
	if params.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", params.Timeout)
	}
	if len(params.Tags) != 2 || params.Tags[0] != "a" || params.Tags[1] != "b" {
		t.Errorf("Tags = %v, want [a b]", params.Tags)
	}
	if params.OutputJSON {
		t.Error("OutputJSON = true, want false")
	}
}

func TestBindFlags_ParsedValues(t *testing.T) {
	var params outputParams
	flagSet := FlagsFromParams("test", &params)
	err := flagSet.Parse([]string{"--name", "demo", "-c", "7", "--verbose=false", "--timeout", "1m", "--tags", "x", "--json", "rest"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if params.Name != "demo" {
		t.Errorf("Name = %q, want demo", params.Name)
	}
	if params.Count != 7 {
		t.Errorf("Count = %d, want 7", params.Count)
	}
	if params.Verbose {
		t.Error("Verbose = true, want false")
	}
	if params.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", params.Timeout)
	}
	if len(params.Tags) != 1 || params.Tags[0] != "x" {
		t.Errorf("Tags = %v, want [x]", params.Tags)
	}
	if !params.OutputJSON {
		t.Error("OutputJSON = false, want true from the embedded JSONOutput")
	}
	if args := flagSet.Args(); len(args) != 1 || args[0] != "rest" {
		t.Errorf("Args() = %v, want [rest]", args)
	}
	if flagSet.Lookup("Ignored") != nil {
		t.Error("untagged field produced a flag")
	}
}

func TestBindFlags_Errors(t *testing.T) {
	var notStruct int
	if err := BindFlags(&notStruct, pflag.NewFlagSet("t", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags(*int) = nil, want error")
	}
	if err := BindFlags(outputParams{}, pflag.NewFlagSet("t", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags(struct value) = nil, want error")
	}

	var badDefault struct {
		Count int `flag:"count" default:"many"`
	}
	if err := BindFlags(&badDefault, pflag.NewFlagSet("t", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags with a bad default = nil, want error")
	}

	var unsupported struct {
		Ratio float32 `flag:"ratio"`
	}
	if err := BindFlags(&unsupported, pflag.NewFlagSet("t", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags with an unsupported type = nil, want error")
	}
}

func TestFlagsFromParams_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams with a non-pointer did not panic")
		}
	}()
	FlagsFromParams("test", outputParams{})
}
