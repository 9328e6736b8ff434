// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"math"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/shellfn/lib/typedesc"
)

func coerceOK(t *testing.T, coercer *Coercer, raw Raw, expression string) any {
	t.Helper()
	value, err := coercer.Coerce(raw, typedesc.MustParse(expression))
	if err != nil {
		t.Fatalf("Coerce(%v, %s) error: %v", raw.Values, expression, err)
	}
	return value
}

func coerceFails(t *testing.T, coercer *Coercer, raw Raw, expression, message string) {
	t.Helper()
	value, err := coercer.Coerce(raw, typedesc.MustParse(expression))
	if err == nil {
		t.Fatalf("Coerce(%v, %s) = %#v, want error", raw.Values, expression, value)
	}
	if !strings.Contains(err.Error(), message) {
		t.Errorf("Coerce(%v, %s) error = %q, want it to contain %q", raw.Values, expression, err, message)
	}
}

func TestCoerce_Primitives(t *testing.T) {
	coercer := New()
	tests := []struct {
		input      string
		expression string
		want       any
	}{
		{"42", "int", int64(42)},
		{"-7", "int", int64(-7)},
		{" 5 ", "int", int64(5)},
		{"3.5", "float", 3.5},
		{"3", "float", 3.0},
		{"1e3", "float", 1000.0},
		{"true", "bool", true},
		{"FALSE", "bool", false},
		{"True", "bool", true},
		{"hello world", "str", "hello world"},
		{"", "str", ""},
		{"abc", "bytes", []byte("abc")},
	}
	for _, test := range tests {
		t.Run(test.expression+"/"+test.input, func(t *testing.T) {
			got := coerceOK(t, coercer, Single(test.input), test.expression)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("got %#v, want %#v", got, test.want)
			}
		})
	}
}

func TestCoerce_PrimitiveFailures(t *testing.T) {
	coercer := New()
	coerceFails(t, coercer, Single("a"), "int", "invalid int value: 'a'")
	coerceFails(t, coercer, Single("3.5"), "int", "invalid int value")
	coerceFails(t, coercer, Single("x"), "float", "invalid float value: 'x'")
	coerceFails(t, coercer, Single("yes"), "bool", "choose from true, false")
	coerceFails(t, coercer, Single("1"), "bool", "invalid bool value")
	coerceFails(t, coercer, Single("0"), "bool", "invalid bool value")
	coerceFails(t, coercer, Many("1", "2"), "int", "expected one value, got 2")
}

func TestCoerce_PrimitiveRoundTrip(t *testing.T) {
	coercer := New()
	for _, value := range []int64{0, 1, -1, 12, math.MaxInt64, math.MinInt64} {
		got := coerceOK(t, coercer, Single(strconv.FormatInt(value, 10)), "int")
		if got != value {
			t.Errorf("int round trip: %d -> %v", value, got)
		}
	}
	for _, value := range []float64{0.5, -2.25, 1e-9, 123456.789} {
		got := coerceOK(t, coercer, Single(strconv.FormatFloat(value, 'g', -1, 64)), "float")
		if got != value {
			t.Errorf("float round trip: %v -> %v", value, got)
		}
	}
	for _, value := range []bool{true, false} {
		got := coerceOK(t, coercer, Single(strings.ToUpper(strconv.FormatBool(value))), "bool")
		if got != value {
			t.Errorf("bool round trip: %v -> %v", value, got)
		}
	}
}

func TestCoerce_Union(t *testing.T) {
	coercer := New()
	tests := []struct {
		input      string
		expression string
		want       any
	}{
		{"3.5", "int | float", 3.5},
		{"3.5", "float | int", 3.5},
		{"3", "int | float", int64(3)},
		{"3", "float | int", int64(3)},
		{"1e5", "int | float", 100000.0},
		{"abc", "int | str", "abc"},
		{"7", "str | int", "7"},
		{"1", "bool | int", int64(1)},
		{"true", "bool | int", true},
		{"5", "Optional[int]", int64(5)},
	}
	for _, test := range tests {
		t.Run(test.expression+"/"+test.input, func(t *testing.T) {
			got := coerceOK(t, coercer, Single(test.input), test.expression)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("got %#v, want %#v", got, test.want)
			}
		})
	}
	coerceFails(t, coercer, Single("x"), "int | float", "(expected int | float)")
	coerceFails(t, coercer, Single("x"), "Optional[int]", "invalid value 'x'")
}

func TestCoerce_UnionUnwrapsSingleMultiToken(t *testing.T) {
	coercer := New()
	got := coerceOK(t, coercer, Many("4"), "int | str")
	if got != int64(4) {
		t.Errorf("got %#v, want int64(4)", got)
	}
	coerceFails(t, coercer, Many("4", "5"), "int | str", "invalid value '4 5'")
	listed := coerceOK(t, coercer, Many("4", "5"), "Optional[list[int]]")
	if !reflect.DeepEqual(listed, []any{int64(4), int64(5)}) {
		t.Errorf("got %#v, want [4 5]", listed)
	}
}

func TestCoerce_Collections(t *testing.T) {
	coercer := New()
	tests := []struct {
		name       string
		raw        Raw
		expression string
		want       any
	}{
		{"list of int", Many("1", "2", "3"), "list[int]", []any{int64(1), int64(2), int64(3)}},
		{"empty list", Many(), "list[int]", []any{}},
		{"bare list keeps strings", Many("a", "1"), "list", []any{"a", "1"}},
		{"sequence", Many("1.5", "2"), "Sequence[float]", []any{1.5, 2.0}},
		{"set dedupes", Many("b", "a", "b"), "set[str]", Set{"b", "a"}},
		{"abstract set materializes as list", Many("1", "1", "2"), "AbstractSet[int]", []any{int64(1), int64(2)}},
		{"tuple", Many("1", "x"), "tuple[int, str]", Tuple{int64(1), "x"}},
		{"variadic tuple", Many("1", "2", "3"), "tuple[int, ...]", Tuple{int64(1), int64(2), int64(3)}},
		{"json list", Many("[1, 2]"), "list[int]", []any{int64(1), int64(2)}},
		{"json list inside optional", Many(`["a"]`), "Optional[list[str]]", []any{"a"}},
		{"single non-json token", Many("7"), "list[int]", []any{int64(7)}},
		{"json dict", Single(`{"a": 1}`), "dict", map[string]any{"a": int64(1)}},
		{"key value dict", Many("a=1", "b=2"), "dict[str, int]", map[string]any{"a": int64(1), "b": int64(2)}},
		{"mapping without json", Many("a=x"), "Mapping[str, str]", map[string]any{"a": "x"}},
		{"list of literal", Many("get", "set"), "list[Literal['get', 'set']]", []any{"get", "set"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := coerceOK(t, coercer, test.raw, test.expression)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("got %#v, want %#v", got, test.want)
			}
		})
	}
}

func TestCoerce_CollectionFailures(t *testing.T) {
	coercer := New()
	coerceFails(t, coercer, Many("1", "x", "3"), "list[int]", "invalid int value: 'x'")
	coerceFails(t, coercer, Many("1"), "tuple[int, int]", "expected 2 values, got 1")
	coerceFails(t, coercer, Many("1", "2", "3"), "tuple[int, int]", "expected 2 values, got 3")
	coerceFails(t, coercer, Single("[1,2]"), "dict", "expected key=value")
	coerceFails(t, coercer, Single(`{"a": 1}`), "list[int]", "invalid int value")
	coerceFails(t, coercer, Many("a=x"), "dict[str, int]", "key 'a': invalid int value")
}

func TestCoerce_JSONOnlyForConcreteContainers(t *testing.T) {
	coercer := New()
	got := coerceOK(t, coercer, Many("[1,2]"), "Sequence[str]")
	if !reflect.DeepEqual(got, []any{"[1,2]"}) {
		t.Errorf("abstract sequence decoded JSON: got %#v", got)
	}
	coerceFails(t, coercer, Single(`{"a": 1}`), "Mapping[str, int]", "expected key=value")
}

func TestCoerce_Literal(t *testing.T) {
	coercer := New()
	for _, choice := range []string{"get", "set", "del"} {
		if got := coerceOK(t, coercer, Single(choice), "Literal['get', 'set', 'del']"); got != choice {
			t.Errorf("got %#v, want %q", got, choice)
		}
	}
	coerceFails(t, coercer, Single("put"), "Literal['get', 'set', 'del']", "invalid choice: 'put' (choose from 'get', 'set', 'del')")

	if got := coerceOK(t, coercer, Single("1"), "Literal['2', 1]"); got != int64(1) {
		t.Errorf("typed literal: got %#v, want int64(1)", got)
	}
	if got := coerceOK(t, coercer, Single("1"), "Literal['2', '1', 1]"); got != "1" {
		t.Errorf("literal order: got %#v, want \"1\"", got)
	}
	if got := coerceOK(t, coercer, Single("TRUE"), "Literal[True, 'x']"); got != true {
		t.Errorf("bool literal: got %#v, want true", got)
	}
}

func TestCoerce_Stream(t *testing.T) {
	coercer := New()
	directory := t.TempDir()
	path := filepath.Join(directory, "input.txt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	stream, ok := coerceOK(t, coercer, Single(path), "TextIO").(*Stream)
	if !ok || stream.Path != path || stream.Mode != typedesc.Text || stream.IsOpen() {
		t.Fatalf("got %#v, want unopened text stream for %s", stream, path)
	}
	stdin, ok := coerceOK(t, coercer, Single("-"), "BinaryIO").(*Stream)
	if !ok || !stdin.IsStdin() || stdin.Mode != typedesc.Binary {
		t.Errorf("got %#v, want binary stdin stream", stdin)
	}

	coerceFails(t, coercer, Single(filepath.Join(directory, "missing")), "TextIO", "no such file or directory")
	coerceFails(t, coercer, Single(directory), "TextIO", "is a directory")

	streams, ok := coerceOK(t, coercer, Many(path, "-"), "list[TextIO]").([]any)
	if !ok || len(streams) != 2 {
		t.Fatalf("got %#v, want two streams", streams)
	}
}

func TestCoerce_Temporal(t *testing.T) {
	coercer := New()

	if got := coerceOK(t, coercer, Single("2022-03-09"), "date"); got != (Date{2022, time.March, 9}) {
		t.Errorf("iso date: got %#v", got)
	}
	stamp := int64(1646784323)
	wantDate := DateOf(time.Unix(stamp, 0))
	if got := coerceOK(t, coercer, Single(strconv.FormatInt(stamp, 10)), "date"); got != wantDate {
		t.Errorf("timestamp date: got %#v, want %#v", got, wantDate)
	}

	parsed, ok := coerceOK(t, coercer, Single("2022-03-09T00:05:23+00:00"), "datetime").(time.Time)
	if !ok || !parsed.Equal(time.Date(2022, 3, 9, 0, 5, 23, 0, time.UTC)) {
		t.Errorf("iso datetime: got %v", parsed)
	}
	fromStamp, ok := coerceOK(t, coercer, Single(strconv.FormatInt(stamp, 10)), "datetime").(time.Time)
	if !ok || fromStamp.Unix() != stamp {
		t.Errorf("timestamp datetime: got %v", fromStamp)
	}

	if got := coerceOK(t, coercer, Single("13:45:10"), "time"); got != (TimeOfDay{Hour: 13, Minute: 45, Second: 10}) {
		t.Errorf("time: got %#v", got)
	}

	coerceFails(t, coercer, Single("yesterday"), "date", "invalid date value: 'yesterday'")
	coerceFails(t, coercer, Single("1646784323"), "time", "invalid time value")
}

func TestCoerce_Unknown(t *testing.T) {
	coercer := New()

	pattern, ok := coerceOK(t, coercer, Single("^a+$"), "Pattern").(*regexp.Regexp)
	if !ok || !pattern.MatchString("aaa") {
		t.Errorf("Pattern: got %#v", pattern)
	}
	coerceFails(t, coercer, Single("(unclosed"), "Pattern", "invalid Pattern value: '(unclosed'")

	if got := coerceOK(t, coercer, Single("a//b/"), "Path"); got != filepath.Clean("a//b/") {
		t.Errorf("Path: got %#v", got)
	}
	if got := coerceOK(t, coercer, Single("90s"), "Duration"); got != 90*time.Second {
		t.Errorf("Duration: got %#v", got)
	}
	if parsed, ok := coerceOK(t, coercer, Single("https://example.com/x"), "URL").(*url.URL); !ok || parsed.Host != "example.com" {
		t.Errorf("URL: got %#v", parsed)
	}
	coerceFails(t, coercer, Single("example.com"), "URL", "missing scheme")
	id := uuid.New()
	if got := coerceOK(t, coercer, Single(id.String()), "UUID"); got != id {
		t.Errorf("UUID: got %#v, want %v", got, id)
	}
	if got := coerceOK(t, coercer, Single("5"), "Optional[Duration] | int"); got != int64(5) {
		t.Errorf("union with unknown: got %#v", got)
	}

	coerceFails(t, coercer, Single("x"), "Widget", "no constructor registered for type Widget")
	coercer.Register("Widget", func(text string) (any, error) { return "widget:" + text, nil })
	if got := coerceOK(t, coercer, Single("x"), "Widget"); got != "widget:x" {
		t.Errorf("registered constructor: got %#v", got)
	}
}

func TestCoerce_SetOfUnhashableConstructorValues(t *testing.T) {
	coercer := New()
	coercer.Register("Words", func(text string) (any, error) { return strings.Fields(text), nil })

	got := coerceOK(t, coercer, Many("a b", "c", "a b"), "set[Words]")
	want := Set{[]string{"a", "b"}, []string{"c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("set[Words] = %#v, want %#v", got, want)
	}
	set := got.(Set)
	if !set.Contains([]string{"c"}) || set.Contains([]string{"d"}) {
		t.Errorf("Contains gave wrong answers for %#v", set)
	}
}

func TestCoerce_Untyped(t *testing.T) {
	coercer := New()
	tests := []struct {
		input string
		want  any
	}{
		{"true", true},
		{"false", false},
		{"True", "True"},
		{"123", int64(123)},
		{"-5", "-5"},
		{"1.5", "1.5"},
		{"hello", "hello"},
		{"", ""},
	}
	for _, test := range tests {
		if got := coerceOK(t, coercer, Single(test.input), ""); !reflect.DeepEqual(got, test.want) {
			t.Errorf("untyped %q: got %#v, want %#v", test.input, got, test.want)
		}
	}
}

func TestInfer(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{int64(1), "int"},
		{2.5, "float"},
		{true, "bool"},
		{"s", "str"},
		{[]any{}, "list"},
		{map[string]any{}, "dict"},
		{nil, "Any"},
	}
	for _, test := range tests {
		if got := Infer(test.value).String(); got != test.want {
			t.Errorf("Infer(%#v) = %s, want %s", test.value, got, test.want)
		}
	}
}

func TestCoerce_DoesNotMutateInput(t *testing.T) {
	coercer := New()
	raw := Many("3", "1", "3")
	coerceOK(t, coercer, raw, "set[int]")
	if !reflect.DeepEqual(raw.Values, []string{"3", "1", "3"}) {
		t.Errorf("input mutated: %v", raw.Values)
	}
}
