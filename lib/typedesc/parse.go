// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package typedesc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads a type expression such as "list[int]", "int | float",
// "Optional[tuple[int, str]]", or "Literal['get', 'set']" and returns
// its descriptor. Module qualifiers are ignored ("typing.List" is
// "List"). Names that are not built in become Unknown descriptors;
// generic arguments on unknown names are discarded.
//
// An empty expression is Untyped.
func Parse(expression string) (*Type, error) {
	if strings.TrimSpace(expression) == "" {
		return Untyped(), nil
	}
	p := &parser{input: expression}
	p.advance()
	t, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.errorf("%v", p.err)
	}
	if p.token.kind != tokenEOF {
		return nil, p.errorf("unexpected %s", p.token)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("type %q: %w", expression, err)
	}
	return t, nil
}

// MustParse is Parse for expressions known to be valid at compile
// time. Panics on error.
func MustParse(expression string) *Type {
	t, err := Parse(expression)
	if err != nil {
		panic("typedesc.MustParse: " + err.Error())
	}
	return t
}

type tokenKind uint8

const (
	tokenEOF tokenKind = iota
	tokenName
	tokenString
	tokenNumber
	tokenEllipsis
	tokenOpen
	tokenClose
	tokenComma
	tokenPipe
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

func (t token) String() string {
	switch t.kind {
	case tokenEOF:
		return "end of expression"
	case tokenString:
		return strconv.Quote(t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

type parser struct {
	input    string
	position int
	token    token
	err      error
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("type %q: %s at offset %d", p.input, fmt.Sprintf(format, args...), p.token.offset)
}

// advance scans the next token into p.token. Scan errors are stored
// and surface as an unexpected-token error at the next check.
func (p *parser) advance() {
	for p.position < len(p.input) && p.input[p.position] == ' ' {
		p.position++
	}
	start := p.position
	if p.position >= len(p.input) {
		p.token = token{kind: tokenEOF, offset: start}
		return
	}

	c := p.input[p.position]
	switch {
	case c == '[':
		p.position++
		p.token = token{kind: tokenOpen, text: "[", offset: start}
	case c == ']':
		p.position++
		p.token = token{kind: tokenClose, text: "]", offset: start}
	case c == ',':
		p.position++
		p.token = token{kind: tokenComma, text: ",", offset: start}
	case c == '|':
		p.position++
		p.token = token{kind: tokenPipe, text: "|", offset: start}
	case strings.HasPrefix(p.input[p.position:], "..."):
		p.position += 3
		p.token = token{kind: tokenEllipsis, text: "...", offset: start}
	case c == '\'' || c == '"':
		p.token = p.scanString(c)
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		p.position++
		for p.position < len(p.input) && strings.IndexByte("0123456789.eE+-_", p.input[p.position]) >= 0 {
			p.position++
		}
		p.token = token{kind: tokenNumber, text: p.input[start:p.position], offset: start}
	case c == '_' || unicode.IsLetter(rune(c)):
		for p.position < len(p.input) {
			r := rune(p.input[p.position])
			if r != '_' && r != '.' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			p.position++
		}
		p.token = token{kind: tokenName, text: p.input[start:p.position], offset: start}
	default:
		p.position++
		p.token = token{kind: tokenEOF, text: string(c), offset: start}
		p.err = fmt.Errorf("unexpected character %q", c)
	}
}

func (p *parser) scanString(quote byte) token {
	start := p.position
	p.position++
	var builder strings.Builder
	for p.position < len(p.input) {
		c := p.input[p.position]
		if c == '\\' && p.position+1 < len(p.input) {
			builder.WriteByte(p.input[p.position+1])
			p.position += 2
			continue
		}
		if c == quote {
			p.position++
			return token{kind: tokenString, text: builder.String(), offset: start}
		}
		builder.WriteByte(c)
		p.position++
	}
	p.err = fmt.Errorf("unterminated string")
	return token{kind: tokenEOF, offset: start}
}

func (p *parser) expect(kind tokenKind, what string) error {
	if p.err != nil {
		return p.errorf("%v", p.err)
	}
	if p.token.kind != kind {
		return p.errorf("expected %s, found %s", what, p.token)
	}
	p.advance()
	return nil
}

func (p *parser) parseUnion() (*Type, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	members := []*Type{first}
	for p.token.kind == tokenPipe {
		p.advance()
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	return Union(members...), nil
}

// parseArguments parses "[T, T, ...]" after a generic name. Returns nil
// when no bracket follows.
func (p *parser) parseArguments() ([]*Type, bool, error) {
	if p.token.kind != tokenOpen {
		return nil, false, nil
	}
	p.advance()
	var arguments []*Type
	variadic := false
	for {
		if p.token.kind == tokenEllipsis {
			variadic = true
			p.advance()
		} else {
			argument, err := p.parseUnion()
			if err != nil {
				return nil, false, err
			}
			arguments = append(arguments, argument)
		}
		if p.token.kind != tokenComma {
			break
		}
		p.advance()
	}
	if err := p.expect(tokenClose, "']'"); err != nil {
		return nil, false, err
	}
	return arguments, variadic, nil
}

func (p *parser) parseLiteralValues() ([]any, error) {
	if err := p.expect(tokenOpen, "'['"); err != nil {
		return nil, err
	}
	var values []any
	for {
		value, err := p.parseLiteralValue()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		if p.token.kind != tokenComma {
			break
		}
		p.advance()
	}
	if err := p.expect(tokenClose, "']'"); err != nil {
		return nil, err
	}
	return values, nil
}

func (p *parser) parseLiteralValue() (any, error) {
	if p.err != nil {
		return nil, p.errorf("%v", p.err)
	}
	current := p.token
	switch current.kind {
	case tokenString:
		p.advance()
		return current.text, nil
	case tokenNumber:
		p.advance()
		text := strings.ReplaceAll(current.text, "_", "")
		if integer, err := strconv.ParseInt(text, 10, 64); err == nil {
			return integer, nil
		}
		if number, err := strconv.ParseFloat(text, 64); err == nil {
			return number, nil
		}
		return nil, p.errorf("invalid number %q", current.text)
	case tokenName:
		p.advance()
		switch current.text {
		case "True", "true":
			return true, nil
		case "False", "false":
			return false, nil
		}
		return nil, p.errorf("literal value %q is not a string, number, or boolean", current.text)
	default:
		return nil, p.errorf("expected literal value, found %s", current)
	}
}

func (p *parser) parseAtom() (*Type, error) {
	if p.err != nil {
		return nil, p.errorf("%v", p.err)
	}
	if p.token.kind != tokenName {
		return nil, p.errorf("expected type name, found %s", p.token)
	}
	qualified := p.token.text
	name := qualified
	if index := strings.LastIndexByte(name, '.'); index >= 0 {
		name = name[index+1:]
	}
	p.advance()

	if name == "Literal" {
		values, err := p.parseLiteralValues()
		if err != nil {
			return nil, err
		}
		return Literal(values...), nil
	}

	arguments, variadic, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	if variadic && !isTupleName(name) {
		return nil, p.errorf("'...' is only valid in tuple types")
	}

	switch name {
	case "int":
		return Of(Int), nil
	case "float":
		return Of(Float), nil
	case "bool":
		return Of(Bool), nil
	case "str", "string":
		return Of(Str), nil
	case "bytes", "bytearray":
		return Of(Bytes), nil
	case "None", "NoneType":
		return None(), nil
	case "Any", "object":
		return Untyped(), nil
	case "date":
		return Temporal(Date), nil
	case "datetime":
		return Temporal(DateTime), nil
	case "time":
		return Temporal(TimeOfDay), nil
	case "TextIO", "TextIOWrapper":
		return Stream(Text), nil
	case "BinaryIO", "BufferedReader":
		return Stream(Binary), nil
	case "IO":
		if len(arguments) == 1 && arguments[0].Tag == TagPrimitive && arguments[0].Primitive == Bytes {
			return Stream(Binary), nil
		}
		return Stream(Text), nil
	case "Optional":
		if len(arguments) != 1 {
			return nil, p.errorf("Optional takes exactly one type argument")
		}
		return Optional(arguments[0]), nil
	case "Union":
		if len(arguments) == 0 {
			return nil, p.errorf("Union needs at least one type argument")
		}
		return Union(arguments...), nil
	}

	if container, ok := containerNames[name]; ok {
		if container == Tuple && variadic {
			if len(arguments) != 1 {
				return nil, p.errorf("variadic tuple takes one element type before '...'")
			}
			return VariadicTuple(arguments[0]), nil
		}
		return Collection(container, arguments...), nil
	}

	return Unknown(name), nil
}

var containerNames = map[string]Container{
	"list":            List,
	"List":            List,
	"set":             Set,
	"Set":             Set,
	"frozenset":       Set,
	"FrozenSet":       Set,
	"tuple":           Tuple,
	"Tuple":           Tuple,
	"Sequence":        Sequence,
	"MutableSequence": Sequence,
	"Collection":      Sequence,
	"Iterable":        Sequence,
	"AbstractSet":     AbstractSet,
	"MutableSet":      AbstractSet,
	"dict":            Dict,
	"Dict":            Dict,
	"Mapping":         Mapping,
	"MutableMapping":  Mapping,
}

func isTupleName(name string) bool { return name == "tuple" || name == "Tuple" }
