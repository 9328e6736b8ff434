// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package typedesc

import "fmt"

// Tag identifies which variant of [Type] a descriptor is. The set is
// closed: every consumer switches over these values and every tag has
// exactly one coercion rule.
type Tag uint8

const (
	// TagUntyped is a parameter with no declared type.
	TagUntyped Tag = iota
	// TagPrimitive is int, float, bool, str, or bytes.
	TagPrimitive
	// TagCollection is a list, set, tuple, mapping, or one of their
	// abstract aliases.
	TagCollection
	// TagUnion is an ordered set of alternatives. Optional is a union
	// containing TagNone.
	TagUnion
	// TagLiteral is an ordered set of allowed scalar values.
	TagLiteral
	// TagStream is a readable file or stdin.
	TagStream
	// TagDateTime is a date, a datetime, or a time of day.
	TagDateTime
	// TagUnknown is a named type resolved through a single-argument
	// constructor.
	TagUnknown
	// TagNone is the none marker inside an optional union.
	TagNone
)

func (tag Tag) String() string {
	switch tag {
	case TagUntyped:
		return "untyped"
	case TagPrimitive:
		return "primitive"
	case TagCollection:
		return "collection"
	case TagUnion:
		return "union"
	case TagLiteral:
		return "literal"
	case TagStream:
		return "stream"
	case TagDateTime:
		return "datetime"
	case TagUnknown:
		return "unknown"
	case TagNone:
		return "none"
	default:
		return fmt.Sprintf("tag(%d)", tag)
	}
}

// Primitive is the scalar kind of a TagPrimitive descriptor.
type Primitive uint8

const (
	Int Primitive = iota
	Float
	Bool
	Str
	Bytes
)

func (p Primitive) String() string {
	switch p {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Str:
		return "str"
	case Bytes:
		return "bytes"
	default:
		return fmt.Sprintf("primitive(%d)", p)
	}
}

// Container is the shape of a TagCollection descriptor.
type Container uint8

const (
	// List is an ordered, mutable sequence. Single-token input is
	// tried as a JSON array first.
	List Container = iota
	// Set is an unordered collection of unique values.
	Set
	// Tuple is a fixed-arity sequence with one element type per
	// position, or a homogeneous variadic sequence.
	Tuple
	// Sequence is an abstract ordered container. Materialized as a
	// list.
	Sequence
	// AbstractSet is an abstract set. Materialized as an ordered,
	// de-duplicated list.
	AbstractSet
	// Dict is a mapping. Single-token input is tried as a JSON object
	// first; otherwise tokens are key=value pairs.
	Dict
	// Mapping is an abstract mapping. Tokens are key=value pairs; no
	// JSON fallback.
	Mapping
)

func (c Container) String() string {
	switch c {
	case List:
		return "list"
	case Set:
		return "set"
	case Tuple:
		return "tuple"
	case Sequence:
		return "Sequence"
	case AbstractSet:
		return "AbstractSet"
	case Dict:
		return "dict"
	case Mapping:
		return "Mapping"
	default:
		return fmt.Sprintf("container(%d)", c)
	}
}

// IsMapping reports whether the container holds key/value pairs.
func (c Container) IsMapping() bool { return c == Dict || c == Mapping }

// AcceptsJSON reports whether a single textual value may be decoded as
// JSON for this container. Only the concrete list and dict containers
// do; abstract aliases never do.
func (c Container) AcceptsJSON() bool { return c == List || c == Dict }

// StreamMode selects text or binary access for a TagStream descriptor.
type StreamMode uint8

const (
	Text StreamMode = iota
	Binary
)

func (m StreamMode) String() string {
	if m == Binary {
		return "binary"
	}
	return "text"
}

// TimeKind is the flavor of a TagDateTime descriptor.
type TimeKind uint8

const (
	Date TimeKind = iota
	DateTime
	TimeOfDay
)

func (k TimeKind) String() string {
	switch k {
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	case TimeOfDay:
		return "time"
	default:
		return fmt.Sprintf("timekind(%d)", k)
	}
}

// Type is a structural description of a declared parameter or return
// type. Only the fields relevant to Tag are meaningful. Types are
// immutable once built; construct them with the functions in this
// package or with [Parse].
type Type struct {
	Tag Tag

	// Primitive is set for TagPrimitive.
	Primitive Primitive

	// Container is set for TagCollection.
	Container Container

	// Elements are the element descriptors of a collection. Empty
	// means elements are kept as raw strings. Tuples carry one entry
	// per position (or a single entry when Variadic); mappings carry
	// key then value.
	Elements []*Type

	// Variadic marks tuple[T, ...].
	Variadic bool

	// Members are the alternatives of a union, in declaration order.
	Members []*Type

	// Literals are the allowed values of a literal type, each an
	// int64, float64, bool, or string.
	Literals []any

	// Mode is set for TagStream.
	Mode StreamMode

	// Time is set for TagDateTime.
	Time TimeKind

	// Name is the type name of a TagUnknown descriptor, used to find
	// its constructor.
	Name string
}

var (
	untypedType = &Type{Tag: TagUntyped}
	noneType    = &Type{Tag: TagNone}
)

// Untyped returns the descriptor for a parameter with no annotation.
func Untyped() *Type { return untypedType }

// None returns the none marker used inside optional unions.
func None() *Type { return noneType }

// Of returns the descriptor for a primitive kind.
func Of(p Primitive) *Type { return &Type{Tag: TagPrimitive, Primitive: p} }

// Collection returns a collection descriptor. For tuples, elements are
// positional; for mappings, elements are key and value.
func Collection(c Container, elements ...*Type) *Type {
	return &Type{Tag: TagCollection, Container: c, Elements: elements}
}

// VariadicTuple returns the descriptor for tuple[element, ...].
func VariadicTuple(element *Type) *Type {
	return &Type{Tag: TagCollection, Container: Tuple, Elements: []*Type{element}, Variadic: true}
}

// Union returns a union of members. Nested unions are flattened and
// duplicate none markers dropped; a union of one member is that member.
func Union(members ...*Type) *Type {
	flat := make([]*Type, 0, len(members))
	sawNone := false
	for _, member := range members {
		if member.Tag == TagUnion {
			for _, inner := range member.Members {
				if inner.Tag == TagNone {
					if sawNone {
						continue
					}
					sawNone = true
				}
				flat = append(flat, inner)
			}
			continue
		}
		if member.Tag == TagNone {
			if sawNone {
				continue
			}
			sawNone = true
		}
		flat = append(flat, member)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Type{Tag: TagUnion, Members: flat}
}

// Optional returns Union(t, None).
func Optional(t *Type) *Type { return Union(t, None()) }

// Literal returns a literal type with the given allowed values. Each
// value must be an int64, float64, bool, or string.
func Literal(values ...any) *Type {
	return &Type{Tag: TagLiteral, Literals: values}
}

// Stream returns a stream descriptor.
func Stream(mode StreamMode) *Type { return &Type{Tag: TagStream, Mode: mode} }

// Temporal returns a date/time descriptor.
func Temporal(kind TimeKind) *Type { return &Type{Tag: TagDateTime, Time: kind} }

// Unknown returns a descriptor resolved by the constructor registered
// under name.
func Unknown(name string) *Type { return &Type{Tag: TagUnknown, Name: name} }

// IsOptional reports whether t is a union containing the none marker.
func (t *Type) IsOptional() bool {
	if t.Tag != TagUnion {
		return false
	}
	for _, member := range t.Members {
		if member.Tag == TagNone {
			return true
		}
	}
	return false
}

// NonNone strips the none marker from an optional union. A union left
// with a single member collapses to that member. Other descriptors are
// returned unchanged.
func (t *Type) NonNone() *Type {
	if !t.IsOptional() {
		return t
	}
	var kept []*Type
	for _, member := range t.Members {
		if member.Tag != TagNone {
			kept = append(kept, member)
		}
	}
	if len(kept) == 0 {
		return None()
	}
	return Union(kept...)
}

// IsBool reports whether t is bool or optional bool. Boolean
// parameters get --name / --no-name switches.
func (t *Type) IsBool() bool {
	inner := t.NonNone()
	return inner.Tag == TagPrimitive && inner.Primitive == Bool
}

// IsCollection reports whether t, after stripping Optional, is a
// collection.
func (t *Type) IsCollection() bool {
	return t.NonNone().Tag == TagCollection
}

// ContainsStream reports whether a stream descriptor appears anywhere
// in t: directly, as a union member, or as a collection element.
func (t *Type) ContainsStream() bool {
	switch t.Tag {
	case TagStream:
		return true
	case TagUnion:
		for _, member := range t.Members {
			if member.ContainsStream() {
				return true
			}
		}
	case TagCollection:
		for _, element := range t.Elements {
			if element.ContainsStream() {
				return true
			}
		}
	}
	return false
}

// Has reports whether a union contains a member with the given
// primitive kind.
func (t *Type) Has(p Primitive) bool {
	if t.Tag == TagPrimitive {
		return t.Primitive == p
	}
	if t.Tag != TagUnion {
		return false
	}
	for _, member := range t.Members {
		if member.Tag == TagPrimitive && member.Primitive == p {
			return true
		}
	}
	return false
}

// FixedArity returns the number of command-line tokens t consumes when
// it is a non-variadic tuple, and ok=false otherwise.
func (t *Type) FixedArity() (n int, ok bool) {
	inner := t.NonNone()
	if inner.Tag != TagCollection || inner.Container != Tuple || inner.Variadic || len(inner.Elements) == 0 {
		return 0, false
	}
	return len(inner.Elements), true
}

// Validate checks structural limits: collections may hold scalars,
// unions of scalars, literals, or streams, but not other collections.
func (t *Type) Validate() error {
	return t.validate(false)
}

func (t *Type) validate(insideCollection bool) error {
	switch t.Tag {
	case TagCollection:
		if insideCollection {
			return fmt.Errorf("nested collection %s is not supported", t)
		}
		if t.Variadic && len(t.Elements) != 1 {
			return fmt.Errorf("variadic tuple must declare exactly one element type")
		}
		if t.Container.IsMapping() && len(t.Elements) != 0 && len(t.Elements) != 2 {
			return fmt.Errorf("%s must declare a key and a value type", t.Container)
		}
		if (t.Container == List || t.Container == Set || t.Container == Sequence || t.Container == AbstractSet) && len(t.Elements) > 1 {
			return fmt.Errorf("%s takes a single element type", t.Container)
		}
		for _, element := range t.Elements {
			if err := element.validate(true); err != nil {
				return err
			}
		}
	case TagUnion:
		for _, member := range t.Members {
			if err := member.validate(insideCollection); err != nil {
				return err
			}
		}
	case TagLiteral:
		if len(t.Literals) == 0 {
			return fmt.Errorf("literal type needs at least one value")
		}
		for _, value := range t.Literals {
			switch value.(type) {
			case int64, float64, bool, string:
			default:
				return fmt.Errorf("literal value %v has unsupported type %T", value, value)
			}
		}
	case TagUnknown:
		if t.Name == "" {
			return fmt.Errorf("unknown type has no name")
		}
	}
	return nil
}
