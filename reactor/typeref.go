package reactor

import (
	"strings"
)

// Kind discriminates the shape of a TypeRef.
type Kind uint8

const (
	// KindAny is the open type: it satisfies and is satisfied by everything.
	KindAny Kind = iota

	KindInt
	KindFloat
	KindString
	KindBool
	KindBytes

	KindList
	KindMap
	KindSet
	KindTuple

	// KindNamed references a Definition by name. The reference may be
	// registered later; until then it is an unresolved forward reference.
	KindNamed

	// KindParameterized is a generic application, e.g. list[Config].
	KindParameterized
)

// TypeRef describes the declared type of a slot or constructor parameter.
//
// A TypeRef is a small value and is always passed by value. Nominal types are
// referenced by name and resolved lazily through a Registry, so a slot may
// legally reference a type that has not been registered yet.
type TypeRef struct {
	Kind Kind

	// TypeName is set for KindNamed.
	TypeName string

	// Base and Args are set for KindParameterized.
	Base *TypeRef
	Args []TypeRef
}

// Any returns the open type.
func Any() TypeRef { return TypeRef{Kind: KindAny} }

// Int returns the integer primitive type.
func Int() TypeRef { return TypeRef{Kind: KindInt} }

// Float returns the floating-point primitive type.
func Float() TypeRef { return TypeRef{Kind: KindFloat} }

// String returns the string primitive type.
func String() TypeRef { return TypeRef{Kind: KindString} }

// Bool returns the boolean primitive type.
func Bool() TypeRef { return TypeRef{Kind: KindBool} }

// Bytes returns the byte-slice primitive type.
func Bytes() TypeRef { return TypeRef{Kind: KindBytes} }

// List returns the list container type.
func List() TypeRef { return TypeRef{Kind: KindList} }

// Map returns the map container type.
func Map() TypeRef { return TypeRef{Kind: KindMap} }

// Set returns the set container type.
func Set() TypeRef { return TypeRef{Kind: KindSet} }

// Tuple returns the tuple container type.
func Tuple() TypeRef { return TypeRef{Kind: KindTuple} }

// Named returns a nominal reference to a registered (or later-registered) type.
func Named(name string) TypeRef { return TypeRef{Kind: KindNamed, TypeName: name} }

// Generic returns a parameterized application of base to args.
func Generic(base TypeRef, args ...TypeRef) TypeRef {
	return TypeRef{Kind: KindParameterized, Base: &base, Args: args}
}

// IsPrimitive reports whether the type is a primitive or builtin container
// kind. Primitive slots are never constructed by the factory synthesizer;
// they are presumed supplied by another mechanism.
func (t TypeRef) IsPrimitive() bool {
	switch t.Kind {
	case KindInt, KindFloat, KindString, KindBool, KindBytes,
		KindList, KindMap, KindSet, KindTuple:
		return true
	}
	return false
}

// IsNamed reports whether the type is a nominal reference.
func (t TypeRef) IsNamed() bool { return t.Kind == KindNamed }

// IsZero reports whether the TypeRef is the zero value. The zero value is
// indistinguishable from Any by kind alone, which is fine: an undeclared type
// behaves as the open type everywhere it matters.
func (t TypeRef) IsZero() bool {
	return t.Kind == KindAny && t.TypeName == "" && t.Base == nil && t.Args == nil
}

// Equal reports structural equality of two type references.
func (t TypeRef) Equal(o TypeRef) bool {
	if t.Kind != o.Kind || t.TypeName != o.TypeName {
		return false
	}
	if (t.Base == nil) != (o.Base == nil) {
		return false
	}
	if t.Base != nil && !t.Base.Equal(*o.Base) {
		return false
	}
	if len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

var kindNames = map[Kind]string{
	KindAny:    "any",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindBool:   "bool",
	KindBytes:  "bytes",
	KindList:   "list",
	KindMap:    "map",
	KindSet:    "set",
	KindTuple:  "tuple",
}

// String renders the type in the textual form ParseTypeRef accepts.
func (t TypeRef) String() string {
	switch t.Kind {
	case KindNamed:
		return t.TypeName
	case KindParameterized:
		var sb strings.Builder
		if t.Base != nil {
			sb.WriteString(t.Base.String())
		}
		sb.WriteByte('[')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte(']')
		return sb.String()
	default:
		if n, ok := kindNames[t.Kind]; ok {
			return n
		}
		return "any"
	}
}

var namedKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

// ParseTypeRef parses the textual type syntax used by declarative definition
// files: "any", a primitive name, "base[arg, arg]" for parameterized types,
// and anything else as a nominal reference.
func ParseTypeRef(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeRef{}, &TypeSyntaxError{Input: s}
	}
	if open := strings.IndexByte(s, '['); open >= 0 {
		if !strings.HasSuffix(s, "]") {
			return TypeRef{}, &TypeSyntaxError{Input: s}
		}
		base, err := ParseTypeRef(s[:open])
		if err != nil {
			return TypeRef{}, &TypeSyntaxError{Input: s}
		}
		var args []TypeRef
		inner := strings.TrimSpace(s[open+1 : len(s)-1])
		if inner != "" {
			for _, part := range splitArgs(inner) {
				arg, err := ParseTypeRef(part)
				if err != nil {
					return TypeRef{}, &TypeSyntaxError{Input: s}
				}
				args = append(args, arg)
			}
		}
		return Generic(base, args...), nil
	}
	if k, ok := namedKinds[s]; ok {
		return TypeRef{Kind: k}, nil
	}
	return Named(s), nil
}

// splitArgs splits a bracketed argument list on top-level commas.
func splitArgs(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
