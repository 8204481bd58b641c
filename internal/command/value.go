package command

import (
	"strconv"
	"strings"
)

// ValueKind identifies which variant of a Value is populated.
type ValueKind int

const (
	StringVal ValueKind = iota
	NumberVal
	BoolVal
	StringListVal
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case StringVal:
		return "string"
	case NumberVal:
		return "number"
	case BoolVal:
		return "boolean"
	case StringListVal:
		return "string list"
	}
	return "unknown"
}

// Value is a closed tagged union for flag and argument values. Exactly one
// variant field is meaningful, selected by Kind, so type checks are
// exhaustive switches rather than runtime probing.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	List []string
}

// String constructs a string value.
func String(s string) Value { return Value{Kind: StringVal, Str: s} }

// Number constructs a numeric value.
func Number(n float64) Value { return Value{Kind: NumberVal, Num: n} }

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{Kind: BoolVal, Bool: b} }

// StringList constructs a list-of-strings value.
func StringList(items ...string) Value { return Value{Kind: StringListVal, List: items} }

// Text renders the value back to user-facing text.
func (v Value) Text() string {
	switch v.Kind {
	case StringVal:
		return v.Str
	case NumberVal:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case BoolVal:
		return strconv.FormatBool(v.Bool)
	case StringListVal:
		return strings.Join(v.List, ",")
	}
	return ""
}

// Native returns the value as a plain Go value for JSON encoding.
func (v Value) Native() any {
	switch v.Kind {
	case StringVal:
		return v.Str
	case NumberVal:
		return v.Num
	case BoolVal:
		return v.Bool
	case StringListVal:
		return v.List
	}
	return nil
}

// valueFromToken converts a lexed value token to a Value.
func valueFromToken(tok Token) Value {
	switch tok.Kind {
	case TokenNumber:
		n, _ := strconv.ParseFloat(tok.Value, 64)
		return Number(n)
	case TokenBoolean:
		return Bool(tok.Value == "true")
	default:
		return String(tok.Value)
	}
}
