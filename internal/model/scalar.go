package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ScalarKind is the closed set of attribute value kinds. The kind is decided
// once when the spreadsheet is parsed, never at render time.
type ScalarKind int

const (
	ScalarNull ScalarKind = iota
	ScalarString
	ScalarNumber
	ScalarBool
)

// Scalar is a typed spreadsheet cell value.
type Scalar struct {
	Kind ScalarKind
	Str  string
	Num  float64
	Bool bool
}

// ParseScalar classifies a raw cell value. Empty cells are null; values that
// read as booleans or numbers keep those kinds; everything else is a string.
func ParseScalar(raw string) Scalar {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Scalar{Kind: ScalarNull}
	}
	switch strings.ToLower(s) {
	case "true", "false":
		return Scalar{Kind: ScalarBool, Bool: strings.EqualFold(s, "true")}
	}
	if n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return Scalar{Kind: ScalarNumber, Num: n}
	}
	return Scalar{Kind: ScalarString, Str: s}
}

// IsNull reports whether the cell was empty.
func (s Scalar) IsNull() bool { return s.Kind == ScalarNull }

// String renders the value for display.
func (s Scalar) String() string {
	switch s.Kind {
	case ScalarString:
		return s.Str
	case ScalarNumber:
		return strconv.FormatFloat(s.Num, 'f', -1, 64)
	case ScalarBool:
		return strconv.FormatBool(s.Bool)
	default:
		return ""
	}
}

// MarshalJSON emits the native JSON value for the kind.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case ScalarString:
		return json.Marshal(s.Str)
	case ScalarNumber:
		return json.Marshal(s.Num)
	case ScalarBool:
		return json.Marshal(s.Bool)
	default:
		return []byte("null"), nil
	}
}
