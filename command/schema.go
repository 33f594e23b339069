package command

import "fmt"

// Mode identifies how a Command receives its arguments.
type Mode uint8

// Supported argument modes.
const (
	// KeywordMode commands accept a name-to-string mapping, checked
	// against a list of accepted names.
	KeywordMode Mode = iota + 1
	// TypedMode commands accept an ordered list of raw string tokens,
	// coerced positionally against declared types.
	TypedMode
)

func (m Mode) String() string {
	switch m {
	case KeywordMode:
		return "keyword"
	case TypedMode:
		return "typed"
	default:
		return "unknown"
	}
}

// Type is the declared type of a typed-mode parameter.
type Type uint8

// Closed set of parameter types.
const (
	TypeString Type = iota + 1
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeNone
)

var typeNames = map[Type]string{
	TypeString:  "string",
	TypeInteger: "integer",
	TypeFloat:   "float",
	TypeBoolean: "boolean",
	TypeNone:    "none",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return "unknown"
}

// ParseType returns the Type named by s, e.g. "integer".
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("command.ParseType: unsupported type '%s'", s)
}

// Schema is the declared shape of the arguments accepted by a Command.
//
// It is either a KeywordSchema or a TypedSchema.
type Schema interface {
	Mode() Mode
	isSchema()
}

var (
	_ Schema = KeywordSchema(nil)
	_ Schema = TypedSchema(nil)
)

// KeywordSchema lists the argument names accepted by a keyword-mode Command.
// Order is kept for presentation only, validation ignores it.
type KeywordSchema []string

func (KeywordSchema) isSchema() {}

// Mode returns KeywordMode.
func (KeywordSchema) Mode() Mode { return KeywordMode }

// Accepts reports whether name is one of the accepted argument names.
func (s KeywordSchema) Accepts(name string) bool {
	for _, accepted := range s {
		if accepted == name {
			return true
		}
	}

	return false
}

// Param is a named, typed parameter of a TypedSchema.
type Param struct {
	Name string
	Type Type
}

// P is a short-hand constructor for Param.
func P(name string, typ Type) Param { return Param{Name: name, Type: typ} }

// TypedSchema is the ordered list of parameters of a typed-mode Command.
type TypedSchema []Param

func (TypedSchema) isSchema() {}

// Mode returns TypedMode.
func (TypedSchema) Mode() Mode { return TypedMode }
