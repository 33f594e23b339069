package command

// Args is the input of a dispatch, either Keywords or Tokens,
// matching the Mode of the target Command.
type Args interface {
	Mode() Mode
	isArgs()
}

var (
	_ Args = Keywords{}
	_ Args = Tokens(nil)
)

// Keywords are the arguments of a keyword-mode dispatch.
type Keywords map[string]string

func (Keywords) isArgs() {}

// Mode returns KeywordMode.
func (Keywords) Mode() Mode { return KeywordMode }

// Tokens are the raw string arguments of a typed-mode dispatch.
type Tokens []string

func (Tokens) isArgs() {}

// Mode returns TypedMode.
func (Tokens) Mode() Mode { return TypedMode }

// Argument is a single coerced argument value.
//
// Value holds one of string, int64, float64, bool, or nil
// when the "none" literal was supplied.
type Argument struct {
	Name  string
	Value any
}

// Arguments are the coerced arguments handed to a TypedHandler,
// in the same order as the parameters of the Command TypedSchema.
type Arguments []Argument

// Get returns the value of the named argument.
func (a Arguments) Get(name string) (any, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}

	return nil, false
}

// String returns the named argument if it holds a string.
func (a Arguments) String(name string) (string, bool) {
	v, _ := a.Get(name)
	s, ok := v.(string)

	return s, ok
}

// Int returns the named argument if it holds an integer.
func (a Arguments) Int(name string) (int64, bool) {
	v, _ := a.Get(name)
	i, ok := v.(int64)

	return i, ok
}

// Float returns the named argument if it holds a float.
func (a Arguments) Float(name string) (float64, bool) {
	v, _ := a.Get(name)
	f, ok := v.(float64)

	return f, ok
}

// Bool returns the named argument if it holds a boolean.
func (a Arguments) Bool(name string) (bool, bool) {
	v, _ := a.Get(name)
	b, ok := v.(bool)

	return b, ok
}

// Map returns the arguments as a name-to-value map.
func (a Arguments) Map() map[string]any {
	m := make(map[string]any, len(a))
	for _, arg := range a {
		m[arg.Name] = arg.Value
	}

	return m
}
