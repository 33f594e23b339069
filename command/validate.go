package command

import (
	"maps"
	"strconv"
	"strings"
)

// Validate checks the dispatched Args against the Schema of the named Command.
//
// Keyword-mode arguments are returned as a copy of the supplied Keywords,
// typed-mode arguments are coerced into Arguments following the schema order.
// The returned value is either Keywords or Arguments, depending on the Schema Mode.
func Validate(name string, schema Schema, args Args) (any, error) {
	if args == nil {
		args = emptyArgs(schema)
	}

	if args.Mode() != schema.Mode() {
		return nil, ModeMismatchError{Command: name, Expected: schema.Mode(), Given: args.Mode()}
	}

	switch s := schema.(type) {
	case KeywordSchema:
		return ValidateKeywords(name, s, args.(Keywords))
	case TypedSchema:
		return CoerceTokens(name, s, args.(Tokens))
	default:
		return nil, ModeMismatchError{Command: name, Given: args.Mode()}
	}
}

func emptyArgs(schema Schema) Args {
	if schema.Mode() == TypedMode {
		return Tokens(nil)
	}

	return Keywords(nil)
}

// ValidateKeywords checks that every supplied keyword is accepted by the schema.
// Missing keywords are not an error.
func ValidateKeywords(name string, schema KeywordSchema, args Keywords) (Keywords, error) {
	for key := range args {
		if !schema.Accepts(key) {
			return nil, UnknownArgumentError{Command: name, Argument: key}
		}
	}

	validated := make(Keywords, len(args))
	maps.Copy(validated, args)

	return validated, nil
}

// CoerceTokens converts the raw tokens into typed Arguments, positionally
// against the schema parameters.
//
// The number of tokens must match the number of parameters exactly.
func CoerceTokens(name string, schema TypedSchema, tokens Tokens) (Arguments, error) {
	if len(tokens) != len(schema) {
		return nil, ArgumentsCountError{Command: name, Expected: schema, Got: len(tokens)}
	}

	arguments := make(Arguments, 0, len(schema))

	for i, param := range schema {
		value, err := Coerce(tokens[i], param.Type)
		if err != nil {
			return nil, err
		}

		arguments = append(arguments, Argument{Name: param.Name, Value: value})
	}

	return arguments, nil
}

// Coerce converts a single raw token into a value of the declared Type.
//
// A token wrapped in a matching pair of quotes is always a string literal,
// with the quotes stripped. The literals "true", "false" and "none"
// (in any case) map to true, false and nil regardless of the declared Type.
func Coerce(token string, typ Type) (any, error) {
	if literal, ok := unquote(token); ok {
		return literal, nil
	}

	switch strings.ToLower(token) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "none":
		return nil, nil
	}

	wrongType := WrongArgTypeError{Value: token, Expected: typ}

	switch typ {
	case TypeString:
		return token, nil

	case TypeInteger:
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, wrongType
		}

		return v, nil

	case TypeFloat:
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, wrongType
		}

		return v, nil

	case TypeBoolean:
		v, err := strconv.ParseBool(token)
		if err != nil {
			return nil, wrongType
		}

		return v, nil

	default:
		// TypeNone only accepts the "none" literal.
		return nil, wrongType
	}
}

func unquote(token string) (string, bool) {
	if len(token) < 2 {
		return "", false
	}

	first, last := token[0], token[len(token)-1]
	if first != last || (first != '\'' && first != '"') {
		return "", false
	}

	return token[1 : len(token)-1], true
}
