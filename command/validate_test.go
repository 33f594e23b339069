package command_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-eventually/go-commander/command"
)

func TestCoerce(t *testing.T) {
	testcases := []struct {
		name     string
		token    string
		typ      command.Type
		expected any
	}{
		{"integer", "42", command.TypeInteger, int64(42)},
		{"negative integer", "-7", command.TypeInteger, int64(-7)},
		{"float", "2.5", command.TypeFloat, 2.5},
		{"integer as float", "3", command.TypeFloat, 3.0},
		{"string", "abc", command.TypeString, "abc"},
		{"boolean", "1", command.TypeBoolean, true},
		{"single quotes override the type", "'42'", command.TypeInteger, "42"},
		{"double quotes override the type", `"hello world"`, command.TypeFloat, "hello world"},
		{"empty quoted string", `""`, command.TypeInteger, ""},
		{"true literal", "TRUE", command.TypeInteger, true},
		{"false literal", "False", command.TypeString, false},
		{"none literal", "None", command.TypeFloat, nil},
		{"quoted literal stays a string", "'true'", command.TypeBoolean, "true"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := command.Coerce(tc.token, tc.typ)

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestCoerce_WrongType(t *testing.T) {
	testcases := []struct {
		name  string
		token string
		typ   command.Type
	}{
		{"letters as integer", "abc", command.TypeInteger},
		{"float as integer", "4.2", command.TypeInteger},
		{"letters as float", "x1", command.TypeFloat},
		{"word as boolean", "yes", command.TypeBoolean},
		{"anything as none", "null", command.TypeNone},
		{"mismatched quotes", `'42"`, command.TypeInteger},
		{"single quote", "'", command.TypeInteger},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := command.Coerce(tc.token, tc.typ)

			assert.Equal(t, command.WrongArgTypeError{Value: tc.token, Expected: tc.typ}, err)
		})
	}
}

func TestValidate_Keywords(t *testing.T) {
	schema := command.KeywordSchema{"text", "to"}

	t.Run("subset of the accepted names", func(t *testing.T) {
		validated, err := command.Validate("say", schema, command.Keywords{"text": "hi"})

		assert.NoError(t, err)
		assert.Equal(t, command.Keywords{"text": "hi"}, validated)
	})

	t.Run("no arguments at all", func(t *testing.T) {
		validated, err := command.Validate("say", schema, nil)

		assert.NoError(t, err)
		assert.Empty(t, validated)
	})

	t.Run("unknown argument", func(t *testing.T) {
		_, err := command.Validate("say", schema, command.Keywords{"text": "hi", "loud": "true"})

		assert.Equal(t, command.UnknownArgumentError{Command: "say", Argument: "loud"}, err)
	})

	t.Run("tokens are not accepted", func(t *testing.T) {
		_, err := command.Validate("say", schema, command.Tokens{"hi"})

		assert.Equal(t, command.ModeMismatchError{
			Command:  "say",
			Expected: command.KeywordMode,
			Given:    command.TypedMode,
		}, err)
	})
}

func TestValidate_Tokens(t *testing.T) {
	schema := command.TypedSchema{
		command.P("count", command.TypeInteger),
		command.P("ratio", command.TypeFloat),
		command.P("label", command.TypeString),
	}

	t.Run("coerces in schema order", func(t *testing.T) {
		validated, err := command.Validate("scale", schema, command.Tokens{"3", "0.5", "'7'"})
		require.NoError(t, err)

		args, ok := validated.(command.Arguments)
		require.True(t, ok)

		assert.Equal(t, command.Arguments{
			{Name: "count", Value: int64(3)},
			{Name: "ratio", Value: 0.5},
			{Name: "label", Value: "7"},
		}, args)

		count, ok := args.Int("count")
		assert.True(t, ok)
		assert.Equal(t, int64(3), count)

		ratio, ok := args.Float("ratio")
		assert.True(t, ok)
		assert.Equal(t, 0.5, ratio)

		label, ok := args.String("label")
		assert.True(t, ok)
		assert.Equal(t, "7", label)

		_, ok = args.Bool("label")
		assert.False(t, ok)

		assert.Equal(t, map[string]any{"count": int64(3), "ratio": 0.5, "label": "7"}, args.Map())
	})

	t.Run("wrong tokens count", func(t *testing.T) {
		_, err := command.Validate("count", command.TypedSchema{command.P("count", command.TypeInteger)}, command.Tokens{"1", "2"})

		var countErr command.ArgumentsCountError
		require.True(t, errors.As(err, &countErr))
		assert.Equal(t, "count", countErr.Command)
		assert.Equal(t, 2, countErr.Got)
		assert.Len(t, countErr.Expected, 1)
		assert.EqualError(t, err, "command: 'count' expects 1 arguments <count>, got 2")
	})

	t.Run("wrong token type", func(t *testing.T) {
		_, err := command.Validate("scale", schema, command.Tokens{"abc", "0.5", "x"})

		assert.Equal(t, command.WrongArgTypeError{Value: "abc", Expected: command.TypeInteger}, err)
		assert.EqualError(t, err, "command: argument 'abc' has not the expected type 'integer'")
	})

	t.Run("keywords are not accepted", func(t *testing.T) {
		_, err := command.Validate("scale", schema, command.Keywords{"count": "1"})

		var mismatchErr command.ModeMismatchError
		assert.True(t, errors.As(err, &mismatchErr))
	})
}

func TestParseType(t *testing.T) {
	for _, typ := range []command.Type{
		command.TypeString,
		command.TypeInteger,
		command.TypeFloat,
		command.TypeBoolean,
		command.TypeNone,
	} {
		parsed, err := command.ParseType(typ.String())

		assert.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	_, err := command.ParseType("complex")
	assert.Error(t, err)
}
