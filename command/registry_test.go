package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-eventually/go-commander/command"
	"github.com/get-eventually/go-commander/logger"
)

func noopKeywords(context.Context, command.Keywords) error { return nil }

func noopArguments(context.Context, command.Arguments) error { return nil }

func names(commands []command.Command) []string {
	result := make([]string, 0, len(commands))
	for _, cmd := range commands {
		result = append(result, cmd.Name)
	}

	return result
}

func newTestRegistry(t *testing.T, commands ...string) *command.Registry {
	t.Helper()

	registry := command.NewRegistry(command.WithLogger(logger.NewTest(t)))

	for _, name := range commands {
		require.NoError(t, registry.Add(command.NewKeyword(name, noopKeywords, "text")))
	}

	return registry
}

func TestRegistry_Add(t *testing.T) {
	t.Run("lookup returns the registered command", func(t *testing.T) {
		registry := newTestRegistry(t)
		cmd := command.NewTyped("count", noopArguments, command.P("n", command.TypeInteger))

		require.NoError(t, registry.Add(cmd))

		found, err := registry.Lookup("count")
		require.NoError(t, err)
		assert.Equal(t, cmd.Name, found.Name)
		assert.Equal(t, cmd.Schema, found.Schema)
		assert.Equal(t, command.TypedMode, found.Mode())
		assert.NotNil(t, found.Handler)
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		registry := newTestRegistry(t, "say")

		err := registry.Add(command.NewTyped("say", noopArguments))

		assert.Equal(t, command.ExistsError{Name: "say"}, err)
		assert.EqualError(t, err, "command: 'say' already exists")

		found, err := registry.Lookup("say")
		require.NoError(t, err)
		assert.Equal(t, command.KeywordMode, found.Mode())
		assert.Len(t, registry.Commands(), 1)
	})

	t.Run("names are case-sensitive", func(t *testing.T) {
		registry := newTestRegistry(t, "say")

		assert.NoError(t, registry.Add(command.NewKeyword("Say", noopKeywords)))
		assert.Equal(t, []string{"say", "Say"}, names(registry.Commands()))
	})

	t.Run("handler and schema must agree on the mode", func(t *testing.T) {
		registry := newTestRegistry(t)

		err := registry.Add(command.Command{
			Name:    "broken",
			Schema:  command.TypedSchema{command.P("n", command.TypeInteger)},
			Handler: command.KeywordHandlerFunc(noopKeywords),
		})

		assert.Equal(t, command.ModeMismatchError{
			Command:  "broken",
			Expected: command.TypedMode,
			Given:    command.KeywordMode,
		}, err)
		assert.False(t, registry.Exists("broken"))
	})
}

// modeOnlyHandler declares a Mode but has no handling method.
type modeOnlyHandler struct{}

func (modeOnlyHandler) Mode() command.Mode { return command.KeywordMode }

// mislabeledHandler handles typed arguments but declares the keyword Mode.
type mislabeledHandler struct{ command.TypedHandlerFunc }

func (mislabeledHandler) Mode() command.Mode { return command.KeywordMode }

func TestRegistry_AddIncompleteHandler(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		handler command.Handler
	}{
		{name: "handler without handling method", handler: modeOnlyHandler{}},
		{name: "handler declaring the wrong mode", handler: mislabeledHandler{command.TypedHandlerFunc(noopArguments)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			registry := newTestRegistry(t)

			err := registry.Add(command.Command{
				Name:    "x",
				Schema:  command.KeywordSchema{"a"},
				Handler: tc.handler,
			})

			assert.Equal(t, command.ModeMismatchError{
				Command:  "x",
				Expected: command.KeywordMode,
				Given:    0,
			}, err)
			assert.EqualError(t, err, "command: 'x' uses keyword mode, got unknown")
			assert.False(t, registry.Exists("x"))

			assert.ErrorIs(t,
				registry.Execute(ctx, "x", command.Keywords{"a": "1"}),
				command.NotFoundError{Target: command.ByName("x")},
			)
			assert.Empty(t, registry.History())
		})
	}

	t.Run("edit cannot install an incomplete handler", func(t *testing.T) {
		registry := newTestRegistry(t, "say")

		err := registry.Edit(command.ByName("say"), command.WithHandler(modeOnlyHandler{}))

		var mismatch command.ModeMismatchError
		require.ErrorAs(t, err, &mismatch)

		cmd, err := registry.Lookup("say")
		require.NoError(t, err)
		assert.IsType(t, command.KeywordHandlerFunc(nil), cmd.Handler)
	})
}

func TestRegistry_Lookup(t *testing.T) {
	registry := newTestRegistry(t, "first", "second")

	t.Run("command at index zero is found", func(t *testing.T) {
		i, ok := registry.Index("first")
		assert.True(t, ok)
		assert.Equal(t, 0, i)
		assert.True(t, registry.Exists("first"))

		_, err := registry.Lookup("first")
		assert.NoError(t, err)
	})

	t.Run("missing command", func(t *testing.T) {
		i, ok := registry.Index("missing")
		assert.False(t, ok)
		assert.Zero(t, i)
		assert.False(t, registry.Exists("missing"))

		_, err := registry.Lookup("missing")
		assert.Equal(t, command.NotFoundError{Target: command.ByName("missing")}, err)
		assert.EqualError(t, err, "command: 'missing' not found")
	})
}

func TestRegistry_Delete(t *testing.T) {
	t.Run("by name", func(t *testing.T) {
		registry := newTestRegistry(t, "a", "b", "c")

		require.NoError(t, registry.Delete(command.ByName("a")))

		assert.Equal(t, []string{"b", "c"}, names(registry.Commands()))

		_, err := registry.Lookup("a")
		assert.ErrorIs(t, err, command.NotFoundError{Target: command.ByName("a")})
	})

	t.Run("by index shifts the following commands", func(t *testing.T) {
		registry := newTestRegistry(t, "a", "b", "c")

		require.NoError(t, registry.Delete(command.ByIndex(1)))
		assert.Equal(t, []string{"a", "c"}, names(registry.Commands()))

		i, ok := registry.Index("c")
		assert.True(t, ok)
		assert.Equal(t, 1, i)
	})

	t.Run("unknown name leaves the registry unchanged", func(t *testing.T) {
		registry := newTestRegistry(t, "a")

		err := registry.Delete(command.ByName("b"))

		assert.Equal(t, command.NotFoundError{Target: command.ByName("b")}, err)
		assert.Equal(t, []string{"a"}, names(registry.Commands()))
	})

	t.Run("out of bounds index", func(t *testing.T) {
		registry := newTestRegistry(t, "a")

		for _, i := range []int{1, -1} {
			err := registry.Delete(command.ByIndex(i))

			var notFound command.NotFoundError
			require.True(t, errors.As(err, &notFound))
			assert.Equal(t, command.ByIndex(i), notFound.Target)
		}

		assert.EqualError(t, registry.Delete(command.ByIndex(3)), "command: at index 3 not found")
		assert.Equal(t, []string{"a"}, names(registry.Commands()))
	})
}

func TestRegistry_Edit(t *testing.T) {
	t.Run("only the specified fields are replaced", func(t *testing.T) {
		registry := newTestRegistry(t, "say")

		require.NoError(t, registry.Edit(command.ByName("say"), command.WithName("shout")))

		cmd, err := registry.Lookup("shout")
		require.NoError(t, err)
		assert.Equal(t, command.KeywordSchema{"text"}, cmd.Schema)
		assert.False(t, registry.Exists("say"))
	})

	t.Run("by index", func(t *testing.T) {
		registry := newTestRegistry(t, "a", "b")

		require.NoError(t, registry.Edit(command.ByIndex(0), command.WithSchema(command.KeywordSchema{"x", "y"})))

		cmd, err := registry.Lookup("a")
		require.NoError(t, err)
		assert.Equal(t, command.KeywordSchema{"x", "y"}, cmd.Schema)
	})

	t.Run("switching mode requires both handler and schema", func(t *testing.T) {
		registry := newTestRegistry(t, "a")
		typed := command.TypedSchema{command.P("n", command.TypeInteger)}

		err := registry.Edit(command.ByName("a"), command.WithSchema(typed))

		var mismatch command.ModeMismatchError
		require.True(t, errors.As(err, &mismatch))

		cmd, err := registry.Lookup("a")
		require.NoError(t, err)
		assert.Equal(t, command.KeywordMode, cmd.Mode())

		require.NoError(t, registry.Edit(command.ByName("a"),
			command.WithSchema(typed),
			command.WithHandler(command.TypedHandlerFunc(noopArguments)),
		))

		cmd, err = registry.Lookup("a")
		require.NoError(t, err)
		assert.Equal(t, command.TypedMode, cmd.Mode())
	})

	t.Run("renaming onto another command fails", func(t *testing.T) {
		registry := newTestRegistry(t, "a", "b")

		err := registry.Edit(command.ByName("a"), command.WithName("b"))

		assert.Equal(t, command.ExistsError{Name: "b"}, err)
		assert.Equal(t, []string{"a", "b"}, names(registry.Commands()))
	})

	t.Run("renaming onto itself is allowed", func(t *testing.T) {
		registry := newTestRegistry(t, "a")

		assert.NoError(t, registry.Edit(command.ByName("a"), command.WithName("a")))
	})

	t.Run("unknown target", func(t *testing.T) {
		registry := newTestRegistry(t, "a")

		assert.Equal(t,
			command.NotFoundError{Target: command.ByName("z")},
			registry.Edit(command.ByName("z"), command.WithName("y")),
		)
		assert.Equal(t,
			command.NotFoundError{Target: command.ByIndex(5)},
			registry.Edit(command.ByIndex(5), command.WithName("y")),
		)
	})
}

func TestRegistry_CommandsSnapshot(t *testing.T) {
	registry := newTestRegistry(t, "a", "b")

	snapshot := registry.Commands()
	snapshot[0].Name = "changed"

	assert.Equal(t, []string{"a", "b"}, names(registry.Commands()))
}
