package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/get-eventually/go-commander/command"
	"github.com/get-eventually/go-commander/logger"
)

var errMissingText = errors.New("say: missing 'text' keyword")

func sayCommand(out io.Writer) command.Command {
	return command.NewKeyword("say", func(_ context.Context, args command.Keywords) error {
		text, ok := args["text"]
		if !ok {
			return errMissingText
		}

		if to, ok := args["to"]; ok {
			_, err := fmt.Fprintf(out, "%s, %s\n", text, to)
			return err
		}

		_, err := fmt.Fprintln(out, text)

		return err
	}, "text", "to")
}

func addCommand(out io.Writer) command.Command {
	return command.NewTyped("add", func(_ context.Context, args command.Arguments) error {
		a, okA := args.Int("a")
		b, okB := args.Int("b")

		if !okA || !okB {
			return fmt.Errorf("add: both arguments must be integers, got %v", args.Map())
		}

		_, err := fmt.Fprintln(out, a+b)

		return err
	}, command.P("a", command.TypeInteger), command.P("b", command.TypeInteger))
}

// register adds the sample commands to the Registry.
func register(registry *command.Registry, out io.Writer, log logger.Logger) error {
	for _, cmd := range []command.Command{sayCommand(out), addCommand(out)} {
		if err := registry.Add(cmd); err != nil {
			return fmt.Errorf("commander.main: failed to register command, %w", err)
		}
	}

	registry.AddInterceptor("say", command.After, func(context.Context) error {
		logger.Info(log, "something was said", logger.Command("say"))
		return nil
	})

	return nil
}
