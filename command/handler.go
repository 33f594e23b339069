package command

import (
	"context"
	"fmt"
)

// Handler is the behavior attached to a Command.
//
// It is either a KeywordHandler or a TypedHandler, and its Mode
// must match the Mode of the Command Schema.
type Handler interface {
	Mode() Mode
}

// KeywordHandler handles keyword-mode dispatches, receiving exactly
// the keywords supplied by the caller.
type KeywordHandler interface {
	Handler
	HandleKeywords(ctx context.Context, args Keywords) error
}

// TypedHandler handles typed-mode dispatches, receiving the coerced Arguments.
type TypedHandler interface {
	Handler
	HandleArguments(ctx context.Context, args Arguments) error
}

var (
	_ KeywordHandler = KeywordHandlerFunc(nil)
	_ TypedHandler   = TypedHandlerFunc(nil)
)

// KeywordHandlerFunc is a functional KeywordHandler implementation.
type KeywordHandlerFunc func(ctx context.Context, args Keywords) error

// Mode returns KeywordMode.
func (KeywordHandlerFunc) Mode() Mode { return KeywordMode }

// HandleKeywords calls fn.
func (fn KeywordHandlerFunc) HandleKeywords(ctx context.Context, args Keywords) error {
	return fn(ctx, args)
}

// TypedHandlerFunc is a functional TypedHandler implementation.
type TypedHandlerFunc func(ctx context.Context, args Arguments) error

// Mode returns TypedMode.
func (TypedHandlerFunc) Mode() Mode { return TypedMode }

// HandleArguments calls fn.
func (fn TypedHandlerFunc) HandleArguments(ctx context.Context, args Arguments) error {
	return fn(ctx, args)
}

// handlerMode returns the Mode the handler can actually serve: its declared
// Mode, only if it implements the matching handling method. Zero otherwise.
func handlerMode(handler Handler) Mode {
	switch mode := handler.Mode(); mode {
	case KeywordMode:
		if _, ok := handler.(KeywordHandler); ok {
			return mode
		}
	case TypedMode:
		if _, ok := handler.(TypedHandler); ok {
			return mode
		}
	}

	return 0
}

// invoke calls the handler with the validated arguments returned by Validate.
func invoke(ctx context.Context, handler Handler, validated any) error {
	switch args := validated.(type) {
	case Keywords:
		if h, ok := handler.(KeywordHandler); ok {
			return h.HandleKeywords(ctx, args)
		}
	case Arguments:
		if h, ok := handler.(TypedHandler); ok {
			return h.HandleArguments(ctx, args)
		}
	}

	return fmt.Errorf("command: handler %T cannot handle %T arguments", handler, validated)
}
