package command

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-eventually/go-commander/history"
	"github.com/get-eventually/go-commander/logger"
)

// Option configures a Registry.
type Option interface {
	apply(*Registry)
}

type option func(*Registry)

func (apply option) apply(r *Registry) { apply(r) }

// WithLogger sets the Logger used by the Registry. No logging happens by default.
func WithLogger(l logger.Logger) Option {
	return option(func(r *Registry) {
		r.logger = l
	})
}

// WithRecorder makes the Registry record every dispatched call
// in the provided history.Appender, in addition to the in-memory history.
func WithRecorder(recorder history.Appender) Option {
	return option(func(r *Registry) {
		r.recorder = recorder
	})
}

// WithClock sets the function used to timestamp recorded calls. Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return option(func(r *Registry) {
		r.clock = clock
	})
}

// WithIDGenerator sets the function used to identify recorded calls. Defaults to uuid.New.
func WithIDGenerator(generate func() uuid.UUID) Option {
	return option(func(r *Registry) {
		r.generateID = generate
	})
}

// EditOption replaces a single field of a Command, see Registry.Edit.
type EditOption interface {
	apply(*Command)
}

type editOption func(*Command)

func (apply editOption) apply(cmd *Command) { apply(cmd) }

// WithName renames the edited Command.
func WithName(name string) EditOption {
	return editOption(func(cmd *Command) {
		cmd.Name = name
	})
}

// WithHandler replaces the Handler of the edited Command.
func WithHandler(handler Handler) EditOption {
	return editOption(func(cmd *Command) {
		cmd.Handler = handler
	})
}

// WithSchema replaces the Schema of the edited Command.
func WithSchema(schema Schema) EditOption {
	return editOption(func(cmd *Command) {
		cmd.Schema = schema
	})
}
