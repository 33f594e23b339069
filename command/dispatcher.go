package command

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/get-eventually/go-commander/history"
	"github.com/get-eventually/go-commander/logger"
)

// Dispatcher represents a component that routes a call to the Command
// registered with the specified name.
//
// Dispatching is synchronous: Execute returns when the Command Handler
// and all its Interceptors finished execution.
type Dispatcher interface {
	Execute(ctx context.Context, name string, args Args) error
}

var _ Dispatcher = new(Registry)

// Execute dispatches a call to the named Command.
//
// The steps of a dispatch are, in order:
//  1. lookup of the Command, failing with NotFoundError;
//  2. the Before interceptors of the Command;
//  3. validation and coercion of args, failing with the Error kinds of Validate;
//  4. recording of the call in the Registry history (and recorder, if any);
//  5. the Command Handler;
//  6. the After interceptors of the Command.
//
// Any failure aborts the dispatch. Nothing is rolled back: a call recorded
// in step 4 stays in the history even if the Handler fails.
func (r *Registry) Execute(ctx context.Context, name string, args Args) error {
	logger.Debug(r.logger, "command dispatch requested", logger.Command(name))

	cmd, err := r.Lookup(name)
	if err != nil {
		return err
	}

	if err := r.intercept(ctx, cmd.Name, Before); err != nil {
		return err
	}

	validated, err := Validate(cmd.Name, cmd.Schema, args)
	if err != nil {
		logger.Debug(r.logger, "command arguments rejected", logger.Command(cmd.Name), logger.Err(err))
		return err
	}

	if err := r.record(ctx, cmd.Name, validated); err != nil {
		return err
	}

	logger.Info(r.logger, "command called", logger.Command(cmd.Name))

	if err := invoke(ctx, cmd.Handler, validated); err != nil {
		logger.Error(r.logger, "command failed", logger.Command(cmd.Name), logger.Err(err))
		return fmt.Errorf("command.Registry: '%s' handler failed, %w", cmd.Name, err)
	}

	return r.intercept(ctx, cmd.Name, After)
}

func (r *Registry) record(ctx context.Context, name string, validated any) error {
	r.mx.Lock()
	r.calls = append(r.calls, name)
	r.mx.Unlock()

	if r.recorder == nil {
		return nil
	}

	entry := history.Entry{
		ID:         r.generateID(),
		Command:    name,
		Arguments:  validatedArguments(validated),
		RecordedAt: r.clock(),
	}

	if err := r.recorder.Append(ctx, entry); err != nil {
		return fmt.Errorf("command.Registry: failed to record '%s' call, %w", name, err)
	}

	return nil
}

func validatedArguments(validated any) map[string]any {
	switch args := validated.(type) {
	case Keywords:
		return keywordArguments(args)
	case Arguments:
		return args.Map()
	default:
		return nil
	}
}

func keywordArguments(args Keywords) map[string]any {
	m := make(map[string]any, len(args))
	for k, v := range args {
		m[k] = v
	}

	return m
}

// rawArguments maps unvalidated Args to history arguments.
// Tokens are keyed by their position.
func rawArguments(args Args) map[string]any {
	switch a := args.(type) {
	case Keywords:
		return keywordArguments(a)
	case Tokens:
		m := make(map[string]any, len(a))
		for i, token := range a {
			m[strconv.Itoa(i)] = token
		}

		return m
	default:
		return nil
	}
}

// Call is a dispatch recorded by a TrackingDispatcher.
type Call struct {
	Name string
	Args Args
}

var _ Dispatcher = &TrackingDispatcher{}

// TrackingDispatcher is a fake component that can be used as a command.Dispatcher
// instance, but keeps the received calls in-memory.
//
// Useful for testing, this implementation is thread-safe.
type TrackingDispatcher struct {
	mx    sync.RWMutex
	calls []Call

	// Err, if set, is returned by every Execute call.
	Err error
}

// NewTrackingDispatcher creates a new instance of a fake in-memory command.Dispatcher.
func NewTrackingDispatcher() *TrackingDispatcher {
	return new(TrackingDispatcher)
}

// Execute records the provided call internally.
func (d *TrackingDispatcher) Execute(_ context.Context, name string, args Args) error {
	d.mx.Lock()
	defer d.mx.Unlock()

	d.calls = append(d.calls, Call{Name: name, Args: args})

	return d.Err
}

// RecordedCalls returns the list of calls recorded by the dispatcher.
func (d *TrackingDispatcher) RecordedCalls() []Call {
	d.mx.RLock()
	defer d.mx.RUnlock()

	return slices.Clone(d.calls)
}

// FlushCalls returns the list of calls recorded by the dispatcher and
// resets the internal list to nil.
func (d *TrackingDispatcher) FlushCalls() []Call {
	d.mx.Lock()
	defer d.mx.Unlock()

	calls := d.calls
	d.calls = nil

	return calls
}
