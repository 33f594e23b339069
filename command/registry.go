package command

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/get-eventually/go-commander/history"
	"github.com/get-eventually/go-commander/logger"
)

// Target identifies a Command in a Registry, either ByName or ByIndex.
type Target interface {
	fmt.Stringer
	isTarget()
}

var (
	_ Target = ByName("")
	_ Target = ByIndex(0)
)

// ByName targets the Command registered with the specified name.
type ByName string

func (ByName) isTarget() {}

func (n ByName) String() string { return fmt.Sprintf("'%s'", string(n)) }

// ByIndex targets the Command at the specified position, in registration order.
//
// Indexes shift down when a preceding Command is deleted.
type ByIndex int

func (ByIndex) isTarget() {}

func (i ByIndex) String() string { return fmt.Sprintf("at index %d", int(i)) }

// Registry owns an ordered set of uniquely-named Commands, the Interceptors
// attached to them and the history of the dispatched calls.
//
// A Registry is safe for concurrent use: each public operation holds
// the Registry lock for its own critical section. Handlers and Interceptor
// actions run outside of the lock, so they can use the Registry themselves.
//
// Use NewRegistry to create a new instance.
type Registry struct {
	mx           sync.RWMutex
	commands     []Command
	interceptors []Interceptor
	calls        []string

	logger     logger.Logger
	recorder   history.Appender
	clock      func() time.Time
	generateID func() uuid.UUID
}

// NewRegistry returns an empty Registry configured with the provided options.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		clock:      time.Now,
		generateID: uuid.New,
	}

	for _, opt := range opts {
		opt.apply(r)
	}

	return r
}

// index returns the position of the named command. Must be called with the lock held.
func (r *Registry) index(name string) (int, bool) {
	for i, cmd := range r.commands {
		if cmd.Name == name {
			return i, true
		}
	}

	return 0, false
}

// resolve returns the position of the targeted command. Must be called with the lock held.
func (r *Registry) resolve(target Target) (int, error) {
	switch t := target.(type) {
	case ByName:
		if i, ok := r.index(string(t)); ok {
			return i, nil
		}
	case ByIndex:
		if int(t) >= 0 && int(t) < len(r.commands) {
			return int(t), nil
		}
	}

	return 0, NotFoundError{Target: target}
}

// Add registers a new Command, after the ones already registered.
//
// An ExistsError is returned if a Command with the same name is already
// registered, or a ModeMismatchError if the Command Handler and Schema
// do not agree on the argument mode. In both cases the Registry is unchanged.
func (r *Registry) Add(cmd Command) error {
	if err := cmd.check(); err != nil {
		return err
	}

	r.mx.Lock()
	defer r.mx.Unlock()

	if _, ok := r.index(cmd.Name); ok {
		return ExistsError{Name: cmd.Name}
	}

	r.commands = append(r.commands, cmd)

	logger.Info(r.logger, "command added", logger.Command(cmd.Name))
	logger.Debug(r.logger, "command schema",
		logger.Command(cmd.Name),
		logger.With("mode", cmd.Mode().String()),
		logger.With("schema", cmd.Schema),
	)

	return nil
}

// Delete removes the targeted Command from the Registry.
//
// A NotFoundError carrying the same Target is returned if no Command matches.
func (r *Registry) Delete(target Target) error {
	r.mx.Lock()
	defer r.mx.Unlock()

	i, err := r.resolve(target)
	if err != nil {
		return err
	}

	name := r.commands[i].Name
	r.commands = append(r.commands[:i], r.commands[i+1:]...)

	logger.Info(r.logger, "command deleted", logger.Command(name), logger.With("index", i))

	return nil
}

// Edit updates the targeted Command in place, replacing only the fields
// specified through the EditOptions.
//
// The edit is all-or-nothing: a NotFoundError, an ExistsError (when renaming
// onto another registered name) or a ModeMismatchError leave the Command unchanged.
func (r *Registry) Edit(target Target, opts ...EditOption) error {
	r.mx.Lock()
	defer r.mx.Unlock()

	i, err := r.resolve(target)
	if err != nil {
		return err
	}

	edited := r.commands[i]
	for _, opt := range opts {
		opt.apply(&edited)
	}

	if err := edited.check(); err != nil {
		return err
	}

	if j, ok := r.index(edited.Name); ok && j != i {
		return ExistsError{Name: edited.Name}
	}

	previousName := r.commands[i].Name
	r.commands[i] = edited

	logger.Info(r.logger, "command edited",
		logger.Command(edited.Name),
		logger.With("previous", previousName),
		logger.With("index", i),
	)

	return nil
}

// Lookup returns the Command registered with the specified name,
// or a NotFoundError.
func (r *Registry) Lookup(name string) (Command, error) {
	r.mx.RLock()
	defer r.mx.RUnlock()

	i, ok := r.index(name)
	if !ok {
		return Command{}, NotFoundError{Target: ByName(name)}
	}

	return r.commands[i], nil
}

// Exists reports whether a Command with the specified name is registered.
func (r *Registry) Exists(name string) bool {
	_, ok := r.Index(name)
	return ok
}

// Index returns the position of the named Command in registration order.
// The boolean is false when no such Command exists.
func (r *Registry) Index(name string) (int, bool) {
	r.mx.RLock()
	defer r.mx.RUnlock()

	return r.index(name)
}

// Commands returns a snapshot of the registered Commands, in registration order.
func (r *Registry) Commands() []Command {
	r.mx.RLock()
	defer r.mx.RUnlock()

	commands := make([]Command, len(r.commands))
	copy(commands, r.commands)

	return commands
}

// History returns a snapshot of the names of the dispatched Commands,
// in dispatch order.
func (r *Registry) History() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()

	calls := make([]string, len(r.calls))
	copy(calls, r.calls)

	return calls
}
