package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/get-eventually/go-commander/logger"
)

// Moment is the point of a dispatch at which an Interceptor runs.
type Moment uint8

// Supported interception moments.
const (
	// Before interceptors run before the arguments are validated.
	Before Moment = iota + 1
	// After interceptors run after the handler completed successfully.
	After
)

func (m Moment) String() string {
	switch m {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "unknown"
	}
}

// Action is a side-effecting hook run by an Interceptor.
type Action func(ctx context.Context) error

// InterceptorID identifies an Interceptor added to a Registry.
type InterceptorID uuid.UUID

func (id InterceptorID) String() string { return uuid.UUID(id).String() }

// Interceptor is an Action bound to a Command name and a Moment.
type Interceptor struct {
	ID      InterceptorID
	Command string
	Moment  Moment
	Action  Action
}

// AddInterceptor attaches a new Interceptor to the named Command.
//
// The Command does not need to be registered yet. Interceptors for the same
// Command and Moment run in the order they have been added.
func (r *Registry) AddInterceptor(name string, moment Moment, action Action) InterceptorID {
	r.mx.Lock()
	defer r.mx.Unlock()

	id := InterceptorID(r.generateID())

	r.interceptors = append(r.interceptors, Interceptor{
		ID:      id,
		Command: name,
		Moment:  moment,
		Action:  action,
	})

	logger.Info(r.logger, "interceptor added",
		logger.Command(name),
		logger.With("moment", moment.String()),
		logger.With("interceptor", id.String()),
	)

	return id
}

// RemoveInterceptor detaches the Interceptor with the specified id.
// It returns false if no such Interceptor exists.
func (r *Registry) RemoveInterceptor(id InterceptorID) bool {
	r.mx.Lock()
	defer r.mx.Unlock()

	for i, interceptor := range r.interceptors {
		if interceptor.ID != id {
			continue
		}

		r.interceptors = append(r.interceptors[:i], r.interceptors[i+1:]...)
		logger.Info(r.logger, "interceptor removed", logger.Command(interceptor.Command))

		return true
	}

	return false
}

// Interceptors returns the Interceptors attached to the named Command
// for the specified Moment, in the order they have been added.
func (r *Registry) Interceptors(name string, moment Moment) []Interceptor {
	r.mx.RLock()
	defer r.mx.RUnlock()

	var matching []Interceptor

	for _, interceptor := range r.interceptors {
		if interceptor.Command == name && interceptor.Moment == moment {
			matching = append(matching, interceptor)
		}
	}

	return matching
}

func (r *Registry) intercept(ctx context.Context, name string, moment Moment) error {
	for _, interceptor := range r.Interceptors(name, moment) {
		logger.Debug(r.logger, "running interceptor",
			logger.Command(name),
			logger.With("moment", moment.String()),
			logger.With("interceptor", interceptor.ID.String()),
		)

		if err := interceptor.Action(ctx); err != nil {
			return fmt.Errorf("command.Registry: %s interceptor of '%s' failed, %w", moment, name, err)
		}
	}

	return nil
}
