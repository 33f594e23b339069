package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/get-eventually/go-commander/history"
)

var _ Dispatcher = ErrorRecorder{}

// ErrorRecorder is a Dispatcher extension that records dispatch
// failures as history Entries, with the Error field set.
//
// This is useful for always keeping track of failed calls, which would
// normally not be recorded when failing before the Handler runs
// (e.g. unknown command or invalid arguments).
type ErrorRecorder struct {
	Dispatcher

	// Appender is the history store used for recording the failures.
	Appender history.Appender

	// CaptureErrors specifies whether an error reported from the
	// Dispatcher should be captured (or "silenced") by this component
	// and return nil instead.
	//
	// Default behavior is to return all errors from the Dispatcher
	// to the caller.
	CaptureErrors bool

	// Clock is used to timestamp the recorded failures. Defaults to time.Now.
	Clock func() time.Time

	// GenerateID is used to identify the recorded failures. Defaults to uuid.New.
	GenerateID func() uuid.UUID
}

func (er ErrorRecorder) now() time.Time {
	if er.Clock != nil {
		return er.Clock()
	}

	return time.Now()
}

func (er ErrorRecorder) newID() uuid.UUID {
	if er.GenerateID != nil {
		return er.GenerateID()
	}

	return uuid.New()
}

// Execute delegates the dispatch to the wrapped Dispatcher and,
// in case of failure, appends the failed call to the history.
//
// If CaptureErrors is false, the error coming from the Dispatcher
// is returned to the caller.
//
// If CaptureErrors is true, the error from the Dispatcher is silenced,
// but an error can still be returned if the append operation fails.
func (er ErrorRecorder) Execute(ctx context.Context, name string, args Args) error {
	err := er.Dispatcher.Execute(ctx, name, args)
	if err == nil {
		return nil
	}

	entry := history.Entry{
		ID:         er.newID(),
		Command:    name,
		Arguments:  rawArguments(args),
		Error:      err.Error(),
		RecordedAt: er.now(),
	}

	appendErr := er.Appender.Append(ctx, entry)
	if appendErr != nil && er.CaptureErrors {
		// Append error only returned if silencing Dispatcher errors.
		return fmt.Errorf("command.ErrorRecorder: failed to record failed call, %w", appendErr)
	}

	if !er.CaptureErrors {
		return fmt.Errorf("command.ErrorRecorder: dispatch failed, %w", err)
	}

	return nil
}
