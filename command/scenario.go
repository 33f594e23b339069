package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ScenarioInit is the entrypoint of the dispatch scenario API.
//
// A dispatch scenario can either register some Commands first by using Given(),
// or test a dispatch on a "clean-slate" Registry by using When() directly.
type ScenarioInit struct{}

// Scenario is a scenario type to test the outcome of a dispatch
// on a Registry.
//
// Successful dispatches produce a side effect on the Registry call history:
// this scenario API helps with testing the history produced, or the error
// returned, when dispatching a specific call.
func Scenario() ScenarioInit {
	return ScenarioInit{}
}

// Given sets the scenario preconditions, as the Commands registered
// in the Registry before the dispatch.
func (sc ScenarioInit) Given(commands ...Command) ScenarioGiven {
	return ScenarioGiven{given: commands}
}

// When provides the call to dispatch.
func (sc ScenarioInit) When(name string, args Args) ScenarioWhen {
	return ScenarioWhen{
		ScenarioGiven: ScenarioGiven{given: nil},
		name:          name,
		args:          args,
	}
}

// ScenarioGiven is the state of the scenario once the Commands
// to register have been provided using Given().
type ScenarioGiven struct {
	given []Command
}

// When provides the call to dispatch.
func (sc ScenarioGiven) When(name string, args Args) ScenarioWhen {
	return ScenarioWhen{
		ScenarioGiven: sc,
		name:          name,
		args:          args,
	}
}

// ScenarioWhen is the state of the scenario once the registered Commands
// and the call to dispatch have been provided.
type ScenarioWhen struct {
	ScenarioGiven

	name string
	args Args
}

// Then sets a positive expectation on the scenario outcome: the dispatch
// succeeds and the Registry call history equals the names provided in input.
func (sc ScenarioWhen) Then(calls ...string) ScenarioThen {
	if calls == nil {
		calls = []string{}
	}

	return ScenarioThen{
		ScenarioWhen: sc,
		then:         calls,
		thenError:    nil,
		wantError:    false,
	}
}

// ThenError sets a negative expectation on the scenario outcome,
// to produce an error value that is similar to the one provided in input.
//
// Error assertion happens using errors.Is(), so the error returned
// by the dispatch is unwrapped until the cause error to match
// the provided expectation.
func (sc ScenarioWhen) ThenError(err error) ScenarioThen {
	return ScenarioThen{
		ScenarioWhen: sc,
		then:         nil,
		thenError:    err,
		wantError:    true,
	}
}

// ThenFails sets a negative expectation on the scenario outcome,
// to fail the dispatch with no particular assertion on the error returned.
func (sc ScenarioWhen) ThenFails() ScenarioThen {
	return ScenarioThen{
		ScenarioWhen: sc,
		then:         nil,
		thenError:    nil,
		wantError:    true,
	}
}

// ScenarioThen is the state of the scenario once the preconditions
// and expectations have been fully specified.
type ScenarioThen struct {
	ScenarioWhen

	then      []string
	thenError error
	wantError bool
}

// AssertOn performs the specified expectations of the scenario, using the Registry
// instance produced by the provided factory function.
//
// The Given Commands are registered on the Registry before the dispatch.
func (sc ScenarioThen) AssertOn(t *testing.T, registryFactory func() *Registry) {
	t.Helper()

	registry := registryFactory()

	for _, cmd := range sc.given {
		if !assert.NoError(t, registry.Add(cmd)) {
			return
		}
	}

	err := registry.Execute(context.Background(), sc.name, sc.args)

	if !sc.wantError {
		assert.NoError(t, err)
		assert.Equal(t, sc.then, registry.History())

		return
	}

	if !assert.Error(t, err) {
		return
	}

	if sc.thenError != nil {
		assert.ErrorIs(t, err, sc.thenError)
	}
}
