package command

import (
	"fmt"
	"strings"
)

// Error is the closed set of failure kinds produced by the Registry
// and the argument Validator.
//
// Use errors.As with one of the concrete types in this file to
// match a specific failure kind.
type Error interface {
	error
	isCommandError()
}

var (
	_ Error = ExistsError{}
	_ Error = NotFoundError{}
	_ Error = UnknownArgumentError{}
	_ Error = ArgumentsCountError{}
	_ Error = WrongArgTypeError{}
	_ Error = ModeMismatchError{}
)

// ExistsError is returned when registering (or renaming) a Command
// using a name that is already taken in the Registry.
type ExistsError struct {
	Name string
}

func (ExistsError) isCommandError() {}

func (err ExistsError) Error() string {
	return fmt.Sprintf("command: '%s' already exists", err.Name)
}

// NotFoundError is returned when no Command could be found for
// the Target used to search it, either a name or an index.
type NotFoundError struct {
	Target Target
}

func (NotFoundError) isCommandError() {}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("command: %s not found", err.Target)
}

// UnknownArgumentError is returned when a keyword-mode dispatch supplies
// an argument name that the Command does not accept.
type UnknownArgumentError struct {
	Command  string
	Argument string
}

func (UnknownArgumentError) isCommandError() {}

func (err UnknownArgumentError) Error() string {
	return fmt.Sprintf("command: '%s' does not accept argument '%s'", err.Command, err.Argument)
}

// ArgumentsCountError is returned when a typed-mode dispatch supplies
// a number of tokens different from the number of declared parameters.
type ArgumentsCountError struct {
	Command  string
	Expected TypedSchema
	Got      int
}

func (ArgumentsCountError) isCommandError() {}

func (err ArgumentsCountError) Error() string {
	names := make([]string, 0, len(err.Expected))
	for _, param := range err.Expected {
		names = append(names, "<"+param.Name+">")
	}

	return fmt.Sprintf(
		"command: '%s' expects %d arguments %s, got %d",
		err.Command, len(err.Expected), strings.Join(names, " "), err.Got,
	)
}

// WrongArgTypeError is returned when a raw token cannot be coerced
// into the Type declared for its position.
type WrongArgTypeError struct {
	Value    string
	Expected Type
}

func (WrongArgTypeError) isCommandError() {}

func (err WrongArgTypeError) Error() string {
	return fmt.Sprintf("command: argument '%s' has not the expected type '%s'", err.Value, err.Expected)
}

// ModeMismatchError is returned when the shape of a Handler or of the
// dispatched Args does not match the Mode of the Command Schema.
type ModeMismatchError struct {
	Command  string
	Expected Mode
	Given    Mode
}

func (ModeMismatchError) isCommandError() {}

func (err ModeMismatchError) Error() string {
	return fmt.Sprintf("command: '%s' uses %s mode, got %s", err.Command, err.Expected, err.Given)
}
