package command

// Command is a named unit of behavior, with a declared argument Schema
// and an attached Handler.
//
// Use NewKeyword or NewTyped to build a Command whose Handler and Schema
// agree on the argument Mode.
type Command struct {
	Name    string
	Schema  Schema
	Handler Handler
}

// NewKeyword returns a keyword-mode Command accepting the specified argument names.
func NewKeyword(name string, handler KeywordHandlerFunc, accepted ...string) Command {
	return Command{
		Name:    name,
		Schema:  KeywordSchema(accepted),
		Handler: handler,
	}
}

// NewTyped returns a typed-mode Command with the specified ordered parameters.
func NewTyped(name string, handler TypedHandlerFunc, params ...Param) Command {
	return Command{
		Name:    name,
		Schema:  TypedSchema(params),
		Handler: handler,
	}
}

// Mode returns the argument Mode of the Command, as declared by its Schema.
func (c Command) Mode() Mode {
	if c.Schema == nil {
		return 0
	}

	return c.Schema.Mode()
}

// check fails with ModeMismatchError unless the Handler implements the
// handling method of the Schema Mode and declares that same Mode.
func (c Command) check() error {
	var given Mode
	if c.Handler != nil {
		given = handlerMode(c.Handler)
	}

	if c.Schema == nil || given != c.Schema.Mode() {
		return ModeMismatchError{Command: c.Name, Expected: c.Mode(), Given: given}
	}

	return nil
}
