// Package command contains the command Registry and Dispatcher:
// named Commands are registered with a Handler and an argument Schema,
// and are later dispatched by name with arguments that are validated
// and coerced before the Handler runs.
//
// Two argument modes are supported. Keyword-mode Commands accept a set
// of named string arguments, checked against a KeywordSchema. Typed-mode
// Commands accept an ordered list of raw tokens, coerced against the
// declared types of a TypedSchema.
//
// Interceptors can be attached to a Command name to run side effects
// before and after its dispatch.
package command
