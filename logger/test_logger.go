package logger

import (
	"fmt"
	"strings"
	"testing"
)

var _ Logger = Test{}

// Test is a logger.Logger implementation using a testing.T instance,
// so that log lines show up next to the test that produced them.
type Test struct{ t testing.TB }

// NewTest returns a new logger using the provided testing.T instance.
func NewTest(t testing.TB) Test {
	return Test{t: t}
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", field.Key, field.Value))
	}

	return " {" + strings.Join(parts, ", ") + "}"
}

// Debug uses t.Logf to print a debug message.
func (t Test) Debug(msg string, fields ...Field) {
	t.t.Helper()
	t.t.Logf("[debug] %s%s", msg, formatFields(fields))
}

// Info uses t.Logf to print an info message.
func (t Test) Info(msg string, fields ...Field) {
	t.t.Helper()
	t.t.Logf("[info] %s%s", msg, formatFields(fields))
}

// Error uses t.Logf to print an error message.
func (t Test) Error(msg string, fields ...Field) {
	t.t.Helper()
	t.t.Logf("[error] %s%s", msg, formatFields(fields))
}
