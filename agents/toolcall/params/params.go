/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package params

import (
	"fmt"
	"maps"
)

const (
	// OutputKey holds the text a tool produced on success.
	OutputKey = "output"
	// ErrorKey holds the descriptive failure text a tool produced.
	ErrorKey = "error"
)

// Extract returns the named argument as a T.
// It fails when the argument is absent or has an incompatible type.
func Extract[T any](args map[string]any, name string) (T, error) {
	value, ok := args[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s parameter is required", name)
	}
	return coerce[T](name, value)
}

// coerce converts a decoded JSON value into T.
// JSON numbers decode as float64, so integer targets are converted explicitly.
func coerce[T any](name string, value any) (T, error) {
	if v, ok := value.(T); ok {
		return v, nil
	}

	var zero T
	if f, ok := value.(float64); ok {
		switch any(zero).(type) {
		case int:
			return any(int(f)).(T), nil
		case int32:
			return any(int32(f)).(T), nil
		case int64:
			return any(int64(f)).(T), nil
		}
	}
	return zero, fmt.Errorf("%s parameter must be of type %T, got %T", name, zero, value)
}

// Output builds a successful tool result carrying text and optional context fields.
func Output(text string, context map[string]any) map[string]any {
	result := make(map[string]any, len(context)+1)
	maps.Copy(result, context)
	result[OutputKey] = text
	return result
}

// Error builds a failed tool result from a format string.
func Error(format string, args ...any) map[string]any {
	return map[string]any{
		ErrorKey: fmt.Sprintf(format, args...),
	}
}

// ErrorWithContext builds a failed tool result from err plus context fields.
func ErrorWithContext(err error, context map[string]any) map[string]any {
	result := make(map[string]any, len(context)+1)
	maps.Copy(result, context)
	result[ErrorKey] = err.Error()
	return result
}

// IsError reports whether a tool result describes a failure.
func IsError(result map[string]any) bool {
	_, ok := result[ErrorKey]
	return ok
}

// Text returns the text a model should see for a tool result:
// the error string for failures, the output otherwise.
func Text(result map[string]any) string {
	if msg, ok := result[ErrorKey].(string); ok {
		return msg
	}
	if out, ok := result[OutputKey].(string); ok {
		return out
	}
	return ""
}
