// Package errutil has helpers for combining errors.
package errutil

import "strings"

// Multi returns nil if every argument is nil, the only non-nil argument if
// there is exactly one, and otherwise an error carrying all non-nil arguments.
// Errors returned by Multi are spliced into the result instead of nested, and
// the parts can be reached with errors.Is and errors.As.
func Multi(errs ...error) error {
	var parts multiError
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case multiError:
			parts = append(parts, err...)
		default:
			parts = append(parts, err)
		}
	}
	if len(parts) == 0 {
		return nil
	} else if len(parts) == 1 {
		return parts[0]
	}
	return parts
}

type multiError []error

func (me multiError) Error() string {
	msgs := make([]string, len(me))
	for i, err := range me {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

func (me multiError) Unwrap() []error { return me }
