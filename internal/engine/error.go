package engine

import "fmt"

// ParseError is returned by ParseDuration for input that FormatDuration could
// not have produced.
type ParseError struct {
	Input    string
	Expected string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %q: expected %s: %v", e.Input, e.Expected, e.Err)
	}
	return fmt.Sprintf("parse %q: expected %s", e.Input, e.Expected)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
