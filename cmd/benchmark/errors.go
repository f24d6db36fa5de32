package main

import (
	"errors"
	"fmt"
)

// configError marks a failure to assemble a valid Plan: a bad flag value,
// a plan.yaml that fails to parse, or a required field left empty.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func newConfigError(format string, args...any) error {
	return configError{err: fmt.Errorf(format, args...)}
}

// prerequisiteError marks a failure to even attempt the run: the
// gamerunner binary is missing from PATH, or the artifact directory can't
// be created.
type prerequisiteError struct{ err error }

func (e prerequisiteError) Error() string { return e.err.Error() }
func (e prerequisiteError) Unwrap() error { return e.err }

func newPrerequisiteError(format string, args...any) error {
	return prerequisiteError{err: fmt.Errorf(format, args...)}
}

func isConfigError(err error) bool {
	var ce configError
	return errors.As(err, &ce)
}

func isPrerequisiteError(err error) bool {
	var pe prerequisiteError
	return errors.As(err, &pe)
}
