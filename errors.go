package argparse

import (
	"errors"
	"fmt"
)

// Parse failures. A [*ParseError] returned (or panicked) by [Parser.Parse] unwraps to one of
// these.
var (
	ErrNotAVerb        = errors.New("not a verb")
	ErrEmptySwitchName = errors.New("empty switch name")
	ErrDuplicateSwitch = errors.New("duplicate switch")
	ErrUnexpectedValue = errors.New("unexpected value")
)

// Conversion failures. A [*ConversionError] recorded by an accessor unwraps to one of these.
var (
	ErrMissingVerb     = errors.New("missing verb")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidBoolean  = errors.New("invalid boolean")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrOutOfRange      = errors.New("out of range")
)

// ParseError describes a token sequence that does not conform to the requested [Format].
type ParseError struct {
	// Arg is the offending token, exactly as it was given.
	Arg string
	// Err is one of the parse sentinel errors, such as [ErrDuplicateSwitch].
	Err error
}

func (e *ParseError) Error() string {
	switch e.Err {
	case ErrNotAVerb:
		return fmt.Sprintf("argument %q: expected a verb, but it looks like a switch", e.Arg)
	case ErrEmptySwitchName:
		return fmt.Sprintf("argument %q: not a valid switch", e.Arg)
	case ErrDuplicateSwitch:
		return fmt.Sprintf("argument %q: present multiple times", e.Arg)
	case ErrUnexpectedValue:
		return fmt.Sprintf("argument %q: expected a switch, but it looks like a value", e.Arg)
	}
	return fmt.Sprintf("argument %q: %v", e.Arg, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConversionError describes a failed accessor call: a missing verb or argument, or a value that
// could not be converted to the requested type.
type ConversionError struct {
	// Name is the switch name. It is empty for verb lookups.
	Name string
	// Value is the raw value that failed to convert, if any.
	Value string
	// Err is one of the conversion sentinel errors, such as [ErrInvalidNumber].
	Err error
}

func (e *ConversionError) Error() string {
	switch e.Err {
	case ErrMissingVerb:
		return "verb is missing and no default value was given"
	case ErrMissingArgument:
		return fmt.Sprintf("argument %q is required but not present", e.Name)
	case ErrInvalidBoolean:
		if e.Value == "" {
			return fmt.Sprintf("argument %q is boolean and required, but no value was given", e.Name)
		}
		return fmt.Sprintf("argument %q: value %q is not a valid boolean, try one of: %s",
			e.Name, e.Value, boolVocabulary)
	case ErrInvalidNumber:
		return fmt.Sprintf("argument %q: value %q is not a valid number", e.Name, e.Value)
	case ErrOutOfRange:
		return fmt.Sprintf("argument %q: value %q is out of range", e.Name, e.Value)
	}
	return fmt.Sprintf("argument %q: %v", e.Name, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Recover turns a panic raised by a [Parser] configured with [WithParsePanic] or
// [WithConversionPanic] back into an error. Any other panic is propagated. It must be deferred
// directly:
//
//	func load(p *argparse.Parser, args []string) (err error) {
//	    defer argparse.Recover(&err)
//	    ...
//	}
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := asParserError(r); ok {
		*errp = err
		return
	}
	panic(r)
}

func asParserError(r any) (error, bool) {
	switch err := r.(type) {
	case *ParseError:
		return err, true
	case *ConversionError:
		return err, true
	}
	return nil, false
}
