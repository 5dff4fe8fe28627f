package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the query could not be evaluated against the facts
	ExitCommandError = 2 // unknown query, unreadable facts or bad flags
)

// Error codes reported in responses.  They are stable so that scripts can
// tell failures apart without parsing messages.
const (
	ErrCodeUnknownQuery = "E002"
	ErrCodeLoadFailed   = "E003"
	ErrCodeEvalFailed   = "E004"
	ErrCodeWriteFailed  = "E005"
	ErrCodeInvalidFlags = "E006"
)

// ExitError is an error that carries the exit code of the process.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError creates an ExitError caused by err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit code for err: ExitSuccess for nil, the code of
// an ExitError in its chain, and ExitFailure otherwise.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text or json.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// CLIResponse is the json envelope of every command's output.
type CLIResponse struct {
	Status string      `json:"status"` // ok or error
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError describes a failed command.  Causes lists the messages of the
// wrapped errors, outermost first.
type CLIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Causes  []string `json:"causes,omitempty"`
}

// Success writes data.  Text output is data's String form.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error writes a failure.  Text output only shows the causes when verbose.
func (f *OutputFormatter) Error(e *CLIError) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: e})
	}
	if _, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", e.Code, e.Message); err != nil {
		return err
	}
	if f.Verbose {
		for _, c := range e.Causes {
			if _, err := fmt.Fprintf(f.Writer, "  caused by: %s\n", c); err != nil {
				return err
			}
		}
	}
	return nil
}

// causes unwraps err into the messages of its chain.  Only the first error of
// a join is followed.
func causes(err error) []string {
	var cs []string
	for err != nil {
		cs = append(cs, err.Error())
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			if errs := u.Unwrap(); len(errs) > 0 {
				err = errs[0]
			} else {
				err = nil
			}
		default:
			err = nil
		}
	}
	return cs
}

// fail reports err through the formatter and returns it as an ExitError with
// the given exit code.
func fail(f *OutputFormatter, exit int, code, message string, err error) error {
	_ = f.Error(&CLIError{
		Code:    code,
		Message: message + ": " + err.Error(),
		Causes:  causes(errors.Unwrap(err)),
	})
	return WrapExitError(exit, code+": "+message, err)
}
