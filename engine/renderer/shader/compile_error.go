package shader

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrSourceNotFound is marked on errors returned when a shader source file cannot be read.
var ErrSourceNotFound = errors.New("shader: source not found")

// ShaderCompileError reports a shader that failed pre-processing, entry point checks or validation.
// Line and Column are 1-based positions in the raw source as written by the author,
// or zero when the failure cannot be attributed to a position.
type ShaderCompileError struct {
	Key     string
	Message string
	Line    int
	Column  int

	cause error
}

func (e *ShaderCompileError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("shader %q: %d:%d: %s", e.Key, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("shader %q: line %d: %s", e.Key, e.Line, e.Message)
	default:
		return fmt.Sprintf("shader %q: %s", e.Key, e.Message)
	}
}

// Unwrap returns the validator error that caused this failure, if any.
func (e *ShaderCompileError) Unwrap() error {
	return e.cause
}

// IsCompileError extracts a ShaderCompileError from anywhere in err's chain.
//
// Parameters:
//   - err: the error to inspect
//
// Returns:
//   - *ShaderCompileError: the compile error, or nil
//   - bool: true if err carries a ShaderCompileError
func IsCompileError(err error) (*ShaderCompileError, bool) {
	var ce *ShaderCompileError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// positionRegexes pick the first source position out of a validator message. Naga reports
// "line N, column M"; other tools use "N:M".
var positionRegexes = []*regexp.Regexp{
	regexp.MustCompile(`line (\d+), column (\d+)`),
	regexp.MustCompile(`(\d+):(\d+)`),
}

// newCompileError builds a ShaderCompileError at a known position.
func newCompileError(key string, line int, format string, args ...any) *ShaderCompileError {
	return &ShaderCompileError{
		Key:     key,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	}
}

// fromValidatorError converts a validator failure into a ShaderCompileError. The position is
// parsed from the message when present and mapped back to the raw source through lineOf.
func fromValidatorError(key string, err error, lineOf func(int) int) *ShaderCompileError {
	ce := &ShaderCompileError{
		Key:     key,
		Message: err.Error(),
		cause:   err,
	}
	msg := err.Error()
	for _, re := range positionRegexes {
		m := re.FindStringSubmatchIndex(msg)
		if m == nil {
			continue
		}
		line, _ := strconv.Atoi(msg[m[2]:m[3]])
		col, _ := strconv.Atoi(msg[m[4]:m[5]])
		if line <= 0 {
			continue
		}
		ce.Line = lineOf(line)
		ce.Column = col
		// quote the author's line, not the pre-processed one
		ce.Message = msg[:m[2]] + strconv.Itoa(ce.Line) + msg[m[3]:]
		break
	}
	return ce
}
