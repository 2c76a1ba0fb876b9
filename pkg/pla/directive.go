package pla

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Keywords understood by espresso. Only the on-set type is produced
// or consumed here.
const (
	KeywordInputs     = ".i"
	KeywordOutputs    = ".o"
	KeywordMultiValue = ".mv"
	KeywordOutputName = ".ob"
	KeywordProducts   = ".p"
	KeywordType       = ".type"
	KeywordEnd        = ".e"

	TypeOnSet = "f"
)

// ErrFormat is the cause of every FormatError.
var ErrFormat = errors.New("malformed table")

// FormatError reports a violation of the table text format.
type FormatError struct {
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": " + e.Err.Error() + ": " + strconv.Quote(e.Text)
}

// Unwrap lets errors.Is match both ErrFormat and the violation.
func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}

// Cause returns the underlying violation.
func (e *FormatError) Cause() error {
	return e.Err
}

// NewFormatError builds a FormatError for a 1-based line number.
func NewFormatError(line int, text string, err error) *FormatError {
	return &FormatError{Line: line, Text: text, Err: err}
}

// IsDirective reports whether line is a keyword line.
func IsDirective(line string) bool {
	return strings.HasPrefix(line, ".")
}

// IsEnd reports whether line terminates a table.
func IsEnd(line string) bool {
	return strings.HasPrefix(line, KeywordEnd)
}

// Directive splits a keyword line into its keyword and arguments.
func Directive(line string) (keyword string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// IntArg parses the single integer argument of a keyword line such as
// ".p 12".
func IntArg(keyword string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.Errorf("%s takes exactly one argument, got %d", keyword, len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.Wrapf(err, "%s argument", keyword)
	}
	if n < 0 {
		return 0, errors.Errorf("%s argument must not be negative, got %d", keyword, n)
	}
	return n, nil
}
