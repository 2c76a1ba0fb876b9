package espresso

import (
	"bytes"
	"unicode/utf8"
)

// buffer is output owned by the carrier of a minimizer call.
type buffer interface {
	Bytes() []byte
	Release()
}

// takeOwned copies b into a string and releases b. It releases b
// exactly once whatever the outcome.
func takeOwned(b buffer) (string, error) {
	defer b.Release()

	raw := b.Bytes()
	if len(raw) == 0 {
		return "", ErrNoOutput
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidOutput
	}
	return string(raw), nil
}

// pipeBuffer holds the standard output of a child process.
type pipeBuffer struct {
	bytes.Buffer
}

func (b *pipeBuffer) Release() {
	b.Reset()
}
