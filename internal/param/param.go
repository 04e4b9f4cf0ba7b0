// Package param implements the run's line-oriented parameter file.
//
// The format is one option per line, `name = value`, with `#` starting a
// comment. Each subsystem that owns options implements [Handler]; reading a
// file walks the handler chain for every line, and a handler answers
// [ErrNotMatched] for names it does not own so the next handler gets a try.
//
// Invalid values are different from foreign names: a handler that recognizes
// a name but cannot accept its value returns an error wrapping [ErrBadValue].
// That error is passed straight up — a malformed parameter file must not
// silently proceed, and it is the caller's decision whether to abort the
// process or just reject the file.
package param

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrNotMatched is a handler's answer for an option name it does not own.
	ErrNotMatched = errors.New("param: option not matched")

	// ErrBadValue marks an option whose value failed to parse or is out of
	// range. Not recoverable; the caller decides severity.
	ErrBadValue = errors.New("param: invalid option value")

	// ErrUnknownOption marks an option no handler in the chain claimed.
	ErrUnknownOption = errors.New("param: unknown option")
)

// Handler reads and writes the options a subsystem owns.
type Handler interface {
	// ReadOption consumes one name/value pair, or returns ErrNotMatched.
	ReadOption(name, value string) error

	// WriteOptions emits the subsystem's options, one per line, with their
	// current values and a descriptive comment.
	WriteOptions(w io.Writer) error
}

// Read parses a parameter stream, dispatching each option through the
// handler chain in order.
func Read(r io.Reader, handlers ...Handler) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("param: line %d: expected `name = value`, got %q", lineNo, line)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		if err := dispatch(name, value, handlers); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func dispatch(name, value string, handlers []Handler) error {
	for _, h := range handlers {
		err := h.ReadOption(name, value)
		if errors.Is(err, ErrNotMatched) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownOption, name)
}

// Write emits every handler's options to w.
func Write(w io.Writer, handlers ...Handler) error {
	for _, h := range handlers {
		if err := h.WriteOptions(w); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile parses the parameter file at path through the handler chain.
func ReadFile(path string, handlers ...Handler) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(f, handlers...)
}

// WriteFile writes every handler's options to the file at path.
func WriteFile(path string, handlers ...Handler) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, handlers...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
