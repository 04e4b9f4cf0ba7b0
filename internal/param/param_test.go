package param

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"
)

type floatOption struct {
	name  string
	value float64
	reads int
}

func (o *floatOption) ReadOption(name, value string) error {
	if name != o.name {
		return ErrNotMatched
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%w: %s = %q", ErrBadValue, name, value)
	}
	o.value = v
	o.reads++
	return nil
}

func (o *floatOption) WriteOptions(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s = %g\n", o.name, o.value)
	return err
}

func TestReadDispatchesThroughChain(t *testing.T) {
	a := &floatOption{name: "alpha"}
	b := &floatOption{name: "beta"}

	in := "# comment only line\nalpha = 1.5\n\nbeta = 2 # trailing comment\n"
	if err := Read(strings.NewReader(in), a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.value != 1.5 || a.reads != 1 {
		t.Errorf("alpha: got %f after %d reads", a.value, a.reads)
	}
	if b.value != 2 || b.reads != 1 {
		t.Errorf("beta: got %f after %d reads", b.value, b.reads)
	}
}

func TestReadUnknownOption(t *testing.T) {
	a := &floatOption{name: "alpha"}
	err := Read(strings.NewReader("gamma = 3\n"), a)
	if !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
}

func TestReadBadValueIsFatal(t *testing.T) {
	a := &floatOption{name: "alpha", value: 7}
	err := Read(strings.NewReader("alpha = oops\n"), a)
	if !errors.Is(err, ErrBadValue) {
		t.Errorf("expected ErrBadValue, got %v", err)
	}
	if a.value != 7 {
		t.Errorf("failed parse must not update value, got %f", a.value)
	}
}

func TestReadMalformedLine(t *testing.T) {
	err := Read(strings.NewReader("no equals sign here\n"))
	if err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestWriteThenRead(t *testing.T) {
	a := &floatOption{name: "alpha", value: 0.25}

	var sb strings.Builder
	if err := Write(&sb, a); err != nil {
		t.Fatalf("write: %v", err)
	}

	back := &floatOption{name: "alpha"}
	if err := Read(strings.NewReader(sb.String()), back); err != nil {
		t.Fatalf("read: %v", err)
	}
	if back.value != 0.25 {
		t.Errorf("round trip: expected 0.25, got %g", back.value)
	}
}
