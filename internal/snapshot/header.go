// Package snapshot persists the simulation state to a binary file.
//
// The format, front to back:
//
//	1 - (int32) endianness flag: -1 little endian, 0 big endian
//	2 - header: counted lists of named int64 and float64 fields
//	3 - ([4][]float64) position blocks, one dimension at a time
//	4 - ([3][]float64) velocity blocks
//
// The header is an open key/value table so subsystems can contribute fields
// without the snapshot package knowing about them. Files of either
// endianness can be read back on any machine.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrFieldMissing is returned when a requested header field is absent, e.g.
// when loading a snapshot written by a run that never set it.
var ErrFieldMissing = errors.New("snapshot: header field missing")

// Header is the named-field table embedded at the front of a snapshot.
type Header struct {
	ints   map[string]int64
	floats map[string]float64
}

func NewHeader() *Header {
	return &Header{
		ints:   make(map[string]int64),
		floats: make(map[string]float64),
	}
}

func (h *Header) SetInt(name string, v int64)     { h.ints[name] = v }
func (h *Header) SetFloat(name string, v float64) { h.floats[name] = v }

// Int returns the named integer field, or ErrFieldMissing.
func (h *Header) Int(name string) (int64, error) {
	v, ok := h.ints[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFieldMissing, name)
	}
	return v, nil
}

// Float returns the named float field, or ErrFieldMissing.
func (h *Header) Float(name string) (float64, error) {
	v, ok := h.floats[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFieldMissing, name)
	}
	return v, nil
}

func (h *Header) encode(w io.Writer, order binary.ByteOrder) error {
	if err := writeCount(w, order, len(h.ints)); err != nil {
		return err
	}
	for _, name := range sortedKeys(h.ints) {
		if err := writeName(w, order, name); err != nil {
			return err
		}
		if err := binary.Write(w, order, h.ints[name]); err != nil {
			return err
		}
	}

	if err := writeCount(w, order, len(h.floats)); err != nil {
		return err
	}
	for _, name := range sortedKeys(h.floats) {
		if err := writeName(w, order, name); err != nil {
			return err
		}
		if err := binary.Write(w, order, h.floats[name]); err != nil {
			return err
		}
	}
	return nil
}

func decodeHeader(r io.Reader, order binary.ByteOrder) (*Header, error) {
	h := NewHeader()

	n, err := readCount(r, order)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		name, err := readName(r, order)
		if err != nil {
			return nil, err
		}
		var v int64
		if err := binary.Read(r, order, &v); err != nil {
			return nil, err
		}
		h.ints[name] = v
	}

	n, err = readCount(r, order)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		name, err := readName(r, order)
		if err != nil {
			return nil, err
		}
		var v float64
		if err := binary.Read(r, order, &v); err != nil {
			return nil, err
		}
		h.floats[name] = v
	}

	return h, nil
}

func writeCount(w io.Writer, order binary.ByteOrder, n int) error {
	return binary.Write(w, order, int32(n))
}

func readCount(r io.Reader, order binary.ByteOrder) (int, error) {
	var n int32
	if err := binary.Read(r, order, &n); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("snapshot: negative field count %d", n)
	}
	return int(n), nil
}

func writeName(w io.Writer, order binary.ByteOrder, name string) error {
	if err := writeCount(w, order, len(name)); err != nil {
		return err
	}
	_, err := w.Write([]byte(name))
	return err
}

func readName(r io.Reader, order binary.ByteOrder) (string, error) {
	n, err := readCount(r, order)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
