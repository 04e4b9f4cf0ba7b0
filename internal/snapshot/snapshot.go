package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/arvela/binsim/internal/body"
)

// Endianness flags written at the front of every snapshot.
const (
	LittleEndianFlag int32 = -1
	BigEndianFlag    int32 = 0
)

// Header field names owned by the snapshot package itself.
const (
	FieldCount = "N"
	FieldMass  = "Mass"
)

// Write encodes the header and particle state to w in little-endian order.
// The particle count and mass are folded into the header before encoding.
func Write(w io.Writer, h *Header, p *body.Particles) error {
	order := binary.LittleEndian

	h.SetInt(FieldCount, int64(p.N))
	h.SetFloat(FieldMass, p.Mass)

	if err := binary.Write(w, order, LittleEndianFlag); err != nil {
		return err
	}
	if err := h.encode(w, order); err != nil {
		return err
	}
	for d := range p.Pos {
		if err := binary.Write(w, order, p.Pos[d]); err != nil {
			return err
		}
	}
	for d := range p.Vel {
		if err := binary.Write(w, order, p.Vel[d]); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes a snapshot of either endianness.
func Read(r io.Reader) (*Header, *body.Particles, error) {
	var flag int32
	if err := binary.Read(r, binary.LittleEndian, &flag); err != nil {
		return nil, nil, err
	}

	var order binary.ByteOrder
	switch flag {
	case LittleEndianFlag:
		order = binary.LittleEndian
	case BigEndianFlag:
		// both flag values read identically under either byte order
		order = binary.BigEndian
	default:
		return nil, nil, fmt.Errorf("snapshot: unrecognized endianness flag %d", flag)
	}

	h, err := decodeHeader(r, order)
	if err != nil {
		return nil, nil, err
	}

	n, err := h.Int(FieldCount)
	if err != nil {
		return nil, nil, err
	}
	mass, err := h.Float(FieldMass)
	if err != nil {
		return nil, nil, err
	}

	p := body.NewParticles(int(n), mass)
	for d := range p.Pos {
		if err := binary.Read(r, order, p.Pos[d]); err != nil {
			return nil, nil, err
		}
	}
	for d := range p.Vel {
		if err := binary.Read(r, order, p.Vel[d]); err != nil {
			return nil, nil, err
		}
	}
	return h, p, nil
}

// WriteFile writes a snapshot to the file at path.
func WriteFile(path string, h *Header, p *body.Particles) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, h, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads the snapshot at path.
func ReadFile(path string) (*Header, *body.Particles, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Read(f)
}
