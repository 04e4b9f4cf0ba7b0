package inspiral

import (
	"fmt"

	"github.com/arvela/binsim/internal/snapshot"
)

// Snapshot header fields owned by the effect.
const (
	FieldNStar1 = "Nstar_1"
	FieldNStar2 = "Nstar_2"
)

// WriteHeader records the star partition in a snapshot header.
func (e *Effect) WriteHeader(h *snapshot.Header) {
	h.SetInt(FieldNStar1, int64(e.NStar1))
	h.SetInt(FieldNStar2, int64(e.NStar2))
}

// ReadHeader restores the star partition from a snapshot header. If either
// field is absent — a snapshot from a non-binary run — the partition is left
// unchanged and an error wrapping snapshot.ErrFieldMissing is returned; the
// caller decides severity.
func (e *Effect) ReadHeader(h *snapshot.Header) error {
	n1, err := h.Int(FieldNStar1)
	if err != nil {
		return fmt.Errorf("inspiral: %w", err)
	}
	n2, err := h.Int(FieldNStar2)
	if err != nil {
		return fmt.Errorf("inspiral: %w", err)
	}

	e.NStar1, e.NStar2 = int(n1), int(n2)
	return nil
}
