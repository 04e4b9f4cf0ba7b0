package metrics

import (
	"io"
	"log"
	"math"
	"testing"

	"github.com/arvela/binsim/internal/body"
	"github.com/arvela/binsim/internal/inspiral"
	"github.com/arvela/binsim/internal/physics"
)

func testEffect(t *testing.T, n1, n2 int, sep float64) (*inspiral.Effect, *body.Particles) {
	t.Helper()

	e := inspiral.New()
	e.SetLogger(log.New(io.Discard, "", 0))
	e.SetPartition(n1, n2)
	if err := e.Init(n1+n2, 1.0, 10.0); err != nil {
		t.Fatalf("init: %v", err)
	}

	p := body.NewParticles(n1+n2, 1.0)
	for i := 0; i < n1; i++ {
		p.Pos[0][i] = -sep / 2
		p.Vel[1][i] = 1
	}
	for i := n1; i < n1+n2; i++ {
		p.Pos[0][i] = sep / 2
		p.Vel[1][i] = -1
	}
	e.Advance(p)
	return e, p
}

func TestSeparationMetric(t *testing.T) {
	e, p := testEffect(t, 50, 50, 4.0)

	m := NewSeparation(e)
	m.Observe(p, 0)
	if math.Abs(m.Value()-4.0) > 1e-12 {
		t.Errorf("expected separation 4, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should clear the value")
	}
}

func TestLuminosityMetric(t *testing.T) {
	e, p := testEffect(t, 50, 50, 4.0)

	m := NewLuminosity(e, 1.0, 10.0)
	m.Observe(p, 0)

	// m1 = m2 = 50, d = 4
	want := (32.0 / 5.0) * 50 * 50 * 50 * 50 * 100 / (1e5 * math.Pow(4.0, 5))
	if math.Abs(m.Value()-want) > math.Abs(want)*1e-12 {
		t.Errorf("expected luminosity %g, got %g", want, m.Value())
	}
	if m.Value() <= 0 {
		t.Error("luminosity should be positive while separate")
	}
}

func TestEnergyDriftStartsAtZero(t *testing.T) {
	model := physics.NewBinary(10, 10, 1.0, 4.0, 0.1, 1.0)
	_, p := testEffect(t, 10, 10, 4.0)

	m := NewEnergyDrift(model)
	m.Observe(p, 0)
	if m.Value() != 0 {
		t.Errorf("first observation should prime, not drift: %g", m.Value())
	}

	m.Observe(p, 1)
	if m.Value() != 0 {
		t.Errorf("unchanged state should have zero drift, got %g", m.Value())
	}

	// double every speed: kinetic term quadruples, energy moves
	for i := 0; i < p.N; i++ {
		p.Vel[1][i] *= 2
	}
	m.Observe(p, 2)
	if m.Value() == 0 {
		t.Error("expected nonzero drift after changing velocities")
	}
}
