package inspiral_test

import (
	"io"
	"log"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arvela/binsim/internal/body"
	"github.com/arvela/binsim/internal/inspiral"
	"github.com/arvela/binsim/internal/param"
	"github.com/arvela/binsim/internal/snapshot"
)

func quietEffect() *inspiral.Effect {
	e := inspiral.New()
	e.SetLogger(log.New(io.Discard, "", 0))
	return e
}

// twoClouds places star 1 at x = -sep/2 and star 2 at x = +sep/2, each as a
// point cluster, with opposite y-velocities of the given speed.
func twoClouds(n1, n2 int, sep, speed float64) *body.Particles {
	p := body.NewParticles(n1+n2, 1.0)
	for i := 0; i < n1; i++ {
		p.Pos[0][i] = -sep / 2
		p.Vel[1][i] = speed
	}
	for i := n1; i < n1+n2; i++ {
		p.Pos[0][i] = sep / 2
		p.Vel[1][i] = -speed
	}
	return p
}

var _ = Describe("Effect", func() {
	Describe("Init", func() {
		It("fails and disables the effect when the partition is empty", func() {
			e := quietEffect()
			err := e.Init(200, 1.0, 10.0)
			Expect(err).To(MatchError(inspiral.ErrNoPartition))
			Expect(e.Separate()).To(BeFalse())
		})

		It("clamps the threshold to at least one particle", func() {
			e := quietEffect()
			e.SetPartition(100, 100)
			Expect(e.ReadOption("stop_ratio", "0")).To(Succeed())
			Expect(e.Init(200, 1.0, 10.0)).To(Succeed())
			Expect(e.Threshold()).To(Equal(1))
		})

		It("requires all particles to cross when the ratio is one", func() {
			e := quietEffect()
			e.SetPartition(100, 100)
			Expect(e.ReadOption("stop_ratio", "1")).To(Succeed())
			Expect(e.Init(200, 1.0, 10.0)).To(Succeed())
			Expect(e.Threshold()).To(Equal(200))
		})

		It("produces strictly negative force coefficients", func() {
			e := quietEffect()
			e.SetPartition(120, 80)
			Expect(e.Init(200, 0.5, 10.0)).To(Succeed())
			c1, c2 := e.Coefficients()
			Expect(c1).To(BeNumerically("<", 0))
			Expect(c2).To(BeNumerically("<", 0))
		})

		It("matches the quadrupole coefficient formula", func() {
			e := quietEffect()
			e.SetPartition(100, 50)
			Expect(e.Init(150, 2.0, 10.0)).To(Succeed())
			c1, c2 := e.Coefficients()

			m4 := math.Pow(2.0, 4)
			c5 := math.Pow(10.0, 5)
			Expect(c1).To(BeNumerically("~", -(32.0/5.0)*100*50*50*50*m4/c5, 1e-12))
			Expect(c2).To(BeNumerically("~", -(32.0/5.0)*50*100*100*100*m4/c5, 1e-12))
		})
	})

	Describe("Advance and Force", func() {
		var e *inspiral.Effect
		var p *body.Particles

		BeforeEach(func() {
			e = quietEffect()
			e.SetPartition(100, 100)
			Expect(e.Init(200, 1.0, 10.0)).To(Succeed())
			p = twoClouds(100, 100, 2.0, 0.5)
		})

		It("assigns the star-1 force to indices below the partition and the star-2 force above", func() {
			Expect(e.Advance(p)).To(BeFalse())

			f1 := e.Force(0)
			f2 := e.Force(100)
			Expect(f1).NotTo(Equal(body.Vec{}))
			Expect(f2).NotTo(Equal(body.Vec{}))

			for _, i := range []int{0, 1, 50, 99} {
				Expect(e.Force(i)).To(Equal(f1))
			}
			for _, i := range []int{100, 101, 150, 199} {
				Expect(e.Force(i)).To(Equal(f2))
			}
		})

		It("computes the drag from the coefficient, CoM speed, and separation", func() {
			e.Advance(p)

			c1, _ := e.Coefficients()
			// vcom1 = (0, 0.5, 0), separation 2
			want := c1 * 0.5 / (0.25 * math.Pow(2.0, 5))
			f1 := e.Force(0)
			Expect(f1[0]).To(BeZero())
			Expect(f1[1]).To(BeNumerically("~", want, math.Abs(want)*1e-12))
			Expect(f1[2]).To(BeZero())
		})

		It("opposes each star's center-of-mass motion", func() {
			e.Advance(p)
			// star 1 moves +y, star 2 moves -y
			Expect(e.Force(0)[1]).To(BeNumerically("<", 0))
			Expect(e.Force(100)[1]).To(BeNumerically(">", 0))
		})

		It("returns zero force for a negative index", func() {
			e.Advance(p)
			Expect(e.Force(-1)).To(Equal(body.Vec{}))
		})

		It("returns zero force for a star whose center of mass is at rest", func() {
			for i := 0; i < 100; i++ {
				p.Vel[1][i] = 0
			}
			e.Advance(p)
			Expect(e.Force(0)).To(Equal(body.Vec{}))
			Expect(e.Force(100)).NotTo(Equal(body.Vec{}))
		})

		It("accumulates into the force vector and leaves phi untouched", func() {
			e.Advance(p)

			f := body.Vec{1, 2, 3}
			phi := -42.0
			e.Accumulate(0, &f, &phi)

			want := body.Vec{1, 2, 3}.Add(e.Force(0))
			Expect(f).To(Equal(want))
			Expect(phi).To(Equal(-42.0))
		})

		It("tracks the separation of the two centers of mass", func() {
			e.Advance(p)
			Expect(e.Separation()).To(BeNumerically("~", 2.0, 1e-12))
		})
	})

	Describe("merger detection", func() {
		// 100 + 100 particles with stop_ratio 0.01: threshold is exactly 2.
		newEffect := func() *inspiral.Effect {
			e := quietEffect()
			e.SetPartition(100, 100)
			Expect(e.ReadOption("stop_ratio", "0.01")).To(Succeed())
			Expect(e.Init(200, 1.0, 10.0)).To(Succeed())
			Expect(e.Threshold()).To(Equal(2))
			return e
		}

		It("does not trigger below the threshold", func() {
			e := newEffect()
			p := twoClouds(100, 100, 2.0, 0.5)
			// one star-1 particle on star 2's side of the barycenter
			p.Pos[0][0] = 0.01

			Expect(e.Advance(p)).To(BeFalse())
			Expect(e.Separate()).To(BeTrue())
		})

		It("triggers at exactly the threshold", func() {
			e := newEffect()
			p := twoClouds(100, 100, 2.0, 0.5)
			// one crossed particle from each star: 1 + 1 >= 2
			p.Pos[0][0] = 0.01
			p.Pos[0][100] = -0.01

			Expect(e.Advance(p)).To(BeTrue())
			Expect(e.Separate()).To(BeFalse())
		})

		It("is terminal: later calls are no-ops", func() {
			e := newEffect()
			p := twoClouds(100, 100, 2.0, 0.5)
			p.Pos[0][0] = 0.01
			p.Pos[0][100] = -0.01

			Expect(e.Advance(p)).To(BeTrue())
			for i := 0; i < 3; i++ {
				Expect(e.Advance(p)).To(BeFalse())
			}
		})

		It("zeroes the force for every particle after the merger", func() {
			e := newEffect()
			p := twoClouds(100, 100, 2.0, 0.5)
			Expect(e.Advance(p)).To(BeFalse())
			Expect(e.Force(0)).NotTo(Equal(body.Vec{}))

			p.Pos[0][0] = 0.01
			p.Pos[0][100] = -0.01
			Expect(e.Advance(p)).To(BeTrue())

			for _, i := range []int{0, 50, 99, 100, 150, 199} {
				Expect(e.Force(i)).To(Equal(body.Vec{}))
			}
		})
	})

	Describe("parameter-file option", func() {
		It("answers not-matched for foreign names", func() {
			e := quietEffect()
			Expect(e.ReadOption("softening", "0.1")).To(MatchError(param.ErrNotMatched))
			Expect(e.OptionsComplete()).To(BeFalse())
		})

		It("rejects values outside [0, 1] and keeps the stored ratio", func() {
			e := quietEffect()
			Expect(e.ReadOption("stop_ratio", "1.5")).To(MatchError(param.ErrBadValue))
			Expect(e.ReadOption("stop_ratio", "-0.1")).To(MatchError(param.ErrBadValue))
			Expect(e.ReadOption("stop_ratio", "abc")).To(MatchError(param.ErrBadValue))
			Expect(e.StopRatio()).To(Equal(inspiral.DefaultStopRatio))
			Expect(e.OptionsComplete()).To(BeFalse())
		})

		It("round-trips through the parameter machinery", func() {
			e := quietEffect()
			Expect(e.ReadOption("stop_ratio", "0.125")).To(Succeed())

			var sb strings.Builder
			Expect(param.Write(&sb, e)).To(Succeed())

			back := quietEffect()
			Expect(param.Read(strings.NewReader(sb.String()), back)).To(Succeed())
			Expect(back.StopRatio()).To(Equal(0.125))
			Expect(back.OptionsComplete()).To(BeTrue())
		})
	})

	Describe("snapshot header fields", func() {
		It("round-trips the star partition", func() {
			e := quietEffect()
			e.SetPartition(300, 200)

			h := snapshot.NewHeader()
			e.WriteHeader(h)

			back := quietEffect()
			Expect(back.ReadHeader(h)).To(Succeed())
			Expect(back.NStar1).To(Equal(300))
			Expect(back.NStar2).To(Equal(200))
		})

		It("signals a missing field and leaves the partition unchanged", func() {
			h := snapshot.NewHeader()
			h.SetInt(inspiral.FieldNStar1, 300)

			e := quietEffect()
			e.SetPartition(7, 9)
			Expect(e.ReadHeader(h)).To(MatchError(snapshot.ErrFieldMissing))
			Expect(e.NStar1).To(Equal(7))
			Expect(e.NStar2).To(Equal(9))
		})
	})
})
