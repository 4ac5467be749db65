package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
)

var _ = Describe("Simulator", func() {
	var s *Simulator

	BeforeEach(func() {
		var err error
		s, err = New(earthSun(), DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts with the baseline integrator and one day per tick", func() {
		Expect(s.Method()).To(Equal(integrators.SymplecticEuler))
		calls, dt := s.Plan()
		Expect(calls).To(Equal(1))
		Expect(dt).To(Equal(Day))
	})

	Context("when the factor changes between ticks", func() {
		It("applies the new factor only from the next tick", func() {
			Expect(s.Tick()).To(Succeed())
			Expect(s.Time()).To(Equal(Day))

			s.SetFactor(8)
			Expect(s.Time()).To(Equal(Day))
			Expect(s.Steps()).To(Equal(1))

			Expect(s.Tick()).To(Succeed())
			Expect(s.Steps()).To(Equal(9))
			Expect(s.Time()).To(Equal(9 * Day))
		})

		It("takes one fractional step below a factor of one", func() {
			s.SetFactor(0.5)
			Expect(s.Tick()).To(Succeed())
			Expect(s.Steps()).To(Equal(1))
			Expect(s.Time()).To(BeNumerically("~", Day/2, 1e-9))
		})

		It("doubles and halves without clamping", func() {
			s.SetFactor(s.Factor() / 2)
			s.SetFactor(s.Factor() / 2)
			Expect(s.Factor()).To(Equal(0.25))
			s.SetFactor(s.Factor() * 64)
			Expect(s.Factor()).To(Equal(16.0))
		})
	})

	Context("when the integrator changes between ticks", func() {
		It("keeps the physical state and continues from it", func() {
			Expect(s.Tick()).To(Succeed())
			before := s.Snapshot()

			s.SetMethod(integrators.Leapfrog)
			Expect(s.Snapshot()).To(Equal(before))

			Expect(s.Tick()).To(Succeed())
			Expect(s.Snapshot()).NotTo(Equal(before))
			Expect(s.Method()).To(Equal(integrators.Leapfrog))
		})
	})

	Context("over one simulated year with leapfrog", func() {
		It("returns Earth close to its starting distance from the Sun", func() {
			s.SetMethod(integrators.Leapfrog)
			for i := 0; i < 365; i++ {
				Expect(s.Tick()).To(Succeed())
			}
			snap := s.Snapshot()
			d := dynamo.Distance(snap[0].Pos, snap[1].Pos)
			Expect(math.Abs(d-au) / au).To(BeNumerically("<", 0.05))
		})
	})

	Context("with two distinct bodies at the same position", func() {
		It("surfaces a fatal error instead of a finite-looking state", func() {
			bodies := dynamo.Bodies{
				{Name: "a", Pos: r2.Vec{X: 1, Y: 2}, Mass: 1e22},
				{Name: "a", Pos: r2.Vec{X: 1, Y: 2}, Mass: 1e22},
			}
			h, err := New(bodies, DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			Expect(h.Tick()).To(MatchError(dynamo.ErrNonFinite))
			Expect(h.Tick()).To(MatchError(dynamo.ErrHalted))
		})
	})
})
