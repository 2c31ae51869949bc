package sim

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"
)

var _ = Describe("System", func() {
	var (
		cfg    Config
		s      *System
		sun    *physics.Body
		planet *physics.Body
	)

	BeforeEach(func() {
		cfg = DefaultConfig()
		cfg.G = 1
		cfg.TrailLength = 20
		cfg.TrailInterval = 3

		var err error
		s, err = New(cfg)
		Expect(err).NotTo(HaveOccurred())

		sun = physics.NewBody("sun", 1000, r2.Vec{}, cfg.Trail())
		sun.Static = true
		planet = physics.NewBody("planet", 1, r2.Vec{X: 100}, cfg.Trail())

		Expect(s.AddBody(sun)).To(Succeed())
		Expect(s.AddBody(planet)).To(Succeed())
		Expect(s.InitializeOrbits()).To(Succeed())
	})

	Context("with one planet around a static sun", func() {
		It("starts the planet on a counter-clockwise circular velocity", func() {
			Expect(planet.Vel.X).To(BeNumerically("~", 0, 1e-12))
			Expect(planet.Vel.Y).To(BeNumerically("~", math.Sqrt(cfg.G*sun.Mass/100), 1e-12))
		})

		It("keeps the orbital radius within 1% over a full revolution", func() {
			period := 2 * math.Pi * 100 / r2.Norm(planet.Vel)
			steps := int(math.Ceil(period / cfg.Dt))

			for i := 0; i < steps; i++ {
				s.Step()
				Expect(r2.Norm(planet.Pos)).To(BeNumerically("~", 100, 1))
			}
			Expect(sun.Pos).To(Equal(r2.Vec{}))
			Expect(sun.Vel).To(Equal(r2.Vec{}))
		})

		It("bounds the trail and evicts the oldest sample", func() {
			for i := 0; i < cfg.TrailLength*cfg.TrailInterval; i++ {
				s.Step()
				Expect(planet.TrailLen()).To(BeNumerically("<=", cfg.TrailLength))
			}
			Expect(planet.TrailLen()).To(Equal(cfg.TrailLength))
			oldest := planet.Trail()[0]

			for i := 0; i < cfg.TrailInterval; i++ {
				s.Step()
			}
			Expect(planet.TrailLen()).To(Equal(cfg.TrailLength))
			Expect(planet.Trail()).NotTo(ContainElement(oldest))
			Expect(sun.TrailLen()).To(BeZero())
		})
	})

	Context("camera commands", func() {
		It("pans at constant screen speed regardless of zoom", func() {
			before := s.Camera().WorldToScreen(planet.Pos)
			s.Zoom(2)
			s.Pan(10, 0)
			after := s.Camera().WorldToScreen(planet.Pos)
			Expect(after.X).To(BeNumerically("~", before.X*2-10, 1e-9))
		})
	})
})
