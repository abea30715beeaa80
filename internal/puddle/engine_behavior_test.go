package puddle_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/puddle/internal/config"
	"github.com/san-kum/puddle/internal/field"
	"github.com/san-kum/puddle/internal/physics"
	"github.com/san-kum/puddle/internal/puddle"
)

var _ = Describe("Engine", func() {
	var (
		surface *puddle.Headless
		cfg     *config.Config
		engine  *puddle.Engine
	)

	build := func() {
		var err error
		engine, err = puddle.New(puddle.Options{
			Config:  cfg,
			Surface: surface,
			Rand:    rand.New(rand.NewSource(42)),
		})
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		surface = puddle.NewHeadless(16, 24, 256)
		cfg = config.DefaultConfig()
		cfg.Intensity = 120
	})

	Context("under heavy rain", func() {
		BeforeEach(build)

		It("keeps the border at rest across resizes", func() {
			sizes := [][2]int{{16, 24}, {9, 30}, {0, 5}, {25, 7}, {1, 1}, {12, 12}}
			for i := 0; i < 600; i++ {
				if i%100 == 50 {
					s := sizes[(i/100)%len(sizes)]
					surface.Resize(s[0], s[1])
					engine.Flags().RequestResize()
				}
				Expect(engine.Frame()).To(Succeed())
				Expect(engine.Pair().Current.BorderClean()).To(BeTrue())
				Expect(engine.Pair().Next.BorderClean()).To(BeTrue())
			}
			Expect(engine.Drops()).To(BeNumerically(">", 100))
		})

		It("keeps buffers and viewport in step", func() {
			surface.Resize(7, 11)
			engine.Flags().RequestResize()
			Expect(engine.Frame()).To(Succeed())

			vp := engine.Viewport()
			Expect(vp).To(Equal(field.ViewportState{Rows: 7, Cols: 11}))
			Expect(engine.Pair().Current.Rows()).To(Equal(vp.Rows))
			Expect(engine.Pair().Next.Cols()).To(Equal(vp.Cols))
		})

		It("carries ripples in the overlap through a shrink", func() {
			surface.Press(' ')
			Expect(engine.Frame()).To(Succeed())
			Expect(engine.Paused()).To(BeTrue())

			engine.Pair().Current.Set(3, 4, 0.75)
			engine.Pair().Next.Set(3, 4, -0.25)
			engine.Pair().Current.Set(10, 10, 2)
			surface.Resize(5, 5)
			engine.Flags().RequestResize()
			Expect(engine.Frame()).To(Succeed())

			Expect(engine.Pair().Current.At(3, 4)).To(Equal(0.75))
			Expect(engine.Pair().Next.At(3, 4)).To(Equal(-0.25))
			Expect(engine.Pair().Current.SumAbs()).To(Equal(0.75))
		})

		It("lets shutdown win over a resize in the same frame", func() {
			surface.Resize(5, 5)
			engine.Flags().RequestResize()
			engine.Flags().RequestShutdown()

			Expect(engine.Frame()).To(Succeed())
			Expect(engine.Done()).To(BeTrue())
			Expect(engine.Viewport().Rows).To(Equal(16))
		})
	})

	Context("once the rain stops", func() {
		BeforeEach(build)

		It("settles back to calm", func() {
			for i := 0; i < 60; i++ {
				Expect(engine.Frame()).To(Succeed())
			}
			pair := engine.Pair()
			start := pair.Current.SumAbs() + pair.Next.SumAbs()
			Expect(start).To(BeNumerically(">", 0))

			for i := 0; i < 400; i++ {
				engine.Simulator().Step(pair, 0.9)
			}
			Expect(pair.Current.SumAbs()).To(BeNumerically("<", start*1e-3))
		})
	})

	DescribeTable("every simulator stays finite",
		func(name string) {
			cfg.Simulator = name
			build()
			for i := 0; i < 300; i++ {
				Expect(engine.Frame()).To(Succeed())
			}
			Expect(engine.Pair().Current.IsValid()).To(BeTrue())
			Expect(engine.Simulator().Name()).To(Equal(name))
		},
		Entry("stencil", "stencil"),
		Entry("spring", "spring"),
		Entry("oscillator", "oscillator"),
	)

	It("conserves the stencil invariant without damping", func() {
		cfg.Damping = 1
		build()
		for i := 0; i < 30; i++ {
			Expect(engine.Frame()).To(Succeed())
		}

		sim := engine.Simulator()
		h, ok := sim.(physics.Hamiltonian)
		Expect(ok).To(BeTrue())

		e0 := h.Energy(engine.Pair())
		for i := 0; i < 200; i++ {
			sim.Step(engine.Pair(), 1)
		}
		Expect(h.Energy(engine.Pair())).To(BeNumerically("~", e0, 1e-9*max(1, e0)))
	})
})
