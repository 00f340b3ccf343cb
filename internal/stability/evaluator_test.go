package stability

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitlab/internal/orbit"
	"github.com/san-kum/orbitlab/internal/vec"
)

// boundedConfig is a compact pair on a circular orbit plus a light third
// body on a wide circular orbit; nothing approaches the escape radius
// within the default budget.
func boundedConfig() orbit.Bodies {
	pairV := math.Sqrt(1000.0 * 20.0 / (200.0*200.0 + 5.0*5.0) * 100.0)
	thirdV := math.Sqrt(1000.0 * 40.0 / 500.0)
	return orbit.Bodies{
		{Position: vec.Vector3{X: -100}, Velocity: vec.Vector3{Y: -pairV}, Mass: 20},
		{Position: vec.Vector3{X: 100}, Velocity: vec.Vector3{Y: pairV}, Mass: 20},
		{Position: vec.Vector3{X: 500}, Velocity: vec.Vector3{Y: thirdV}, Mass: 0.1},
	}
}

// edgeConfig puts the third body just inside the escape radius so a
// modest outward velocity perturbation escapes on a known step.
func edgeConfig() orbit.Bodies {
	b := boundedConfig()
	b[2].Position = vec.Vector3{X: 5990}
	b[2].Velocity = vec.Vector3{}
	return b
}

var noOffset = Param{Field: FieldMass, Body: 0}

var _ = Describe("ParseParam", func() {
	DescribeTable("recognized names",
		func(name string, want Param) {
			p, err := ParseParam(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(want))
			Expect(p.String()).To(Equal(name))
		},
		Entry("mass of body 1", "mass_1", Param{Field: FieldMass, Body: 0}),
		Entry("mass of body 3", "mass_3", Param{Field: FieldMass, Body: 2}),
		Entry("x position of body 2", "pos_x_2", Param{Field: FieldPosition, Axis: 0, Body: 1}),
		Entry("z position of body 1", "pos_z_1", Param{Field: FieldPosition, Axis: 2, Body: 0}),
		Entry("y velocity of body 3", "vel_y_3", Param{Field: FieldVelocity, Axis: 1, Body: 2}),
	)

	DescribeTable("rejected names",
		func(name string) {
			_, err := ParseParam(name)
			Expect(err).To(HaveOccurred())
		},
		Entry("empty", ""),
		Entry("unknown field", "spin_1"),
		Entry("body index zero", "mass_0"),
		Entry("body index too large", "vel_x_4"),
		Entry("bad axis", "pos_w_1"),
		Entry("missing body", "vel_x"),
		Entry("mass with axis", "mass_x_1"),
	)
})

var _ = Describe("Param.Apply", func() {
	It("offsets only the targeted component of the targeted body", func() {
		bodies := boundedConfig()
		p, _ := ParseParam("vel_z_2")

		p.Apply(bodies, 2.5)

		Expect(bodies[1].Velocity.Z).To(Equal(2.5))
		Expect(bodies[0]).To(Equal(boundedConfig()[0]))
		Expect(bodies[2]).To(Equal(boundedConfig()[2]))
	})

	It("adds to mass rather than replacing it", func() {
		bodies := boundedConfig()
		p, _ := ParseParam("mass_1")

		p.Apply(bodies, -5)

		Expect(bodies[0].Mass).To(Equal(15.0))
	})
})

var _ = Describe("Evaluator", func() {
	var ev *Evaluator

	BeforeEach(func() {
		ev = NewEvaluator()
	})

	It("returns exactly 1.0 for a configuration that never escapes", func() {
		score := ev.Evaluate(boundedConfig(), noOffset, 0, noOffset, 0)
		Expect(score).To(Equal(1.0))
	})

	It("returns k/N when a body crosses the escape radius at step k", func() {
		p, _ := ParseParam("vel_x_3")

		// From 5990 at 100/s outward the threshold falls inside the
		// first coarse step.
		score := ev.Evaluate(edgeConfig(), p, 100, noOffset, 0)
		Expect(score).To(Equal(1.0 / 1000.0))
	})

	It("returns scores that are whole multiples of 1/N", func() {
		p, _ := ParseParam("vel_x_3")
		score := ev.Evaluate(boundedConfig(), p, 60, noOffset, 0)

		Expect(score).To(BeNumerically(">", 0))
		Expect(score).To(BeNumerically("<", 1))
		scaled := score * float64(ev.StepBudget)
		Expect(scaled).To(BeNumerically("~", math.Round(scaled), 1e-9))
	})

	It("does not mutate the base configuration", func() {
		base := boundedConfig()
		p, _ := ParseParam("pos_y_1")

		ev.Evaluate(base, p, 123, noOffset, 4)

		Expect(base).To(Equal(boundedConfig()))
	})

	It("scores escape-driving perturbations monotonically near the boundary", func() {
		p, _ := ParseParam("vel_x_3")

		s0 := ev.Evaluate(boundedConfig(), p, 0, noOffset, 0)
		s1 := ev.Evaluate(boundedConfig(), p, 60, noOffset, 0)
		s2 := ev.Evaluate(boundedConfig(), p, 120, noOffset, 0)

		Expect(s0).To(Equal(1.0))
		Expect(s1).To(BeNumerically("<", s0))
		Expect(s2).To(BeNumerically("<=", s1))
	})
})

var _ = Describe("escape check", func() {
	It("treats NaN positions as not escaped", func() {
		// Known gap: a numerically blown-up cell runs to budget
		// exhaustion and reports stable.
		bodies := orbit.Bodies{{Position: vec.Vector3{X: math.NaN()}, Mass: 1}}
		Expect(escaped(bodies, 6000*6000)).To(BeFalse())
	})

	It("detects a body beyond the radius", func() {
		bodies := orbit.Bodies{{Position: vec.Vector3{X: 6001}, Mass: 1}}
		Expect(escaped(bodies, 6000*6000)).To(BeTrue())
	})
})

var _ = Describe("Sweep", func() {
	var (
		ev   *Evaluator
		spec SweepSpec
	)

	BeforeEach(func() {
		ev = NewEvaluator()
		ev.StepBudget = 200

		xp, _ := ParseParam("vel_x_3")
		yp, _ := ParseParam("mass_3")
		spec = SweepSpec{
			XParam: xp, YParam: yp,
			XMin: 0, XMax: 120, XSteps: 4,
			YMin: 0, YMax: 1, YSteps: 2,
			Workers: 2,
		}
	})

	It("fills the full grid with scores in [0,1]", func() {
		grid, err := ev.Sweep(context.Background(), boundedConfig(), spec)
		Expect(err).NotTo(HaveOccurred())

		Expect(grid.XValues).To(Equal([]float64{0, 40, 80, 120}))
		Expect(grid.YValues).To(Equal([]float64{0, 1}))
		Expect(grid.Scores).To(HaveLen(2))
		for _, row := range grid.Scores {
			Expect(row).To(HaveLen(4))
			for _, s := range row {
				Expect(s).To(BeNumerically(">=", 0))
				Expect(s).To(BeNumerically("<=", 1))
			}
		}
	})

	It("labels the grid with the canonical param names", func() {
		grid, err := ev.Sweep(context.Background(), boundedConfig(), spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(grid.XParam).To(Equal("vel_x_3"))
		Expect(grid.YParam).To(Equal("mass_3"))
	})

	It("is deterministic across runs", func() {
		g1, err := ev.Sweep(context.Background(), boundedConfig(), spec)
		Expect(err).NotTo(HaveOccurred())
		g2, err := ev.Sweep(context.Background(), boundedConfig(), spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(g1.Scores).To(Equal(g2.Scores))
	})

	It("stops at a cell boundary when canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ev.Sweep(ctx, boundedConfig(), spec)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("rejects an empty grid", func() {
		spec.XSteps = 0
		_, err := ev.Sweep(context.Background(), boundedConfig(), spec)
		Expect(err).To(HaveOccurred())
	})
})
