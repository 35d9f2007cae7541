package walk_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stochsim/internal/stochastic"
	"github.com/san-kum/stochsim/internal/walk"
)

func unitMove(a, b walk.Site) bool {
	diff := 0
	for i := range a {
		d := b[i] - a[i]
		if d < 0 {
			d = -d
		}
		diff += d
	}
	return diff == 1
}

var _ = Describe("Generate", func() {
	DescribeTable("takes unit steps in every dimension",
		func(start walk.Site, probs []float64) {
			path, err := walk.Generate(stochastic.NewRand(123), walk.Params{Start: start, Probs: probs, Steps: 30})
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(HaveLen(31))
			Expect(path[0]).To(Equal(start))
			for i := 1; i < len(path); i++ {
				Expect(unitMove(path[i-1], path[i])).To(BeTrue(), "step %d", i)
			}
		},
		Entry("1D", walk.Site{10}, []float64{0.6, 0.4}),
		Entry("2D", walk.Site{10, 5}, []float64{0.3, 0.2, 0.3, 0.2}),
		Entry("3D", walk.Site{10, 5, 3}, []float64{0.15, 0.25, 0.2, 0.2, 0.1, 0.1}),
	)

	It("is deterministic for a fixed seed", func() {
		p := walk.Params{Start: walk.Site{0, 0}, Probs: []float64{0.25, 0.25, 0.25, 0.25}, Steps: 200}
		a, err := walk.Generate(stochastic.NewRand(7), p)
		Expect(err).NotTo(HaveOccurred())
		b, err := walk.Generate(stochastic.NewRand(7), p)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("never moves along a zero-probability direction", func() {
		path, err := walk.Generate(stochastic.NewRand(1), walk.Params{
			Start: walk.Site{0, 0},
			Probs: []float64{1, 0, 0, 0},
			Steps: 25,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(path.Displacement()).To(Equal(walk.Site{25, 0}))
	})

	It("drifts toward the likelier direction", func() {
		path, err := walk.Generate(stochastic.NewRand(99), walk.Params{
			Start: walk.Site{0},
			Probs: []float64{0.7, 0.3},
			Steps: 10000,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(float64(path.Displacement()[0]) / 10000).To(BeNumerically("~", 0.4, 0.05))
	})

	It("returns only the start for zero steps", func() {
		path, err := walk.Generate(nil, walk.Params{Start: walk.Site{2, 2}, Probs: []float64{0.25, 0.25, 0.25, 0.25}})
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(walk.Path{{2, 2}}))
	})

	It("does not alias the start site", func() {
		start := walk.Site{1}
		path, err := walk.Generate(stochastic.NewRand(4), walk.Params{Start: start, Probs: []float64{0.5, 0.5}, Steps: 3})
		Expect(err).NotTo(HaveOccurred())
		path[0][0] = 100
		Expect(start[0]).To(Equal(1))
	})

	DescribeTable("rejects invalid parameters",
		func(p walk.Params, want error) {
			_, err := walk.Generate(stochastic.NewRand(1), p)
			Expect(err).To(MatchError(want))
		},
		Entry("probabilities summing to 0.8",
			walk.Params{Start: walk.Site{0, 0}, Probs: []float64{0.2, 0.2, 0.2, 0.2}, Steps: 5}, stochastic.ErrProbability),
		Entry("negative probability",
			walk.Params{Start: walk.Site{0}, Probs: []float64{1.2, -0.2}, Steps: 5}, stochastic.ErrProbability),
		Entry("wrong number of probabilities",
			walk.Params{Start: walk.Site{0, 0}, Probs: []float64{0.5, 0.5}, Steps: 5}, stochastic.ErrDimension),
		Entry("four dimensions",
			walk.Params{Start: walk.Site{0, 0, 0, 0}, Probs: make([]float64, 8), Steps: 5}, stochastic.ErrDimension),
		Entry("negative steps",
			walk.Params{Start: walk.Site{0}, Probs: []float64{0.5, 0.5}, Steps: -2}, stochastic.ErrSteps),
	)
})

var _ = Describe("helpers", func() {
	It("builds uniform probabilities", func() {
		probs, err := walk.Uniform(3)
		Expect(err).NotTo(HaveOccurred())
		Expect(probs).To(HaveLen(6))
		for _, p := range probs {
			Expect(p).To(BeNumerically("~", 1.0/6, 1e-12))
		}

		_, err = walk.Uniform(0)
		Expect(err).To(MatchError(stochastic.ErrDimension))
	})

	It("names moves per axis", func() {
		Expect(walk.MoveNames(2)).To(Equal([]string{"+x", "-x", "+y", "-y"}))
	})

	It("converts sites to points", func() {
		pts := walk.Path{{1, 2}, {1, 3}}.Points()
		Expect(pts).To(Equal(stochastic.Path{{1, 2}, {1, 3}}))
	})
})
