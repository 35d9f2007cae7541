package markov_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stochsim/internal/markov"
	"github.com/san-kum/stochsim/internal/stochastic"
)

var (
	states = []string{"A", "B", "C", "D"}
	matrix = [][]float64{
		{0.15, 0.7, 0.15, 0},
		{0.15, 0.05, 0.6, 0.2},
		{0.3, 0.1, 0.5, 0.1},
		{0, 0.4, 0.1, 0.5},
	}
)

var _ = Describe("Chain", func() {
	Describe("NewChain", func() {
		It("accepts a row-stochastic matrix", func() {
			c, err := markov.NewChain(states, matrix)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len()).To(Equal(4))
			Expect(c.States()).To(Equal(states))
			Expect(c.Prob("A", "B")).To(Equal(0.7))
		})

		DescribeTable("rejects invalid input",
			func(st []string, m [][]float64, want error) {
				_, err := markov.NewChain(st, m)
				Expect(err).To(MatchError(want))

				var ve *stochastic.ValidationError
				Expect(errors.As(err, &ve)).To(BeTrue())
			},
			Entry("row summing to 0.9", []string{"x", "y"},
				[][]float64{{0.5, 0.4}, {0.5, 0.5}}, stochastic.ErrNotStochastic),
			Entry("row summing to 1.1", []string{"x", "y"},
				[][]float64{{0.5, 0.5}, {0.6, 0.5}}, stochastic.ErrNotStochastic),
			Entry("negative entry", []string{"x", "y"},
				[][]float64{{1.2, -0.2}, {0.5, 0.5}}, stochastic.ErrNotStochastic),
			Entry("too few rows", []string{"x", "y"},
				[][]float64{{1, 0}}, stochastic.ErrShape),
			Entry("ragged row", []string{"x", "y"},
				[][]float64{{1, 0}, {1}}, stochastic.ErrShape),
			Entry("empty state set", []string{},
				[][]float64{}, stochastic.ErrShape),
			Entry("duplicate label", []string{"x", "x"},
				[][]float64{{1, 0}, {0, 1}}, stochastic.ErrDuplicateState),
			Entry("empty label", []string{"x", ""},
				[][]float64{{1, 0}, {0, 1}}, stochastic.ErrDuplicateState),
		)

		It("copies its inputs", func() {
			m := [][]float64{{0, 1}, {1, 0}}
			c, err := markov.NewChain([]string{"x", "y"}, m)
			Expect(err).NotTo(HaveOccurred())

			m[0][1] = 0.3
			Expect(c.Prob("x", "y")).To(Equal(1.0))
		})
	})

	Describe("Simulate", func() {
		var chain *markov.Chain

		BeforeEach(func() {
			var err error
			chain, err = markov.NewChain(states, matrix)
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns steps+1 states starting at the initial state", func() {
			trace, err := chain.Simulate(stochastic.NewRand(42), "A", 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(trace).To(HaveLen(16))
			Expect(trace[0]).To(Equal("A"))
			for _, s := range trace {
				Expect(states).To(ContainElement(s))
			}
		})

		It("only follows non-zero transitions", func() {
			trace, err := chain.Simulate(stochastic.NewRand(3), "D", 500)
			Expect(err).NotTo(HaveOccurred())
			for _, tr := range trace.Transitions() {
				Expect(chain.Prob(tr.From, tr.To)).To(BeNumerically(">", 0))
			}
		})

		It("is deterministic for a fixed seed", func() {
			a, err := chain.Simulate(stochastic.NewRand(42), "A", 200)
			Expect(err).NotTo(HaveOccurred())
			b, err := chain.Simulate(stochastic.NewRand(42), "A", 200)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})

		It("returns only the initial state for zero steps", func() {
			trace, err := chain.Simulate(stochastic.NewRand(1), "C", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(trace).To(Equal(markov.Trace{"C"}))
		})

		It("rejects an unknown initial state", func() {
			_, err := chain.Simulate(stochastic.NewRand(1), "Z", 5)
			Expect(err).To(MatchError(stochastic.ErrUnknownState))
		})

		It("rejects negative steps", func() {
			_, err := chain.Simulate(stochastic.NewRand(1), "A", -1)
			Expect(err).To(MatchError(stochastic.ErrSteps))
		})

		It("validates through the package-level helper", func() {
			_, err := markov.Simulate([]string{"x"}, [][]float64{{0.9}}, "x", 3, nil)
			Expect(err).To(MatchError(stochastic.ErrNotStochastic))

			trace, err := markov.Simulate([]string{"x"}, [][]float64{{1}}, "x", 3, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(trace).To(Equal(markov.Trace{"x", "x", "x", "x"}))
		})

		It("converges to the configured row distributions", func() {
			trace, err := chain.Simulate(stochastic.NewRand(2024), "A", 200000)
			Expect(err).NotTo(HaveOccurred())

			emp, err := chain.Empirical(trace)
			Expect(err).NotTo(HaveOccurred())
			Expect(chain.MaxDeviation(emp)).To(BeNumerically("<", 0.02))
		})
	})

	Describe("Step", func() {
		It("follows an absorbing state", func() {
			c, err := markov.NewChain([]string{"on", "off"}, [][]float64{{0, 1}, {0, 1}})
			Expect(err).NotTo(HaveOccurred())

			next, err := c.Step(stochastic.NewRand(5), "on")
			Expect(err).NotTo(HaveOccurred())
			Expect(next).To(Equal("off"))

			_, err = c.Step(nil, "missing")
			Expect(err).To(MatchError(stochastic.ErrUnknownState))
		})
	})

	Describe("Edges", func() {
		It("lists non-zero transitions with loop and bidirectional flags", func() {
			c, err := markov.NewChain(states, matrix)
			Expect(err).NotTo(HaveOccurred())

			edges := c.Edges()
			Expect(edges).To(HaveLen(14))
			Expect(edges[0]).To(Equal(markov.Edge{From: "A", To: "A", Prob: 0.15, Self: true}))

			for _, e := range edges {
				Expect(e.Prob).To(BeNumerically(">", 0))
				if e.From == "A" && e.To == "B" {
					Expect(e.Bidirectional).To(BeTrue())
				}
				if e.From == "B" && e.To == "D" {
					Expect(e.Bidirectional).To(BeTrue())
				}
			}
		})
	})

	Describe("Occupancy", func() {
		It("sums to one", func() {
			c, err := markov.NewChain(states, matrix)
			Expect(err).NotTo(HaveOccurred())

			trace, err := c.Simulate(stochastic.NewRand(11), "B", 1000)
			Expect(err).NotTo(HaveOccurred())

			occ, err := c.Occupancy(trace)
			Expect(err).NotTo(HaveOccurred())
			total := 0.0
			for _, v := range occ {
				total += v
			}
			Expect(total).To(BeNumerically("~", 1, 1e-9))
		})
	})
})
