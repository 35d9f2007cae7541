package markov_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stochsim/internal/markov"
)

var _ = Describe("Trace", func() {
	It("lists transitions in order", func() {
		tr := markov.Trace{"A", "B", "B", "C"}
		Expect(tr.Transitions()).To(Equal([]markov.Transition{
			{Step: 1, From: "A", To: "B"},
			{Step: 2, From: "B", To: "B"},
			{Step: 3, From: "B", To: "C"},
		}))
		Expect(tr.Final()).To(Equal("C"))
	})

	It("has no transitions for a single state", func() {
		Expect(markov.Trace{"A"}.Transitions()).To(BeEmpty())
		Expect(markov.Trace{}.Final()).To(Equal(""))
	})

	It("maps states to indices", func() {
		lookup := map[string]int{"A": 0, "B": 1}
		idx := markov.Trace{"B", "A", "B"}.Indices(func(s string) (int, bool) {
			i, ok := lookup[s]
			return i, ok
		})
		Expect(idx).To(Equal([]float64{1, 0, 1}))
	})
})
