package markov

// Trace is the ordered list of visited states, initial state first.
type Trace []string

// Transition is one observed move of a trace.
type Transition struct {
	Step     int
	From, To string
}

// Transitions returns consecutive (from, to) pairs; Step counts from 1.
func (t Trace) Transitions() []Transition {
	if len(t) < 2 {
		return nil
	}
	out := make([]Transition, 0, len(t)-1)
	for i := 1; i < len(t); i++ {
		out = append(out, Transition{Step: i, From: t[i-1], To: t[i]})
	}
	return out
}

// Final returns the last visited state.
func (t Trace) Final() string {
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1]
}

// Indices maps the trace onto state indices using lookup.
func (t Trace) Indices(lookup func(string) (int, bool)) []float64 {
	out := make([]float64, len(t))
	for i, s := range t {
		if idx, ok := lookup(s); ok {
			out[i] = float64(idx)
		}
	}
	return out
}
