package service

import (
	"math/rand/v2"
	"sync"
)

// Chooser picks an index in [0, n). Insight tips and chatbot replies draw
// through it so callers can pin the choice.
type Chooser interface {
	Choose(n int) int
}

// ChooserFunc adapts a plain function to Chooser.
type ChooserFunc func(n int) int

func (f ChooserFunc) Choose(n int) int { return f(n) }

// RandomChooser draws from the runtime's concurrency-safe generator.
func RandomChooser() Chooser {
	return ChooserFunc(rand.IntN)
}

// SeededChooser returns a reproducible Chooser that is safe for concurrent use.
func SeededChooser(seed uint64) Chooser {
	return &seededChooser{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type seededChooser struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *seededChooser) Choose(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// pick returns one element of options chosen by c. options must be non-empty.
func pick(c Chooser, options []string) string {
	if len(options) == 1 {
		return options[0]
	}
	i := c.Choose(len(options))
	if i < 0 || i >= len(options) {
		i = 0
	}
	return options[i]
}
