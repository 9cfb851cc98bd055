package pipeline

import "fmt"

// seqGenerator yields deterministic 32-char tokens for stable test output.
type seqGenerator struct {
	n int
}

func (g *seqGenerator) NextToken() string {
	g.n++
	return fmt.Sprintf("%032d", g.n)
}
