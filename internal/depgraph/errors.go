package depgraph

import (
	"errors"
	"strconv"
	"strings"
)

// ErrCycle is matched by every CycleError.
var ErrCycle = errors.New("circular dependency detected")

// CycleError reports the cycle an edge update would have created.
type CycleError struct {
	Path []int
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCycle.Error()
	}
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = strconv.Itoa(id)
	}
	return ErrCycle.Error() + ": " + strings.Join(parts, " -> ")
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// CheckAcyclic returns a *CycleError when g contains a cycle.
func CheckAcyclic(g *Graph) error {
	if path := g.FindCycle(); path != nil {
		return &CycleError{Path: path}
	}
	return nil
}
