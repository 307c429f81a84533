package suites

import (
	"optest/internal/fixture"
	"optest/internal/operators"
)

func registerPlus(r *fixture.Registry) error {
	g, err := r.Group("testPlus")
	if err != nil {
		return err
	}
	g.Setup = func(t *fixture.T) {}
	g.TearDown = func(t *fixture.T) {}

	return g.Case("plus", func(t *fixture.T) {
		t.Assert(operators.Plus(0, 2) == 2)
		t.Assert(operators.Plus(0, -2) == -2)
		t.Assert(operators.Plus(2, 2) == 4)
	})
}
