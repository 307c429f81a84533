package suites

import (
	"optest/internal/fixture"
	"optest/internal/operators"
)

func registerMinus(r *fixture.Registry) error {
	g, err := r.Group("testMinus")
	if err != nil {
		return err
	}
	g.Setup = func(t *fixture.T) {}
	g.TearDown = func(t *fixture.T) {}

	return g.Case("minus", func(t *fixture.T) {
		t.Assert(operators.Minus(2, 0) == 2)
		t.Assert(operators.Minus(0, -2) == 2)
		t.Assert(operators.Minus(2, 2) == 0)
	})
}
