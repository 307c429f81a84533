// Package operators holds the arithmetic functions exercised by the sample suites.
package operators

// Plus returns the sum of a and b.
func Plus(a, b int) int {
	return a + b
}

// Minus returns a minus b.
func Minus(a, b int) int {
	return a - b
}
