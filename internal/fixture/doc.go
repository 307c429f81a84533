// Package fixture is a small fixture-style test engine.
//
// Groups are registered explicitly on a Registry, each with optional setup and
// teardown hooks and an ordered list of cases. The Engine runs groups in
// registration order and, inside each group, runs setup, the case body and
// teardown for every case. A failed assertion aborts only the current case.
// Per-case lines and a summary are written as plain text:
//
//	TEST(testPlus, plus) PASS
//	TEST(testMinus, minus) FAIL: minus.go:21: Expected 2 Was -2
//
//	-----------------------
//	2 Tests 1 Failures 0 Ignored
//	FAIL
package fixture
