// Package missingreturns is meant to check the report-missing-returns flag: a body-bearing
// declaration with nilable results but no return statements at all gets a notice instead of a
// suggestion.
package missingreturns

func alwaysPanics() *int { // want "function \"alwaysPanics\" has nilable results but no return statements"
	panic("not implemented")
}

func spins() *int { // want "function \"spins\" has nilable results but no return statements"
	for {
	}
}

// A declaration whose results all bar nilness gets no notice even without returns.
func exits() int {
	panic("not implemented")
}
