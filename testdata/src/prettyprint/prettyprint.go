// Package prettyprint is meant to check if our pretty-print flag has effect.
package prettyprint

// Ensure that the ASCII escape code is in the want strings (such that the errors are pretty
// printed).
func gimmeNil() *int { // want "\u001B"
	return nil
}
