// Package suggestunspecified is meant to check the suggest-unspecified flag: undecidable
// aggregates also yield suggestions when it is set.
package suggestunspecified

func passthrough(p *int) *int { // want "function \"passthrough\" has undetermined nullability \\(result 0\\); annotate it with //nullability\\(unspecified\\)"
	return p
}
