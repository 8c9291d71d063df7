// Package reportsites checks that when the report-sites flag is on, each diagnostic carries the
// per-return-site classifications that produced its aggregate as related information.
package reportsites

type gadget struct{}

func twoWays(fresh bool) *gadget { // want "function \"twoWays\" may return nil \\(result 0\\); annotate it with //nullability\\(nullable\\)"
	if fresh {
		return &gadget{}
	}
	return nil
}
