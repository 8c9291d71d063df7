// Package suggestedfixes checks the text edits attached to annotation suggestions: one inserted
// comment per declaration covering every result index, placed on its own line both for ordinary
// declarations and for bodiless interface methods.
package suggestedfixes

type box struct{}

func gimmeNil() *box { // want "function \"gimmeNil\" may return nil \\(result 0\\); annotate it with //nullability\\(nullable\\)"
	return nil
}

func make2() (*box, *box) { // want "function \"make2\" may return nil \\(result 0\\); annotate it with //nullability\\(nullable\\)" "function \"make2\" never returns nil \\(result 1\\); annotate it with //nullability\\(nonnull\\)"
	return nil, new(box)
}

// Result indexes whose type cannot hold nil stay unspecified in the inserted annotation.
func tally() (int, *box) { // want "function \"tally\" may return nil \\(result 1\\); annotate it with //nullability\\(nullable\\)"
	return 0, nil
}

type opener interface {
	open() *box // want "function \"opener.open\" may return nil \\(result 0\\); annotate it with //nullability\\(nullable\\)"
}

type crate struct{}

func (c *crate) open() *box { // want "function \"crate.open\" may return nil \\(result 0\\); annotate it with //nullability\\(nullable\\)"
	return nil
}
