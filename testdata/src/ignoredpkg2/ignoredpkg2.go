// Package ignoredpkg2 is excluded from analysis via the exclude-pkgs flag, so nothing below gets
// a report.
package ignoredpkg2

//nullability(nonnull)
func broken() *int {
	return nil
}
