// Package ignoredpkg1 is excluded from analysis via the exclude-pkgs flag, so nothing below gets
// a report.
package ignoredpkg1

func gimmeNil() *int {
	return nil
}
