//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config implements the configuration analyzer for nullmark. All user-facing knobs are
// exposed as flags on this analyzer, and every other sub-analyzer retrieves the parsed *Config
// through pass.ResultOf instead of reading flags itself.
package config

import (
	"go/ast"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/analysis"
)

const _doc = "Parse the flags and make the resulting configuration struct available to all other" +
	" analyzers in nullmark"

// Flag names for the config analyzer. They are exported such that drivers (e.g., the standalone
// checker or the golangci-lint plugin) and tests can set them programmatically.
const (
	// IncludePkgsFlag is a comma-separated list of package prefixes to analyze. If empty, all
	// packages are in scope (minus the excluded ones).
	IncludePkgsFlag = "include-pkgs"
	// ExcludePkgsFlag is a comma-separated list of package prefixes to exclude from analysis.
	// Takes precedence over IncludePkgsFlag.
	ExcludePkgsFlag = "exclude-pkgs"
	// ExcludeFileDocStringsFlag is a comma-separated list of strings whose presence in a file's
	// doc comment excludes the file from analysis (e.g., code-generation markers).
	ExcludeFileDocStringsFlag = "exclude-file-doc-strings"
	// PrettyPrintFlag enables colorized messages in the reported diagnostics.
	PrettyPrintFlag = "pretty-print"
	// ReportSitesFlag attaches per-return-site classifications to each diagnostic as related
	// information.
	ReportSitesFlag = "report-sites"
	// SuggestUnspecifiedFlag enables annotation suggestions for declarations whose inferred
	// nullability is unspecified. Off by default since such suggestions mostly mark work for a
	// human reviewer.
	SuggestUnspecifiedFlag = "suggest-unspecified"
	// ReportMissingReturnsFlag enables the notice for body-bearing declarations with nilable
	// results but no return statements at all (e.g., panic-only bodies). This is the observable
	// form of the absent aggregate, which is distinct from an unspecified one.
	ReportMissingReturnsFlag = "report-missing-returns"
)

// Analyzer parses the flags and returns the Config struct. All other analyzers require this one.
var Analyzer = &analysis.Analyzer{
	Name:       "nullmark_config",
	Doc:        _doc,
	Run:        run,
	ResultType: reflect.TypeOf((*Config)(nil)),
}

var (
	_includePkgs           string
	_excludePkgs           string
	_excludeFileDocStrings string
	_prettyPrint           bool
	_reportSites           bool
	_suggestUnspecified    bool
	_reportMissingReturns  bool
)

func init() {
	Analyzer.Flags.StringVar(&_includePkgs, IncludePkgsFlag, "", "Comma-separated list of package prefixes to analyze (default: all).")
	Analyzer.Flags.StringVar(&_excludePkgs, ExcludePkgsFlag, "", "Comma-separated list of package prefixes to exclude from analysis.")
	Analyzer.Flags.StringVar(&_excludeFileDocStrings, ExcludeFileDocStringsFlag, "", "Comma-separated list of file doc strings to exclude from analysis.")
	Analyzer.Flags.BoolVar(&_prettyPrint, PrettyPrintFlag, true, "Pretty print the error messages.")
	Analyzer.Flags.BoolVar(&_reportSites, ReportSitesFlag, false, "Attach per-return-site classifications to diagnostics.")
	Analyzer.Flags.BoolVar(&_suggestUnspecified, SuggestUnspecifiedFlag, false, "Also suggest annotations for unspecified inferences.")
	Analyzer.Flags.BoolVar(&_reportMissingReturns, ReportMissingReturnsFlag, false, "Report declarations with nilable results but no return statements.")
}

// Config is the result struct of this analyzer, holding the parsed configuration.
type Config struct {
	// PrettyPrint indicates whether the diagnostic messages should be colorized.
	PrettyPrint bool
	// ReportSites indicates whether per-site classifications should accompany diagnostics.
	ReportSites bool
	// SuggestUnspecified indicates whether unspecified inferences should still yield annotation
	// suggestions.
	SuggestUnspecified bool
	// ReportMissingReturns indicates whether absent aggregates should be surfaced as notices.
	ReportMissingReturns bool

	includePkgs           []string
	excludePkgs           []string
	excludeFileDocStrings []string
}

// IsPkgInScope returns whether the given package should be analyzed under this configuration.
func (c *Config) IsPkgInScope(pkg *types.Package) bool {
	if pkg == nil {
		return false
	}
	// nullmark's own packages are never analyzed.
	if strings.HasPrefix(pkg.Path(), NullmarkPkgPathPrefix) {
		return false
	}
	for _, p := range c.excludePkgs {
		if strings.HasPrefix(pkg.Path(), p) {
			return false
		}
	}
	if len(c.includePkgs) == 0 {
		return true
	}
	for _, p := range c.includePkgs {
		if strings.HasPrefix(pkg.Path(), p) {
			return true
		}
	}
	return false
}

// IsFileInScope returns whether the given file should be analyzed. A file is out of scope when
// its doc comment contains any of the configured exclusion strings (typically code-generation
// markers).
func (c *Config) IsFileInScope(file *ast.File) bool {
	if file == nil {
		return false
	}
	if file.Doc != nil {
		for _, comment := range file.Doc.List {
			for _, s := range c.excludeFileDocStrings {
				if strings.Contains(comment.Text, s) {
					return false
				}
			}
		}
	}
	return true
}

func run(_ *analysis.Pass) (interface{}, error) {
	return &Config{
		PrettyPrint:           _prettyPrint,
		ReportSites:           _reportSites,
		SuggestUnspecified:    _suggestUnspecified,
		ReportMissingReturns:  _reportMissingReturns,
		includePkgs:           splitCommaSeparated(_includePkgs),
		excludePkgs:           splitCommaSeparated(_excludePkgs),
		excludeFileDocStrings: splitCommaSeparated(_excludeFileDocStrings),
	}, nil
}

func splitCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
