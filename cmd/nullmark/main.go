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

// main package makes it possible to build nullmark as a standalone code checker that can be
// independently invoked to check other packages.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nullmark/nullmark"
	"github.com/nullmark/nullmark/config"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/singlechecker"
)

// Analyzer is identical to the one in nullmark.go, except that it overrides the run function for
// extra filtering of reports, since the singlechecker does not support suppression like other
// popular linter drivers.
var Analyzer = &analysis.Analyzer{
	Name:       nullmark.Analyzer.Name,
	Doc:        nullmark.Analyzer.Doc,
	Run:        run,
	FactTypes:  nullmark.Analyzer.FactTypes,
	ResultType: nullmark.Analyzer.ResultType,
	Requires:   nullmark.Analyzer.Requires,
}

var (
	// _includeReportsInFiles is a driver flag for specifying the list of file prefixes to only report in.
	_includeReportsInFiles string
	// _excludeReportsInFiles is a driver flag for specifying the list of file prefixes to not report in.
	_excludeReportsInFiles string
)

func run(pass *analysis.Pass) (interface{}, error) {
	// nullmark analyzes all packages by default, including dependencies, so annotation
	// suggestions can surface for code the user does not own. The usual way to handle them is
	// to suppress them at the driver level, but singlechecker does not support that yet.
	// Therefore, here we add extra logic to filter the reports.

	includes, err := parseFilePrefixes(_includeReportsInFiles)
	if err != nil {
		return nil, fmt.Errorf("parse file prefixes for report inclusion: %w", err)
	}
	excludes, err := parseFilePrefixes(_excludeReportsInFiles)
	if err != nil {
		return nil, fmt.Errorf("parse file prefixes for report exclusion: %w", err)
	}

	// Override the report function to add filtering logic.
	report := pass.Report
	pass.Report = func(d analysis.Diagnostic) {
		p := pass.Fset.File(d.Pos).Name()
		for _, e := range excludes {
			if strings.HasPrefix(p, e) {
				return
			}
		}

		for _, i := range includes {
			if strings.HasPrefix(p, i) {
				report(d)
				return
			}
		}
	}

	// Delegate the real analysis run to the original nullmark analyzer.
	return nullmark.Analyzer.Run(pass)
}

// parseFilePrefixes parses the comma-separated list of file prefixes, converts them to absolute
// file paths, and returns them as a slice.
func parseFilePrefixes(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}

	// Convert the file paths to absolute paths.
	list := strings.Split(s, ",")
	for i := range list {
		p, err := filepath.Abs(list[i])
		if err != nil {
			return nil, fmt.Errorf("convert %q to absolute path: %w", list[i], err)
		}
		list[i] = p
	}
	return list, nil
}

func main() {
	// For better UX, we lift the flags from config.Analyzer to the top level so that users can
	// specify them without having to specify the analyzer name ("nullmark_config"):
	//
	// `nullmark -flag1 <VALUE1> -flag2 <VALUE> ./...`
	//
	config.Analyzer.Flags.VisitAll(func(f *flag.Flag) { flag.Var(f.Value, f.Name, f.Usage) })

	// Add two more flags to the driver for report suppression since singlechecker does not support it.
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get working directory: %v\n", err)
		os.Exit(1)
	}
	flag.StringVar(&_includeReportsInFiles, "include-reports-in-files", wd, "A comma-separated list of file prefixes to report in, default is current working directory.")
	flag.StringVar(&_excludeReportsInFiles, "exclude-reports-in-files", "", "A comma-separated list of file prefixes to exclude from reporting. This takes precedence over include-reports-in-files.")

	singlechecker.Main(Analyzer)
}
