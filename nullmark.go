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

// Package nullmark implements the top-level analyzer that simply retrieves the diagnostics from
// the accumulation analyzer and reports them.
package nullmark

import (
	"fmt"
	"regexp"

	"github.com/nullmark/nullmark/accumulation"
	"github.com/nullmark/nullmark/config"
	"golang.org/x/tools/go/analysis"
)

const _doc = "Run nullmark on this package to infer the nullability of every function and method" +
	" result from its return statements and suggest explicit nullability annotations"

// Analyzer is the top-level instance of Analyzer - it coordinates the entire dataflow to report
// inferred nullability in this package. It is needed here for nogo to recognize the package.
var Analyzer = &analysis.Analyzer{
	Name:      "nullmark",
	Doc:       _doc,
	Run:       run,
	FactTypes: []analysis.Fact{},
	Requires:  []*analysis.Analyzer{config.Analyzer, accumulation.Analyzer},
}

func run(pass *analysis.Pass) (interface{}, error) {
	conf := pass.ResultOf[config.Analyzer].(*config.Config)
	diagnostics := pass.ResultOf[accumulation.Analyzer].([]analysis.Diagnostic)
	for _, d := range diagnostics {
		if conf.PrettyPrint {
			d.Message = prettyPrintMessage(d.Message)
		}
		pass.Report(d)
	}

	return nil, nil
}

var codeReferencePattern = regexp.MustCompile("\\`(.*?)\\`")
var quotedNamePattern = regexp.MustCompile(`"(.*?)"`)
var nullabilityPattern = regexp.MustCompile(`(?i)(nonnull|nullable|unspecified)`)

// prettyPrintMessage is used in error reporting to post process and pretty print the output with colors
func prettyPrintMessage(msg string) string {
	codeStr := fmt.Sprintf("\u001B[%dm%s\u001B[0m", 95, "`${1}`")     // magenta
	nameStr := fmt.Sprintf("\u001B[%dm%s\u001B[0m", 36, `"${1}"`)     // cyan
	nullabilityStr := fmt.Sprintf("\u001B[%dm%s\u001B[0m", 1, "${1}") // bold

	msg = nullabilityPattern.ReplaceAllString(msg, nullabilityStr)
	msg = codeReferencePattern.ReplaceAllString(msg, codeStr)
	msg = quotedNamePattern.ReplaceAllString(msg, nameStr)
	return msg
}
