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

// Package annotation reads the explicit nullability annotations attached to declarations via
// `//nullability(...)` comments, making them available to the classifier and the inference
// engine, and passing the exported ones downstream as facts.
package annotation

import (
	"reflect"

	"github.com/nullmark/nullmark/config"
	"github.com/nullmark/nullmark/util/analysishelper"
	"golang.org/x/tools/go/analysis"
)

const _doc = "Read the nullability annotations for each declaration in this package, returning" +
	" the results so that they may be consulted by the classifier and checked by the accumulator"

// Analyzer here is the analyzer that reads annotations and passes them onto the accumulator.
var Analyzer = &analysis.Analyzer{
	Name:       "nullmark_annotation_analyzer",
	Doc:        _doc,
	Run:        analysishelper.WrapRun(run),
	ResultType: reflect.TypeOf((*analysishelper.Result[*ObservedMap])(nil)),
	FactTypes:  []analysis.Fact{new(Cache)},
	Requires:   []*analysis.Analyzer{config.Analyzer},
}

func run(pass *analysis.Pass) (*ObservedMap, error) {
	conf := pass.ResultOf[config.Analyzer].(*config.Config)
	if !conf.IsPkgInScope(pass.Pkg) {
		return &ObservedMap{}, nil
	}

	return newObservedMap(pass, pass.Files), nil
}
