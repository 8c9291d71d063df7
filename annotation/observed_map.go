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

package annotation

import (
	"go/ast"
	"go/types"

	"github.com/nullmark/nullmark/config"
	"github.com/nullmark/nullmark/nullability"
	"golang.org/x/tools/go/analysis"
)

// An ObservedMap holds the explicit nullability annotations observed for this package plus the
// ones imported from upstream packages through facts. It is keyed by Key so that lookups work
// uniformly for local and imported declarations.
type ObservedMap struct {
	values map[Key][]nullability.Value
}

// Cache stores the annotations on exported declarations of the current package. It is exported
// as a package fact so downstream packages can resolve calls into this package without
// re-reading its source.
type Cache struct {
	Values map[Key][]nullability.Value
}

// AFact enables use of the facts passing mechanism in Go's analysis framework.
func (*Cache) AFact() {}

// ForObject returns the annotation values recorded for the given declaration's object. The ok
// result reports whether any annotation exists.
func (m *ObservedMap) ForObject(obj types.Object) ([]nullability.Value, bool) {
	if m == nil || obj == nil {
		return nil, false
	}
	vals, ok := m.values[NewKey(obj)]
	return vals, ok
}

// ForFuncRet returns the annotation for result index `num` of the given function, if one exists.
// A single-valued annotation on a multi-result function applies to its first result only.
func (m *ObservedMap) ForFuncRet(fn *types.Func, num int) (nullability.Value, bool) {
	vals, ok := m.ForObject(fn)
	if !ok || num < 0 || num >= len(vals) {
		return nullability.Unspecified, false
	}
	return vals[num], true
}

// ForVar returns the annotation for the given variable (parameter, local, global, named result,
// or struct field), if one exists.
func (m *ObservedMap) ForVar(v *types.Var) (nullability.Value, bool) {
	vals, ok := m.ForObject(v)
	if !ok || len(vals) == 0 {
		return nullability.Unspecified, false
	}
	return vals[0], true
}

// Len returns the number of annotated declarations known to the map.
func (m *ObservedMap) Len() int {
	return len(m.values)
}

// newObservedMap reads the annotations from the given files, merges in the annotations imported
// from upstream packages, and exports the annotations on exported declarations as a package
// fact.
func newObservedMap(pass *analysis.Pass, files []*ast.File) *ObservedMap {
	conf := pass.ResultOf[config.Analyzer].(*config.Config)
	values := make(map[Key][]nullability.Value)

	// Upstream annotations first; local observations of the same key (impossible in practice,
	// since keys embed the package path) would win.
	for _, f := range pass.AllPackageFacts() {
		if c, ok := f.Fact.(*Cache); ok {
			for k, v := range c.Values {
				values[k] = v
			}
		}
	}

	exported := make(map[Key][]nullability.Value)
	record := func(ident *ast.Ident, vals []nullability.Value) {
		obj := pass.TypesInfo.Defs[ident]
		if obj == nil {
			return
		}
		key := NewKey(obj)
		values[key] = vals
		if key.Exported {
			exported[key] = vals
		}
	}

	for _, file := range files {
		if !conf.IsFileInScope(file) {
			continue
		}
		ast.Inspect(file, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.FuncDecl:
				if vals, ok := parseAnnotation(node.Doc); ok {
					record(node.Name, vals)
				}
			case *ast.Field:
				// Covers struct fields, interface methods, and (multi-line) parameter and
				// result declarations alike. The trailing line comment is consulted when
				// there is no doc comment.
				vals, ok := parseAnnotation(node.Doc)
				if !ok {
					vals, ok = parseAnnotation(node.Comment)
				}
				if ok {
					for _, name := range node.Names {
						record(name, vals)
					}
				}
			case *ast.ValueSpec:
				vals, ok := parseAnnotation(node.Doc)
				if !ok {
					vals, ok = parseAnnotation(node.Comment)
				}
				if ok {
					for _, name := range node.Names {
						record(name, vals)
					}
				}
			}
			return true
		})
	}

	if len(exported) > 0 {
		pass.ExportPackageFact(&Cache{Values: exported})
	}

	return &ObservedMap{values: values}
}
