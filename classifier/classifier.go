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

// Package classifier determines the nullability of a single return site. Classification cascades
// through a fixed rule order - null constants, definitely-non-nil values, annotated calls,
// annotated references - and degrades to Unspecified for every shape it cannot recognize; no
// input is an error.
package classifier

import (
	"go/ast"
	"go/types"

	"github.com/nullmark/nullmark/nullability"
	"github.com/nullmark/nullmark/util"
	"github.com/nullmark/nullmark/util/analysishelper"
	"github.com/nullmark/nullmark/util/asthelper"
	"golang.org/x/tools/go/analysis"
)

// Lookup resolves the nullability recorded for a declaration, either from an explicit
// annotation or from facts imported from upstream packages. Implementations return ok=false
// when nothing is recorded.
type Lookup interface {
	// ForFuncRet resolves the recorded nullability of result index num of fn.
	ForFuncRet(fn *types.Func, num int) (nullability.Value, bool)
	// ForVar resolves the recorded nullability of a variable, parameter, or field.
	ForVar(v *types.Var) (nullability.Value, bool)
}

// A Classifier classifies return sites within one analysis pass. It only reads the AST and type
// information owned by the pass, never mutating either.
type Classifier struct {
	pass   *analysishelper.EnhancedPass
	lookup Lookup
}

// New returns a Classifier that consults the given lookup for annotated declarations.
func New(pass *analysis.Pass, lookup Lookup) *Classifier {
	return &Classifier{pass: analysishelper.NewEnhancedPass(pass), lookup: lookup}
}

// Classify determines the nullability denoted by a single return site.
func (c *Classifier) Classify(site ReturnSite) nullability.Value {
	if site.Expr == nil {
		// A bare return: with named results the named variable's annotation still applies,
		// otherwise there is nothing to classify.
		if site.Named != nil {
			if v, ok := c.lookup.ForVar(site.Named); ok {
				return v
			}
		}
		return nullability.Unspecified
	}

	inner := asthelper.InnermostExpr(site.Expr, c.pass.TypesInfo)

	// An n-for-one return statement: the site's expression produces a tuple and the site refers
	// to one of its components. Only calls produce tuples, so this resolves directly against
	// the callee.
	if call, ok := inner.(*ast.CallExpr); ok {
		if tv, ok := c.pass.TypesInfo.Types[call]; ok {
			if _, isTuple := tv.Type.(*types.Tuple); isTuple {
				return c.classifyCall(call, site.ResultIndex)
			}
		}
	}

	return c.classifyExpr(inner)
}

// classifyExpr runs the rule cascade on a stripped expression; first match wins.
func (c *Classifier) classifyExpr(expr ast.Expr) nullability.Value {
	if isNullConst(c.pass, expr) {
		return nullability.Nullable
	}

	if isNonNullConst(c.pass, expr) {
		return nullability.NonNull
	}

	switch e := expr.(type) {
	case *ast.CallExpr:
		return c.classifyCall(e, 0)
	case *ast.Ident:
		return c.classifyRef(e)
	case *ast.SelectorExpr:
		return c.classifyRef(e.Sel)
	}

	return nullability.Unspecified
}

// classifyCall resolves the nullability of result index num of the called function or method,
// using whatever the lookup knows about the callee. Builtin allocations can never return nil.
func (c *Classifier) classifyCall(call *ast.CallExpr, num int) nullability.Value {
	ident := util.FuncIdentFromCallExpr(call)
	if ident == nil {
		// Calls through function literals or stored function values carry no declaration to
		// consult.
		return nullability.Unspecified
	}

	switch obj := c.pass.TypesInfo.Uses[ident].(type) {
	case *types.Builtin:
		if obj.Name() == "new" || obj.Name() == "make" {
			return nullability.NonNull
		}
	case *types.Func:
		if v, ok := c.lookup.ForFuncRet(obj, num); ok {
			return v
		}
	}

	return nullability.Unspecified
}

// classifyRef resolves the nullability of a reference to a declared entity (parameter, local,
// global, or field).
func (c *Classifier) classifyRef(ident *ast.Ident) nullability.Value {
	if v, ok := c.pass.TypesInfo.Uses[ident].(*types.Var); ok {
		if val, ok := c.lookup.ForVar(v); ok {
			return val
		}
	}
	return nullability.Unspecified
}
