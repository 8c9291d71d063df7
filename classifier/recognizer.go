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

package classifier

import (
	"go/ast"
	"go/token"

	"github.com/nullmark/nullmark/util/analysishelper"
)

// A constRecognizer reports whether an expression has a compile-time-recognizable value of
// interest. Recognition is a list of independent capabilities rather than one closed type
// switch, so new literal forms extend the lists below without touching the classifier's control
// flow.
type constRecognizer func(pass *analysishelper.EnhancedPass, expr ast.Expr) bool

// _nullConstRecognizers recognize expressions that denote some form of nil: the untyped nil
// constant (possibly behind a conversion, which the caller strips) and constants evaluating to
// integer zero.
var _nullConstRecognizers = []constRecognizer{
	isNilConst,
	isZeroIntConst,
}

// _nonNullConstRecognizers recognize expressions that can never be nil: string constants,
// composite literals, address-of expressions, and function literals.
var _nonNullConstRecognizers = []constRecognizer{
	isStringConst,
	isCompositeLit,
	isAddressOf,
	isFuncLit,
}

// isNullConst reports whether the expression is a compile-time-recognizable null constant.
func isNullConst(pass *analysishelper.EnhancedPass, expr ast.Expr) bool {
	for _, recognize := range _nullConstRecognizers {
		if recognize(pass, expr) {
			return true
		}
	}
	return false
}

// isNonNullConst reports whether the expression is a value that can never be nil.
func isNonNullConst(pass *analysishelper.EnhancedPass, expr ast.Expr) bool {
	for _, recognize := range _nonNullConstRecognizers {
		if recognize(pass, expr) {
			return true
		}
	}
	return false
}

func isNilConst(pass *analysishelper.EnhancedPass, expr ast.Expr) bool {
	return pass.IsNil(expr)
}

func isZeroIntConst(pass *analysishelper.EnhancedPass, expr ast.Expr) bool {
	return pass.IsZero(expr)
}

func isStringConst(pass *analysishelper.EnhancedPass, expr ast.Expr) bool {
	return pass.IsStringConst(expr)
}

func isCompositeLit(_ *analysishelper.EnhancedPass, expr ast.Expr) bool {
	_, ok := expr.(*ast.CompositeLit)
	return ok
}

func isAddressOf(_ *analysishelper.EnhancedPass, expr ast.Expr) bool {
	unary, ok := expr.(*ast.UnaryExpr)
	return ok && unary.Op == token.AND
}

func isFuncLit(_ *analysishelper.EnhancedPass, expr ast.Expr) bool {
	_, ok := expr.(*ast.FuncLit)
	return ok
}
