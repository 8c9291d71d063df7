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
	"go/types"
)

// A ReturnSite is one return-expression occurrence within a declaration's body, attributed to
// one result index of the declaration's signature. Sites are owned by the body that contains
// them; the classifier only reads them and never outlives the traversal that discovered them.
type ReturnSite struct {
	// Ret is the return statement containing the site.
	Ret *ast.ReturnStmt
	// Expr is the expression returned for this result index. It is nil for bare returns, in
	// which case Named (if any) identifies the named result variable being returned.
	Expr ast.Expr
	// Named is the named result variable implicitly returned by a bare return, or nil.
	Named *types.Var
	// ResultIndex is the index in the declaration's result tuple this site contributes to.
	ResultIndex int
}

// CollectReturnSites traverses the body of the given declaration and returns every return site
// it contains, one per result index per return statement. Nested function literals are skipped:
// their returns belong to the literal, not to the enclosing declaration (anonymous functions
// form no declaration family of their own).
//
// This is the externally supplied "produce the return sites reachable from body B" traversal
// that the aggregator runs on each family member; the aggregation logic itself never touches
// the AST.
func CollectReturnSites(decl *ast.FuncDecl, fn *types.Func, info *types.Info) []ReturnSite {
	if decl == nil || decl.Body == nil || fn == nil {
		return nil
	}
	results := fn.Type().(*types.Signature).Results()

	var sites []ReturnSite
	ast.Inspect(decl.Body, func(n ast.Node) bool {
		if _, ok := n.(*ast.FuncLit); ok {
			return false
		}
		ret, ok := n.(*ast.ReturnStmt)
		if !ok {
			return true
		}

		switch {
		case len(ret.Results) == 0 && results.Len() == 0:
			// A plain return in a void declaration: a site with no value to classify.
			sites = append(sites, ReturnSite{Ret: ret})
		case len(ret.Results) == 0:
			// A bare return with named results: one site per result, carrying the named
			// variable so the classifier can consult its annotation.
			for i := 0; i < results.Len(); i++ {
				sites = append(sites, ReturnSite{Ret: ret, Named: results.At(i), ResultIndex: i})
			}
		case len(ret.Results) == 1 && results.Len() > 1:
			// An n-for-one return of a multi-result call: each result index gets a site
			// sharing the call expression.
			for i := 0; i < results.Len(); i++ {
				sites = append(sites, ReturnSite{Ret: ret, Expr: ret.Results[0], ResultIndex: i})
			}
		default:
			for i, expr := range ret.Results {
				sites = append(sites, ReturnSite{Ret: ret, Expr: expr, ResultIndex: i})
			}
		}
		return true
	})
	return sites
}
