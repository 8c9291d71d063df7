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

package family

import (
	"go/ast"
	"go/types"

	"github.com/nullmark/nullmark/classifier"
)

// A Member is one syntactic declaration belonging to a family: a function or method declaration
// with its type object, plus its AST declaration when one exists in the analyzed package.
// Interface methods have no declaration of their own and appear as bodiless members.
type Member struct {
	// Obj is the type object of this declaration.
	Obj *types.Func
	// Decl is the syntactic declaration, or nil when none is available (interface methods,
	// methods implemented outside the analyzed package).
	Decl *ast.FuncDecl
}

// HasBody reports whether this member carries a body in the analyzed package.
func (m Member) HasBody() bool {
	return m.Decl != nil && m.Decl.Body != nil
}

// A Family is one canonical callable identity together with its redeclarations. Two shapes
// occur: a declared function or method is a family of one body-bearing canonical member, and an
// interface method is a bodiless canonical whose redeclarations are the implementing methods of
// the concrete types satisfying the interface. The family owns nothing: all AST and type
// objects belong to the pass.
type Family struct {
	// Canonical is the member holding the family's identity and, eventually, its aggregated
	// answer.
	Canonical Member
	// Redecls are the body-bearing redeclarations of the canonical, in deterministic order.
	// Empty for body-bearing canonicals.
	Redecls []Member
}

// ReturnSites collects every return site that contributes to this family's aggregate, using the
// supplied type information to attribute expressions to result indexes.
//
// The traversal policy: if the canonical member has no body, the bodies of all redeclarations
// are traversed; if the canonical has a body, only its own body is traversed - body-bearing
// redeclarations are covered by their own families, so traversing them here again would double
// count their sites.
func (f *Family) ReturnSites(info *types.Info) []classifier.ReturnSite {
	if !f.Canonical.HasBody() {
		var sites []classifier.ReturnSite
		for _, m := range f.Redecls {
			sites = append(sites, classifier.CollectReturnSites(m.Decl, m.Obj, info)...)
		}
		return sites
	}
	return classifier.CollectReturnSites(f.Canonical.Decl, f.Canonical.Obj, info)
}

// Responsible reports whether the canonical member should carry the family's aggregated answer:
// either it holds the only body, or it is a bodiless canonical whose redeclaration bodies were
// all folded into the aggregate. A bodiless canonical with no known redeclarations represents
// nothing and is not responsible for anything.
func (f *Family) Responsible() bool {
	return f.Canonical.HasBody() || len(f.Redecls) > 0
}

// NumResults returns the number of results in the canonical signature.
func (f *Family) NumResults() int {
	return f.Canonical.Obj.Type().(*types.Signature).Results().Len()
}

// ResultType returns the static type of result index i of the canonical signature.
func (f *Family) ResultType(i int) types.Type {
	return f.Canonical.Obj.Type().(*types.Signature).Results().At(i).Type()
}
