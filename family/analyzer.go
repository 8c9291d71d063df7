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

// Package family builds the declaration families of a package: every function and method
// declaration as a body-bearing family of one, and every interface method as a bodiless
// canonical joined with the implementing methods of the concrete types that satisfy the
// interface. The interface/implementation pairings already analyzed are exported as a package
// fact so that downstream packages do not aggregate the same pairing twice.
package family

import (
	"go/ast"
	"go/types"
	"reflect"
	"strings"

	"github.com/nullmark/nullmark/config"
	"github.com/nullmark/nullmark/util/analysishelper"
	"golang.org/x/tools/go/analysis"
)

const _doc = "Build the declaration families of this package - functions, methods, and" +
	" interface methods joined with their implementations - for the accumulator to aggregate"

// Analyzer here is the analyzer that builds declaration families.
var Analyzer = &analysis.Analyzer{
	Name:       "nullmark_family_analyzer",
	Doc:        _doc,
	Run:        analysishelper.WrapRun(run),
	ResultType: reflect.TypeOf((*analysishelper.Result[[]*Family])(nil)),
	FactTypes:  []analysis.Fact{new(PairCache)},
	Requires:   []*analysis.Analyzer{config.Analyzer},
}

// Pair is one analyzed interface/implementation pairing, identified by the fully qualified
// names of the two types.
type Pair struct {
	ImplementedID string
	DeclaredID    string
}

// PairCache stores the pairings between interfaces and their implementations that have been
// analyzed. Downstream packages use this to avoid re-aggregating the same pairing, which would
// otherwise emit the same family aggregate once per importing package.
type PairCache struct {
	Cache map[Pair]bool
}

// AFact enables use of the facts passing mechanism in Go's analysis framework.
func (*PairCache) AFact() {}

func run(pass *analysis.Pass) ([]*Family, error) {
	conf := pass.ResultOf[config.Analyzer].(*config.Config)
	if !conf.IsPkgInScope(pass.Pkg) {
		return nil, nil
	}

	b := &builder{
		pass:       pass,
		conf:       conf,
		declsByObj: make(map[*types.Func]*ast.FuncDecl),
	}
	return b.build(), nil
}

type builder struct {
	pass       *analysis.Pass
	conf       *config.Config
	declsByObj map[*types.Func]*ast.FuncDecl
}

func (b *builder) build() []*Family {
	var families []*Family

	// Declared functions and methods first, in file order: each is its own family with a
	// body-bearing canonical.
	for _, file := range b.pass.Files {
		if !b.conf.IsFileInScope(file) {
			continue
		}
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			obj, ok := b.pass.TypesInfo.Defs[fd.Name].(*types.Func)
			if !ok {
				continue
			}
			b.declsByObj[obj] = fd
			families = append(families, &Family{Canonical: Member{Obj: obj, Decl: fd}})
		}
	}

	// Interface methods next: bodiless canonicals joined with the implementing methods found
	// in this package. Scope names are sorted, so the order is deterministic.
	families = append(families, b.interfaceFamilies()...)
	return families
}

// interfaceFamilies pairs every interface declared in this package with the concrete types of
// this package that implement it, and produces one family per interface method. Pairings
// already analyzed by upstream packages are skipped via the fact-communicated cache.
func (b *builder) interfaceFamilies() []*Family {
	upstreamCache := make(map[Pair]bool)
	currentCache := make(map[Pair]bool)
	for _, f := range b.pass.AllPackageFacts() {
		if c, ok := f.Fact.(*PairCache); ok {
			for k, v := range c.Cache {
				upstreamCache[k] = v
			}
		}
	}

	scope := b.pass.Pkg.Scope()
	var ifaces []*types.Named
	var concretes []types.Type
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			// Uninstantiated generic types have no concrete method set to pair up.
			continue
		}
		if types.IsInterface(named) {
			ifaces = append(ifaces, named)
		} else {
			concretes = append(concretes, named)
		}
	}

	var families []*Family
	for _, ifaceNamed := range ifaces {
		iface, ok := ifaceNamed.Underlying().(*types.Interface)
		if !ok || iface.NumMethods() == 0 {
			continue
		}

		// Collect the implementing types first so every method family sees the same
		// deterministic implementation order.
		var impls []types.Type
		for _, concrete := range concretes {
			if !types.Implements(concrete, iface) && !types.Implements(types.NewPointer(concrete), iface) {
				continue
			}
			key := Pair{ImplementedID: qualifiedName(concrete), DeclaredID: qualifiedName(ifaceNamed)}
			if upstreamCache[key] || currentCache[key] {
				continue
			}
			currentCache[key] = true
			impls = append(impls, concrete)
		}
		if len(impls) == 0 {
			continue
		}

		for i := 0; i < iface.NumMethods(); i++ {
			ifaceMethod := iface.Method(i)
			fam := &Family{Canonical: Member{Obj: ifaceMethod}}
			for _, concrete := range impls {
				implObj, _, _ := types.LookupFieldOrMethod(concrete, true, b.pass.Pkg, ifaceMethod.Name())
				implMethod, ok := implObj.(*types.Func)
				if !ok {
					continue
				}
				decl, ok := b.declsByObj[implMethod]
				if !ok {
					// Implementing method declared outside this package (e.g., through
					// embedding); its sites are out of reach here.
					continue
				}
				fam.Redecls = append(fam.Redecls, Member{Obj: implMethod, Decl: decl})
			}
			if len(fam.Redecls) > 0 {
				families = append(families, fam)
			}
		}
	}

	if len(currentCache) > 0 {
		b.pass.ExportPackageFact(&PairCache{Cache: currentCache})
	}
	return families
}

// qualifiedName returns the fully qualified name of a named type, used as a stable pairing key
// across packages.
func qualifiedName(t types.Type) string {
	named, ok := t.(*types.Named)
	if !ok {
		return t.String()
	}
	obj := named.Obj()
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return strings.Join([]string{obj.Pkg().Path(), obj.Name()}, ".")
}
