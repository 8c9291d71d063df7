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

// Package inference implements the aggregation engine: it classifies every return site of each
// declaration family, reduces the classifications through the nullability lattice's meet, and
// memoizes the result per canonical declaration so the same family is never aggregated - or
// reported - twice within or across occurrences.
package inference

import (
	"go/types"
	"sync"

	"github.com/nullmark/nullmark/annotation"
	"github.com/nullmark/nullmark/classifier"
	"github.com/nullmark/nullmark/family"
	"github.com/nullmark/nullmark/nullability"
	"golang.org/x/tools/go/analysis"
)

// A SiteResult pairs one return site with its classification, for optional per-site reporting.
type SiteResult struct {
	Site  classifier.ReturnSite
	Value nullability.Value
}

// A FamilyResult is the terminal state of one family's pass: per-result aggregates (absent when
// a result index had no sites) plus the individual site classifications that produced them.
type FamilyResult struct {
	Family *family.Family
	// Results holds one aggregate per result index of the canonical signature.
	Results []nullability.Result
	// Sites holds the per-site classifications in traversal order.
	Sites []SiteResult
}

// An Engine aggregates declaration families within one analysis pass. Families share no state
// with each other, so the engine classifies them concurrently and serializes only the final
// collection; the inputs (AST, type info, annotation map) are all read-only.
type Engine struct {
	pass       *analysis.Pass
	classifier *classifier.Classifier
	observed   *annotation.ObservedMap
	upstream   map[annotation.Key][]nullability.Result
	aggregates *AggregateMap
	seen       map[annotation.Key]bool
}

// NewEngine creates an engine that consults the given observed annotations during
// classification.
func NewEngine(pass *analysis.Pass, observed *annotation.ObservedMap) *Engine {
	e := &Engine{
		pass:       pass,
		observed:   observed,
		upstream:   make(map[annotation.Key][]nullability.Result),
		aggregates: NewAggregateMap(),
		seen:       make(map[annotation.Key]bool),
	}
	e.classifier = classifier.New(pass, (*engineLookup)(e))
	return e
}

// ObserveUpstream loads the aggregates exported by upstream packages, so that calls into those
// packages classify using inferred information when no explicit annotation exists.
func (e *Engine) ObserveUpstream() {
	for _, f := range e.pass.AllPackageFacts() {
		m, ok := f.Fact.(*AggregateMap)
		if !ok {
			continue
		}
		m.OrderedRange(func(key annotation.Key, results []nullability.Result) bool {
			e.upstream[key] = results
			return true
		})
	}
}

// AggregateFamilies runs one pass over the given families and returns their terminal results in
// input order. Families whose canonical declaration was already aggregated - the same identity
// can be encountered once per occurrence - are skipped, which is what keeps repeated emission
// of the same aggregate from happening.
func (e *Engine) AggregateFamilies(families []*family.Family) []*FamilyResult {
	// Memoization is decided serially up front; classification then fans out since families
	// are independent and meet is order-insensitive.
	var fresh []*family.Family
	for _, fam := range families {
		key := annotation.NewKey(fam.Canonical.Obj)
		if e.seen[key] {
			continue
		}
		e.seen[key] = true
		fresh = append(fresh, fam)
	}

	results := make([]*FamilyResult, len(fresh))
	var wg sync.WaitGroup
	for i, fam := range fresh {
		i, fam := i, fam
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = e.aggregateFamily(fam)
		}()
	}
	wg.Wait()

	// Serialized reduction: record the aggregates in deterministic input order.
	for _, r := range results {
		e.aggregates.Store(annotation.NewKey(r.Family.Canonical.Obj), r.Results)
	}
	return results
}

// Export passes this package's aggregates downstream via the Facts mechanism.
func (e *Engine) Export() {
	e.aggregates.Export(e.pass)
}

// aggregateFamily collects the family's return sites, classifies each, and meets the
// classifications per result index. A result index with no sites at all gets the absent marker,
// never a meet over zero values.
func (e *Engine) aggregateFamily(fam *family.Family) *FamilyResult {
	sites := fam.ReturnSites(e.pass.TypesInfo)

	n := fam.NumResults()
	perIndex := make([][]nullability.Value, n)
	siteResults := make([]SiteResult, 0, len(sites))
	for _, site := range sites {
		v := e.classifier.Classify(site)
		siteResults = append(siteResults, SiteResult{Site: site, Value: v})
		if site.ResultIndex < n {
			perIndex[site.ResultIndex] = append(perIndex[site.ResultIndex], v)
		}
	}

	results := make([]nullability.Result, n)
	for i, vs := range perIndex {
		if len(vs) == 0 {
			results[i] = nullability.AbsentResult
			continue
		}
		results[i] = nullability.SomeResult(nullability.Meet(vs...))
	}

	return &FamilyResult{Family: fam, Results: results, Sites: siteResults}
}

// engineLookup adapts the engine to the classifier's Lookup interface: explicit annotations
// take precedence, then aggregates inferred by upstream packages.
type engineLookup Engine

func (l *engineLookup) ForFuncRet(fn *types.Func, num int) (nullability.Value, bool) {
	if v, ok := l.observed.ForFuncRet(fn, num); ok {
		return v, true
	}
	if results, ok := l.upstream[annotation.NewKey(fn)]; ok {
		if num >= 0 && num < len(results) && results[num].Present {
			return results[num].Value, true
		}
	}
	return nullability.Unspecified, false
}

func (l *engineLookup) ForVar(v *types.Var) (nullability.Value, bool) {
	return l.observed.ForVar(v)
}
