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

// Package accumulation coordinates the entire workflow: it collects the observed annotations and
// declaration families from the sub-analyzers, runs the inference engine over each family, and
// turns the aggregates into the diagnostics - annotation suggestions, conflicts, and
// missing-return notices - that the top-level analyzer reports. The aggregates of this package
// are exported as facts for downstream packages.
package accumulation

import (
	"fmt"
	"go/token"
	"reflect"
	"runtime/debug"
	"strings"

	"github.com/nullmark/nullmark/annotation"
	"github.com/nullmark/nullmark/config"
	"github.com/nullmark/nullmark/family"
	"github.com/nullmark/nullmark/inference"
	"github.com/nullmark/nullmark/nullability"
	"github.com/nullmark/nullmark/util"
	"github.com/nullmark/nullmark/util/analysishelper"
	"github.com/nullmark/nullmark/util/asthelper"
	"golang.org/x/tools/go/analysis"
)

const _doc = "Read the annotations and declaration families from this package as Results from the" +
	" corresponding Analyzers, aggregate the nullability of every family's return sites, and" +
	" produce the diagnostics that a later analyzer will report"

// Analyzer here is the accumulator that aggregates families against annotations to generate the
// diagnostics that become reports in the next Analyzer.
var Analyzer = &analysis.Analyzer{
	Name: "nullmark_accumulation_analyzer",
	Doc:  _doc,
	Run:  run,
	FactTypes: []analysis.Fact{
		new(inference.AggregateMap),
	},
	Requires:   []*analysis.Analyzer{config.Analyzer, annotation.Analyzer, family.Analyzer},
	ResultType: reflect.TypeOf(([]analysis.Diagnostic)(nil)),
}

func run(pass *analysis.Pass) (result interface{}, _ error) {
	// As a last resort, we recover from a panic when running the analyzer, convert the panic to
	// a diagnostic and return.
	defer func() {
		if r := recover(); r != nil {
			// Deferred functions are executed after a result is generated, so here we modify the
			// return value `result` in-place.
			// Diagnostics with invalid positions (<= 0) will be silently suppressed, so here we use 1.
			d := analysis.Diagnostic{Pos: 1, Message: fmt.Sprintf("INTERNAL PANIC: %s\n%s", r, string(debug.Stack()))}
			if diagnostics, ok := result.([]analysis.Diagnostic); ok {
				result = append(diagnostics, d)
			} else {
				result = []analysis.Diagnostic{d}
			}
		}
	}()

	conf := pass.ResultOf[config.Analyzer].(*config.Config)
	if !conf.IsPkgInScope(pass.Pkg) {
		// Must return a typed nil since the driver is using reflection to retrieve the result.
		return ([]analysis.Diagnostic)(nil), nil
	}

	// A package can opt out of inference entirely via its doc comment.
	for _, file := range pass.Files {
		if util.DocContainsNoInfer(file.Doc) {
			return ([]analysis.Diagnostic)(nil), nil
		}
	}

	annotationResult := pass.ResultOf[annotation.Analyzer].(*analysishelper.Result[*annotation.ObservedMap])
	familyResult := pass.ResultOf[family.Analyzer].(*analysishelper.Result[[]*family.Family])
	var errs []error
	for _, err := range [...]error{annotationResult.Err, familyResult.Err} {
		if err != nil {
			errs = append(errs, err)
		}
	}

	// For now, if there are any errors in the sub-analyzers, we directly emit diagnostics on the
	// errors. However, in the future we could implement error recovery and make use of the
	// partial information to continue the analysis.
	if len(errs) != 0 {
		return errorsToDiagnostics(errs), nil
	}

	observed := annotationResult.Res

	// Create an engine, observe the aggregates exported by upstream packages, and run one pass
	// over this package's families. The engine memoizes per canonical identity, so a family
	// encountered through several occurrences yields exactly one terminal result.
	engine := inference.NewEngine(pass, observed)
	engine.ObserveUpstream()
	results := engine.AggregateFamilies(familyResult.Res)

	reporter := &reporter{pass: pass, conf: conf, observed: observed}
	for _, r := range results {
		reporter.report(r)
	}

	// Export the aggregates for the analysis of downstream packages via the Facts mechanism.
	// The custom GobEncode / GobDecode methods of AggregateMap keep the payload compressed and
	// deterministic.
	engine.Export()

	return reporter.diagnostics, nil
}

// errorsToDiagnostics converts the internal errors to a slice of analysis.Diagnostic to be reported.
func errorsToDiagnostics(errs []error) []analysis.Diagnostic {
	diagnostics := make([]analysis.Diagnostic, len(errs))
	for i, err := range errs {
		// Diagnostics with invalid positions (<= 0) will be silently suppressed, so here we use 1.
		diagnostics[i] = analysis.Diagnostic{Pos: 1, Message: "INTERNAL ERROR: " + err.Error()}
	}
	return diagnostics
}

// reporter turns family results into diagnostics under the active configuration.
type reporter struct {
	pass        *analysis.Pass
	conf        *config.Config
	observed    *annotation.ObservedMap
	diagnostics []analysis.Diagnostic
}

func (r *reporter) report(res *inference.FamilyResult) {
	fam := res.Family
	if !fam.Responsible() {
		return
	}

	obj := fam.Canonical.Obj
	name := util.PartiallyQualifiedFuncName(obj)

	nilable := make([]bool, fam.NumResults())
	anyNilable := false
	for i := range nilable {
		nilable[i] = !util.TypeBarsNilness(fam.ResultType(i))
		anyNilable = anyNilable || nilable[i]
	}
	if !anyNilable {
		return
	}

	// The absent aggregate across every nilable result means the family's bodies contain no
	// return statements at all (e.g., they only panic). This is deliberately distinct from an
	// unspecified aggregate and is surfaced as its own notice.
	if len(res.Sites) == 0 {
		if r.conf.ReportMissingReturns && fam.Canonical.HasBody() {
			r.add(analysis.Diagnostic{
				Pos:     obj.Pos(),
				Message: fmt.Sprintf("function %q has nilable results but no return statements", name),
			})
		}
		return
	}

	fix := r.suggestedFix(res, nilable)
	for i, agg := range res.Results {
		if !nilable[i] || !agg.Present {
			continue
		}

		if annotated, ok := r.observed.ForFuncRet(obj, i); ok {
			// An explicit annotation is authoritative; only flag it when the inference is
			// strictly weaker, i.e., the declaration promises more than its bodies keep.
			if nullability.Weaker(agg.Value, annotated) {
				r.add(analysis.Diagnostic{
					Pos: obj.Pos(),
					Message: fmt.Sprintf("function %q is annotated %s but its returns classify as %s (result %d)",
						name, annotated, agg.Value, i),
					Related: r.relatedSites(res, i),
				})
			}
			continue
		}

		if agg.Value == nullability.Unspecified && !r.conf.SuggestUnspecified {
			continue
		}

		d := analysis.Diagnostic{
			Pos:     obj.Pos(),
			Message: fmt.Sprintf("%s; annotate it with //%s(%s)", describeAggregate(name, agg.Value, i), config.AnnotationKeyword, agg.Value),
			Related: r.relatedSites(res, i),
		}
		if fix != nil {
			// The fix inserts one annotation comment covering all results, so it rides along
			// with the first diagnostic of the family only.
			d.SuggestedFixes = []analysis.SuggestedFix{*fix}
			fix = nil
		}
		r.add(d)
	}
}

// describeAggregate phrases an inferred value the way a reviewer would.
func describeAggregate(name string, v nullability.Value, num int) string {
	switch v {
	case nullability.Nullable:
		return fmt.Sprintf("function %q may return nil (result %d)", name, num)
	case nullability.NonNull:
		return fmt.Sprintf("function %q never returns nil (result %d)", name, num)
	default:
		return fmt.Sprintf("function %q has undetermined nullability (result %d)", name, num)
	}
}

// suggestedFix builds the text edit inserting an annotation comment above the canonical
// declaration, with one value per result index. Nil when there is no declaration to attach the
// comment to.
func (r *reporter) suggestedFix(res *inference.FamilyResult, nilable []bool) *analysis.SuggestedFix {
	var (
		pos    token.Pos
		indent string
	)
	if decl := res.Family.Canonical.Decl; decl != nil {
		pos = decl.Pos()
	} else {
		// Interface method canonicals have no FuncDecl; anchor the comment at the start of the
		// method's line so it lands on its own line above the field instead of mid-line before
		// the method name.
		objPos := res.Family.Canonical.Obj.Pos()
		tf := r.pass.Fset.File(objPos)
		pos = tf.LineStart(tf.Line(objPos))
		indent = "\t"
	}

	vals := make([]string, len(res.Results))
	for i, agg := range res.Results {
		if nilable[i] && agg.Present {
			vals[i] = agg.Value.String()
		} else {
			vals[i] = nullability.UnspecifiedKeyword
		}
	}
	text := fmt.Sprintf("%s//%s(%s)\n", indent, config.AnnotationKeyword, strings.Join(vals, ", "))

	return &analysis.SuggestedFix{
		Message: "add the inferred nullability annotation",
		TextEdits: []analysis.TextEdit{
			{Pos: pos, End: pos, NewText: []byte(text)},
		},
	}
}

// relatedSites attaches the per-site classifications for one result index when the
// configuration asks for them.
func (r *reporter) relatedSites(res *inference.FamilyResult, num int) []analysis.RelatedInformation {
	if !r.conf.ReportSites {
		return nil
	}
	var related []analysis.RelatedInformation
	for _, sr := range res.Sites {
		if sr.Site.ResultIndex != num {
			continue
		}
		msg := fmt.Sprintf("bare return classifies as %s", sr.Value)
		if sr.Site.Expr != nil {
			msg = fmt.Sprintf("return of %s classifies as %s", asthelper.PrintExpr(sr.Site.Expr, r.pass, true), sr.Value)
		}
		related = append(related, analysis.RelatedInformation{Pos: sr.Site.Ret.Pos(), Message: msg})
	}
	return related
}

func (r *reporter) add(d analysis.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}
