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

// Package util provides the shared type and AST helpers used across the nullmark analyzers.
package util

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"

	"github.com/nullmark/nullmark/config"
)

// TypeBarsNilness returns true if the type `t` is not inhabited by nil, such as an int or a
// struct. Declarations whose results all bar nilness have no nullability to infer.
func TypeBarsNilness(t types.Type) bool {
	switch t := t.(type) {
	case *types.Array:
		return true
	case *types.Slice:
		return false
	case *types.Pointer:
		return false
	case *types.Tuple:
		return false
	case *types.Signature:
		return false // a value of function type may be nil
	case *types.Map:
		return false
	case *types.Chan:
		return false
	case *types.Named:
		return TypeBarsNilness(t.Underlying())
	case *types.Interface:
		return false
	case *types.Basic:
		// all basic types except UntypedNil are not inhabited by nil
		return t.Kind() != types.UntypedNil
	default:
		return true
	}
}

// UnwrapPtr returns the type of the element pointed to if `t` is a pointer type, otherwise it
// returns `t` unchanged.
func UnwrapPtr(t types.Type) types.Type {
	if ptr, ok := t.(*types.Pointer); ok {
		return ptr.Elem()
	}
	return t
}

// FuncIdentFromCallExpr returns the identifier of the function being called from a call
// expression, or nil for anonymous functions.
func FuncIdentFromCallExpr(expr *ast.CallExpr) *ast.Ident {
	switch fun := expr.Fun.(type) {
	case *ast.Ident:
		return fun
	case *ast.SelectorExpr:
		return fun.Sel
	default:
		// case of anonymous function
		return nil
	}
}

// PartiallyQualifiedFuncName returns the name of the passed function, with the name of its
// receiver if defined.
func PartiallyQualifiedFuncName(f *types.Func) string {
	if sig, ok := f.Type().(*types.Signature); ok && sig.Recv() != nil {
		return fmt.Sprintf("%s.%s", PortionAfterSep(sig.Recv().Type().String(), ".", 0), f.Name())
	}
	return f.Name()
}

// PortionAfterSep returns the suffix of the passed string `input` containing at most `occ`
// occurrences of the separator `sep`.
func PortionAfterSep(input, sep string, occ int) string {
	splits := strings.Split(input, sep)
	n := len(splits)
	if n <= occ+1 {
		return input
	}
	return strings.Join(splits[n-occ-1:], sep)
}

// DocContainsNoInfer reports whether the comment group opts the enclosing package out of
// inference, via the no-inference marker string.
func DocContainsNoInfer(group *ast.CommentGroup) bool {
	if group == nil {
		return false
	}
	for _, comment := range group.List {
		if strings.Contains(comment.Text, config.NullmarkNoInferString) {
			return true
		}
	}
	return false
}
