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
	"fmt"
	"go/ast"
	"regexp"
	"strings"

	"github.com/nullmark/nullmark/config"
	"github.com/nullmark/nullmark/nullability"
)

const _sep = ","
const _valueKeywords = nullability.NonNullKeyword + "|" + nullability.NullableKeyword + "|" + nullability.UnspecifiedKeyword

// _annotationRE matches one nullability annotation comment such as `//nullability(nullable)` or
// `//nullability(nonnull, nullable)`. The comma-separated values map onto result indexes for
// function declarations; for variables, fields, and parameters only the first value is
// meaningful. Start and end of line are anchored so only comments written in their own line (or
// trailing a declaration) are acknowledged.
var _annotationRE = regexp.MustCompile(
	fmt.Sprintf("^\\s*//\\s*%s\\s*\\(\\s*((?:%s)(?:\\s*,\\s*(?:%s))*)\\s*\\)\\s*$",
		config.AnnotationKeyword, _valueKeywords, _valueKeywords))

// parseAnnotation parses a nullability annotation from a single comment group. The second return
// is false if the group carries no annotation. When a group carries several annotation lines,
// the first one wins; the original declaration is authoritative and repeating it is a user
// mistake we tolerate silently.
func parseAnnotation(doc *ast.CommentGroup) ([]nullability.Value, bool) {
	if doc == nil {
		return nil, false
	}

	for _, lineComment := range doc.List {
		matching := _annotationRE.FindStringSubmatch(lineComment.Text)
		if matching == nil {
			continue
		}
		// matching[1] is the captured comma-separated list of value keywords.
		return parseListOfValues(matching[1]), true
	}
	return nil, false
}

// parseListOfValues splits a string of comma separated value keywords and returns a slice of
// nullability values.
func parseListOfValues(wholeStr string) []nullability.Value {
	keywords := strings.Split(wholeStr, _sep)
	vals := make([]nullability.Value, len(keywords))
	for i, k := range keywords {
		// The regexp only admits recognized keywords, so the parse cannot fail here.
		v, _ := nullability.ParseValue(strings.TrimSpace(k))
		vals[i] = v
	}
	return vals
}
