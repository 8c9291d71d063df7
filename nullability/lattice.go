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

// Package nullability defines the three-valued nullability domain shared by the classifier and
// the inference engine, along with its ordering and reduction operations. The domain forms a
// total order Unspecified < Nullable < NonNull, where "weaker" means less certainty about
// non-nilness. Combining observations always keeps the weakest one, since a single return site
// that may produce nil makes the whole declaration nullable.
package nullability

import "fmt"

// Value is one element of the nullability domain. The zero value is Unspecified so that missing
// information never accidentally reads as a determination.
type Value uint8

const (
	// Unspecified means the site was classified but carried no usable information. It is
	// deliberately distinct from Nullable: "no data" is not "definitely may be nil".
	Unspecified Value = iota
	// Nullable means the site may produce a nil value.
	Nullable
	// NonNull means the site always produces a non-nil value.
	NonNull
)

// Keywords accepted in annotation comments and produced by Value.String.
const (
	UnspecifiedKeyword = "unspecified"
	NullableKeyword    = "nullable"
	NonNullKeyword     = "nonnull"
)

func (v Value) String() string {
	switch v {
	case Unspecified:
		return UnspecifiedKeyword
	case Nullable:
		return NullableKeyword
	case NonNull:
		return NonNullKeyword
	default:
		panic(fmt.Sprintf("unrecognized nullability value %d", uint8(v)))
	}
}

// ParseValue converts an annotation keyword to its Value. The ok result reports whether the
// keyword is recognized.
func ParseValue(s string) (Value, bool) {
	switch s {
	case UnspecifiedKeyword:
		return Unspecified, true
	case NullableKeyword:
		return Nullable, true
	case NonNullKeyword:
		return NonNull, true
	default:
		return Unspecified, false
	}
}

// Weaker reports whether a denotes strictly less certainty about non-nilness than b. Since the
// constants above are declared in weakness order, this is a plain comparison, but callers should
// treat the ordering as the semantic contract rather than relying on the numeric encoding.
func Weaker(a, b Value) bool {
	return a < b
}

// Meet reduces a non-empty sequence of values to the single weakest one. The accumulator starts
// at NonNull, the unit of the reduction, and is replaced by any strictly weaker input. Meet is
// commutative and associative, so classification order never affects the result.
//
// Meet of zero values is undefined; callers must guard the empty case with Result's absent state
// instead (see Aggregate in the inference engine).
func Meet(vs ...Value) Value {
	acc := NonNull
	for _, v := range vs {
		if Weaker(v, acc) {
			acc = v
		}
	}
	return acc
}

// Result is the outcome of aggregating one declaration family: either absent, meaning no return
// sites were found at all, or one concrete lattice value. Absent must never be collapsed into
// Unspecified -- the two are observably different (absent suppresses classification entirely,
// Unspecified is a classification that found nothing).
type Result struct {
	// Value is the combined lattice value. Only meaningful when Present is true.
	Value Value
	// Present is false when the family had no return sites to classify.
	Present bool
}

// AbsentResult is the marker for "nothing to classify".
var AbsentResult = Result{}

// SomeResult wraps a concrete lattice value.
func SomeResult(v Value) Result {
	return Result{Value: v, Present: true}
}

func (r Result) String() string {
	if !r.Present {
		return "<absent>"
	}
	return r.Value.String()
}
