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

package nullability

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWeaker(t *testing.T) {
	t.Parallel()

	// Unspecified < Nullable < NonNull, strict.
	require.True(t, Weaker(Unspecified, Nullable))
	require.True(t, Weaker(Unspecified, NonNull))
	require.True(t, Weaker(Nullable, NonNull))

	require.False(t, Weaker(Nullable, Unspecified))
	require.False(t, Weaker(NonNull, Unspecified))
	require.False(t, Weaker(NonNull, Nullable))

	for _, v := range []Value{Unspecified, Nullable, NonNull} {
		require.False(t, Weaker(v, v), "Weaker must be strict for %s", v)
	}
}

func TestMeet(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name string
		vs   []Value
		want Value
	}{
		{name: "Singleton", vs: []Value{NonNull}, want: NonNull},
		{name: "AllNonNull", vs: []Value{NonNull, NonNull, NonNull}, want: NonNull},
		{name: "NullableWins", vs: []Value{NonNull, Nullable}, want: Nullable},
		{name: "UnspecifiedWins", vs: []Value{NonNull, Nullable, Unspecified}, want: Unspecified},
		{name: "UnspecifiedAlone", vs: []Value{Unspecified}, want: Unspecified},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Meet(tc.vs...))
		})
	}
}

// TestMeetOrderIndependence checks that every permutation of a sequence meets to the same value,
// i.e., that Meet is commutative and associative in the way aggregation relies on.
func TestMeetOrderIndependence(t *testing.T) {
	t.Parallel()

	vs := []Value{NonNull, Nullable, Unspecified, NonNull}
	want := Meet(vs...)

	var permute func(vs []Value, k int)
	permute = func(vs []Value, k int) {
		if k == len(vs) {
			require.Equal(t, want, Meet(vs...), "permutation %v", vs)
			return
		}
		for i := k; i < len(vs); i++ {
			vs[k], vs[i] = vs[i], vs[k]
			permute(vs, k+1)
			vs[k], vs[i] = vs[i], vs[k]
		}
	}
	permute(vs, 0)
}

// TestMeetEqualsWeakestElement checks the defining property of the reduction: the result is
// always the single weakest element of the input under the fixed order.
func TestMeetEqualsWeakestElement(t *testing.T) {
	t.Parallel()

	all := []Value{Unspecified, Nullable, NonNull}
	for _, a := range all {
		for _, b := range all {
			for _, c := range all {
				vs := []Value{a, b, c}
				weakest := vs[0]
				for _, v := range vs[1:] {
					if Weaker(v, weakest) {
						weakest = v
					}
				}
				require.Equal(t, weakest, Meet(vs...), "input %v", vs)
			}
		}
	}
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	for _, v := range []Value{Unspecified, Nullable, NonNull} {
		parsed, ok := ParseValue(v.String())
		require.True(t, ok)
		require.Equal(t, v, parsed)
	}

	_, ok := ParseValue("sometimes")
	require.False(t, ok)
}

func TestResult(t *testing.T) {
	t.Parallel()

	require.False(t, AbsentResult.Present)
	require.Equal(t, "<absent>", AbsentResult.String())

	r := SomeResult(Nullable)
	require.True(t, r.Present)
	require.Equal(t, Nullable, r.Value)
	require.Equal(t, "nullable", r.String())

	// The absent marker must stay distinguishable from a present Unspecified.
	require.NotEqual(t, AbsentResult, SomeResult(Unspecified))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
