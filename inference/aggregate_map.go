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

package inference

import (
	"bytes"
	"encoding/gob"
	"errors"

	"github.com/klauspost/compress/s2"
	"github.com/nullmark/nullmark/annotation"
	"github.com/nullmark/nullmark/nullability"
	"github.com/nullmark/nullmark/util/orderedmap"
	"golang.org/x/tools/go/analysis"
)

// An AggregateMap records the per-result aggregates inferred for the canonical declarations of
// a package. It is exported as a package fact so that downstream packages can classify calls
// into this package using inferred information when no explicit annotation exists. Insertion
// order is preserved so that the encoding - and therefore the build output - is deterministic.
type AggregateMap struct {
	mapping *orderedmap.OrderedMap[annotation.Key, []nullability.Result]
}

// NewAggregateMap returns a new, empty AggregateMap.
func NewAggregateMap() *AggregateMap {
	return &AggregateMap{mapping: orderedmap.New[annotation.Key, []nullability.Result]()}
}

// AFact allows AggregateMaps to be imported and exported via the Facts mechanism.
func (*AggregateMap) AFact() {}

// Load returns the aggregated results stored for a canonical declaration key.
func (m *AggregateMap) Load(key annotation.Key) ([]nullability.Result, bool) {
	return m.mapping.Load(key)
}

// Store records the aggregated results for a canonical declaration key.
func (m *AggregateMap) Store(key annotation.Key, results []nullability.Result) {
	m.mapping.Store(key, results)
}

// Len returns the number of canonical declarations recorded.
func (m *AggregateMap) Len() int {
	return m.mapping.Len()
}

// OrderedRange calls f for each key and aggregate in insertion order, stopping if f returns
// false.
func (m *AggregateMap) OrderedRange(f func(annotation.Key, []nullability.Result) bool) {
	m.mapping.OrderedRange(f)
}

// Export encodes the aggregates of exported declarations as a package fact. Unexported
// declarations cannot be called from downstream packages, so exporting them would only inflate
// build outputs.
func (m *AggregateMap) Export(pass *analysis.Pass) {
	exported := NewAggregateMap()
	m.mapping.OrderedRange(func(key annotation.Key, results []nullability.Result) bool {
		if key.Exported {
			exported.Store(key, results)
		}
		return true
	})

	if exported.Len() > 0 {
		pass.ExportPackageFact(exported)
	}
}

// GobEncode encodes the aggregate map with s2 compression; fact payloads are written once per
// package but read by every downstream package, so keeping them small matters.
func (m *AggregateMap) GobEncode() (b []byte, err error) {
	var buf bytes.Buffer
	writer := s2.NewWriter(&buf)
	defer func() {
		if cerr := writer.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if err := gob.NewEncoder(writer).Encode(m.mapping); err != nil {
		return nil, err
	}

	// Close the s2 writer before getting the bytes such that we have complete information.
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode decodes the AggregateMap from buffer.
func (m *AggregateMap) GobDecode(input []byte) error {
	m.mapping = orderedmap.New[annotation.Key, []nullability.Result]()

	buf := bytes.NewBuffer(input)
	return gob.NewDecoder(s2.NewReader(buf)).Decode(&m.mapping)
}
