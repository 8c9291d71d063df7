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

// Package orderedmap implements an insertion-ordered map with deterministic iteration and gob
// encoding. Determinism matters wherever map contents end up in facts or diagnostics: Go's
// builtin map iteration order would otherwise leak into build outputs.
package orderedmap

import (
	"bytes"
	"encoding/gob"
	"io"
)

// Pair is a single key-value entry of the map, exposed for direct ordered iteration.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// OrderedMap is a map that remembers insertion order. The zero value is not usable; call New.
type OrderedMap[K comparable, V any] struct {
	// Pairs holds the entries in insertion order; callers may range over it directly but must
	// not mutate it.
	Pairs []*Pair[K, V]
	inner map[K]*Pair[K, V]
}

// New returns a new, empty OrderedMap.
func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{inner: make(map[K]*Pair[K, V])}
}

// Load returns the value stored for key, with ok reporting whether the key was present.
func (m *OrderedMap[K, V]) Load(key K) (value V, ok bool) {
	p, ok := m.inner[key]
	if !ok {
		var zero V
		return zero, false
	}
	return p.Value, true
}

// Value returns the value stored for key, or the zero value if the key is absent.
func (m *OrderedMap[K, V]) Value(key K) V {
	v, _ := m.Load(key)
	return v
}

// Store sets the value for key, appending a new entry if the key was not present before.
func (m *OrderedMap[K, V]) Store(key K, value V) {
	if p, ok := m.inner[key]; ok {
		p.Value = value
		return
	}
	p := &Pair[K, V]{Key: key, Value: value}
	m.inner[key] = p
	m.Pairs = append(m.Pairs, p)
}

// Len returns the number of entries in the map.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.Pairs)
}

// OrderedRange calls f sequentially for each key and value in insertion order. If f returns
// false, the iteration stops.
func (m *OrderedMap[K, V]) OrderedRange(f func(key K, value V) bool) {
	for _, p := range m.Pairs {
		if !f(p.Key, p.Value) {
			return
		}
	}
}

// GobEncode encodes the entries in insertion order, making the encoding deterministic for
// identical maps. An empty map encodes to nil.
func (m *OrderedMap[K, V]) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	for _, p := range m.Pairs {
		if err := enc.Encode(&p.Key); err != nil {
			return nil, err
		}
		if err := enc.Encode(&p.Value); err != nil {
			return nil, err
		}
	}

	if buf.Len() == 0 {
		return nil, nil
	}
	return buf.Bytes(), nil
}

// GobDecode decodes entries encoded by GobEncode, preserving their order.
func (m *OrderedMap[K, V]) GobDecode(b []byte) error {
	if m.inner == nil {
		m.inner = make(map[K]*Pair[K, V])
	}
	dec := gob.NewDecoder(bytes.NewBuffer(b))
	for {
		var k K
		if err := dec.Decode(&k); err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return err
		}
		m.Store(k, v)
	}

	return nil
}
