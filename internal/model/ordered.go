// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines OrderedMap, the insertion-ordered map used by the model
// wherever iteration order reaches the generated script.
package model

import (
	"iter"
	"strings"
)

// OrderedMap is a string-keyed map that remembers insertion order. The zero
// value is not usable; create one with NewOrderedMap.
type OrderedMap[V any] struct {
	keys  []string
	items map[string]V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{items: make(map[string]V)}
}

// Set stores value under key. A new key is appended to the iteration order;
// an existing key keeps its position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if _, exists := m.items[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.items[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.items[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// LookupFold finds a key case-insensitively and returns the stored key along
// with its value.
func (m *OrderedMap[V]) LookupFold(key string) (string, V, bool) {
	if m != nil {
		for _, k := range m.keys {
			if strings.EqualFold(k, key) {
				return k, m.items[k], true
			}
		}
	}
	var zero V
	return "", zero, false
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Values returns the values in insertion order.
func (m *OrderedMap[V]) Values() []V {
	if m == nil {
		return nil
	}
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.items[k])
	}
	return out
}

// All iterates over the entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.items[k]) {
				return
			}
		}
	}
}

// Style is an ordered set of CSS attribute -> value pairs.
type Style = OrderedMap[string]

// NewStyle returns an empty Style.
func NewStyle() *Style {
	return NewOrderedMap[string]()
}
