// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ordmap implements an ordered map that retains the order of items
added to a slice, while also providing fast key-based map lookup of items,
using the Go generics system.

The slice structure holds the Key and Value for items as they are added,
enabling direct updating of the corresponding map, which holds the
index into the slice. Adding and access are fast, while deleting
is relatively slow, requiring updating of the index map.
*/
package ordmap

import (
	"fmt"
	"iter"
	"slices"
)

// KeyValue represents a key-value pair.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a generic ordered map that combines the order of a slice
// and the fast key lookup of a map. A map stores an index
// into a slice that has the value and key associated with the value.
type Map[K comparable, V any] struct {

	// Order is an ordered list of values and associated keys, in the order added.
	Order []KeyValue[K, V]

	// Map is the key to index mapping.
	Map map[K]int
}

// New returns a new ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		Map: make(map[K]int),
	}
}

// Init initializes the map if it isn't already.
func (om *Map[K, V]) Init() {
	if om.Map == nil {
		om.Map = make(map[K]int)
	}
}

// Reset resets the map, removing any existing elements.
func (om *Map[K, V]) Reset() {
	om.Map = nil
	om.Order = nil
}

// Add adds a new value for given key.
// If key already exists in map, it replaces the item at that existing index,
// otherwise it is added to the end.
func (om *Map[K, V]) Add(key K, val V) {
	om.Init()
	if idx, has := om.Map[key]; has {
		om.Order[idx] = KeyValue[K, V]{Key: key, Value: val}
	} else {
		om.Map[key] = len(om.Order)
		om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
	}
}

// ValueByKey returns the value corresponding to the given key,
// with a zero value returned for a missing key. See [Map.ValueByKeyTry]
// for one that returns a bool for missing keys.
func (om *Map[K, V]) ValueByKey(key K) V {
	v, _ := om.ValueByKeyTry(key)
	return v
}

// ValueByKeyTry returns the value corresponding to the given key,
// with false returned for a missing key.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	idx, ok := om.Map[key]
	if ok {
		return om.Order[idx].Value, ok
	}
	var zv V
	return zv, false
}

// IndexByKey returns the index of the given key, with a -1 for missing key.
func (om *Map[K, V]) IndexByKey(key K) int {
	idx, ok := om.Map[key]
	if !ok {
		return -1
	}
	return idx
}

// ValueByIndex returns the value at the given index in the ordered slice.
func (om *Map[K, V]) ValueByIndex(idx int) V {
	return om.Order[idx].Value
}

// KeyByIndex returns the key for the given index in the ordered slice.
func (om *Map[K, V]) KeyByIndex(idx int) K {
	return om.Order[idx].Key
}

// Len returns the number of items in the map.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// DeleteKey deletes the item with the given key, returning false if it does not find it.
// This is relatively slow because it needs to renumber the
// index map above the deleted item.
func (om *Map[K, V]) DeleteKey(key K) bool {
	idx, ok := om.Map[key]
	if !ok {
		return false
	}
	for o := idx + 1; o < len(om.Order); o++ {
		om.Map[om.Order[o].Key] = o - 1
	}
	delete(om.Map, key)
	om.Order = slices.Delete(om.Order, idx, idx+1)
	return true
}

// Keys returns a slice of the keys in order.
func (om *Map[K, V]) Keys() []K {
	kl := make([]K, om.Len())
	for i, kv := range om.Order {
		kl[i] = kv.Key
	}
	return kl
}

// All returns an iterator over the key-value pairs in order.
func (om *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if om == nil {
			return
		}
		for _, kv := range om.Order {
			if !yield(kv.Key, kv.Value) {
				return
			}
		}
	}
}

// String returns a string representation of the map.
func (om *Map[K, V]) String() string {
	return fmt.Sprintf("%v", om.Order)
}
