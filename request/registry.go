// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "sync"

// A Registry is an associative container keyed by Descriptor. Keys are
// bucketed by Descriptor.Hash and matched within a bucket using
// Descriptor.Equal, so a descriptor built separately but Equal to a
// stored key finds that key's value.
//
// The zero value is an empty Registry ready to use. A Registry is safe
// for concurrent use by multiple goroutines.
type Registry[V any] struct {
	lock    sync.Mutex
	buckets map[uint64][]entry[V]
	n       int
}

type entry[V any] struct {
	key   *Descriptor
	value V
}

// Put stores value under key, replacing any value stored under a key
// Equal to key. It reports whether a value was replaced.
func (r *Registry[V]) Put(key *Descriptor, value V) bool {
	h := key.Hash()
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.buckets == nil {
		r.buckets = make(map[uint64][]entry[V])
	}
	b := r.buckets[h]
	for i := range b {
		if b[i].key.Equal(key) {
			b[i].value = value
			return true
		}
	}
	r.buckets[h] = append(b, entry[V]{key: key, value: value})
	r.n++
	return false
}

// Get returns the value stored under a key Equal to key.
func (r *Registry[V]) Get(key *Descriptor) (V, bool) {
	h := key.Hash()
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, e := range r.buckets[h] {
		if e.key.Equal(key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Update atomically replaces the value stored under key with the
// result of f. The argument to f is the current value, or the zero
// value if there is none; ok reports which. If f returns keep false,
// the key is removed.
func (r *Registry[V]) Update(key *Descriptor, f func(current V, ok bool) (next V, keep bool)) {
	h := key.Hash()
	r.lock.Lock()
	defer r.lock.Unlock()
	b := r.buckets[h]
	for i := range b {
		if b[i].key.Equal(key) {
			next, keep := f(b[i].value, true)
			if keep {
				b[i].value = next
			} else {
				r.remove(h, i)
			}
			return
		}
	}
	var zero V
	next, keep := f(zero, false)
	if !keep {
		return
	}
	if r.buckets == nil {
		r.buckets = make(map[uint64][]entry[V])
	}
	r.buckets[h] = append(b, entry[V]{key: key, value: next})
	r.n++
}

// Delete removes the key Equal to key. It reports whether there was
// one.
func (r *Registry[V]) Delete(key *Descriptor) bool {
	h := key.Hash()
	r.lock.Lock()
	defer r.lock.Unlock()
	for i, e := range r.buckets[h] {
		if e.key.Equal(key) {
			r.remove(h, i)
			return true
		}
	}
	return false
}

// Len returns the number of keys in the Registry.
func (r *Registry[V]) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.n
}

// Range calls f for each key and value in the Registry, in no
// particular order, until f returns false. The Registry is locked while
// Range runs, so f must not call other methods on it.
func (r *Registry[V]) Range(f func(key *Descriptor, value V) bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, b := range r.buckets {
		for _, e := range b {
			if !f(e.key, e.value) {
				return
			}
		}
	}
}

func (r *Registry[V]) remove(h uint64, i int) {
	b := r.buckets[h]
	last := len(b) - 1
	b[i] = b[last]
	b[last] = entry[V]{}
	if last == 0 {
		delete(r.buckets, h)
	} else {
		r.buckets[h] = b[:last]
	}
	r.n--
}
