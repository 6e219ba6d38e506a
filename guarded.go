// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
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

package guarded

// Option configures a Guarded value at construction time.
type Option[T any] func(*Guarded[T])

// OnQueue binds the value to q instead of a private Queue. Sharing one Queue
// across several Guarded values makes their operations mutually atomic, at
// the price of contention between them and of the reentrancy obligation
// documented on [Queue]: a unit of work running on q must never perform a
// blocking operation against any value bound to q.
func OnQueue[T any](q *Queue) Option[T] {
	return func(g *Guarded[T]) {
		g.queue = q
	}
}

// Guarded holds a single value of type T and arbitrates every access to it
// through an exclusive serialization [Queue], so concurrent goroutines never
// race on it. Both the payload and the Queue are bound at construction and
// the bindings never change; only the payload's contents do, under exclusion.
//
// The zero value is not usable; construct with [New].
type Guarded[T any] struct {
	queue *Queue
	value T
}

// New returns a Guarded value holding initial. Without options the value is
// bound to a private Queue of its own, so independent Guarded values never
// contend with each other.
func New[T any](initial T, opts ...Option[T]) *Guarded[T] {
	g := &Guarded[T]{value: initial}
	for _, opt := range opts {
		opt(g)
	}
	if g.queue == nil {
		g.queue = NewQueue()
	}
	return g
}

// Get returns a snapshot of the payload, taken as one unit of work. The
// caller blocks until the snapshot has been taken.
func (g *Guarded[T]) Get() T {
	var v T
	g.queue.Submit(func() {
		v = g.value
	})
	return v
}

// Set replaces the payload with v as one unit of work. The caller blocks
// until the replacement has happened.
func (g *Guarded[T]) Set(v T) {
	g.queue.Submit(func() {
		g.value = v
	})
}

// Update runs mutate with exclusive mutable access to the payload, all as one
// unit of work. It is the compound-operation entry point: Get followed by Set
// is two units of work and another writer may run between them, so any
// multi-step read-modify-write must go through Update to be atomic. The
// pointer passed to mutate is valid only for the duration of the call.
//
// If mutate panics, the panic propagates to the caller and the payload keeps
// whatever partial mutation mutate performed before panicking. The Guarded
// value stays usable.
func (g *Guarded[T]) Update(mutate func(*T)) {
	g.queue.Submit(func() {
		mutate(&g.value)
	})
}

// Swap replaces the payload with v and returns the previous payload, as one
// unit of work.
func (g *Guarded[T]) Swap(v T) T {
	var old T
	g.queue.Submit(func() {
		old = g.value
		g.value = v
	})
	return old
}

// Queue returns the serialization context the value is bound to. Callers
// that need atomicity across several Guarded values can construct them all
// on one Queue; see [OnQueue] for the obligations that come with sharing.
func (g *Guarded[T]) Queue() *Queue {
	return g.queue
}
