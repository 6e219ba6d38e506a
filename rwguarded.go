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

import "github.com/ZaparooProject/go-guarded/internal/syncutil"

// RWGuarded is a read-parallel variant of [Guarded] for payloads that are
// read far more often than written. Get takes a shared read lock, so any
// number of Gets may run concurrently; Set, Update and Swap take the
// exclusive write lock. At any instant either one writing unit of work runs,
// or any number of reading ones, never both.
//
// RWGuarded has no [Queue] and cannot share a serialization context with
// other values. The zero value holds the zero value of T and is ready to use.
type RWGuarded[T any] struct {
	mu    syncutil.RWMutex
	value T
}

// NewRW returns an RWGuarded value holding initial.
func NewRW[T any](initial T) *RWGuarded[T] {
	return &RWGuarded[T]{value: initial}
}

// Get returns a snapshot of the payload. Concurrent Gets do not block each
// other; a Get blocks only while a writer holds the value.
func (g *RWGuarded[T]) Get() T {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.value
}

// Set replaces the payload with v, excluding all readers and writers for the
// duration of the replacement.
func (g *RWGuarded[T]) Set(v T) {
	g.mu.Lock()
	g.value = v
	g.mu.Unlock()
}

// Update runs mutate with exclusive mutable access to the payload, excluding
// all readers and writers for the duration of the call. The same panic policy
// as [Guarded.Update] applies: a panic propagates, the payload keeps the
// partial mutation, and the value stays usable.
func (g *RWGuarded[T]) Update(mutate func(*T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	mutate(&g.value)
}

// Swap replaces the payload with v and returns the previous payload as one
// exclusive unit of work.
func (g *RWGuarded[T]) Swap(v T) T {
	g.mu.Lock()
	defer g.mu.Unlock()
	old := g.value
	g.value = v
	return old
}
