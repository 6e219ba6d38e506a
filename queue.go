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

import (
	"sync/atomic"

	"github.com/ZaparooProject/go-guarded/internal/syncutil"
)

// lastQueueID is the source of Queue identities. IDs start at 1 so that 0
// never names a live Queue.
var lastQueueID atomic.Uint64

// Queue is an exclusive serialization context: units of work submitted to it
// execute strictly one at a time, never overlapping. Each [Guarded] value is
// bound to one Queue for its whole lifetime; by default the binding is a
// private Queue from [NewQueue], but a caller may construct several values on
// one shared Queue to make their operations atomic with respect to each other.
//
// A unit of work runs on the goroutine that submitted it while the Queue
// excludes all other submitters. Blocked submitters are admitted one at a
// time in the order the Queue's lock grants them; Go's mutex starvation mode
// bounds how far that order can drift from arrival order.
//
// Reentrancy: code already executing as a unit of work on a Queue must not
// submit another unit of work to the same Queue, directly or through any
// Guarded value bound to it. The submitting goroutine would wait forever for
// an exclusion slot it itself occupies. This is a caller obligation, not a
// condition the Queue detects; build with -tags=deadlock to have the
// violation reported instead of silently blocking.
type Queue struct {
	mu syncutil.Mutex
	id uint64
}

// NewQueue returns a fresh Queue whose identity is distinct from every other
// Queue created by this process. It never fails.
func NewQueue() *Queue {
	return &Queue{id: lastQueueID.Add(1)}
}

// ID returns the Queue's unique identity. IDs are assigned in creation order
// and never reused.
func (q *Queue) ID() uint64 {
	return q.id
}

// Submit runs fn as a single unit of work on the Queue, blocking the caller
// until fn has returned. While fn runs, no other unit of work on this Queue
// does.
//
// If fn panics, the panic propagates to the caller and the Queue remains
// usable for subsequent submissions.
func (q *Queue) Submit(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	fn()
}
