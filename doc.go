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

// Package guarded provides a generic guarded-value container: a single value
// whose reads and writes are all arbitrated by an exclusive serialization
// queue, so concurrent goroutines can share it without racing and without the
// caller managing a lock of their own.
//
// The core type is [Guarded]. Every operation on it runs as one unit of work
// on its [Queue], and a Queue executes units of work strictly one at a time:
//
//	counter := guarded.New(0)
//	counter.Set(10)
//	n := counter.Get()
//
// Get followed by Set is two separate units of work, so another writer may
// run between them. Multi-step read-modify-write must instead be expressed as
// a single unit of work through [Guarded.Update]:
//
//	counter.Update(func(n *int) { *n++ })
//
// By default each Guarded value owns a private Queue, so independent values
// never contend. A caller that needs atomicity across several values can
// construct them on one shared Queue via [OnQueue]; with sharing comes one
// obligation: a unit of work must never perform a blocking operation against
// the Queue it is already running on, or the goroutine deadlocks waiting on
// itself. The library does not detect this at runtime in the default build;
// build with -tags=deadlock to have such violations reported.
//
// [RWGuarded] is a read-parallel variant for payloads that are read far more
// often than written.
//
// All operations are synchronous: the caller blocks until its unit of work
// has executed. None of them can fail, time out, or be cancelled.
package guarded
