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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("Default_Private_Queue", func(t *testing.T) {
		t.Parallel()

		a := New(1)
		b := New(2)

		require.NotNil(t, a.Queue())
		require.NotNil(t, b.Queue())
		assert.NotEqual(t, a.Queue().ID(), b.Queue().ID(),
			"each value should get its own queue by default")
		assert.Equal(t, 1, a.Get())
		assert.Equal(t, 2, b.Get())
	})

	t.Run("Supplied_Queue", func(t *testing.T) {
		t.Parallel()

		q := NewQueue()
		a := New("a", OnQueue[string](q))
		b := New("b", OnQueue[string](q))

		assert.Same(t, q, a.Queue())
		assert.Same(t, q, b.Queue())
	})
}

func TestGuarded_SetThenGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value int
	}{
		{name: "Zero", value: 0},
		{name: "Positive", value: 42},
		{name: "Negative", value: -7},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := New(-1)
			g.Set(tt.value)
			assert.Equal(t, tt.value, g.Get())
		})
	}

	t.Run("Struct_Payload", func(t *testing.T) {
		t.Parallel()

		type endpoint struct {
			Host string
			Port int
		}

		g := New(endpoint{Host: "localhost", Port: 80})
		g.Set(endpoint{Host: "example.com", Port: 443})
		assert.Equal(t, endpoint{Host: "example.com", Port: 443}, g.Get())
	})
}

func TestGuarded_Swap(t *testing.T) {
	t.Parallel()

	g := New("old")

	assert.Equal(t, "old", g.Swap("new"))
	assert.Equal(t, "new", g.Get())
}

func TestGuarded_Update_ReadModifyWrite(t *testing.T) {
	t.Parallel()

	g := New([]int{1, 2})
	g.Update(func(s *[]int) {
		*s = append(*s, 3)
	})
	assert.Equal(t, []int{1, 2, 3}, g.Get())
}

// One hundred concurrent compound increments must leave the counter at
// exactly one hundred: no update may be lost to interleaving.
func TestGuarded_ConcurrentUpdates_NoLostIncrements(t *testing.T) {
	t.Parallel()

	const callers = 100

	g := New(0)

	var group errgroup.Group
	for i := 0; i < callers; i++ {
		group.Go(func() error {
			g.Update(func(n *int) { *n++ })
			return nil
		})
	}
	require.NoError(t, group.Wait())

	assert.Equal(t, callers, g.Get())
}

func TestGuarded_ConcurrentUpdates_ManyPerWorker(t *testing.T) {
	t.Parallel()

	const (
		workers    = 8
		increments = 2000
	)

	g := New(0)

	var group errgroup.Group
	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for i := 0; i < increments; i++ {
				g.Update(func(n *int) { *n++ })
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())

	assert.Equal(t, workers*increments, g.Get())
}

// Racing Set calls must never produce a torn value: every Get must observe
// one of the values some writer actually wrote, whole.
func TestGuarded_ConcurrentSets_NoTornValue(t *testing.T) {
	t.Parallel()

	type pair struct {
		First  int
		Second int
	}

	const (
		writers = 4
		readers = 4
		writes  = 1000
	)

	g := New(pair{})

	var torn atomic.Int32
	var group errgroup.Group
	for w := 0; w < writers; w++ {
		group.Go(func() error {
			for i := 1; i <= writes; i++ {
				g.Set(pair{First: i, Second: i})
			}
			return nil
		})
	}
	for r := 0; r < readers; r++ {
		group.Go(func() error {
			for i := 0; i < writes; i++ {
				if p := g.Get(); p.First != p.Second {
					torn.Add(1)
				}
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())

	assert.Zero(t, torn.Load(), "observed torn values")

	final := g.Get()
	assert.Equal(t, final.First, final.Second)
	assert.Equal(t, writes, final.First, "final value should be some writer's last write")
}

// A long-running unit of work on one value must not delay operations on an
// independent value with its own queue.
func TestGuarded_IndependentInstances_DoNotBlock(t *testing.T) {
	t.Parallel()

	a := New(0)
	b := New(0)

	entered := make(chan struct{})
	release := make(chan struct{})
	aDone := make(chan struct{})
	go func() {
		a.Update(func(*int) {
			close(entered)
			<-release
		})
		close(aDone)
	}()
	<-entered

	bDone := make(chan int, 1)
	go func() {
		b.Set(7)
		bDone <- b.Get()
	}()

	select {
	case v := <-bDone:
		assert.Equal(t, 7, v)
	case <-time.After(5 * time.Second):
		t.Fatal("independent instance blocked behind another instance's unit of work")
	}

	close(release)
	<-aDone
	assert.Equal(t, 0, a.Get())
}

// A panicking mutator propagates to the caller, the payload keeps the
// partial mutation, and the value remains usable afterwards.
func TestGuarded_Update_PanicPropagates(t *testing.T) {
	t.Parallel()

	type state struct {
		Applied   bool
		Committed bool
	}

	g := New(state{})

	require.PanicsWithValue(t, "mutator failure", func() {
		g.Update(func(s *state) {
			s.Applied = true
			panic("mutator failure")
		})
	})

	got := g.Get()
	assert.True(t, got.Applied, "partial mutation should be retained")
	assert.False(t, got.Committed)

	g.Set(state{Committed: true})
	assert.True(t, g.Get().Committed, "value should remain usable after a panic")
}
