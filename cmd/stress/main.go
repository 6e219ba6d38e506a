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

// Command stress hammers a single guarded counter from many goroutines and
// verifies that no increment is lost. It doubles as a usage example and as a
// quick way to exercise the library under the race detector or with
// -tags=deadlock.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	guarded "github.com/ZaparooProject/go-guarded"
	"golang.org/x/sync/errgroup"
)

type config struct {
	workers    int
	increments int
	useRW      bool
}

// Package-level flag variables
var (
	flagWorkers    int
	flagIncrements int
	flagUseRW      bool
)

func init() {
	flag.IntVar(&flagWorkers, "workers", 8, "Number of concurrent workers")
	flag.IntVar(&flagIncrements, "increments", 100000, "Increments per worker")
	flag.BoolVar(&flagUseRW, "rw", false, "Use the read-parallel RWGuarded variant")
}

func parseConfig() (*config, error) {
	cfg := &config{
		workers:    flagWorkers,
		increments: flagIncrements,
		useRW:      flagUseRW,
	}
	if cfg.workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.workers)
	}
	if cfg.increments < 1 {
		return nil, fmt.Errorf("increments must be at least 1, got %d", cfg.increments)
	}
	return cfg, nil
}

// counter is the operation surface shared by Guarded and RWGuarded.
type counter interface {
	Get() int
	Update(func(*int))
}

func newCounter(cfg *config) counter {
	if cfg.useRW {
		return guarded.NewRW(0)
	}
	return guarded.New(0)
}

func run(ctx context.Context, cfg *config) error {
	c := newCounter(cfg)

	fmt.Printf("Running %d workers x %d increments...\n", cfg.workers, cfg.increments)
	start := time.Now()

	group, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.workers; w++ {
		group.Go(func() error {
			for i := 0; i < cfg.increments; i++ {
				if i%1024 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				c.Update(func(n *int) { *n++ })
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	want := cfg.workers * cfg.increments
	got := c.Get()
	fmt.Printf("Final count: %d (%.0f ops/s)\n", got, float64(want)/elapsed.Seconds())

	if got != want {
		return fmt.Errorf("lost updates: final count %d, want %d", got, want)
	}
	return nil
}

func main() {
	flag.Parse()
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	cfg, err := parseConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		_, _ = fmt.Print("\nShutting down...\n")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
