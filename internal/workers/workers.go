// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrPoolClosed is returned by Do after Close has been called.
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool is a [Runner] backed by a weighted semaphore.
type Pool struct {
	sem    *semaphore.Weighted
	size   int64
	closed atomic.Bool
}

// NewPool returns a Pool running at most size tasks at once. A size below one
// is raised to one.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}

	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: int64(size),
	}
}

// Size reports the configured concurrency.
func (p *Pool) Size() int {
	return int(p.size)
}

// Do implements [Runner].
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer p.sem.Release(1)
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close rejects new tasks and waits for running ones to finish or for ctx to
// expire.
func (p *Pool) Close(ctx context.Context) error {
	p.closed.Store(true)

	if err := p.sem.Acquire(ctx, p.size); err != nil {
		return err
	}
	p.sem.Release(p.size)

	return nil
}
