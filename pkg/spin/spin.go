// Package spin provides blocking adapters over the non-blocking ring
// operations.
//
// The ring itself never blocks; a caller that wants to wait for space or
// data supplies its own retry loop. This package is that caller-side loop,
// built on cenkalti/backoff with context cancellation. Progress depends
// entirely on the opposite endpoint making progress; no fairness or
// bounded-wait guarantee is added. Latency-critical consumers pinned to a
// core are better served by a bare busy-wait around Pop.
package spin

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/fastipc/shmring/api"
)

var errAgain = errors.New("spin: not ready")

// newBackOff yields quickly at first, then backs off to at most 1ms
// between attempts, forever (until the context ends).
func newBackOff(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Microsecond
	bo.MaxInterval = time.Millisecond
	bo.MaxElapsedTime = 0
	return backoff.WithContext(bo, ctx)
}

// PushWait retries Push until it succeeds or ctx is done.
func PushWait[T any](ctx context.Context, p api.Producer[T], v T) error {
	return backoff.Retry(func() error {
		if p.Push(v) {
			return nil
		}
		return errAgain
	}, newBackOff(ctx))
}

// WriteWait retries Write until the whole of src is accepted or ctx is
// done.
func WriteWait[T any](ctx context.Context, p api.Producer[T], src []T) error {
	return backoff.Retry(func() error {
		if p.Write(src) {
			return nil
		}
		return errAgain
	}, newBackOff(ctx))
}

// PopWait retries Pop until an element arrives or ctx is done.
func PopWait[T any](ctx context.Context, c api.Consumer[T]) (T, error) {
	var v T
	err := backoff.Retry(func() error {
		var ok bool
		if v, ok = c.Pop(); ok {
			return nil
		}
		return errAgain
	}, newBackOff(ctx))
	return v, err
}

// ReadWait retries Read until dst is filled or ctx is done.
func ReadWait[T any](ctx context.Context, c api.Consumer[T], dst []T) error {
	return backoff.Retry(func() error {
		if c.Read(dst) {
			return nil
		}
		return errAgain
	}, newBackOff(ctx))
}
