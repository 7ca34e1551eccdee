package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"github.com/fastipc/shmring/api"
)

// Instrumented wraps both endpoints of a ring with OTel counters for
// successful and failed operations. Each counted element costs one
// counter update, so wrap only where that overhead is acceptable.
type Instrumented[T any] struct {
	api.Ring[T]

	ctx       context.Context
	pushes    metric.Int64Counter
	pushFails metric.Int64Counter
	pops      metric.Int64Counter
	popFails  metric.Int64Counter
}

// Instrument wraps r, registering its counters on meter.
func Instrument[T any](r api.Ring[T], meter metric.Meter) (*Instrumented[T], error) {
	pushes, err := meter.Int64Counter("shmring.pushes",
		metric.WithDescription("Elements enqueued."))
	if err != nil {
		return nil, err
	}
	pushFails, err := meter.Int64Counter("shmring.push_failures",
		metric.WithDescription("Elements rejected for lack of space."))
	if err != nil {
		return nil, err
	}
	pops, err := meter.Int64Counter("shmring.pops",
		metric.WithDescription("Elements dequeued."))
	if err != nil {
		return nil, err
	}
	popFails, err := meter.Int64Counter("shmring.pop_failures",
		metric.WithDescription("Elements requested but not dequeued for lack of data."))
	if err != nil {
		return nil, err
	}
	return &Instrumented[T]{
		Ring:      r,
		ctx:       context.Background(),
		pushes:    pushes,
		pushFails: pushFails,
		pops:      pops,
		popFails:  popFails,
	}, nil
}

func (i *Instrumented[T]) Push(v T) bool {
	if i.Ring.Push(v) {
		i.pushes.Add(i.ctx, 1)
		return true
	}
	i.pushFails.Add(i.ctx, 1)
	return false
}

func (i *Instrumented[T]) Write(src []T) bool {
	if i.Ring.Write(src) {
		i.pushes.Add(i.ctx, int64(len(src)))
		return true
	}
	// Failures count elements too, so both counters share units.
	i.pushFails.Add(i.ctx, int64(len(src)))
	return false
}

func (i *Instrumented[T]) Pop() (T, bool) {
	v, ok := i.Ring.Pop()
	if ok {
		i.pops.Add(i.ctx, 1)
	} else {
		i.popFails.Add(i.ctx, 1)
	}
	return v, ok
}

func (i *Instrumented[T]) Read(dst []T) bool {
	if i.Ring.Read(dst) {
		i.pops.Add(i.ctx, int64(len(dst)))
		return true
	}
	i.popFails.Add(i.ctx, int64(len(dst)))
	return false
}
