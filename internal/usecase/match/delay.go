package match

import (
	"context"
	"time"
)

// Delayer is the suspension point before a match resolves. Wait returns
// ctx.Err() if the caller gives up first.
type Delayer interface {
	Wait(ctx context.Context) error
}

// DelayerFunc adapts a function to Delayer.
type DelayerFunc func(ctx context.Context) error

func (f DelayerFunc) Wait(ctx context.Context) error { return f(ctx) }

// NoDelay resolves immediately unless ctx is already done.
var NoDelay Delayer = DelayerFunc(func(ctx context.Context) error {
	return ctx.Err()
})

// TimerDelayer waits a fixed duration, modelling a network round trip.
type TimerDelayer struct {
	Duration time.Duration
}

func (d TimerDelayer) Wait(ctx context.Context) error {
	if d.Duration <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d.Duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
