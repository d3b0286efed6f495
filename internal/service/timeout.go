package service

import (
	"context"
	"time"

	"passkeeper/internal/common"
)

// withTimeout ограничивает операцию сверху. d <= 0 - без ограничения.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

type result[T any] struct {
	v   T
	err error
}

// runBounded выполняет CPU-тяжёлую функцию в отдельной горутине и возвращает
// common.ErrTimeout, если контекст завершился раньше. Сама горутина
// доработает в фоне, её результат отбрасывается.
func runBounded[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	ch := make(chan result[T], 1)
	go func() {
		v, err := fn()
		ch <- result[T]{v: v, err: err}
	}()
	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, common.ErrTimeout
	}
}
