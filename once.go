package reqkit

import "sync/atomic"

// Guard runs its callback at most once. The zero value never fires anything.
type Guard struct {
	fired atomic.Bool
	fn    Callback
}

// NewGuard wraps fn.
func NewGuard(fn Callback) *Guard {
	return &Guard{fn: fn}
}

// Invoke forwards args to the callback on the first call and reports whether
// this call was the one that fired. Later calls do nothing.
func (g *Guard) Invoke(args ...any) bool {
	if !g.fired.CompareAndSwap(false, true) {
		return false
	}
	if g.fn != nil {
		g.fn(args...)
	}
	return true
}

// Fired reports whether Invoke has already run.
func (g *Guard) Fired() bool {
	return g.fired.Load()
}

// Once returns a callback that forwards to fn only the first time it is
// called. It is typically wrapped around completion handlers that both a
// cancellation path and a normal completion path may try to fire.
func Once(fn Callback) Callback {
	g := NewGuard(fn)
	return func(args ...any) {
		g.Invoke(args...)
	}
}

// OnceFunc is Once for callbacks without arguments.
func OnceFunc(fn func()) func() {
	var fired atomic.Bool
	return func() {
		if fired.CompareAndSwap(false, true) && fn != nil {
			fn()
		}
	}
}

// OnceWith is Once for single-argument callbacks.
func OnceWith[T any](fn func(T)) func(T) {
	var fired atomic.Bool
	return func(v T) {
		if fired.CompareAndSwap(false, true) && fn != nil {
			fn(v)
		}
	}
}

// OnceWith2 is Once for the common (result, error) completion shape.
func OnceWith2[A, B any](fn func(A, B)) func(A, B) {
	var fired atomic.Bool
	return func(a A, b B) {
		if fired.CompareAndSwap(false, true) && fn != nil {
			fn(a, b)
		}
	}
}
