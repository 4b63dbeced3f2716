package resilience

import "golang.org/x/sync/singleflight"

// Group is a typed wrapper over singleflight.Group. Concurrent calls for the
// same key share one execution of fn.
type Group[T any] struct {
	g singleflight.Group
}

// Do runs fn once per key among concurrent callers. shared reports whether
// the result was handed to more than one caller.
func (g *Group[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	v, err, shared := g.g.Do(key, func() (any, error) {
		return fn()
	})
	val, _ := v.(T)
	return val, err, shared
}

// Forget makes the next Do for key run fn even if a call is in flight.
func (g *Group[T]) Forget(key string) {
	g.g.Forget(key)
}
