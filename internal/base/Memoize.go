package base

import "sync"

/***************************************
 * Memoize
 ***************************************/

func Memoize[T any](fn func() T) func() T {
	var memoized T
	once := sync.Once{}
	return func() T {
		once.Do(func() { memoized = fn() })
		return memoized
	}
}
