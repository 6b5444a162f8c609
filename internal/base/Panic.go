package base

import "fmt"

func Panicf(msg string, args ...interface{}) {
	Panic(fmt.Errorf(msg, args...))
}

func Panic(err error) {
	panic(fmt.Errorf("[PANIC] %w", err))
}

// Recover converts a panic raised inside scope into an error.
func Recover(scope func() error) (result error) {
	defer func() {
		if err := recover(); err != nil {
			var ok bool
			if result, ok = err.(error); !ok {
				result = fmt.Errorf("%v", err)
			}
		}
	}()
	result = scope()
	return
}
