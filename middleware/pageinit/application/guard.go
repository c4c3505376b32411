package application

import "fmt"

// guard isola um widget: panic da biblioteca vira erro daquele elemento.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
