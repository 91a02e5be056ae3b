package configs

import (
	"errors"
	"fmt"
	"iter"
)

// Lookup decodes the first value at path in search order.
func Lookup[T any](loader Loader, path string) (T, error) {
	var value T
	err := loader.AssignFirst(path, &value)
	return value, err
}

// First is Lookup for settings with a usable zero value. A missing value
// is zero. Invalid files and undecodable values panic.
func First[T any](loader Loader, path string) T {
	value, err := Lookup[T](loader, path)
	if err != nil && !errors.Is(err, ErrValueNotFound) {
		panic(err)
	}
	return value
}

// All decodes the value at path of every file that has one.
func All[T any](loader Loader, path string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for value, err := range loader.IterCueValues(path) {
			var v T
			if err == nil {
				if err = value.Decode(&v); err != nil {
					err = fmt.Errorf("decode %s: %w", path, err)
				}
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}
