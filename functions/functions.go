// Package functions holds the arithmetic helpers exercised by the dummy test runner.
package functions

// Number is any built-in integer or floating point type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum returns a + b. Integer overflow wraps and floats follow IEEE-754, exactly as the + operator does.
func Sum[T Number](a, b T) T {
	return a + b
}
