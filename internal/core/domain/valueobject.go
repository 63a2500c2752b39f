package domain

import "reflect"

// ValueObject is an immutable bundle of attributes compared by value.
type ValueObject interface {
	EqualityComponents() []any
}

// ValuesEqual reports whether a and b are the same kind of value object with
// equal components, in order.
func ValuesEqual(a, b ValueObject) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	left, right := a.EqualityComponents(), b.EqualityComponents()
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !reflect.DeepEqual(left[i], right[i]) {
			return false
		}
	}
	return true
}
