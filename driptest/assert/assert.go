// Package assert provides minimal assert functionality for tests.
package assert

import (
	"reflect"
	"testing"
)

// Nil fails the test if given value is not nil.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// Use %+v so that if the value is an error its stack trace is
		// printed as well.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test if the two values are not equal.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant: %+v\n got: %+v", want, got)
	}
}

// Panics runs given function and expects it to panic.
func Panics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if recover() == nil {
			t.Fatal("function did not panic")
		}
	}()
	fn()
}

// IsErr fails the test if got error is not of the kind that want represents.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	wantKind, ok := want.(interface{ Is(error) bool })
	if !ok {
		t.Fatalf("cannot match error kind: %T", want)
	}
	if !wantKind.Is(got) {
		t.Fatalf("want %q error, got %+v", want, got)
	}
}
