package ring

import (
	"reflect"

	"github.com/fastipc/shmring/api"
)

// NoPointers reports whether T can be transferred by raw byte copy: a
// fixed-size value with no pointers whose meaning depends on the source
// address. Rings placed in shared memory require this; the in-process
// Ring copies by assignment and does not.
func NoPointers[T any]() error {
	var zero T
	if typeHasPointers(reflect.TypeOf(zero)) {
		return api.ErrTypeHasPointers
	}
	return nil
}

func typeHasPointers(t reflect.Type) bool {
	if t == nil {
		// TypeOf of an interface-typed zero value.
		return true
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointer, slice, map, chan, func, string, interface,
		// unsafe.Pointer: all carry addresses.
		return true
	}
}
