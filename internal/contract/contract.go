// File: internal/contract/contract.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package contract

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/momentics/hioload-ringbuf/api"
)

// Violation panics with an *api.Error describing a broken caller contract.
// kv is an alternating list of context keys and values.
func Violation(op, msg string, kv ...any) {
	e := api.NewError(api.ErrCodeContractViolation, fmt.Sprintf("%s: %s", op, msg))
	for i := 0; i+1 < len(kv); i += 2 {
		e.WithContext(fmt.Sprint(kv[i]), kv[i+1])
	}
	panic(e)
}

// Assert calls Violation when cond is false and checks are enabled.
func Assert(cond bool, op, msg string, kv ...any) {
	if Enabled && !cond {
		Violation(op, msg, kv...)
	}
}

// Align4 rounds n up to the next multiple of four.
func Align4(n uint32) uint32 {
	return (n + 3) &^ 3
}

var plainTypes sync.Map // reflect.Type -> bool

// IsPlain reports whether values of t can be stored as raw bytes, i.e. t holds
// no Go pointers the collector would need to see.
func IsPlain(t reflect.Type) bool {
	if v, ok := plainTypes.Load(t); ok {
		return v.(bool)
	}
	plain := !hasPointers(t)
	plainTypes.Store(t, plain)
	return plain
}

// CheckPlain panics when T is not a plain fixed-layout type (checked builds only).
func CheckPlain[T any](op string) {
	if !Enabled {
		return
	}
	t := reflect.TypeFor[T]()
	if !IsPlain(t) {
		Violation(op, "record type must not contain pointers", "type", t.String())
	}
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Slice, reflect.Map,
		reflect.String, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
