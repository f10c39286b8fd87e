package axon

import "reflect"

// Accessor resolves one service against a requesting scope.
type Accessor func(*Scope) (any, error)

// Engine turns a call-site into a reusable Accessor. Realized accessors are
// cached by the container per service identity; concurrent first resolutions
// may each call Realize, with one winner kept and shared by every later
// resolution of that service, across all scopes.
type Engine interface {
	Realize(CallSite) (Accessor, error)
}

// argValue adapts a resolved dependency to a constructor parameter. A nil
// dependency becomes the parameter type's zero value.
func argValue(v any, param reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(param)
	}
	return reflect.ValueOf(v)
}

// callConstructor invokes a validated constructor and unwraps its (T) or
// (T, error) return shape. Construction errors surface unmodified.
func callConstructor(ctor reflect.Value, args []reflect.Value) (any, error) {
	results := ctor.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}
