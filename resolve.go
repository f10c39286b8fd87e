package axon

import (
	"fmt"
	"reflect"
)

// Get resolves T from the resolver, returning the zero value with a nil
// error when T is not registered:
//
//	repo, err := axon.Get[*Repository](scope)
func Get[T any](r Resolver) (T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, err := r.GetService(t)
	return convert[T](v, err, t)
}

// GetRequired resolves T from the resolver, failing when T is not
// registered.
func GetRequired[T any](r Resolver) (T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, err := r.GetRequiredService(t)
	return convert[T](v, err, t)
}

// GetKeyed resolves the T registered under key, returning the zero value
// with a nil error when absent:
//
//	db, err := axon.GetKeyed[*Database](scope, "replica")
func GetKeyed[T any](r Resolver, key any) (T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, err := r.GetKeyedService(t, key)
	return convert[T](v, err, t)
}

// GetRequiredKeyed resolves the T registered under key, failing when
// absent.
func GetRequiredKeyed[T any](r Resolver, key any) (T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, err := r.GetRequiredKeyedService(t, key)
	return convert[T](v, err, t)
}

func convert[T any](v any, err error, t reflect.Type) (T, error) {
	var zero T
	if err != nil || v == nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cannot convert %T to %s", v, t)
	}
	return out, nil
}
