package axon

import (
	"fmt"
	"reflect"
)

// compileEngine specializes each call-site tree once into nested closures;
// the resulting accessor re-walks nothing at call time. One-time build cost
// per distinct call-site, cheaper repeated resolutions. Observable behavior
// is identical to the interpreting engine: same cache hits, same disposal
// capture, same failures.
type compileEngine struct{}

// NewCompileEngine returns the specializing resolution engine.
func NewCompileEngine() Engine { return &compileEngine{} }

func (e *compileEngine) Realize(site CallSite) (Accessor, error) {
	return e.compile(site)
}

func (e *compileEngine) compile(site CallSite) (Accessor, error) {
	switch cs := site.(type) {
	case *ConstantCallSite:
		value := cs.value
		return func(*Scope) (any, error) { return value, nil }, nil
	case *ScopeCallSite:
		return func(s *Scope) (any, error) { return s, nil }, nil
	case *SliceCallSite:
		items := make([]Accessor, len(cs.items))
		for i, item := range cs.items {
			compiled, err := e.compile(item)
			if err != nil {
				return nil, err
			}
			items[i] = compiled
		}
		sliceType := reflect.SliceOf(cs.elemType)
		return func(s *Scope) (any, error) {
			out := reflect.MakeSlice(sliceType, len(items), len(items))
			for i, item := range items {
				v, err := item(s)
				if err != nil {
					return nil, err
				}
				if v != nil {
					out.Index(i).Set(reflect.ValueOf(v))
				}
			}
			return out.Interface(), nil
		}, nil
	case *FactoryCallSite:
		factory := cs.factory
		return withPolicy(cs.cache, func(s *Scope) (any, error) {
			return factory(s)
		}), nil
	case *ConstructorCallSite:
		deps := make([]Accessor, len(cs.deps))
		for i, dep := range cs.deps {
			compiled, err := e.compile(dep)
			if err != nil {
				return nil, err
			}
			deps[i] = compiled
		}
		ctor := cs.ctor
		ctorType := ctor.Type()
		params := make([]reflect.Type, ctorType.NumIn())
		for i := range params {
			params[i] = ctorType.In(i)
		}
		return withPolicy(cs.cache, func(s *Scope) (any, error) {
			args := make([]reflect.Value, len(deps))
			for i, dep := range deps {
				v, err := dep(s)
				if err != nil {
					return nil, err
				}
				args[i] = argValue(v, params[i])
			}
			return callConstructor(ctor, args)
		}), nil
	default:
		return nil, &InvalidCallSiteError{
			Service: site.Service(),
			Reason:  fmt.Sprintf("unknown call-site kind %q", site.Kind()),
		}
	}
}

// withPolicy wraps a compiled build closure with its cache policy. The
// policy runs through the same scope helpers the interpreting engine uses,
// which is what keeps the two engines behaviorally identical.
func withPolicy(cache ResultCache, build Accessor) Accessor {
	return func(s *Scope) (any, error) {
		return s.resolveCached(cache, build)
	}
}
