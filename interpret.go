package axon

import (
	"fmt"
	"reflect"
)

// interpretEngine evaluates the call-site tree recursively on every
// resolution: no warm-up cost, tree-walk overhead on each call.
type interpretEngine struct{}

// NewInterpretEngine returns the tree-walking resolution engine. It is the
// default engine of a container.
func NewInterpretEngine() Engine { return &interpretEngine{} }

func (e *interpretEngine) Realize(site CallSite) (Accessor, error) {
	return func(scope *Scope) (any, error) {
		return e.resolve(site, scope)
	}, nil
}

func (e *interpretEngine) resolve(site CallSite, scope *Scope) (any, error) {
	switch cs := site.(type) {
	case *ConstantCallSite:
		return cs.value, nil
	case *ScopeCallSite:
		return scope, nil
	case *SliceCallSite:
		out := reflect.MakeSlice(reflect.SliceOf(cs.elemType), len(cs.items), len(cs.items))
		for i, item := range cs.items {
			v, err := e.resolve(item, scope)
			if err != nil {
				return nil, err
			}
			if v != nil {
				out.Index(i).Set(reflect.ValueOf(v))
			}
		}
		return out.Interface(), nil
	case *FactoryCallSite:
		return scope.resolveCached(cs.cache, func(s *Scope) (any, error) {
			return cs.factory(s)
		})
	case *ConstructorCallSite:
		return scope.resolveCached(cs.cache, func(s *Scope) (any, error) {
			return e.construct(cs, s)
		})
	default:
		return nil, &InvalidCallSiteError{
			Service: site.Service(),
			Reason:  fmt.Sprintf("unknown call-site kind %q", site.Kind()),
		}
	}
}

// construct resolves every parameter depth-first, in parameter order, then
// invokes the constructor.
func (e *interpretEngine) construct(cs *ConstructorCallSite, scope *Scope) (any, error) {
	ctorType := cs.ctor.Type()
	args := make([]reflect.Value, len(cs.deps))
	for i, dep := range cs.deps {
		v, err := e.resolve(dep, scope)
		if err != nil {
			return nil, err
		}
		args[i] = argValue(v, ctorType.In(i))
	}
	return callConstructor(cs.ctor, args)
}
