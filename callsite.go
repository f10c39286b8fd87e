package axon

import (
	"fmt"
	"reflect"
)

// CallSiteKind discriminates the closed set of call-site variants. Both
// resolution engines match on it exhaustively; there is no open-ended
// subclassing.
type CallSiteKind byte

const (
	// KindConstructor invokes a constructor function over resolved
	// dependency call-sites.
	KindConstructor CallSiteKind = iota
	// KindFactory invokes a user factory with the requesting scope.
	KindFactory
	// KindSlice materializes a slice with one element per item call-site.
	KindSlice
	// KindScope resolves to the requesting scope itself.
	KindScope
	// KindConstant yields a pre-built value.
	KindConstant
)

func (k CallSiteKind) String() string {
	switch k {
	case KindConstructor:
		return "constructor"
	case KindFactory:
		return "factory"
	case KindSlice:
		return "slice"
	case KindScope:
		return "scope"
	case KindConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// CallSite is an immutable description of how to produce one service: its
// contract identity, its dependency edges and its cache policy. Call-sites
// are built once by the graph-building layer and shared read-only across
// every scope of the container. The engine assumes the graph is a DAG;
// cycles and missing dependencies are rejected upstream.
type CallSite interface {
	// Service returns the contract identity this call-site produces.
	Service() ServiceKey
	// ServiceType returns the contract type, Service().Type.
	ServiceType() reflect.Type
	// Kind returns the variant tag.
	Kind() CallSiteKind
	// Cache returns the cache policy fixed at construction.
	Cache() ResultCache
}

var (
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	resolverType = reflect.TypeOf((*Resolver)(nil)).Elem()
)

// ConstructorCallSite produces a value by calling a constructor function,
// resolving each parameter from its own call-site first, depth-first and in
// parameter order.
type ConstructorCallSite struct {
	service ServiceKey
	ctor    reflect.Value
	deps    []CallSite
	cache   ResultCache
}

// NewConstructor builds a constructor call-site. The constructor must be a
// function with the signature func(deps...) T or func(deps...) (T, error),
// with exactly one dependency call-site per parameter, each producing a
// value assignable to the parameter it feeds. Slot disambiguates multiple
// call-sites cached under the same service identity.
func NewConstructor(lifetime Lifetime, service ServiceKey, slot int, constructor any, deps ...CallSite) (*ConstructorCallSite, error) {
	val := reflect.ValueOf(constructor)
	if !val.IsValid() || val.Kind() != reflect.Func {
		return nil, &InvalidCallSiteError{Service: service, Reason: "constructor must be a function"}
	}
	typ := val.Type()
	if typ.NumOut() == 0 || typ.NumOut() > 2 {
		return nil, &InvalidCallSiteError{Service: service, Reason: "constructor must return (T) or (T, error)"}
	}
	if typ.NumOut() == 2 && !typ.Out(1).Implements(errorType) {
		return nil, &InvalidCallSiteError{Service: service, Reason: "second return value must implement error"}
	}
	if !typ.Out(0).AssignableTo(service.Type) {
		return nil, &InvalidCallSiteError{
			Service: service,
			Reason:  fmt.Sprintf("constructor returns %v, not assignable to %v", typ.Out(0), service.Type),
		}
	}
	if typ.NumIn() != len(deps) {
		return nil, &InvalidCallSiteError{
			Service: service,
			Reason:  fmt.Sprintf("constructor takes %d parameters, %d dependency call-sites given", typ.NumIn(), len(deps)),
		}
	}
	for i, dep := range deps {
		if !dep.ServiceType().AssignableTo(typ.In(i)) {
			return nil, &InvalidCallSiteError{
				Service: service,
				Reason:  fmt.Sprintf("dependency %d produces %v, not assignable to parameter %v", i, dep.ServiceType(), typ.In(i)),
			}
		}
	}

	owned := make([]CallSite, len(deps))
	copy(owned, deps)
	return &ConstructorCallSite{
		service: service,
		ctor:    val,
		deps:    owned,
		cache:   newResultCache(lifetime, service, slot),
	}, nil
}

func (cs *ConstructorCallSite) Service() ServiceKey       { return cs.service }
func (cs *ConstructorCallSite) ServiceType() reflect.Type { return cs.service.Type }
func (cs *ConstructorCallSite) Kind() CallSiteKind        { return KindConstructor }
func (cs *ConstructorCallSite) Cache() ResultCache        { return cs.cache }

// ImplementationType returns the concrete type produced by the constructor.
func (cs *ConstructorCallSite) ImplementationType() reflect.Type { return cs.ctor.Type().Out(0) }

// Dependencies returns the ordered parameter call-sites.
func (cs *ConstructorCallSite) Dependencies() []CallSite { return cs.deps }

// Factory is the signature of user-supplied factories. The resolver is the
// scope the instance is cached against, so further services may be
// resolved lazily from it.
type Factory func(Resolver) (any, error)

// FactoryCallSite produces a value by calling a user factory.
type FactoryCallSite struct {
	service ServiceKey
	factory Factory
	cache   ResultCache
}

// NewFactory builds a factory call-site.
func NewFactory(lifetime Lifetime, service ServiceKey, slot int, factory Factory) (*FactoryCallSite, error) {
	if factory == nil {
		return nil, &InvalidCallSiteError{Service: service, Reason: "factory must not be nil"}
	}
	return &FactoryCallSite{
		service: service,
		factory: factory,
		cache:   newResultCache(lifetime, service, slot),
	}, nil
}

func (cs *FactoryCallSite) Service() ServiceKey       { return cs.service }
func (cs *FactoryCallSite) ServiceType() reflect.Type { return cs.service.Type }
func (cs *FactoryCallSite) Kind() CallSiteKind        { return KindFactory }
func (cs *FactoryCallSite) Cache() ResultCache        { return cs.cache }

// SliceCallSite produces a []T with one element per item call-site. The
// slice itself is rebuilt on every resolution; each element keeps its own
// cache policy and slot.
type SliceCallSite struct {
	service  ServiceKey
	elemType reflect.Type
	items    []CallSite
}

// NewSlice builds a slice call-site registered as []elemType under the
// given discriminator key. Every item must produce a value assignable to
// elemType.
func NewSlice(elemType reflect.Type, key any, items ...CallSite) (*SliceCallSite, error) {
	service := ServiceKey{Type: reflect.SliceOf(elemType), Key: key}
	for i, item := range items {
		if !item.ServiceType().AssignableTo(elemType) {
			return nil, &InvalidCallSiteError{
				Service: service,
				Reason:  fmt.Sprintf("item %d produces %v, not assignable to element type %v", i, item.ServiceType(), elemType),
			}
		}
	}
	owned := make([]CallSite, len(items))
	copy(owned, items)
	return &SliceCallSite{service: service, elemType: elemType, items: owned}, nil
}

func (cs *SliceCallSite) Service() ServiceKey       { return cs.service }
func (cs *SliceCallSite) ServiceType() reflect.Type { return cs.service.Type }
func (cs *SliceCallSite) Kind() CallSiteKind        { return KindSlice }
func (cs *SliceCallSite) Cache() ResultCache        { return noneResultCache }

// Items returns the ordered element call-sites.
func (cs *SliceCallSite) Items() []CallSite { return cs.items }

// ScopeCallSite resolves to the requesting scope itself, so a constructed
// object asking for a Resolver receives one rooted where it was created.
// It is never cached and never captured for disposal.
type ScopeCallSite struct{}

// NewScopeCallSite builds the provider self-reference call-site.
func NewScopeCallSite() *ScopeCallSite { return &ScopeCallSite{} }

func (cs *ScopeCallSite) Service() ServiceKey       { return ServiceKey{Type: resolverType} }
func (cs *ScopeCallSite) ServiceType() reflect.Type { return resolverType }
func (cs *ScopeCallSite) Kind() CallSiteKind        { return KindScope }
func (cs *ScopeCallSite) Cache() ResultCache        { return noneResultCache }

// ConstantCallSite yields a pre-built value. The value is owned by whoever
// registered it, so it is never captured for disposal.
type ConstantCallSite struct {
	service ServiceKey
	value   any
}

// NewConstant builds a constant call-site.
func NewConstant(service ServiceKey, value any) (*ConstantCallSite, error) {
	if value != nil && !reflect.TypeOf(value).AssignableTo(service.Type) {
		return nil, &InvalidCallSiteError{
			Service: service,
			Reason:  fmt.Sprintf("value of type %T is not assignable to %v", value, service.Type),
		}
	}
	return &ConstantCallSite{service: service, value: value}, nil
}

func (cs *ConstantCallSite) Service() ServiceKey       { return cs.service }
func (cs *ConstantCallSite) ServiceType() reflect.Type { return cs.service.Type }
func (cs *ConstantCallSite) Kind() CallSiteKind        { return KindConstant }
func (cs *ConstantCallSite) Cache() ResultCache        { return noneResultCache }

// Value returns the wrapped constant.
func (cs *ConstantCallSite) Value() any { return cs.value }
