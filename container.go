package axon

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
)

// Resolver is the resolution surface shared by the container and every
// scope. A constructed object that depends on Resolver receives the scope
// it was constructed from, so it can resolve further services lazily with
// the same lifetime boundaries.
type Resolver interface {
	GetService(serviceType reflect.Type) (any, error)
	GetRequiredService(serviceType reflect.Type) (any, error)
	GetKeyedService(serviceType reflect.Type, key any) (any, error)
	GetRequiredKeyedService(serviceType reflect.Type, key any) (any, error)
}

var (
	_ Resolver = (*Container)(nil)
	_ Resolver = (*Scope)(nil)
)

// Container is the top-level provider: it owns the root scope, the chosen
// resolution engine and the realized-accessor cache. Containers are built
// once over a finalized call-site table and are immutable apart from the
// caches they maintain.
type Container struct {
	table    *CallSiteTable
	engine   Engine
	observer TeardownObserver
	root     *Scope
	realized sync.Map // ServiceKey -> Accessor
	disposed atomic.Bool
}

// New builds a container over a finalized call-site table. The table must
// already be validated by the graph-building layer; the engines assume a
// cycle-free, fully resolvable graph.
func New(table *CallSiteTable, opts ...Option) *Container {
	c := &Container{
		table:    table,
		engine:   NewInterpretEngine(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.root = newScope(c, true)
	return c
}

// GetService resolves the unkeyed service of the given type from the root
// scope, returning (nil, nil) when it is not registered.
func (c *Container) GetService(serviceType reflect.Type) (any, error) {
	return c.getService(ServiceKey{Type: serviceType}, c.root, false)
}

// GetRequiredService resolves the unkeyed service of the given type from
// the root scope, failing with a ServiceNotFoundError when absent.
func (c *Container) GetRequiredService(serviceType reflect.Type) (any, error) {
	return c.getService(ServiceKey{Type: serviceType}, c.root, true)
}

// GetKeyedService resolves the service registered under (serviceType, key)
// from the root scope, returning (nil, nil) when absent.
func (c *Container) GetKeyedService(serviceType reflect.Type, key any) (any, error) {
	return c.getService(ServiceKey{Type: serviceType, Key: key}, c.root, false)
}

// GetRequiredKeyedService resolves the service registered under
// (serviceType, key) from the root scope, failing when absent.
func (c *Container) GetRequiredKeyedService(serviceType reflect.Type, key any) (any, error) {
	return c.getService(ServiceKey{Type: serviceType, Key: key}, c.root, true)
}

// CreateScope opens a child scope. The caller owns its lifetime and must
// close it to release the scoped and transient disposables it captured.
func (c *Container) CreateScope() (*Scope, error) {
	if c.disposed.Load() {
		return nil, &DisposedError{Scope: "container"}
	}
	return newScope(c, false), nil
}

// Root returns the container-lifetime scope. Disposing it disposes the
// container, and vice versa; the two are views of one lifetime.
func (c *Container) Root() *Scope { return c.root }

// ServiceCount returns the number of registered service identities, for
// diagnostics.
func (c *Container) ServiceCount() int { return c.table.Len() }

// Close disposes the container and its root scope synchronously.
func (c *Container) Close() error { return c.root.Close() }

// CloseAsync disposes the container and its root scope asynchronously.
func (c *Container) CloseAsync() <-chan error { return c.root.CloseAsync() }

func (c *Container) getService(service ServiceKey, scope *Scope, required bool) (any, error) {
	if scope.isDisposed() {
		return nil, &DisposedError{Scope: scope.label()}
	}
	accessor, err := c.accessor(service)
	if err != nil {
		var notFound *ServiceNotFoundError
		if !required && errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return accessor(scope)
}

// accessor returns the realized accessor for a service, realizing it at
// most once per container lifetime. Concurrent realizations race benignly;
// LoadOrStore keeps a single winner.
func (c *Container) accessor(service ServiceKey) (Accessor, error) {
	if a, ok := c.realized.Load(service); ok {
		return a.(Accessor), nil
	}
	site, ok := c.table.Lookup(service)
	if !ok {
		return nil, &ServiceNotFoundError{Service: service}
	}
	a, err := c.engine.Realize(site)
	if err != nil {
		return nil, err
	}
	stored, _ := c.realized.LoadOrStore(service, a)
	return stored.(Accessor), nil
}
