package axon

import (
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Scope is one resolution context. The root scope lives as long as the
// container; child scopes are opened through [Container.CreateScope] and
// torn down by their callers. A scope owns the instances cached at its
// level and the disposal list for everything it constructed, both protected
// by a single mutex.
type Scope struct {
	id        uuid.UUID
	container *Container
	isRoot    bool

	mu          sync.Mutex
	resolved    map[CacheKey]any
	disposables []any
	disposed    bool
}

func newScope(c *Container, isRoot bool) *Scope {
	return &Scope{
		id:        uuid.New(),
		container: c,
		isRoot:    isRoot,
		resolved:  make(map[CacheKey]any),
	}
}

// ID returns the scope identity reported to the teardown observer.
func (s *Scope) ID() uuid.UUID { return s.id }

// IsRoot reports whether this is the container-lifetime scope.
func (s *Scope) IsRoot() bool { return s.isRoot }

func (s *Scope) label() string {
	if s.isRoot {
		return fmt.Sprintf("root scope %s", s.id)
	}
	return fmt.Sprintf("scope %s", s.id)
}

func (s *Scope) isDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// GetService resolves the unkeyed service of the given type, returning
// (nil, nil) when no call-site is registered for it.
func (s *Scope) GetService(serviceType reflect.Type) (any, error) {
	return s.container.getService(ServiceKey{Type: serviceType}, s, false)
}

// GetRequiredService resolves the unkeyed service of the given type,
// failing with a ServiceNotFoundError when it is not registered.
func (s *Scope) GetRequiredService(serviceType reflect.Type) (any, error) {
	return s.container.getService(ServiceKey{Type: serviceType}, s, true)
}

// GetKeyedService resolves the service registered under (serviceType, key),
// returning (nil, nil) when absent.
func (s *Scope) GetKeyedService(serviceType reflect.Type, key any) (any, error) {
	return s.container.getService(ServiceKey{Type: serviceType, Key: key}, s, false)
}

// GetRequiredKeyedService resolves the service registered under
// (serviceType, key), failing when it is not registered.
func (s *Scope) GetRequiredKeyedService(serviceType reflect.Type, key any) (any, error) {
	return s.container.getService(ServiceKey{Type: serviceType, Key: key}, s, true)
}

// resolveCached applies a call-site's cache policy around its build
// function. Both engines route every factory and constructor node through
// here, so caching and capture behave identically under either engine.
func (s *Scope) resolveCached(cache ResultCache, build Accessor) (any, error) {
	switch cache.Location {
	case CacheDispose:
		v, err := build(s)
		if err != nil {
			return nil, err
		}
		return s.CaptureDisposable(v)
	case CacheRoot:
		return s.container.root.cachedOrBuild(cache.Key, build)
	case CacheScope:
		return s.cachedOrBuild(cache.Key, build)
	default:
		return build(s)
	}
}

// cachedOrBuild returns the instance cached under key, building and
// inserting it on a miss. Construction runs outside the guard: the mutex is
// not reentrant and dependency resolution may need it again. Two concurrent
// misses may therefore both run the constructor; the first insert wins and
// the loser's instance is released without ever being cached. Only the
// cached identity is unique.
func (s *Scope) cachedOrBuild(key CacheKey, build Accessor) (any, error) {
	s.mu.Lock()
	if v, ok := s.resolved[key]; ok {
		// Cache hits stay readable even mid-teardown; the resolved map
		// is never cleared.
		s.mu.Unlock()
		return v, nil
	}
	if s.disposed {
		s.mu.Unlock()
		return nil, &DisposedError{Scope: s.label()}
	}
	s.mu.Unlock()

	v, err := build(s)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		if derr := closeFallback(v); derr != nil {
			return nil, derr
		}
		return nil, &DisposedError{Scope: s.label()}
	}
	if existing, ok := s.resolved[key]; ok {
		s.mu.Unlock()
		if derr := closeFallback(v); derr != nil {
			return nil, derr
		}
		return existing, nil
	}
	s.resolved[key] = v
	if s.shouldTrack(v) {
		s.disposables = append(s.disposables, v)
	}
	s.mu.Unlock()
	return v, nil
}

func (s *Scope) shouldTrack(v any) bool {
	if sc, ok := v.(*Scope); ok && sc == s {
		return false
	}
	return isDisposable(v)
}

// CaptureDisposable registers v for teardown with this scope. Values that
// are not disposable, and the scope itself, pass through untracked. On an
// already-disposed scope the value is released immediately, outside the
// guard, and a DisposedError is returned: resolving against a disposed
// scope never succeeds.
func (s *Scope) CaptureDisposable(v any) (any, error) {
	if !s.shouldTrack(v) {
		return v, nil
	}
	s.mu.Lock()
	disposed := s.disposed
	if !disposed {
		s.disposables = append(s.disposables, v)
	}
	s.mu.Unlock()
	if !disposed {
		return v, nil
	}
	if err := closeFallback(v); err != nil {
		return nil, err
	}
	return nil, &DisposedError{Scope: s.label()}
}

// beginTeardown flips the disposed flag and captures the disposal list in
// one critical section, fires the observer hook, then cascades disposal to
// the container when this is the root scope. The flag is already set when
// the cascade runs, so the mutual trigger between root scope and container
// cannot recurse.
func (s *Scope) beginTeardown() ([]any, bool) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil, false
	}
	s.disposed = true
	captured := s.disposables
	s.disposables = nil
	resolvedCount := len(s.resolved)
	s.mu.Unlock()

	s.container.observer.ObserveTeardown(TeardownStats{
		ScopeID:     s.id,
		Root:        s.isRoot,
		Resolved:    resolvedCount,
		Disposables: len(captured),
	})

	if s.isRoot {
		s.container.disposed.Store(true)
	}
	return captured, true
}

// Close tears the scope down synchronously, releasing every captured entry
// in reverse registration order. An entry that only supports asynchronous
// disposal is a usage error: teardown of the remaining list is aborted with
// a SyncDisposalError. Close is idempotent; a second call is a no-op.
func (s *Scope) Close() error {
	captured, proceed := s.beginTeardown()
	if !proceed {
		return nil
	}
	for i := len(captured) - 1; i >= 0; i-- {
		closer, ok := captured[i].(io.Closer)
		if !ok {
			return &SyncDisposalError{Type: fmt.Sprintf("%T", captured[i])}
		}
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return nil
}

// CloseAsync tears the scope down asynchronously. Entries are released in
// reverse registration order, preferring each entry's asynchronous path and
// falling back to the synchronous one; a later entry is not started until
// the previous one has settled. The first disposal error aborts the walk
// and is delivered on the returned channel, which yields exactly one value.
// CloseAsync is idempotent; a second call settles immediately with nil.
func (s *Scope) CloseAsync() <-chan error {
	done := make(chan error, 1)
	captured, proceed := s.beginTeardown()
	if !proceed {
		done <- nil
		return done
	}
	go func() {
		for i := len(captured) - 1; i >= 0; i-- {
			if err := disposeEntry(captured[i]); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()
	return done
}
