package axon_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/centraunit/axon"
	"github.com/centraunit/axon/mock"
)

// Shared helpers used across the test suites.

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func keyOf[T any]() axon.ServiceKey {
	return axon.ServiceKey{Type: typeOf[T]()}
}

// engines returns the resolution engines under test, by name.
func engines() map[string]axon.Engine {
	return map[string]axon.Engine{
		"interpret": axon.NewInterpretEngine(),
		"compile":   axon.NewCompileEngine(),
	}
}

// mustConstructor calls tb.Fatal if the call-site cannot be built.
func mustConstructor(tb testing.TB, lifetime axon.Lifetime, service axon.ServiceKey, slot int, ctor any, deps ...axon.CallSite) *axon.ConstructorCallSite {
	tb.Helper()
	cs, err := axon.NewConstructor(lifetime, service, slot, ctor, deps...)
	if err != nil {
		tb.Fatalf("NewConstructor(%s): %v", service, err)
	}
	return cs
}

// mustFactory calls tb.Fatal if the call-site cannot be built.
func mustFactory(tb testing.TB, lifetime axon.Lifetime, service axon.ServiceKey, slot int, factory axon.Factory) *axon.FactoryCallSite {
	tb.Helper()
	cs, err := axon.NewFactory(lifetime, service, slot, factory)
	if err != nil {
		tb.Fatalf("NewFactory(%s): %v", service, err)
	}
	return cs
}

// serviceTable builds the logger -> database -> repository graph with every
// node at the given lifetime.
func serviceTable(tb testing.TB, lifetime axon.Lifetime) *axon.CallSiteTable {
	tb.Helper()
	logger := mustConstructor(tb, lifetime, keyOf[*mock.Logger](), 0, mock.NewLogger)
	db := mustConstructor(tb, lifetime, keyOf[*mock.Database](), 0, mock.NewDatabase, logger)
	repo := mustConstructor(tb, lifetime, keyOf[*mock.Repository](), 0, mock.NewRepository, db, logger)

	table := axon.NewCallSiteTable()
	table.Add(logger)
	table.Add(db)
	table.Add(repo)
	return table
}

// connTable builds a single *mock.Conn registration at the given lifetime,
// wired to a recorder.
func connTable(tb testing.TB, lifetime axon.Lifetime, rec *mock.CloseRecorder, name string) *axon.CallSiteTable {
	tb.Helper()
	conn := mustConstructor(tb, lifetime, keyOf[*mock.Conn](), 0, mock.ConnFactory(name, rec))
	table := axon.NewCallSiteTable()
	table.Add(conn)
	return table
}

// countObserver records every teardown report it receives.
type countObserver struct {
	mu    sync.Mutex
	stats []axon.TeardownStats
}

func (o *countObserver) ObserveTeardown(stats axon.TeardownStats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats = append(o.stats, stats)
}

func (o *countObserver) Stats() []axon.TeardownStats {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]axon.TeardownStats, len(o.stats))
	copy(out, o.stats)
	return out
}
