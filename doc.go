// Package axon is the resolution core of a dependency injection container.
//
// Axon consumes a finalized call-site graph, an immutable description of
// how each service is constructed that a registration layer produces and
// validates, and turns it into running instances on demand. Instances are
// cached according to their lifetime, tracked for disposal, and torn down
// deterministically when their owning scope closes.
//
// # Resolution
//
// A [Container] is built over a [CallSiteTable] and dispatches every
// resolution through one of two interchangeable engines: the interpreting
// engine walks the call-site tree on each call, while the compiling engine
// specializes each tree once into nested closures. Both are behaviorally
// identical; the compiled form trades a one-time build cost for cheaper
// repeated resolutions.
//
//	c := axon.New(table, axon.WithEngine(axon.NewCompileEngine()))
//	repo, err := axon.GetRequired[*Repository](c)
//
// # Lifetimes
//
// [LifetimeSingleton] instances are cached once in the container's root
// scope. [LifetimeScoped] instances are cached once per [Scope].
// [LifetimeTransient] instances are never cached, but disposable ones are
// still captured by the requesting scope.
//
//	scope, _ := c.CreateScope()
//	defer scope.Close()
//	svc, err := axon.GetRequired[*RequestService](scope)
//
// # Disposal
//
// A scope releases everything it captured in reverse registration order,
// either synchronously through Close (io.Closer only) or asynchronously
// through CloseAsync (preferring [AsyncDisposable]). Disposing the
// container disposes its root scope and vice versa.
package axon
