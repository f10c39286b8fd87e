package axon

import "io"

// AsyncDisposable is the asynchronous counterpart of io.Closer. CloseAsync
// starts teardown and returns a channel that delivers the final error, or
// nil, exactly once when teardown has settled.
type AsyncDisposable interface {
	CloseAsync() <-chan error
}

// isDisposable reports whether v must be tracked by a scope.
func isDisposable(v any) bool {
	switch v.(type) {
	case io.Closer, AsyncDisposable:
		return true
	}
	return false
}

// closeFallback releases a value on the capture path of an already-disposed
// scope. The synchronous path is preferred; an async-only value is waited
// on synchronously. This is the only place the engine blocks on an
// asynchronous disposal.
func closeFallback(v any) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	if ad, ok := v.(AsyncDisposable); ok {
		return <-ad.CloseAsync()
	}
	return nil
}

// disposeEntry releases one captured entry on the asynchronous teardown
// path, preferring CloseAsync and falling back to Close. The receive is the
// suspension point between entries.
func disposeEntry(v any) error {
	if ad, ok := v.(AsyncDisposable); ok {
		return <-ad.CloseAsync()
	}
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
