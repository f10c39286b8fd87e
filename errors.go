package axon

import "fmt"

// DisposedError represents an operation attempted on a scope or container
// after its teardown.
type DisposedError struct {
	Scope string
}

func (e *DisposedError) Error() string {
	return fmt.Sprintf("cannot use %s after disposal", e.Scope)
}

// ServiceNotFoundError represents a required service with no call-site in
// the container's table.
type ServiceNotFoundError struct {
	Service ServiceKey
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("no call-site registered for service: %s", e.Service)
}

// SyncDisposalError represents an async-only disposable reached by the
// synchronous teardown path.
type SyncDisposalError struct {
	Type string
}

func (e *SyncDisposalError) Error() string {
	return fmt.Sprintf("type %s implements only asynchronous disposal and cannot be released by Close; use CloseAsync", e.Type)
}

// InvalidCallSiteError represents a malformed call-site handed to a
// constructor or engine.
type InvalidCallSiteError struct {
	Service ServiceKey
	Reason  string
}

func (e *InvalidCallSiteError) Error() string {
	return fmt.Sprintf("invalid call-site for %s: %s", e.Service, e.Reason)
}
