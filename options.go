package axon

import "go.uber.org/zap"

// Option configures a Container during construction.
type Option func(*Container)

// WithEngine selects the resolution engine. The default is the
// interpreting engine; prefer [NewCompileEngine] for services resolved many
// times, such as request-scoped workloads.
func WithEngine(e Engine) Option {
	return func(c *Container) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithObserver installs the teardown observer hook. The default observer
// discards every report.
func WithObserver(o TeardownObserver) Option {
	return func(c *Container) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger is shorthand for WithObserver(NewZapObserver(log)).
func WithLogger(log *zap.Logger) Option {
	return func(c *Container) {
		if log != nil {
			c.observer = NewZapObserver(log)
		}
	}
}
