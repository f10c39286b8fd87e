package axon

// Lifetime defines how long a resolved instance is shared.
type Lifetime string

// Available service lifetimes
const (
	// LifetimeTransient creates a new instance for each resolution.
	LifetimeTransient Lifetime = "transient"
	// LifetimeScoped shares an instance within a single scope.
	LifetimeScoped Lifetime = "scoped"
	// LifetimeSingleton shares a single instance across the container.
	LifetimeSingleton Lifetime = "singleton"
)
