package axon

import (
	"fmt"
	"reflect"
)

// CacheLocation tells a resolution engine where, if anywhere, the result of
// a call-site is cached.
type CacheLocation byte

const (
	// CacheRoot caches the instance in the container's root scope.
	CacheRoot CacheLocation = iota
	// CacheScope caches the instance in the requesting scope.
	CacheScope
	// CacheDispose skips the cache but still captures disposable instances
	// in the requesting scope.
	CacheDispose
	// CacheNone skips both caching and disposal capture.
	CacheNone
)

func (l CacheLocation) String() string {
	switch l {
	case CacheRoot:
		return "root"
	case CacheScope:
		return "scope"
	case CacheDispose:
		return "dispose"
	case CacheNone:
		return "none"
	default:
		return "unknown"
	}
}

// ServiceKey identifies one service contract: the requested type plus an
// optional discriminator for keyed registrations. Key must be comparable;
// a nil Key means the unkeyed registration.
type ServiceKey struct {
	Type reflect.Type
	Key  any
}

func (k ServiceKey) String() string {
	if k.Key == nil {
		return fmt.Sprintf("%v", k.Type)
	}
	return fmt.Sprintf("%v(%v)", k.Type, k.Key)
}

// CacheKey indexes one cacheable call-site within a scope's resolved map.
// Slot disambiguates multiple call-sites for the same service identity,
// such as the elements of a slice call-site.
type CacheKey struct {
	Service ServiceKey
	Slot    int
}

// ResultCache pairs a cache location with the key used at that location.
// It is fixed when the call-site is built and never mutated.
type ResultCache struct {
	Location CacheLocation
	Key      CacheKey
}

var noneResultCache = ResultCache{Location: CacheNone}

func newResultCache(lifetime Lifetime, service ServiceKey, slot int) ResultCache {
	loc := CacheNone
	switch lifetime {
	case LifetimeSingleton:
		loc = CacheRoot
	case LifetimeScoped:
		loc = CacheScope
	case LifetimeTransient:
		loc = CacheDispose
	}
	return ResultCache{Location: loc, Key: CacheKey{Service: service, Slot: slot}}
}
