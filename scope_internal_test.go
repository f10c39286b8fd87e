package axon

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type raceCloser struct {
	closeCount int
}

func (c *raceCloser) Close() error {
	c.closeCount++
	return nil
}

func TestBuildRaceLoserIsReleased(t *testing.T) {
	c := New(NewCallSiteTable())
	scope, err := c.CreateScope()
	assert.NoError(t, err)

	key := CacheKey{Service: ServiceKey{Type: reflect.TypeOf(&raceCloser{})}}
	winner := &raceCloser{}
	loser := &raceCloser{}

	// The build function installs a competing instance before returning,
	// the same interleaving as losing a concurrent insert-if-absent race.
	got, err := scope.cachedOrBuild(key, func(s *Scope) (any, error) {
		s.mu.Lock()
		s.resolved[key] = winner
		s.mu.Unlock()
		return loser, nil
	})
	assert.NoError(t, err)
	assert.Same(t, winner, got)
	assert.Equal(t, 1, loser.closeCount)
	assert.Zero(t, winner.closeCount)
}
