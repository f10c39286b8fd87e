// Package mock provides test doubles shared by the axon test suites.
package mock

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/centraunit/axon"
)

// CloseRecorder collects the order in which doubles are released.
type CloseRecorder struct {
	mu    sync.Mutex
	order []string
}

func (r *CloseRecorder) Record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, name)
}

func (r *CloseRecorder) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Conn is a synchronously disposable double.
type Conn struct {
	Name     string
	Recorder *CloseRecorder
	CloseErr error

	mu         sync.Mutex
	closeCount int
}

func (c *Conn) Close() error {
	c.mu.Lock()
	c.closeCount++
	c.mu.Unlock()
	if c.Recorder != nil {
		c.Recorder.Record(c.Name)
	}
	return c.CloseErr
}

func (c *Conn) CloseCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeCount
}

func (c *Conn) Closed() bool {
	return c.CloseCount() > 0
}

// ConnFactory returns a constructor producing named Conns: name#1, name#2,
// and so on, in creation order.
func ConnFactory(name string, rec *CloseRecorder) func() *Conn {
	var n atomic.Int64
	return func() *Conn {
		return &Conn{Name: fmt.Sprintf("%s#%d", name, n.Add(1)), Recorder: rec}
	}
}

// AsyncConn exposes only the asynchronous disposal path. Delay simulates
// teardown work that does not complete immediately.
type AsyncConn struct {
	Name     string
	Recorder *CloseRecorder
	Delay    time.Duration
	CloseErr error

	mu         sync.Mutex
	closeCount int
}

func (c *AsyncConn) CloseAsync() <-chan error {
	done := make(chan error, 1)
	go func() {
		if c.Delay > 0 {
			time.Sleep(c.Delay)
		}
		c.mu.Lock()
		c.closeCount++
		c.mu.Unlock()
		if c.Recorder != nil {
			c.Recorder.Record(c.Name)
		}
		done <- c.CloseErr
	}()
	return done
}

func (c *AsyncConn) CloseCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeCount
}

func (c *AsyncConn) Closed() bool {
	return c.CloseCount() > 0
}

// DualConn supports both disposal paths and records which one ran.
type DualConn struct {
	Name     string
	Recorder *CloseRecorder

	mu         sync.Mutex
	syncCalls  int
	asyncCalls int
}

func (c *DualConn) Close() error {
	c.mu.Lock()
	c.syncCalls++
	c.mu.Unlock()
	if c.Recorder != nil {
		c.Recorder.Record(c.Name)
	}
	return nil
}

func (c *DualConn) CloseAsync() <-chan error {
	c.mu.Lock()
	c.asyncCalls++
	c.mu.Unlock()
	if c.Recorder != nil {
		c.Recorder.Record(c.Name)
	}
	done := make(chan error, 1)
	done <- nil
	return done
}

func (c *DualConn) SyncCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncCalls
}

func (c *DualConn) AsyncCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.asyncCalls
}

// Service graph doubles.

type Logger struct {
	Level string
}

func NewLogger() *Logger { return &Logger{Level: "info"} }

type Database struct {
	Log *Logger
}

func NewDatabase(log *Logger) *Database { return &Database{Log: log} }

type Repository struct {
	DB  *Database
	Log *Logger
}

func NewRepository(db *Database, log *Logger) *Repository {
	return &Repository{DB: db, Log: log}
}

// Handler depends on the provider itself and resolves lazily through it.
type Handler struct {
	R axon.Resolver
}

func NewHandler(r axon.Resolver) *Handler { return &Handler{R: r} }
