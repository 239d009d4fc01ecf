package goAuthClient

import (
	"context"
	"sync"
	"time"

	"github.com/MrEthical07/goAuthClient/credstore"
	"github.com/MrEthical07/goAuthClient/transport"
)

// Client is the session state machine plus the API surface built on it.
// Construct through the [Builder]; the zero value is not usable.
type Client struct {
	cfg      Config
	store    *credstore.Store
	pipeline *transport.Pipeline
	nav      Navigator
	metrics  *Metrics
	audit    *auditDispatcher
	guard    *Guard

	mu    sync.Mutex
	state State
}

// Guard returns the client's auth guard.
func (c *Client) Guard() *Guard {
	return c.guard
}

// Metrics exposes the counter set for exporters.
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped reports audit events discarded by a full queue.
func (c *Client) AuditDropped() uint64 {
	return c.audit.Dropped()
}

// Close flushes and stops the audit dispatcher. The client must not be used
// afterwards.
func (c *Client) Close() {
	c.audit.Close()
}

// Token implements the pipeline's token source from in-memory state.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Token, nil
}

// do runs one request through the pipeline and feeds the latency histogram.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	start := time.Now()
	err := c.pipeline.Do(ctx, method, path, payload, out)
	c.metrics.Observe(MetricRequestLatency, time.Since(start))
	return err
}

// handleUnauthorized is the pipeline's eviction callback. The store purge is
// best effort; local state is authoritative for the running process.
func (c *Client) handleUnauthorized(ctx context.Context) {
	_ = c.store.Clear(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocalLocked()
}

func (c *Client) emit(ctx context.Context, event AuditEvent) {
	if c.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	c.audit.Emit(ctx, event)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
