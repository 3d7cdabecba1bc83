// Package publish streams history snapshots to a socket.io server so live
// dashboards can follow a running simulation.
package publish

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/vk/wetware/internal/ctxlog"
	"github.com/vk/wetware/internal/history"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// SnapshotEvent is the event name every snapshot is emitted under.
const SnapshotEvent = "snapshot"

// DefaultConnectTimeout bounds how long Connect waits for the handshake.
const DefaultConnectTimeout = 15 * time.Second

// Publisher emits snapshots over one socket.io connection.
type Publisher struct {
	mu     sync.Mutex
	io     *socket.Socket
	closed bool
}

// Options configures Connect.
type Options struct {
	Namespace string
	Timeout   time.Duration
}

// parseEndpoint splits rawURL into the manager base URL and the engine.io path.
func parseEndpoint(rawURL string) (string, string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", "", fmt.Errorf("publish URL %q must include a scheme and host", rawURL)
	}
	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host), parsed.Path, nil
}

// Connect dials the server at rawURL over websocket and waits until the
// namespace is joined, the context ends, or the timeout expires.
func Connect(ctx context.Context, rawURL string, o Options) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("url", rawURL, "namespace", o.Namespace)

	baseURL, path, err := parseEndpoint(rawURL)
	if err != nil {
		return nil, err
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	opts := socket.DefaultOptions()
	if path != "" {
		opts.SetPath(path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(o.Namespace, opts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Snapshot publisher connected.", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", errs[0])
			}
		}
		connected <- err
	})

	logger.Debug("Connecting snapshot publisher...")
	io.Connect()

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Publisher{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// Publish emits snap as a SnapshotEvent. It fails after Close.
func (p *Publisher) Publish(snap history.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("publisher is closed")
	}
	p.io.Emit(SnapshotEvent, snap)
	return nil
}

// Close disconnects from the server. Further calls are no-ops.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.io.Disconnect()
	return nil
}
