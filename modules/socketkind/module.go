// Package socketkind registers the "net/socketclient" Kind: a stateful
// socket.io client Component whose init-node dials out and blocks until the
// connection handshake succeeds or fails, and whose halt-node disconnects
// it. It is the runtime's example of a Component whose init-node does real,
// blocking I/O rather than constructing an inert value.
package socketkind

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/systemic/internal/ctxlog"
	"github.com/vk/systemic/internal/engine"
	"github.com/vk/systemic/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Kind is the namespaced identifier configuration authors write to get a
// socket.io client Component.
const Kind = "net/socketclient"

// connectTimeout bounds how long Init waits for the handshake before
// giving up; the engine itself has no timeout mechanism, so a Kind
// that does blocking I/O must bound it itself.
const connectTimeout = 15 * time.Second

// Init dials the socket.io server named by the "url" config field, waits
// for the connection to complete, and returns the live *socket.Socket. A
// "namespace" field selects the socket.io namespace (default "/"), and an
// "insecure_skip_verify" boolean disables TLS certificate verification.
func Init(ctx context.Context, resolvedConfig map[string]any) (any, error) {
	logger := ctxlog.FromContext(ctx)

	rawURL, _ := resolvedConfig["url"].(string)
	if rawURL == "" {
		return nil, fmt.Errorf("socketkind: url config field is required")
	}
	namespace, _ := resolvedConfig["namespace"].(string)
	insecure, _ := resolvedConfig["insecure_skip_verify"].(bool)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("socketkind: failed to parse url: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if insecure {
		logger.Warn("socketkind: skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	client := manager.Socket(namespace, opts)

	connected := make(chan error, 1)
	client.Once(types.EventName("connect"), func(...any) {
		logger.Debug("socketkind: connect event fired", "sid", client.Id())
		connected <- nil
	})
	client.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		connected <- err
	})

	logger.Debug("socketkind: connecting", "url", rawURL, "namespace", namespace)
	client.Connect()

	select {
	case err := <-connected:
		if err != nil {
			client.Disconnect()
			return nil, fmt.Errorf("socketkind: connection failed: %w", err)
		}
		return client, nil
	case <-ctx.Done():
		client.Disconnect()
		return nil, fmt.Errorf("socketkind: context cancelled while connecting: %w", ctx.Err())
	case <-time.After(connectTimeout):
		client.Disconnect()
		return nil, fmt.Errorf("socketkind: timed out after %s waiting to connect", connectTimeout)
	}
}

// Halt disconnects the existing client.
func Halt(ctx context.Context, resolvedConfig map[string]any) (any, error) {
	existing, _ := resolvedConfig["value"].(*socket.Socket)
	if existing == nil {
		return nil, nil
	}
	ctxlog.FromContext(ctx).Debug("socketkind: disconnecting", "sid", existing.Id())
	existing.Disconnect()
	return existing, nil
}

// Register wires the net/socketclient Kind's handler set into r.
func Register(r *registry.Registry) {
	r.Register(Kind, engine.HandlerSet{Init: Init, Halt: Halt})
}
