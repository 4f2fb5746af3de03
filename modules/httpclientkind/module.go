// Package httpclientkind registers the "net/httpclient" Kind: a stateful
// *http.Client Component whose init-node dials nothing but configures
// pooling and timeouts, and whose halt-node closes idle connections rather
// than leaving them to the garbage collector.
package httpclientkind

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/systemic/internal/ctxlog"
	"github.com/vk/systemic/internal/engine"
	"github.com/vk/systemic/internal/registry"
)

// Kind is the namespaced identifier configuration authors write to get an
// *http.Client Component.
const Kind = "net/httpclient"

// Init builds and returns a pooled *http.Client. The "timeout" config field
// is a Go duration string (e.g. "30s"); it defaults to 30 seconds when
// absent.
func Init(ctx context.Context, resolvedConfig map[string]any) (any, error) {
	timeout := 30 * time.Second
	if raw, ok := resolvedConfig["timeout"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("httpclientkind: timeout must be a duration string, got %T", raw)
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("httpclientkind: invalid timeout: %w", err)
		}
		timeout = parsed
	}

	ctxlog.FromContext(ctx).Debug("httpclientkind: creating client", "timeout", timeout)

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	return client, nil
}

// Halt closes idle connections held by the existing client and returns it
// unchanged; a halted client is inert but its zero-value state is still a
// valid *http.Client callers may later resume.
func Halt(ctx context.Context, resolvedConfig map[string]any) (any, error) {
	existing, _ := resolvedConfig["value"].(*http.Client)
	if existing == nil {
		return nil, nil
	}
	ctxlog.FromContext(ctx).Debug("httpclientkind: closing idle connections")
	existing.CloseIdleConnections()
	return existing, nil
}

// Register wires the net/httpclient Kind's handler set into r.
func Register(r *registry.Registry) {
	r.Register(Kind, engine.HandlerSet{Init: Init, Halt: Halt})
}
