// Package httprequestkind registers the "net/http-request" Kind: a
// Component whose config names another Component's resolved value (a
// *http.Client produced by modules/httpclientkind) via a Ref, and whose
// init-node issues one request through it. It is this runtime's grounded
// example of the dependency-chain scenario the spec's scoring properties
// describe: a Component's value is only computed once everything it
// depends on is already init'd, so by the time this Kind's init-node runs,
// "client" in its resolved config is already a live *http.Client, not a
// Ref.
package httprequestkind

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vk/systemic/internal/ctxlog"
	"github.com/vk/systemic/internal/engine"
	"github.com/vk/systemic/internal/registry"
)

// Kind is the namespaced identifier configuration authors write to issue a
// request through a previously-initialized httpclientkind Component.
const Kind = "net/http-request"

// Init issues a GET (or the configured "method") against "url" using the
// *http.Client found at "client" — conventionally a Ref into a
// "net/httpclient" Component's value — and returns the response status
// code and body as a map. "method" defaults to "GET".
func Init(ctx context.Context, resolvedConfig map[string]any) (any, error) {
	client, ok := resolvedConfig["client"].(*http.Client)
	if !ok {
		return nil, fmt.Errorf("httprequestkind: \"client\" must resolve to a *http.Client, got %T", resolvedConfig["client"])
	}

	url, ok := resolvedConfig["url"].(string)
	if !ok || url == "" {
		return nil, fmt.Errorf("httprequestkind: \"url\" must be a non-empty string")
	}

	method := http.MethodGet
	if raw, ok := resolvedConfig["method"]; ok {
		m, ok := raw.(string)
		if !ok || m == "" {
			return nil, fmt.Errorf("httprequestkind: \"method\" must be a non-empty string, got %T", raw)
		}
		method = m
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("httprequestkind: building request: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("httprequestkind: issuing request", "method", method, "url", url)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httprequestkind: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httprequestkind: reading response body: %w", err)
	}

	return map[string]any{
		"status": resp.StatusCode,
		"body":   string(body),
	}, nil
}

// Register wires the net/http-request Kind's handler set into r. Halt,
// Suspend, and Resume are left nil: a completed request has no standing
// resource of its own to release, so the engine's default delegation
// (identity, halt, init) is exactly the right behavior.
func Register(r *registry.Registry) {
	r.Register(Kind, engine.HandlerSet{Init: Init})
}
