package engine

import (
	"context"
	"fmt"

	"github.com/vk/systemic/internal/ctxlog"
	"github.com/vk/systemic/internal/depgraph"
	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/syserr"
	"github.com/vk/systemic/internal/sysval"
)

// Hooks are the two process-wide, mutable slots the runtime exposes to its
// caller: Trace receives a human-readable message at every can-run decision, and
// ExceptionHandler is given the system and the error the moment a handler
// fails or a neighbor-status precondition is not met; its return value is
// the system Run returns. Both default to the spec's stated defaults when left nil:
// Trace is silent, ExceptionHandler logs and returns the system unchanged.
type Hooks struct {
	Trace            func(message string)
	ExceptionHandler func(sys *depgraph.System, err error) *depgraph.System
}

func (h Hooks) trace(message string) {
	if h.Trace != nil {
		h.Trace(message)
	}
}

func (h Hooks) exception(ctx context.Context, sys *depgraph.System, err error) *depgraph.System {
	if h.ExceptionHandler != nil {
		return h.ExceptionHandler(sys, err)
	}
	ctxlog.FromContext(ctx).Error("engine: unhandled action exception", "error", err)
	return sys
}

// Run is run-action(system, ordered-paths, transition) (§4.7): it walks
// order, applying the can-run check, the neighbor-status check, reference
// substitution, and the handler invocation to each Component in turn,
// mutating sys.Components in place. It stops at the first error encountered
// — an unsatisfied neighbor-status precondition, or a handler's own
// ActionError — leaving already-completed paths with their new statuses and
// values. The returned System is whatever the exception-handler hook
// decided it should be; by default that is sys itself, unchanged beyond
// what already ran.
func Run(ctx context.Context, sys *depgraph.System, reg Registry, order []path.Path, transition Transition, hooks Hooks) (*depgraph.System, error) {
	logger := ctxlog.FromContext(ctx)

	for _, p := range order {
		id := p.String()
		comp, ok := sys.Components[id]
		if !ok {
			return sys, &syserr.UnknownComponentError{Path: id}
		}

		if !canRunOnStatus[transition].allows(comp.Status) {
			hooks.trace(fmt.Sprintf("skip %s: transition %s not valid from status %s", id, transition, comp.Status))
			logger.Debug("engine: skipping path, can-run check failed", "path", id, "transition", transition.String(), "status", comp.Status.String())
			continue
		}
		hooks.trace(fmt.Sprintf("run %s: transition %s from status %s", id, transition, comp.Status))

		neighborErr := checkNeighborStatus(sys, id, transition, requiredDependencyStatus[transition], sys.Graph.Dependencies, syserr.DirectionDependency)
		if neighborErr == nil {
			neighborErr = checkNeighborStatus(sys, id, transition, requiredDependentStatus[transition], sys.Graph.Dependents, syserr.DirectionDependent)
		}
		if neighborErr != nil {
			actionErr := &syserr.ActionError{Action: transition.String(), Path: id, Cause: neighborErr}
			logger.Debug("engine: neighbor-status check failed", "path", id, "transition", transition.String(), "error", neighborErr)
			return hooks.exception(ctx, sys, actionErr), actionErr
		}

		resolvedConfig, err := substitute(sys, p, comp.Config)
		if err != nil {
			return sys, err
		}

		handlerSet, ok := reg.Lookup(comp.Kind)
		if !ok {
			return sys, &syserr.InvalidConfigError{Reason: fmt.Sprintf("no handlers registered for kind %q (path %q)", comp.Kind, id)}
		}
		handler := handlerSet.Resolved(transition, comp.Value)
		if handler == nil {
			return sys, &syserr.InvalidConfigError{Reason: fmt.Sprintf("kind %q has no init-node handler (path %q)", comp.Kind, id)}
		}

		enriched := make(map[string]any, len(resolvedConfig)+2)
		for k, v := range resolvedConfig {
			enriched[k] = v
		}
		enriched["system"] = sys
		enriched["path"] = p
		enriched["value"] = comp.Value

		value, err := invokeHandler(ctx, handler, enriched)
		if err != nil {
			actionErr := &syserr.ActionError{Action: transition.String(), Path: id, Cause: err}
			logger.Error("engine: handler failed", "path", id, "transition", transition.String(), "error", err)
			return hooks.exception(ctx, sys, actionErr), actionErr
		}

		comp.Status = targetStatus[transition]
		comp.Value = value
		logger.Debug("engine: transitioned path", "path", id, "transition", transition.String(), "status", comp.Status.String())
	}

	return sys, nil
}

// invokeHandler calls handler and recovers any panic it raises, converting
// it into an error the same way handler(ctx, enriched) returning one would
// be — so a panicking handler still produces an ActionError through the
// ordinary exception-handler path instead of taking the whole process down
// with it.
func invokeHandler(ctx context.Context, handler HandlerFunc, enriched map[string]any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler(ctx, enriched)
}

func checkNeighborStatus(sys *depgraph.System, id string, transition Transition, allowed statusSet, neighbors func(string) ([]string, error), dir syserr.NeighborDirection) error {
	if allowed == nil {
		return nil
	}
	ids, err := neighbors(id)
	if err != nil {
		return err
	}
	for _, nid := range ids {
		if nid == depgraph.Root.String() {
			continue
		}
		neighbor, ok := sys.Components[nid]
		if !ok {
			continue
		}
		if !allowed.allows(neighbor.Status) {
			return &syserr.WrongNeighborStatusError{
				Path:      id,
				Neighbor:  nid,
				Direction: dir,
				Status:    neighbor.Status.String(),
			}
		}
	}
	return nil
}

// substitute returns a deep copy of config with every Ref replaced by the
// current value of its resolved target, and every directly-embedded nested
// Component replaced by its own value (§4.7 step 3).
func substitute(sys *depgraph.System, from path.Path, v any) (map[string]any, error) {
	out, err := substituteValue(sys, from, v)
	if err != nil {
		return nil, err
	}
	m, _ := out.(map[string]any)
	return m, nil
}

func substituteValue(sys *depgraph.System, from path.Path, v any) (any, error) {
	switch val := v.(type) {
	case sysval.Ref:
		target, err := depgraph.Resolve(sys, from, val.Key)
		if err != nil {
			return nil, err
		}
		return valueAt(sys, target), nil
	case *sysval.Component:
		return val.Value, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			resolved, err := substituteValue(sys, from, child)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			resolved, err := substituteValue(sys, from, child)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return val, nil
	}
}

func valueAt(sys *depgraph.System, p path.Path) any {
	raw, ok := sys.Flat[p.String()]
	if !ok {
		return nil
	}
	if comp, ok := raw.(*sysval.Component); ok {
		return comp.Value
	}
	return raw
}
