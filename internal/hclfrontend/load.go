package hclfrontend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/systemic/internal/ctxlog"
)

// Load parses every .hcl file found under the given paths (files or
// directories, walked recursively) and merges their top-level attributes
// into a single generic tree — the same shape sysconfig.Expand consumes.
// A later file's top-level key overwrites an earlier one's on collision;
// Load does not attempt to merge colliding namespaced blocks itself, since
// that ambiguity belongs to the author, not the frontend.
func Load(ctx context.Context, paths ...string) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("hclfrontend: discovered configuration files", "count", len(files))

	parser := hclparse.NewParser()
	out := make(map[string]any)
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("hclfrontend: failed to parse %s: %w", file, diags)
		}
		if err := evalAttributesInto(hclFile.Body, file, out); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// LoadString parses a single, already-in-memory HCL document — used mainly
// by tests and by callers embedding configuration rather than reading it
// from disk.
func LoadString(src []byte, filename string) (map[string]any, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclfrontend: failed to parse %s: %w", filename, diags)
	}

	out := make(map[string]any)
	if err := evalAttributesInto(hclFile.Body, filename, out); err != nil {
		return nil, err
	}
	return out, nil
}

func evalAttributesInto(body hcl.Body, filename string, out map[string]any) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("hclfrontend: failed to read attributes in %s: %w", filename, diags)
	}

	evalCtx := &hcl.EvalContext{Functions: Functions()}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return fmt.Errorf("hclfrontend: failed to evaluate %s in %s: %w", name, filename, diags)
		}
		native, err := ToNative(val)
		if err != nil {
			return fmt.Errorf("hclfrontend: %s in %s: %w", name, filename, err)
		}
		out[name] = native
	}
	return nil
}

func findHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("hclfrontend: cannot access %s: %w", p, err)
		}

		if info.IsDir() {
			err := filepath.Walk(p, func(walked string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(walked) == ".hcl" {
					if _, ok := seen[walked]; !ok {
						all = append(all, walked)
						seen[walked] = struct{}{}
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if filepath.Ext(p) == ".hcl" {
			if _, ok := seen[p]; !ok {
				all = append(all, p)
				seen[p] = struct{}{}
			}
		}
	}
	return all, nil
}
