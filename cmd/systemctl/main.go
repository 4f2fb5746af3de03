// Command systemctl runs a single lifecycle transition over a component
// configuration tree loaded from one or more .hcl files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/systemic/internal/cli"
	"github.com/vk/systemic/internal/ctxlog"
	"github.com/vk/systemic/internal/engine"
	"github.com/vk/systemic/internal/hclfrontend"
	"github.com/vk/systemic/internal/registry"
	"github.com/vk/systemic/internal/runtime"
	"github.com/vk/systemic/modules/httpclientkind"
	"github.com/vk/systemic/modules/httprequestkind"
	"github.com/vk/systemic/modules/identitykind"
	"github.com/vk/systemic/modules/socketkind"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := cli.NewLogger(cfg, os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	tree, err := hclfrontend.Load(ctx, cfg.ConfigPath)
	if err != nil {
		return err
	}

	reg := registry.New()
	identitykind.Register(reg)
	httpclientkind.Register(reg)
	httprequestkind.Register(reg)
	socketkind.Register(reg)

	hooks := engine.Hooks{
		Trace: func(message string) { logger.Debug(message) },
	}

	sys, err := runtime.New(tree, reg, hooks)
	if err != nil {
		return fmt.Errorf("systemctl: failed to build system: %w", err)
	}

	switch cfg.Transition {
	case cli.TransitionInit:
		err = sys.Init(ctx, cfg.Targets...)
	case cli.TransitionHalt:
		err = sys.Halt(ctx, cfg.Targets...)
	case cli.TransitionSuspend:
		err = sys.Suspend(ctx, cfg.Targets...)
	case cli.TransitionResume:
		err = sys.Resume(ctx, cfg.Targets...)
	case cli.TransitionResumeOrInit:
		err = sys.ResumeOrInit(ctx, cfg.Targets...)
	default:
		return fmt.Errorf("systemctl: unhandled transition %q", cfg.Transition)
	}
	if err != nil {
		return fmt.Errorf("systemctl: %s failed: %w", cfg.Transition, err)
	}

	logger.Info("systemctl: transition complete", "transition", cfg.Transition)
	return nil
}
