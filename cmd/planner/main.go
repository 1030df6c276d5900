// Command planner is the CLI wrapper (§6) wiring the Problem Index
// through the Search Harness (§2's dependency order A→H): it loads a
// problem document, builds one csp.Handler per (action, non-delete
// effect), constructs a heuristic.Driver, runs GBFS keyed by that
// Driver's h, and writes searchlog.out/plan.ipc. Grounded on
// niceyeti-tabular/tabular/main.go's flag-based init()/runApp() split,
// adapted to this repository's exit-code policy (§7) instead of that
// example's "print and fall through" handling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/fsplanner/config"
	"github.com/katalvlaran/fsplanner/csp"
	"github.com/katalvlaran/fsplanner/heuristic"
	"github.com/katalvlaran/fsplanner/problemio"
	"github.com/katalvlaran/fsplanner/search"
	"github.com/katalvlaran/fsplanner/state"
)

// Exit codes per §6/§7.
const (
	exitPlanFound     = 0
	exitInvalidArgs   = 1
	exitNoPlanTimeout = 2
	exitInternal      = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	timeout := fs.Duration("timeout", 10*time.Second, "wall-clock search timeout")
	dataDir := fs.String("data", "data", "input directory (expects problem.yaml and an optional planner.yaml)")
	outDir := fs.String("out", ".", "output directory for searchlog.out and plan.ipc")
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitPlanFound
		}
		return exitInvalidArgs
	}

	cfg, err := config.Load(*dataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}
	cfg.Timeout = *timeout
	cfg.DataDir = *dataDir
	cfg.OutDir = *outDir

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}

	return plan(cfg)
}

// plan is the runApp() analogue: loads the problem, wires A→H, searches,
// and writes the two output artifacts.
func plan(cfg config.Config) int {
	probPath := filepath.Join(cfg.DataDir, "problem.yaml")
	prob, err := problemio.Load(probPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidArgs
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternal
	}

	goalHandler := csp.NewGoalHandler(prob.Goal, prob.Index)
	handlers, err := buildHandlers(prob, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternal
	}

	var driverOpts []heuristic.Option
	if cfg.UseMinHMaxValueSelector {
		driverOpts = append(driverOpts, heuristic.WithMinHMaxValueSelector())
	}
	variant := heuristic.FF
	if cfg.Heuristic == config.HMax {
		variant = heuristic.HMax
	}
	driver, err := heuristic.NewDriver(prob.Index, handlers, goalHandler, variant, driverOpts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternal
	}

	model := search.NewGroundedModel(prob.Index, prob.Actions, prob.Initial, prob.Goal)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	hfunc := func(s state.State) (int, error) { return driver.Evaluate(ctx, s) }

	runID := uuid.New().String()

	start := time.Now()
	result, searchErr := search.GBFS(ctx, model, hfunc)
	elapsed := time.Since(start)

	return finish(prob, cfg, result, searchErr, elapsed, runID)
}

func finish(prob *problemio.Problem, cfg config.Config, result *search.Result, searchErr error, elapsed time.Duration, runID string) int {
	logPath := filepath.Join(cfg.OutDir, "searchlog.out")
	ipcPath := filepath.Join(cfg.OutDir, "plan.ipc")

	if searchErr == nil {
		if err := problemio.WriteSearchLog(logPath, prob.Index, result.Plan, elapsed, result.NodesGenerated, result.NodesExpanded, runID); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitInternal
		}
		if err := problemio.WritePlanIPC(ipcPath, prob.Index, result.Plan); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitInternal
		}
		return exitPlanFound
	}

	if errors.Is(searchErr, search.ErrNoPlan) || errors.Is(searchErr, context.DeadlineExceeded) {
		if err := problemio.WriteUnsolvedLog(logPath, searchErr, elapsed, result.NodesGenerated, result.NodesExpanded, runID); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitInternal
		}
		return exitNoPlanTimeout
	}

	fmt.Fprintln(os.Stderr, searchErr)
	return exitInternal
}

// buildHandlers builds and propagates one csp.Handler per (action,
// non-delete effect) pair (§4.D; §6 csp_model EffectSchemaCSP, the only
// granularity config.Validate accepts). Delete-effects are skipped by
// csp.NewHandler itself (ErrDeleteEffectHandler).
func buildHandlers(prob *problemio.Problem, cfg config.Config) ([]*csp.Handler, error) {
	var out []*csp.Handler
	for ai, action := range prob.Actions {
		for ei, eff := range action.Effects {
			if eff.Delete {
				continue
			}
			id := fmt.Sprintf("%s#%d", action.Name, ei)
			h, err := csp.NewHandler(id, action, ei, prob.Index, cfg.ApproximateActionResolution)
			if err != nil {
				if errors.Is(err, csp.ErrDeleteEffectHandler) {
					continue
				}
				return nil, fmt.Errorf("cmd/planner: building handler for action %d effect %d: %w", ai, ei, err)
			}
			if cfg.UseNoveltyConstraint {
				h.EnableNoveltyConstraint()
			}
			if err := h.Index(); err != nil {
				return nil, fmt.Errorf("cmd/planner: indexing handler %q: %w", id, err)
			}
			if err := h.Propagate(); err != nil {
				return nil, fmt.Errorf("cmd/planner: propagating handler %q: %w", id, err)
			}
			out = append(out, h)
		}
	}
	return out, nil
}
