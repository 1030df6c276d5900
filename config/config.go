// Package config implements the Configuration object (§6): the set of
// recognized planner options, bound from environment/a `planner.yaml`
// file via Viper (env > file > defaults; CLI flags set only the timeout
// and directories), grounded
// on niceyeti-tabular/tabular/reinforcement/learning.go's FromYaml), with
// a functional-options constructor layered on top for programmatic
// construction in tests, matching the teacher's Option/XOptions idiom
// (e.g. dijkstra.Option / dijkstra.Options).
package config

import (
	"errors"
	"fmt"
	"time"
)

// CSPModel selects the granularity of CSP handlers (§6).
type CSPModel int

const (
	// EffectSchemaCSP builds one handler per (action schema, effect) pair
	// — the only granularity this repository's csp.Handler implements
	// (§3 "CSP Handler... One per action schema or per effect").
	EffectSchemaCSP CSPModel = iota
	// ActionSchemaCSP would build one handler per whole action schema,
	// solving its full precondition formula (not just per-effect atoms)
	// as a single CSP. Recognized for configuration-surface completeness
	// but rejected by Validate, see ErrUnsupportedApproximateFormula.
	ActionSchemaCSP
	// GroundActionCSP would build one handler per fully-ground action
	// instance. Same rejection as ActionSchemaCSP.
	GroundActionCSP
)

func (m CSPModel) String() string {
	switch m {
	case EffectSchemaCSP:
		return "EffectSchemaCSP"
	case ActionSchemaCSP:
		return "ActionSchemaCSP"
	case GroundActionCSP:
		return "GroundActionCSP"
	default:
		return fmt.Sprintf("CSPModel(%d)", int(m))
	}
}

// Heuristic selects the relaxed-plan cost variant (§6).
type Heuristic int

const (
	HFF Heuristic = iota
	HMax
)

func (h Heuristic) String() string {
	switch h {
	case HFF:
		return "h_ff"
	case HMax:
		return "h_max"
	default:
		return fmt.Sprintf("Heuristic(%d)", int(h))
	}
}

// ErrUnsupportedApproximateFormula is returned by Validate when CSPModel
// requests action-schema- or ground-action-granularity CSP solving: that
// granularity requires solving a whole precondition formula (not just
// per-effect atoms) as one CSP, the "approximate formula support" the
// Open Questions (spec.md §9) mark as "needs to be rethought" and left
// unimplemented in original_source. Per spec.md's explicit instruction,
// this fails cleanly at startup instead of silently degrading to
// per-effect handlers under the hood.
var ErrUnsupportedApproximateFormula = errors.New("config: action-schema/ground-action CSP granularity requires approximate formula support, which is not implemented")

// ErrUnknownCSPModel and ErrUnknownHeuristic are input-validation errors
// (§7) surfaced when a YAML/flag value doesn't name a recognized enum
// member.
var (
	ErrUnknownCSPModel  = errors.New("config: unrecognized csp_model value")
	ErrUnknownHeuristic = errors.New("config: unrecognized heuristic value")
)

// Config is the fully-resolved set of recognized planner options (§6).
type Config struct {
	CSPModel                    CSPModel
	UseNoveltyConstraint        bool
	ApproximateActionResolution bool
	UseMinHMaxValueSelector     bool
	Heuristic                   Heuristic

	Timeout time.Duration
	DataDir string
	OutDir  string
}

// Option configures a Config at construction, the teacher's functional-
// options idiom (dijkstra.Option, bfs.Option) applied to this repository's
// own configuration surface.
type Option func(*Config)

func WithCSPModel(m CSPModel) Option         { return func(c *Config) { c.CSPModel = m } }
func WithNoveltyConstraint(b bool) Option    { return func(c *Config) { c.UseNoveltyConstraint = b } }
func WithApproximateActionResolution(b bool) Option {
	return func(c *Config) { c.ApproximateActionResolution = b }
}
func WithMinHMaxValueSelector(b bool) Option { return func(c *Config) { c.UseMinHMaxValueSelector = b } }
func WithHeuristic(h Heuristic) Option       { return func(c *Config) { c.Heuristic = h } }
func WithTimeout(d time.Duration) Option     { return func(c *Config) { c.Timeout = d } }
func WithDataDir(dir string) Option          { return func(c *Config) { c.DataDir = dir } }
func WithOutDir(dir string) Option           { return func(c *Config) { c.OutDir = dir } }

// Default returns the Configuration object's documented defaults (§6):
// EffectSchemaCSP granularity, no novelty constraint, full (non-
// approximate) action resolution, first-handler-wins support selection,
// h_ff, a 10 second timeout, `data` input, `.` output.
func Default() Config {
	return Config{
		CSPModel: EffectSchemaCSP,
		Heuristic: HFF,
		Timeout:  10 * time.Second,
		DataDir:  "data",
		OutDir:   ".",
	}
}

// New builds a Config from Default() plus opts, in order.
func New(opts ...Option) Config {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate checks the assembled Config against the constraints spec.md
// requires failing at startup rather than silently degrading (§7
// "Unsupported feature").
func (c Config) Validate() error {
	if c.CSPModel != EffectSchemaCSP {
		return fmt.Errorf("%w: got %s", ErrUnsupportedApproximateFormula, c.CSPModel)
	}
	return nil
}
