// Package rule exposes the high-level API for building a JsonLogic rule
// once and evaluating it, possibly many times, against different data.
package rule

import (
	"fmt"

	"github.com/jsonlogic-go/jsonlogic/ast"
	"github.com/jsonlogic-go/jsonlogic/metrics"
	"github.com/jsonlogic-go/jsonlogic/topdown"
)

// Rule is a built, immutable expression tree paired with the interner and
// variable-name table the builder produced for it. A Rule may be evaluated
// concurrently by multiple goroutines: each Apply variant gives its
// Evaluator a fresh scratch interner (see ast.Interner.Scratch) rather than
// sharing the rule's build-time interner, so concurrent evaluations never
// contend on the same string storage.
type Rule struct {
	root             *ast.Expr
	interner         *ast.Interner
	varNames         []string
	hasComputedNames bool
	extensions       bool
	sink             topdown.DiagnosticSink
	metrics          metrics.Metrics
}

// Option configures Build.
type Option func(*options)

type options struct {
	extensions bool
	sink       topdown.DiagnosticSink
	metrics    metrics.Metrics
}

// WithExtensions enables optional operators not in the base dispatch
// table, currently just regex.
func WithExtensions() Option {
	return func(o *options) { o.extensions = true }
}

// WithDiagnosticSink installs the sink log() reports evaluated values to.
// Without one, log() still returns its argument but discards it otherwise.
func WithDiagnosticSink(sink topdown.DiagnosticSink) Option {
	return func(o *options) { o.sink = sink }
}

// WithMetrics installs a metrics.Metrics collector: Build to time parsing,
// Apply variants to time evaluation and count the elements of the arrays
// sequence operators receive.
func WithMetrics(m metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Build parses ruleJSON (as produced by encoding/json.Unmarshal into
// interface{}, optionally via a Decoder with UseNumber) into a Rule. A
// malformed or unsupported rule is reported as an *ast.BuildError.
func Build(ruleJSON interface{}, opts ...Option) (*Rule, error) {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}
	var buildTimer metrics.Timer
	if cfg.metrics != nil {
		buildTimer = cfg.metrics.Timer(metrics.RuleBuild)
		buildTimer.Start()
	}
	result, err := ast.Build(ruleJSON, ast.BuildOptions{Extensions: cfg.extensions})
	if buildTimer != nil {
		buildTimer.Stop()
	}
	if err != nil {
		return nil, err
	}
	return &Rule{
		root:             result.Root,
		interner:         result.Interner,
		varNames:         result.VarNames,
		hasComputedNames: result.HasComputedNames,
		extensions:       cfg.extensions,
		sink:             cfg.sink,
		metrics:          cfg.metrics,
	}, nil
}

// VariableNames returns the rule's ordered, deduplicated table of
// build-time-literal variable names.
func (r *Rule) VariableNames() []string {
	names := make([]string, len(r.varNames))
	copy(names, r.varNames)
	return names
}

// HasComputedNames reports whether the rule contains a var whose name
// could not be resolved to a table position at build time, a name mixing
// "." and "[", or any missing/missing_some.
func (r *Rule) HasComputedNames() bool {
	return r.hasComputedNames
}

// Clone returns a Rule equivalent to r: the expression tree, interner, and
// variable-name table are immutable once built, so this is a shallow copy
// that shares them, evaluating identically to r for any accessor.
func (r *Rule) Clone() *Rule {
	clone := *r
	return &clone
}

// Apply evaluates the rule with no data context installed. It fails if
// evaluation touches any var, computed or not.
func (r *Rule) Apply() (ast.Value, error) {
	return r.apply(noAccessor{})
}

// ApplyWithAccessor evaluates the rule, resolving every var against
// accessor.
func (r *Rule) ApplyWithAccessor(accessor topdown.Accessor) (ast.Value, error) {
	return r.apply(accessor)
}

// ApplyPositional evaluates the rule against a table of values indexed by
// each var's precomputed table position. It requires HasComputedNames to
// be false: a rule with a dynamic or dotted/bracketed var name has no
// stable position to index by.
func (r *Rule) ApplyPositional(values []ast.Value) (ast.Value, error) {
	if r.hasComputedNames {
		return ast.Value{}, fmt.Errorf("rule has computed variable names; positional apply is unavailable")
	}
	return r.apply(positionalAccessor{values: values})
}

func (r *Rule) apply(accessor topdown.Accessor) (ast.Value, error) {
	var evalTimer metrics.Timer
	if r.metrics != nil {
		evalTimer = r.metrics.Timer(metrics.RuleEval)
		evalTimer.Start()
		defer evalTimer.Stop()
	}
	ev := &topdown.Evaluator{
		Interner:   r.interner.Scratch(),
		Accessor:   accessor,
		Extensions: r.extensions,
		Sink:       r.sink,
		Metrics:    r.metrics,
	}
	return ev.Eval(r.root)
}

// Apply is the package-level convenience described alongside Rule: it
// builds ruleJSON, installs a topdown.JSONAccessor over dataJSON, and
// evaluates in one call.
func Apply(ruleJSON, dataJSON interface{}, opts ...Option) (ast.Value, error) {
	r, err := Build(ruleJSON, opts...)
	if err != nil {
		return ast.Value{}, err
	}
	return r.ApplyWithAccessor(topdown.NewJSONAccessor(dataJSON))
}

// noAccessor backs the zero-argument Apply: any var touch is a hard
// failure rather than the recoverable resolution error missing/var
// otherwise catch, since there is no default data context to fail over to.
type noAccessor struct{}

func (noAccessor) Resolve(name ast.Value, _ int) (ast.Value, error) {
	return ast.Value{}, fmt.Errorf("var %s touched but Apply() was called with no accessor", name.String())
}

// positionalAccessor resolves a var by its precomputed table position
// rather than by name. The empty name (the "whole context" convention,
// see topdown.Accessor) has no positional equivalent for a single value,
// so it resolves to the array of all supplied values.
type positionalAccessor struct {
	values []ast.Value
}

func (a positionalAccessor) Resolve(name ast.Value, index int) (ast.Value, error) {
	if name.Kind() == ast.KindString && name.Str() == "" {
		whole := make([]ast.Value, len(a.values))
		copy(whole, a.values)
		return ast.Arr(whole), nil
	}
	if index < 0 || index >= len(a.values) {
		return ast.Value{}, topdown.NewVarResolutionError(name.String())
	}
	return a.values[index], nil
}
