package engine

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/calcpad/format"
	"github.com/ardnew/calcpad/lang"
	"github.com/ardnew/calcpad/log"
	"github.com/ardnew/calcpad/unit"
	"github.com/ardnew/calcpad/value"
)

// Engine evaluates calculator documents. An Engine holds no per-document
// state, so one Engine may evaluate many documents, including from several
// goroutines.
type Engine struct {
	clock  func() time.Time
	format *format.Formatter
	loc    *time.Location
	rates  map[string]float64
	logger log.Logger
	seed   []byte
	cfg    Config
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock sets the source of the current time used by today and now.
// The clock is read once per evaluation.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// New returns an Engine for cfg.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, clock: time.Now}

	for _, opt := range opts {
		opt(e)
	}

	var err error

	if e.format, err = format.New(cfg.Options); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if e.loc, err = cfg.location(); err != nil {
		return nil, err
	}

	if e.rates, err = resolveRates(cfg.BaseCurrency, cfg.Rates); err != nil {
		return nil, err
	}

	if e.seed, err = cfg.Marshal(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	e.logger.Trace("engine ready",
		slog.String("base_currency", cfg.BaseCurrency),
		slog.String("time_zone", e.loc.String()),
		slog.Attr{Key: "rates", Value: slog.GroupValue(rateAttrs(e.rates)...)},
	)

	return e, nil
}

// Config returns the configuration e was created with.
func (e *Engine) Config() Config { return e.cfg }

// Rates returns the resolved exchange rates: the value of one unit of each
// currency in the base currency, which has rate 1.
func (e *Engine) Rates() map[string]float64 {
	rates := maps.Clone(e.rates)
	if rates == nil {
		rates = make(map[string]float64, 1)
	}

	rates[e.cfg.BaseCurrency] = 1

	return rates
}

// Format renders v with the engine's display options.
func (e *Engine) Format(v value.Value) string { return e.format.Value(v) }

// Fingerprint returns a hash of lines under the engine's configuration.
// Equal fingerprints yield equal results, apart from today and now.
func (e *Engine) Fingerprint(lines []string) uint64 {
	var b strings.Builder

	b.Write(e.seed)

	for _, line := range lines {
		b.WriteByte('\n')
		b.WriteString(line)
	}

	return xxh3.HashString(b.String())
}

// Failure describes the error of a line.
type Failure struct {
	Kind    string `json:"kind"    yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// Descriptor is the rendered result of one triggered or failing line.
type Descriptor struct {
	Value value.Value `json:"-"               yaml:"-"`
	Err   *Failure    `json:"error,omitempty" yaml:"error,omitempty"`
	Text  string      `json:"text"            yaml:"text"`
	Span  lang.Span   `json:"span"            yaml:"span"`
	Line  int         `json:"line"            yaml:"line"`
}

// Binding is a variable visible at the end of a document.
type Binding struct {
	Name      string `json:"name"      yaml:"name"`
	Value     string `json:"value"     yaml:"value"`
	Line      int    `json:"line"      yaml:"line"`
	Redefined bool   `json:"redefined" yaml:"redefined"`
}

// Function is a user function defined by a document.
type Function struct {
	Name   string   `json:"name"   yaml:"name"`
	Params []string `json:"params" yaml:"params"`
	Line   int      `json:"line"   yaml:"line"`
}

// Result is the outcome of one evaluation of a document.
type Result struct {
	Descriptors []Descriptor `json:"results"            yaml:"results"`
	Bindings    []Binding    `json:"bindings,omitempty"  yaml:"bindings,omitempty"`
	Functions   []Function   `json:"functions,omitempty" yaml:"functions,omitempty"`
	Fingerprint uint64       `json:"fingerprint"        yaml:"fingerprint"`
}

// Descriptor returns the descriptor of line, if the line produced one.
func (r *Result) Descriptor(line int) (Descriptor, bool) {
	for _, d := range r.Descriptors {
		if d.Line == line {
			return d, true
		}
	}

	return Descriptor{}, false
}

// EvaluateString evaluates the newline-separated document src.
func (e *Engine) EvaluateString(ctx context.Context, src string) *Result {
	return e.Evaluate(ctx, strings.Split(src, "\n"))
}

// Evaluate runs one full pass over lines in document order. Every pass
// starts from an empty store, so a failing line never affects the result of
// another line except by leaving its binding undefined.
func (e *Engine) Evaluate(ctx context.Context, lines []string) *Result {
	start := time.Now()

	p := newPass(ctx, e)
	res := &Result{Fingerprint: e.Fingerprint(lines)}

	for i, line := range lines {
		n := lang.Parse(strings.TrimSuffix(line, "\r"), i+1)

		if d, ok := p.dispatch(n); ok {
			res.Descriptors = append(res.Descriptors, d)
		}
	}

	res.Bindings = p.store.bindings(e.format)
	res.Functions = p.store.functions()

	e.logger.TraceContext(ctx, "evaluate",
		slog.Int("lines", len(lines)),
		slog.Int("descriptors", len(res.Descriptors)),
		slog.Int("bindings", len(res.Bindings)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return res
}

// describe renders the outcome of evaluating node n.
func (e *Engine) describe(n *lang.Node, v value.Value, err error) Descriptor {
	d := Descriptor{Line: n.Line, Span: n.Trigger, Value: v}

	if !n.Triggered {
		d.Span = lang.Span{Start: 0, End: len(n.Text)}
	}

	if err == nil && v.Type == value.TypeError {
		err = v.Err
	}

	if err != nil {
		verr := value.AsError(err)

		d.Value = value.Failure(verr)
		d.Err = &Failure{Kind: verr.Kind().String(), Message: verr.Message()}
		d.Text = format.Error(verr)

		return d
	}

	d.Text = e.format.Value(v)

	return d
}

// registry returns the unit registry of one pass. Registries cache currency
// units, so each pass has its own.
func (e *Engine) registry() *unit.Registry {
	return unit.NewRegistry(e.cfg.BaseCurrency, e.rates)
}
