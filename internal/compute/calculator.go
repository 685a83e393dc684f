package compute

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Calculator turns expression text into a number.
type Calculator interface {
	Compute(expr string) (float64, error)
}

// Error reports an expression that could not be parsed or evaluated.
type Error struct {
	Expr        string
	Diagnostics hcl.Diagnostics
	Err         error
}

func (e *Error) Error() string {
	if e.Diagnostics.HasErrors() {
		return fmt.Sprintf("cannot compute %q: %s", e.Expr, e.Diagnostics.Error())
	}
	return fmt.Sprintf("cannot compute %q: %v", e.Expr, e.Err)
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if e.Diagnostics.HasErrors() {
		return e.Diagnostics
	}
	return nil
}

type options struct {
	logger    *slog.Logger
	cacheSize int
	variables map[string]cty.Value
}

// Option configures an HCLCalculator.
type Option func(*options)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCacheSize sets how many parsed expressions are kept.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithVariable makes a named constant available to expressions.
func WithVariable(name string, value float64) Option {
	return func(o *options) { o.variables[name] = cty.NumberFloatVal(value) }
}

// HCLCalculator evaluates expressions written in HCL native syntax.
// It is safe for concurrent use.
type HCLCalculator struct {
	evalCtx *hcl.EvalContext
	cache   *cache
	logger  *slog.Logger
}

// New creates an HCLCalculator.
func New(opts ...Option) *HCLCalculator {
	o := &options{variables: constants()}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &HCLCalculator{
		evalCtx: &hcl.EvalContext{
			Variables: o.variables,
			Functions: mathFunctions(),
		},
		cache:  newCache(o.cacheSize),
		logger: o.logger,
	}
}

var defaultCalculator = New()

// Default returns the shared calculator used when none is configured.
func Default() *HCLCalculator {
	return defaultCalculator
}

// Compute parses and evaluates expr.
func (c *HCLCalculator) Compute(expr string) (float64, error) {
	parsed, ok := c.cache.get(expr)
	if ok {
		c.logger.Debug("Expression cache hit.", "expr", expr)
	} else {
		var diags hcl.Diagnostics
		parsed, diags = hclsyntax.ParseExpression([]byte(expr), "expression", hcl.InitialPos)
		if diags.HasErrors() {
			return 0, &Error{Expr: expr, Diagnostics: diags}
		}
		c.cache.set(expr, parsed)
	}

	val, diags := parsed.Value(c.evalCtx)
	if diags.HasErrors() {
		return 0, &Error{Expr: expr, Diagnostics: diags}
	}
	return toFloat(expr, val)
}

func toFloat(expr string, val cty.Value) (float64, error) {
	if !val.IsWhollyKnown() || val.IsNull() {
		return 0, &Error{Expr: expr, Err: fmt.Errorf("result is not a known value")}
	}
	if val.Type() == cty.Bool {
		if val.True() {
			return 1, nil
		}
		return 0, nil
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, &Error{Expr: expr, Err: err}
	}
	f, _ := num.AsBigFloat().Float64()
	return f, nil
}

// Format renders v the way computed values are spliced back into text:
// integral values without a fraction, others in the shortest form that
// reads back to the same number.
func Format(v float64) string {
	abs := math.Abs(v)
	if v == math.Trunc(v) && abs < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) || abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
