package macro

import (
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/netmacro/internal/compute"
)

type options struct {
	calculator compute.Calculator
	logger     *slog.Logger
	rng        hcl.Range
}

// Option configures an EmbeddedString.
type Option func(*options)

// WithCalculator sets the evaluator for equations and conditions. The
// default is compute.Default().
func WithCalculator(c compute.Calculator) Option {
	return func(o *options) { o.calculator = c }
}

// WithLogger sets the logger used for debug output. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRange records where the text was authored.
func WithRange(rng hcl.Range) Option {
	return func(o *options) { o.rng = rng }
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.calculator == nil {
		o.calculator = compute.Default()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
