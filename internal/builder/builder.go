package builder

import (
	"context"

	"github.com/specialistvlad/netmacro/internal/compute"
	"github.com/specialistvlad/netmacro/internal/config"
	"github.com/specialistvlad/netmacro/internal/network"
)

// Builder constructs an expanded network from an authored model.
type Builder interface {
	Build(ctx context.Context, model *config.Model) (*network.Network, error)
}

// DefaultBuilder is the macro based Builder.
type DefaultBuilder struct {
	calc    compute.Calculator
	defines map[string]string
}

// Option configures a DefaultBuilder.
type Option func(*DefaultBuilder)

// WithCalculator sets the calculator used for equations.
func WithCalculator(c compute.Calculator) Option {
	return func(b *DefaultBuilder) {
		if c != nil {
			b.calc = c
		}
	}
}

// WithDefines adds literal defines that take precedence over the model's.
func WithDefines(defines map[string]string) Option {
	return func(b *DefaultBuilder) {
		for name, value := range defines {
			b.defines[name] = value
		}
	}
}

// New creates a new default builder.
func New(opts ...Option) *DefaultBuilder {
	b := &DefaultBuilder{
		calc:    compute.Default(),
		defines: make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}
