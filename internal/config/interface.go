package config

import "context"

// Loader is the interface for a format-specific model loader.
type Loader interface {
	// Load reads every model file found under the given paths and merges
	// them into a single Model, in file order.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
