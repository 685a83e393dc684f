// Package config defines the format-agnostic model of an authored network,
// along with the Loader interface that produces it.
//
// Every authored string is kept as a Text together with its source range,
// still unexpanded. Expansion is the builder's job; concrete loaders, such
// as the HCL one, only translate their format into this model.
package config
