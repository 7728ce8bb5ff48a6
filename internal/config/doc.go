// Package config defines the format-agnostic model of a level: the track, the
// program and the settings a run uses, along with the Loader interface that
// produces it.
//
// The `config.Model` is the single source of truth for the `app` package.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
