// Package config holds dequebuf settings.
//
// Settings live in named layers, lowest priority first:
//
//	defaults  built-in values
//	file      the --config file, with its @include chain
//	env       DEQUEBUF_* variables
//	override  values set at runtime (command-line flags)
//
// Layers are deep-merged on read. Typed access goes through the section
// accessors (Builder, Pool, Text, Script, Log), which fall back to the
// default for a missing or mistyped setting and record the problem for
// Errors.
package config
