/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llms

// Tool describes a callable tool to the model: a name, a description,
// and a JSON-schema parameter object.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// CallOptions collects the per-call knobs adapters understand.
type CallOptions struct {
	Tools []Tool

	// LegacyFunctions selects the deprecated function-call wire shape
	// instead of the tool-call one, for providers that still expose both.
	LegacyFunctions bool

	Temperature *float64
	MaxTokens   int64
	StopWords   []string
}

// CallOption mutates CallOptions.
type CallOption func(*CallOptions)

// WithTools advertises tools for this call.
func WithTools(tools []Tool) CallOption {
	return func(o *CallOptions) {
		o.Tools = tools
	}
}

// WithLegacyFunctions switches the call to the deprecated functions API.
func WithLegacyFunctions() CallOption {
	return func(o *CallOptions) {
		o.LegacyFunctions = true
	}
}

// WithTemperature sets the sampling temperature for this call.
func WithTemperature(temp float64) CallOption {
	return func(o *CallOptions) {
		o.Temperature = &temp
	}
}

// WithMaxTokens caps the response length for this call.
func WithMaxTokens(tokens int64) CallOption {
	return func(o *CallOptions) {
		o.MaxTokens = tokens
	}
}

// WithStopWords sets sequences that stop generation when emitted.
func WithStopWords(words []string) CallOption {
	return func(o *CallOptions) {
		o.StopWords = words
	}
}

// ResolveOptions applies opts over the adapter's defaults.
func ResolveOptions(defaults CallOptions, opts ...CallOption) CallOptions {
	resolved := defaults
	for _, opt := range opts {
		opt(&resolved)
	}
	return resolved
}
