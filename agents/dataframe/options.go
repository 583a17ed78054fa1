/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dataframe

import (
	"fmt"
	"slices"
	"time"

	"github.com/CallumCM/langchain/agents"
	"github.com/CallumCM/langchain/dataframes"
	"github.com/CallumCM/langchain/tools"
	"github.com/CallumCM/langchain/tools/pyrepl"
)

// AgentType selects the interaction protocol between model and loop.
type AgentType string

const (
	// ZeroShotReactDescription is the free-text ReAct protocol: the
	// model reasons in prose and emits Action/Action Input lines.
	ZeroShotReactDescription AgentType = "zero-shot-react-description"

	// OpenAIFunctions is the deprecated function-call protocol.
	OpenAIFunctions AgentType = "openai-functions"

	// OpenAITools is the current tool-call protocol, recommended over
	// OpenAIFunctions.
	OpenAITools AgentType = "openai-tools"
)

// functionCalling reports whether t is one of the structured protocols.
func (t AgentType) functionCalling() bool {
	return t == OpenAIFunctions || t == OpenAITools
}

// config is the resolved assembly configuration. One immutable value
// per New call; validation happens in one place (validate).
type config struct {
	agentType      AgentType
	prefix         string
	suffix         string
	suffixSet      bool
	includePreview *bool // nil means not set; preview defaults on
	inputVariables []string
	headRows       int
	extraTools     []tools.Tool
	interpreter    pyrepl.Interpreter

	// Execution-loop knobs, forwarded to the executor unmodified.
	maxIterations    int
	maxExecutionTime time.Duration
	earlyStopping    string
	returnSteps      bool
	verbose          bool
}

func defaultConfig() config {
	return config{
		agentType:     ZeroShotReactDescription,
		headRows:      5,
		maxIterations: 15,
		earlyStopping: agents.EarlyStoppingForce,
	}
}

// preview reports whether dataset previews belong in the prompt.
// A caller-supplied suffix forces the preview on.
func (c *config) preview() bool {
	if c.suffixSet {
		return true
	}
	return c.includePreview == nil || *c.includePreview
}

// Option configures agent assembly.
type Option func(*config) error

// WithAgentType selects the interaction protocol.
func WithAgentType(t AgentType) Option {
	return func(c *config) error {
		c.agentType = t
		return nil
	}
}

// WithPrefix overrides the built-in prompt prefix.
func WithPrefix(prefix string) Option {
	return func(c *config) error {
		c.prefix = prefix
		return nil
	}
}

// WithSuffix overrides the built-in prompt suffix. Mutually exclusive
// with WithIncludePreview; the suffix takes over prompt construction
// and the dataset preview is substituted into it.
func WithSuffix(suffix string) Option {
	return func(c *config) error {
		c.suffix = suffix
		c.suffixSet = true
		return nil
	}
}

// WithIncludePreview controls whether the prompt embeds the first rows
// of each frame. Defaults to true. Mutually exclusive with WithSuffix,
// whichever value is set.
func WithIncludePreview(include bool) Option {
	return func(c *config) error {
		c.includePreview = &include
		return nil
	}
}

// WithInputVariables overrides the template's input-variable list.
// Only the text-action protocol supports this.
func WithInputVariables(vars ...string) Option {
	return func(c *config) error {
		c.inputVariables = slices.Clone(vars)
		return nil
	}
}

// WithHeadRows sets how many rows each preview renders (default 5).
// Frames with fewer rows render what they have.
func WithHeadRows(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("head rows cannot be negative, got %d", n)
		}
		c.headRows = n
		return nil
	}
}

// WithExtraTools appends tools after the execution tool.
func WithExtraTools(ts ...tools.Tool) Option {
	return func(c *config) error {
		c.extraTools = append(c.extraTools, ts...)
		return nil
	}
}

// WithInterpreter supplies the sandbox the execution tool runs
// generated code in. Required.
func WithInterpreter(interp pyrepl.Interpreter) Option {
	return func(c *config) error {
		c.interpreter = interp
		return nil
	}
}

// WithMaxIterations caps executor loop iterations (default 15).
func WithMaxIterations(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("max iterations cannot be negative, got %d", n)
		}
		c.maxIterations = n
		return nil
	}
}

// WithMaxExecutionTime caps executor wall-clock time. 0 means unlimited.
func WithMaxExecutionTime(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return fmt.Errorf("max execution time cannot be negative, got %v", d)
		}
		c.maxExecutionTime = d
		return nil
	}
}

// WithEarlyStoppingMethod selects the out-of-budget behavior
// (default agents.EarlyStoppingForce).
func WithEarlyStoppingMethod(method string) Option {
	return func(c *config) error {
		c.earlyStopping = method
		return nil
	}
}

// WithReturnIntermediateSteps records each loop step on the result.
func WithReturnIntermediateSteps() Option {
	return func(c *config) error {
		c.returnSteps = true
		return nil
	}
}

// WithVerbose makes the executor log loop progress at info level.
func WithVerbose(verbose bool) Option {
	return func(c *config) error {
		c.verbose = verbose
		return nil
	}
}

// validate resolves options and the dataset argument into a checked
// (frames, config) pair. It is the single validation point: nothing
// downstream re-checks these invariants.
func validate(input Input, opts []Option) ([]*dataframes.Frame, config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, cfg, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	frames, err := resolveInput(input)
	if err != nil {
		return nil, cfg, err
	}

	if cfg.suffixSet && cfg.includePreview != nil {
		return nil, cfg, ErrSuffixPreviewConflict
	}

	// The input-variable override restriction is checked in the
	// function-call prompt path, not here.

	return frames, cfg, nil
}
