/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CallumCM/langchain/tools"
	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Early-stopping methods for the executor.
const (
	// EarlyStoppingForce returns a fixed "stopped" answer when the
	// iteration or time budget runs out.
	EarlyStoppingForce = "force"
	// EarlyStoppingGenerate asks the agent for one last final answer
	// based on the steps taken so far.
	EarlyStoppingGenerate = "generate"
)

// stoppedOutput is the answer EarlyStoppingForce returns.
const stoppedOutput = "Agent stopped due to iteration limit or time limit."

// ErrUnknownTool is wrapped into the observation when the model asks
// for a tool that is not in the executor's list. The loop continues;
// the message steers the model back to valid tools.
var ErrUnknownTool = errors.New("unknown tool")

// Executor drives an agent's plan/act loop until it finishes or runs
// out of budget.
type Executor struct {
	agent            Agent
	tools            []tools.Tool
	toolsByName      map[string]tools.Tool
	maxIterations    int
	maxExecutionTime time.Duration
	earlyStopping    string
	returnSteps      bool
	verbose          bool
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor) error

// WithMaxIterations caps loop iterations. 0 means unlimited.
func WithMaxIterations(n int) ExecutorOption {
	return func(e *Executor) error {
		if n < 0 {
			return fmt.Errorf("max iterations cannot be negative, got %d", n)
		}
		e.maxIterations = n
		return nil
	}
}

// WithMaxExecutionTime caps total wall-clock time. 0 means unlimited.
func WithMaxExecutionTime(d time.Duration) ExecutorOption {
	return func(e *Executor) error {
		if d < 0 {
			return fmt.Errorf("max execution time cannot be negative, got %v", d)
		}
		e.maxExecutionTime = d
		return nil
	}
}

// WithEarlyStoppingMethod selects what happens when the budget runs
// out: EarlyStoppingForce or EarlyStoppingGenerate.
func WithEarlyStoppingMethod(method string) ExecutorOption {
	return func(e *Executor) error {
		if method != EarlyStoppingForce && method != EarlyStoppingGenerate {
			return fmt.Errorf("unsupported early stopping method %q", method)
		}
		e.earlyStopping = method
		return nil
	}
}

// WithReturnIntermediateSteps records each step on the Result.
func WithReturnIntermediateSteps() ExecutorOption {
	return func(e *Executor) error {
		e.returnSteps = true
		return nil
	}
}

// WithVerbose logs loop progress at info level instead of debug.
func WithVerbose(verbose bool) ExecutorOption {
	return func(e *Executor) error {
		e.verbose = verbose
		return nil
	}
}

// NewExecutor wires an agent to its tool list and loop configuration.
func NewExecutor(agent Agent, toolList []tools.Tool, opts ...ExecutorOption) (*Executor, error) {
	if agent == nil {
		return nil, errors.New("agent cannot be nil")
	}

	byName := make(map[string]tools.Tool, len(toolList))
	for _, t := range toolList {
		if _, dup := byName[t.Name()]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", t.Name())
		}
		byName[t.Name()] = t
	}

	e := &Executor{
		agent:         agent,
		tools:         toolList,
		toolsByName:   byName,
		maxIterations: 15,
		earlyStopping: EarlyStoppingForce,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

// Tools returns the executor's tool list, in order.
func (e *Executor) Tools() []tools.Tool {
	return e.tools
}

// Result is the outcome of one Invoke.
type Result struct {
	Output string
	// IntermediateSteps is populated when the executor was built with
	// WithReturnIntermediateSteps.
	IntermediateSteps []Step
}

// Invoke runs the loop for one query.
func (e *Executor) Invoke(ctx context.Context, input string) (_ *Result, err error) {
	log := clog.FromContext(ctx)

	tracer := otel.Tracer("langchain.agents")
	ctx, span := tracer.Start(ctx, "agents.Executor.Invoke")
	span.SetAttributes(attribute.Int("tools", len(e.tools)))
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	if e.maxExecutionTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.maxExecutionTime)
		defer cancel()
	}

	e.logf(log.With("input_length", len(input)), "Starting agent execution")

	var steps []Step
	for iteration := 0; e.maxIterations == 0 || iteration < e.maxIterations; iteration++ {
		if ctx.Err() != nil {
			break
		}

		actions, finish, err := e.agent.Plan(ctx, steps, input)
		if err != nil {
			// A deadline hit mid-call is a budget stop, not a failure.
			if errors.Is(err, context.DeadlineExceeded) && e.maxExecutionTime > 0 {
				break
			}
			return nil, fmt.Errorf("agent planning: %w", err)
		}

		if finish != nil {
			e.logf(log.With("iterations", iteration), "Agent finished")
			return e.result(finish.Output, steps), nil
		}

		for _, action := range actions {
			span.AddEvent("tool_call", oteltrace.WithAttributes(
				attribute.String("tool", action.Tool)))
			observation, err := e.act(ctx, action)
			if err != nil {
				return nil, err
			}
			steps = append(steps, Step{Action: action, Observation: observation})
		}
	}

	return e.stop(ctx, steps, input)
}

// act executes one action. Unknown tools produce an instructive
// observation rather than an error.
func (e *Executor) act(ctx context.Context, action Action) (string, error) {
	log := clog.FromContext(ctx)

	tool, ok := e.toolsByName[action.Tool]
	if !ok {
		log.With("tool", action.Tool).Warn("Agent requested unknown tool")
		return fmt.Sprintf("%s is not a valid tool, try another one.", action.Tool), nil
	}

	e.logf(log.With("tool", action.Tool).With("input_length", len(action.ToolInput)), "Executing tool")
	observation, err := tool.Call(ctx, action.ToolInput)
	if err != nil {
		return "", fmt.Errorf("tool %q: %w", action.Tool, err)
	}
	return observation, nil
}

// stop resolves the out-of-budget case per the early-stopping method.
func (e *Executor) stop(ctx context.Context, steps []Step, input string) (*Result, error) {
	switch e.earlyStopping {
	case EarlyStoppingGenerate:
		stopper, ok := e.agent.(earlyStopper)
		if !ok {
			return nil, fmt.Errorf("agent does not support early stopping method %q", EarlyStoppingGenerate)
		}
		// The budget context may already be done; generate the final
		// answer outside of it.
		finish, err := stopper.returnStoppedResponse(context.WithoutCancel(ctx), steps, input)
		if err != nil {
			return nil, fmt.Errorf("generating stopped response: %w", err)
		}
		return e.result(finish.Output, steps), nil
	default:
		return e.result(stoppedOutput, steps), nil
	}
}

func (e *Executor) result(output string, steps []Step) *Result {
	res := &Result{Output: output}
	if e.returnSteps {
		res.IntermediateSteps = steps
	}
	return res
}

// logf logs at info when verbose, debug otherwise.
func (e *Executor) logf(log *clog.Logger, msg string) {
	if e.verbose {
		log.Info(msg)
		return
	}
	log.Debug(msg)
}
