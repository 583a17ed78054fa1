/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package agents provides agents that decide which tool to call next,
// and the Executor loop that drives them against a query.
//
// Three agent styles are provided, mirroring the three interaction
// protocols dataframe agents support:
//   - ReActAgent: free-text reasoning with Action/Action Input lines
//   - FunctionsAgent: the deprecated OpenAI function-call protocol
//   - ToolCallingAgent: the current tool-call protocol
package agents

import "context"

// Action is a tool invocation an agent decided to take.
type Action struct {
	// Tool names the tool to invoke.
	Tool string
	// ToolInput is the extracted free-text input for the tool.
	ToolInput string
	// Log is the raw model output that produced this action.
	Log string
	// ToolCallID and Arguments carry the structured protocols' call
	// identity and raw argument JSON, so the conversation can be
	// reconstructed on later turns. Empty for text-action agents.
	ToolCallID string
	Arguments  string
}

// Finish is an agent's final answer.
type Finish struct {
	Output string
	Log    string
}

// Step pairs an executed action with the observation it produced.
type Step struct {
	Action      Action
	Observation string
}

// Agent plans the next move given the work done so far.
// Exactly one of the returned actions/finish is non-empty.
type Agent interface {
	Plan(ctx context.Context, steps []Step, input string) ([]Action, *Finish, error)
}

// earlyStopper is implemented by agents that can produce a final answer
// when the executor halts them before they finish on their own.
type earlyStopper interface {
	returnStoppedResponse(ctx context.Context, steps []Step, input string) (*Finish, error)
}
