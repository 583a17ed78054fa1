/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CallumCM/langchain/llms"
	"github.com/CallumCM/langchain/schema"
	"github.com/CallumCM/langchain/tools"
)

// structuredAgent is the shared core of the two function/tool-call
// agents: a system message, a converted tool list, and a conversation
// rebuilt from the executed steps each turn.
type structuredAgent struct {
	model         llms.Model
	systemMessage string
	llmTools      []llms.Tool
	legacy        bool
}

// FunctionsAgent drives the deprecated function-call protocol: the
// model reports at most one call per turn, keyed by name.
type FunctionsAgent struct {
	structuredAgent
}

// NewFunctionsAgent builds a function-call agent over the given tools.
func NewFunctionsAgent(model llms.Model, systemMessage string, toolList []tools.Tool) (*FunctionsAgent, error) {
	core, err := newStructuredAgent(model, systemMessage, toolList, true)
	if err != nil {
		return nil, err
	}
	return &FunctionsAgent{structuredAgent: core}, nil
}

// ToolCallingAgent drives the current tool-call protocol; the model may
// request several calls in one turn.
type ToolCallingAgent struct {
	structuredAgent
}

// NewToolCallingAgent builds a tool-call agent over the given tools.
func NewToolCallingAgent(model llms.Model, systemMessage string, toolList []tools.Tool) (*ToolCallingAgent, error) {
	core, err := newStructuredAgent(model, systemMessage, toolList, false)
	if err != nil {
		return nil, err
	}
	return &ToolCallingAgent{structuredAgent: core}, nil
}

func newStructuredAgent(model llms.Model, systemMessage string, toolList []tools.Tool, legacy bool) (structuredAgent, error) {
	if model == nil {
		return structuredAgent{}, errors.New("model cannot be nil")
	}
	llmTools, err := convertTools(toolList)
	if err != nil {
		return structuredAgent{}, err
	}
	return structuredAgent{
		model:         model,
		systemMessage: systemMessage,
		llmTools:      llmTools,
		legacy:        legacy,
	}, nil
}

// Plan implements Agent.
func (a *structuredAgent) Plan(ctx context.Context, steps []Step, input string) ([]Action, *Finish, error) {
	msgs := []llms.Message{
		llms.SystemMessage(a.systemMessage),
		llms.UserMessage(input),
	}
	for _, step := range steps {
		msgs = append(msgs,
			llms.AssistantMessage(step.Action.Log, llms.ToolCall{
				ID:        step.Action.ToolCallID,
				Name:      step.Action.Tool,
				Arguments: step.Action.Arguments,
			}),
			llms.ToolResultMessage(step.Action.ToolCallID, step.Action.Tool, step.Observation),
		)
	}

	opts := []llms.CallOption{llms.WithTools(a.llmTools)}
	if a.legacy {
		opts = append(opts, llms.WithLegacyFunctions())
	}

	resp, err := a.model.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		return nil, nil, err
	}

	if len(resp.ToolCalls) == 0 {
		return nil, &Finish{Output: resp.Text, Log: resp.Text}, nil
	}

	actions := make([]Action, 0, len(resp.ToolCalls))
	for _, call := range resp.ToolCalls {
		actions = append(actions, Action{
			Tool:       call.Name,
			ToolInput:  extractToolInput(call.Arguments),
			Log:        resp.Text,
			ToolCallID: call.ID,
			Arguments:  call.Arguments,
		})
	}
	return actions, nil, nil
}

// extractToolInput recovers the free-text tool input from the call's
// argument JSON: the conventional "query" field if present, otherwise
// a lone string field, otherwise the raw JSON.
func extractToolInput(arguments string) string {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(arguments), &parsed); err != nil {
		return arguments
	}
	if q, ok := parsed["query"].(string); ok {
		return q
	}
	if len(parsed) == 1 {
		for _, v := range parsed {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return arguments
}

// defaultArgs is the schema advertised for tools that do not declare
// their own.
type defaultArgs struct {
	Query string `json:"query" jsonschema:"description=Input for the tool,required"`
}

// convertTools produces provider-independent tool definitions,
// reflecting each tool's declared args schema when it has one.
func convertTools(toolList []tools.Tool) ([]llms.Tool, error) {
	converted := make([]llms.Tool, 0, len(toolList))
	for _, t := range toolList {
		s := schema.ReflectType[defaultArgs]()
		if structured, ok := t.(tools.Structured); ok {
			s = structured.ArgsSchema()
		}
		params, err := schema.ToMap(s)
		if err != nil {
			return nil, fmt.Errorf("tool %q: %w", t.Name(), err)
		}
		converted = append(converted, llms.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  params,
		})
	}
	return converted, nil
}
