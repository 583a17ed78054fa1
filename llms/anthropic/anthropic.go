/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package anthropic adapts Anthropic's Messages API to the llms.Model
// contract. Tool calls map to tool_use/tool_result content blocks; the
// legacy functions wire shape does not exist on this provider, so
// llms.WithLegacyFunctions is rejected.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CallumCM/langchain/llms"
	"github.com/CallumCM/langchain/llms/metrics"
	"github.com/CallumCM/langchain/llms/retry"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

const defaultModel = "claude-sonnet-4-5"

// LLM implements llms.Model over the Anthropic SDK.
type LLM struct {
	client       anthropic.Client
	modelName    string
	maxTokens    int64
	temperature  *float64
	genaiMetrics *metrics.GenAI
	retryConfig  retry.Config
}

// Option configures the adapter.
type Option func(*LLM) error

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(l *LLM) error {
		if model == "" {
			return errors.New("model cannot be empty")
		}
		l.modelName = model
		return nil
	}
}

// WithMaxTokens sets the default response token cap.
func WithMaxTokens(tokens int64) Option {
	return func(l *LLM) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		l.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the default sampling temperature.
func WithTemperature(temp float64) Option {
	return func(l *LLM) error {
		if temp < 0.0 || temp > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temp)
		}
		l.temperature = &temp
		return nil
	}
}

// WithRetryConfig sets the retry configuration for transient API
// errors, particularly 429 rate limit and 529 overloaded responses.
func WithRetryConfig(cfg retry.Config) Option {
	return func(l *LLM) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		l.retryConfig = cfg
		return nil
	}
}

// New wraps an Anthropic client as an llms.Model.
func New(client anthropic.Client, opts ...Option) (*LLM, error) {
	l := &LLM{
		client:       client,
		modelName:    defaultModel,
		maxTokens:    8192,
		genaiMetrics: metrics.NewGenAI("langchain.llms"),
		retryConfig:  retry.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return l, nil
}

// GenerateContent implements llms.Model.
func (l *LLM) GenerateContent(ctx context.Context, msgs []llms.Message, opts ...llms.CallOption) (*llms.Response, error) {
	log := clog.FromContext(ctx)

	call := llms.ResolveOptions(llms.CallOptions{MaxTokens: l.maxTokens}, opts...)
	if call.LegacyFunctions {
		return nil, errors.New("the legacy functions API is not available on this provider")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(l.modelName),
		MaxTokens: call.MaxTokens,
	}
	switch {
	case call.Temperature != nil:
		params.Temperature = anthropic.Float(*call.Temperature)
	case l.temperature != nil:
		params.Temperature = anthropic.Float(*l.temperature)
	}
	if len(call.StopWords) > 0 {
		params.StopSequences = call.StopWords
	}

	for _, msg := range msgs {
		switch msg.Role {
		case llms.RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: msg.Text})
		case llms.RoleUser:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Text)))
		case llms.RoleAssistant:
			params.Messages = append(params.Messages, assistantMessage(msg))
		case llms.RoleTool:
			params.Messages = append(params.Messages, anthropic.MessageParam{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewToolResultBlock(msg.ToolCallID, msg.Text, false),
				},
			})
		default:
			return nil, fmt.Errorf("unsupported message role: %q", msg.Role)
		}
	}

	for _, tool := range call.Tools {
		def, err := toolParam(tool)
		if err != nil {
			return nil, err
		}
		params.Tools = append(params.Tools, anthropic.ToolUnionParam{OfTool: &def})
	}

	message, err := retry.WithBackoff(ctx, l.retryConfig, "messages.new", isRetryableError, func() (*anthropic.Message, error) {
		return l.client.Messages.New(ctx, params)
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic message: %w", err)
	}

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		l.genaiMetrics.RecordTokens(ctx, l.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
	}

	resp := &llms.Response{
		StopReason: string(message.StopReason),
		Usage: llms.Usage{
			InputTokens:  message.Usage.InputTokens,
			OutputTokens: message.Usage.OutputTokens,
		},
	}
	for _, content := range message.Content {
		switch content.Type {
		case "text":
			resp.Text += content.Text
		case "tool_use":
			resp.ToolCalls = append(resp.ToolCalls, llms.ToolCall{
				ID:        content.ID,
				Name:      content.Name,
				Arguments: string(content.Input),
			})
		}
	}

	log.With("model", l.modelName).
		With("tool_calls", len(resp.ToolCalls)).
		Debug("Anthropic generation complete")
	return resp, nil
}

// assistantMessage rebuilds an assistant turn, including any tool_use
// blocks it carried, so multi-turn tool conversations round-trip.
func assistantMessage(msg llms.Message) anthropic.MessageParam {
	var blocks []anthropic.ContentBlockParamUnion
	if msg.Text != "" {
		blocks = append(blocks, anthropic.NewTextBlock(msg.Text))
	}
	for _, call := range msg.ToolCalls {
		blocks = append(blocks, anthropic.ContentBlockParamUnion{
			OfToolUse: &anthropic.ToolUseBlockParam{
				ID:    call.ID,
				Name:  call.Name,
				Input: json.RawMessage(call.Arguments),
			},
		})
	}
	return anthropic.MessageParam{
		Role:    anthropic.MessageParamRoleAssistant,
		Content: blocks,
	}
}

// toolParam converts a provider-independent tool definition to the
// Anthropic wire shape.
func toolParam(tool llms.Tool) (anthropic.ToolParam, error) {
	schema := anthropic.ToolInputSchemaParam{}
	if props, ok := tool.Parameters["properties"]; ok {
		schema.Properties = props
	}
	if req, ok := tool.Parameters["required"].([]any); ok {
		for _, r := range req {
			name, ok := r.(string)
			if !ok {
				return anthropic.ToolParam{}, fmt.Errorf("tool %q: required entry %v is not a string", tool.Name, r)
			}
			schema.Required = append(schema.Required, name)
		}
	}
	return anthropic.ToolParam{
		Name:        tool.Name,
		Description: anthropic.String(tool.Description),
		InputSchema: schema,
	}, nil
}

// isRetryableError reports whether an error is a retryable API error:
// rate limit, overloaded, or transient server errors.
func isRetryableError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 503, 504, 529:
			return true
		}
	}
	return false
}
