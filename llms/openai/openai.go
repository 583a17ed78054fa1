/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openai adapts OpenAI chat completions to the llms.Model
// contract. Both the tool-call API and the deprecated function-call
// API are supported; llms.WithLegacyFunctions selects the latter.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/CallumCM/langchain/llms"
	"github.com/CallumCM/langchain/llms/metrics"
	"github.com/CallumCM/langchain/llms/retry"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
)

const defaultModel = openai.ChatModelGPT4o

// LLM implements llms.Model over the OpenAI SDK.
type LLM struct {
	client       openai.Client
	modelName    openai.ChatModel
	temperature  *float64
	maxTokens    int64
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
		l.modelName = openai.ChatModel(model)
		return nil
	}
}

// WithTemperature sets the default sampling temperature.
func WithTemperature(temp float64) Option {
	return func(l *LLM) error {
		if temp < 0.0 || temp > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temp)
		}
		l.temperature = &temp
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

// WithRetryConfig sets the retry configuration for transient API errors.
func WithRetryConfig(cfg retry.Config) Option {
	return func(l *LLM) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		l.retryConfig = cfg
		return nil
	}
}

// New wraps an OpenAI client as an llms.Model.
func New(client openai.Client, opts ...Option) (*LLM, error) {
	l := &LLM{
		client:       client,
		modelName:    defaultModel,
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

	params := openai.ChatCompletionNewParams{
		Model: l.modelName,
	}
	switch {
	case call.Temperature != nil:
		params.Temperature = openai.Float(*call.Temperature)
	case l.temperature != nil:
		params.Temperature = openai.Float(*l.temperature)
	}
	if call.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(call.MaxTokens)
	}
	if len(call.StopWords) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: call.StopWords}
	}

	for _, msg := range msgs {
		converted, err := messageParam(msg, call.LegacyFunctions)
		if err != nil {
			return nil, err
		}
		params.Messages = append(params.Messages, converted)
	}

	if call.LegacyFunctions {
		for _, tool := range call.Tools {
			params.Functions = append(params.Functions, openai.ChatCompletionNewParamsFunction{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  openai.FunctionParameters(tool.Parameters),
			})
		}
	} else {
		for _, tool := range call.Tools {
			params.Tools = append(params.Tools, openai.ChatCompletionToolParam{
				Function: openai.FunctionDefinitionParam{
					Name:        tool.Name,
					Description: openai.String(tool.Description),
					Parameters:  openai.FunctionParameters(tool.Parameters),
				},
			})
		}
	}

	completion, err := retry.WithBackoff(ctx, l.retryConfig, "chat.completions.new", isRetryableError, func() (*openai.ChatCompletion, error) {
		return l.client.Chat.Completions.New(ctx, params)
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("openai completion returned no choices")
	}

	if completion.Usage.PromptTokens > 0 || completion.Usage.CompletionTokens > 0 {
		l.genaiMetrics.RecordTokens(ctx, string(l.modelName), completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	choice := completion.Choices[0]
	resp := &llms.Response{
		Text:       choice.Message.Content,
		StopReason: string(choice.FinishReason),
		Usage: llms.Usage{
			InputTokens:  completion.Usage.PromptTokens,
			OutputTokens: completion.Usage.CompletionTokens,
		},
	}
	for _, tc := range choice.Message.ToolCalls {
		resp.ToolCalls = append(resp.ToolCalls, llms.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	// The functions API reports at most one call, without an ID.
	if fc := choice.Message.FunctionCall; fc.Name != "" {
		resp.ToolCalls = append(resp.ToolCalls, llms.ToolCall{
			Name:      fc.Name,
			Arguments: fc.Arguments,
		})
	}

	log.With("model", l.modelName).
		With("tool_calls", len(resp.ToolCalls)).
		Debug("OpenAI generation complete")
	return resp, nil
}

// messageParam converts one conversation turn to the OpenAI wire
// shape. Tool results become function messages under the legacy API,
// which keys results by name rather than call ID.
func messageParam(msg llms.Message, legacy bool) (openai.ChatCompletionMessageParamUnion, error) {
	switch msg.Role {
	case llms.RoleSystem:
		return openai.SystemMessage(msg.Text), nil
	case llms.RoleUser:
		return openai.UserMessage(msg.Text), nil
	case llms.RoleAssistant:
		assistant := openai.ChatCompletionAssistantMessageParam{}
		if msg.Text != "" {
			assistant.Content.OfString = openai.String(msg.Text)
		}
		for _, call := range msg.ToolCalls {
			if legacy {
				assistant.FunctionCall = openai.ChatCompletionAssistantMessageParamFunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				}
				continue
			}
			assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
				ID: call.ID,
				Function: openai.ChatCompletionMessageToolCallFunctionParam{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		return openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant}, nil
	case llms.RoleTool:
		if legacy {
			return openai.ChatCompletionMessageParamUnion{
				OfFunction: &openai.ChatCompletionFunctionMessageParam{
					Name:    msg.Name,
					Content: openai.String(msg.Text),
				},
			}, nil
		}
		tool := openai.ChatCompletionToolMessageParam{ToolCallID: msg.ToolCallID}
		tool.Content.OfString = openai.String(msg.Text)
		return openai.ChatCompletionMessageParamUnion{OfTool: &tool}, nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported message role: %q", msg.Role)
	}
}

// isRetryableError reports whether an error is a retryable API error.
func isRetryableError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		}
	}
	return false
}
