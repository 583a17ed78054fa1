/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package llms defines the narrow contract agents use to talk to a
// language model. Provider adapters live in the subpackages; agent
// code only ever sees Model, Message, and Response.
package llms

import "context"

// Role identifies who produced a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a provider-independent tool invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON
}

// Message is one turn of a conversation.
type Message struct {
	Role Role
	Text string

	// ToolCalls carries the calls an assistant turn requested.
	ToolCalls []ToolCall

	// ToolCallID and Name identify which call a tool-result turn
	// answers. Name is what the legacy functions protocol keys on.
	ToolCallID string
	Name       string
}

// SystemMessage builds a system turn.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Text: text}
}

// UserMessage builds a user turn.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// AssistantMessage builds an assistant turn, optionally carrying the
// tool calls it requested.
func AssistantMessage(text string, calls ...ToolCall) Message {
	return Message{Role: RoleAssistant, Text: text, ToolCalls: calls}
}

// ToolResultMessage builds a tool-result turn answering a prior call.
func ToolResultMessage(callID, name, text string) Message {
	return Message{Role: RoleTool, Text: text, ToolCallID: callID, Name: name}
}

// Usage reports token consumption for one generation.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Response is the model's reply: free text, tool calls, or both.
type Response struct {
	Text       string
	ToolCalls  []ToolCall
	StopReason string
	Usage      Usage
}

// Model is an opaque language model handle. Assembly code passes it
// through to the chosen agent unmodified and never inspects it.
type Model interface {
	GenerateContent(ctx context.Context, msgs []Message, opts ...CallOption) (*Response, error)
}
