/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agents

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/CallumCM/langchain/llms"
	"github.com/CallumCM/langchain/prompts"
)

const finalAnswerMarker = "Final Answer:"

// actionPattern matches the "Action: ... / Action Input: ..." pair a
// ReAct model emits, tolerating numbered variants like "Action 2:".
var actionPattern = regexp.MustCompile(`(?s)Action\s*\d*\s*:\s*(.+?)\s*Action\s*\d*\s*Input\s*\d*\s*:\s*(.+)`)

// ErrUnparsableOutput reports model output that is neither a final
// answer nor a well-formed action.
var ErrUnparsableOutput = errors.New("could not parse agent output")

// ReActAgent reasons in free text, emitting one Action/Action Input
// pair per turn until it produces a Final Answer.
type ReActAgent struct {
	model    llms.Model
	template *prompts.Template
}

// NewReActAgent binds a model to a prompt template. The template must
// have exactly the slots the loop fills per turn — "input" and
// "agent_scratchpad" — still open; everything else must already be
// filled.
func NewReActAgent(model llms.Model, template *prompts.Template) (*ReActAgent, error) {
	if model == nil {
		return nil, errors.New("model cannot be nil")
	}
	if template == nil {
		return nil, errors.New("template cannot be nil")
	}

	open := template.Open()
	if len(open) != 2 || open[0] != "agent_scratchpad" || open[1] != "input" {
		return nil, fmt.Errorf("template must leave exactly {agent_scratchpad, input} open, got %v", open)
	}

	return &ReActAgent{model: model, template: template}, nil
}

// Plan implements Agent.
func (a *ReActAgent) Plan(ctx context.Context, steps []Step, input string) ([]Action, *Finish, error) {
	text, err := a.template.Render(map[string]string{
		"input":            input,
		"agent_scratchpad": scratchpad(steps),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("rendering prompt: %w", err)
	}

	resp, err := a.model.GenerateContent(ctx,
		[]llms.Message{llms.UserMessage(text)},
		llms.WithStopWords([]string{"\nObservation:", "\n\tObservation:"}),
	)
	if err != nil {
		return nil, nil, err
	}

	return parseOutput(resp.Text)
}

// returnStoppedResponse asks the model for one last final answer from
// the steps taken so far.
func (a *ReActAgent) returnStoppedResponse(ctx context.Context, steps []Step, input string) (*Finish, error) {
	text, err := a.template.Render(map[string]string{
		"input": input,
		"agent_scratchpad": scratchpad(steps) +
			"\n\nI now need to return a final answer based on the previous steps:",
	})
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	resp, err := a.model.GenerateContent(ctx, []llms.Message{llms.UserMessage(text)})
	if err != nil {
		return nil, err
	}

	output := resp.Text
	if idx := strings.LastIndex(output, finalAnswerMarker); idx >= 0 {
		output = output[idx+len(finalAnswerMarker):]
	}
	return &Finish{Output: strings.TrimSpace(output), Log: resp.Text}, nil
}

// scratchpad reconstructs the running thought log from the executed
// steps, ending mid-"Thought:" so the model continues from there.
func scratchpad(steps []Step) string {
	var sb strings.Builder
	for _, step := range steps {
		sb.WriteString(step.Action.Log)
		sb.WriteString("\nObservation: ")
		sb.WriteString(step.Observation)
		sb.WriteString("\nThought: ")
	}
	return sb.String()
}

// parseOutput interprets one model turn.
func parseOutput(text string) ([]Action, *Finish, error) {
	match := actionPattern.FindStringSubmatch(text)
	hasFinal := strings.Contains(text, finalAnswerMarker)

	switch {
	case hasFinal && match != nil:
		return nil, nil, fmt.Errorf("%w: both a final answer and an action: %q", ErrUnparsableOutput, text)
	case hasFinal:
		idx := strings.LastIndex(text, finalAnswerMarker)
		output := strings.TrimSpace(text[idx+len(finalAnswerMarker):])
		return nil, &Finish{Output: output, Log: text}, nil
	case match != nil:
		toolInput := strings.TrimSpace(match[2])
		toolInput = strings.Trim(toolInput, `"`)
		return []Action{{
			Tool:      strings.TrimSpace(match[1]),
			ToolInput: toolInput,
			Log:       text,
		}}, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnparsableOutput, text)
	}
}
