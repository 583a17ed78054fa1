/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package dataframe assembles a ready-to-run agent executor around one
// or more dataframes. The returned executor answers natural-language
// questions about the data by generating pandas code and running it in
// a caller-supplied interpreter.
package dataframe

import (
	"context"
	"fmt"

	"github.com/CallumCM/langchain/agents"
	"github.com/CallumCM/langchain/dataframes"
	"github.com/CallumCM/langchain/llms"
	"github.com/CallumCM/langchain/tools"
	"github.com/CallumCM/langchain/tools/pyrepl"
)

// New assembles an agent executor over the given dataset. Construction
// is all-or-nothing: any configuration problem surfaces here, never at
// invoke time.
func New(ctx context.Context, model llms.Model, input Input, opts ...Option) (*agents.Executor, error) {
	frames, cfg, err := validate(input, opts)
	if err != nil {
		return nil, err
	}
	if err := dataframes.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize rendering: %w", err)
	}

	var agent agents.Agent
	var toolList []tools.Tool
	switch cfg.agentType {
	case ZeroShotReactDescription:
		if toolList, err = buildTools(cfg, frames); err != nil {
			return nil, err
		}
		tmpl, err := reactPrompt(frames, cfg, toolList)
		if err != nil {
			return nil, err
		}
		if agent, err = agents.NewReActAgent(model, tmpl); err != nil {
			return nil, err
		}

	case OpenAIFunctions, OpenAITools:
		system, err := functionsPrompt(frames, cfg)
		if err != nil {
			return nil, err
		}
		if toolList, err = buildTools(cfg, frames); err != nil {
			return nil, err
		}
		if cfg.agentType == OpenAIFunctions {
			agent, err = agents.NewFunctionsAgent(model, system, toolList)
		} else {
			agent, err = agents.NewToolCallingAgent(model, system, toolList)
		}
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAgentType, cfg.agentType)
	}

	execOpts := []agents.ExecutorOption{
		agents.WithMaxIterations(cfg.maxIterations),
		agents.WithEarlyStoppingMethod(cfg.earlyStopping),
		agents.WithVerbose(cfg.verbose),
	}
	if cfg.maxExecutionTime > 0 {
		execOpts = append(execOpts, agents.WithMaxExecutionTime(cfg.maxExecutionTime))
	}
	if cfg.returnSteps {
		execOpts = append(execOpts, agents.WithReturnIntermediateSteps())
	}

	return agents.NewExecutor(agent, toolList, execOpts...)
}

// bindFrames names the frames for the interpreter namespace: a lone
// frame is "df", a collection is "df1" through "dfN" in input order.
func bindFrames(frames []*dataframes.Frame) map[string]*dataframes.Frame {
	locals := make(map[string]*dataframes.Frame, len(frames))
	if len(frames) == 1 {
		locals["df"] = frames[0]
		return locals
	}
	for i, f := range frames {
		locals[fmt.Sprintf("df%d", i+1)] = f
	}
	return locals
}

// buildTools assembles the tool list: the code-execution tool first,
// then any caller extras in their given order.
func buildTools(cfg config, frames []*dataframes.Frame) ([]tools.Tool, error) {
	if cfg.interpreter == nil {
		return nil, ErrNoInterpreter
	}
	repl, err := pyrepl.New(cfg.interpreter, bindFrames(frames))
	if err != nil {
		return nil, fmt.Errorf("failed to build execution tool: %w", err)
	}
	return append([]tools.Tool{repl}, cfg.extraTools...), nil
}
