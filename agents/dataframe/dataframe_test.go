/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dataframe_test

import (
	"context"
	"testing"

	"github.com/CallumCM/langchain/agents/dataframe"
	"github.com/CallumCM/langchain/dataframes"
	"github.com/CallumCM/langchain/llms"
	"github.com/CallumCM/langchain/tools"
	"github.com/CallumCM/langchain/tools/pyrepl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct{}

func (fakeModel) GenerateContent(context.Context, []llms.Message, ...llms.CallOption) (*llms.Response, error) {
	return &llms.Response{Text: "Final Answer: done"}, nil
}

type fakeInterpreter struct{}

func (fakeInterpreter) Run(_ context.Context, _ string, _ map[string]*dataframes.Frame) (string, error) {
	return "", nil
}

type namedTool struct{ name string }

func (t namedTool) Name() string        { return t.name }
func (t namedTool) Description() string { return "a test tool" }
func (t namedTool) Call(context.Context, string) (string, error) {
	return "", nil
}

func testFrame(t *testing.T, rows int) *dataframes.Frame {
	t.Helper()
	data := make([][]any, rows)
	for i := range data {
		data[i] = []any{i, i * 2}
	}
	f, err := dataframes.New([]string{"a", "b"}, data)
	require.NoError(t, err)
	return f
}

var agentTypes = []dataframe.AgentType{
	dataframe.ZeroShotReactDescription,
	dataframe.OpenAIFunctions,
	dataframe.OpenAITools,
}

func TestNewBindsFrameNames(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name  string
		input dataframe.Input
		want  []string
	}{{
		name:  "single frame binds df",
		input: dataframe.Frame(testFrame(t, 3)),
		want:  []string{"df"},
	}, {
		name:  "collection binds df1..dfN",
		input: dataframe.Frames(testFrame(t, 3), testFrame(t, 2), testFrame(t, 1)),
		want:  []string{"df1", "df2", "df3"},
	}} {
		t.Run(tc.name, func(t *testing.T) {
			exec, err := dataframe.New(ctx, fakeModel{}, tc.input,
				dataframe.WithInterpreter(fakeInterpreter{}))
			require.NoError(t, err)

			repl, ok := exec.Tools()[0].(*pyrepl.Tool)
			require.True(t, ok, "first tool should be the execution tool")

			locals := repl.Locals()
			assert.Len(t, locals, len(tc.want))
			for _, name := range tc.want {
				assert.Contains(t, locals, name)
			}
		})
	}
}

func TestNewSuffixPreviewConflict(t *testing.T) {
	ctx := context.Background()
	inputs := map[string]dataframe.Input{
		"single": dataframe.Frame(testFrame(t, 3)),
		"multi":  dataframe.Frames(testFrame(t, 3), testFrame(t, 2)),
	}

	for _, at := range agentTypes {
		for name, input := range inputs {
			for _, include := range []bool{true, false} {
				t.Run(string(at)+"/"+name, func(t *testing.T) {
					_, err := dataframe.New(ctx, fakeModel{}, input,
						dataframe.WithAgentType(at),
						dataframe.WithInterpreter(fakeInterpreter{}),
						dataframe.WithSuffix("Question: {{input}}\n{{agent_scratchpad}}"),
						dataframe.WithIncludePreview(include))
					assert.ErrorIs(t, err, dataframe.ErrSuffixPreviewConflict)
				})
			}
		}
	}
}

func TestNewInputVariablesUnsupported(t *testing.T) {
	ctx := context.Background()

	for _, at := range []dataframe.AgentType{dataframe.OpenAIFunctions, dataframe.OpenAITools} {
		t.Run(string(at), func(t *testing.T) {
			_, err := dataframe.New(ctx, fakeModel{}, dataframe.Frame(testFrame(t, 3)),
				dataframe.WithAgentType(at),
				dataframe.WithInterpreter(fakeInterpreter{}),
				dataframe.WithInputVariables("input", "agent_scratchpad"))
			assert.ErrorIs(t, err, dataframe.ErrInputVariablesUnsupported)
		})
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name  string
		input dataframe.Input
	}{
		{"nil input", nil},
		{"empty collection", dataframe.Frames()},
		{"nil member", dataframe.Frames(testFrame(t, 3), nil)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataframe.New(ctx, fakeModel{}, tc.input,
				dataframe.WithInterpreter(fakeInterpreter{}))
			assert.ErrorIs(t, err, dataframe.ErrNotAFrame)
		})
	}
}

func TestNewUnsupportedAgentType(t *testing.T) {
	_, err := dataframe.New(context.Background(), fakeModel{}, dataframe.Frame(testFrame(t, 3)),
		dataframe.WithAgentType("chat-conversational"),
		dataframe.WithInterpreter(fakeInterpreter{}))
	assert.ErrorIs(t, err, dataframe.ErrUnsupportedAgentType)
}

func TestNewRequiresInterpreter(t *testing.T) {
	for _, at := range agentTypes {
		t.Run(string(at), func(t *testing.T) {
			_, err := dataframe.New(context.Background(), fakeModel{}, dataframe.Frame(testFrame(t, 3)),
				dataframe.WithAgentType(at))
			assert.ErrorIs(t, err, dataframe.ErrNoInterpreter)
		})
	}
}

func TestNewToolOrdering(t *testing.T) {
	ctx := context.Background()
	extraA := namedTool{name: "lookup"}
	extraB := namedTool{name: "calculator"}

	for _, at := range agentTypes {
		t.Run(string(at), func(t *testing.T) {
			exec, err := dataframe.New(ctx, fakeModel{}, dataframe.Frame(testFrame(t, 3)),
				dataframe.WithAgentType(at),
				dataframe.WithInterpreter(fakeInterpreter{}),
				dataframe.WithExtraTools(extraA, extraB))
			require.NoError(t, err)

			var names []string
			for _, tl := range exec.Tools() {
				names = append(names, tl.Name())
			}
			assert.Equal(t, []string{"python_repl_ast", "lookup", "calculator"}, names)
		})
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	ctx := context.Background()
	input := dataframe.Frame(testFrame(t, 3))

	for _, tc := range []struct {
		name string
		opt  dataframe.Option
	}{
		{"negative head rows", dataframe.WithHeadRows(-1)},
		{"negative max iterations", dataframe.WithMaxIterations(-1)},
		{"negative max execution time", dataframe.WithMaxExecutionTime(-1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataframe.New(ctx, fakeModel{}, input,
				dataframe.WithInterpreter(fakeInterpreter{}), tc.opt)
			assert.Error(t, err)
		})
	}
}

func TestNewInvokeRunsToCompletion(t *testing.T) {
	exec, err := dataframe.New(context.Background(), fakeModel{}, dataframe.Frame(testFrame(t, 3)),
		dataframe.WithInterpreter(fakeInterpreter{}))
	require.NoError(t, err)

	result, err := exec.Invoke(context.Background(), "how many rows are there?")
	require.NoError(t, err)
	assert.Equal(t, "done", result.Output)
}

var _ tools.Tool = namedTool{}
