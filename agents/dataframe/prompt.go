/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dataframe

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/CallumCM/langchain/dataframes"
	"github.com/CallumCM/langchain/prompts"
	"github.com/CallumCM/langchain/tools"
)

// Built-in prompt fragments. The text-action variants end in a
// tool-use instruction because the format section follows them; the
// function-call variants do not, the tool schema is carried out of
// band there.
const (
	singlePrefix = "\nYou are working with a pandas dataframe in Python. The name of the dataframe is `df`.\nYou should use the tools below to answer the question posed of you:"

	multiPrefix = "\nYou are working with {{num_dfs}} pandas dataframes in Python named df1, df2, etc. You should use the tools below to answer the question posed of you:"

	suffixNoPreview = "\nBegin!\nQuestion: {{input}}\n{{agent_scratchpad}}"

	singleSuffixWithPreview = "\nThis is the result of `print(df.head())`:\n{{df_head}}\n\nBegin!\nQuestion: {{input}}\n{{agent_scratchpad}}"

	multiSuffixWithPreview = "\nThis is the result of `print(df.head())` for each dataframe:\n{{dfs_head}}\n\nBegin!\nQuestion: {{input}}\n{{agent_scratchpad}}"

	singlePrefixFunctions = "\nYou are working with a pandas dataframe in Python. The name of the dataframe is `df`."

	multiPrefixFunctions = "\nYou are working with {{num_dfs}} pandas dataframes in Python named df1, df2, etc."

	singlePreviewFunctions = "\nThis is the result of `print(df.head())`:\n{{df_head}}"

	multiPreviewFunctions = "\nThis is the result of `print(df.head())` for each dataframe:\n{{dfs_head}}"

	formatInstructions = `Use the following format:

Question: the input question you must answer
Thought: you should always think about what to do
Action: the action to take, should be one of [{{tool_names}}]
Action Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Action Input/Observation can repeat N times)
Thought: I now know the final answer
Final Answer: the final answer to the original input question`
)

// headPreviews renders the first rows of each frame as a markdown
// table, one string per frame.
func headPreviews(frames []*dataframes.Frame, n int) ([]string, error) {
	out := make([]string, 0, len(frames))
	for i, f := range frames {
		md, err := f.Head(n).Markdown()
		if err != nil {
			return nil, fmt.Errorf("failed to render preview of frame %d: %w", i, err)
		}
		out = append(out, md)
	}
	return out, nil
}

// previewValues returns the slot values the previews fill: df_head for
// a single frame, dfs_head (previews joined by a blank line) for many.
func previewValues(frames []*dataframes.Frame, n int) (map[string]string, error) {
	heads, err := headPreviews(frames, n)
	if err != nil {
		return nil, err
	}
	if len(frames) == 1 {
		return map[string]string{"df_head": heads[0]}, nil
	}
	return map[string]string{"dfs_head": strings.Join(heads, "\n\n")}, nil
}

// defaultInputVariables is the open-slot list a built-in text-action
// prompt declares for the given cardinality and preview setting.
func defaultInputVariables(multi, preview bool) []string {
	vars := []string{"input", "agent_scratchpad"}
	if multi {
		vars = append(vars, "num_dfs")
		if preview {
			vars = append(vars, "dfs_head")
		}
		return vars
	}
	if preview {
		vars = append(vars, "df_head")
	}
	return vars
}

// fillIfDeclared fills the named slot when the template declares it
// and the variable list claims it; otherwise the template passes
// through unchanged.
func fillIfDeclared(t *prompts.Template, vars []string, name, value string) (*prompts.Template, error) {
	if _, ok := t.Slots()[name]; !ok {
		return t, nil
	}
	if !slices.Contains(vars, name) {
		return t, nil
	}
	return t.Fill(name, value)
}

// reactPrompt assembles the full text-action prompt: prefix, tool
// descriptions, format instructions, suffix, joined by blank lines,
// with everything but the per-turn slots pre-filled.
func reactPrompt(frames []*dataframes.Frame, cfg config, toolList []tools.Tool) (*prompts.Template, error) {
	multi := len(frames) > 1
	preview := cfg.preview()

	prefix := cfg.prefix
	if prefix == "" {
		if multi {
			prefix = multiPrefix
		} else {
			prefix = singlePrefix
		}
	}

	suffix := cfg.suffix
	if !cfg.suffixSet {
		switch {
		case !preview:
			suffix = suffixNoPreview
		case multi:
			suffix = multiSuffixWithPreview
		default:
			suffix = singleSuffixWithPreview
		}
	}

	names := make([]string, 0, len(toolList))
	descriptions := make([]string, 0, len(toolList))
	for _, tl := range toolList {
		names = append(names, tl.Name())
		descriptions = append(descriptions, fmt.Sprintf("%s: %s", tl.Name(), tl.Description()))
	}

	text := strings.Join([]string{prefix, strings.Join(descriptions, "\n"), formatInstructions, suffix}, "\n\n")
	tmpl, err := prompts.New(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}
	if tmpl, err = tmpl.Fill("tool_names", strings.Join(names, ", ")); err != nil {
		return nil, err
	}

	vars := cfg.inputVariables
	if vars == nil {
		vars = defaultInputVariables(multi, preview)
	}

	// The frame count binds before the previews so a prefix that
	// mentions both reads consistently.
	if tmpl, err = fillIfDeclared(tmpl, vars, "num_dfs", strconv.Itoa(len(frames))); err != nil {
		return nil, err
	}
	if preview {
		values, err := previewValues(frames, cfg.headRows)
		if err != nil {
			return nil, err
		}
		for _, name := range []string{"df_head", "dfs_head"} {
			if v, ok := values[name]; ok {
				if tmpl, err = fillIfDeclared(tmpl, vars, name, v); err != nil {
					return nil, err
				}
			}
		}
	}

	return tmpl, nil
}

// functionsPrompt flattens the prefix and preview into the single
// system message the function-call protocols use. The per-turn state
// travels in structured messages, so nothing stays open.
func functionsPrompt(frames []*dataframes.Frame, cfg config) (string, error) {
	if cfg.inputVariables != nil {
		return "", ErrInputVariablesUnsupported
	}

	multi := len(frames) > 1
	preview := cfg.preview()

	prefix := cfg.prefix
	if prefix == "" {
		if multi {
			prefix = multiPrefixFunctions
		} else {
			prefix = singlePrefixFunctions
		}
	}
	prefixText, err := renderFragment(prefix, map[string]string{"num_dfs": strconv.Itoa(len(frames))})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt prefix: %w", err)
	}

	if !preview {
		return prefixText, nil
	}

	suffix := cfg.suffix
	if !cfg.suffixSet {
		if multi {
			suffix = multiPreviewFunctions
		} else {
			suffix = singlePreviewFunctions
		}
	}
	values, err := previewValues(frames, cfg.headRows)
	if err != nil {
		return "", err
	}
	suffixText, err := renderFragment(suffix, values)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt suffix: %w", err)
	}

	return prefixText + suffixText, nil
}

// renderFragment fills whichever of values the fragment declares and
// renders it. Slots the fragment does not declare are ignored; slots
// it declares beyond values fail the render.
func renderFragment(text string, values map[string]string) (string, error) {
	tmpl, err := prompts.New(text)
	if err != nil {
		return "", err
	}
	for name, v := range values {
		if _, ok := tmpl.Slots()[name]; !ok {
			continue
		}
		if tmpl, err = tmpl.Fill(name, v); err != nil {
			return "", err
		}
	}
	return tmpl.Render(nil)
}
