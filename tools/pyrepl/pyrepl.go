/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package pyrepl provides the sandboxed Python REPL tool that dataframe
// agents use to run generated code against their frames.
//
// The sandbox itself is an external collaborator behind the Interpreter
// interface; this package only binds frames to variable names and
// exposes the tool contract.
package pyrepl

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/CallumCM/langchain/dataframes"
	"github.com/CallumCM/langchain/schema"
	"github.com/chainguard-dev/clog"
	"github.com/invopop/jsonschema"
)

// Interpreter executes Python source with the given frames in scope as
// local variables, returning whatever the code printed or evaluated to.
type Interpreter interface {
	Run(ctx context.Context, code string, locals map[string]*dataframes.Frame) (string, error)
}

// args is the schema structured agents advertise for this tool.
type args struct {
	Query string `json:"query" jsonschema:"description=Python code to execute,required"`
}

// Tool is a code-execution tool with a fixed set of frame bindings.
// The bindings belong to this instance alone: callers get copies.
type Tool struct {
	interp Interpreter
	locals map[string]*dataframes.Frame
}

// New binds frames to an interpreter. The locals map is copied.
func New(interp Interpreter, locals map[string]*dataframes.Frame) (*Tool, error) {
	if interp == nil {
		return nil, errors.New("interpreter cannot be nil")
	}
	return &Tool{
		interp: interp,
		locals: maps.Clone(locals),
	}, nil
}

// Name implements tools.Tool.
func (t *Tool) Name() string {
	return "python_repl_ast"
}

// Description implements tools.Tool.
func (t *Tool) Description() string {
	return "A Python shell. Use this to execute python commands. " +
		"Input should be a valid python command. " +
		"When using this tool, sometimes output is abbreviated - " +
		"make sure it does not look truncated before using it."
}

// ArgsSchema implements tools.Structured.
func (t *Tool) ArgsSchema() *jsonschema.Schema {
	return schema.ReflectType[args]()
}

// Call runs the input as Python code with the bound frames in scope.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	clog.FromContext(ctx).With("tool", t.Name()).
		With("code_length", len(input)).
		Debug("Executing code")

	out, err := t.interp.Run(ctx, input, maps.Clone(t.locals))
	if err != nil {
		return "", fmt.Errorf("running code: %w", err)
	}
	return out, nil
}

// Locals returns a copy of the variable bindings.
func (t *Tool) Locals() map[string]*dataframes.Frame {
	return maps.Clone(t.locals)
}
