/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pyrepl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/CallumCM/langchain/dataframes"
	"github.com/CallumCM/langchain/tools/pyrepl"
)

// fakeInterpreter records the last invocation.
type fakeInterpreter struct {
	code   string
	locals map[string]*dataframes.Frame
	out    string
	err    error
}

func (f *fakeInterpreter) Run(_ context.Context, code string, locals map[string]*dataframes.Frame) (string, error) {
	f.code = code
	f.locals = locals
	return f.out, f.err
}

func testFrame(t *testing.T) *dataframes.Frame {
	t.Helper()
	return dataframes.Must(dataframes.New([]string{"a"}, [][]any{{1}}))
}

func TestNew(t *testing.T) {
	t.Run("nil interpreter", func(t *testing.T) {
		if _, err := pyrepl.New(nil, nil); err == nil {
			t.Error("New() error = nil, wanted nil interpreter error")
		}
	})

	t.Run("locals copied", func(t *testing.T) {
		locals := map[string]*dataframes.Frame{"df": testFrame(t)}
		tool, err := pyrepl.New(&fakeInterpreter{}, locals)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		delete(locals, "df")
		if _, ok := tool.Locals()["df"]; !ok {
			t.Error("tool bindings shared the caller's map")
		}
	})
}

func TestCall(t *testing.T) {
	frame := testFrame(t)
	interp := &fakeInterpreter{out: "1"}
	tool, err := pyrepl.New(interp, map[string]*dataframes.Frame{"df": frame})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := tool.Call(context.Background(), "df['a'].sum()")
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if out != "1" {
		t.Errorf("Call() = %q, wanted %q", out, "1")
	}
	if interp.code != "df['a'].sum()" {
		t.Errorf("interpreter code = %q, wanted the raw input", interp.code)
	}
	if interp.locals["df"] != frame {
		t.Error("interpreter did not receive the bound frame")
	}
}

func TestCallError(t *testing.T) {
	wantErr := errors.New("boom")
	tool, err := pyrepl.New(&fakeInterpreter{err: wantErr}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := tool.Call(context.Background(), "x"); !errors.Is(err, wantErr) {
		t.Errorf("Call() error = %v, wanted wrapped %v", err, wantErr)
	}
}

func TestArgsSchema(t *testing.T) {
	tool, err := pyrepl.New(&fakeInterpreter{}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s := tool.ArgsSchema()
	if s == nil {
		t.Fatal("ArgsSchema() = nil")
	}
	if _, ok := s.Properties.Get("query"); !ok {
		t.Error("schema missing query property")
	}
	if len(s.Required) != 1 || s.Required[0] != "query" {
		t.Errorf("schema required = %v, wanted [query]", s.Required)
	}
}

func TestIdentity(t *testing.T) {
	tool, err := pyrepl.New(&fakeInterpreter{}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := tool.Name(); got != "python_repl_ast" {
		t.Errorf("Name() = %q, wanted python_repl_ast", got)
	}
	if tool.Description() == "" {
		t.Error("Description() is empty")
	}
}
