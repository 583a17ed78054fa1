/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts_test

import (
	"strings"
	"testing"

	"github.com/CallumCM/langchain/prompts"
	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	t.Run("no slots", func(t *testing.T) {
		tmpl, err := prompts.New("A plain prompt with no placeholders")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if got := len(tmpl.Slots()); got != 0 {
			t.Errorf("slot count: got = %d, wanted = 0", got)
		}
	})

	t.Run("multiple slots", func(t *testing.T) {
		tmpl, err := prompts.New("Question: {{input}}\n\nScratchpad: {{agent_scratchpad}}\n\nTables: {{df_head}}")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		want := map[string]struct{}{"input": {}, "agent_scratchpad": {}, "df_head": {}}
		if diff := cmp.Diff(want, tmpl.Slots()); diff != "" {
			t.Errorf("Slots() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("repeated slot counted once", func(t *testing.T) {
		tmpl, err := prompts.New("First {{data}}, then {{data}} again")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if got := len(tmpl.Slots()); got != 1 {
			t.Errorf("slot count: got = %d, wanted = 1", got)
		}
	})

	t.Run("single braces pass through", func(t *testing.T) {
		tmpl, err := prompts.New(`df[df["col"] > 1]`)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		out, err := tmpl.Render(nil)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if out != `df[df["col"] > 1]` {
			t.Errorf("Render() = %q, wanted input text unchanged", out)
		}
	})

	t.Run("unclosed slot", func(t *testing.T) {
		if _, err := prompts.New("broken {{slot"); err == nil {
			t.Error("New() error = nil, wanted unclosed slot error")
		}
	})

	t.Run("invalid identifier", func(t *testing.T) {
		if _, err := prompts.New("bad {{1abc}}"); err == nil {
			t.Error("New() error = nil, wanted invalid identifier error")
		}
	})
}

func TestFill(t *testing.T) {
	base := prompts.MustNew("{{prefix}}\n\nQuestion: {{input}}")

	t.Run("fill and render", func(t *testing.T) {
		tmpl, err := base.Fill("prefix", "You are working with a dataframe.")
		if err != nil {
			t.Fatalf("Fill() error = %v", err)
		}
		out, err := tmpl.Render(map[string]string{"input": "how many rows?"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		want := "You are working with a dataframe.\n\nQuestion: how many rows?"
		if out != want {
			t.Errorf("Render() = %q, wanted %q", out, want)
		}
	})

	t.Run("unknown slot", func(t *testing.T) {
		if _, err := base.Fill("missing", "x"); err == nil {
			t.Error("Fill() error = nil, wanted unknown slot error")
		}
	})

	t.Run("double fill", func(t *testing.T) {
		tmpl := base.MustFill("prefix", "a")
		if _, err := tmpl.Fill("prefix", "b"); err == nil {
			t.Error("Fill() error = nil, wanted already filled error")
		}
	})

	t.Run("immutable", func(t *testing.T) {
		_ = base.MustFill("prefix", "a")
		if got := base.Open(); len(got) != 2 {
			t.Errorf("base Open() = %v, wanted both slots still open", got)
		}
	})
}

func TestRender(t *testing.T) {
	t.Run("open slot fails", func(t *testing.T) {
		tmpl := prompts.MustNew("{{a}} and {{b}}").MustFill("a", "x")
		if _, err := tmpl.Render(nil); err == nil {
			t.Error("Render() error = nil, wanted open slot error")
		}
	})

	t.Run("value for filled slot fails", func(t *testing.T) {
		tmpl := prompts.MustNew("{{a}}").MustFill("a", "x")
		if _, err := tmpl.Render(map[string]string{"a": "y"}); err == nil {
			t.Error("Render() error = nil, wanted already filled error")
		}
	})

	t.Run("value for unknown slot fails", func(t *testing.T) {
		tmpl := prompts.MustNew("{{a}}")
		if _, err := tmpl.Render(map[string]string{"a": "x", "zz": "y"}); err == nil {
			t.Error("Render() error = nil, wanted unknown slot error")
		}
	})
}

func TestFillJSON(t *testing.T) {
	tmpl := prompts.MustNew("Config:\n{{config}}")
	tmpl, err := tmpl.FillJSON("config", map[string]int{"rows": 5})
	if err != nil {
		t.Fatalf("FillJSON() error = %v", err)
	}
	out, err := tmpl.Render(nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, `"rows": 5`) {
		t.Errorf("Render() = %q, wanted JSON body", out)
	}
}

func TestFillYAML(t *testing.T) {
	tmpl := prompts.MustNew("Config:\n{{config}}")
	tmpl, err := tmpl.FillYAML("config", map[string]int{"rows": 5})
	if err != nil {
		t.Fatalf("FillYAML() error = %v", err)
	}
	out, err := tmpl.Render(nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "rows: 5") {
		t.Errorf("Render() = %q, wanted YAML body", out)
	}
}

func TestOpen(t *testing.T) {
	tmpl := prompts.MustNew("{{b}} {{a}} {{c}}").MustFill("b", "x")
	want := []string{"a", "c"}
	if diff := cmp.Diff(want, tmpl.Open()); diff != "" {
		t.Errorf("Open() mismatch (-want +got):\n%s", diff)
	}
}
