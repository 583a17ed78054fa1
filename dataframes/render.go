/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dataframes

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sethvargo/go-envconfig"
)

// renderOptions holds process-wide display settings for Markdown.
// A zero MaxTableWidth leaves rows unwrapped, which is what prompt
// previews need: a wrapped table no longer parses as one row per line.
type renderOptions struct {
	MaxTableWidth int `env:"DATAFRAME_MAX_TABLE_WIDTH, default=0"`
}

var (
	renderOnce sync.Once
	renderOpts renderOptions
	renderErr  error
)

// Init loads display options from the environment. The first call
// wins; repeated calls are no-ops and return the first call's error.
// Markdown applies defaults lazily, so calling Init is optional.
func Init(ctx context.Context) error {
	renderOnce.Do(func() {
		renderErr = envconfig.Process(ctx, &renderOpts)
	})
	return renderErr
}

// Markdown renders the frame as a markdown table with a leading index
// column, one row per line.
func (f *Frame) Markdown() (string, error) {
	// Display options apply process-wide and only on first use.
	_ = Init(context.Background())

	var buf strings.Builder
	table := newMarkdownTable(append([]string{""}, f.columns...), &buf)

	for i, row := range f.rows {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, strconv.Itoa(i))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		if err := table.Append(cells); err != nil {
			return "", fmt.Errorf("appending row %d: %w", i, err)
		}
	}

	if err := table.Render(); err != nil {
		return "", fmt.Errorf("rendering frame: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// newMarkdownTable creates a table writer configured for markdown
// output, consistent across every frame preview.
func newMarkdownTable(headers []string, w *strings.Builder) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: renderOpts.MaxTableWidth,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
