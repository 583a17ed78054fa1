/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dataframes

import (
	"fmt"
	"slices"
)

// Frame is an in-memory table: named columns and rows of cells.
// Frames are immutable after construction; accessors return copies and
// Head returns a new Frame, so a Frame can be shared freely between an
// agent's prompt and its execution tool.
type Frame struct {
	columns []string
	rows    [][]any
}

// New constructs a Frame from column names and rows.
// Every row must have exactly one cell per column.
func New(columns []string, rows [][]any) (*Frame, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("frame requires at least one column")
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(columns))
		}
	}
	return &Frame{
		columns: slices.Clone(columns),
		rows:    cloneRows(rows),
	}, nil
}

// Must wraps a call returning (*Frame, error) and panics on error.
// Intended for fixtures and examples where the shape is known.
func Must(f *Frame, err error) *Frame {
	if err != nil {
		panic(err)
	}
	return f
}

// Columns returns a copy of the column names, in order.
func (f *Frame) Columns() []string {
	return slices.Clone(f.columns)
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return len(f.rows)
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	return len(f.columns)
}

// Row returns a copy of row i.
func (f *Frame) Row(i int) ([]any, error) {
	if i < 0 || i >= len(f.rows) {
		return nil, fmt.Errorf("row %d out of range [0, %d)", i, len(f.rows))
	}
	return slices.Clone(f.rows[i]), nil
}

// Head returns a new Frame holding the first n rows.
// When n exceeds the row count the whole frame is returned, so the
// result always has min(n, NumRows()) rows.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	n = min(n, len(f.rows))
	return &Frame{
		columns: slices.Clone(f.columns),
		rows:    cloneRows(f.rows[:n]),
	}
}

func cloneRows(rows [][]any) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}
	return out
}
