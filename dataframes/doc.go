/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package dataframes provides the in-memory tabular data type that
// dataframe agents are assembled around.
//
// A Frame exposes row/column access, first-K-row extraction via Head,
// and markdown rendering via Markdown — the three capabilities prompt
// assembly depends on. How a Frame gets populated (CSV parsing, query
// results, ...) is up to the caller.
package dataframes
