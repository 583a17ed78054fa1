/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package prompts provides a small template abstraction for building
// agent prompts from text with named {{slot}} placeholders.
//
// A Template declares its slots at parse time. Slots can be filled
// ahead of time (partial application, for values known when the agent
// is assembled) or left open and supplied when Render is called (for
// values that only exist per turn, such as the user's question or the
// accumulated scratchpad):
//
//	t := prompts.MustNew(`{{intro}}
//
//	Question: {{input}}
//	{{agent_scratchpad}}`)
//
//	t, err := t.Fill("intro", "You are a helpful assistant.")
//	...
//	text, err := t.Render(map[string]string{
//		"input":            question,
//		"agent_scratchpad": scratchpad,
//	})
//
// Render fails if any declared slot is still open, and filling a slot
// twice is an error, so the set of values a template consumes is fully
// checked. Templates are immutable: Fill returns a new Template, which
// makes it safe to share package-level templates across assemblies.
//
// FillJSON and FillYAML bind structured data by marshaling it into the
// slot, for prompts that embed machine-readable context.
package prompts
