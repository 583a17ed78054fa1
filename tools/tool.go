/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package tools defines the interface agents use to invoke tools.
package tools

import (
	"context"

	"github.com/invopop/jsonschema"
)

// Tool is a capability an agent can invoke by name with a single
// free-text input.
type Tool interface {
	// Name identifies the tool to the model. It must be unique within
	// an agent's tool list.
	Name() string

	// Description tells the model what the tool does and how to use it.
	Description() string

	// Call invokes the tool.
	Call(ctx context.Context, input string) (string, error)
}

// Structured is implemented by tools that declare a JSON schema for
// their arguments. Function/tool-call agents advertise this schema to
// the model; text-action agents ignore it and pass raw input.
type Structured interface {
	Tool

	// ArgsSchema describes the tool's argument object.
	ArgsSchema() *jsonschema.Schema
}
