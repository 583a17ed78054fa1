/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dataframe

import "errors"

// Assembly failures. All are raised synchronously by New; construction
// is all-or-nothing, so callers never see a partially built agent.
var (
	// ErrSuffixPreviewConflict reports a caller that supplied a suffix
	// and also set the include-preview flag; only one may steer prompt
	// construction.
	ErrSuffixPreviewConflict = errors.New("if a suffix is specified, include-preview should not be")

	// ErrInputVariablesUnsupported reports an explicit input-variable
	// list combined with a function/tool-call agent type, which has no
	// partial-binding mechanism.
	ErrInputVariablesUnsupported = errors.New("input variables are not supported with this agent type")

	// ErrNotAFrame reports a dataset argument that is not a frame or a
	// non-empty collection of frames.
	ErrNotAFrame = errors.New("expected a frame or a non-empty collection of frames")

	// ErrUnsupportedAgentType reports an agent type outside the three
	// known values.
	ErrUnsupportedAgentType = errors.New("unsupported agent type")

	// ErrNoInterpreter reports a missing code interpreter; the
	// execution tool cannot be built without one.
	ErrNoInterpreter = errors.New("no interpreter configured")
)
