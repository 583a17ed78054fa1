/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dataframe

import (
	"fmt"

	"github.com/CallumCM/langchain/dataframes"
)

// Input is the dataset argument: exactly one frame, or an ordered
// collection of frames. It is a closed variant — Frame and Frames are
// the only constructors — so agent assembly never type-sniffs its
// dataset argument.
type Input interface {
	frames() []*dataframes.Frame
}

type singleInput struct {
	frame *dataframes.Frame
}

func (s singleInput) frames() []*dataframes.Frame {
	return []*dataframes.Frame{s.frame}
}

type collectionInput struct {
	members []*dataframes.Frame
}

func (c collectionInput) frames() []*dataframes.Frame {
	return c.members
}

// Frame wraps a single frame as agent input.
func Frame(f *dataframes.Frame) Input {
	return singleInput{frame: f}
}

// Frames wraps an ordered collection of frames as agent input.
// Order is significant: it determines variable naming (df1, df2, ...)
// and preview ordering.
func Frames(fs ...*dataframes.Frame) Input {
	return collectionInput{members: fs}
}

// resolveInput checks the dataset argument and returns the ordered,
// non-empty frame set.
func resolveInput(input Input) ([]*dataframes.Frame, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: got nil", ErrNotAFrame)
	}
	fs := input.frames()
	if len(fs) == 0 {
		return nil, fmt.Errorf("%w: got an empty collection", ErrNotAFrame)
	}
	for i, f := range fs {
		if f == nil {
			return nil, fmt.Errorf("%w: collection member %d is nil", ErrNotAFrame, i)
		}
	}
	return fs, nil
}
