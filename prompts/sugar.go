/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

// Must wraps a call returning (*Template, error) and panics on error.
// Intended for package-level template variables that are known to be
// valid at compile time:
//
//	var greeting = prompts.Must(prompts.New(`Hello {{name}}`))
func Must(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}

// MustNew parses a template and panics on error.
// Syntactic sugar for Must(New(...)).
func MustNew(text string) *Template {
	return Must(New(text))
}

// MustFill binds a literal string to a slot and panics on error.
// Syntactic sugar for Must(t.Fill(...))
func (t *Template) MustFill(name, value string) *Template {
	return Must(t.Fill(name, value))
}
