/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

import (
	"fmt"
	"maps"
	"slices"
)

// Template is a prompt template with named {{slot}} placeholders.
//
// Slots are discovered when the template is parsed. Each slot is either
// filled ahead of time with Fill (and friends) or left open for Render
// to resolve at call time. Render fails if any slot is still open, so a
// template can never silently produce text with a hole in it.
type Template struct {
	text  string
	slots map[string]slot
}

// New parses a template and records every placeholder it declares.
func New(text string) (*Template, error) {
	slots := make(map[string]slot)

	// Walking the template with identity replacements both validates the
	// placeholder syntax and collects the slot names.
	parsed, err := walkTemplate(text, func(name string) (string, error) {
		if _, ok := slots[name]; !ok {
			slots[name] = &openSlot{name: name}
		}
		return fmt.Sprintf("{{%s}}", name), nil
	})
	if err != nil {
		return nil, err
	}

	return &Template{text: parsed, slots: slots}, nil
}

// Slots returns the names of all placeholders declared by the template.
func (t *Template) Slots() map[string]struct{} {
	names := make(map[string]struct{}, len(t.slots))
	for name := range t.slots {
		names[name] = struct{}{}
	}
	return names
}

// Open returns the sorted names of slots that have not been filled yet.
func (t *Template) Open() []string {
	var names []string
	for name, s := range t.slots {
		if _, open := s.(*openSlot); open {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Fill binds a literal string to a slot and returns a new Template.
// It fails if the slot does not exist or was already filled.
func (t *Template) Fill(name, value string) (*Template, error) {
	return t.fill(name, &literalSlot{val: value})
}

// FillJSON binds structured data to a slot, marshaled as indented JSON.
func (t *Template) FillJSON(name string, data any) (*Template, error) {
	return t.fill(name, &jsonSlot{data: data})
}

// FillYAML binds structured data to a slot, marshaled as YAML.
func (t *Template) FillYAML(name string, data any) (*Template, error) {
	return t.fill(name, &yamlSlot{data: data})
}

func (t *Template) fill(name string, s slot) (*Template, error) {
	if err := existsAndOpen(t.slots, name); err != nil {
		return nil, err
	}
	next := &Template{
		text:  t.text,
		slots: maps.Clone(t.slots),
	}
	next.slots[name] = s
	return next, nil
}

// Render produces the final text. The values map resolves the remaining
// open slots; every declared slot must end up with a value, and every
// entry in values must name an open slot.
func (t *Template) Render(values map[string]string) (string, error) {
	resolved := make(map[string]string, len(t.slots))
	for name, s := range t.slots {
		if _, open := s.(*openSlot); open {
			continue
		}
		val, err := s.value()
		if err != nil {
			return "", err
		}
		resolved[name] = val
	}

	for name, val := range values {
		if _, ok := t.slots[name]; !ok {
			return "", fmt.Errorf("slot %q not found in template", name)
		}
		if _, taken := resolved[name]; taken {
			return "", fmt.Errorf("slot %q already filled", name)
		}
		resolved[name] = val
	}

	return walkTemplate(t.text, func(name string) (string, error) {
		val, ok := resolved[name]
		if !ok {
			return "", fmt.Errorf("open slot: %s", name)
		}
		return val, nil
	})
}
