/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// slot represents the value a placeholder will render to.
type slot interface {
	value() (string, error)
}

// openSlot is the initial state of every placeholder.
type openSlot struct {
	name string
}

func (o *openSlot) value() (string, error) {
	return "", fmt.Errorf("open slot: %s", o.name)
}

// literalSlot holds a plain string value.
type literalSlot struct {
	val string
}

func (l *literalSlot) value() (string, error) {
	return l.val, nil
}

// jsonSlot marshals structured data as indented JSON.
type jsonSlot struct {
	data any
}

func (j *jsonSlot) value() (string, error) {
	bytes, err := json.MarshalIndent(j.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(bytes), nil
}

// yamlSlot marshals structured data as YAML.
type yamlSlot struct {
	data any
}

func (y *yamlSlot) value() (string, error) {
	bytes, err := yaml.Marshal(y.data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(bytes), nil
}

// existsAndOpen checks that a slot exists and has not been filled.
func existsAndOpen(slots map[string]slot, name string) error {
	s, exists := slots[name]
	if !exists {
		return fmt.Errorf("slot %q not found in template", name)
	}
	if _, open := s.(*openSlot); !open {
		return fmt.Errorf("slot %q already filled", name)
	}
	return nil
}
