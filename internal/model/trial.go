// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines trial types, their steps, instruction pages and the
// concrete trials.
package model

import "strconv"

// DefaultTrialTypeName is used when the trial_type worksheet has no type column.
const DefaultTrialTypeName = "default"

// Numeric is a timing value in milliseconds. When Param is set the page reads
// the value from the URL at runtime and Value is only the fallback.
type Numeric struct {
	Value float64
	Param *URLParameter
}

// String renders the literal value without a trailing ".0" for integers.
func (n Numeric) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// TrialType is a named, ordered sequence of steps.
type TrialType struct {
	Name  string
	Steps []*TrialStep
}

// ControlNames returns the union of control names used by the type's steps,
// in first-seen order.
func (t *TrialType) ControlNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, step := range t.Steps {
		for _, name := range step.ControlNames {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// UsesControl reports whether any step of the type presents the control.
func (t *TrialType) UsesControl(name string) bool {
	for _, step := range t.Steps {
		for _, n := range step.ControlNames {
			if n == name {
				return true
			}
		}
	}
	return false
}

// TrialStep is one timed or responsive unit of a TrialType.
type TrialStep struct {
	// Num is the 1-based position within the trial type.
	Num           int
	ControlNames  []string
	ResponseNames []string
	// Duration is nil when the step waits for a response indefinitely.
	Duration    *Numeric
	DelayBefore Numeric
	DelayAfter  Numeric
}

// Instruction is a single instructions page, dismissed by any of its responses.
type Instruction struct {
	Text          string
	ResponseNames []string
}

// Trial is one row of the trials worksheet.
type Trial struct {
	TrialType string
	// ControlValues override the static text of the named controls.
	ControlValues map[string]string
	// SaveValues are written verbatim to the results, keyed by output column.
	SaveValues *OrderedMap[string]
	// CSS holds trial-specific style overrides per control.
	CSS map[string]*Style
}

// NewTrial returns an empty Trial of the given type.
func NewTrial(trialType string) *Trial {
	return &Trial{
		TrialType:     trialType,
		ControlValues: make(map[string]string),
		SaveValues:    NewOrderedMap[string](),
		CSS:           make(map[string]*Style),
	}
}

// AddCSS records a style override for a control.
func (t *Trial) AddCSS(control, attr, value string) {
	style, ok := t.CSS[control]
	if !ok {
		style = NewStyle()
		t.CSS[control] = style
	}
	style.Set(attr, value)
}
