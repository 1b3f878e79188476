// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Experiment root and URL parameters.
package model

// DefaultResultsPrefix is the results filename prefix used when none is configured.
const DefaultResultsPrefix = "results"

// Experiment is the fully-resolved description of one experiment.
type Experiment struct {
	Title           string
	BackgroundColor string

	GetSubjectID bool
	GetSessionID bool
	SaveResults  bool
	FullScreen   bool
	StartBeep    bool
	// SaveRowsWithoutRT keeps result rows that have no reaction time.
	SaveRowsWithoutRT bool

	// ResultsFilename is a template such as "results_${subj_id}_${date}.csv";
	// the ${...} tokens are resolved by the page at runtime.
	ResultsFilename string

	Layout        *OrderedMap[Control]
	Responses     *OrderedMap[Response]
	TrialTypes    *OrderedMap[*TrialType]
	Instructions  []*Instruction
	Trials        []*Trial
	URLParameters *OrderedMap[*URLParameter]
}

// NewExperiment returns an Experiment with empty collections and defaults.
func NewExperiment() *Experiment {
	return &Experiment{
		ResultsFilename: DefaultResultsPrefix + "_${date}.csv",
		Layout:          NewOrderedMap[Control](),
		Responses:       NewOrderedMap[Response](),
		TrialTypes:      NewOrderedMap[*TrialType](),
		URLParameters:   NewOrderedMap[*URLParameter](),
	}
}

// Response returns a response by id. Ids are stored lower-cased.
func (e *Experiment) Response(id string) (Response, bool) {
	_, r, ok := e.Responses.LookupFold(id)
	return r, ok
}

// ResponsesFor resolves a list of response ids, skipping unknown ones.
func (e *Experiment) ResponsesFor(ids []string) []Response {
	out := make([]Response, 0, len(ids))
	for _, id := range ids {
		if r, ok := e.Response(id); ok {
			out = append(out, r)
		}
	}
	return out
}

// URLParameter is a runtime-overridable numeric value.
type URLParameter struct {
	Name    string
	Default float64
}
