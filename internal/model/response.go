// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the responses a participant can give.
package model

// ResponseKind classifies responses by how the participant gives them.
type ResponseKind int

const (
	KindKeyboard ResponseKind = iota + 1
	KindButton
)

func (k ResponseKind) String() string {
	switch k {
	case KindKeyboard:
		return "keyboard"
	case KindButton:
		return "button"
	default:
		return "unknown"
	}
}

// Response is a named outcome that is written to the results when chosen.
// The set of implementations is closed: KbResponse and ClickButtonResponse.
type Response interface {
	ResponseID() string
	ResponseValue() string
	Kind() ResponseKind
	isResponse()
}

// KbResponse is chosen by pressing Key.
type KbResponse struct {
	ID    string
	Value string
	Key   string
}

func (r *KbResponse) ResponseID() string    { return r.ID }
func (r *KbResponse) ResponseValue() string { return r.Value }
func (*KbResponse) Kind() ResponseKind      { return KindKeyboard }
func (*KbResponse) isResponse()             {}

// ClickButtonResponse is chosen by clicking a button labelled Text. Frame is
// nil when the button uses the runtime's default placement.
type ClickButtonResponse struct {
	ID    string
	Value string
	Text  string
	Frame *Frame
}

func (r *ClickButtonResponse) ResponseID() string    { return r.ID }
func (r *ClickButtonResponse) ResponseValue() string { return r.Value }
func (*ClickButtonResponse) Kind() ResponseKind      { return KindButton }
func (*ClickButtonResponse) isResponse()             {}
