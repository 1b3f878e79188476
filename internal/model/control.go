// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the layout controls: the closed set of things that can be
// placed on screen, and the Frame that positions them.
package model

// Frame positions an element. Each coordinate is a CSS length ("12px",
// "50%") or empty when unset; unset coordinates fall back to the renderer's
// default.
type Frame struct {
	Left   string
	Top    string
	Width  string
	Height string
}

// IsPlaced reports whether left or top is set.
func (f Frame) IsPlaced() bool {
	return f.Left != "" || f.Top != ""
}

// IsZero reports whether no coordinate is set.
func (f Frame) IsZero() bool {
	return f == Frame{}
}

// Control is a presentable layout item. The set of implementations is
// closed: TextControl is the only variant.
type Control interface {
	ControlName() string
	isControl()
}

// TextControl displays a block of text.
type TextControl struct {
	Name string
	Text string
	// Position is an explicit CSS position value; empty means the renderer
	// decides from the Frame.
	Position    string
	Frame       Frame
	BorderColor string
	CSS         *Style
}

func (c *TextControl) ControlName() string { return c.Name }
func (*TextControl) isControl()            {}
