// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model is the canonical in-memory representation of an experiment
// after the workbook has been read and validated. The builder package is the
// only writer; once builder.Build returns, the Experiment is treated as
// read-only by the generator.
//
// # Core Concepts
//
//   - Experiment: the root. It holds the scalar settings from the "general"
//     worksheet and every collection built from the other worksheets.
//
//   - Control: something presented on screen. Controls form a closed set of
//     variants (today only TextControl); callers switch on the concrete type.
//
//   - Response: a named, persistable participant action. Either a KbResponse
//     (a key press) or a ClickButtonResponse (a button click).
//
//   - TrialType and TrialStep: a named, ordered sequence of presentation steps.
//     Each step lists the controls it shows, the responses it accepts, and its
//     timing.
//
//   - Trial: one concrete row of the "trials" worksheet, i.e. an instance of a
//     TrialType with trial-specific control values, saved columns and styling.
//
//   - URLParameter: a numeric timing value that the page reads from its URL at
//     runtime, falling back to a compiled-in default.
//
// # Ordering
//
// Worksheet row order is meaningful: it fixes step numbers, the order of
// trial types, instruction pages and trials. Every collection whose order is
// observable in the generated script is therefore either a slice or an
// OrderedMap; plain Go maps are only used where the generator sorts keys
// itself.
package model
