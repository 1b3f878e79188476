// Package script holds the typed intermediate form of a generated experiment
// page and the serializer that turns it into HTML.
//
// A Document is a flat tree of fragments (style blocks, instruction pages,
// trial data rows, the trial flow and the finish block). The generator fills
// it from a model.Experiment; Render writes it through an embedded
// text/template skeleton. Render is deterministic: the same Document always
// yields the same bytes.
package script
