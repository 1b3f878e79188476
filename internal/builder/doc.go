// Package builder turns the worksheets of an experiment workbook into a
// validated model.Experiment.
//
// The Builder reads the worksheets in a fixed order (general, layout,
// response, trial_type, instructions, trials); each stage may read what
// earlier stages built but never changes it. Problems are recorded in the
// injected diag.Sink and the offending cell, row or reference is dropped or
// replaced by a default, so a single pass reports as many problems as
// possible. Only a workbook that cannot be opened stops the build.
package builder
