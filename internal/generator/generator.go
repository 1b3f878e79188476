// Package generator renders a validated model.Experiment into the jsPsych
// page that runs it.
//
// Each part of the page (styles, instructions, trial data, trial flow and
// the finish block) is produced by its own sub-generator as a typed
// script fragment; script.Render serializes the assembled Document. Problems
// found while generating are recorded in the diag.Sink and replaced by a
// harmless substitute, so a previewable page is always produced.
package generator

import (
	"context"
	"errors"
	"strings"

	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/script"
)

// ErrNoExperiment is returned when Generate is called without an Experiment.
var ErrNoExperiment = errors.New("no experiment to generate")

const (
	DefaultJSPsychVersion = "7.1.2"
	DefaultPluginVersion  = "1.1.0"
	DefaultCDNBase        = "https://unpkg.com"
	DefaultLocalPath      = "jspsych"
)

// Options control where the page loads jsPsych from.
type Options struct {
	LocalImports   bool
	JSPsychVersion string
	PluginVersion  string
	CDNBase        string
	LocalPath      string
}

// DefaultOptions loads jsPsych 7.1.2 from unpkg.
func DefaultOptions() Options {
	return Options{
		JSPsychVersion: DefaultJSPsychVersion,
		PluginVersion:  DefaultPluginVersion,
		CDNBase:        DefaultCDNBase,
		LocalPath:      DefaultLocalPath,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.JSPsychVersion == "" {
		o.JSPsychVersion = d.JSPsychVersion
	}
	if o.PluginVersion == "" {
		o.PluginVersion = d.PluginVersion
	}
	if o.CDNBase == "" {
		o.CDNBase = d.CDNBase
	}
	if o.LocalPath == "" {
		o.LocalPath = d.LocalPath
	}
	return o
}

// Generator renders experiments. It reports to the sink it was created with.
type Generator struct {
	sink *diag.Sink
	opts Options
}

// New creates a Generator.
func New(sink *diag.Sink, opts Options) *Generator {
	return &Generator{sink: sink, opts: opts.withDefaults()}
}

// Generate renders the experiment into page text.
func (g *Generator) Generate(ctx context.Context, exp *model.Experiment) (string, error) {
	doc, err := g.Document(ctx, exp)
	if err != nil {
		return "", err
	}
	return script.Render(doc)
}

// Document assembles the page fragments without serializing them.
func (g *Generator) Document(ctx context.Context, exp *model.Experiment) (*script.Document, error) {
	if exp == nil {
		return nil, ErrNoExperiment
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Generator started.")

	doc := &script.Document{
		Title:   exp.Title,
		Imports: g.imports(exp),
		Styles:  styleBlocks(exp),
		Setup: script.Setup{
			FullScreen:   exp.FullScreen,
			GetSubjectID: exp.GetSubjectID,
			GetSessionID: exp.GetSessionID,
			StartBeep:    exp.StartBeep,
		},
	}
	for _, p := range exp.URLParameters.Values() {
		doc.URLParams = append(doc.URLParams, script.URLParam{Name: p.Name, Default: p.Default})
	}

	doc.Instructions = g.instructionPages(exp)
	doc.Rows, doc.Columns = g.dataRows(exp)
	doc.Flow = g.flow(exp)
	if exp.SaveResults {
		doc.Finish = finishBlock(exp, doc)
	} else {
		doc.Columns = nil
	}

	logger.Debug("Generator finished.",
		"styles", len(doc.Styles),
		"instructions", len(doc.Instructions),
		"rows", len(doc.Rows),
		"branches", len(doc.Flow.Branches),
		"columns", len(doc.Columns),
	)
	return doc, nil
}

func (g *Generator) imports(exp *model.Experiment) script.Imports {
	plugins := []string{"plugin-html-keyboard-response", "plugin-html-button-response"}
	if exp.FullScreen {
		plugins = append(plugins, "plugin-fullscreen")
	}

	var imp script.Imports
	if g.opts.LocalImports {
		base := strings.TrimSuffix(g.opts.LocalPath, "/")
		imp.Scripts = append(imp.Scripts, base+"/jspsych.js")
		for _, p := range plugins {
			imp.Scripts = append(imp.Scripts, base+"/"+p+".js")
		}
		imp.Stylesheets = []string{base + "/jspsych.css"}
		return imp
	}

	base := strings.TrimSuffix(g.opts.CDNBase, "/")
	core := base + "/jspsych@" + g.opts.JSPsychVersion
	imp.Scripts = append(imp.Scripts, core)
	for _, p := range plugins {
		imp.Scripts = append(imp.Scripts, base+"/@jspsych/"+p+"@"+g.opts.PluginVersion)
	}
	imp.Stylesheets = []string{core + "/css/jspsych.css"}
	return imp
}
