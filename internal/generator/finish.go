package generator

import (
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/script"
)

// finishBlock describes how results are filtered, decoded and saved. It
// reads the instruction pages and step prompts already placed in doc.
func finishBlock(exp *model.Experiment, doc *script.Document) *script.FinishBlock {
	fb := &script.FinishBlock{
		Filename:          exp.ResultsFilename,
		KeepRowsWithoutRT: exp.SaveRowsWithoutRT,
	}

	offset := 0
	if exp.FullScreen {
		offset++
	}
	for i := range doc.Instructions {
		fb.InstructionIndices = append(fb.InstructionIndices, offset+i)
	}

	for bi, tt := range exp.TrialTypes.Values() {
		branch := doc.Flow.Branches[bi]
		for si, step := range tt.Steps {
			desc := branch.Steps[si]
			values := responseValues(exp, step.ResponseNames, desc.Prompt)
			if len(values) == 0 {
				continue
			}
			fb.ResponseValues = append(fb.ResponseValues, script.StepValues{StepID: desc.ID, Values: values})
		}
	}
	return fb
}
