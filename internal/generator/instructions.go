package generator

import (
	"fmt"

	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/script"
	"github.com/vk/expc/internal/worksheet"
)

func (g *Generator) instructionPages(exp *model.Experiment) []script.InstructionPage {
	pages := make([]script.InstructionPage, 0, len(exp.Instructions))
	for i, ins := range exp.Instructions {
		page := fmt.Sprintf("instructions page %d", i+1)
		pages = append(pages, script.InstructionPage{
			Prompt:   g.prompt(exp, ins.ResponseNames, nil, diag.Sheet(worksheet.SheetInstructions), "INSTRUCTION_MULTIPLE_RESPONSE_TYPES", page),
			Stimulus: textMarkup(ins.Text),
		})
	}
	return pages
}
