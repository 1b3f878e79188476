package generator

import (
	"fmt"

	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/script"
	"github.com/vk/expc/internal/worksheet"
)

// flow emits one branch per trial type with a descriptor per step.
func (g *Generator) flow(exp *model.Experiment) script.FlowBlock {
	var block script.FlowBlock
	for _, tt := range exp.TrialTypes.Values() {
		branch := script.FlowBranch{TrialType: tt.Name}
		for _, step := range tt.Steps {
			branch.Steps = append(branch.Steps, g.stepDescriptor(exp, tt, step))
		}
		block.Branches = append(block.Branches, branch)
	}
	return block
}

func (g *Generator) stepDescriptor(exp *model.Experiment, tt *model.TrialType, step *model.TrialStep) script.StepDescriptor {
	id := stepID(tt.Name, step.Num)
	return script.StepDescriptor{
		Prompt: g.prompt(exp, step.ResponseNames, step.ControlNames, diag.Sheet(worksheet.SheetTrialType),
			"STEP_MULTIPLE_RESPONSE_TYPES", fmt.Sprintf("step %d of trial type %q", step.Num, tt.Name)),
		ID:          id,
		Stimulus:    stimulusField(step.Num),
		Duration:    number(step.Duration),
		DelayBefore: delay(step.DelayBefore),
		DelayAfter:  delay(step.DelayAfter),
	}
}

func number(n *model.Numeric) *script.Number {
	if n == nil {
		return nil
	}
	out := &script.Number{Value: n.Value}
	if n.Param != nil {
		out.Param = n.Param.Name
	}
	return out
}

// delay drops a literal zero delay.
func delay(n model.Numeric) *script.Number {
	if n.Param == nil && n.Value == 0 {
		return nil
	}
	return number(&n)
}
