package builder

import (
	"context"

	"github.com/vk/expc/internal/ctxlog"
	"github.com/vk/expc/internal/diag"
	"github.com/vk/expc/internal/model"
	"github.com/vk/expc/internal/worksheet"
)

func (b *Builder) parseInstructions(ctx context.Context, exp *model.Experiment) {
	logger := ctxlog.FromContext(ctx)
	t := b.reader.Instructions()
	logger.Debug("Parsing instructions worksheet.", "rows", len(t.Rows))

	if t.Empty() {
		if b.opts.InstructionsMandatory {
			b.sink.Warnf("NO_INSTRUCTIONS", diag.Sheet(t.Name), "no instructions were specified.")
		}
		return
	}
	if !t.HasColumn("text") {
		b.sink.Errorf("INSTRUCTIONS_MISSING_TEXT_COL", diag.Sheet(t.Name), "column \"text\" is missing. All instructions were ignored.")
		return
	}
	if !t.HasColumn("responses") {
		b.sink.Errorf("INSTRUCTIONS_MISSING_RESPONSE_COL", diag.Sheet(t.Name), "column \"responses\" is missing. All instructions were ignored.")
		return
	}

	for _, row := range t.Rows {
		textValue := row.Get("text")
		if worksheet.IsEmpty(textValue) {
			b.sink.Errorf("INSTRUCTION_TEXT_MISSING", cell(t, row, "text"), "the instruction text is empty. This line was ignored.")
			continue
		}

		at := cell(t, row, "responses")
		names := splitNames(row.Get("responses"))
		if len(names) == 0 {
			b.sink.Errorf("INSTRUCTIONS_MUST_DEFINE_RESPONSE", at,
				"no responses were specified; an instructions page must define at least one response. This line was ignored.")
			continue
		}

		valid, _ := b.resolveResponses(exp, names, at,
			"INSTRUCTION_DUPLICATE_RESPONSES", "INSTRUCTION_INVALID_RESPONSE_NAMES", "INSTRUCTIONS_WITH_MULTIPLE_RESPONSE_TYPES")
		if len(valid) == 0 {
			continue
		}

		exp.Instructions = append(exp.Instructions, &model.Instruction{
			Text:          worksheet.String(textValue),
			ResponseNames: valid,
		})
	}
	logger.Debug("Instructions parsed.", "pages", len(exp.Instructions))
}
