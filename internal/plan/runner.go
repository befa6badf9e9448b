package plan

import (
	"fmt"

	"easyExcel/internal/logger"
	"easyExcel/internal/workbook"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Result counts what a run did.
type Result struct {
	Applied int
	Skipped int
}

// Runner executes plans.
type Runner struct {
	// CenterMerged is used for merge steps that leave center unset.
	CenterMerged bool
}

// Run executes p's steps in order against s. The first failing step stops
// the run without saving; steps already applied stay in the session and are
// written when it is closed.
func (r *Runner) Run(s *workbook.Session, p *Plan) (*Result, error) {
	res := &Result{}
	for i, step := range p.Steps {
		index := i + 1

		ok, err := r.shouldRun(s, step, index)
		if err != nil {
			return res, &StepError{Index: index, Op: step.Op, Err: err}
		}
		if !ok {
			logger.Debug("Skipped plan step", "step", index, "op", step.Op, "when", step.When)
			res.Skipped++
			continue
		}

		if err := r.apply(s, step); err != nil {
			return res, &StepError{Index: index, Op: step.Op, Err: err}
		}
		logger.Info("Applied plan step", "step", index, "op", step.Op, "sheet", step.Sheet)
		res.Applied++
	}

	if p.Save {
		if err := s.Save(); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (r *Runner) apply(s *workbook.Session, step Step) error {
	switch step.Op {
	case OpBold:
		return s.BoldCells(step.Sheet, step.Start, step.End, false)
	case OpMerge:
		center := r.CenterMerged
		if step.Center != nil {
			center = *step.Center
		}
		return s.MergeCells(step.Sheet, step.Start, step.End, center, false)
	case OpColorScale:
		return s.ApplyColorScale(step.Sheet, step.Start, step.End, false)
	case OpAddSheet:
		return s.AddSheet(step.Name, false)
	}
	return fmt.Errorf("unknown op %q", step.Op)
}

func (r *Runner) shouldRun(s *workbook.Session, step Step, index int) (bool, error) {
	if step.When == "" {
		return true, nil
	}

	program, err := compileCondition(step.When)
	if err != nil {
		return false, err
	}
	sheets, err := s.SheetNames()
	if err != nil {
		return false, err
	}

	out, err := expr.Run(program, conditionEnv(sheets, s.Path(), index))
	if err != nil {
		return false, fmt.Errorf("evaluate condition %q: %w", step.When, err)
	}
	return out.(bool), nil
}

func conditionEnv(sheets []string, file string, step int) map[string]any {
	return map[string]any{
		"sheets": sheets,
		"file":   file,
		"step":   step,
	}
}

func compileCondition(condition string) (*vm.Program, error) {
	program, err := expr.Compile(condition, expr.Env(conditionEnv(nil, "", 0)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", condition, err)
	}
	return program, nil
}
