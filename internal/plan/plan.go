// Package plan runs a list of formatting steps, read from a TOML file,
// against one workbook session.
//
//	workbook = "report.xlsx"
//	save = true
//
//	[[steps]]
//	op = "add_sheet"
//	name = "Summary"
//	when = "'Summary' not in sheets"
//
//	[[steps]]
//	op = "merge"
//	sheet = "Summary"
//	start = "A1"
//	end = "D1"
package plan

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Step operations.
const (
	OpBold       = "bold"
	OpMerge      = "merge"
	OpColorScale = "color_scale"
	OpAddSheet   = "add_sheet"
)

type Plan struct {
	// Workbook is used when the caller does not name one.
	Workbook string `toml:"workbook"`
	// Save adds a save after the last step. Closing the session saves
	// regardless.
	Save  bool   `toml:"save"`
	Steps []Step `toml:"steps"`
}

type Step struct {
	Op    string `toml:"op"`
	Sheet string `toml:"sheet"`
	Start string `toml:"start"`
	End   string `toml:"end"`
	// Center applies to merge steps; unset means the runner's default.
	Center *bool  `toml:"center"`
	Name   string `toml:"name"`
	// When is an expr-lang condition over sheets, file and step. The step
	// is skipped when it evaluates to false.
	When string `toml:"when"`
}

// StepError reports which step failed.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Load reads and validates a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan %s: %w", path, err)
	}
	p, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a plan document.
func Parse(doc string) (*Plan, error) {
	var p Plan
	md, err := toml.Decode(doc, &p)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks every step has what its operation needs and that
// conditions compile.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan has no steps")
	}
	for i, step := range p.Steps {
		if err := step.validate(); err != nil {
			return &StepError{Index: i + 1, Op: step.Op, Err: err}
		}
	}
	return nil
}

func (s Step) validate() error {
	switch s.Op {
	case OpBold, OpMerge, OpColorScale:
		if s.Sheet == "" || s.Start == "" {
			return fmt.Errorf("sheet and start are required")
		}
		if s.Name != "" {
			return fmt.Errorf("name is only valid for %s", OpAddSheet)
		}
	case OpAddSheet:
		if s.Sheet != "" || s.Start != "" || s.End != "" {
			return fmt.Errorf("%s takes only name", OpAddSheet)
		}
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	if s.Center != nil && s.Op != OpMerge {
		return fmt.Errorf("center is only valid for %s", OpMerge)
	}
	if s.When != "" {
		if _, err := compileCondition(s.When); err != nil {
			return err
		}
	}
	return nil
}
