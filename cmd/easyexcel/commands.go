package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"easyExcel/internal/excel"
	"easyExcel/internal/host"
	"easyExcel/internal/logger"
	"easyExcel/internal/plan"
	"easyExcel/internal/tui"
	"easyExcel/internal/workbook"

	"github.com/spf13/cobra"
)

func newSheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <file|directory>",
		Short: "List the sheets of a workbook, or of every workbook in a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSheets,
	}
}

func runSheets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	target := args[0]

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return withSession(target, func(s *workbook.Session) error {
			names, err := s.SheetNames()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		})
	}

	files, err := excel.FindWorkbooks(target)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No workbooks found in directory: %s\n", target)
		return nil
	}

	logger.Info("Listing sheets", "directory", target, "file_count", len(files))
	errorCount := 0
	for _, file := range files {
		fmt.Fprintln(out, tui.HeadingStyle.Render(file))
		err := withSession(file, func(s *workbook.Session) error {
			names, err := s.SheetNames()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		})
		if err != nil {
			logger.Error("Failed to list sheets", "file", file, "error", err)
			fmt.Fprintln(out, tui.ErrorStyle.Render(fmt.Sprintf("  ❌ %v", err)))
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d of %d workbooks could not be read", errorCount, len(files))
	}
	return nil
}

func newAddSheetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-sheet <file> <name>",
		Short: "Add a worksheet to a workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withSession(args[0], func(s *workbook.Session) error {
				return s.AddSheet(args[1], false)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("✓ Added sheet "+args[1]))
			return nil
		},
	}
}

// rangeFlags are shared by the formatting commands.
type rangeFlags struct {
	sheet string
	start string
	end   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.sheet, "sheet", "s", "", "Worksheet name (omit to pick interactively)")
	cmd.Flags().StringVar(&f.start, "start", "", "First cell or defined name, e.g. A1")
	cmd.Flags().StringVar(&f.end, "end", "", "Last cell of the range, e.g. B2")
	cmd.MarkFlagRequired("start")
}

// resolveSheet returns --sheet, or asks the user to pick one.
func (f *rangeFlags) resolveSheet(s *workbook.Session) (string, error) {
	if f.sheet != "" {
		return f.sheet, nil
	}
	names, err := s.SheetNames()
	if err != nil {
		return "", err
	}
	return tui.PickSheet("Select a sheet in "+filepath.Base(s.Path()), names, gridConfig())
}

// newFormatCommand builds a command that applies one formatting operation.
func newFormatCommand(use, short, verb string, apply func(s *workbook.Session, cmd *cobra.Command, f *rangeFlags, sheet string) error) *cobra.Command {
	flags := &rangeFlags{}
	cmd := &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sheet string
			err := withSession(args[0], func(s *workbook.Session) error {
				var err error
				if sheet, err = flags.resolveSheet(s); err != nil {
					return err
				}
				return apply(s, cmd, flags, sheet)
			})
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("✓ %s %s on %s", verb, host.RangeRef(flags.start, flags.end), sheet)
			fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render(msg))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newBoldCommand() *cobra.Command {
	return newFormatCommand("bold", "Bold a cell or range", "Bolded",
		func(s *workbook.Session, _ *cobra.Command, f *rangeFlags, sheet string) error {
			return s.BoldCells(sheet, f.start, f.end, false)
		})
}

func newMergeCommand() *cobra.Command {
	cmd := newFormatCommand("merge", "Merge a range, optionally centering it", "Merged",
		func(s *workbook.Session, cmd *cobra.Command, f *rangeFlags, sheet string) error {
			center := cfg.Format.CenterMerged
			if cmd.Flags().Changed("center") {
				center, _ = cmd.Flags().GetBool("center")
			}
			return s.MergeCells(sheet, f.start, f.end, center, false)
		})
	cmd.Flags().Bool("center", true, "Center the merged text (default from [format] center_merged)")
	return cmd
}

func newColorScaleCommand() *cobra.Command {
	return newFormatCommand("color-scale", "Add a three-color scale to a range", "Added color scale to",
		func(s *workbook.Session, _ *cobra.Command, f *rangeFlags, sheet string) error {
			return s.ApplyColorScale(sheet, f.start, f.end, false)
		})
}

func newApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <plan.toml> [file]",
		Short: "Run the steps of a formatting plan against a workbook",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runApply,
	}
}

func runApply(cmd *cobra.Command, args []string) error {
	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}

	target := p.Workbook
	if len(args) == 2 {
		target = args[1]
	} else if target != "" && !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(args[0]), target)
	}
	if target == "" {
		return fmt.Errorf("no workbook given and plan %s names none", args[0])
	}

	logger.Info("Applying plan", "plan", args[0], "workbook", target, "steps", len(p.Steps))
	runner := &plan.Runner{CenterMerged: cfg.Format.CenterMerged}

	var res *plan.Result
	err = withSession(target, func(s *workbook.Session) error {
		var err error
		res, err = runner.Run(s, p)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render(
		fmt.Sprintf("✓ Applied %d steps, skipped %d", res.Applied, res.Skipped)))
	return nil
}

func newPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <file>",
		Short: "Choose a sheet interactively and print its name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var chosen string
			err := withSession(args[0], func(s *workbook.Session) error {
				var err error
				chosen, err = (&rangeFlags{}).resolveSheet(s)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), chosen)
			return nil
		},
	}
}
