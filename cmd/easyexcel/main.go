package main

import (
	"fmt"
	"log/slog"
	"os"

	"easyExcel/internal/com"
	"easyExcel/internal/config"
	"easyExcel/internal/excel"
	"easyExcel/internal/host"
	"easyExcel/internal/logger"
	"easyExcel/internal/tui"
	"easyExcel/internal/workbook"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	cfg        *config.Config
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "easyexcel",
		Short:         "Format Excel workbooks from the command line",
		Long:          "easyexcel opens a workbook on a spreadsheet host, applies formatting (color scales, merges, bold), adds sheets and saves it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(newSheetsCommand())
	rootCmd.AddCommand(newAddSheetCommand())
	rootCmd.AddCommand(newBoldCommand())
	rootCmd.AddCommand(newMergeCommand())
	rootCmd.AddCommand(newColorScaleCommand())
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newPickCommand())

	return rootCmd
}

func setup() error {
	var err error
	cfg, err = config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if verbose {
		logger.SetOutput(os.Stderr, slog.LevelDebug)
		return nil
	}
	return logger.Setup(cfg.Log.Directory, cfg.Log.Level)
}

// newHost returns the backend named in the [host] section.
func newHost() host.Application {
	if cfg.Host.Backend == "com" {
		return com.NewApp(cfg.Host.BindingCache)
	}
	return excel.NewApp()
}

func sessionOptions() workbook.Options {
	return workbook.Options{
		Flags:                cfg.Flags(),
		ColorScale:           cfg.ColorScale(),
		StrictSheetNames:     cfg.Sheets.StrictNames,
		RollbackInvalidSheet: cfg.Sheets.RollbackInvalidSheet,
	}
}

// withSession opens path, runs fn and closes (and so saves) the workbook.
func withSession(path string, fn func(*workbook.Session) error) error {
	return workbook.With(newHost(), path, sessionOptions(), fn)
}

func gridConfig() tui.GridConfig {
	return tui.GridConfig{
		ColumnsPerRow: cfg.UI.ColumnsPerRow,
		RowsPerPage:   cfg.UI.RowsPerPage,
	}
}
