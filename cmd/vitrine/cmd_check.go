package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/vitrine"
	"github.com/3-lines-studio/vitrine/internal/adapters/cli"
	"github.com/3-lines-studio/vitrine/internal/adapters/fs"
	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/editor"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Report diagnostics for component files",
	Long: `Runs the playground's checks on each file: syntax, import policy,
the entry point's signature and type errors against the toolkit.

Exits non-zero when any file has errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

type checkResult struct {
	Path        string            `json:"path"`
	Diagnostics []core.Diagnostic `json:"diagnostics"`
	Error       string            `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	checker := editor.NewService(vitrine.EditorConfig(cfg), logger.Named("editor"))
	defer checker.Close()

	service := usecase.NewCheckService(checker, fs.NewOSFileSystem())
	out := cli.NewWriterOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	report := cli.NewCheckReport(out)

	results := make([]checkResult, 0, len(args))
	for _, path := range args {
		res := service.CheckFile(cmd.Context(), usecase.CheckInput{Path: path})
		if res.Error != nil {
			report.AddFailure(path, res.Error.Error())
			results = append(results, checkResult{Path: path, Diagnostics: []core.Diagnostic{}, Error: res.Error.Error()})
			continue
		}
		report.Add(path, res.Diagnostics)
		diags := res.Diagnostics
		if diags == nil {
			diags = []core.Diagnostic{}
		}
		results = append(results, checkResult{Path: path, Diagnostics: diags})
	}

	switch checkFormat {
	case "text":
		report.Render()
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", checkFormat)
	}

	if report.HasFailures() {
		return errReported
	}
	return nil
}
