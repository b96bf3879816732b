package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/3-lines-studio/vitrine"
	"github.com/3-lines-studio/vitrine/internal/adapters/lsp"
	"github.com/3-lines-studio/vitrine/internal/editor"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the language server on stdio",
	Long: `Serves diagnostics and toolkit completions for preview components
over the language server protocol, using the same checks as the
playground.`,
	Args: cobra.NoArgs,
	RunE: runLSP,
}

func runLSP(cmd *cobra.Command, args []string) error {
	// glsp logs through commonlog; stdout belongs to the protocol.
	verbosity := 0
	if verbose {
		verbosity = 2
	}
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbosity, path)

	service := editor.NewService(vitrine.EditorConfig(cfg), logger.Named("editor"))
	defer service.Close()

	return lsp.New(service, Version).RunStdio()
}
