package main

import (
	"context"
	"net"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine"
	"github.com/3-lines-studio/vitrine/internal/adapters/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the playground in the terminal",
	Long: `Opens a split terminal view: the component source on the left and
its rendered preview on the right. Logs go to --log-file only.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	app, err := vitrine.New(cfg, vitrine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer app.Stop()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The save strategy needs somebody to accept its snapshots.
	if cfg.IsSave() && cfg.Save.URL == "" {
		ln, err := net.Listen("tcp", cfg.Addr)
		if err != nil {
			return err
		}
		go func() {
			if err := serve(ctx, app, ln); err != nil {
				logger.Error("save endpoint stopped", zap.Error(err))
			}
		}()
	}

	if err := app.Start(); err != nil {
		return err
	}

	model := tui.New(app.Session())
	defer model.Close()

	_, err = tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	).Run()
	return err
}
