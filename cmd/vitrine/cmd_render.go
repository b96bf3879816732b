package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/vitrine"
	"github.com/3-lines-studio/vitrine/internal/adapters/fs"
	"github.com/3-lines-studio/vitrine/internal/adapters/interp"
	"github.com/3-lines-studio/vitrine/internal/adapters/tui"
	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

var (
	renderFormat string
	renderWidth  int
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Load a component once and print what it renders",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	loader := interp.NewLoader(vitrine.EditorConfig(cfg),
		interp.WithTimeout(cfg.GetLoadTimeout()),
		interp.WithLogger(logger.Named("interp")),
	)
	service := usecase.NewRenderService(loader, fs.NewOSFileSystem())

	res := service.RenderFile(cmd.Context(), usecase.RenderInput{Path: args[0]})
	if res.Error != nil {
		return res.Error
	}
	if res.Frame.Kind == core.FrameFault {
		fmt.Fprintln(cmd.ErrOrStderr(), res.Frame.Fault.Message)
		return errReported
	}

	switch renderFormat {
	case "html":
		fmt.Fprintln(cmd.OutOrStdout(), res.HTML)
	case "text":
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderFrame(res.Frame, tui.DefaultStyles(), renderWidth))
	default:
		return fmt.Errorf("unknown format %q", renderFormat)
	}
	return nil
}
