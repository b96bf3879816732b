package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/sandbox"
	"github.com/3-lines-studio/vitrine/internal/ui"
)

type CheckInput struct {
	Path string
}

type CheckOutput struct {
	Diagnostics []core.Diagnostic
	Error       error
}

type CheckService struct {
	checker Checker
	fs      FileSystem
}

func NewCheckService(checker Checker, fs FileSystem) *CheckService {
	return &CheckService{
		checker: checker,
		fs:      fs,
	}
}

func (s *CheckService) CheckFile(ctx context.Context, input CheckInput) CheckOutput {
	data, err := s.fs.ReadFile(input.Path)
	if err != nil {
		return CheckOutput{Error: fmt.Errorf("failed to read %s: %w", input.Path, err)}
	}

	return CheckOutput{
		Diagnostics: s.checker.Check(ctx, filepath.Base(input.Path), string(data)),
	}
}

type RenderInput struct {
	Path string
}

type RenderOutput struct {
	Frame core.Frame
	HTML  string
	Error error
}

// RenderService loads and renders a file once, outside of any session.
type RenderService struct {
	loader Loader
	fs     FileSystem
}

func NewRenderService(loader Loader, fs FileSystem) *RenderService {
	return &RenderService{
		loader: loader,
		fs:     fs,
	}
}

func (s *RenderService) RenderFile(ctx context.Context, input RenderInput) RenderOutput {
	data, err := s.fs.ReadFile(input.Path)
	if err != nil {
		return RenderOutput{Error: fmt.Errorf("failed to read %s: %w", input.Path, err)}
	}

	state := core.PreviewState{Seq: 1}
	unit, err := s.loader.Load(ctx, string(data))
	if err != nil {
		state.Fault = core.FaultFrom(err)
	} else {
		state.Unit = unit
	}

	frame := sandbox.New().View(ctx, state)
	if frame.Kind != core.FrameContent {
		return RenderOutput{Frame: frame}
	}

	html, err := ui.RenderHTML(frame.Node)
	return RenderOutput{
		Frame: frame,
		HTML:  html,
		Error: err,
	}
}
