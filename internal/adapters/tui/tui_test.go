package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/vitrine/internal/adapters/interp"
	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/editor"
	"github.com/3-lines-studio/vitrine/internal/ui"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

func newTestModel(t *testing.T) (Model, *usecase.Session) {
	t.Helper()
	session := usecase.NewSession(usecase.SessionInput{
		Strategy: interp.NewLoader(editor.NewConfig()),
		Delay:    time.Hour,
	})
	t.Cleanup(session.Close)

	m := New(session)
	t.Cleanup(m.Close)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), session
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestRenderNode(t *testing.T) {
	node := ui.Card("",
		ui.CardHeader(ui.CardTitle(ui.Text("Sign in"))),
		ui.CardContent(
			ui.Label("email", ui.Text("Email")),
			ui.Input(ui.InputProps{ID: "email", Placeholder: "you@example.com"}),
			ui.Checkbox("remember", true),
			ui.Separator(),
			ui.Progress(50),
		),
		ui.CardFooter(ui.Button(ui.ButtonProps{}, ui.Text("Continue"))),
	)

	out, err := RenderNode(node, Styles{}, 30)

	require.NoError(t, err)
	assert.Contains(t, out, "Sign in")
	assert.Contains(t, out, "Email [you@example.com         ] [x]")
	assert.Contains(t, out, strings.Repeat("─", 30))
	assert.Contains(t, out, "[██████████░░░░░░░░░░] 50%")
	assert.Contains(t, out, "[ Continue ]")
}

func TestRenderNodeRejectsCycles(t *testing.T) {
	n := ui.Div("")
	n.Children = append(n.Children, n)

	_, err := RenderNode(n, Styles{}, 40)
	assert.ErrorContains(t, err, "contains itself")
}

func TestRenderFrame(t *testing.T) {
	t.Run("render fault", func(t *testing.T) {
		out := RenderFrame(core.Frame{
			Kind:  core.FrameFault,
			Fault: &core.Fault{Kind: core.FaultRender, Message: "index out of range"},
		}, Styles{}, 40)
		assert.Equal(t, "Runtime Error\nindex out of range", out)
	})

	t.Run("loading with diagnostics and console", func(t *testing.T) {
		out := RenderFrame(core.Frame{
			Kind:        core.FrameLoading,
			Diagnostics: []core.Diagnostic{{Line: 2, Column: 1, Severity: core.SeverityWarning, Message: "unused"}},
			Console:     "hello\n",
		}, Styles{}, 40)
		assert.Equal(t, "Loading...\n\n2:1: warning: unused\n\nconsole\nhello\n", out)
	})
}

func TestTypingEditsSession(t *testing.T) {
	m, session := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Contains(t, m.editor.Value(), "return ui.Div(")
	require.Equal(t, m.editor.Value(), session.Source().Text, "session holds the editor's text after restore")
	rev := session.Source().Revision

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Equal(t, rev+1, session.Source().Revision)
	assert.Equal(t, m.editor.Value(), session.Source().Text)
}

func TestNewModelMatchesSessionSource(t *testing.T) {
	m, session := newTestModel(t)

	assert.Equal(t, m.editor.Value(), session.Source().Text)
	assert.NotContains(t, session.Source().Text, "\t")
}

func TestFrameMessagesUpdatePreview(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, frameMsg(core.Frame{Kind: core.FrameContent, Node: ui.Text("live")}))

	assert.NotNil(t, cmd, "keeps waiting for frames")
	assert.Contains(t, m.View(), "live")
	assert.Contains(t, m.View(), "interp · content")
}

func TestSessionFramesReachModel(t *testing.T) {
	m, session := newTestModel(t)

	session.Start()

	require.Eventually(t, func() bool {
		select {
		case f := <-m.frames:
			return f.Kind == core.FrameContent
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestQuitAndClosedSession(t *testing.T) {
	m, session := newTestModel(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	session.Close()
	assert.Equal(t, sessionClosedMsg{}, waitForFrame(m.frames)())
}

func TestFocusTogglesPreview(t *testing.T) {
	m, session := newTestModel(t)
	rev := session.Source().Revision

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.previewFocused)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, rev, session.Source().Revision, "keys go to the preview")
}
