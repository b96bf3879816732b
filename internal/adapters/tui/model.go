// Package tui is the terminal playground: a source editor beside a live
// preview pane, driven by the same session as the browser playground.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/usecase"
)

type frameMsg core.Frame

type sessionClosedMsg struct{}

type Model struct {
	session *usecase.Session
	frames  chan core.Frame

	editor  textarea.Model
	preview viewport.Model
	help    help.Model
	keys    KeyMap
	styles  Styles

	frame          core.Frame
	previewFocused bool
	width, height  int
}

// New subscribes to session frames. Call Close when the program exits.
func New(session *usecase.Session) Model {
	editor := textarea.New()
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Focus()

	m := Model{
		session: session,
		frames:  session.Subscribe(),
		editor:  editor,
		preview: viewport.New(0, 0),
		help:    help.New(),
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		frame:   session.Frame(),
	}
	m.setSource(session.Source().Text)
	return m
}

// setSource loads text into the editor. The textarea expands tabs, so the
// session is given the editor's text whenever the two differ.
func (m *Model) setSource(text string) {
	m.editor.SetValue(text)
	if v := m.editor.Value(); v != text {
		m.session.Edit(v)
	}
}

func (m Model) Close() {
	m.session.Unsubscribe(m.frames)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForFrame(m.frames))
}

func waitForFrame(ch <-chan core.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return sessionClosedMsg{}
		}
		return frameMsg(f)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case frameMsg:
		m.frame = core.Frame(msg)
		m.refreshPreview()
		return m, waitForFrame(m.frames)

	case sessionClosedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restore):
			buf := m.session.Restore()
			m.setSource(buf.Text)
			return m, nil
		case key.Matches(msg, m.keys.Remount):
			m.frame = m.session.Remount()
			m.refreshPreview()
			return m, nil
		case key.Matches(msg, m.keys.Flush):
			m.session.Flush()
			return m, nil
		case key.Matches(msg, m.keys.Focus):
			m.previewFocused = !m.previewFocused
			if m.previewFocused {
				m.editor.Blur()
				return m, nil
			}
			return m, m.editor.Focus()
		}

		if m.previewFocused {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.session.Edit(after)
	}
	return m, cmd
}

func (m *Model) layout() {
	paneWidth := m.width/2 - 2
	paneHeight := m.height - 3
	if paneWidth < 10 {
		paneWidth = 10
	}
	if paneHeight < 3 {
		paneHeight = 3
	}

	m.editor.SetWidth(paneWidth)
	m.editor.SetHeight(paneHeight)
	m.preview.Width = paneWidth
	m.preview.Height = paneHeight
	m.help.Width = m.width
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	m.preview.SetContent(RenderFrame(m.frame, m.styles, m.preview.Width))
}

func (m Model) View() string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Pane.Render(m.editor.View()),
		m.styles.Pane.Render(m.preview.View()),
	)

	status := m.styles.Status.Render(m.session.Strategy() + " · " + string(m.frame.Kind))
	return lipgloss.JoinVertical(lipgloss.Left, panes, status+"  "+m.help.View(m.keys))
}
