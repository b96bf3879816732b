package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/config"
	"github.com/3-lines-studio/vitrine/internal/source"
)

func setupGlobals(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	checkFormat = "text"
	renderFormat = "html"
	renderWidth = 80
	configForce = false
}

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExamplesCommand(t *testing.T) {
	setupGlobals(t)

	t.Run("lists names", func(t *testing.T) {
		cmd, out, _ := newTestCmd()
		require.NoError(t, runExamples(cmd, nil))

		names := strings.Fields(out.String())
		assert.Contains(t, names, "login_form")
		assert.Contains(t, names, "render_fault")
	})

	t.Run("prints source", func(t *testing.T) {
		cmd, out, _ := newTestCmd()
		require.NoError(t, runExamples(cmd, []string{"login_form"}))
		assert.Contains(t, out.String(), "package preview")
	})

	t.Run("unknown example", func(t *testing.T) {
		cmd, _, _ := newTestCmd()
		err := runExamples(cmd, []string{"nope"})
		assert.ErrorIs(t, err, source.ErrExampleNotFound)
	})
}

func TestConfigInitCommand(t *testing.T) {
	setupGlobals(t)
	path := filepath.Join(t.TempDir(), "vitrine.yaml")

	cmd, out, _ := newTestCmd()
	require.NoError(t, runConfigInit(cmd, []string{path}))
	assert.Contains(t, out.String(), path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Addr, loaded.Addr)

	t.Run("refuses to overwrite", func(t *testing.T) {
		cmd, _, _ := newTestCmd()
		err := runConfigInit(cmd, []string{path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force overwrites", func(t *testing.T) {
		configForce = true
		defer func() { configForce = false }()

		cmd, _, _ := newTestCmd()
		assert.NoError(t, runConfigInit(cmd, []string{path}))
	})
}

func TestCheckCommand(t *testing.T) {
	setupGlobals(t)

	good := writeFile(t, "good.go", source.DefaultSource)
	bad := writeFile(t, "bad.go", "package preview\n\nimport \"os\"\n\nfunc Default() *ui.Node { return nil }\n")

	t.Run("clean file", func(t *testing.T) {
		cmd, out, _ := newTestCmd()
		require.NoError(t, runCheck(cmd, []string{good}))
		assert.Contains(t, out.String(), "1 file checked")
	})

	t.Run("file with errors", func(t *testing.T) {
		cmd, out, _ := newTestCmd()
		err := runCheck(cmd, []string{good, bad})
		assert.ErrorIs(t, err, errReported)
		assert.Contains(t, out.String(), "bad.go")
	})

	t.Run("missing file", func(t *testing.T) {
		cmd, _, _ := newTestCmd()
		err := runCheck(cmd, []string{filepath.Join(t.TempDir(), "missing.go")})
		assert.ErrorIs(t, err, errReported)
	})

	t.Run("json", func(t *testing.T) {
		checkFormat = "json"
		defer func() { checkFormat = "text" }()

		cmd, out, _ := newTestCmd()
		err := runCheck(cmd, []string{good, bad})
		assert.ErrorIs(t, err, errReported)

		var results []checkResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &results))
		require.Len(t, results, 2)
		assert.Empty(t, results[0].Diagnostics)
		assert.NotEmpty(t, results[1].Diagnostics)
	})

	t.Run("unknown format", func(t *testing.T) {
		checkFormat = "xml"
		defer func() { checkFormat = "text" }()

		cmd, _, _ := newTestCmd()
		assert.Error(t, runCheck(cmd, []string{good}))
	})
}

func TestRenderCommand(t *testing.T) {
	setupGlobals(t)
	path := writeFile(t, "preview.go", source.DefaultSource)

	t.Run("html", func(t *testing.T) {
		cmd, out, _ := newTestCmd()
		require.NoError(t, runRender(cmd, []string{path}))
		assert.Contains(t, out.String(), "Click me")
		assert.Contains(t, out.String(), "<button")
	})

	t.Run("text", func(t *testing.T) {
		renderFormat = "text"
		defer func() { renderFormat = "html" }()

		cmd, out, _ := newTestCmd()
		require.NoError(t, runRender(cmd, []string{path}))
		assert.Contains(t, out.String(), "[ Click me ]")
	})

	t.Run("fault", func(t *testing.T) {
		src, err := source.NewGallery().Get("render_fault")
		require.NoError(t, err)
		faulty := writeFile(t, "fault.go", src)

		cmd, _, errOut := newTestCmd()
		err = runRender(cmd, []string{faulty})
		assert.ErrorIs(t, err, errReported)
		assert.NotEmpty(t, errOut.String())
	})
}

func TestNewLogger(t *testing.T) {
	setupGlobals(t)

	t.Run("terminal commands log to file", func(t *testing.T) {
		logFile = filepath.Join(t.TempDir(), "vitrine.log")
		defer func() { logFile = "" }()

		l, err := newLogger(tuiCmd)
		require.NoError(t, err)
		l.Info("hello")
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
	})

	t.Run("other commands log to stderr", func(t *testing.T) {
		cmd, _, errOut := newTestCmd()
		l, err := newLogger(cmd)
		require.NoError(t, err)
		l.Info("visible")
		_ = l.Sync()
		assert.Contains(t, errOut.String(), "visible")
	})
}
