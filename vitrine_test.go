package vitrine

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/vitrine/internal/config"
	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/source"
	"github.com/3-lines-studio/vitrine/internal/ui"
)

func waitFor(t *testing.T, app *App, fn func(core.Frame) bool) core.Frame {
	t.Helper()
	require.Eventually(t, func() bool {
		return fn(app.Session().Frame())
	}, 10*time.Second, 20*time.Millisecond)
	return app.Session().Frame()
}

func hasText(text string) func(core.Frame) bool {
	return func(f core.Frame) bool {
		return f.Kind == core.FrameContent && strings.Contains(ui.TextContent(f.Node), text)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Strategy = "webpack"

	_, err := New(cfg)
	assert.ErrorContains(t, err, "invalid config")
}

func TestNewReadsPreviewSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.go")
	seed := "package preview\n\nimport \"@/ui\"\n\nfunc Default() *ui.Node { return ui.Text(\"seeded\") }\n"
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	cfg := config.DefaultConfig()
	cfg.Preview.Source = path
	app, err := New(cfg)
	require.NoError(t, err)
	defer app.Stop()

	require.NoError(t, app.Start())
	waitFor(t, app, hasText("seeded"))
	assert.Equal(t, seed, app.Session().DefaultSource())
}

func TestNewMissingPreviewSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Preview.Source = filepath.Join(t.TempDir(), "missing.go")

	_, err := New(cfg)
	assert.ErrorContains(t, err, "failed to read preview source")
}

func TestInterpPlayground(t *testing.T) {
	app, err := New(config.DefaultConfig())
	require.NoError(t, err)
	defer app.Stop()

	require.NoError(t, app.Start())
	waitFor(t, app, hasText("Click me"))

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Click me")
	assert.Contains(t, string(body), `data-strategy="interp"`)

	resp, err = http.Post(srv.URL+"/_preview/save", "application/json", strings.NewReader(`{"code":"x"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "save endpoint is only served in save mode")
}

func TestSaveRoundTrip(t *testing.T) {
	srv := httptest.NewUnstartedServer(nil)
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Strategy = config.StrategySave
	cfg.Addr = srv.Listener.Addr().String()
	cfg.Save.Path = filepath.Join(t.TempDir(), "preview", "preview.go")

	app, err := New(cfg)
	require.NoError(t, err)
	defer app.Stop()

	srv.Config.Handler = app.Handler()
	srv.Start()

	require.NoError(t, app.Start())
	assert.Equal(t, "save", app.Session().Strategy())

	waitFor(t, app, hasText("Click me"))
	data, err := os.ReadFile(cfg.Save.Path)
	require.NoError(t, err)
	assert.Equal(t, source.DefaultSource, string(data))

	example, err := source.NewGallery().Get("render_fault")
	require.NoError(t, err)
	app.Session().Replace(example)

	f := waitFor(t, app, func(f core.Frame) bool {
		return f.Kind == core.FrameFault && f.Fault != nil && f.Fault.Kind == core.FaultRender
	})
	assert.NotEmpty(t, f.Fault.Message)
}

func TestSaveCollaboratorUnreachable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Strategy = config.StrategySave
	cfg.Save.URL = "http://127.0.0.1:1/_preview/save"
	cfg.Save.Timeout = "1s"
	cfg.Save.Path = filepath.Join(t.TempDir(), "preview.go")

	app, err := New(cfg)
	require.NoError(t, err)
	defer app.Stop()

	require.NoError(t, app.Start())
	f := waitFor(t, app, func(f core.Frame) bool { return f.Kind == core.FrameFault })
	assert.Equal(t, core.FaultTransport, f.Fault.Kind)
}
