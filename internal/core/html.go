package core

import (
	"bytes"
	"fmt"
	"html/template"
)

type ShellData struct {
	Title     string
	Source    string
	FrameHTML string
	Strategy  string
	Examples  []string
	IsDev     bool
}

func RenderPlaygroundShell(data ShellData) (string, error) {
	if data.Title == "" {
		data.Title = "Vitrine"
	}

	var buf bytes.Buffer
	if err := shellTemplate.Execute(&buf, map[string]any{
		"Title":     data.Title,
		"Source":    data.Source,
		"FrameHTML": template.HTML(data.FrameHTML),
		"Strategy":  data.Strategy,
		"Examples":  data.Examples,
		"IsDev":     data.IsDev,
	}); err != nil {
		return "", fmt.Errorf("render playground shell: %w", err)
	}
	return buf.String(), nil
}

const LoadingHTML = `<div class="vitrine-loading">Loading...</div>`

var shellTemplate = template.Must(template.New("shell").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="/_preview/assets/playground.css" />
  </head>
  <body data-strategy="{{.Strategy}}">
    <div class="toolbar">
      <strong>{{.Title}}</strong>
      <div>
        {{if .Examples}}<select id="examples">
          <option value="">Examples</option>
          {{range .Examples}}<option value="{{.}}">{{.}}</option>
          {{end}}</select>{{end}}
        <button id="copy" type="button">Copy</button>
        <button id="import" type="button">Import</button>
        <a id="export" href="/_preview/source?download=1">Export</a>
        <button id="reset" type="button">Reset</button>
        <button id="remount" type="button">Remount</button>
        <input id="file" type="file" accept=".go" hidden />
      </div>
    </div>
    <div class="panes">
      <textarea id="editor" spellcheck="false">{{.Source}}</textarea>
      <div class="preview">
        <div id="preview">{{.FrameHTML}}</div>
        <div id="diagnostics"></div>
        <div id="console"></div>
      </div>
    </div>
    <script src="/_preview/assets/playground.js"></script>
  </body>
</html>
`))
