package core

import (
	"html/template"
)

// ErrorData feeds the page served when the playground shell itself cannot
// be produced. Detail is only shown in dev mode.
type ErrorData struct {
	Title   string
	Message string
	IsDev   bool
}

var ErrorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{if .Title}}{{.Title}}{{else}}Playground unavailable{{end}}</title>
<style>
body { font: 14px/1.5 ui-sans-serif, system-ui, sans-serif; margin: 0; display: grid; place-items: center; min-height: 100vh; background: #fafafa; color: #18181b; }
.vitrine-error { max-width: 640px; padding: 24px; border: 1px solid #e4e4e7; border-radius: 8px; background: #fff; }
.vitrine-error h1 { font-size: 18px; margin: 0 0 8px; color: #b91c1c; }
.vitrine-error pre { white-space: pre-wrap; background: #f4f4f5; padding: 12px; border-radius: 6px; }
</style>
</head>
<body>
<main class="vitrine-error" role="alert">
<h1>{{if .Title}}{{.Title}}{{else}}Playground unavailable{{end}}</h1>
{{if .IsDev}}<pre>{{.Message}}</pre>{{else}}<p>The playground could not be loaded. Check the server log.</p>{{end}}
</main>
</body>
</html>
`))

// FaultTemplate renders a fault inside the preview pane.
var FaultTemplate = template.Must(template.New("fault").Parse(
	`<div class="vitrine-fault" data-kind="{{.Kind}}" role="alert">` +
		`{{if eq .Kind "render"}}<h5 class="vitrine-fault-title">Runtime Error</h5>{{end}}` +
		`<pre class="vitrine-fault-message">{{.Message}}</pre></div>`))
