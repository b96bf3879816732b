package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/ui"
)

type frameJSON struct {
	Seq         uint64            `json:"seq"`
	Kind        core.FrameKind    `json:"kind"`
	HTML        string            `json:"html"`
	Fault       *core.Fault       `json:"fault,omitempty"`
	Diagnostics []core.Diagnostic `json:"diagnostics"`
	Console     string            `json:"console"`
}

// FrameHTML renders the preview pane markup for a frame.
func FrameHTML(f core.Frame) string {
	switch f.Kind {
	case core.FrameContent:
		out, err := ui.RenderHTML(f.Node)
		if err != nil {
			return faultHTML(&core.Fault{Kind: core.FaultRender, Message: err.Error()})
		}
		return out
	case core.FrameFault:
		return faultHTML(f.Fault)
	default:
		return core.LoadingHTML
	}
}

func faultHTML(f *core.Fault) string {
	if f == nil {
		f = &core.Fault{Kind: core.FaultLoad, Message: core.DefaultFaultMessage}
	}
	var buf bytes.Buffer
	if err := core.FaultTemplate.Execute(&buf, f); err != nil {
		return core.DefaultFaultMessage
	}
	return buf.String()
}

func toFrameJSON(f core.Frame) frameJSON {
	diags := f.Diagnostics
	if diags == nil {
		diags = []core.Diagnostic{}
	}
	return frameJSON{
		Seq:         f.Seq,
		Kind:        f.Kind,
		HTML:        FrameHTML(f),
		Fault:       f.Fault,
		Diagnostics: diags,
		Console:     f.Console,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
