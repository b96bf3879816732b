package core

import "github.com/3-lines-studio/vitrine/internal/ui"

type FrameKind string

const (
	FrameLoading FrameKind = "loading"
	FrameContent FrameKind = "content"
	FrameFault   FrameKind = "fault"
)

type Frame struct {
	Seq         uint64
	Kind        FrameKind
	Node        *ui.Node
	Fault       *Fault
	Diagnostics []Diagnostic
	Console     string
}

type FrameAction int

const (
	ActionShowFault FrameAction = iota
	ActionShowBoundaryFault
	ActionRenderUnit
	ActionShowLoading
)

type FrameDecision struct {
	Action FrameAction
	// Unmount drops the fault boundary; the next content frame mounts a
	// fresh one.
	Unmount bool
}

func DecideFrame(state PreviewState, boundaryFaulted bool) FrameDecision {
	if state.Fault != nil {
		return FrameDecision{Action: ActionShowFault, Unmount: true}
	}

	if state.Unit.HasEntry() {
		if boundaryFaulted {
			return FrameDecision{Action: ActionShowBoundaryFault}
		}
		return FrameDecision{Action: ActionRenderUnit}
	}

	return FrameDecision{Action: ActionShowLoading, Unmount: true}
}
