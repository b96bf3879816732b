package core

import "github.com/3-lines-studio/vitrine/internal/ui"

type Snapshot struct {
	Seq      uint64
	Revision uint64
	Text     string
}

type Entry func() *ui.Node

type Unit struct {
	Seq     uint64
	Source  string
	Entry   Entry
	Console *Console
}

// HasEntry is false for modules without a default entry point.
func (u *Unit) HasEntry() bool {
	return u != nil && u.Entry != nil
}

type Outcome struct {
	Unit        *Unit
	Deferred    bool
	Diagnostics []Diagnostic
}

type PreviewState struct {
	Seq         uint64
	Unit        *Unit
	Fault       *Fault
	Diagnostics []Diagnostic
}
