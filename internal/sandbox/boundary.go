package sandbox

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/3-lines-studio/vitrine/internal/core"
	"github.com/3-lines-studio/vitrine/internal/ui"
)

var ErrRenderTimeout = errors.New("rendering the component timed out")

// Boundary isolates one mounted unit's rendering. The first failure latches
// it into the faulted state; only a new Boundary clears it.
type Boundary struct {
	mu    sync.Mutex
	id    uint64
	fault *core.Fault
}

func (b *Boundary) ID() uint64 {
	return b.id
}

func (b *Boundary) Fault() *core.Fault {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fault
}

func (b *Boundary) Faulted() bool {
	return b.Fault() != nil
}

// Render runs the entry and validates its tree. Panics, invalid trees and
// timeouts become render faults.
func (b *Boundary) Render(ctx context.Context, entry core.Entry) (*ui.Node, *core.Fault) {
	if f := b.Fault(); f != nil {
		return nil, f
	}

	node, err := call(ctx, entry)
	if err == nil {
		err = ui.Validate(node)
	}
	if err == nil {
		return node, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fault == nil {
		b.fault = &core.Fault{Kind: core.FaultRender, Message: err.Error()}
	}
	return nil, b.fault
}

type result struct {
	node *ui.Node
	err  error
}

func call(ctx context.Context, entry core.Entry) (*ui.Node, error) {
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: panicError(r)}
			}
		}()
		done <- result{node: entry()}
	}()

	select {
	case r := <-done:
		return r.node, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrRenderTimeout
		}
		return nil, ctx.Err()
	}
}

func panicError(r any) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		return fmt.Errorf("%v", v)
	}
}
