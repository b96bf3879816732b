package usecase

import (
	"context"

	"github.com/3-lines-studio/vitrine/internal/adapters/fs"
	"github.com/3-lines-studio/vitrine/internal/core"
)

// Strategy compiles a snapshot into a unit. Strategies that hand the unit
// over later return a Deferred outcome.
type Strategy interface {
	Name() string
	Compile(ctx context.Context, snap core.Snapshot) (core.Outcome, error)
}

type Checker interface {
	Check(ctx context.Context, filename, src string) []core.Diagnostic
}

type Loader interface {
	Load(ctx context.Context, src string) (*core.Unit, error)
}

type FileSystem = fs.FileSystem
