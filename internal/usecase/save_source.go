package usecase

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/3-lines-studio/vitrine/internal/core"
)

var ErrEmptySource = errors.New("code is required")

type SaveInput struct {
	Code    string
	Seq     uint64
	Session string
}

// SaveService persists snapshots to the watched preview file. It refuses
// snapshots older than the last one written by the same client session.
type SaveService struct {
	fs     FileSystem
	path   string
	logger *zap.Logger

	mu      sync.Mutex
	session string
	lastSeq uint64
}

func NewSaveService(fs FileSystem, path string, logger *zap.Logger) *SaveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaveService{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

func (s *SaveService) Path() string {
	return s.path
}

func (s *SaveService) Save(input SaveInput) error {
	if strings.TrimSpace(input.Code) == "" {
		return ErrEmptySource
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Session != s.session {
		s.session = input.Session
		s.lastSeq = 0
	}
	if input.Seq != 0 && input.Seq <= s.lastSeq {
		s.logger.Debug("stale save refused",
			zap.Uint64("seq", input.Seq),
			zap.Uint64("last", s.lastSeq),
		)
		return core.ErrSuperseded
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create preview directory: %w", err)
	}
	if err := s.fs.WriteFile(s.path, []byte(input.Code), 0644); err != nil {
		return fmt.Errorf("failed to write preview file: %w", err)
	}

	if input.Seq > s.lastSeq {
		s.lastSeq = input.Seq
	}
	s.logger.Debug("preview saved", zap.String("path", s.path), zap.Uint64("seq", input.Seq))
	return nil
}
