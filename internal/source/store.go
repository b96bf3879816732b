package source

import "sync"

const DefaultSource = `package preview

import "@/ui"

func Default() *ui.Node {
	return ui.Div("p-4",
		ui.Button(ui.ButtonProps{}, ui.Text("Click me")),
	)
}
`

type Buffer struct {
	Text     string
	Revision uint64
}

// Store holds the editing surface's single source buffer.
type Store struct {
	mu       sync.RWMutex
	current  Buffer
	previous string
	fallback string
}

func NewStore(fallback string) *Store {
	if fallback == "" {
		fallback = DefaultSource
	}
	return &Store{
		current:  Buffer{Text: fallback},
		fallback: fallback,
	}
}

// Set records a new text and returns the new revision. Setting the same
// text again still bumps the revision.
func (s *Store) Set(text string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.previous = s.current.Text
	s.current.Text = text
	s.current.Revision++
	return s.current.Revision
}

func (s *Store) Current() Buffer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Previous() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.previous
}

func (s *Store) Default() string {
	return s.fallback
}

// Restore puts the default text back as a new revision.
func (s *Store) Restore() Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.previous = s.current.Text
	s.current.Text = s.fallback
	s.current.Revision++
	return s.current
}
