package core

import (
	"strings"
	"sync"
)

const maxConsoleBytes = 64 << 10

// Console collects what a unit prints while loading and rendering. Output
// past the cap is dropped.
type Console struct {
	mu        sync.Mutex
	buf       strings.Builder
	truncated bool
}

func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := maxConsoleBytes - c.buf.Len()
	if room <= 0 {
		c.truncated = true
		return len(p), nil
	}
	if len(p) > room {
		c.buf.Write(p[:room])
		c.truncated = true
		return len(p), nil
	}
	c.buf.Write(p)
	return len(p), nil
}

func (c *Console) String() string {
	if c == nil {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.truncated {
		return c.buf.String() + "\n[output truncated]"
	}
	return c.buf.String()
}
