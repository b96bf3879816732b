package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGallery(t *testing.T) {
	g := NewGallery()

	names, err := g.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"kitchen_sink", "login_form", "render_fault"}, names)

	src, err := g.Get("login_form")
	require.NoError(t, err)
	assert.Contains(t, src, "func Default() *ui.Node")

	for _, bad := range []string{"", "missing", "../store", "kitchen_sink.txt"} {
		_, err := g.Get(bad)
		assert.ErrorIs(t, err, ErrExampleNotFound, bad)
	}
}
