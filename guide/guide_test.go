package guide

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	content, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, content, "# Tag Guide")

	content, err = Get("syntax")
	require.NoError(t, err)
	assert.Contains(t, content, "name:color")
}

func TestGet_NotFound(t *testing.T) {
	_, err := Get("nonexistent")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "Available:")
	assert.Contains(t, err.Error(), "syntax")
}

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"config", "stores", "syntax"}, names)
}
