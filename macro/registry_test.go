// Copyright © 2025 The Whisker authors

package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(ctx *Context, args []interface{}) (interface{}, error) {
	return nil, nil
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Get("print")
	assert.False(t, ok)

	reg.Register("print", Definition{Handler: noopHandler, Category: "text"})
	def, ok := reg.Get("print")
	require.True(t, ok)
	assert.Equal(t, "text", def.Category)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryLastWriteWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register("save", Definition{Handler: noopHandler, Category: "storage"})
	reg.Register("save", Definition{Handler: noopHandler, Category: "storage", Async: true})

	def, ok := reg.Get("save")
	require.True(t, ok)
	assert.True(t, def.Async, "re-registration replaces the prior definition")
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry()
	reg.Register("print", Definition{Handler: noopHandler, Category: "text"})
	reg.Register("goto", Definition{Handler: noopHandler, Category: "link"})
	reg.Register("uppercase", Definition{Handler: noopHandler, Category: "text", Pure: true})

	assert.Equal(t, []string{"goto", "print", "uppercase"}, reg.Names())
	assert.Equal(t, []string{"print", "uppercase"}, reg.InCategory("text"))
	assert.Empty(t, reg.InCategory("audio"))
}
