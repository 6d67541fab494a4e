package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-moon/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagDefaults(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags(nil))

	width, err := cmd.Flags().GetInt("width")
	require.NoError(t, err)
	assert.Equal(t, 1280, width)

	watch, err := cmd.Flags().GetBool("watch")
	require.NoError(t, err)
	assert.True(t, watch)

	msaa, err := cmd.Flags().GetInt("msaa")
	require.NoError(t, err)
	assert.Equal(t, 4, msaa)
	assert.False(t, cmd.Flags().Changed("seed"))
}

func TestFlagOverrides(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--seed", "42", "-c", "moon.toml", "--vsync=false"}))

	assert.True(t, cmd.Flags().Changed("seed"))
	path, err := cmd.Flags().GetString("config")
	require.NoError(t, err)
	assert.Equal(t, "moon.toml", path)
	vsync, err := cmd.Flags().GetBool("vsync")
	require.NoError(t, err)
	assert.False(t, vsync)
}

func TestMSAAFromFlag(t *testing.T) {
	m, err := msaaFromFlag(1)
	require.NoError(t, err)
	assert.Equal(t, renderer.MSAAOff, m)

	m, err = msaaFromFlag(4)
	require.NoError(t, err)
	assert.Equal(t, renderer.MSAA4x, m)

	_, err = msaaFromFlag(8)
	assert.Error(t, err)
}
