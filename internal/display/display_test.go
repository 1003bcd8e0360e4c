package display

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, os string, env map[string]string) *[]string {
	t.Helper()
	origGOOS, origGetenv, origStart := goos, getenv, startFn
	t.Cleanup(func() { goos, getenv, startFn = origGOOS, origGetenv, origStart })

	var called []string
	goos = os
	getenv = func(k string) string { return env[k] }
	startFn = func(name string, args ...string) error {
		called = append(append(called, name), args...)
		return nil
	}
	return &called
}

func TestOpen_HeadlessLinuxIsNoop(t *testing.T) {
	called := stub(t, "linux", nil)
	shown, err := Open("timings.png")
	require.NoError(t, err)
	assert.False(t, shown)
	assert.Empty(t, *called)
}

func TestOpen_LinuxWithDisplay(t *testing.T) {
	called := stub(t, "linux", map[string]string{"WAYLAND_DISPLAY": "wayland-0"})
	shown, err := Open("timings.png")
	require.NoError(t, err)
	assert.True(t, shown)
	assert.Equal(t, []string{"xdg-open", "timings.png"}, *called)
}

func TestOpen_Platforms(t *testing.T) {
	called := stub(t, "darwin", nil)
	_, err := Open("a.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "a.png"}, *called)

	called = stub(t, "windows", nil)
	_, err = Open("a.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"rundll32", "url.dll,FileProtocolHandler", "a.png"}, *called)
}

func TestOpen_ViewerFailure(t *testing.T) {
	stub(t, "darwin", nil)
	startFn = func(string, ...string) error { return errors.New("not found") }
	shown, err := Open("a.png")
	assert.False(t, shown)
	assert.ErrorContains(t, err, "not found")
}
