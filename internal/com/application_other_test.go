//go:build !windows

package com

import (
	"os"
	"path/filepath"
	"testing"

	"easyExcel/internal/host"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_UnsupportedOutsideWindows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gen_py")
	require.NoError(t, os.MkdirAll(dir, 0755))
	app := NewApp(dir)

	assert.ErrorIs(t, app.Start(host.Flags{}), ErrUnsupported)
	_, err := app.Open("book.xlsx")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.NoError(t, app.Quit())

	require.NoError(t, app.ResetCache())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
