package com

import (
	"os"
	"path/filepath"
	"testing"

	"easyExcel/internal/host"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("LOCALAPPDATA", filepath.Join("C:", "Users", "user", "AppData", "Local"))
	dir, err := DefaultCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("C:", "Users", "user", "AppData", "Local", "Temp", "gen_py"), dir)

	t.Setenv("LOCALAPPDATA", "")
	_, err = DefaultCacheDir()
	assert.Error(t, err)
}

func TestRemoveCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gen_py")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "00020813-0000-0000-C000-000000000046x0x1x9"), 0755))

	require.NoError(t, removeCache(dir))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, removeCache(dir), "missing cache is fine")
	assert.Error(t, removeCache(""))
}

func TestAlignmentConstant(t *testing.T) {
	assert.Equal(t, -4108, alignmentConstant(host.AlignCenter))
	assert.Equal(t, -4131, alignmentConstant(host.AlignLeft))
	assert.Equal(t, -4152, alignmentConstant(host.AlignRight))
	assert.Equal(t, 1, alignmentConstant(host.AlignGeneral))
}

func TestConditionValueType(t *testing.T) {
	scale := host.DefaultColorScale()
	for point, want := range map[string]int{
		scale.Min.Type: 1,
		scale.Mid.Type: 5,
		scale.Max.Type: 2,
		"num":          0,
		"percent":      3,
	} {
		got, err := conditionValueType(point)
		require.NoError(t, err, point)
		assert.Equal(t, want, got, point)
	}

	_, err := conditionValueType("median")
	assert.Error(t, err)
}

func TestBGRColor(t *testing.T) {
	got, err := bgrColor("#F8696B")
	require.NoError(t, err)
	assert.Equal(t, 0x6B69F8, got)

	_, err = bgrColor("red")
	assert.Error(t, err)
}
