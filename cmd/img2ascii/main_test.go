package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

func writePNG(t *testing.T, img *imageutil.RGBImage) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, imageutil.ToNRGBA(img)))
	return path
}

func TestRunMissingPath(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "You need to enter the name of <image file>")
	assert.Contains(t, stderr.String(), "Usage: img2ascii")
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-version"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "img2ascii version "+img2ascii.Version+"\n", stdout.String())
}

func TestRunConvertsImage(t *testing.T) {
	path := writePNG(t, imageutil.CreateSolidImage(4, 4,
		imageutil.RGB{R: 255, G: 255, B: 255}))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-color=never", path, "2", "1"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "@@\n@@\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunColorAlways(t *testing.T) {
	path := writePNG(t, imageutil.CreateSolidImage(1, 1,
		imageutil.RGB{R: 255, G: 255, B: 255}))

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "\x1b[38;2;255;255;255m@\x1b[0m\n", stdout.String())
}

func TestRunColorAutoNotTerminal(t *testing.T) {
	path := writePNG(t, imageutil.CreateSolidImage(1, 1,
		imageutil.RGB{R: 255, G: 255, B: 255}))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-color", "auto", path}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "@\n", stdout.String(), "a buffer is not a terminal")
}

func TestRunDecodeError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{filepath.Join(t.TempDir(), "missing.png")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "could not read image")
}

func TestRunInvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad stride", []string{"x.png", "zero"}, "invalid stride"},
		{"zero stride", []string{"x.png", "0"}, "invalid stride"},
		{"bad aspect", []string{"x.png", "8", "-1"}, "invalid aspect"},
		{"nan aspect", []string{"x.png", "8", "NaN"}, "invalid aspect"},
		{"inf aspect", []string{"x.png", "8", "+Inf"}, "invalid aspect"},
		{"negative workers", []string{"-workers", "-1", "x.png"}, "invalid workers"},
		{"negative contrast", []string{"-contrast", "-0.5", "x.png"}, "invalid contrast"},
		{"bad color", []string{"-color=sometimes", "x.png"}, "invalid color mode"},
		{"unknown flag", []string{"-nope", "x.png"}, "flag provided but not defined"},
		{"extra args", []string{"x.png", "8", "0.5", "more"}, "You need to enter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestParseArgsDefaults(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseArgs([]string{"in.png"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "in.png", opts.path)
	assert.Equal(t, img2ascii.DefaultScale, opts.scale)
	assert.Equal(t, img2ascii.DefaultAspect, opts.aspect)
	assert.Equal(t, img2ascii.DefaultContrast, opts.contrast)
	assert.Equal(t, "always", opts.color)
	assert.Equal(t, 0, opts.workers)
}

func TestColorMode(t *testing.T) {
	var buf bytes.Buffer
	on, err := colorMode("always", &buf)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = colorMode("never", &buf)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = colorMode("rainbow", &buf)
	assert.Error(t, err)
}
