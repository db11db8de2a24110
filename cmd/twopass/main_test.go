package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	t.Chdir(dir)

	assert.NoError(os.WriteFile("prog.as", []byte(".entry L\nL: inc r1\nstop\n"), 0o644))
	assert.NoError(os.WriteFile("bad.as", []byte("L: .extern X\nfrob\n"), 0o644))

	var stderr bytes.Buffer
	err := run(options{out: "out", jobs: -1}, []string{"prog.as"}, &stderr)
	assert.NoError(err)
	assert.Empty(stderr.String())

	data, err := os.ReadFile(filepath.Join("out", "prog.ent"))
	assert.NoError(err)
	assert.Equal("L 0100\n", string(data))

	stderr.Reset()
	err = run(options{out: "out", jobs: 1, lang: "en-US"}, []string{"bad", filepath.Join(dir, "prog")}, &stderr)
	assert.Error(err)
	assert.Equal("bad.as:1: warning: label 'L' ignored\nbad.as:2: error: unknown statement 'frob'\n", stderr.String())

	_, err = os.Stat(filepath.Join("out", "bad.ob"))
	assert.True(os.IsNotExist(err))

	err = run(options{out: "out", jobs: -1}, []string{"../elsewhere.as"}, &stderr)
	assert.Error(err)
}

func TestRunConfig(t *testing.T) {
	assert := assert.New(t)

	t.Chdir(t.TempDir())

	assert.NoError(os.WriteFile("cfg.star", []byte("base_address = 200\nobject_suffix = '.obj'\n"), 0o644))
	assert.NoError(os.WriteFile("prog.as", []byte("stop\n"), 0o644))

	var stderr bytes.Buffer
	err := run(options{config: "cfg.star", out: ".", jobs: -1}, []string{"prog"}, &stderr)
	assert.NoError(err)

	data, err := os.ReadFile("prog.obj")
	assert.NoError(err)
	assert.Equal("1 0\n0200 f000\n", string(data))

	err = run(options{config: "missing.star", out: ".", jobs: -1}, []string{"prog"}, &stderr)
	assert.Error(err)
}
