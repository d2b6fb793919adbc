package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/marktext/core/parameters"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.cli")
	defer teardown()
	//
	for i, x := range []struct {
		line   string
		code   int
		format string
		arg    string
	}{
		{"quit", QUIT, "", ""},
		{"  help find ", HELP, "", "find"},
		{"load doc.md", LOAD, "", "doc.md"},
		{"find milk tea", FIND, "", "milk tea"},
		{"FIND:Word milk", FIND, "word", "milk"},
		{"runs:3", RUNS, "3", ""},
		{"select //header[@level='2']", SELECT, "", "//header[@level='2']"},
		{"css ul > li", CSS, "", "ul > li"},
		{"set wholewords on", SET, "", "wholewords on"},
	} {
		cmd, err := parseCommand(x.line)
		if !assert.NoError(t, err, "#%d: %q", i, x.line) {
			continue
		}
		assert.Equal(t, x.code, cmd.code, "#%d: %q", i, x.line)
		assert.Equal(t, x.format, cmd.format, "#%d: %q", i, x.line)
		assert.Equal(t, x.arg, cmd.arg, "#%d: %q", i, x.line)
	}
	for _, line := range []string{"frobnicate", "find", "find:fuzzy x", "load"} {
		_, err := parseCommand(line)
		assert.Error(t, err, line)
	}
}

func TestExecute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.cli")
	defer teardown()
	//
	name := filepath.Join(t.TempDir(), "milk.md")
	text := "# Milk\n- one *milk*\n- two\n\nSome milky way."
	if err := os.WriteFile(name, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	intp := NewIntp(parameters.NewRegisters())
	run := func(line string) error {
		cmd, err := parseCommand(line)
		if err != nil {
			return err
		}
		quit, err := intp.execute(cmd)
		assert.False(t, quit, line)
		return err
	}
	err := run("tree")
	assert.Equal(t, core.EMISSING, core.Code(err), "no document loaded")
	//
	assert.NoError(t, run("load "+name))
	assert.NoError(t, run("find milk"))
	assert.Equal(t, 3, intp.session.Count())
	assert.NoError(t, run("next"))
	i, _, ok := intp.session.Current()
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.NoError(t, run("find:exact Milk"))
	assert.Equal(t, 1, intp.session.Count())
	assert.NoError(t, run("find:word milk"))
	assert.Equal(t, 2, intp.session.Count())
	assert.False(t, intp.regs.B(parameters.P_WHOLEWORDS), "search mode must not stick")
	//
	assert.NoError(t, run("set wholewords on"))
	assert.NoError(t, run("find milk"))
	assert.Equal(t, 2, intp.session.Count())
	assert.Error(t, run("set wholewords maybe"))
	assert.Error(t, run("set nosuchthing 1"))
	//
	for _, line := range []string{"tree", "clear", "blocks", "runs:0", "focus", "prev",
		"select //ul/italic", "css li em", "html", "suggest mil", "set", "help"} {
		assert.NoError(t, run(line), line)
	}
	assert.Error(t, run("select //["))
	assert.Error(t, run("css a["))
	assert.Error(t, run("runs:99"))
	//
	cmd, _ := parseCommand("quit")
	quit, err := intp.execute(cmd)
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "a⏎b", excerpt("a\nb", 10))
	assert.Equal(t, "abc…", excerpt("abcdef", 4))
}
