package parameters

import (
	"strings"
	"testing"

	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.config")
	defer teardown()
	//
	regs := NewRegisters()
	assert.Equal(t, "und", regs.S(P_SEARCHLANGUAGE))
	assert.True(t, regs.B(P_IGNORECASE))
	assert.False(t, regs.B(P_WHOLEWORDS))
	assert.Equal(t, 10, regs.N(P_SUGGESTIONS))
	assert.Equal(t, "P_WHOLEWORDS", P_WHOLEWORDS.String())
}

func TestGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.config")
	defer teardown()
	//
	regs := NewRegisters()
	regs.Begingroup()
	regs.Push(P_IGNORECASE, false)
	assert.False(t, regs.B(P_IGNORECASE))
	regs.Begingroup()
	regs.Push(P_WHOLEWORDS, true)
	assert.True(t, regs.B(P_WHOLEWORDS))
	assert.False(t, regs.B(P_IGNORECASE), "outer group override should be visible")
	regs.Endgroup()
	assert.False(t, regs.B(P_WHOLEWORDS))
	regs.Endgroup()
	assert.True(t, regs.B(P_IGNORECASE))
	// a group without overrides must not leak its level
	regs.Begingroup()
	regs.Endgroup()
	regs.Push(P_SUGGESTIONS, 3)
	regs.Begingroup()
	regs.Endgroup()
	assert.Equal(t, 3, regs.N(P_SUGGESTIONS))
}

func TestSetAndLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.config")
	defer teardown()
	//
	regs := NewRegisters()
	key, err := Lookup("wholewords")
	assert.NoError(t, err)
	assert.Equal(t, P_WHOLEWORDS, key)
	assert.NoError(t, regs.Set(key, "on"))
	assert.True(t, regs.B(P_WHOLEWORDS))
	err = regs.Set(P_SUGGESTIONS, "many")
	assert.Equal(t, core.EINVALID, core.Code(err))
	err = regs.Set(P_IGNORECASE, "maybe")
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = Lookup("fontsize")
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestFromConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.config")
	defer teardown()
	//
	conf := testconfig.Conf{
		"search.language":    "de",
		"search.ignorecase":  "false",
		"search.suggestions": 4,
	}
	regs := FromConfiguration(conf)
	assert.Equal(t, "de", regs.S(P_SEARCHLANGUAGE))
	assert.False(t, regs.B(P_IGNORECASE))
	assert.Equal(t, 4, regs.N(P_SUGGESTIONS))
	assert.False(t, regs.B(P_IGNOREDIACRITICS))
}

func TestLoadYAML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.config")
	defer teardown()
	//
	y := `
tracing.adapter: go
search:
  language: fr
  wholewords: true
  suggestions: 7
`
	conf, err := LoadYAML(strings.NewReader(y))
	assert.NoError(t, err)
	assert.Equal(t, "go", conf.GetString("tracing.adapter"))
	regs := FromConfiguration(conf)
	assert.Equal(t, "fr", regs.S(P_SEARCHLANGUAGE))
	assert.True(t, regs.B(P_WHOLEWORDS))
	assert.Equal(t, 7, regs.N(P_SUGGESTIONS))
	//
	conf, err = LoadYAML(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(conf))
	_, err = LoadYAML(strings.NewReader("search: [unclosed"))
	assert.Equal(t, core.EINVALID, core.Code(err))
}
