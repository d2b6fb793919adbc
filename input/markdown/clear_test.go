package markdown

import (
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestClear(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	for i, x := range []struct {
		text, plain string
	}{
		{"**bold** and _it_", "bold and it"},
		{"> a *famous* quote", "a famous quote"},
		{"### Title", "Title"},
		{"# Header *not parsed*", "Header *not parsed*"},
		{"see [docs](http://x.org) now", "see docs now"},
		{"a\n---\nb", "a\n \nb"},
		{"12. Buy **milk**", "Buy milk"},
		{"- one\n- ~~two~~", "one\ntwo"},
		{"`x*y*`", "x*y*"},
		{"```go\n*a*```", "go\n*a*"},
		{`![logo](img.png "The Logo")`, "The Logo"},
		{"![logo](img.png)", ""},
		{"*unclosed", "*unclosed"},
	} {
		assert.Equal(t, x.plain, Clear(x.text), "#%d: %q", i, x.text)
	}
}

func TestClearIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	for _, x := range []string{
		"**bold** and _it_",
		"> a *famous* quote",
		"12. Buy **milk**",
		"see [docs](http://x.org) now",
	} {
		once := Clear(x)
		assert.Equal(t, once, Clear(once), "clearing %q twice", x)
	}
}

func TestClearEqualsPlain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	for i, x := range roundTrip {
		assert.Equal(t, Clear(x), Parse(x).Plain(), "#%d: %q", i, x)
	}
}

func TestGrammarShared(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	g := NewGrammar()
	var wg sync.WaitGroup
	results := make([]string, len(roundTrip))
	for i, x := range roundTrip {
		wg.Add(1)
		go func(i int, x string) {
			defer wg.Done()
			results[i] = g.Parse(x).Markup()
		}(i, x)
	}
	wg.Wait()
	assert.Equal(t, roundTrip, results)
}
