/*
Package markdown parses markdown article bodies into a tree of typed elements
and derives the plain text a reader would see.

Markdown parsing here is local: a construct never depends on something far away
in the text. The grammar is a fixed, prioritized table of constructs (list items,
headers, quotes, emphasis, rules, code, links, images). Parsing repeatedly looks
for the leftmost match of any construct, strips the construct's delimiters and
recurses into the body of container constructs:

	doc := markdown.Parse("> a *famous* quote")
	// doc.Elements[0] is a Quote with children Text("a "), Italic("famous"), Text(" quote")

	plain := markdown.Clear("> a *famous* quote")
	// plain == "a famous quote"

Parsing never fails. Markup that does not match is literal text, and every
byte of the input ends up in exactly one element, so

	Parse(x).Markup() == x
	Parse(x).Plain() == Clear(x)

hold for any input x. All positions are byte offsets; '\n' is the line
terminator.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package markdown

import (
	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'marktext.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("marktext.markdown")
}

// errFields reports a construct whose field extraction failed after the
// construct itself had matched.
func errFields(kind Kind, span string) error {
	return core.Error(core.EINTERNAL, "%s matched %q, but its fields could not be extracted", kind, span)
}
