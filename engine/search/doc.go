/*
Package search finds text in the plain rendering of markdown documents and
maps the hits back onto the blocks of a document.

Searching happens on cleared text, i.e. on the output of markdown.Clear. Hits
are half-open byte ranges in that coordinate space. A document is displayed
as a sequence of blocks, each one covering a contiguous part of the plain
text. Every block is described by a Span: its bounds in global coordinates and
the offset to subtract for translating a global position into a block-local
one.

	finder := search.NewFinder(regs)                 // configured by search parameters
	ranges := finder.Find(plain, "milk")             // global hit ranges
	perBlock := search.MapHits(ranges, spans)        // block-local ranges

IndexesOf returns start offsets only. Converting them with Hits assumes every
hit is as long as the query, which does not hold if the finder ignores
diacritics, nor for case folds changing the byte length (e.g. the Kelvin sign
U+212A matching "k").

A hit which straddles the border between two blocks belongs to neither of
them and is dropped. Highlighting is done per block, and a block cannot
highlight text it does not own.

Type Session keeps the state of an interactive search: query, hits and the
position of the current hit.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package search

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'marktext.search'.
func tracer() tracing.Trace {
	return tracing.Select("marktext.search")
}
