/*
Package blocks partitions parsed markdown documents into displayable blocks
and relates plain-text positions to markdown elements.

A document is displayed as a sequence of blocks: runs of ordinary text,
images and scrollable code blocks. Each block covers a contiguous part of the
document's plain text (see markdown.Clear), described by its bounds and its
offset. These are the coordinates package search uses to distribute search
hits onto blocks.

The plain text of a document is held in a cord (package cords), the leaves of
which remember the elements they have been created from. This way a search hit
or a cursor position in the plain text can be mapped to the innermost
element producing it, e.g. for highlighting a link or for looking up a header.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package blocks

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'marktext.blocks'.
func tracer() tracing.Trace {
	return tracing.Select("marktext.blocks")
}
