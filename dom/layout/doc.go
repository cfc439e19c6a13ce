/*
Package layout computes element geometry for a styled HTML tree.

The engine implements a reduced CSS normal flow: block-level boxes stack
vertically, inline-level content (text runs and atomic inline boxes) fills
line boxes which wrap at the edge of the containing block. Margins, borders,
padding, explicit and min/max sizes and `box-sizing` are honoured.
Positioning schemes, floats, margin collapsing, flex and grid formatting are
not; flex and grid containers lay out their children as blocks.

Text is measured with a fixed average glyph advance relative to the font size,
as there are no fonts involved.

Geometry is never cached. Every call to Engine.Layout performs a complete
layout pass over the tree it is handed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'domchain.layout'.
func tracer() tracing.Trace {
	return tracing.Select("domchain.layout")
}
