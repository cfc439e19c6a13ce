/*
Package cssom provides functionality for CSS styling.

Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML.
We use it to compute styles for the elements of a document tree, mainly
to be able to answer geometry queries (bounding client rects) for elements
which have been styled by a chain of calls, by embedded <style> elements,
or by user-agent defaults.

A good explanation of styling may be found in

   https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/

Selector matching and specificity is done by
https://godoc.org/github.com/andybalholm/cascadia.
CSS handling is de-coupled by introducing appropriate interfaces
StyleSheet and Rule. A concrete implementation may be found in
sub-package douceuradapter.

The cascade implemented here is simplified: there are no media queries,
no pseudo-elements and no @-rules. Ordering of declarations follows
importance, origin, specificity and source order.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'domchain.style'.
func tracer() tracing.Trace {
	return tracing.Select("domchain.style")
}
