/*
Package css provides functionality for computed CSS values.

CSS properties are plentyful and some of them are complicated.
This package trys to shield clients from the cumbersome handling of
CSS properties resulting of (1) the textual nature of CSS properties
and (2) the semantics of computing style attributes for a given node,
i.e. inheritance and user-agent defaults.

Computed styles are not stored with the HTML nodes. Clients supply a
StyleLookup, usually backed by a cssom.ComputedStyles.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

// see
// https://developer.mozilla.org/en-US/docs/Web/CSS/Reference#dom-css_cssom
