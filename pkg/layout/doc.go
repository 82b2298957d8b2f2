// Package layout models the canonical, persisted layout of a card template:
// a fixed-size canvas and an ordered list of absolutely positioned elements,
// each bound to a template field key. Array order is paint order.
//
// Styles are parsed into a typed Style at the JSON boundary. Properties the
// designer edits have dedicated fields; anything else is kept verbatim in
// Style.Extra so hand-written layouts survive a parse/marshal cycle.
package layout
