// Package template defines the renderer-agnostic template contract used by
// markup renderers, with a pongo2 implementation in the gotemplate
// subpackage.
package template
