// Package tailwind holds the enumerable utility-class catalog used by the
// card designer. Each Category owns a closed set of classes; the designer
// stores one selection per category and reconstructs it from a className
// string by scanning its words against those sets.
package tailwind
