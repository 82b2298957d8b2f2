// Package seed loads the built-in card templates a fresh installation starts
// with. Seed documents are JSON or YAML files listing templates whose layout
// may be written either as the serialized layout string or as a nested
// object.
package seed
