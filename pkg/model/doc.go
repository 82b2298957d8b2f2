// Package model exposes the card designer data model: templates and their
// typed fields, cards holding a tagged value per field key, and projects that
// group cards. Implementations live in internal/model; this package re-exports
// them together with the Builder used to turn loosely specified template
// definitions (seed files, API payloads) into validated templates. Field keys
// are camelCase identifiers derived from labels through KeyDeriver; a field
// only follows later label edits while its KeyAutoDerived flag is set.
package model
