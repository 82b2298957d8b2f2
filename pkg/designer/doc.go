// Package designer keeps the per-field GUI configuration of a template and
// its layout document in sync.
//
// Serialize and Hydrate are pure: they turn GUI configuration into a layout
// document and back without touching timers or views. Session is the
// single-owner controller on top of them. It debounces GUI edits, suspends
// hydration while the raw JSON view is active and skips writes when the
// serialized text did not change.
package designer
