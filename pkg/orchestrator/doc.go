// Package orchestrator resolves a template, interprets its layout against a
// card record and hands the result to a named output renderer, applying the
// selected theme on the way.
package orchestrator
