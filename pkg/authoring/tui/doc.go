// Package tui fills card records from the terminal. An Author walks the
// fields of a template in order and asks one prompt per field through a
// PromptDriver; the default driver is backed by survey, tests script their
// own.
package tui
