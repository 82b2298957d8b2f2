package model

// Decorator adjusts a template after it was loaded and before it is rendered,
// e.g. to inject a default layout or rewrite labels for a locale.
type Decorator interface {
	Decorate(*Template) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Template) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(tpl *Template) error {
	return fn(tpl)
}
