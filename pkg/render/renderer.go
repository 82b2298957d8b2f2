package render

import (
	"context"
)

// Renderer converts a render Result into a byte representation (HTML, JSON,
// etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, result Result, options RenderOptions) ([]byte, error)
}
