package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/render"
)

const (
	// DefaultSelector matches the card root emitted by the html renderer.
	DefaultSelector = "#card"
	defaultTimeout  = 30 * time.Second
)

type config struct {
	chromePath string
	selector   string
	scale      float64
	timeout    time.Duration
	logger     zerolog.Logger
}

// Option customises a PNG export.
type Option func(*config)

// WithChromePath uses the given browser binary instead of auto-detection.
func WithChromePath(path string) Option {
	return func(c *config) {
		c.chromePath = path
	}
}

// WithSelector screenshots the first node matching selector.
func WithSelector(selector string) Option {
	return func(c *config) {
		if strings.TrimSpace(selector) != "" {
			c.selector = selector
		}
	}
}

// WithScale sets the device scale factor, e.g. 2 for print-ready output.
func WithScale(scale float64) Option {
	return func(c *config) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// WithTimeout bounds the whole browser session.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the export logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// PNG loads html into a headless browser with a width x height viewport and
// returns a screenshot of the card element.
func PNG(ctx context.Context, html []byte, width, height int, options ...Option) ([]byte, error) {
	if len(strings.TrimSpace(string(html))) == 0 {
		return nil, errors.New("export: html is empty")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("export: invalid viewport %dx%d", width, height)
	}

	cfg := config{
		selector: DefaultSelector,
		scale:    1,
		timeout:  defaultTimeout,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.chromePath == "" {
		cfg.chromePath = DetectChromePath()
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	cfg.logger.Debug().
		Str("chrome", cfg.chromePath).
		Int("width", width).
		Int("height", height).
		Float64("scale", cfg.scale).
		Msg("exporting card png")

	var shot []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(width), int64(height), chromedp.EmulateScale(cfg.scale)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitVisible(cfg.selector, chromedp.ByQuery),
		chromedp.Screenshot(cfg.selector, &shot, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("export: screenshot: %w", err)
	}
	return shot, nil
}

// CardSize returns the canvas dimensions of a render result in pixels,
// falling back to the layout defaults for values that are not plain pixels.
func CardSize(result render.Result) (int, int) {
	width, ok := layout.ParsePx(result.Canvas.Width)
	if !ok || width <= 0 {
		width, _ = layout.ParsePx(layout.DefaultWidth)
	}
	height, ok := layout.ParsePx(result.Canvas.Height)
	if !ok || height <= 0 {
		height, _ = layout.ParsePx(layout.DefaultHeight)
	}
	return width, height
}

// DetectChromePath looks for a browser binary, honouring CHROME_PATH first.
// An empty result lets chromedp search its own defaults.
func DetectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
