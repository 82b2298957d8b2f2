package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-cardforge"
	"github.com/goliatone/go-cardforge/internal/config"
	"github.com/goliatone/go-cardforge/internal/logging"
	"github.com/goliatone/go-cardforge/pkg/authoring/tui"
	"github.com/goliatone/go-cardforge/pkg/export"
	"github.com/goliatone/go-cardforge/pkg/httpapi"
	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/namegen"
	"github.com/goliatone/go-cardforge/pkg/orchestrator"
	"github.com/goliatone/go-cardforge/pkg/render"
	"github.com/goliatone/go-cardforge/pkg/store"
)

const usage = `usage: cardforge-cli [-config file] [-env file] <command> [flags]

commands:
  templates   list stored templates
  render      render a card to html/json, optionally exporting a PNG
  author      fill a card interactively in the terminal
  serve       run the HTTP API`

type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	stores *cardforge.Stores
}

func main() {
	configPath := flag.String("config", "cardforge.yaml", "configuration file")
	envFile := flag.String("env", ".env", "environment file loaded before overrides")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cardforge: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Console, os.Stderr)

	stores, err := cardforge.OpenStores(cfg.Store.Driver, cfg.Store.DSN, store.WithTemplateLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("open store")
	}

	a := &app{cfg: cfg, logger: logger, stores: stores}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	switch args[0] {
	case "templates":
		err = a.listTemplates(ctx)
	case "render":
		err = a.render(ctx, args[1:])
	case "author":
		err = a.author(ctx, args[1:])
	case "serve":
		err = a.serve(ctx, args[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		logger.Fatal().Err(err).Str("command", args[0]).Msg("command failed")
	}
}

func (a *app) listTemplates(ctx context.Context) error {
	templates, err := a.stores.Templates.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, tpl := range templates {
		fmt.Printf("%-24s %-32s %d fields\n", tpl.ID, tpl.Name, len(tpl.Fields))
	}
	return nil
}

func (a *app) orchestrator() *orchestrator.Orchestrator {
	engine := render.NewEngine(
		render.WithLogger(a.logger),
		render.WithPlaceholderBaseURL(a.cfg.Render.PlaceholderBaseURL),
	)
	return orchestrator.New(
		orchestrator.WithLogger(a.logger),
		orchestrator.WithEngine(engine),
		orchestrator.WithTemplateStore(a.stores.Templates),
		orchestrator.WithTransformer(orchestrator.FieldDefaults()),
	)
}

func (a *app) render(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	templateID := fs.String("template", "generic", "template id")
	cardPath := fs.String("card", "", "card JSON file (empty renders placeholders)")
	rendererName := fs.String("renderer", "html", "renderer to use (html, json)")
	standalone := fs.Bool("standalone", false, "wrap html output in a full page")
	output := fs.String("output", "", "output file (stdout if empty)")
	pngPath := fs.String("png", "", "also export a PNG screenshot to this path")
	thumbWidth := fs.Int("thumb-width", 0, "scale the PNG down to this width")
	scale := fs.Float64("scale", 1, "device scale factor for PNG export")
	if err := fs.Parse(args); err != nil {
		return err
	}

	card, err := readCard(*cardPath)
	if err != nil {
		return err
	}

	orch := a.orchestrator()
	out, err := orch.Render(ctx, orchestrator.Request{
		TemplateID:    *templateID,
		Record:        card,
		Renderer:      *rendererName,
		ThemeName:     a.cfg.Render.Theme,
		ThemeVariant:  a.cfg.Render.Variant,
		RenderOptions: render.RenderOptions{Standalone: *standalone},
	})
	if err != nil {
		return err
	}
	if err := writeOutput(*output, out.Body); err != nil {
		return err
	}

	if *pngPath == "" {
		return nil
	}
	page, err := orch.Render(ctx, orchestrator.Request{
		TemplateID:    *templateID,
		Record:        card,
		Renderer:      "html",
		RenderOptions: render.RenderOptions{Standalone: true},
	})
	if err != nil {
		return err
	}
	width, height := export.CardSize(page.Result)
	shot, err := export.PNG(ctx, page.Body, width, height, export.WithScale(*scale), export.WithLogger(a.logger))
	if err != nil {
		return err
	}
	if *thumbWidth > 0 {
		if shot, err = export.Thumbnail(shot, *thumbWidth); err != nil {
			return err
		}
	}
	if err := os.WriteFile(*pngPath, shot, 0o644); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	a.logger.Info().Str("path", *pngPath).Int("bytes", len(shot)).Msg("png exported")
	return nil
}

func (a *app) author(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("author", flag.ExitOnError)
	templateID := fs.String("template", "generic", "template id")
	cardPath := fs.String("card", "", "existing card JSON to edit")
	output := fs.String("output", "", "output file (stdout if empty)")
	projectID := fs.String("project", "", "also add the card to this project")
	suggest := fs.Bool("suggest", false, "offer AI name suggestions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tpl, err := a.stores.Templates.Get(ctx, *templateID)
	if err != nil {
		return err
	}
	card, err := readCard(*cardPath)
	if err != nil {
		return err
	}

	options := []tui.Option{tui.WithLogger(a.logger)}
	if *suggest {
		gen, err := namegen.New(a.cfg.NameGen, namegen.WithLogger(a.logger))
		if err != nil {
			return err
		}
		options = append(options, tui.WithNameGenerator(gen))
	}

	filled, result, err := tui.New(options...).Fill(ctx, tpl, card)
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("card has %d invalid field(s)", len(result.Issues))
	}

	if *projectID != "" {
		if filled, err = a.stores.Projects.AddCard(ctx, *projectID, filled); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(filled, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(*output, data)
}

func (a *app) serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", a.cfg.HTTP.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	api := httpapi.New(a.stores.Templates,
		httpapi.WithLogger(a.logger),
		httpapi.WithOrchestrator(a.orchestrator()),
	)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", *addr).Msg("http api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func readCard(path string) (model.CardData, error) {
	if path == "" {
		return model.CardData{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.CardData{}, fmt.Errorf("read card: %w", err)
	}
	var card model.CardData
	if err := json.Unmarshal(data, &card); err != nil {
		return model.CardData{}, fmt.Errorf("parse card %s: %w", path, err)
	}
	return card, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "written to %s\n", path)
	return nil
}
