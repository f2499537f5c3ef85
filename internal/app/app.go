package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"ZhihuClipper/internal/api"
	"ZhihuClipper/internal/config"
	"ZhihuClipper/internal/disguise"
	"ZhihuClipper/internal/domain"
	"ZhihuClipper/internal/extractor"
	"ZhihuClipper/internal/infrastructure/browser"
	"ZhihuClipper/internal/infrastructure/clipboard"
	"ZhihuClipper/internal/infrastructure/fetcher"
	"ZhihuClipper/internal/infrastructure/scheduler"
	"ZhihuClipper/internal/logging"
	"ZhihuClipper/internal/ports"
	"ZhihuClipper/internal/source"
	"ZhihuClipper/internal/usecase"
)

const usage = `usage: zhihuclipper <command> [flags]

commands:
  extract  [-json] [-copy] [-animate] [-o file] <url|file|->
  disguise [-o file] <url|file|->
  serve    [-addr host:port]`

// ErrUsage is returned for unknown commands or missing arguments.
var ErrUsage = errors.New("invalid usage")

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	panel    *usecase.Panel
	streamer *usecase.Streamer
	stdout   io.Writer
	stderr   io.Writer
}

// New builds a runnable application instance reading stdin and writing stdout.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	return newApplication(cfg, baseLogger, os.Stdin, os.Stdout, os.Stderr, systemClipboard(cfg))
}

func newApplication(cfg config.Config, baseLogger *slog.Logger, stdin io.Reader, stdout, stderr io.Writer, clip ports.Clipboard) *Application {
	if baseLogger == nil {
		baseLogger = logging.NewWithWriter(stderr, cfg.Logging.Level, cfg.Logging.Format)
	}

	remote := "http"
	if cfg.Browser.Enabled {
		remote = "browser"
	}
	registry := source.NewRegistry(remote)
	registry.Register(fetcher.NewFileLoader(stdin))
	registry.Register(fetcher.NewHTTPLoader(nil, cfg.Fetch, baseLogger.With("component", "source.http")))
	if cfg.Browser.Enabled {
		registry.Register(browser.NewLoader(cfg.Browser, cfg.Fetch.UserAgent, baseLogger.With("component", "source.browser")))
	}

	panel := usecase.NewPanel(usecase.PanelDeps{
		Source:    registry,
		Extractor: extractor.New(extractor.ZhihuSelectors(), baseLogger.With("component", "extractor")),
		Disguiser: disguise.New(baseLogger.With("component", "disguise")),
		Clipboard: clip,
		Logger:    baseLogger.With("component", "panel"),
	})
	streamer := usecase.NewStreamer(scheduler.NewLinePacer(cfg.Panel.LineDelay), panel)

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		panel:    panel,
		streamer: streamer,
		stdout:   stdout,
		stderr:   stderr,
	}
}

func systemClipboard(cfg config.Config) ports.Clipboard {
	if !cfg.Panel.Clipboard || !clipboard.Available() {
		return nil
	}
	return clipboard.NewSystem()
}

// Run dispatches a single command.
func (a *Application) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, usage)
		return ErrUsage
	}

	switch args[0] {
	case "extract":
		return a.runExtract(ctx, args[1:])
	case "disguise":
		return a.runDisguise(ctx, args[1:])
	case "serve":
		return a.runServe(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(a.stdout, usage)
		return nil
	default:
		fmt.Fprintln(a.stderr, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func (a *Application) runExtract(ctx context.Context, args []string) error {
	fs := a.flagSet("extract")
	asJSON := fs.Bool("json", false, "print the extraction result as JSON")
	copyAll := fs.Bool("copy", false, "copy the export to the system clipboard")
	animate := fs.Bool("animate", false, "print panel lines one by one with the configured delay")
	output := fs.String("o", "", "also write the export to this file")
	target, err := parseTarget(fs, args)
	if err != nil {
		return err
	}

	var result domain.ExtractionResult
	if *animate && !*asJSON {
		result, err = a.streamer.Stream(ctx, target, func(line domain.PanelLine) error {
			_, werr := fmt.Fprintln(a.stdout, line.Text)
			return werr
		})
	} else {
		result, err = a.panel.Extract(ctx, target)
	}
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	if result.Empty() {
		a.logger.Info("nothing extracted", "target", target, "answer_items", result.AnswerItems)
	}

	switch {
	case *asJSON:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	case !*animate && result.Export != "":
		fmt.Fprintln(a.stdout, result.Export)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(result.Export), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", *output, err)
		}
	}

	if *copyAll {
		if _, err := a.panel.CopyAll(ctx); err != nil {
			if errors.Is(err, usecase.ErrNothingToCopy) {
				a.logger.Warn("nothing to copy")
				return nil
			}
			return err
		}
		fmt.Fprintln(a.stderr, "✓ 已复制")
	}
	return nil
}

func (a *Application) runDisguise(ctx context.Context, args []string) error {
	fs := a.flagSet("disguise")
	output := fs.String("o", "", "write the rewritten page to this file instead of stdout")
	target, err := parseTarget(fs, args)
	if err != nil {
		return err
	}

	out, report, err := a.panel.Disguise(ctx, target)
	if err != nil {
		return err
	}
	a.logger.Debug("disguise report", "report", report)

	if *output != "" {
		if err := os.WriteFile(*output, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", *output, err)
		}
		return nil
	}
	_, err = io.WriteString(a.stdout, out)
	return err
}

func (a *Application) runServe(ctx context.Context, args []string) error {
	fs := a.flagSet("serve")
	addr := fs.String("addr", a.cfg.Server.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           api.NewRouter(a.panel, a.streamer, a.logger.With("component", "api")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("panel server listening", "addr", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("panel server stopped")
	return nil
}

func (a *Application) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parseTarget(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s expects exactly one target", ErrUsage, fs.Name())
	}
	return fs.Arg(0), nil
}
