package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"ZhihuClipper/internal/config"
	"ZhihuClipper/internal/infrastructure/fetcher"
	"ZhihuClipper/internal/source"
)

const defaultWaitSelector = "body"

// Loader renders a page in headless Chrome and snapshots the live DOM, so
// answers injected by scripts are part of the document.
type Loader struct {
	headless     bool
	timeout      time.Duration
	waitSelector string
	userAgent    string
	logger       *slog.Logger
}

var _ source.Loader = (*Loader)(nil)

// NewLoader builds a browser loader from configuration.
func NewLoader(cfg config.BrowserConfig, userAgent string, log *slog.Logger) *Loader {
	wait := strings.TrimSpace(cfg.WaitSelector)
	if wait == "" {
		wait = defaultWaitSelector
	}
	return &Loader{
		headless:     cfg.Headless,
		timeout:      cfg.Timeout,
		waitSelector: wait,
		userAgent:    userAgent,
		logger:       log,
	}
}

// Name identifies the loader inside the registry.
func (l *Loader) Name() string {
	return "browser"
}

// Load navigates to target, waits for the content root and returns the rendered DOM.
func (l *Loader) Load(ctx context.Context, target string) (*goquery.Document, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", l.headless),
		chromedp.Flag("disable-gpu", true),
	)
	if l.userAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(l.userAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if l.timeout > 0 {
		var toCancel context.CancelFunc
		browserCtx, toCancel = context.WithTimeout(browserCtx, l.timeout)
		defer toCancel()
	}

	var outer string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady(l.waitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &outer, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", target, err)
	}

	if l.logger != nil {
		l.logger.Debug("page rendered", "url", target, "bytes", len(outer))
	}
	return fetcher.Parse(strings.NewReader(outer))
}
