package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"ZhihuClipper/internal/disguise"
	"ZhihuClipper/internal/domain"
	"ZhihuClipper/internal/ports"
)

var (
	// ErrNothingToCopy is returned by CopyAll when no content has been extracted.
	ErrNothingToCopy = errors.New("nothing to copy")
	// ErrClipboard wraps every clipboard failure.
	ErrClipboard = errors.New("clipboard write failed")
	// ErrNoSource is returned when a target is given but no source is wired.
	ErrNoSource = errors.New("no document source configured")
)

// PanelDeps wires all driven adapters into the panel session.
type PanelDeps struct {
	Source    ports.DocumentSource
	Extractor ports.Extractor
	Disguiser ports.Disguiser
	Clipboard ports.Clipboard
	Logger    *slog.Logger
}

// Panel is the side panel session: it extracts, keeps the last export for
// "copy all" and runs the disguise rewrite.
type Panel struct {
	source    ports.DocumentSource
	extractor ports.Extractor
	disguiser ports.Disguiser
	clipboard ports.Clipboard
	logger    *slog.Logger

	mu      sync.Mutex
	current domain.ExtractionResult
}

// NewPanel constructs the panel session.
func NewPanel(deps PanelDeps) *Panel {
	return &Panel{
		source:    deps.Source,
		extractor: deps.Extractor,
		disguiser: deps.Disguiser,
		clipboard: deps.Clipboard,
		logger:    deps.Logger,
	}
}

// Extract loads target and runs extraction on it. The result replaces the
// stored content.
func (p *Panel) Extract(ctx context.Context, target string) (domain.ExtractionResult, error) {
	doc, err := p.load(ctx, target)
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	return p.ExtractDocument(doc), nil
}

// ExtractDocument runs extraction on an already loaded snapshot.
func (p *Panel) ExtractDocument(doc *goquery.Document) domain.ExtractionResult {
	var result domain.ExtractionResult
	if p.extractor != nil {
		result = p.extractor.Extract(doc)
	}

	p.mu.Lock()
	p.current = result
	p.mu.Unlock()

	p.info("content extracted",
		"segments", len(result.Segments),
		"answer_items", result.AnswerItems,
		"answers", result.AnswerCount,
	)
	return result
}

// Content returns the stored extraction result.
func (p *Panel) Content() domain.ExtractionResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Clear drops the stored content.
func (p *Panel) Clear() {
	p.mu.Lock()
	p.current = domain.ExtractionResult{}
	p.mu.Unlock()
}

// CopyAll writes the stored export to the clipboard. Failures are reported
// once and never retried.
func (p *Panel) CopyAll(ctx context.Context) (string, error) {
	text := p.Content().Export
	if text == "" {
		return "", ErrNothingToCopy
	}
	if p.clipboard == nil {
		return "", fmt.Errorf("%w: clipboard disabled", ErrClipboard)
	}

	if err := p.clipboard.WriteText(ctx, text); err != nil {
		if p.logger != nil {
			p.logger.Warn("copy failed", "error", err)
		}
		return "", fmt.Errorf("%w: %v", ErrClipboard, err)
	}

	p.info("content copied", "chars", len([]rune(text)))
	return text, nil
}

// Disguise loads target, rewrites it and returns the resulting HTML.
func (p *Panel) Disguise(ctx context.Context, target string) (string, disguise.Report, error) {
	doc, err := p.load(ctx, target)
	if err != nil {
		return "", disguise.Report{}, err
	}
	return p.DisguiseDocument(doc)
}

// DisguiseDocument rewrites doc in place and renders it.
func (p *Panel) DisguiseDocument(doc *goquery.Document) (string, disguise.Report, error) {
	var report disguise.Report
	if p.disguiser != nil {
		report = p.disguiser.Apply(doc)
	}

	out, err := disguise.Render(doc)
	if err != nil {
		return "", report, fmt.Errorf("disguise: %w", err)
	}

	p.info("page disguised",
		"titles", report.TitlesReplaced,
		"removed", report.Removed,
		"hidden", report.Hidden,
		"logos", report.LogosReplaced,
	)
	return out, report, nil
}

func (p *Panel) load(ctx context.Context, target string) (*goquery.Document, error) {
	if p.source == nil {
		return nil, ErrNoSource
	}
	doc, err := p.source.Load(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", target, err)
	}
	return doc, nil
}

func (p *Panel) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
