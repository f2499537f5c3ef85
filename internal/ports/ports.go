package ports

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ZhihuClipper/internal/disguise"
	"ZhihuClipper/internal/domain"
)

// DocumentSource produces a read-only snapshot of the page behind target.
type DocumentSource interface {
	Load(ctx context.Context, target string) (*goquery.Document, error)
}

// Extractor turns a snapshot into labeled segments.
type Extractor interface {
	Extract(doc *goquery.Document) domain.ExtractionResult
}

// Disguiser rewrites a snapshot in place.
type Disguiser interface {
	Apply(doc *goquery.Document) disguise.Report
}

// Clipboard receives the flattened export on "copy all".
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Pacer delivers panel lines one at a time with a fixed delay.
type Pacer interface {
	Pace(ctx context.Context, lines []domain.PanelLine, emit func(domain.PanelLine) error) error
	Interval() time.Duration
}
