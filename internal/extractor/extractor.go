package extractor

import (
	"log/slog"
	"strings"
	"unicode/utf16"

	"github.com/PuerkitoBio/goquery"

	"ZhihuClipper/internal/domain"
)

// Extractor turns a page snapshot into labeled text segments.
type Extractor struct {
	selectors Selectors
	logger    *slog.Logger
}

// New builds an extractor over the given selectors; log may be nil.
func New(selectors Selectors, log *slog.Logger) *Extractor {
	return &Extractor{selectors: selectors, logger: log}
}

// Extract scrapes title, description and answers (or the article body when
// the page has no answers). Missing elements only shorten the result.
func (e *Extractor) Extract(doc *goquery.Document) domain.ExtractionResult {
	if doc == nil || doc.Selection == nil {
		return domain.NewExtractionResult(nil, 0)
	}

	var segments []domain.Segment

	if title := e.firstText(doc.Selection, e.selectors.Title); title != "" {
		segments = append(segments, domain.Segment{Label: domain.LabelTitle, Text: title})
	}

	description := trimmedText(doc.Find(e.selectors.Description).First())
	if description != "" {
		segments = append(segments, domain.Segment{Label: domain.LabelQuestionDescription, Text: description})
	}

	items := doc.Find(e.selectors.AnswerItems)
	if items.Length() > 0 {
		answers := e.answers(items)
		segments = append(segments, answers...)
		e.debug("answers processed", "items", items.Length(), "accepted", len(answers)/2)
	} else if article := e.article(doc, description); article != "" {
		segments = append(segments, domain.Segment{Label: domain.LabelArticleBody, Text: article})
		e.debug("article found", "length", textLength(article))
	} else {
		e.debug("no article content or content equals description")
	}

	return domain.NewExtractionResult(segments, items.Length())
}

func (e *Extractor) answers(items *goquery.Selection) []domain.Segment {
	var (
		segments []domain.Segment
		seen     = map[string]struct{}{}
		counter  int
	)

	items.Each(func(_ int, item *goquery.Selection) {
		text := e.firstText(item, e.selectors.AnswerContent)
		if text == "" {
			text = trimmedText(item)
		}

		if !e.acceptAnswer(text, seen) {
			return
		}
		seen[text] = struct{}{}
		counter++
		segments = append(segments,
			domain.AnswerHeader(counter),
			domain.Segment{Label: domain.LabelAnswerBody, Text: text},
		)
	})

	return segments
}

func (e *Extractor) acceptAnswer(text string, seen map[string]struct{}) bool {
	if textLength(text) <= MinTextLength {
		return false
	}
	if _, dup := seen[text]; dup {
		return false
	}
	for _, placeholder := range e.selectors.Placeholders {
		if strings.Contains(text, placeholder) {
			return false
		}
	}
	return true
}

func (e *Extractor) article(doc *goquery.Document, description string) string {
	candidates := e.selectors.ArticleContent
	if e.selectors.ArticleFallback != "" {
		candidates = append(candidates[:len(candidates):len(candidates)], e.selectors.ArticleFallback)
	}

	for _, selector := range candidates {
		node := doc.Find(selector).First()
		if node.Length() == 0 {
			continue
		}
		text := trimmedText(node)
		if text != "" && text != description && textLength(text) > MinTextLength {
			return text
		}
	}
	return ""
}

// firstText probes selectors in order under root and returns the first
// non-empty trimmed text.
func (e *Extractor) firstText(root *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if text := trimmedText(root.Find(selector).First()); text != "" {
			return text
		}
	}
	return ""
}

func (e *Extractor) debug(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func trimmedText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

// textLength counts UTF-16 code units, the unit a browser reports for string length.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}
