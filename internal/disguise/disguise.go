// Package disguise rewrites a zhihu.com page snapshot so it reads like an
// internal project document: neutral title, no side columns or author cards,
// and Feishu branding in place of the Zhihu logo.
package disguise

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ReplacementTitle is written into every question title.
const ReplacementTitle = "AI大模型开发项目文档"

const hiddenDisplay = "none !important"

// Report counts what a disguise pass changed.
type Report struct {
	TitlesReplaced int  `json:"titles_replaced"`
	Removed        int  `json:"removed"`
	Hidden         int  `json:"hidden"`
	LogosReplaced  int  `json:"logos_replaced"`
	QuestionPage   bool `json:"question_page"`
	ArticlePage    bool `json:"article_page"`
}

// Disguiser applies the cosmetic rewrite.
type Disguiser struct {
	logger *slog.Logger
}

// New builds a Disguiser; log may be nil.
func New(log *slog.Logger) *Disguiser {
	return &Disguiser{logger: log}
}

type pass struct {
	doc    *goquery.Document
	report Report
	hidden map[*html.Node]struct{}
	logger *slog.Logger
}

// Apply mutates doc in place and reports the changes.
func (d *Disguiser) Apply(doc *goquery.Document) Report {
	if doc == nil || doc.Selection == nil {
		return Report{}
	}

	p := &pass{doc: doc, hidden: map[*html.Node]struct{}{}, logger: d.logger}
	p.resetBackgrounds()
	p.replaceTitles()
	p.removeSideColumns()
	p.hideArticleMedia()
	p.hideAuthorCards()
	p.replaceLogos()

	p.report.Hidden = len(p.hidden)
	p.debug("disguise applied",
		"titles", p.report.TitlesReplaced,
		"removed", p.report.Removed,
		"hidden", p.report.Hidden,
		"logos", p.report.LogosReplaced,
	)
	return p.report
}

// Render serializes the document back to HTML.
func Render(doc *goquery.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("render: nil document")
	}
	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return out, nil
}

func (p *pass) resetBackgrounds() {
	for _, selector := range []string{"body", `[data-za-detail-view-id="3005"]`, ".AppHeader", ".Card, .ContentItem, .QuestionItem"} {
		removeStyleProperty(p.doc.Find(selector), "background-color")
	}

	p.doc.Find("[style]").Each(func(_ int, el *goquery.Selection) {
		bg := strings.ToLower(styleProperty(el, "background-color"))
		if strings.Contains(bg, "#ff") || strings.Contains(bg, "pink") {
			removeStyleProperty(el, "background-color")
		}
	})
}

func (p *pass) replaceTitles() {
	p.doc.Find(".QuestionHeader-title, .css-j3g3pk").Each(func(_ int, el *goquery.Selection) {
		p.debug("replace title", "text", strings.TrimSpace(el.Text()))
		el.SetText(ReplacementTitle)
		p.report.TitlesReplaced++
	})
}

func (p *pass) removeSideColumns() {
	doomed := p.doc.Find(".QuestionHeader-side, .Question-sideColumn, #Popover8-toggle")
	p.report.Removed += doomed.Length()
	doomed.Remove()
}

func (p *pass) hideArticleMedia() {
	p.doc.Find(".Post-Row-Content-left-article").Each(func(_ int, article *goquery.Selection) {
		images := article.Find(`img, picture, [class*="image"], [class*="Image"]`)
		videos := article.Find(`video, iframe, [class*="video"], [class*="Video"], [class*="player"], [class*="Player"]`)
		p.hide(images)
		p.hide(videos)
		p.debug("article media hidden", "images", images.Length(), "videos", videos.Length())
	})
}

func (p *pass) hide(sel *goquery.Selection) {
	sel.Each(func(_ int, el *goquery.Selection) {
		setStyleProperty(el, "display", hiddenDisplay)
		p.hidden[el.Get(0)] = struct{}{}
	})
}

func (p *pass) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func within(el *goquery.Selection, selector string) bool {
	return el.Closest(selector).Length() > 0
}
