package disguise

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const questionPage = `<html><body style="background-color: pink; margin: 0">
<div class="AppHeader" style="background-color:#fff0f0">
  <a href="https://www.zhihu.com" class="AppHeader-logo"><svg width="64" height="30" fill="#056DE8"><path d="M29.05 1z"></path></svg></a>
</div>
<div class="QuestionPage">
  <h1 class="QuestionHeader-title">真实标题</h1>
  <div class="QuestionHeader-side">side</div>
  <div class="Question-sideColumn"><div class="Card AuthorCard">sidebar author</div></div>
  <button id="Popover8-toggle">more</button>
  <div class="List-item"><div class="AnswerItem"><div class="AuthorInfo">answer author</div><div class="RichText">answer</div></div></div>
  <div class="Card-section"><div class="AuthorCard">standalone</div></div>
  <div class="Card" data-za-module="AdCard">ad</div>
</div>
</body></html>`

const articlePage = `<html><body>
<div class="Post-Main"><div class="Post-RichText"><div class="AuthorInfo">in body</div><p>text</p></div></div>
<div class="Post-SideBar"><div class="Card"><div class="AuthorCard">author</div></div></div>
<div class="Post-Row-Content-left-article"><img src="a.png"><iframe src="v.html"></iframe><p>t</p></div>
</body></html>`

func newDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

func TestApplyQuestionPage(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, questionPage)
	report := New(nil).Apply(doc)

	if !report.QuestionPage || report.ArticlePage {
		t.Fatalf("unexpected page kind: %+v", report)
	}
	if report.TitlesReplaced != 1 {
		t.Fatalf("expected 1 title replaced, got %d", report.TitlesReplaced)
	}
	if got := doc.Find(".QuestionHeader-title").Text(); got != ReplacementTitle {
		t.Fatalf("unexpected title: %q", got)
	}
	if report.Removed != 3 {
		t.Fatalf("expected 3 removed, got %d", report.Removed)
	}
	if doc.Find(".QuestionHeader-side, .Question-sideColumn, #Popover8-toggle").Length() != 0 {
		t.Fatalf("side columns still present")
	}
	if report.Hidden != 3 {
		t.Fatalf("expected 3 hidden, got %d", report.Hidden)
	}
	if _, ok := doc.Find(".AnswerItem .AuthorInfo").Attr("style"); ok {
		t.Fatalf("answer author info must stay visible")
	}
	if got := styleProperty(doc.Find(`[data-za-module="AdCard"]`), "display"); got != hiddenDisplay {
		t.Fatalf("expected ad hidden, got %q", got)
	}

	if style, _ := doc.Find("body").Attr("style"); style != "margin: 0;" {
		t.Fatalf("unexpected body style: %q", style)
	}
	if _, ok := doc.Find(".AppHeader").Attr("style"); ok {
		t.Fatalf("expected header style removed")
	}
}

func TestApplyReplacesLogoOnce(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, questionPage)
	d := New(nil)

	first := d.Apply(doc)
	if first.LogosReplaced != 1 {
		t.Fatalf("expected 1 logo replaced, got %d", first.LogosReplaced)
	}

	logo := doc.Find("svg").First()
	if !logo.HasClass(replacedClass) {
		t.Fatalf("logo not marked")
	}
	if logo.AttrOr("width", "") != "64" || logo.AttrOr("height", "") != "30" {
		t.Fatalf("expected original size kept, got %s x %s", logo.AttrOr("width", ""), logo.AttrOr("height", ""))
	}
	if _, ok := logo.Attr("fill"); ok {
		t.Fatalf("expected fill removed")
	}
	if logo.Find("path").Length() != 3 {
		t.Fatalf("expected feishu paths, got %d", logo.Find("path").Length())
	}
	if got := doc.Find(".AppHeader-logo .feishu-text").Text(); got != brandText {
		t.Fatalf("unexpected brand text: %q", got)
	}
	if !doc.Find("body").HasClass(replacedGlobalClass) {
		t.Fatalf("expected global marker on body")
	}

	second := d.Apply(doc)
	if second.LogosReplaced != 0 {
		t.Fatalf("expected no logos on second pass, got %d", second.LogosReplaced)
	}
	if doc.Find(".feishu-text").Length() != 1 {
		t.Fatalf("brand text duplicated")
	}
}

func TestApplyArticlePage(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, articlePage)
	report := New(nil).Apply(doc)

	if !report.ArticlePage || report.QuestionPage {
		t.Fatalf("unexpected page kind: %+v", report)
	}
	if got := styleProperty(doc.Find(".Post-SideBar"), "display"); got != hiddenDisplay {
		t.Fatalf("expected sidebar hidden, got %q", got)
	}
	if _, ok := doc.Find(".Post-RichText .AuthorInfo").Attr("style"); ok {
		t.Fatalf("author info inside the post body must stay visible")
	}
	for _, selector := range []string{"img", "iframe"} {
		if got := styleProperty(doc.Find(selector), "display"); got != hiddenDisplay {
			t.Fatalf("expected %s hidden, got %q", selector, got)
		}
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, questionPage)
	New(nil).Apply(doc)

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, ReplacementTitle) || strings.Contains(out, "真实标题") {
		t.Fatalf("rendered page not disguised")
	}
	if _, err := Render(nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
}

func TestStyleHelpers(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, `<div id="a" style="color: red; BACKGROUND-COLOR: #fff;"></div>`)
	el := doc.Find("#a")

	if got := styleProperty(el, "background-color"); got != "#fff" {
		t.Fatalf("unexpected background: %q", got)
	}

	setStyleProperty(el, "color", "blue")
	setStyleProperty(el, "display", hiddenDisplay)
	removeStyleProperty(el, "background-color")

	if style, _ := el.Attr("style"); style != "color: blue; display: none !important;" {
		t.Fatalf("unexpected style: %q", style)
	}

	removeStyleProperty(el, "color")
	removeStyleProperty(el, "display")
	if _, ok := el.Attr("style"); ok {
		t.Fatalf("expected empty style attribute removed")
	}
}

func TestHideKeepsDataURIStyles(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, `<html><body><div class="Post-Row-Content-left-article">
<img src="a.png" style="background-image: url(data:image/png;base64,AAAA); color: red">
</div></body></html>`)

	report := New(nil).Apply(doc)
	if report.Hidden != 1 {
		t.Fatalf("expected one hidden image, got %+v", report)
	}

	style, _ := doc.Find("img").Attr("style")
	want := "background-image: url(data:image/png;base64,AAAA); color: red; display: none !important;"
	if style != want {
		t.Fatalf("unexpected style:\n%q\nwant\n%q", style, want)
	}
}

func TestStyleHelpersLeaveInvalidStyleAlone(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, `<div id="a" style="color: red;; background-color: pink"></div>`)
	el := doc.Find("#a")

	removeStyleProperty(el, "background-color")
	if style, _ := el.Attr("style"); style != "color: red;; background-color: pink" {
		t.Fatalf("invalid style must not be rewritten, got %q", style)
	}

	setStyleProperty(el, "display", hiddenDisplay)
	if style, _ := el.Attr("style"); !strings.HasSuffix(style, "; display: none !important;") {
		t.Fatalf("display not appended: %q", style)
	}
}

func TestApplyResolvesRelativeLogoLinks(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, `<html><body><div class="Footer">
<a href="/" class="site-logo"><svg width="20" height="20"><path d="M1 1z"></path></svg></a>
<a href="https://example.com/" class="partner-logo"><svg><path d="M2 2z"></path></svg></a>
<a class="plain-logo"><svg><path d="M3 3z"></path></svg></a>
</div></body></html>`)

	report := New(nil).Apply(doc)
	if report.LogosReplaced != 1 {
		t.Fatalf("expected 1 logo replaced, got %d", report.LogosReplaced)
	}
	if !doc.Find(".site-logo svg").HasClass(replacedClass) {
		t.Fatalf("relative link logo not replaced")
	}
	if doc.Find(".partner-logo svg").HasClass(replacedClass) || doc.Find(".plain-logo svg").HasClass(replacedClass) {
		t.Fatalf("off-site logos must stay untouched")
	}
}

func TestOnSiteLink(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"/":                        true,
		"":                         true,
		"#top":                     true,
		"question/1":               true,
		"https://www.zhihu.com/":   true,
		"//zhuanlan.zhihu.com/p/1": true,
		"https://example.com/":     false,
		"javascript:void(0)":       false,
		"//example.com/":           false,
	}
	for href, want := range cases {
		if got := onSiteLink(href); got != want {
			t.Fatalf("%q: expected %v, got %v", href, want, got)
		}
	}
}
