package disguise

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	authorCardSelectors = []string{
		".Card-section .AuthorCard",
		".AuthorCard-user",
		".AuthorInfo",
		".ContentItem .AuthorInfo",
		".AnswerItem .AuthorInfo",
	}

	articlePageSelectors = []string{
		".Post-SideBar",
		".Post-SideBar .Card",
		".Post-SideBar .AuthorCard",
		".Post-SideBar .Card-section",
		".ArticleItem .AuthorInfo",
		".Post-Main .AuthorCard",
		".ContentItem-meta .AuthorInfo",
		".Sticky .Card",
		".Question-sideColumn .Card",
		".Question-sideColumn",
		".Card.AuthorCard",
		`[class*="AuthorCard"]`,
		`[class*="SideBar"] .Card`,
		".Post-Main + div",
		".css-1qyytj7",
	}

	adSelectors = []string{
		`.Card[data-za-module="AdCard"]`,
		".AdblockBanner",
		".Pc-word",
		".Card.PromotionCard",
		".Card.RecommendationCard",
		".KfeCollection",
		".MCNLinkCard",
	}
)

const (
	answerScope      = ".List-item, .AnswerItem, .Answer, .AnswerCard"
	articleMainScope = ".Post-RichText, .Post-content, .RichText, .Article-content"
	cardSectionScope = ".List-item, .AnswerItem, .Answer, .Post-RichText, .Post-content"
	postBodyScope    = ".Post-RichText, .Post-content"
	authorMarkers    = ".AuthorCard, .UserLink, .Avatar"
	aboutAuthor      = "关于作者"
)

func (p *pass) hideAuthorCards() {
	p.report.QuestionPage = p.doc.Find(".QuestionPage, .Question-main").Length() > 0
	p.report.ArticlePage = p.doc.Find(".Post-Main, .Post-content, .Article-content").Length() > 0

	selectors := append([]string{}, authorCardSelectors...)
	if p.report.ArticlePage {
		selectors = append(selectors, articlePageSelectors...)
	}
	selectors = append(selectors, adSelectors...)

	for _, selector := range selectors {
		p.doc.Find(selector).Each(func(_ int, el *goquery.Selection) {
			if p.report.QuestionPage {
				if !within(el, answerScope) {
					p.hide(el)
				}
				return
			}
			if !within(el, articleMainScope) {
				p.hide(el)
			}
		})
	}

	p.doc.Find(".Card-section").Each(func(_ int, section *goquery.Selection) {
		if section.Find(".AuthorCard").Length() > 0 && !within(section, cardSectionScope) {
			p.hide(section)
		}
	})

	if p.report.ArticlePage {
		p.hideArticleSidebar()
	}
}

// hideArticleSidebar sweeps article pages for author panels that escape the
// fixed selector lists.
func (p *pass) hideArticleSidebar() {
	p.hide(p.doc.Find(".Post-SideBar, .Question-sideColumn"))

	p.doc.Find(`[class*="right"], [class*="side"], [class*="aside"]`).Each(func(_ int, column *goquery.Selection) {
		if strings.Contains(column.Text(), "作者") || column.Find(authorMarkers).Length() > 0 {
			p.hide(column)
		}
	})

	p.doc.Find(`[class*="layout"], [class*="container"]`).Each(func(_ int, container *goquery.Selection) {
		children := container.Children()
		if children.Length() < 2 {
			return
		}
		last := children.Last()
		if strings.Contains(last.Text(), aboutAuthor) || last.Find(".AuthorCard, .UserLink").Length() > 0 {
			p.hide(last)
		}
	})

	p.doc.Find("*").Each(func(_ int, el *goquery.Selection) {
		if !strings.Contains(el.Text(), aboutAuthor) {
			return
		}
		card := el.Closest(`.Card, div[class*="card"], div[class*="Card"]`)
		if card.Length() > 0 && !within(card, postBodyScope) {
			p.hide(card)
		}
	})

	p.doc.Find(`[style*="position"], [class*="sticky"], [class*="fixed"]`).Each(func(_ int, el *goquery.Selection) {
		if el.Find(authorMarkers).Length() > 0 || strings.Contains(el.Text(), "关注") {
			p.hide(el)
		}
	})
}
