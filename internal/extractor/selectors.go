package extractor

// MinTextLength is the length an answer or article body must exceed.
const MinTextLength = 100

// Selectors lists, in priority order, where each field lives in the page markup.
type Selectors struct {
	Title          []string
	Description    string
	AnswerItems    string
	AnswerContent  []string
	ArticleContent []string
	// ArticleFallback is probed once after ArticleContent is exhausted.
	ArticleFallback string
	Placeholders    []string
}

// ZhihuSelectors matches zhihu.com question and article pages.
func ZhihuSelectors() Selectors {
	return Selectors{
		Title:       []string{".QuestionHeader-title", ".Post-Title", ".ArticleItem-title"},
		Description: ".QuestionRichText",
		AnswerItems: ".List-item .AnswerItem, .AnswerItem",
		AnswerContent: []string{
			".RichContent-inner",
			".RichText",
			".AnswerItem-content .RichContent",
			".ContentItem-content",
		},
		ArticleContent: []string{
			".Post-RichTextContainer .RichText",
			".ArticleItem-content .RichText",
			".Post-content .RichText",
			".RichText.ztext",
		},
		ArticleFallback: ".Post-RichTextContainer, .ArticleItem-content",
		Placeholders:    []string{"展开阅读全文", "显示全部"},
	}
}
