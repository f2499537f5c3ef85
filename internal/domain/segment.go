package domain

import (
	"fmt"
	"strings"
)

// Label classifies a Segment.
type Label string

const (
	LabelTitle               Label = "title"
	LabelQuestionDescription Label = "question-description"
	LabelAnswerHeader        Label = "answer-header"
	LabelAnswerBody          Label = "answer-body"
	LabelArticleBody         Label = "article-body"
)

// Display prefixes embedded in the flattened export.
const (
	TitlePrefix          = "标题："
	DescriptionHeading   = "问题描述："
	AnswersHeading       = "回答内容："
	ArticleHeading       = "文章内容："
	answerHeaderTemplate = "--- 回答 %d ---"
)

// Segment is one labeled unit of extracted text.
type Segment struct {
	Label Label  `json:"label"`
	Text  string `json:"text"`
}

// AnswerHeader builds the header segment for the n-th accepted answer (1-based).
func AnswerHeader(n int) Segment {
	return Segment{Label: LabelAnswerHeader, Text: fmt.Sprintf(answerHeaderTemplate, n)}
}

// ExtractionResult is the value produced by a single extraction.
type ExtractionResult struct {
	Segments []Segment `json:"segments"`
	Export   string    `json:"export"`
	// AnswerItems counts answer containers found, accepted or not.
	AnswerItems int `json:"answer_items"`
	// AnswerCount counts accepted answer bodies.
	AnswerCount int `json:"answer_count"`
}

// NewExtractionResult flattens segments into the export string.
func NewExtractionResult(segments []Segment, answerItems int) ExtractionResult {
	count := 0
	for _, s := range segments {
		if s.Label == LabelAnswerBody {
			count++
		}
	}
	return ExtractionResult{
		Segments:    segments,
		Export:      Flatten(segments),
		AnswerItems: answerItems,
		AnswerCount: count,
	}
}

// Empty reports whether nothing was extracted.
func (r ExtractionResult) Empty() bool {
	return len(r.Segments) == 0
}

// Flatten joins segments into the clipboard form. Blocks are separated by a
// blank line; an answer header and its body share one block.
func Flatten(segments []Segment) string {
	blocks := make([]string, 0, len(segments))
	answersOpened := false

	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		switch seg.Label {
		case LabelTitle:
			blocks = append(blocks, TitlePrefix+seg.Text)
		case LabelQuestionDescription:
			blocks = append(blocks, DescriptionHeading+"\n"+seg.Text)
		case LabelArticleBody:
			blocks = append(blocks, ArticleHeading+"\n"+seg.Text)
		case LabelAnswerHeader:
			block := seg.Text
			if i+1 < len(segments) && segments[i+1].Label == LabelAnswerBody {
				block += "\n" + segments[i+1].Text
				i++
			}
			if !answersOpened {
				block = AnswersHeading + "\n" + block
				answersOpened = true
			}
			blocks = append(blocks, block)
		case LabelAnswerBody:
			blocks = append(blocks, seg.Text)
		}
	}

	return strings.Join(blocks, "\n\n")
}
