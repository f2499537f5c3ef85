package domain

import "strings"

// LineKind drives panel styling of a single display line.
type LineKind string

const (
	LineTitle        LineKind = "title"
	LineAnswerHeader LineKind = "answer-header"
	LineSection      LineKind = "section"
	LineBody         LineKind = "body"
	LineBlank        LineKind = "blank"
)

// PanelLine is one rendered row of the side panel.
type PanelLine struct {
	Index int      `json:"index"`
	Kind  LineKind `json:"kind"`
	Text  string   `json:"text"`
}

// Lines splits the export into classified panel rows.
func (r ExtractionResult) Lines() []PanelLine {
	if r.Export == "" {
		return nil
	}

	raw := strings.Split(r.Export, "\n")
	lines := make([]PanelLine, 0, len(raw))
	for i, text := range raw {
		lines = append(lines, PanelLine{Index: i, Kind: classifyLine(text), Text: text})
	}
	return lines
}

func classifyLine(text string) LineKind {
	switch {
	case text == "":
		return LineBlank
	case strings.HasPrefix(text, TitlePrefix):
		return LineTitle
	case strings.HasPrefix(text, "--- 回答"):
		return LineAnswerHeader
	case strings.HasPrefix(text, DescriptionHeading),
		strings.HasPrefix(text, ArticleHeading),
		strings.HasPrefix(text, AnswersHeading):
		return LineSection
	default:
		return LineBody
	}
}
