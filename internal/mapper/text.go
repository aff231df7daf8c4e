package mapper

import (
	"fmt"
	"strings"

	"article-mapper/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// PlainText renders an HTML fragment as plain text: tags removed, entities
// decoded, whitespace runs collapsed to a single space.
func PlainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseSpace(s)
	}
	doc.Find("script, style").Remove()
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanSections keeps the detail-feed sections that are not image or media
// (those come from the media feed) and reduces their text to plain text.
// Every other field passes through. Order is preserved.
func CleanSections(sections []any) ([]model.Section, error) {
	out := make([]model.Section, 0, len(sections))
	for i, raw := range sections {
		path := fmt.Sprintf("sections[%d]", i)
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, &InvalidFieldError{Field: path, Want: "an object"}
		}
		typ, err := stringField(obj, "type", path+".type")
		if err != nil {
			return nil, err
		}
		if typ == model.TypeImage || typ == model.TypeMedia {
			continue
		}
		var text string
		rawText, present := obj["text"]
		switch v := rawText.(type) {
		case nil:
		case string:
			text = PlainText(v)
		default:
			return nil, &InvalidFieldError{Field: path + ".text", Want: "a string"}
		}
		out = append(out, model.TextSection{
			Type:       typ,
			Text:       text,
			TextAbsent: !present,
			Fields:     without(obj, "type", "text"),
		})
	}
	return out, nil
}
