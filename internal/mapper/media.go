package mapper

import (
	"fmt"

	"article-mapper/internal/model"
)

// MediaResult is the outcome of normalizing one article's media feed.
// Skipped lists items whose type is neither image nor media; they are not
// part of Sections.
type MediaResult struct {
	Sections []model.Section
	Skipped  []*UnrecognizedSectionTypeError
}

// NormalizeMedia maps media-feed items into sections. Image items lose their
// own id. Media items have pub_date parsed with policy and carried as
// publication_date.
func NormalizeMedia(items []any, policy DatePolicy) (MediaResult, error) {
	res := MediaResult{Sections: make([]model.Section, 0, len(items))}
	for i, raw := range items {
		path := fmt.Sprintf("media[%d]", i)
		obj, ok := raw.(map[string]any)
		if !ok {
			return MediaResult{}, &InvalidFieldError{Field: path, Want: "an object"}
		}
		typ, err := stringField(obj, "type", path+".type")
		if err != nil {
			return MediaResult{}, err
		}
		switch typ {
		case model.TypeImage:
			res.Sections = append(res.Sections, model.ImageSection{
				Fields: without(obj, "type", "id"),
			})
		case model.TypeMedia:
			field := path + ".pub_date"
			rawDate, err := stringField(obj, "pub_date", field)
			if err != nil {
				return MediaResult{}, err
			}
			published, err := ParseDate(field, rawDate, policy)
			if err != nil {
				return MediaResult{}, err
			}
			res.Sections = append(res.Sections, model.MediaSection{
				PublicationDate: published,
				Fields:          without(obj, "type", "pub_date", "publication_date"),
			})
		default:
			res.Skipped = append(res.Skipped, &UnrecognizedSectionTypeError{Index: i, Type: typ})
		}
	}
	return res, nil
}
