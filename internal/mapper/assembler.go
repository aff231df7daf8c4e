// Package mapper turns raw article detail and media payloads into model.Article values.
// It performs no I/O: callers hand it the JSON they fetched.
package mapper

import (
	"bytes"
	"fmt"
	"log/slog"

	"article-mapper/internal/model"
)

// Options controls assembly. Date policies are per field: upstream uses ';'
// delimiters only in publish dates.
type Options struct {
	// URLFor derives the article's canonical detail URL from its id.
	URLFor func(id string) string
	// PublicationDatePolicy applies to the article pub_date and to media pub_date.
	PublicationDatePolicy DatePolicy
	// ModificationDatePolicy applies to the article mod_date.
	ModificationDatePolicy DatePolicy
	// RejectUnknownMedia fails assembly on a media item that is neither image
	// nor media instead of skipping it.
	RejectUnknownMedia bool
}

// DefaultOptions returns the policies observed upstream: lenient publish
// dates, strict modification dates, unknown media skipped.
func DefaultOptions() Options {
	return Options{
		PublicationDatePolicy:  LenientDelimiters,
		ModificationDatePolicy: StrictDelimiters,
	}
}

// Assembler builds articles. It is stateless and safe for concurrent use.
type Assembler struct {
	opts Options
}

func NewAssembler(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

// Assemble builds the article for id from its detail payload and its media
// payload. A nil or empty media payload contributes no sections; callers pass
// nil when the media fetch failed.
func (a *Assembler) Assemble(id string, detail, media []byte) (model.Article, error) {
	var zero model.Article

	var obj map[string]any
	if err := decode(detail, &obj); err != nil {
		return zero, fmt.Errorf("mapper: decode detail for %s: %w", id, err)
	}
	if obj == nil {
		return zero, &InvalidFieldError{Field: "detail", Want: "an object"}
	}

	articleID, err := idField(obj, "id", "id")
	if err != nil {
		return zero, err
	}
	language, err := stringField(obj, "original_language", "original_language")
	if err != nil {
		return zero, err
	}
	thumbnail, err := stringField(obj, "thumbnail", "thumbnail")
	if err != nil {
		return zero, err
	}
	category, err := stringField(obj, "category", "category")
	if err != nil {
		return zero, err
	}
	tags, err := stringsField(obj, "tags", "tags")
	if err != nil {
		return zero, err
	}
	author, err := stringField(obj, "author", "author")
	if err != nil {
		return zero, err
	}
	rawPub, err := stringField(obj, "pub_date", "pub_date")
	if err != nil {
		return zero, err
	}
	rawMod, err := stringField(obj, "mod_date", "mod_date")
	if err != nil {
		return zero, err
	}
	rawSections, err := arrayField(obj, "sections", "sections")
	if err != nil {
		return zero, err
	}

	published, err := ParseDate("pub_date", rawPub, a.opts.PublicationDatePolicy)
	if err != nil {
		return zero, err
	}
	modified, err := ParseDate("mod_date", rawMod, a.opts.ModificationDatePolicy)
	if err != nil {
		return zero, err
	}

	sections, err := CleanSections(rawSections)
	if err != nil {
		return zero, err
	}
	mediaSections, err := a.mediaSections(id, media)
	if err != nil {
		return zero, err
	}

	var url string
	if a.opts.URLFor != nil {
		url = a.opts.URLFor(id)
	}

	return model.Article{
		ID:               articleID,
		OriginalLanguage: language,
		URL:              url,
		Thumbnail:        thumbnail,
		Categories:       []string{category},
		Tags:             tags,
		Author:           author,
		PublicationDate:  published,
		ModificationDate: modified,
		Sections:         append(sections, mediaSections...),
	}, nil
}

func (a *Assembler) mediaSections(id string, media []byte) ([]model.Section, error) {
	if len(bytes.TrimSpace(media)) == 0 {
		return nil, nil
	}
	var items []any
	if err := decode(media, &items); err != nil {
		return nil, &InvalidFieldError{Field: "media", Want: "an array"}
	}
	res, err := NormalizeMedia(items, a.opts.PublicationDatePolicy)
	if err != nil {
		return nil, err
	}
	for _, skipped := range res.Skipped {
		if a.opts.RejectUnknownMedia {
			return nil, skipped
		}
		slog.Warn("mapper: skipped unrecognized media item", "article", id, "index", skipped.Index, "type", skipped.Type)
	}
	return res.Sections, nil
}
