package model

import (
	"encoding/json"
	"time"
)

// Section type discriminators produced by the media feed.
const (
	TypeImage = "image"
	TypeMedia = "media"
)

// Section is one entry of an article's ordered content. The set of variants
// is closed: TextSection, ImageSection and MediaSection.
type Section interface {
	// SectionType returns the "type" discriminator of the section.
	SectionType() string
	section()
}

// TextSection is a detail-feed section with its text reduced to plain text.
// Type is whatever the detail feed reported (anything but image or media).
type TextSection struct {
	Type string
	Text string
	// TextAbsent is set when the source section had no text key. Text is
	// then left out of the encoded section.
	TextAbsent bool
	Fields     map[string]any
}

// ImageSection is an image item from the media feed, without the item's own id.
type ImageSection struct {
	Fields map[string]any
}

// MediaSection is a media item from the media feed. The feed's pub_date is
// carried as PublicationDate.
type MediaSection struct {
	PublicationDate time.Time
	Fields          map[string]any
}

func (s TextSection) SectionType() string  { return s.Type }
func (s ImageSection) SectionType() string { return TypeImage }
func (s MediaSection) SectionType() string { return TypeMedia }

func (TextSection) section()  {}
func (ImageSection) section() {}
func (MediaSection) section() {}

// flat merges passthrough fields with the variant's own keys. Variant keys win.
func flat(fields map[string]any, own map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+len(own))
	for k, v := range fields {
		out[k] = v
	}
	for k, v := range own {
		out[k] = v
	}
	return out
}

func (s TextSection) object() map[string]any {
	own := map[string]any{"type": s.Type}
	if !s.TextAbsent {
		own["text"] = s.Text
	}
	return flat(s.Fields, own)
}

func (s ImageSection) object() map[string]any {
	return flat(s.Fields, map[string]any{"type": TypeImage})
}

func (s MediaSection) object() map[string]any {
	return flat(s.Fields, map[string]any{"type": TypeMedia, "publication_date": s.PublicationDate})
}

func (s TextSection) MarshalJSON() ([]byte, error)  { return json.Marshal(s.object()) }
func (s ImageSection) MarshalJSON() ([]byte, error) { return json.Marshal(s.object()) }
func (s MediaSection) MarshalJSON() ([]byte, error) { return json.Marshal(s.object()) }

// MarshalYAML implementations convert json.Number values so numbers are not
// rendered as quoted strings.
func (s TextSection) MarshalYAML() (any, error)  { return yamlValue(s.object()), nil }
func (s ImageSection) MarshalYAML() (any, error) { return yamlValue(s.object()), nil }
func (s MediaSection) MarshalYAML() (any, error) { return yamlValue(s.object()), nil }

func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}
