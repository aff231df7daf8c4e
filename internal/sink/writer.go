package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"article-mapper/internal/model"

	"gopkg.in/yaml.v3"
)

// WriterSink prints articles to an io.Writer, one JSON document per line or
// YAML documents separated by "---".
type WriterSink struct {
	mu     sync.Mutex
	w      io.Writer
	format string
	count  int
}

// NewWriter returns a sink writing format ("json" or "yaml") to w.
func NewWriter(w io.Writer, format string) (*WriterSink, error) {
	switch format {
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("sink: unsupported format %q", format)
	}
	return &WriterSink{w: w, format: format}, nil
}

func (s *WriterSink) Emit(_ context.Context, article model.Article) error {
	var (
		b   []byte
		err error
	)
	if s.format == "yaml" {
		b, err = yaml.Marshal(article)
	} else {
		b, err = json.Marshal(article)
		b = append(b, '\n')
	}
	if err != nil {
		return fmt.Errorf("sink: encode article %s: %w", article.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.format == "yaml" && s.count > 0 {
		if _, err := io.WriteString(s.w, "---\n"); err != nil {
			return err
		}
	}
	if _, err := s.w.Write(b); err != nil {
		return fmt.Errorf("sink: write article %s: %w", article.ID, err)
	}
	s.count++
	return nil
}
