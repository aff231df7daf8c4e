// Package sink delivers assembled articles.
package sink

import (
	"context"
	"errors"

	"article-mapper/internal/model"
)

// Sink receives every successfully assembled article.
type Sink interface {
	Emit(ctx context.Context, article model.Article) error
}

// Multi fans an article out to every sink. All sinks are tried; their errors are joined.
type Multi []Sink

func (m Multi) Emit(ctx context.Context, article model.Article) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(ctx, article); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
