package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"article-mapper/internal/mapper"
	"article-mapper/internal/model"
)

// Source supplies raw payloads for the article list and for each article.
type Source interface {
	List(ctx context.Context) (json.RawMessage, error)
	Detail(ctx context.Context, id string) (json.RawMessage, error)
	Media(ctx context.Context, id string) (json.RawMessage, error)
}

// Result is the outcome for one article id: either Article or Err is set.
type Result struct {
	ID      string
	Article model.Article
	Err     error
}

// ProcessCycle fetches and assembles every id. A failing article only fails
// its own Result. A failed media fetch is logged and the article is built
// without media. Results are returned in ids order; at most concurrency
// articles are in flight at once.
func ProcessCycle(ctx context.Context, src Source, asm *mapper.Assembler, ids []string, concurrency int) []Result {
	out := make([]Result, len(ids))
	if len(ids) == 0 {
		return out
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency == 1 {
		for i, id := range ids {
			out[i] = processOne(ctx, src, asm, id)
		}
		return out
	}

	// bounded concurrency
	type indexed struct {
		idx int
		res Result
	}
	sem := make(chan struct{}, concurrency)
	done := make(chan indexed, len(ids))
	for i, id := range ids {
		i, id := i, id
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			done <- indexed{idx: i, res: processOne(ctx, src, asm, id)}
		}()
	}
	for range ids {
		r := <-done
		out[r.idx] = r.res
	}
	return out
}

func processOne(ctx context.Context, src Source, asm *mapper.Assembler, id string) Result {
	detail, err := src.Detail(ctx, id)
	if err != nil {
		return Result{ID: id, Err: fmt.Errorf("fetch detail: %w", err)}
	}
	media, err := src.Media(ctx, id)
	if err != nil {
		slog.Warn("collector: media fetch failed, assembling without media", "id", id, "error", err)
		media = nil
	}
	article, err := asm.Assemble(id, detail, media)
	if err != nil {
		return Result{ID: id, Err: fmt.Errorf("assemble: %w", err)}
	}
	return Result{ID: id, Article: article}
}
