package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"article-mapper/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisSink publishes each article as JSON on a pub/sub channel. Nothing is stored.
type RedisSink struct {
	rdb     *redis.Client
	channel string
}

func NewRedisSink(rdb *redis.Client, channel string) *RedisSink {
	return &RedisSink{rdb: rdb, channel: channel}
}

func (s *RedisSink) Emit(ctx context.Context, article model.Article) error {
	b, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("sink: encode article %s: %w", article.ID, err)
	}
	if err := s.rdb.Publish(ctx, s.channel, b).Err(); err != nil {
		return fmt.Errorf("sink: publish article %s to %s: %w", article.ID, s.channel, err)
	}
	return nil
}
