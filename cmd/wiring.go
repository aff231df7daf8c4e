package cmd

import (
	"os"

	"article-mapper/internal/config"
	"article-mapper/internal/feed"
	"article-mapper/internal/mapper"
	"article-mapper/internal/redisclient"
	"article-mapper/internal/sink"
)

// newAssembler builds the assembler from the mapping policies, deriving
// article URLs from the feed's detail endpoint.
func newAssembler(cfg config.Config, client *feed.Client) *mapper.Assembler {
	opts := mapper.DefaultOptions()
	opts.URLFor = client.DetailURL
	if cfg.Mapping.LenientModificationDate {
		opts.ModificationDatePolicy = mapper.LenientDelimiters
	}
	opts.RejectUnknownMedia = cfg.Mapping.RejectUnknownMedia
	return mapper.NewAssembler(opts)
}

// newSink builds the configured sinks. The returned close func releases any
// connections and is never nil.
func newSink(cfg config.Config) (sink.Sink, func() error, error) {
	var (
		sinks  sink.Multi
		closer = func() error { return nil }
	)
	if cfg.Sink.HasSink("stdout") {
		w, err := sink.NewWriter(os.Stdout, cfg.Sink.Format)
		if err != nil {
			return nil, closer, err
		}
		sinks = append(sinks, w)
	}
	if cfg.Sink.HasSink("redis") {
		rdb := redisclient.New(cfg.Redis)
		closer = rdb.Close
		sinks = append(sinks, sink.NewRedisSink(rdb, cfg.Sink.RedisChannel))
	}
	if len(sinks) == 1 {
		return sinks[0], closer, nil
	}
	return sinks, closer, nil
}
