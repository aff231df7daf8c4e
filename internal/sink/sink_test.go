package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"article-mapper/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleArticle(id string) model.Article {
	return model.Article{
		ID:               id,
		OriginalLanguage: "en",
		URL:              "https://feed.example/articles/" + id + ".json",
		Thumbnail:        "t.jpg",
		Categories:       []string{"news"},
		Tags:             []string{"a"},
		Author:           "J",
		PublicationDate:  time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC),
		ModificationDate: time.Date(2023, 1, 1, 11, 0, 0, 0, time.UTC),
		Sections: []model.Section{
			model.TextSection{Type: "text", Text: "Hi"},
			model.ImageSection{Fields: map[string]any{"url": "i.jpg", "width": json.Number("640")}},
			model.MediaSection{
				PublicationDate: time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC),
				Fields:          map[string]any{"url": "v.mp4"},
			},
		},
	}
}

func TestWriterSink_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewWriter(&buf, "json")
	require.NoError(t, err)

	require.NoError(t, s.Emit(context.Background(), sampleArticle("7")))
	require.NoError(t, s.Emit(context.Background(), sampleArticle("8")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{
		"id":"7","original_language":"en","url":"https://feed.example/articles/7.json",
		"thumbnail":"t.jpg","categories":["news"],"tags":["a"],"author":"J",
		"publication_date":"2023-01-01T10:00:00Z","modification_date":"2023-01-01T11:00:00Z",
		"sections":[
			{"type":"text","text":"Hi"},
			{"type":"image","url":"i.jpg","width":640},
			{"type":"media","publication_date":"2023-01-01T09:00:00Z","url":"v.mp4"}
		]
	}`, lines[0])
}

func TestWriterSink_YAMLDocuments(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewWriter(&buf, "yaml")
	require.NoError(t, err)

	require.NoError(t, s.Emit(context.Background(), sampleArticle("7")))
	require.NoError(t, s.Emit(context.Background(), sampleArticle("8")))

	dec := yaml.NewDecoder(&buf)
	var ids []string
	for {
		var doc map[string]any
		if err := dec.Decode(&doc); err != nil {
			break
		}
		ids = append(ids, doc["id"].(string))
		sections := doc["sections"].([]any)
		require.Len(t, sections, 3)
		image := sections[1].(map[string]any)
		assert.Equal(t, "image", image["type"])
		assert.Equal(t, 640, image["width"])
	}
	assert.Equal(t, []string{"7", "8"}, ids)
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, "xml")
	assert.Error(t, err)
}

func TestRedisSink_Publishes(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := rdb.Subscribe(ctx, "articles")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, NewRedisSink(rdb, "articles").Emit(ctx, sampleArticle("7")))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, "7", got["id"])
	assert.Empty(t, mr.Keys())
}

func TestRedisSink_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	err := NewRedisSink(rdb, "articles").Emit(context.Background(), sampleArticle("7"))
	assert.Error(t, err)
}

type failingSink struct{ err error }

func (f failingSink) Emit(context.Context, model.Article) error { return f.err }

func TestMulti_TriesEverySink(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "json")
	require.NoError(t, err)
	boom := errors.New("boom")

	err = Multi{failingSink{err: boom}, w}.Emit(context.Background(), sampleArticle("7"))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), `"id":"7"`)
}
