package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"article-mapper/internal/mapper"
	"article-mapper/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("unavailable")

// fakeSource serves canned payloads; a missing entry is a fetch failure.
type fakeSource struct {
	list    string
	listErr error
	details map[string]string
	media   map[string]string
	delay   func(id string) time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeSource) List(context.Context) (json.RawMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return json.RawMessage(f.list), nil
}

func (f *fakeSource) Detail(_ context.Context, id string) (json.RawMessage, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	if f.delay != nil {
		time.Sleep(f.delay(id))
	}
	d, ok := f.details[id]
	if !ok {
		return nil, errUnavailable
	}
	return json.RawMessage(d), nil
}

func (f *fakeSource) Media(_ context.Context, id string) (json.RawMessage, error) {
	m, ok := f.media[id]
	if !ok {
		return nil, errUnavailable
	}
	return json.RawMessage(m), nil
}

type recordingSink struct {
	mu       sync.Mutex
	articles []model.Article
	fail     map[string]bool
}

func (s *recordingSink) Emit(_ context.Context, a model.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[a.ID] {
		return errors.New("sink down")
	}
	s.articles = append(s.articles, a)
	return nil
}

func (s *recordingSink) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, a := range s.articles {
		out = append(out, a.ID)
	}
	return out
}

func detailJSON(id string) string {
	return fmt.Sprintf(`{"id":%q,"original_language":"en","thumbnail":"t.jpg","category":"news","tags":["a"],"author":"J","pub_date":"2023-01-01-10:00:00","mod_date":"2023-01-01-11:00:00","sections":[{"type":"text","text":"<p>Hi</p>"}]}`, id)
}

func testAssembler() *mapper.Assembler {
	opts := mapper.DefaultOptions()
	opts.URLFor = func(id string) string { return "https://feed.example/articles/" + id + ".json" }
	return mapper.NewAssembler(opts)
}

func TestRunOnce_EndToEnd(t *testing.T) {
	src := &fakeSource{
		list:    `[{"id":"7"}]`,
		details: map[string]string{"7": detailJSON("7")},
		media: map[string]string{
			"7": `[{"id":"1","type":"image","url":"i.jpg"},{"type":"media","pub_date":"2023-01-01-09;00;00","url":"v.mp4"}]`,
		},
	}
	out := &recordingSink{}
	c := &ArticleCollector{Source: src, Assembler: testAssembler(), Sink: out, Concurrency: 1}

	stats, err := c.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleStats{IDs: 1, Emitted: 1}, stats)

	require.Len(t, out.articles, 1)
	a := out.articles[0]
	assert.Equal(t, []string{"news"}, a.Categories)
	assert.Equal(t, "https://feed.example/articles/7.json", a.URL)
	assert.Equal(t, []model.Section{
		model.TextSection{Type: "text", Text: "Hi"},
		model.ImageSection{Fields: map[string]any{"url": "i.jpg"}},
		model.MediaSection{
			PublicationDate: time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC),
			Fields:          map[string]any{"url": "v.mp4"},
		},
	}, a.Sections)
}

func TestRunOnce_ListFailureAbortsCycle(t *testing.T) {
	out := &recordingSink{}
	c := &ArticleCollector{Source: &fakeSource{listErr: errUnavailable}, Assembler: testAssembler(), Sink: out}

	stats, err := c.RunOnce(context.Background())
	assert.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, CycleStats{}, stats)
	assert.Empty(t, out.articles)

	c.Source = &fakeSource{list: `{"not":"a list"}`}
	_, err = c.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestRunOnce_ArticleFailuresDoNotStopTheCycle(t *testing.T) {
	broken := `{"id":"2","original_language":"en","thumbnail":"t.jpg","tags":[],"author":"J","pub_date":"2023-01-01-10:00:00","mod_date":"2023-01-01-11:00:00","sections":[]}`
	badDate := `{"id":"4","original_language":"en","thumbnail":"t.jpg","category":"c","tags":[],"author":"J","pub_date":"2023-01-01-10:00:00","mod_date":"2023-01-01-11;00;00","sections":[]}`
	src := &fakeSource{
		list: `[{"id":"1"},{"id":"2"},{"id":"3"},{"id":"4"},{"id":"5"}]`,
		details: map[string]string{
			"1": detailJSON("1"),
			"2": broken,
			// "3" fails to fetch
			"4": badDate,
			"5": detailJSON("5"),
		},
		media: map[string]string{"1": `[]`, "5": `[]`},
	}
	out := &recordingSink{}
	c := &ArticleCollector{Source: src, Assembler: testAssembler(), Sink: out, Concurrency: 1}

	stats, err := c.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CycleStats{IDs: 5, Emitted: 2, Failed: 3}, stats)
	assert.Equal(t, []string{"1", "5"}, out.ids())
}

func TestRunIDs_SinkErrorsAreCounted(t *testing.T) {
	src := &fakeSource{details: map[string]string{"1": detailJSON("1"), "2": detailJSON("2")}}
	out := &recordingSink{fail: map[string]bool{"1": true}}
	c := &ArticleCollector{Source: src, Assembler: testAssembler(), Sink: out}

	stats := c.RunIDs(context.Background(), []string{"1", "2"})
	assert.Equal(t, CycleStats{IDs: 2, Emitted: 1, SinkErrors: 1}, stats)
	assert.Equal(t, []string{"2"}, out.ids())
}

func TestProcessCycle_MediaFailureKeepsTextSections(t *testing.T) {
	src := &fakeSource{details: map[string]string{"7": detailJSON("7")}}

	results := ProcessCycle(context.Background(), src, testAssembler(), []string{"7"}, 1)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, []model.Section{model.TextSection{Type: "text", Text: "Hi"}}, results[0].Article.Sections)
}

func TestProcessCycle_ConcurrentKeepsListOrder(t *testing.T) {
	ids := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	details := map[string]string{}
	for _, id := range ids {
		details[id] = detailJSON(id)
	}
	src := &fakeSource{
		details: details,
		// earlier ids finish last
		delay: func(id string) time.Duration {
			return time.Duration(9-int(id[0]-'0')) * 5 * time.Millisecond
		},
	}

	results := ProcessCycle(context.Background(), src, testAssembler(), ids, 3)
	require.Len(t, results, len(ids))
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, ids[i], r.ID)
		assert.Equal(t, ids[i], r.Article.ID)
	}
	assert.LessOrEqual(t, src.maxInFlight.Load(), int32(3))
}

func TestProcessCycle_SequentialByDefault(t *testing.T) {
	src := &fakeSource{
		details: map[string]string{"1": detailJSON("1"), "2": detailJSON("2")},
		delay:   func(string) time.Duration { return 5 * time.Millisecond },
	}
	results := ProcessCycle(context.Background(), src, testAssembler(), []string{"1", "2"}, 0)
	require.Len(t, results, 2)
	assert.Equal(t, int32(1), src.maxInFlight.Load())
}

func TestStart_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	src := &fakeSource{list: `[{"id":"1"}]`, details: map[string]string{"1": detailJSON("1")}}
	out := &recordingSink{}
	c := &ArticleCollector{Source: src, Assembler: testAssembler(), Sink: out, Interval: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	require.Eventually(t, func() bool { return len(out.ids()) == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("collector did not stop")
	}
}
