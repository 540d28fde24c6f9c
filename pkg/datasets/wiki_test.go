package datasets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wikiRandomJSON = `{"query":{"pages":{
	"100":{"title":"Stub","fullurl":"https://en.wikipedia.org/wiki/Stub","length":120,"linkshere":[{"pageid":1}],"categories":[{"title":"Category:Stubs"}],"extract":"Too short."},
	"200":{"title":"Go (programming language)","fullurl":"https://en.wikipedia.org/wiki/Go_(programming_language)","length":5000,"linkshere":[{"pageid":1},{"pageid":2},{"pageid":3}],"categories":[{"title":"Category:Programming languages"},{"title":"Category:Articles with short description"}],"extract":"Go is a statically typed language."}
}}}`

const wikiContentJSON = `{"query":{"pages":{"200":{"title":"Go (programming language)","extract":"Go is a statically typed compiled language designed at Google.\n== History ==\nGo was publicly announced in November 2009 and released in March 2012.\n== Design ==\nGo is syntactically similar to C with memory safety and garbage collection."}}}}`

func newWikiTestServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("generator") == "random" {
			w.Write([]byte(wikiRandomJSON))
			return
		}
		w.Write([]byte(wikiContentJSON))
	}))
}

func newTestWikiDataset(cfg *WikiConfig, apiURL string) *WikiDataset {
	d := NewWikiDataset(cfg)
	d.apiURL = apiURL
	return d
}

func TestWikiRandomArticleFiltering(t *testing.T) {
	server := newWikiTestServer()
	defer server.Close()

	d := newTestWikiDataset(nil, server.URL)
	article, err := d.RandomArticle(context.Background())
	require.NoError(t, err)

	// the short stub page does not meet the byte threshold
	assert.Equal(t, "Go (programming language)", article.Title)
	assert.Equal(t, 5000, article.Length)
	assert.Equal(t, 3, article.Backlinks)
	assert.NotEmpty(t, article.Extract)

	// "Category:" is trimmed and article-maintenance categories are dropped
	assert.Equal(t, []string{"Programming languages"}, article.Categories)
}

func TestWikiRandomArticleExhaustsRetries(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"batchcomplete":""}`)) // no query block
	}))
	defer server.Close()

	cfg := DefaultWikiConfig()
	cfg.MaxTries = 3
	d := newTestWikiDataset(cfg, server.URL)

	_, err := d.RandomArticle(context.Background())
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 3, requests)
}

func TestWikiArticleContentSections(t *testing.T) {
	server := newWikiTestServer()
	defer server.Close()

	d := newTestWikiDataset(nil, server.URL)
	sections, err := d.ArticleContent(context.Background(), "Go (programming language)")
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, "", sections[0].Name)
	assert.Contains(t, sections[0].Content, "designed at Google")
	assert.Equal(t, "History", sections[1].Name)
	assert.Contains(t, sections[1].Content, "November 2009")
	assert.Equal(t, "Design", sections[2].Name)
	assert.Contains(t, sections[2].Content, "memory safety")
}

func TestWikiNextMeetsWordCount(t *testing.T) {
	server := newWikiTestServer()
	defer server.Close()

	cfg := &WikiConfig{MinLengthWords: 10, MinLengthBytes: 1000, MaxTries: 3, MinBacklinks: 1}
	d := newTestWikiDataset(cfg, server.URL)

	article, err := d.Next(context.Background(), nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(strings.Fields(article.Text)), cfg.MinLengthWords)
	assert.GreaterOrEqual(t, article.FetchTime, time.Duration(0))
	assert.NotEmpty(t, article.Sections)
}

func TestWikiNextWordCountExhaustion(t *testing.T) {
	server := newWikiTestServer()
	defer server.Close()

	cfg := &WikiConfig{MinLengthWords: 100000, MinLengthBytes: 1000, MaxTries: 2, MinBacklinks: 1}
	d := newTestWikiDataset(cfg, server.URL)

	_, err := d.Next(context.Background(), nil)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
}

func TestWikiNextSubsetSection(t *testing.T) {
	server := newWikiTestServer()
	defer server.Close()

	cfg := &WikiConfig{MinLengthWords: 10, MinLengthBytes: 1000, MaxTries: 3, MinBacklinks: 1}
	d := newTestWikiDataset(cfg, server.URL)

	article, err := d.Next(context.Background(), &WikiNextOptions{Subset: "History"})
	require.NoError(t, err)

	assert.Contains(t, article.Text, "November 2009")
	assert.NotContains(t, article.Text, "memory safety")
}

func TestWikiNextSubsetChunks(t *testing.T) {
	server := newWikiTestServer()
	defer server.Close()

	cfg := &WikiConfig{MinLengthWords: 10, MinLengthBytes: 1000, MaxTries: 3, MinBacklinks: 1}
	d := newTestWikiDataset(cfg, server.URL)

	article, err := d.Next(context.Background(), &WikiNextOptions{Subset: "no-such-section", NChunks: 1})
	require.NoError(t, err)

	assert.NotEmpty(t, article.Text)
	// a single chunk is one line of the joined section text
	assert.NotContains(t, article.Text, "\n")
}
