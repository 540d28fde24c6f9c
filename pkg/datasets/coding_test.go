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

const codingRowsJSON = `{"rows":[
	{"row":{"code":"print('hi')\n","repo_name":"octocat/tiny","path":"tiny.py","language":"Python","license":"mit","size":12}},
	{"row":{"code":"import os\nimport sys\n\ndef main():\n    print(os.getcwd())\n    print(sys.argv)\n\nif __name__ == '__main__':\n    main()\n","repo_name":"octocat/tool","path":"tool.py","language":"Python","license":"mit","size":140}}
],"num_rows_total":2}`

func newTestCodingDataset(cfg *CodingConfig, rowsURL string) *CodingDataset {
	d := NewCodingDataset(cfg)
	d.rowsURL = rowsURL
	return d
}

func TestCodingNextLineBounds(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"dataset": r.URL.Query().Get("dataset"),
			"config":  r.URL.Query().Get("config"),
			"split":   r.URL.Query().Get("split"),
		}
		w.Write([]byte(codingRowsJSON))
	}))
	defer server.Close()

	cfg := &CodingConfig{Seed: 42, Languages: []string{"Python"}, BufferSize: 100}
	d := newTestCodingDataset(cfg, server.URL)

	record, err := d.Next(context.Background(), 5, 100)
	require.NoError(t, err)

	lines := countLines(record.Code)
	assert.GreaterOrEqual(t, lines, 5)
	assert.LessOrEqual(t, lines, 100)
	assert.Equal(t, "Python", record.Language)
	assert.Equal(t, "octocat/tool", record.RepoName)
	assert.GreaterOrEqual(t, record.FetchTime, time.Duration(0))

	assert.Equal(t, "codeparrot/github-code", gotQuery["dataset"])
	assert.Equal(t, "Python-all", gotQuery["config"])
	assert.Equal(t, "train", gotQuery["split"])
}

func TestCodingDefaultsCoverAllLanguages(t *testing.T) {
	d := NewCodingDataset(nil)

	assert.Len(t, d.cfg.Languages, len(AllLanguages))
	for _, lang := range d.cfg.Languages {
		assert.Contains(t, AllLanguages, lang)
	}
	assert.Equal(t, 10000, d.cfg.BufferSize)
}

func TestCodingStreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such config", http.StatusNotFound)
	}))
	defer server.Close()

	d := newTestCodingDataset(&CodingConfig{Seed: 1, Languages: []string{"Python"}}, server.URL)

	_, err := d.Next(context.Background(), 5, 100)
	assert.Error(t, err)
}

func TestCodingContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(codingRowsJSON))
	}))
	defer server.Close()

	d := newTestCodingDataset(&CodingConfig{Seed: 1, Languages: []string{"Python"}}, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Next(ctx, 5, 100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 1, countLines("one"))
	assert.Equal(t, 1, countLines("one\n"))
	assert.Equal(t, 3, countLines("a\nb\nc"))
	assert.True(t, strings.HasSuffix("a\nb\nc\n", "\n"))
	assert.Equal(t, 3, countLines("a\nb\nc\n"))
}
