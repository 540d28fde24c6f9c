package datasets

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Caia-Tech/caia-datasets/internal/webclient"
	"github.com/Caia-Tech/caia-datasets/pkg/logging"
)

const (
	defaultCodingDatasetID = "codeparrot/github-code"
	defaultRowsAPIURL      = "https://datasets-server.huggingface.co/rows"
	codingPageSize         = 100
)

// AllLanguages maps corpus language names to their file extensions.
var AllLanguages = map[string][]string{
	"C++":        {".cpp", ".hpp", ".c++", ".h++", ".cc", ".hh", ".C", ".H"},
	"CSS":        {".css"},
	"Dockerfile": {".dockerfile", "Dockerfile"},
	"HTML":       {".html"},
	"Java":       {".java"},
	"JavaScript": {".js"},
	"Python":     {".py"},
	"SQL":        {".sql"},
	"Shell":      {".sh", ".bash", ".command", ".zsh"},
}

// CodingConfig holds CodingDataset stream settings.
type CodingConfig struct {
	DatasetID  string   `json:"dataset_id"`
	Seed       int64    `json:"seed"`      // 0 seeds from the clock
	Languages  []string `json:"languages"` // nil means all of AllLanguages
	BufferSize int      `json:"buffer_size"`
}

// DefaultCodingConfig returns the standard stream settings.
func DefaultCodingConfig() *CodingConfig {
	return &CodingConfig{
		DatasetID:  defaultCodingDatasetID,
		BufferSize: 10000,
	}
}

// CodeRecord is the context record returned by CodingDataset.
type CodeRecord struct {
	Code      string        `json:"code"`
	RepoName  string        `json:"repo_name"`
	Path      string        `json:"path"`
	Language  string        `json:"language"`
	License   string        `json:"license"`
	Size      int           `json:"size"`
	FetchTime time.Duration `json:"fetch_time"`
}

type rowsResponse struct {
	Rows []struct {
		Row CodeRecord `json:"row"`
	} `json:"rows"`
	NumRowsTotal int64 `json:"num_rows_total"`
}

// CodingDataset streams snippets from a remote code corpus through an
// in-memory shuffle buffer, refilled with pages fetched at random offsets.
type CodingDataset struct {
	cfg     *CodingConfig
	rowsURL string
	client  *webclient.Client
	rng     *rand.Rand
	log     zerolog.Logger

	buffer []CodeRecord
	totals map[string]int64 // rows per language subset, learned lazily
}

// NewCodingDataset creates a CodingDataset. A nil cfg uses defaults.
func NewCodingDataset(cfg *CodingConfig) *CodingDataset {
	if cfg == nil {
		cfg = DefaultCodingConfig()
	}
	if cfg.DatasetID == "" {
		cfg.DatasetID = defaultCodingDatasetID
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 10000
	}
	if len(cfg.Languages) == 0 {
		for lang := range AllLanguages {
			cfg.Languages = append(cfg.Languages, lang)
		}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &CodingDataset{
		cfg:     cfg,
		rowsURL: defaultRowsAPIURL,
		client:  webclient.New(),
		rng:     rand.New(rand.NewSource(seed)),
		log:     logging.GetDatasetLogger("coding"),
		totals:  make(map[string]int64),
	}
}

// refill fetches one page of rows for a random configured language at a
// random offset and shuffles it into the buffer.
func (d *CodingDataset) refill(ctx context.Context) error {
	language := d.cfg.Languages[d.rng.Intn(len(d.cfg.Languages))]
	config := language + "-all"

	var offset int64
	if total := d.totals[language]; total > codingPageSize {
		offset = d.rng.Int63n(total - codingPageSize)
	}

	params := url.Values{
		"dataset": {d.cfg.DatasetID},
		"config":  {config},
		"split":   {"train"},
		"offset":  {fmt.Sprintf("%d", offset)},
		"length":  {fmt.Sprintf("%d", codingPageSize)},
	}

	var resp rowsResponse
	if err := d.client.GetJSON(ctx, d.rowsURL, params, &resp); err != nil {
		return fmt.Errorf("failed to stream %s rows: %w", d.cfg.DatasetID, err)
	}
	d.totals[language] = resp.NumRowsTotal

	for _, row := range resp.Rows {
		d.buffer = append(d.buffer, row.Row)
	}
	d.rng.Shuffle(len(d.buffer), func(i, j int) {
		d.buffer[i], d.buffer[j] = d.buffer[j], d.buffer[i]
	})
	if len(d.buffer) > d.cfg.BufferSize {
		d.buffer = d.buffer[:d.cfg.BufferSize]
	}

	d.log.Debug().
		Str("language", language).
		Int64("offset", offset).
		Int("buffered", len(d.buffer)).
		Msg("Refilled code buffer")
	return nil
}

// Next pulls snippets from the stream until one's line count falls within
// [minLines, maxLines]. The filter loop is unbounded apart from context
// cancellation, so a range no snippet satisfies blocks indefinitely.
func (d *CodingDataset) Next(ctx context.Context, minLines, maxLines int) (*CodeRecord, error) {
	d.log.Debug().Msg("Retrieving code snippet")
	t0 := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if len(d.buffer) == 0 {
			if err := d.refill(ctx); err != nil {
				return nil, err
			}
			if len(d.buffer) == 0 {
				return nil, fmt.Errorf("dataset %s returned no rows", d.cfg.DatasetID)
			}
		}

		record := d.buffer[len(d.buffer)-1]
		d.buffer = d.buffer[:len(d.buffer)-1]

		lines := countLines(record.Code)
		if minLines <= lines && lines <= maxLines {
			record.FetchTime = time.Since(t0)
			return &record, nil
		}
	}
}

// countLines counts lines the way splitlines does: a trailing newline does
// not start an empty final line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Count(s, "\n") + 1
}
