package datasets

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/Caia-Tech/caia-datasets/internal/webclient"
	"github.com/Caia-Tech/caia-datasets/pkg/logging"
)

const defaultWikiAPIURL = "https://en.wikipedia.org/w/api.php"

// WikiConfig holds WikiDataset thresholds and retry policy
type WikiConfig struct {
	MinLengthWords int `json:"min_length_words"` // minimum words in the joined article text
	MinLengthBytes int `json:"min_length_bytes"` // minimum page length reported by the API
	MaxTries       int `json:"max_tries"`
	MinBacklinks   int `json:"min_backlinks"`
}

// DefaultWikiConfig returns the standard thresholds
func DefaultWikiConfig() *WikiConfig {
	return &WikiConfig{
		MinLengthWords: 250,
		MinLengthBytes: 1000,
		MaxTries:       10,
		MinBacklinks:   1,
	}
}

// WikiSection is one named section of an article. The lead text before the
// first heading has an empty Name. Sections keep article order.
type WikiSection struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// WikiArticle is the context record returned by WikiDataset.
type WikiArticle struct {
	Title      string        `json:"title"`
	URL        string        `json:"url"`
	Length     int           `json:"length"`
	Extract    string        `json:"extract"`
	Backlinks  int           `json:"backlinks"`
	Categories []string      `json:"categories"`
	Sections   []WikiSection `json:"sections"`
	Text       string        `json:"text"`
	FetchTime  time.Duration `json:"fetch_time"`
}

// Section returns the content of the named section and whether it exists.
func (a *WikiArticle) Section(name string) (string, bool) {
	for _, s := range a.Sections {
		if s.Name == name {
			return s.Content, true
		}
	}
	return "", false
}

// WikiNextOptions controls a single Next call.
type WikiNextOptions struct {
	// Subset selects a section by name, or, when non-empty but not a
	// section name, samples random chunks of the joined text.
	Subset string
	// ChunkSep is the separator used when chunk-sampling. Defaults to "\n".
	ChunkSep string
	// NChunks is the number of chunks to sample; <= 0 means random.
	NChunks int
	// Article skips the random-article lookup and uses a known article.
	Article *WikiArticle
}

// WikiDataset fetches random Wikipedia articles meeting length and
// backlink thresholds and splits them into named sections.
type WikiDataset struct {
	cfg    *WikiConfig
	apiURL string
	client *webclient.Client
	rng    *rand.Rand
	log    zerolog.Logger
}

// NewWikiDataset creates a WikiDataset. A nil cfg uses DefaultWikiConfig.
func NewWikiDataset(cfg *WikiConfig) *WikiDataset {
	if cfg == nil {
		cfg = DefaultWikiConfig()
	}
	return &WikiDataset{
		cfg:    cfg,
		apiURL: defaultWikiAPIURL,
		client: webclient.New(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    logging.GetDatasetLogger("wiki"),
	}
}

// RandomArticle samples candidate random articles from the API and returns
// the first one meeting the configured length, backlink and extract
// requirements. It retries the whole API call up to MaxTries times.
func (d *WikiDataset) RandomArticle(ctx context.Context) (*WikiArticle, error) {
	params := url.Values{
		"action":       {"query"},
		"format":       {"json"},
		"prop":         {"info|linkshere|categories|categoryinfo|extracts"},
		"generator":    {"random"},
		"grnnamespace": {"0"}, // namespace 0 is articles
		"grnlimit":     {"10"},
		"inprop":       {"url|displaytitle|length"},
		"lhprop":       {"pageid"},
		"lhlimit":      {"max"},
		"exlimit":      {"max"},
		"cllimit":      {"max"},
	}

	for tries := 0; tries < d.cfg.MaxTries; tries++ {
		body, status, err := d.client.Get(ctx, d.apiURL, params)
		if err != nil {
			return nil, err
		}
		if status != 200 {
			return nil, fmt.Errorf("unexpected status code %d from %s", status, d.apiURL)
		}

		pages := gjson.GetBytes(body, "query.pages")
		if !pages.Exists() {
			continue
		}

		var found *WikiArticle
		pages.ForEach(func(_, page gjson.Result) bool {
			length := int(page.Get("length").Int())
			backlinks := len(page.Get("linkshere").Array())
			extract := page.Get("extract").String()

			var categories []string
			for _, cat := range page.Get("categories").Array() {
				// Trim is a cutset operation, so this removes any
				// leading/trailing characters from "Category:" rather
				// than the literal prefix. That matches the original
				// adapter's behavior and is kept intentionally.
				name := strings.Trim(cat.Get("title").String(), "Category:")
				if strings.Contains(strings.ToLower(name), "article") {
					continue
				}
				categories = append(categories, name)
			}

			if length >= d.cfg.MinLengthBytes && backlinks >= d.cfg.MinBacklinks && extract != "" {
				found = &WikiArticle{
					Title:      page.Get("title").String(),
					URL:        page.Get("fullurl").String(),
					Length:     length,
					Extract:    extract,
					Backlinks:  backlinks,
					Categories: categories,
				}
				return false
			}
			return true
		})
		if found != nil {
			return found, nil
		}
	}

	return nil, fmt.Errorf(
		"could not find an article with length >= %d and backlinks >= %d after %d tries: %w",
		d.cfg.MinLengthBytes, d.cfg.MinBacklinks, d.cfg.MaxTries, ErrRetriesExhausted)
}

// ArticleContent fetches the plain-text extract for a title and splits it
// into sections on ==Heading== markers. Lead text gets an empty name.
func (d *WikiDataset) ArticleContent(ctx context.Context, title string) ([]WikiSection, error) {
	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"titles":      {title},
		"prop":        {"extracts"},
		"explaintext": {"1"},
	}

	body, status, err := d.client.Get(ctx, d.apiURL, params)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, fmt.Errorf("unexpected status code %d from %s", status, d.apiURL)
	}

	content := "Content not found."
	gjson.GetBytes(body, "query.pages").ForEach(func(_, page gjson.Result) bool {
		if extract := page.Get("extract"); extract.Exists() {
			content = extract.String()
		}
		return false
	})

	sections := []WikiSection{{Name: ""}}
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "==") && strings.HasSuffix(line, "==") && len(line) >= 4 {
			name := strings.TrimSpace(strings.Trim(line, "="))
			sections = append(sections, WikiSection{Name: name})
			continue
		}
		sections[len(sections)-1].Content += line + "\n"
	}

	return sections, nil
}

// Next fetches a random article (or the one given in opts) until the joined
// section text meets the word-count threshold, then applies the requested
// subsetting. FetchTime covers the whole call.
func (d *WikiDataset) Next(ctx context.Context, opts *WikiNextOptions) (*WikiArticle, error) {
	d.log.Debug().Msg("Retrieving wikipedia article")
	if opts == nil {
		opts = &WikiNextOptions{}
	}

	t0 := time.Now()
	article := opts.Article
	var text string

	for tries := 0; ; tries++ {
		if tries >= d.cfg.MaxTries {
			return nil, fmt.Errorf(
				"could not find an article with length >= %d words after %d tries: %w",
				d.cfg.MinLengthWords, d.cfg.MaxTries, ErrRetriesExhausted)
		}

		if article == nil {
			var err error
			article, err = d.RandomArticle(ctx)
			if err != nil {
				return nil, err
			}
		}

		sections, err := d.ArticleContent(ctx, article.Title)
		if err != nil {
			return nil, err
		}
		article.Sections = sections

		var parts []string
		for _, s := range sections {
			parts = append(parts, s.Content)
		}
		text = strings.Join(parts, "\n")

		if len(strings.Fields(text)) >= d.cfg.MinLengthWords {
			break
		}
		article = nil
	}

	if opts.Subset != "" {
		if content, ok := article.Section(opts.Subset); ok {
			text = content
		} else {
			sep := opts.ChunkSep
			if sep == "" {
				sep = "\n"
			}
			chunked, err := Chunk(d.rng, text, sep, opts.NChunks)
			if err != nil {
				return nil, err
			}
			text = chunked
		}
	}

	article.Text = text
	article.FetchTime = time.Since(t0)
	return article, nil
}
