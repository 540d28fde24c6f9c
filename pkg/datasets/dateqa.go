package datasets

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/Caia-Tech/caia-datasets/internal/webclient"
	"github.com/Caia-Tech/caia-datasets/pkg/logging"
)

const defaultWikiPageURL = "https://en.wikipedia.org/wiki"

// dateQABaseYear fixes the calendar used for day-count correctness (2000 is
// a leap year, so February 29 pages are reachable). Only the month and day
// appear in the output.
const dateQABaseYear = 2000

var dateQASections = []string{"Events", "Births", "Deaths"}

// DateQAConfig holds DateQADataset retry policy and seeding.
type DateQAConfig struct {
	MaxTries int   `json:"max_tries"`
	Seed     int64 `json:"seed"` // 0 seeds from the clock
}

// DefaultDateQAConfig returns the standard retry policy.
func DefaultDateQAConfig() *DateQAConfig {
	return &DateQAConfig{MaxTries: 10}
}

// DateRecord is the context record returned by DateQADataset.
type DateRecord struct {
	Date      string        `json:"date"`  // e.g. "January 02"
	Event     string        `json:"event"` // the selected list entry's text
	NextPage  string        `json:"next_page,omitempty"`
	Section   string        `json:"section"` // Events, Births or Deaths
	FetchTime time.Duration `json:"fetch_time"`
}

// DateQADataset scrapes Wikipedia "on this day" pages for random calendar
// dates and samples one historical entry.
type DateQADataset struct {
	cfg     *DateQAConfig
	baseURL string
	client  *webclient.Client
	rng     *rand.Rand
	log     zerolog.Logger
}

// NewDateQADataset creates a DateQADataset. A nil cfg uses defaults.
func NewDateQADataset(cfg *DateQAConfig) *DateQADataset {
	if cfg == nil {
		cfg = DefaultDateQAConfig()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DateQADataset{
		cfg:     cfg,
		baseURL: defaultWikiPageURL,
		client:  webclient.New(),
		rng:     rand.New(rand.NewSource(seed)),
		log:     logging.GetDatasetLogger("dateqa"),
	}
}

// randomDate generates a uniform month/day within the base year.
func (d *DateQADataset) randomDate() time.Time {
	month := 1 + d.rng.Intn(12)

	maxDays := 30
	switch time.Month(month) {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		maxDays = 31
	case time.February:
		maxDays = 28
		if dateQABaseYear%4 == 0 {
			maxDays = 29
		}
	}
	day := 1 + d.rng.Intn(maxDays)

	return time.Date(dateQABaseYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// RandomEvent picks a random date, scrapes its day page, and samples one
// entry from whichever of the Events/Births/Deaths sections are present.
// Failed page fetches are retried up to MaxTries, after which the typed
// ErrRetriesExhausted failure is returned.
func (d *DateQADataset) RandomEvent(ctx context.Context) (*DateRecord, error) {
	for tries := 0; tries < d.cfg.MaxTries; tries++ {
		date := d.randomDate()
		pageURL := d.baseURL + "/" + date.Format("January_02")

		body, status, err := d.client.Get(ctx, pageURL, nil)
		if err != nil {
			return nil, err
		}
		if status != 200 {
			d.log.Debug().
				Int("status", status).
				Str("url", pageURL).
				Int("try", tries+1).
				Int("max_tries", d.cfg.MaxTries).
				Msg("Retrying day page fetch")
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to parse day page %s: %w", pageURL, err)
		}

		var available []string
		for _, name := range dateQASections {
			if doc.Find("span#" + name).Length() > 0 {
				available = append(available, name)
			}
		}
		if len(available) == 0 {
			continue
		}
		section := available[d.rng.Intn(len(available))]

		entries := doc.Find("span#" + section).First().
			Parent().
			NextAllFiltered("ul").First().
			Find("li")
		if entries.Length() == 0 {
			continue
		}
		entry := entries.Eq(d.rng.Intn(entries.Length()))

		nextPage := ""
		if links := entry.Find("a"); links.Length() > 0 {
			link := links.Eq(d.rng.Intn(links.Length()))
			nextPage = link.AttrOr("title", "")
		}

		return &DateRecord{
			Date:     date.Format("January 02"),
			Event:    strings.TrimSpace(entry.Text()),
			NextPage: nextPage,
			Section:  section,
		}, nil
	}

	return nil, fmt.Errorf("no event found after %d tries: %w", d.cfg.MaxTries, ErrRetriesExhausted)
}

// Next returns one historical event record with fetch timing.
func (d *DateQADataset) Next(ctx context.Context) (*DateRecord, error) {
	d.log.Debug().Msg("Retrieving historical event")
	t0 := time.Now()
	record, err := d.RandomEvent(ctx)
	if err != nil {
		return nil, err
	}
	record.FetchTime = time.Since(t0)
	return record, nil
}
