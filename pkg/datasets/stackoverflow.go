package datasets

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/Caia-Tech/caia-datasets/internal/webclient"
	"github.com/Caia-Tech/caia-datasets/pkg/extractor"
	"github.com/Caia-Tech/caia-datasets/pkg/logging"
)

const (
	defaultStackAPIURL = "https://api.stackexchange.com/2.3"
	stackPageSize      = 100
	stackMinUpvotes    = 10
)

// StackRecord is the context record returned by StackOverflowDataset.
type StackRecord struct {
	Question  string        `json:"question"`
	Answer    string        `json:"answer"`
	FetchTime time.Duration `json:"fetch_time"`
}

type stackQuestion struct {
	QuestionID int64  `json:"question_id"`
	Title      string `json:"title"`
	Score      int    `json:"score"`
}

type stackQuestionsResponse struct {
	Items []stackQuestion `json:"items"`
}

type stackAnswersResponse struct {
	Items []struct {
		Body  string `json:"body"`
		Score int    `json:"score"`
	} `json:"items"`
}

// StackOverflowDataset fetches high-voted Stack Overflow questions in
// batches and pairs each with its top-voted answer. Fetched questions wait
// in an internal queue that refills when empty.
type StackOverflowDataset struct {
	apiURL    string
	client    *webclient.Client
	rng       *rand.Rand
	log       zerolog.Logger
	questions []stackQuestion
}

// NewStackOverflowDataset creates a StackOverflowDataset.
func NewStackOverflowDataset() *StackOverflowDataset {
	return &StackOverflowDataset{
		apiURL: defaultStackAPIURL,
		client: webclient.New(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    logging.GetDatasetLogger("stackoverflow"),
	}
}

// fetchQuestions pulls one page of vote-sorted questions, keeps those above
// the upvote floor, shuffles them and appends them to the queue.
func (d *StackOverflowDataset) fetchQuestions(ctx context.Context) error {
	params := url.Values{
		"order":    {"desc"},
		"sort":     {"votes"},
		"site":     {"stackoverflow"},
		"pagesize": {fmt.Sprintf("%d", stackPageSize)},
		// sorting by votes means the same questions tend to recur, so a
		// random page adds some variety
		"page": {fmt.Sprintf("%d", 1+d.rng.Intn(5))},
	}

	var resp stackQuestionsResponse
	if err := d.client.GetJSON(ctx, d.apiURL+"/questions", params, &resp); err != nil {
		return err
	}

	var filtered []stackQuestion
	for _, q := range resp.Items {
		if q.Score >= stackMinUpvotes {
			filtered = append(filtered, q)
		}
	}
	d.rng.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})

	d.questions = append(d.questions, filtered...)
	return nil
}

// fetchAnswer returns the plain text of the highest-voted answer for a
// question, HTML stripped.
func (d *StackOverflowDataset) fetchAnswer(ctx context.Context, q stackQuestion) (string, error) {
	params := url.Values{
		"order":  {"desc"},
		"sort":   {"votes"},
		"site":   {"stackoverflow"},
		"filter": {"withbody"},
	}

	var resp stackAnswersResponse
	answersURL := fmt.Sprintf("%s/questions/%d/answers", d.apiURL, q.QuestionID)
	if err := d.client.GetJSON(ctx, answersURL, params, &resp); err != nil {
		return "", err
	}

	if len(resp.Items) == 0 {
		d.log.Warn().Int64("question_id", q.QuestionID).Msg("No answers found for the question")
		return "", fmt.Errorf("question %d: %w", q.QuestionID, ErrNoAnswers)
	}

	// the first answer is the highest voted
	return extractor.Text([]byte(resp.Items[0].Body), "\n")
}

// question refills the queue when empty, pops one question and fetches its
// top answer.
func (d *StackOverflowDataset) question(ctx context.Context) (*StackRecord, error) {
	if len(d.questions) == 0 {
		if err := d.fetchQuestions(ctx); err != nil {
			return nil, err
		}
		if len(d.questions) == 0 {
			return nil, fmt.Errorf("no questions with score >= %d available", stackMinUpvotes)
		}
	}

	q := d.questions[len(d.questions)-1]
	d.questions = d.questions[:len(d.questions)-1]

	answer, err := d.fetchAnswer(ctx, q)
	if err != nil {
		return nil, err
	}

	return &StackRecord{Question: q.Title, Answer: answer}, nil
}

// Next returns one question/answer record with fetch timing.
func (d *StackOverflowDataset) Next(ctx context.Context) (*StackRecord, error) {
	d.log.Debug().Msg("Retrieving stack overflow question")
	t0 := time.Now()
	record, err := d.question(ctx)
	if err != nil {
		return nil, err
	}
	record.FetchTime = time.Since(t0)
	return record, nil
}
