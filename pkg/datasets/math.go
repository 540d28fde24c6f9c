package datasets

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Caia-Tech/caia-datasets/internal/mathgen"
	"github.com/Caia-Tech/caia-datasets/pkg/latex"
	"github.com/Caia-Tech/caia-datasets/pkg/logging"
)

// MathConfig holds MathDataset seeding.
type MathConfig struct {
	Seed int64 `json:"seed"` // 0 seeds from the clock
}

// MathRecord is the context record returned by MathDataset. When Parsed is
// true, Solution holds the numeric value and SolutionRaw the generator's
// original string; otherwise only SolutionRaw is meaningful.
type MathRecord struct {
	Problem     string        `json:"problem"`
	Solution    float64       `json:"solution"`
	SolutionRaw string        `json:"solution_raw"`
	Parsed      bool          `json:"parsed"`
	Topic       string        `json:"topic"`
	Subtopic    string        `json:"subtopic"`
	FetchTime   time.Duration `json:"fetch_time"`
}

// MathDataset generates random math problems locally. No network calls.
type MathDataset struct {
	rng    *rand.Rand
	log    zerolog.Logger
	topics []mathgen.Topic
}

// NewMathDataset creates a MathDataset. A nil cfg uses a clock seed.
func NewMathDataset(cfg *MathConfig) *MathDataset {
	var seed int64
	if cfg != nil {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MathDataset{
		rng:    rand.New(rand.NewSource(seed)),
		log:    logging.GetDatasetLogger("math"),
		topics: mathgen.GenList(),
	}
}

// RandomProblem generates one problem. With parse set, the topic is drawn
// from the allow-list of parseable topics and the solution is converted to
// a numeric value, substituting x=10 when the solution has a free x.
// Without parse, any topic may be drawn and the solution stays raw.
func (d *MathDataset) RandomProblem(parse bool) (*MathRecord, error) {
	if parse {
		id := mathgen.ParseableTopics[d.rng.Intn(len(mathgen.ParseableTopics))]
		problem, solution, err := mathgen.GenByID(id, d.rng)
		if err != nil {
			return nil, err
		}
		topic, err := mathgen.TopicByID(id)
		if err != nil {
			return nil, err
		}

		subs := map[string]float64{}
		if strings.Contains(solution, "x") {
			subs["x"] = 10
			d.log.Warn().Msg("Coercing a symbolic expression to a numeric expression by substituting x=10")
		}

		// letter runs in solutions are treated as variable products, so
		// word-valued solutions fail here rather than evaluating to
		// something nonsensical
		value, err := latex.Eval(strings.TrimSpace(strings.ReplaceAll(solution, "$", "")), subs)
		if err != nil {
			return nil, fmt.Errorf("topic %d (%s): %w", id, topic.Subtopic, err)
		}

		return &MathRecord{
			Problem:     problem,
			Solution:    value,
			SolutionRaw: solution,
			Parsed:      true,
			Topic:       topic.Category,
			Subtopic:    topic.Subtopic,
		}, nil
	}

	topic := d.topics[d.rng.Intn(len(d.topics))]
	problem, solution, err := mathgen.GenByID(topic.ID, d.rng)
	if err != nil {
		return nil, err
	}
	return &MathRecord{
		Problem:     problem,
		SolutionRaw: solution,
		Topic:       topic.Category,
		Subtopic:    topic.Subtopic,
	}, nil
}

// Next returns one problem record with fetch timing.
func (d *MathDataset) Next(parse bool) (*MathRecord, error) {
	t0 := time.Now()
	record, err := d.RandomProblem(parse)
	if err != nil {
		return nil, err
	}
	record.FetchTime = time.Since(t0)
	return record, nil
}
