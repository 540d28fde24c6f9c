package datasets

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caia-Tech/caia-datasets/internal/mathgen"
)

func TestMathNextParsed(t *testing.T) {
	allowed := make(map[int]bool)
	allowedSubtopics := make(map[string]bool)
	for _, id := range mathgen.ParseableTopics {
		allowed[id] = true
		topic, err := mathgen.TopicByID(id)
		require.NoError(t, err)
		allowedSubtopics[topic.Subtopic] = true
	}

	d := NewMathDataset(&MathConfig{Seed: 42})
	for i := 0; i < 200; i++ {
		record, err := d.Next(true)
		require.NoError(t, err)

		assert.True(t, record.Parsed)
		assert.True(t, allowedSubtopics[record.Subtopic],
			"subtopic %q not in the parseable allow-list", record.Subtopic)
		assert.False(t, math.IsNaN(record.Solution))
		assert.False(t, math.IsInf(record.Solution, 0))
		assert.NotEmpty(t, record.Problem)
		assert.NotEmpty(t, record.SolutionRaw)
		assert.NotEmpty(t, record.Topic)
		assert.GreaterOrEqual(t, record.FetchTime, time.Duration(0))
	}
}

func TestMathNextRaw(t *testing.T) {
	d := NewMathDataset(&MathConfig{Seed: 7})

	for i := 0; i < 100; i++ {
		record, err := d.Next(false)
		require.NoError(t, err)

		assert.False(t, record.Parsed)
		assert.NotEmpty(t, record.Problem)
		assert.NotEmpty(t, record.SolutionRaw)
		assert.Zero(t, record.Solution)
	}
}

func TestMathSeededReproducibility(t *testing.T) {
	a := NewMathDataset(&MathConfig{Seed: 123})
	b := NewMathDataset(&MathConfig{Seed: 123})

	for i := 0; i < 20; i++ {
		ra, err := a.RandomProblem(true)
		require.NoError(t, err)
		rb, err := b.RandomProblem(true)
		require.NoError(t, err)

		assert.Equal(t, ra.Problem, rb.Problem)
		assert.Equal(t, ra.Solution, rb.Solution)
	}
}
