package datasets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockDataset(t *testing.T) {
	record := MockDataset{}.Next()

	assert.Equal(t, "What is the capital of Texas?", record.Text)
	assert.GreaterOrEqual(t, record.FetchTime, time.Duration(0))
}
