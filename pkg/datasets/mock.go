package datasets

import "time"

// MockRecord is the fixed record returned by MockDataset.
type MockRecord struct {
	Text      string        `json:"text"`
	FetchTime time.Duration `json:"fetch_time"`
}

// MockDataset is a trivial adapter returning a fixed record. It exists for
// tests and as the minimal example of the adapter shape.
type MockDataset struct{}

// Next returns the fixed record.
func (MockDataset) Next() *MockRecord {
	t0 := time.Now()
	return &MockRecord{
		Text:      "What is the capital of Texas?",
		FetchTime: time.Since(t0),
	}
}
