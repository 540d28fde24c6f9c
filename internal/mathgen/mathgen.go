// Package mathgen generates random math problems with their solutions.
// Problems are grouped into topics addressed by stable integer IDs, so
// callers can restrict sampling to topics whose solutions are known to
// convert cleanly to numeric values.
package mathgen

import (
	"fmt"
	"math/rand"
)

// Topic describes one problem generator.
type Topic struct {
	ID       int
	Subtopic string
	Category string
	gen      func(r *rand.Rand) (problem, solution string)
}

// GenList returns all registered topics in ID order.
func GenList() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// TopicByID returns the topic registered under id.
func TopicByID(id int) (Topic, error) {
	if id < 0 || id >= len(topics) {
		return Topic{}, fmt.Errorf("unknown topic id %d", id)
	}
	return topics[id], nil
}

// GenByID generates one problem/solution pair for the given topic,
// drawing randomness from r.
func GenByID(id int, r *rand.Rand) (problem, solution string, err error) {
	topic, err := TopicByID(id)
	if err != nil {
		return "", "", err
	}
	problem, solution = topic.gen(r)
	return problem, solution, nil
}

// ParseableTopics lists topic IDs whose solutions always evaluate to a
// number. Word-valued topics (e.g. is_prime answering "Yes"/"No") are
// excluded. Note that evaluating is not the same as being semantically
// right: decimal_to_binary solutions evaluate as base-10 integers.
var ParseableTopics = []int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	17, 18, 19, 20, 21, 22, 23, 24, 25, 26,
}
