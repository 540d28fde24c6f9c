// Package datasets provides adapters that sample context records from
// external sources: random Wikipedia articles, date-indexed historical
// events, Stack Overflow Q&A pairs, a streaming code corpus, and locally
// generated math problems.
//
// Each adapter is independent and exposes a Next method returning a typed
// record whose FetchTime field carries the wall-clock duration of the call.
// Adapters hold their own random number generators and are not safe for
// concurrent use of a single instance.
package datasets

import "errors"

var (
	// ErrRetriesExhausted is returned when an adapter gives up after its
	// configured number of fetch attempts.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrNoAnswers is returned when a Stack Overflow question has no
	// answers to sample from.
	ErrNoAnswers = errors.New("no answers found for the question")

	// ErrEmptyText is returned when chunk sampling is asked to operate on
	// text with no non-blank segments.
	ErrEmptyText = errors.New("text has no non-blank segments")
)
