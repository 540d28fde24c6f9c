package datasets

import (
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"
)

// Chunk selects a random contiguous run of non-blank segments from text.
// The text is split on sep and blank segments are dropped before sampling.
// nChunks <= 0 means a uniform random count in [1, total segments]. The
// selected run is rejoined with sep.
func Chunk(rng *rand.Rand, text, sep string, nChunks int) (string, error) {
	var chunks []string
	for _, c := range strings.Split(text, sep) {
		if strings.TrimSpace(c) != "" {
			chunks = append(chunks, c)
		}
	}
	if len(chunks) == 0 {
		return "", ErrEmptyText
	}

	if nChunks <= 0 || nChunks > len(chunks) {
		nChunks = 1 + rng.Intn(len(chunks))
	}
	start := rng.Intn(len(chunks) - nChunks + 1)

	log.Debug().
		Int("n_chunks", nChunks).
		Int("start_chunk", start).
		Msg("Choosing chunks")

	return strings.Join(chunks[start:start+nChunks], sep), nil
}
