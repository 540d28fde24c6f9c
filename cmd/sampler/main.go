// Command sampler draws context records from a named dataset adapter and
// prints them as JSON lines, one record per line.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Caia-Tech/caia-datasets/pkg/datasets"
	"github.com/Caia-Tech/caia-datasets/pkg/logging"
)

func main() {
	var (
		dataset  = flag.String("dataset", "wiki", "adapter to sample: mock, coding, wiki, stackoverflow, dateqa, math")
		n        = flag.Int("n", 1, "number of records to sample")
		seed     = flag.Int64("seed", 0, "random seed for seedable adapters (0 = clock)")
		logLevel = flag.String("log-level", "warn", "log level: debug, info, warn, error")
		timeout  = flag.Duration("timeout", 5*time.Minute, "overall sampling deadline")
	)
	flag.Parse()

	if err := logging.SetupLogger(&logging.LogConfig{Level: *logLevel, Format: "pretty", Console: true}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	logger := logging.GetLogger("sampler")
	runID := uuid.New().String()
	logger.Info().Str("run_id", runID).Str("dataset", *dataset).Int("n", *n).Msg("Sampling started")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	next, err := newSampler(*dataset, *seed)
	if err != nil {
		logger.Fatal().Err(err).Msg("Unknown dataset")
	}

	enc := json.NewEncoder(os.Stdout)
	for i := 0; i < *n; i++ {
		record, err := next(ctx)
		if err != nil {
			logger.Fatal().Err(err).Int("sample", i).Msg("Sampling failed")
		}
		if err := enc.Encode(record); err != nil {
			logger.Fatal().Err(err).Msg("Failed to encode record")
		}
	}

	logger.Info().Str("run_id", runID).Msg("Sampling complete")
}

// newSampler adapts each dataset's Next signature to a uniform closure.
func newSampler(name string, seed int64) (func(context.Context) (interface{}, error), error) {
	switch name {
	case "mock":
		d := datasets.MockDataset{}
		return func(context.Context) (interface{}, error) {
			return d.Next(), nil
		}, nil
	case "coding":
		cfg := datasets.DefaultCodingConfig()
		cfg.Seed = seed
		d := datasets.NewCodingDataset(cfg)
		return func(ctx context.Context) (interface{}, error) {
			return d.Next(ctx, 5, 100)
		}, nil
	case "wiki":
		d := datasets.NewWikiDataset(nil)
		return func(ctx context.Context) (interface{}, error) {
			return d.Next(ctx, nil)
		}, nil
	case "stackoverflow":
		d := datasets.NewStackOverflowDataset()
		return func(ctx context.Context) (interface{}, error) {
			return d.Next(ctx)
		}, nil
	case "dateqa":
		cfg := datasets.DefaultDateQAConfig()
		cfg.Seed = seed
		d := datasets.NewDateQADataset(cfg)
		return func(ctx context.Context) (interface{}, error) {
			return d.Next(ctx)
		}, nil
	case "math":
		d := datasets.NewMathDataset(&datasets.MathConfig{Seed: seed})
		return func(context.Context) (interface{}, error) {
			return d.Next(true)
		}, nil
	default:
		return nil, fmt.Errorf("unknown dataset %q", name)
	}
}
