package worker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ppiankov/factprep/internal/dataset"
	"github.com/ppiankov/factprep/internal/encode"
	"github.com/ppiankov/factprep/internal/model"
)

// EncodeJob converts one (source, split) unit into feature records and
// writes them out. Train examples arrive pre-loaded because the training
// scan builds the vocabulary and must finish before any job runs; dev/test
// examples are loaded inside the job, which only reads the frozen
// vocabulary.
type EncodeJob struct {
	Source   string
	Split    string
	Examples []model.ClaimExample // Pre-loaded examples; nil means load via Loader
	DevFile  string               // Optional dev filename override
	Loader   *dataset.Loader
	Encoder  *encode.Encoder
	Strategy encode.Strategy
	OutDir   string
}

// EncodeResult is the outcome of one encode job
type EncodeResult struct {
	Source   string
	Split    string
	Path     string
	Features int
	Skipped  int
	Err      error
}

// GetError returns the job error, if any
func (r *EncodeResult) GetError() error {
	return r.Err
}

// Execute loads (when needed), encodes, and writes one split of one source
func (j *EncodeJob) Execute(ctx context.Context) Result {
	result := &EncodeResult{Source: j.Source, Split: j.Split}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	examples := j.Examples
	if examples == nil {
		var stats model.SplitStats
		var err error
		switch j.Split {
		case "dev":
			examples, stats, err = j.Loader.LoadDev(j.Source, j.DevFile)
		case "test":
			examples, stats, err = j.Loader.LoadTest(j.Source)
		default:
			err = fmt.Errorf("split %q has no pre-loaded examples", j.Split)
		}
		if err != nil {
			result.Err = err
			return result
		}
		result.Skipped = stats.Skipped
	}

	features, err := j.Encoder.Convert(examples, j.Loader.Labels(j.Source), j.Strategy)
	if err != nil {
		result.Err = fmt.Errorf("encode %s.%s: %w", j.Split, j.Source, err)
		return result
	}

	path := filepath.Join(j.OutDir, fmt.Sprintf("%s.%s.features.json", j.Split, j.Source))
	if err := encode.WriteFeatures(features, path); err != nil {
		result.Err = err
		return result
	}

	result.Path = path
	result.Features = len(features)
	return result
}

// RunEncodeJobs fans jobs out over a pool and collects typed results
func RunEncodeJobs(jobs []*EncodeJob, workers int) []*EncodeResult {
	if len(jobs) == 0 {
		return nil
	}

	pool := NewPoolSize(workers, len(jobs))
	pool.Start()

	for _, job := range jobs {
		pool.Submit(job)
	}

	raw := pool.Wait()
	results := make([]*EncodeResult, len(raw))
	for i, r := range raw {
		results[i] = r.(*EncodeResult)
	}
	return results
}
