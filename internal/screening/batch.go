package screening

import (
	"context"
	"fmt"

	"resumescreen/internal/errors"
	"resumescreen/internal/types"

	"golang.org/x/time/rate"
)

// EvaluateBatch applies Evaluate to each candidate in order. Batches larger
// than the configured cap are rejected outright with an empty result: the
// cap exists to stay inside upstream rate and cost limits. Candidates are
// processed strictly sequentially with a fixed inter-candidate delay, and a
// failure on one candidate never aborts the rest of the batch.
func (e *Engine) EvaluateBatch(ctx context.Context, candidates []types.Candidate, jobDescription string, progress types.ProgressFunc) []types.EvaluationRecord {
	if len(candidates) > e.cfg.Screening.MaxBatchSize {
		err := errors.NewValidationError(errors.ErrCodeBatchLimitExceeded,
			fmt.Sprintf("Batch of %d candidates exceeds the limit of %d",
				len(candidates), e.cfg.Screening.MaxBatchSize), nil)
		e.logger.LogError(err, "Batch rejected",
			"batch_size", len(candidates),
			"max_batch_size", e.cfg.Screening.MaxBatchSize)
		return []types.EvaluationRecord{}
	}

	// One token per candidate interval. The first candidate starts
	// immediately on the initial token; each later candidate waits out the
	// full interval, which keeps the request rate deterministic.
	limiter := rate.NewLimiter(rate.Every(e.cfg.Screening.CandidateDelay), 1)

	records := make([]types.EvaluationRecord, 0, len(candidates))
	for i, candidate := range candidates {
		if err := limiter.Wait(ctx); err != nil {
			e.logger.Warn("Batch canceled while pacing",
				"completed", i, "total", len(candidates))
			break
		}

		record, ok := e.evaluateIsolated(ctx, candidate, jobDescription)
		if ok {
			records = append(records, record)
		}

		if progress != nil {
			label := candidate.Filename
			if label == "" && ok {
				label = record.CandidateName
			}
			progress(types.ProgressUpdate{
				Completed: i + 1,
				Total:     len(candidates),
				Candidate: label,
			})
		}
	}

	e.logger.Info("Batch evaluation finished",
		"candidates", len(candidates),
		"records", len(records))
	return records
}

// evaluateIsolated contains one candidate's failure: a panic is logged and
// the candidate skipped, leaving the rest of the batch to run.
func (e *Engine) evaluateIsolated(ctx context.Context, candidate types.Candidate, jobDescription string) (record types.EvaluationRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("Candidate evaluation failed, skipping",
				"filename", candidate.Filename,
				"panic", fmt.Sprint(r))
			ok = false
		}
	}()
	return e.Evaluate(ctx, candidate.ResumeText, jobDescription, candidate.Filename), true
}
