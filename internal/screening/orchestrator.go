// Package screening sequences a full candidate evaluation: resolve the
// candidate's name, build the scoring prompt, call the scoring model with
// bounded retries, and validate the reply into an EvaluationRecord. Every
// entry point is total: callers always get fully populated records, never
// errors.
package screening

import (
	"context"
	"time"

	"resumescreen/internal/ai"
	"resumescreen/internal/config"
	"resumescreen/internal/errors"
	"resumescreen/internal/names"
	"resumescreen/internal/parse"
	"resumescreen/internal/types"
)

// Engine runs evaluations against a scoring provider.
type Engine struct {
	provider ai.Provider
	cfg      *config.Config
	logger   *errors.Logger
}

// NewEngine creates an evaluation engine.
func NewEngine(provider ai.Provider, cfg *config.Config, logger *errors.Logger) *Engine {
	return &Engine{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
}

// attemptOutcome classifies one scoring attempt for the retry state machine.
type attemptOutcome int

const (
	attemptSucceeded attemptOutcome = iota
	attemptRetryable
	attemptFatal
)

// Evaluate scores one resume against a job description. Blank inputs
// short-circuit to the hard-default record without a scoring call. Quota
// errors from the provider are fatal for the candidate; other transport
// errors are retried up to the configured attempt budget with a fixed delay
// between attempts.
func (e *Engine) Evaluate(ctx context.Context, resumeText, jobDescription, filename string) types.EvaluationRecord {
	candidateName := e.resolveCandidateName(resumeText, filename)

	if isBlank(resumeText) || isBlank(jobDescription) {
		e.logger.Warn("Blank resume text or job description, skipping scoring",
			"filename", filename,
			"candidate", candidateName)
		return parse.FallbackRecord(candidateName)
	}

	prompt := ai.BuildScorePrompt(candidateName, jobDescription, resumeText)

	maxAttempts := e.cfg.AI.MaxRetries
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, e.cfg.AI.RetryDelay); err != nil {
				e.logger.Warn("Evaluation canceled while waiting to retry",
					"candidate", candidateName, "attempt", attempt)
				return parse.FallbackRecord(candidateName)
			}
		}

		record, outcome := e.attempt(ctx, prompt, candidateName, attempt)
		switch outcome {
		case attemptSucceeded:
			if attempt > 1 {
				e.logger.Info("Scoring succeeded after retry",
					"candidate", candidateName, "attempt", attempt)
			}
			return record
		case attemptFatal:
			return parse.FallbackRecord(candidateName)
		case attemptRetryable:
			e.logger.Warn("Scoring attempt failed",
				"candidate", candidateName,
				"attempt", attempt,
				"max_attempts", maxAttempts)
		}
	}

	e.logger.Warn("Scoring attempts exhausted, returning default record",
		"candidate", candidateName, "attempts", maxAttempts)
	return parse.FallbackRecord(candidateName)
}

// attempt runs one scoring call followed by validation. Validation makes
// every structurally returned reply succeed; only transport failures produce
// retryable or fatal outcomes.
func (e *Engine) attempt(ctx context.Context, prompt, candidateName string, attempt int) (types.EvaluationRecord, attemptOutcome) {
	raw, usage, err := e.provider.ScoreResume(ctx, prompt)
	if err != nil {
		if errors.IsQuotaError(err) {
			e.logger.LogError(err, "Upstream quota exhausted, abandoning candidate",
				"candidate", candidateName, "attempt", attempt)
			return types.EvaluationRecord{}, attemptFatal
		}
		if ctx.Err() != nil {
			return types.EvaluationRecord{}, attemptFatal
		}
		e.logger.LogError(err, "Scoring call failed",
			"candidate", candidateName, "attempt", attempt)
		return types.EvaluationRecord{}, attemptRetryable
	}

	if usage != nil {
		e.logger.Debug("Scoring token usage",
			"candidate", candidateName,
			"input_tokens", usage.InputTokens,
			"output_tokens", usage.OutputTokens,
			"total_tokens", usage.TotalTokens)
	}

	record := parse.ValidateResponse(raw, candidateName)
	// Acceptance is structural: validation guarantees OverallScore >= 0, so
	// the first reply that makes it back over the wire is taken as-is.
	if record.OverallScore >= 0 {
		return record, attemptSucceeded
	}
	return types.EvaluationRecord{}, attemptRetryable
}

// resolveCandidateName prefers a name found in the resume text, then one
// recovered from the filename, then the sentinel.
func (e *Engine) resolveCandidateName(resumeText, filename string) string {
	name := names.Extract(resumeText)
	if name == types.UnknownCandidate && filename != "" {
		name = names.ExtractFromFilename(filename)
	}
	return name
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// sleepCtx blocks for d or until the context is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
