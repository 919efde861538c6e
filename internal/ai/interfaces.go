package ai

import (
	"context"
)

// Provider is the scoring collaborator boundary: one prompt string in, one
// raw reply out. The reply is returned unparsed on purpose; parsing and
// validation belong to the parse package, which tolerates whatever shape the
// model produces.
type Provider interface {
	ScoreResume(ctx context.Context, prompt string) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// TokenUsage reports token consumption for a single scoring call.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// ModelInfo describes the configured model's availability.
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}
