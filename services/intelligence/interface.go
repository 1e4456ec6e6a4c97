package ai

import (
	"context"

	"lawease/models"
)

// LLMClient is the language model used by the AI mentor.
type LLMClient interface {
	AnalyzeLegalProblem(ctx context.Context, problem string) (*models.LegalAnalysis, error)
	Summarize(ctx context.Context, transcript string) (string, error)
}

// VoiceSessionClient starts a conversation with the hosted voice agent and
// returns its session id.
type VoiceSessionClient interface {
	StartSession(ctx context.Context, variables map[string]string) (string, error)
}
