package mentor

import (
	"context"
	"time"

	consultationRepo "lawease/database/repository/consultation"
	"lawease/models"
	ai "lawease/services/intelligence"

	"go.uber.org/zap"
)

// MentorService drives an AI-mentor consultation from the written problem
// through analysis and a voice session to a final summary.
type MentorService interface {
	CreateConsultation(ctx context.Context, actor models.Actor, problem string) (*models.Consultation, error)
	AnalyzeLegalProblem(ctx context.Context, actor models.Actor, id string) (*models.Consultation, error)
	PrepareVoiceSession(ctx context.Context, actor models.Actor, id string) (*models.VoiceSession, error)
	SummarizeConversation(ctx context.Context, actor models.Actor, id, transcript string) (*models.Consultation, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.Consultation, error)
	List(ctx context.Context, actor models.Actor) ([]models.Consultation, error)
}

type DefaultMentorService struct {
	store  consultationRepo.ConsultationStore
	llm    ai.LLMClient
	voice  ai.VoiceSessionClient
	logger *zap.Logger
	now    func() time.Time
}

// NewMentorService wires the orchestrator. llm and voice may be nil, in
// which case analysis fails and voice sessions are always mocked.
func NewMentorService(store consultationRepo.ConsultationStore, llm ai.LLMClient, voice ai.VoiceSessionClient, logger *zap.Logger) *DefaultMentorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultMentorService{
		store:  store,
		llm:    llm,
		voice:  voice,
		logger: logger,
		now:    time.Now,
	}
}
