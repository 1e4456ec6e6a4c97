package mentor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lawease/database"
	"lawease/models"
	"lawease/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	placeholderTranscript = "No transcript was captured for this consultation."
	fallbackSummary       = "A summary could not be generated for this consultation. Please review the legal analysis for guidance on your next steps."
)

var (
	ErrEmptyProblem         = utils.NewValidation("Problem description is required")
	ErrConsultationNotFound = utils.NewNotFound("Consultation not found")
	ErrNoAnalysis           = utils.NewDomain("Analyze the problem before starting a voice session")
	ErrAnalysisFailed       = utils.NewInternal("Failed to analyze legal problem", nil)
)

func (s *DefaultMentorService) CreateConsultation(ctx context.Context, actor models.Actor, problem string) (*models.Consultation, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return nil, ErrEmptyProblem
	}

	now := s.now()
	c := &models.Consultation{
		ID:                 uuid.New().String(),
		UserID:             actor.UserID,
		ProblemDescription: problem,
		Status:             models.ConsultationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, utils.NewInternal("failed to create consultation", err)
	}
	return c, nil
}

// owned loads a consultation that belongs to actor.
func (s *DefaultMentorService) owned(ctx context.Context, actor models.Actor, id string) (*models.Consultation, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	c, err := s.store.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrConsultationNotFound
	}
	if err != nil {
		return nil, utils.NewInternal("failed to load consultation", err)
	}
	if c.UserID != actor.UserID {
		return nil, ErrConsultationNotFound
	}
	return c, nil
}

// AnalyzeLegalProblem asks the LLM for a structured analysis. A failed call
// leaves the consultation FAILED; nothing is rolled back.
func (s *DefaultMentorService) AnalyzeLegalProblem(ctx context.Context, actor models.Actor, id string) (*models.Consultation, error) {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	c.Status = models.ConsultationAnalyzing
	c.FailureReason = ""
	if err := s.store.Update(ctx, c); err != nil {
		return nil, utils.NewInternal("failed to update consultation", err)
	}

	var analysis *models.LegalAnalysis
	if s.llm == nil {
		err = errors.New("llm client is not configured")
	} else {
		analysis, err = s.llm.AnalyzeLegalProblem(ctx, c.ProblemDescription)
	}
	if err != nil {
		s.logger.Error("legal analysis failed", zap.String("consultationID", c.ID), zap.Error(err))
		c.Status = models.ConsultationFailed
		c.FailureReason = err.Error()
		if uerr := s.store.Update(ctx, c); uerr != nil {
			s.logger.Warn("failed to mark consultation failed", zap.String("consultationID", c.ID), zap.Error(uerr))
		}
		return nil, ErrAnalysisFailed
	}

	c.LegalAnalysis = analysis
	c.Status = models.ConsultationAnalyzed
	if err := s.store.Update(ctx, c); err != nil {
		return nil, utils.NewInternal("failed to save analysis", err)
	}

	entry := KnowledgeEntryFor(c, s.now())
	if err := s.store.CreateKnowledgeEntry(ctx, entry); err != nil {
		s.logger.Warn("failed to save knowledge entry", zap.String("consultationID", c.ID), zap.Error(err))
	}
	return c, nil
}

// PrepareVoiceSession primes the voice agent with the analysis. When the
// agent cannot be reached a mock session id is issued so the flow can go on.
func (s *DefaultMentorService) PrepareVoiceSession(ctx context.Context, actor models.Actor, id string) (*models.VoiceSession, error) {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if c.LegalAnalysis == nil {
		return nil, ErrNoAnalysis
	}

	session := &models.VoiceSession{ConsultationID: c.ID}
	vars := VoiceVariables(c)
	if s.voice != nil {
		session.SessionID, err = s.voice.StartSession(ctx, vars)
	} else {
		err = errors.New("voice client is not configured")
	}
	if err != nil {
		s.logger.Warn("voice session unavailable, using mock",
			zap.String("consultationID", c.ID), zap.Error(err))
		session.SessionID = MockSessionID(c.ID, s.now().UnixMilli())
		session.Mock = true
	}

	c.VoiceSessionID = session.SessionID
	c.Status = models.ConsultationReady
	if err := s.store.Update(ctx, c); err != nil {
		return nil, utils.NewInternal("failed to save voice session", err)
	}
	return session, nil
}

// SummarizeConversation stores the call transcript and its summary and
// closes the consultation.
func (s *DefaultMentorService) SummarizeConversation(ctx context.Context, actor models.Actor, id, transcript string) (*models.Consultation, error) {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		transcript = placeholderTranscript
	}

	summary := fallbackSummary
	if s.llm != nil {
		if out, err := s.llm.Summarize(ctx, transcript); err != nil {
			s.logger.Warn("summary failed, using fallback", zap.String("consultationID", c.ID), zap.Error(err))
		} else {
			summary = out
		}
	}

	now := s.now()
	c.Transcript = transcript
	c.Summary = summary
	c.Status = models.ConsultationCompleted
	c.CompletedAt = &now
	if err := s.store.Update(ctx, c); err != nil {
		return nil, utils.NewInternal("failed to save summary", err)
	}
	return c, nil
}

func (s *DefaultMentorService) Get(ctx context.Context, actor models.Actor, id string) (*models.Consultation, error) {
	return s.owned(ctx, actor, id)
}

func (s *DefaultMentorService) List(ctx context.Context, actor models.Actor) ([]models.Consultation, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	list, err := s.store.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, utils.NewInternal("failed to list consultations", err)
	}
	return list, nil
}

// MockSessionID is the stand-in id used when the voice agent is unavailable.
func MockSessionID(consultationID string, unixMillis int64) string {
	return fmt.Sprintf("mock_%s_%d", consultationID, unixMillis)
}
