package models

import "time"

type ConsultationStatus string

const (
	ConsultationPending   ConsultationStatus = "PENDING"
	ConsultationAnalyzing ConsultationStatus = "ANALYZING"
	ConsultationAnalyzed  ConsultationStatus = "ANALYZED"
	ConsultationReady     ConsultationStatus = "READY"
	ConsultationCompleted ConsultationStatus = "COMPLETED"
	ConsultationFailed    ConsultationStatus = "FAILED"
)

// LegalAnalysis is the structured answer requested from the LLM. Field
// names follow the JSON contract given in the prompt.
type LegalAnalysis struct {
	LegalIssueCategory             string   `bson:"legalIssueCategory" json:"legalIssueCategory"`
	RelevantConstitutionalArticles []string `bson:"relevantConstitutionalArticles" json:"relevantConstitutionalArticles"`
	ApplicableLaws                 []string `bson:"applicableLaws" json:"applicableLaws"`
	UserRights                     []string `bson:"userRights" json:"userRights"`
	RecommendedProcedures          []string `bson:"recommendedProcedures" json:"recommendedProcedures"`
	ImportantDeadlines             []string `bson:"importantDeadlines" json:"importantDeadlines"`
	PrecedentCases                 []string `bson:"precedentCases,omitempty" json:"precedentCases,omitempty"`
	RegionalVariations             []string `bson:"regionalVariations,omitempty" json:"regionalVariations,omitempty"`
}

// Consultation is one AI-mentor session.
type Consultation struct {
	ID                 string             `bson:"id" json:"id"`
	UserID             string             `bson:"user_id" json:"user_id"`
	ProblemDescription string             `bson:"problem_description" json:"problem_description"`
	Status             ConsultationStatus `bson:"status" json:"status"`
	LegalAnalysis      *LegalAnalysis     `bson:"legal_analysis,omitempty" json:"legal_analysis,omitempty"`
	VoiceSessionID     string             `bson:"voice_session_id,omitempty" json:"voice_session_id,omitempty"`
	Transcript         string             `bson:"transcript,omitempty" json:"transcript,omitempty"`
	Summary            string             `bson:"summary,omitempty" json:"summary,omitempty"`
	FailureReason      string             `bson:"failure_reason" json:"failure_reason,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
	CompletedAt        *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// KnowledgeEntry is a searchable record derived from an analysis.
type KnowledgeEntry struct {
	ID                     string    `bson:"id" json:"id"`
	ConsultationID         string    `bson:"consultation_id" json:"consultation_id"`
	UserID                 string    `bson:"user_id" json:"user_id"`
	Category               string    `bson:"category" json:"category"`
	Keywords               []string  `bson:"keywords" json:"keywords"`
	ApplicableLaws         []string  `bson:"applicable_laws" json:"applicable_laws"`
	ConstitutionalArticles []string  `bson:"constitutional_articles" json:"constitutional_articles"`
	CreatedAt              time.Time `bson:"created_at" json:"created_at"`
}

type CreateConsultationRequest struct {
	ProblemDescription string `json:"problem_description" binding:"required,max=8000"`
}

type SummarizeRequest struct {
	Transcript string `json:"transcript" binding:"max=100000"`
}

// VoiceSession is returned when a consultation is primed for a voice call.
type VoiceSession struct {
	ConsultationID string `json:"consultation_id"`
	SessionID      string `json:"session_id"`
	Mock           bool   `json:"mock"`
}
