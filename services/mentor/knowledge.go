package mentor

import (
	"strings"
	"time"
	"unicode"

	"lawease/models"

	"github.com/google/uuid"
)

// VoiceVariables flattens an analysis into the dynamic variables the voice
// agent prompt expects.
func VoiceVariables(c *models.Consultation) map[string]string {
	a := c.LegalAnalysis
	return map[string]string{
		"consultation_id":         c.ID,
		"problem_description":     c.ProblemDescription,
		"legal_category":          a.LegalIssueCategory,
		"constitutional_articles": strings.Join(a.RelevantConstitutionalArticles, "; "),
		"applicable_laws":         strings.Join(a.ApplicableLaws, "; "),
		"user_rights":             strings.Join(a.UserRights, "; "),
		"recommended_procedures":  strings.Join(a.RecommendedProcedures, "; "),
		"important_deadlines":     strings.Join(a.ImportantDeadlines, "; "),
	}
}

// KnowledgeEntryFor derives a searchable entry from an analysed consultation.
func KnowledgeEntryFor(c *models.Consultation, now time.Time) *models.KnowledgeEntry {
	a := c.LegalAnalysis
	return &models.KnowledgeEntry{
		ID:                     uuid.New().String(),
		ConsultationID:         c.ID,
		UserID:                 c.UserID,
		Category:               a.LegalIssueCategory,
		Keywords:               keywords(a.LegalIssueCategory, a.ApplicableLaws),
		ApplicableLaws:         a.ApplicableLaws,
		ConstitutionalArticles: a.RelevantConstitutionalArticles,
		CreatedAt:              now,
	}
}

// keywords returns the distinct lowercase words of at least three letters.
func keywords(category string, laws []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, text := range append([]string{category}, laws...) {
		words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, w := range words {
			if len([]rune(w)) < 3 || seen[w] {
				continue
			}
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}
