package consultationRepo

import (
	"testing"

	"lawease/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestUpdateDocumentClearsFailureReason(t *testing.T) {
	c := &models.Consultation{
		ID:            "c1",
		Status:        models.ConsultationAnalyzed,
		FailureReason: "",
	}

	raw, err := bson.Marshal(updateDocument(c))
	if err != nil {
		t.Fatalf("bson.Marshal() error = %v", err)
	}
	set, ok := bson.Raw(raw).Lookup("$set").DocumentOK()
	if !ok {
		t.Fatalf("update has no $set document: %s", bson.Raw(raw))
	}
	val, err := set.LookupErr("failure_reason")
	if err != nil {
		t.Fatalf("$set does not write failure_reason, a retried analysis would keep the old reason: %v", err)
	}
	if reason, _ := val.StringValueOK(); reason != "" {
		t.Errorf("failure_reason = %q, want empty", reason)
	}
}
