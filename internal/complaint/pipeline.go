package complaint

import (
	"context"
	"errors"
	"log"
	"net/http"

	"hosteldesk/backend/internal/classifier"
	"hosteldesk/backend/internal/models"
	"hosteldesk/backend/internal/session"
	"hosteldesk/backend/internal/storage"
)

// SessionGate resolves a client-held token to a live session. Implemented by
// session.Store; mocked in tests.
type SessionGate interface {
	Get(ctx context.Context, token string) (*models.Session, error)
}

// Result is the uniform outcome of one submission attempt. Status is the
// HTTP status the transport layer should answer with.
type Result struct {
	Status      int
	Success     bool
	Message     string
	ComplaintID uint

	// Record is the persisted complaint, set only on success. The transport
	// layer hands it to the feed and notifier collaborators.
	Record *models.Complaint
}

// Pipeline sequences the admission stages: session gate, field validation,
// content classification, persistence. Each stage runs only if the previous
// one succeeded; the first failure is the final outcome. Only the persistence
// stage has a side effect, and it runs last.
type Pipeline struct {
	Sessions   SessionGate
	Classifier classifier.Classifier
	Storage    storage.Storage
}

func NewPipeline(gate SessionGate, cls classifier.Classifier, s storage.Storage) *Pipeline {
	return &Pipeline{
		Sessions:   gate,
		Classifier: cls,
		Storage:    s,
	}
}

// Process runs one submission through every gate and produces the final
// Result. Failures never escape as errors; they are part of the outcome.
func (p *Pipeline) Process(ctx context.Context, token string, sub Submission) Result {
	// Stage 1: authentication. Nothing else runs for an anonymous request.
	sess, err := p.Sessions.Get(ctx, token)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.Printf("ERROR: Session lookup failed: %v", err)
		}
		return Result{Status: http.StatusUnauthorized, Message: "Please log in first"}
	}

	// Stage 2: structural validation, before any external call.
	if err := sub.Validate(); err != nil {
		return Result{Status: http.StatusBadRequest, Message: err.Error()}
	}

	// Stage 3: content classification. The verdict is definite either way;
	// a failing classifier rejects, it never admits.
	verdict := p.Classifier.Classify(ctx, sub.Body)
	if !verdict.Accepted {
		return Result{Status: http.StatusUnprocessableEntity, Message: verdict.Reason}
	}

	// Stage 4: persistence. CreatedAt is assigned server-side on insert.
	record := &models.Complaint{
		UserID: sess.UserID,
		Name:   sub.Name,
		RollNo: sub.RollNo,
		RoomNo: sub.RoomNo,
		Body:   sub.Body,
	}
	if err := p.Storage.SaveComplaint(record); err != nil {
		log.Printf("ERROR: Failed to persist complaint for user %s: %v", sess.UserID, err)
		return Result{Status: http.StatusInternalServerError, Message: "Server error"}
	}

	return Result{
		Status:      http.StatusOK,
		Success:     true,
		Message:     "Complaint submitted successfully",
		ComplaintID: record.ID,
		Record:      record,
	}
}
